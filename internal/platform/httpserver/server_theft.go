package httpserver

import "net/http"

func (s *Server) registerTheftRoutes() {
	s.mux.HandleFunc("GET /v1/assets/{serial_id}/stolen", s.handleTheftStatus)
	s.mux.HandleFunc("POST /v1/assets/{serial_id}/stolen", s.handleFlagStolen)
	s.mux.HandleFunc("DELETE /v1/assets/{serial_id}/stolen", s.handleUnflagStolen)
}

func (s *Server) handleTheftStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Theft.Handler.StatusHandler(r.Context(), r.PathValue("serial_id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFlagStolen(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r)
	if !ok {
		return
	}
	resp, err := s.modules.Theft.Handler.FlagHandler(r.Context(), callerID, r.PathValue("serial_id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUnflagStolen(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r)
	if !ok {
		return
	}
	resp, err := s.modules.Theft.Handler.UnflagHandler(r.Context(), callerID, r.PathValue("serial_id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
