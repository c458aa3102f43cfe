package httpserver

import (
	"net/http"

	minterhttp "provenance/contexts/identity-access/minter-registry/transport/http"
)

func (s *Server) registerMinterRoutes() {
	s.mux.HandleFunc("POST /v1/minters", s.handleAddMinter)
	s.mux.HandleFunc("DELETE /v1/minters/{address}", s.handleRemoveMinter)
	s.mux.HandleFunc("GET /v1/minters/{address}", s.handleGetMinter)
}

func (s *Server) handleAddMinter(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req minterhttp.AddMinterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.modules.Minters.Handler.AddMinterHandler(r.Context(), callerID, req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleRemoveMinter(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r)
	if !ok {
		return
	}
	if err := s.modules.Minters.Handler.RemoveMinterHandler(r.Context(), callerID, r.PathValue("address")); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetMinter(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Minters.Handler.GetMinterHandler(r.Context(), r.PathValue("address"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
