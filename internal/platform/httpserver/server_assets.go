package httpserver

import (
	"net/http"

	assethttp "provenance/contexts/provenance/asset-registry/transport/http"
)

func (s *Server) registerAssetRoutes() {
	s.mux.HandleFunc("PUT /v1/admin/marketplace-operator", s.handleSetMarketplace)
	s.mux.HandleFunc("GET /v1/admin/marketplace-operator", s.handleGetMarketplace)

	s.mux.HandleFunc("POST /v1/assets", s.handleMint)
	s.mux.HandleFunc("GET /v1/assets/{serial_id}", s.handleGetAsset)
	s.mux.HandleFunc("DELETE /v1/assets/{serial_id}", s.handleBurn)
	s.mux.HandleFunc("POST /v1/assets/{serial_id}/listing-approval", s.handleApproveListing)
}

func (s *Server) handleSetMarketplace(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req assethttp.SetMarketplaceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.modules.Assets.Handler.SetMarketplaceHandler(r.Context(), callerID, req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetMarketplace(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Assets.Handler.GetMarketplaceHandler(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMint(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req assethttp.MintRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.modules.Assets.Handler.MintHandler(r.Context(), callerID, req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Assets.Handler.GetAssetHandler(r.Context(), r.PathValue("serial_id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBurn(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r)
	if !ok {
		return
	}
	if err := s.modules.Assets.Handler.BurnHandler(r.Context(), callerID, r.PathValue("serial_id")); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleApproveListing(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r)
	if !ok {
		return
	}
	resp, err := s.modules.Assets.Handler.ApproveListingHandler(r.Context(), callerID, r.PathValue("serial_id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
