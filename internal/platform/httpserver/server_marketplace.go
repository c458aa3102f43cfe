package httpserver

import (
	"net/http"

	marketplacehttp "provenance/contexts/commerce/resale-marketplace/transport/http"
)

func (s *Server) registerMarketplaceRoutes() {
	s.mux.HandleFunc("POST /v1/listings/{serial_id}", s.handleListWatch)
	s.mux.HandleFunc("GET /v1/listings/{serial_id}", s.handleGetListing)
	s.mux.HandleFunc("DELETE /v1/listings/{serial_id}", s.handleCancelListing)
	s.mux.HandleFunc("GET /v1/listings/{serial_id}/quote", s.handleQuote)
	s.mux.HandleFunc("POST /v1/listings/{serial_id}/purchase", s.handlePurchase)

	s.mux.HandleFunc("GET /v1/balances/{address}", s.handleBalance)
	s.mux.HandleFunc("POST /v1/balances/withdraw", s.handleWithdraw)
}

func (s *Server) handleListWatch(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req marketplacehttp.ListWatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.modules.Marketplace.Handler.ListWatchHandler(r.Context(), callerID, r.PathValue("serial_id"), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Marketplace.Handler.GetListingHandler(r.Context(), r.PathValue("serial_id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCancelListing(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r)
	if !ok {
		return
	}
	if err := s.modules.Marketplace.Handler.CancelListingHandler(r.Context(), callerID, r.PathValue("serial_id")); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Marketplace.Handler.QuoteHandler(r.Context(), r.PathValue("serial_id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePurchase(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req marketplacehttp.PurchaseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.modules.Marketplace.Handler.PurchaseHandler(r.Context(), callerID, r.PathValue("serial_id"), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Marketplace.Handler.BalanceHandler(r.Context(), r.PathValue("address"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r)
	if !ok {
		return
	}
	resp, err := s.modules.Marketplace.Handler.WithdrawHandler(r.Context(), callerID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
