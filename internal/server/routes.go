package server

import (
	"net/http"

	"github.com/fincatch/fincatch/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Entries + coupon payments
	mux.HandleFunc("/api/entries", s.handleEntries)
	mux.HandleFunc("/api/entries/", s.routeEntries)
	mux.HandleFunc("/api/coupons/", s.handleCouponDelete)

	// Portfolio valuation
	mux.HandleFunc("/api/portfolio/performance", s.handlePerformance)
	mux.HandleFunc("/api/portfolio/history", s.handleHistory)
	mux.HandleFunc("/api/portfolio/benchmark", s.handleBenchmark)
	mux.HandleFunc("/api/portfolio/chart", s.handleChart)
	mux.HandleFunc("/api/portfolio/report", s.handleReport)
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": common.GetVersion(),
	})
}

// handleVersion handles GET /api/version.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"full":    common.GetFullVersion(),
	})
}
