package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fincatch/fincatch/internal/models"
	"github.com/fincatch/fincatch/internal/services/performance"
	"github.com/fincatch/fincatch/internal/services/report"
)

// handleEntries handles GET /api/entries (list) and POST /api/entries (create).
func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		entries, err := s.app.Storage.EntryStorage().ListEntries(r.Context(), r.URL.Query().Get("portfolio_id"))
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, entries)
	case http.MethodPost:
		var entry models.PortfolioEntry
		if !DecodeJSON(w, r, &entry) {
			return
		}
		entry.ID = "" // server-assigned
		if err := s.app.Storage.EntryStorage().SaveEntry(r.Context(), &entry); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusCreated, &entry)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeEntries dispatches /api/entries/{id} and /api/entries/{id}/coupons.
func (s *Server) routeEntries(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/entries/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	switch {
	case len(parts) == 1 && parts[0] != "":
		s.handleEntryByID(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "coupons":
		s.handleEntryCoupons(w, r, parts[0])
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

func (s *Server) handleEntryByID(w http.ResponseWriter, r *http.Request, id string) {
	store := s.app.Storage.EntryStorage()
	switch r.Method {
	case http.MethodGet:
		entry, err := store.GetEntry(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, entry)
	case http.MethodPut:
		var entry models.PortfolioEntry
		if !DecodeJSON(w, r, &entry) {
			return
		}
		existing, err := store.GetEntry(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
		if err := store.SaveEntry(r.Context(), &entry); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, &entry)
	case http.MethodDelete:
		if err := store.DeleteEntry(r.Context(), id); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

// handleEntryCoupons handles GET/POST /api/entries/{id}/coupons.
func (s *Server) handleEntryCoupons(w http.ResponseWriter, r *http.Request, entryID string) {
	store := s.app.Storage.CouponStorage()
	switch r.Method {
	case http.MethodGet:
		payments, err := store.ListPayments(r.Context(), entryID)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, payments)
	case http.MethodPost:
		var payment models.BondCouponPayment
		if !DecodeJSON(w, r, &payment) {
			return
		}
		payment.ID = "" // server-assigned
		payment.EntryID = entryID
		if err := store.SavePayment(r.Context(), &payment); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusCreated, &payment)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleCouponDelete handles DELETE /api/coupons/{id}.
func (s *Server) handleCouponDelete(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/coupons/")
	if id == "" {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	if err := s.app.Storage.CouponStorage().DeletePayment(r.Context(), id); err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePerformance handles GET /api/portfolio/performance.
// A JSON null body means "no data" (empty portfolio), distinct from a zero
// valuation.
func (s *Server) handlePerformance(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	entries, err := s.app.Storage.EntryStorage().ListEntries(r.Context(), r.URL.Query().Get("portfolio_id"))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	perf, err := s.app.PerformanceService.ComputePerformance(r.Context(), entries, s.displayCurrency(r))
	if err != nil {
		WriteError(w, http.StatusBadGateway, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, perf)
}

// handleHistory handles GET /api/portfolio/history?from=&to=&interval=&currency=.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	start, end, ok := parseDateRange(w, r)
	if !ok {
		return
	}
	interval := 1
	if v := r.URL.Query().Get("interval"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			interval = n
		}
	}

	entries, err := s.app.Storage.EntryStorage().ListEntries(r.Context(), r.URL.Query().Get("portfolio_id"))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	points, err := s.app.PerformanceService.BuildHistory(r.Context(), entries, start, end, s.displayCurrency(r), interval)
	if err != nil {
		WriteError(w, http.StatusBadGateway, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, points)
}

// handleBenchmark handles GET /api/portfolio/benchmark?symbol=&source=&from=&to=.
// A JSON null body means insufficient data for a comparison.
func (s *Server) handleBenchmark(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "symbol is required")
		return
	}
	start, end, ok := parseDateRange(w, r)
	if !ok {
		return
	}

	benchmark := models.Benchmark{
		Symbol: symbol,
		Source: r.URL.Query().Get("source"),
		Name:   r.URL.Query().Get("name"),
	}

	entries, err := s.app.Storage.EntryStorage().ListEntries(r.Context(), r.URL.Query().Get("portfolio_id"))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	comparison, err := s.app.PerformanceService.CompareBenchmark(r.Context(), entries, benchmark, start, end, s.displayCurrency(r))
	if err != nil {
		WriteError(w, http.StatusBadGateway, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, comparison)
}

// handleChart handles GET /api/portfolio/chart — a PNG of the base-100 series,
// with an optional benchmark overlay when symbol is given.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	start, end, ok := parseDateRange(w, r)
	if !ok {
		return
	}

	entries, err := s.app.Storage.EntryStorage().ListEntries(r.Context(), r.URL.Query().Get("portfolio_id"))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	currency := s.displayCurrency(r)
	var portfolioData, benchmarkData []models.PerformancePoint
	benchmarkName := ""

	if symbol := r.URL.Query().Get("symbol"); symbol != "" {
		benchmark := models.Benchmark{Symbol: symbol, Source: r.URL.Query().Get("source"), Name: r.URL.Query().Get("name")}
		comparison, err := s.app.PerformanceService.CompareBenchmark(r.Context(), entries, benchmark, start, end, currency)
		if err != nil {
			WriteError(w, http.StatusBadGateway, err.Error())
			return
		}
		if comparison == nil {
			WriteError(w, http.StatusNotFound, "Insufficient data for chart")
			return
		}
		portfolioData = comparison.PortfolioData
		benchmarkData = comparison.BenchmarkData
		benchmarkName = symbol
	} else {
		portfolioData, err = s.app.PerformanceService.BuildHistory(r.Context(), entries, start, end, currency, 1)
		if err != nil {
			WriteError(w, http.StatusBadGateway, err.Error())
			return
		}
	}

	png, err := performance.RenderPerformanceChart(portfolioData, benchmarkData, benchmarkName)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// handleReport handles GET /api/portfolio/report — a markdown summary.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	entries, err := s.app.Storage.EntryStorage().ListEntries(r.Context(), r.URL.Query().Get("portfolio_id"))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	perf, err := s.app.PerformanceService.ComputePerformance(r.Context(), entries, s.displayCurrency(r))
	if err != nil {
		WriteError(w, http.StatusBadGateway, err.Error())
		return
	}
	if perf == nil {
		WriteError(w, http.StatusNotFound, "No entries to report on")
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(report.FormatPerformance(perf, time.Now())))
}

// displayCurrency resolves the display currency from the query, falling back
// to the configured default.
func (s *Server) displayCurrency(r *http.Request) string {
	if c := r.URL.Query().Get("currency"); c != "" {
		return c
	}
	return s.app.Config.DisplayCurrency
}

// parseDateRange reads from/to query params as Unix seconds, defaulting to the
// last 90 days. Writes a 400 and returns false on malformed input.
func parseDateRange(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	end := time.Now()
	start := end.AddDate(0, 0, -90)

	if v := r.URL.Query().Get("from"); v != "" {
		sec, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid 'from' timestamp")
			return time.Time{}, time.Time{}, false
		}
		start = time.Unix(sec, 0).UTC()
	}
	if v := r.URL.Query().Get("to"); v != "" {
		sec, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid 'to' timestamp")
			return time.Time{}, time.Time{}, false
		}
		end = time.Unix(sec, 0).UTC()
	}
	if !start.Before(end) {
		WriteError(w, http.StatusBadRequest, "'from' must be before 'to'")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
