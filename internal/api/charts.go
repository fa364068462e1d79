package api

import (
	"errors"
	"net/http"
	"time"

	"runlog/internal/service"
)

// weeklyChart returns weekly mileage totals for ?range=12w|6m|1y.
func (s *Server) weeklyChart(w http.ResponseWriter, r *http.Request) {
	rangeKey := r.URL.Query().Get("range")
	if rangeKey == "" {
		rangeKey = "12w"
	}

	chart, err := s.charts.Weekly(rangeKey, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		s.logger.Error().Err(err).Msg("building weekly chart")
		writeError(w, http.StatusInternalServerError, "server_error", "failed to build weekly chart")
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

// weekChart returns the Monday-to-Sunday daily breakdown for the week
// containing ?date=YYYY-MM-DD (default: today).
func (s *Server) weekChart(w http.ResponseWriter, r *http.Request) {
	ref := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "date must be YYYY-MM-DD")
			return
		}
		ref = parsed
	}

	summary, err := s.charts.Week(ref)
	if err != nil {
		s.logger.Error().Err(err).Msg("building week summary")
		writeError(w, http.StatusInternalServerError, "server_error", "failed to build week summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
