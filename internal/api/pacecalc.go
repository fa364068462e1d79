package api

import (
	"errors"
	"net/http"

	"runlog/internal/calculator"
)

// paceCalc solves the distance/time/pace triangle from query params.
// Exactly two of distance, time, and pace must be supplied.
func (s *Server) paceCalc(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := calculator.Input{
		Distance: q.Get("distance"),
		Time:     q.Get("time"),
		Pace:     q.Get("pace"),
		Unit:     q.Get("unit"),
	}

	result, err := calculator.Solve(in)
	if err != nil {
		if errors.Is(err, calculator.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		s.logger.Error().Err(err).Msg("pace calculation")
		writeError(w, http.StatusInternalServerError, "server_error", "calculation failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
