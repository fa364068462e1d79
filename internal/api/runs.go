package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"runlog/internal/service"
	"runlog/internal/store"
)

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	runs, err := s.runs.List(q.Get("type"), limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Msg("listing runs")
		writeError(w, http.StatusInternalServerError, "server_error", "failed to list runs")
		return
	}

	total, err := s.store.CountRuns()
	if err != nil {
		s.logger.Error().Err(err).Msg("counting runs")
		writeError(w, http.StatusInternalServerError, "server_error", "failed to list runs")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": runs,
		"total": total,
	})
}

func (s *Server) createRun(w http.ResponseWriter, r *http.Request) {
	var in service.RunInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}

	run, err := s.runs.Create(in)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		s.logger.Error().Err(err).Msg("creating run")
		writeError(w, http.StatusInternalServerError, "server_error", "failed to create run")
		return
	}

	writeJSON(w, http.StatusCreated, run)
}

func (s *Server) getRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.runs.Get(mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, store.ErrRunNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "run not found")
			return
		}
		s.logger.Error().Err(err).Msg("getting run")
		writeError(w, http.StatusInternalServerError, "server_error", "failed to get run")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) updateRun(w http.ResponseWriter, r *http.Request) {
	var in service.RunInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}

	run, err := s.runs.Update(mux.Vars(r)["id"], in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		case errors.Is(err, store.ErrRunNotFound):
			writeError(w, http.StatusNotFound, "not_found", "run not found")
		default:
			s.logger.Error().Err(err).Msg("updating run")
			writeError(w, http.StatusInternalServerError, "server_error", "failed to update run")
		}
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) deleteRun(w http.ResponseWriter, r *http.Request) {
	if err := s.runs.Delete(mux.Vars(r)["id"]); err != nil {
		if errors.Is(err, store.ErrRunNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "run not found")
			return
		}
		s.logger.Error().Err(err).Msg("deleting run")
		writeError(w, http.StatusInternalServerError, "server_error", "failed to delete run")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
