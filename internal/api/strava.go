package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"

	"runlog/internal/auth"
	"runlog/internal/service"
	"runlog/internal/store"
)

const stateCookie = "strava_oauth_state"

// stravaConnect starts the OAuth flow: issues a CSRF state token and
// redirects the browser to Strava's authorize page.
func (s *Server) stravaConnect(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.Strava.Configured() {
		writeError(w, http.StatusServiceUnavailable, "not_configured", "strava credentials are not configured")
		return
	}

	state, err := s.states.Issue()
	if err != nil {
		s.logger.Error().Err(err).Msg("issuing oauth state")
		writeError(w, http.StatusInternalServerError, "server_error", "failed to start oauth flow")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/api/strava",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, s.oauth.AuthCodeURL(state), http.StatusFound)
}

// stravaCallback finishes the OAuth flow: verifies the state against
// both the cookie and the issued-state store, exchanges the code, and
// persists the tokens.
func (s *Server) stravaCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if errParam := q.Get("error"); errParam != "" {
		writeError(w, http.StatusBadRequest, "oauth_denied", "authorization was denied: "+errParam)
		return
	}

	state := q.Get("state")
	cookie, err := r.Cookie(stateCookie)
	if err != nil || state == "" || cookie.Value != state || !s.states.Consume(state) {
		writeError(w, http.StatusBadRequest, "invalid_state", "oauth state mismatch")
		return
	}

	code := q.Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing authorization code")
		return
	}

	token, err := s.oauth.Exchange(r.Context(), code)
	if err != nil {
		s.logger.Error().Err(err).Msg("exchanging oauth code")
		writeError(w, http.StatusBadGateway, "exchange_failed", "token exchange with strava failed")
		return
	}

	athlete := auth.ExtractAthlete(token)
	err = s.store.SaveAuth(&store.Auth{
		AthleteID:    athlete.ID,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry,
		Firstname:    athlete.Firstname,
		Lastname:     athlete.Lastname,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("saving strava auth")
		writeError(w, http.StatusInternalServerError, "server_error", "failed to persist tokens")
		return
	}

	// Clear the state cookie
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Path: "/api/strava", MaxAge: -1})

	s.logger.Info().Int64("athlete_id", athlete.ID).Msg("strava connected")
	writeJSON(w, http.StatusOK, map[string]any{
		"connected":  true,
		"athlete_id": athlete.ID,
		"firstname":  athlete.Firstname,
		"lastname":   athlete.Lastname,
	})
}

// stravaStatus reports whether an athlete is connected.
func (s *Server) stravaStatus(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.GetAuth()
	if err != nil {
		if errors.Is(err, store.ErrNoAuth) {
			writeJSON(w, http.StatusOK, map[string]any{
				"connected":  false,
				"configured": s.cfg.Strava.Configured(),
			})
			return
		}
		s.logger.Error().Err(err).Msg("loading strava auth")
		writeError(w, http.StatusInternalServerError, "server_error", "failed to load auth state")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"connected":  true,
		"configured": s.cfg.Strava.Configured(),
		"athlete_id": a.AthleteID,
		"firstname":  a.Firstname,
		"lastname":   a.Lastname,
		"expires_at": a.ExpiresAt.UTC(),
	})
}

// stravaSync imports run activities. Options come from query params:
// after=YYYY-MM-DD, max=N, dry_run=true.
func (s *Server) stravaSync(w http.ResponseWriter, r *http.Request) {
	ts, err := s.tokenSource()
	if err != nil {
		if errors.Is(err, store.ErrNoAuth) {
			writeError(w, http.StatusConflict, "not_connected", "no strava account connected")
			return
		}
		s.logger.Error().Err(err).Msg("building token source")
		writeError(w, http.StatusInternalServerError, "server_error", "failed to prepare sync")
		return
	}

	opts, err := parseSyncOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	importer := service.NewImporter(s.store, s.newFetcher(ts), s.logger)
	result, err := importer.Sync(r.Context(), opts)
	if err != nil {
		s.logger.Error().Err(err).Msg("strava sync")
		writeError(w, http.StatusBadGateway, "sync_failed", "import from strava failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// stravaActivities lists recent Strava activities as import previews,
// without writing anything. Supports ?page=, ?per_page=, ?after=.
func (s *Server) stravaActivities(w http.ResponseWriter, r *http.Request) {
	ts, err := s.tokenSource()
	if err != nil {
		if errors.Is(err, store.ErrNoAuth) {
			writeError(w, http.StatusConflict, "not_connected", "no strava account connected")
			return
		}
		s.logger.Error().Err(err).Msg("building token source")
		writeError(w, http.StatusInternalServerError, "server_error", "failed to prepare request")
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if perPage < 1 || perPage > 100 {
		perPage = 30
	}
	var after time.Time
	if raw := q.Get("after"); raw != "" {
		after, err = time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "after must be YYYY-MM-DD")
			return
		}
	}

	importer := service.NewImporter(s.store, s.newFetcher(ts), s.logger)
	previews, err := importer.Activities(r.Context(), after, page, perPage)
	if err != nil {
		s.logger.Error().Err(err).Msg("listing strava activities")
		writeError(w, http.StatusBadGateway, "fetch_failed", "fetching activities from strava failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": previews})
}

// stravaDisconnect drops the stored tokens.
func (s *Server) stravaDisconnect(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteAuth(); err != nil {
		s.logger.Error().Err(err).Msg("deleting strava auth")
		writeError(w, http.StatusInternalServerError, "server_error", "failed to disconnect")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// tokenSource builds a refreshing token source backed by the stored
// auth row. Refreshed tokens are written back to the store.
func (s *Server) tokenSource() (oauth2.TokenSource, error) {
	a, err := s.store.GetAuth()
	if err != nil {
		return nil, err
	}

	token := &oauth2.Token{
		AccessToken:  a.AccessToken,
		RefreshToken: a.RefreshToken,
		Expiry:       a.ExpiresAt,
	}
	return auth.NewTokenSource(s.oauth, token, func(t *oauth2.Token) error {
		return s.store.UpdateTokens(t.AccessToken, t.RefreshToken, t.Expiry)
	}), nil
}

func parseSyncOptions(r *http.Request) (service.SyncOptions, error) {
	q := r.URL.Query()
	var opts service.SyncOptions

	if raw := q.Get("after"); raw != "" {
		after, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return opts, errors.New("after must be YYYY-MM-DD")
		}
		opts.After = after
	}
	if raw := q.Get("max"); raw != "" {
		max, err := strconv.Atoi(raw)
		if err != nil || max < 0 {
			return opts, errors.New("max must be a non-negative integer")
		}
		opts.Max = max
	}
	opts.DryRun = q.Get("dry_run") == "true"

	return opts, nil
}
