// Package api wires the HTTP surface: run CRUD, the pace calculator,
// chart data, and the Strava connect/sync flow.
package api

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"runlog/internal/auth"
	"runlog/internal/config"
	"runlog/internal/service"
	"runlog/internal/store"
	"runlog/internal/strava"
)

// Server holds the handler dependencies.
type Server struct {
	cfg    *config.Config
	store  *store.Store
	runs   *service.Runs
	charts *service.Charts
	states *auth.StateStore
	oauth  *oauth2.Config
	logger zerolog.Logger

	// newFetcher builds the Strava activity fetcher for a token source.
	// Tests swap it for a fake.
	newFetcher func(ts oauth2.TokenSource) service.ActivityFetcher
}

// NewServer creates the API server
func NewServer(cfg *config.Config, st *store.Store, logger zerolog.Logger) *Server {
	return &Server{
		cfg:    cfg,
		store:  st,
		runs:   service.NewRuns(st),
		charts: service.NewCharts(st),
		states: auth.NewStateStore(),
		oauth: auth.NewOAuthConfig(auth.Config{
			ClientID:     cfg.Strava.ClientID,
			ClientSecret: cfg.Strava.ClientSecret,
			RedirectURL:  cfg.Server.BaseURL + "/api/strava/callback",
		}),
		logger: logger,
		newFetcher: func(ts oauth2.TokenSource) service.ActivityFetcher {
			return strava.NewClient(ts)
		},
	}
}

// Router builds the full route table
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestLogger(s.logger))

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/runs", s.listRuns).Methods(http.MethodGet)
	api.HandleFunc("/runs", s.createRun).Methods(http.MethodPost)
	api.HandleFunc("/runs/{id}", s.getRun).Methods(http.MethodGet)
	api.HandleFunc("/runs/{id}", s.updateRun).Methods(http.MethodPut)
	api.HandleFunc("/runs/{id}", s.deleteRun).Methods(http.MethodDelete)

	api.HandleFunc("/pace-calc", s.paceCalc).Methods(http.MethodGet)

	api.HandleFunc("/charts/weekly", s.weeklyChart).Methods(http.MethodGet)
	api.HandleFunc("/charts/week", s.weekChart).Methods(http.MethodGet)

	api.HandleFunc("/strava/connect", s.stravaConnect).Methods(http.MethodGet)
	api.HandleFunc("/strava/callback", s.stravaCallback).Methods(http.MethodGet)
	api.HandleFunc("/strava/status", s.stravaStatus).Methods(http.MethodGet)
	api.HandleFunc("/strava/activities", s.stravaActivities).Methods(http.MethodGet)
	api.HandleFunc("/strava/sync", s.stravaSync).Methods(http.MethodPost)
	api.HandleFunc("/strava/disconnect", s.stravaDisconnect).Methods(http.MethodPost)

	return r
}

// Handler wraps the router with CORS for browser clients
func (s *Server) Handler() http.Handler {
	return handlers.CORS(
		handlers.AllowedOrigins(s.cfg.Server.CORSOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(s.Router())
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
