package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/shreshth-s/vlr-api/internal/cache"
	"github.com/shreshth-s/vlr-api/internal/config"
	"github.com/shreshth-s/vlr-api/internal/debug"
	"github.com/shreshth-s/vlr-api/internal/vlr"
)

// requests per minute per client IP
const rateLimitPerMinute = 60

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(cfg *config.Config, scraper *vlr.Scraper, store cache.Store, samples *debug.SampleStore, logger zerolog.Logger) *Server {
	handler := NewHandler(scraper, store, cfg, logger)
	debugHandler := NewDebugHandler(scraper, samples, cfg, logger)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggingMiddleware(logger))
	router.Use(CORSMiddleware)
	router.Use(RateLimitMiddleware(rateLimitPerMinute))

	// Health check and index
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")
	router.HandleFunc("/", handler.Index).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Matches
	api.HandleFunc("/matches/live", handler.GetMatches("live", cache.ClassLive)).Methods("GET")
	api.HandleFunc("/matches/upcoming", handler.GetMatches("upcoming", cache.ClassUpcoming)).Methods("GET")
	api.HandleFunc("/matches/results", handler.GetMatches("results", cache.ClassResults)).Methods("GET")
	api.HandleFunc("/matches/{matchID:[0-9]+}", handler.GetMatch).Methods("GET")

	// Players
	api.HandleFunc("/players/search", handler.SearchPlayers).Methods("GET")
	api.HandleFunc("/players/stats", handler.GetPlayerStats).Methods("GET")
	api.HandleFunc("/players/{playerID:[0-9]+}", handler.GetPlayer).Methods("GET")
	api.HandleFunc("/players/{playerID:[0-9]+}/matches", handler.GetPlayerMatches).Methods("GET")
	api.HandleFunc("/players/{playerID:[0-9]+}/agents", handler.GetPlayerAgents).Methods("GET")
	api.HandleFunc("/players/{playerID:[0-9]+}/role", handler.GetPlayerRole).Methods("GET")

	// Teams
	api.HandleFunc("/teams/search", handler.SearchTeams).Methods("GET")
	api.HandleFunc("/teams/rankings", handler.GetRankings).Methods("GET")
	api.HandleFunc("/teams/rankings/{region}", handler.GetRankings).Methods("GET")
	api.HandleFunc("/teams/regions", handler.GetRegions).Methods("GET")
	api.HandleFunc("/teams/tiers", handler.GetTiers).Methods("GET")
	api.HandleFunc("/teams/{teamID:[0-9]+}", handler.GetTeam).Methods("GET")
	api.HandleFunc("/teams/{teamID:[0-9]+}/matches", handler.GetTeamMatches).Methods("GET")

	// Events
	api.HandleFunc("/events", handler.GetEvents).Methods("GET")
	api.HandleFunc("/events/search", handler.SearchEvents).Methods("GET")
	api.HandleFunc("/events/{eventID:[0-9]+}", handler.GetEvent).Methods("GET")

	// Debug sample store, gated behind the deployment opt-in
	dbg := api.PathPrefix("/debug").Subrouter()
	dbg.HandleFunc("/types", debugHandler.debugGuard(debugHandler.ListTypes)).Methods("GET")
	dbg.HandleFunc("/capture/{type}", debugHandler.debugGuard(debugHandler.Capture)).Methods("POST")
	dbg.HandleFunc("/samples", debugHandler.debugGuard(debugHandler.ListSamples)).Methods("GET")
	dbg.HandleFunc("/samples/cleanup", debugHandler.debugGuard(debugHandler.Cleanup)).Methods("POST")
	dbg.HandleFunc("/samples/{sampleID}", debugHandler.debugGuard(debugHandler.GetSample)).Methods("GET")
	dbg.HandleFunc("/samples/{sampleID}", debugHandler.debugGuard(debugHandler.DeleteSample)).Methods("DELETE")

	return &Server{
		port:    cfg.Port,
		handler: handler,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
