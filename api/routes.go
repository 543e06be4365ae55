package api

import (
	"github.com/gojkop/mindpick/internal/config"
	"github.com/gojkop/mindpick/internal/db"
	"github.com/gojkop/mindpick/internal/refresh"
	"github.com/gojkop/mindpick/internal/repository/sqlite"
	"github.com/gorilla/mux"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, d *db.DB, upstream Upstream, refresher *refresh.Refresher) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository
	repo := sqlite.New(d, nil)

	// Create handlers
	systemHandler := &SystemHandler{}
	metricsHandler := NewMetricsHandler(upstream, repo, refresher, cfg.DefaultSLAHours, cfg.CountdownInterval)
	preferencesHandler := NewPreferencesHandler(repo)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")

	// API v1 Protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	// Metrics endpoints
	apiV1.HandleFunc("/metrics", metricsHandler.GetMetrics).Methods("GET")
	apiV1.HandleFunc("/metrics/snapshot", metricsHandler.GetSnapshot).Methods("GET")
	apiV1.HandleFunc("/metrics/response-times", metricsHandler.GetResponseTimes).Methods("GET")
	apiV1.HandleFunc("/metrics/ratings", metricsHandler.GetRatings).Methods("GET")
	apiV1.HandleFunc("/metrics/tiers", metricsHandler.GetTierSplit).Methods("GET")

	// Question urgency endpoints
	apiV1.HandleFunc("/questions/urgency", metricsHandler.GetUrgency).Methods("GET")
	apiV1.HandleFunc("/questions/countdown", metricsHandler.Countdown).Methods("GET")

	// Preferences endpoints
	apiV1.HandleFunc("/preferences", preferencesHandler.List).Methods("GET")
	apiV1.HandleFunc("/preferences/{key}", preferencesHandler.Get).Methods("GET")
	apiV1.HandleFunc("/preferences/{key}", preferencesHandler.Put).Methods("PUT")
	apiV1.HandleFunc("/preferences/{key}", preferencesHandler.Delete).Methods("DELETE")

	return r
}
