// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/personality-quiz/cliparse"
	"github.com/danielhkuo/personality-quiz/handlers"
	"github.com/danielhkuo/personality-quiz/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, rt *handlers.Runtime) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(db, cfg, rt)
	statsHandler := handlers.NewStatsHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Metrics
	if rt.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(rt.Gatherer, promhttp.HandlerOpts{}))
	}

	// Session lifecycle
	mux.HandleFunc("POST /sessions", middleware.WithLogging(sessionHandler.CreateSession))
	mux.HandleFunc("GET /sessions/{id}", middleware.WithLogging(sessionHandler.GetSession))
	mux.HandleFunc("GET /sessions/{id}/state", middleware.WithLogging(sessionHandler.GetState))
	mux.HandleFunc("POST /sessions/{id}/start", middleware.WithLogging(sessionHandler.Start))
	mux.HandleFunc("POST /sessions/{id}/answers", middleware.WithLogging(sessionHandler.SubmitAnswer))
	mux.HandleFunc("POST /sessions/{id}/skip", middleware.WithLogging(sessionHandler.Skip))
	mux.HandleFunc("POST /sessions/{id}/retake", middleware.WithLogging(sessionHandler.Retake))

	// Results and reporting
	mux.HandleFunc("GET /sessions/{id}/results", middleware.WithLogging(sessionHandler.GetResults))
	mux.HandleFunc("GET /sessions/{id}/xapi", middleware.WithLogging(sessionHandler.GetStatement))
	mux.HandleFunc("GET /stats", middleware.WithLogging(statsHandler.GetStats))

	// Live events
	mux.HandleFunc("GET /sessions/{id}/stream", middleware.WithLogging(sessionHandler.Stream))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("personality-quiz API v1"))
	})

	return mux
}
