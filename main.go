// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/danielhkuo/personality-quiz/analytics"
	"github.com/danielhkuo/personality-quiz/cliparse"
	"github.com/danielhkuo/personality-quiz/clock"
	"github.com/danielhkuo/personality-quiz/content"
	"github.com/danielhkuo/personality-quiz/db"
	"github.com/danielhkuo/personality-quiz/handlers"
	"github.com/danielhkuo/personality-quiz/middleware"
	"github.com/danielhkuo/personality-quiz/router"
)

func main() {
	var err error

	// A missing .env is fine; the environment may already be set
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Load quiz definition
	params, err := content.Load(cfg.QuizFile)
	if err != nil {
		slog.Error("quiz definition unreadable", "file", cfg.QuizFile, "error", err)
		os.Exit(1)
	}
	quizCfg, report, err := params.Config()
	if err != nil {
		slog.Error("quiz definition invalid", "file", cfg.QuizFile, "error", err)
		os.Exit(1)
	}
	if !report.Empty() {
		slog.Warn("quiz definition sanitized",
			"dropped_personalities", report.DroppedPersonalities,
			"dropped_tokens", report.DroppedTokens,
			"dropped_answers", report.DroppedAnswers,
			"dropped_questions", report.DroppedQuestions,
		)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Open database and create schema
	dbConn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database setup failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Every quiz machine runs on this loop
	loop := clock.NewLoop(0)
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		loop.Run(ctx)
	}()

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder, err := analytics.NewPrometheusRecorder(analytics.DefaultNamespace, reg)
	if err != nil {
		slog.Error("metrics setup failed", "error", err)
		os.Exit(1)
	}

	rt := handlers.NewRuntime(quizCfg, activityTitle(params), loop, cfg.AssetBaseURL)
	rt.Recorder = recorder
	rt.Gatherer = reg
	rt.Seed = cfg.RandomSeed
	rt.Display = params.Display()
	if msg := rt.ConfigurationMessage(); msg != "" {
		// Keep serving so clients can show the message
		slog.Error("quiz cannot be played", "message", msg, "error", rt.ConfigErr)
	} else {
		slog.Info("Quiz loaded",
			"personalities", len(quizCfg.Personalities),
			"questions", len(quizCfg.Questions),
		)
	}

	// Create router
	mux := router.NewRouter(dbConn, cfg, rt)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}

	cancel()
	<-loopDone
}

// activityTitle names the quiz in analytics statements
func activityTitle(p content.Params) string {
	if p.ShowTitleScreen {
		if intro := strings.TrimSpace(p.TitleScreen.Introduction); intro != "" {
			return intro
		}
	}
	return analytics.DefaultTitle
}
