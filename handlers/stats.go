// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/personality-quiz/cliparse"
	"github.com/danielhkuo/personality-quiz/middleware"
	"github.com/danielhkuo/personality-quiz/models"
)

type StatsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewStatsHandler(db *sql.DB, cfg cliparse.Config) *StatsHandler {
	return &StatsHandler{db: db, cfg: cfg}
}

// GetStats handles GET /stats
// Counts completed runs per revealed personality, most frequent first.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.QueryContext(r.Context(), `
		SELECT personality, COUNT(*)
		FROM quiz_completion
		GROUP BY personality
		ORDER BY COUNT(*) DESC, personality ASC
	`)
	if err != nil {
		slog.Error("failed to query completions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	resp := models.StatsResponse{Completions: []models.PersonalityCount{}}
	for rows.Next() {
		var pc models.PersonalityCount
		if err := rows.Scan(&pc.Personality, &pc.Count); err != nil {
			slog.Error("failed to scan completion count", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		resp.Completions = append(resp.Completions, pc)
		resp.Total += pc.Count
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate completions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
