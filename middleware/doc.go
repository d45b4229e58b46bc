// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs completion with method, path, status and duration_ms. The wrapped
writer still implements http.Hijacker so websocket routes can be logged
too.

# CORS Middleware

Quizzes are embedded in other sites, so every origin is reflected:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, view)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.SubmitAnswerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

Bodies are capped at MaxBodyBytes. ParseOptionalJSONBody accepts an empty
body.

# Session Tokens

SessionToken reads "Authorization: Bearer <token>", then X-Session-Token,
then the token query parameter (browsers cannot set headers on websocket
requests).

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Handles X-Forwarded-For and X-Real-IP. Used for client hashing.
*/
package middleware
