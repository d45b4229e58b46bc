// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/personality-quiz/models"
)

func TestWithLogging_PreservesResponse(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		body       string
	}{
		{"OK", http.StatusOK, "ok"},
		{"Created", http.StatusCreated, `{"session_id":"123"}`},
		{"BadRequest", http.StatusBadRequest, `{"error":"bad request"}`},
		{"NotFound", http.StatusNotFound, "not found"},
		{"InternalError", http.StatusInternalServerError, "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.statusCode)
				w.Write([]byte(tc.body))
			})

			req := httptest.NewRequest("POST", "/sessions", nil)
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if w.Body.String() != tc.body {
				t.Errorf("Expected body '%s', got '%s'", tc.body, w.Body.String())
			}
		})
	}
}

func TestWithLogging_Hijack(t *testing.T) {
	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := w.(http.Hijacker); !ok {
			t.Error("wrapped writer lost http.Hijacker")
		}
		// httptest.ResponseRecorder cannot hijack
		if _, _, err := w.(http.Hijacker).Hijack(); err == nil {
			t.Error("expected hijack error from recorder")
		}
	})
	handler(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
}

func TestJSONResponse(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		data       any
		expected   string
	}{
		{
			name:       "simple struct",
			statusCode: http.StatusOK,
			data:       map[string]string{"message": "hello"},
			expected:   `{"message":"hello"}`,
		},
		{
			name:       "answer response",
			statusCode: http.StatusOK,
			data:       models.SubmitAnswerRequest{Question: 1, Option: 2},
			expected:   `{"question":1,"option":2}`,
		},
		{
			name:       "error response",
			statusCode: http.StatusBadRequest,
			data:       models.ErrorResponse{Error: "Bad Request", Message: "missing field"},
			expected:   `{"error":"Bad Request","message":"missing field"}`,
		},
		{
			name:       "array data",
			statusCode: http.StatusOK,
			data:       []string{"a", "b", "c"},
			expected:   `["a","b","c"]`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			JSONResponse(w, tc.statusCode, tc.data)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected Content-Type 'application/json', got '%s'", ct)
			}

			// Encode adds a trailing newline
			body := strings.TrimSpace(w.Body.String())
			if body != tc.expected {
				t.Errorf("Expected body '%s', got '%s'", tc.expected, body)
			}
		})
	}
}

func TestErrorResponse(t *testing.T) {
	testCases := []struct {
		name          string
		statusCode    int
		message       string
		expectedError string
	}{
		{"bad request", http.StatusBadRequest, "invalid JSON", "Bad Request"},
		{"unauthorized", http.StatusUnauthorized, "invalid session token", "Unauthorized"},
		{"not found", http.StatusNotFound, "session not found", "Not Found"},
		{"conflict", http.StatusConflict, "answer not accepted", "Conflict"},
		{"unprocessable", http.StatusUnprocessableEntity, "no valid questions", "Unprocessable Entity"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			ErrorResponse(w, tc.statusCode, tc.message)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Error != tc.expectedError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectedError, resp.Error)
			}
			if resp.Message != tc.message {
				t.Errorf("Expected message '%s', got '%s'", tc.message, resp.Message)
			}
		})
	}
}

func TestParseJSONBody(t *testing.T) {
	t.Run("valid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"question":2,"option":1}`))

		var parsed models.SubmitAnswerRequest
		if err := ParseJSONBody(req, &parsed); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if parsed.Question != 2 || parsed.Option != 1 {
			t.Errorf("unexpected parse result %+v", parsed)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{invalid json}`))

		var parsed models.SubmitAnswerRequest
		if err := ParseJSONBody(req, &parsed); err == nil {
			t.Error("Expected error for invalid JSON")
		}
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(""))

		var parsed models.SubmitAnswerRequest
		if err := ParseJSONBody(req, &parsed); err == nil {
			t.Error("Expected error for empty body")
		}
	})

	t.Run("oversized body", func(t *testing.T) {
		big := `{"previous_state":{"scores":[` + strings.Repeat("1,", MaxBodyBytes) + `1]}}`
		req := httptest.NewRequest("POST", "/", strings.NewReader(big))

		var parsed models.CreateSessionRequest
		if err := ParseJSONBody(req, &parsed); err == nil {
			t.Error("Expected error for oversized body")
		}
	})
}

func TestParseOptionalJSONBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", nil)
	var parsed models.CreateSessionRequest
	if err := ParseOptionalJSONBody(req, &parsed); err != nil {
		t.Fatalf("Expected no error for missing body, got: %v", err)
	}
	if parsed.PreviousState != nil {
		t.Error("Expected no previous state")
	}

	req = httptest.NewRequest("POST", "/", strings.NewReader(`{"previous_state":{"scores":[1,0],"answersGiven":[{"question":0,"option":0}]}}`))
	if err := ParseOptionalJSONBody(req, &parsed); err != nil {
		t.Fatal(err)
	}
	if parsed.PreviousState == nil || len(parsed.PreviousState.AnswersGiven) != 1 {
		t.Errorf("unexpected previous state %+v", parsed.PreviousState)
	}
}

func TestSessionToken(t *testing.T) {
	testCases := []struct {
		name     string
		header   map[string]string
		url      string
		expected string
	}{
		{"bearer", map[string]string{"Authorization": "Bearer abc"}, "/", "abc"},
		{"custom header", map[string]string{SessionTokenHeader: "def"}, "/", "def"},
		{"query", nil, "/stream?token=ghi", "ghi"},
		{"basic auth ignored", map[string]string{"Authorization": "Basic xyz"}, "/", ""},
		{"none", nil, "/", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.url, nil)
			for k, v := range tc.header {
				req.Header.Set(k, v)
			}
			if got := SessionToken(req); got != tc.expected {
				t.Errorf("Expected token '%s', got '%s'", tc.expected, got)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("handled"))
	})
	corsHandler := CORS(nextHandler)

	t.Run("preflight OPTIONS request", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/sessions", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()

		corsHandler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		if w.Body.String() != "" {
			t.Errorf("Expected empty body for preflight, got '%s'", w.Body.String())
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
			t.Error("Expected Access-Control-Allow-Origin to match request origin")
		}
		if !strings.Contains(w.Header().Get("Access-Control-Allow-Headers"), SessionTokenHeader) {
			t.Error("Expected session token header to be allowed")
		}
	})

	t.Run("request without origin defaults to wildcard", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/sessions/x", nil)
		w := httptest.NewRecorder()

		corsHandler.ServeHTTP(w, req)

		if w.Body.String() != "handled" {
			t.Error("Expected next handler to be called")
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Error("Expected Access-Control-Allow-Origin to default to '*'")
		}
	})
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{"X-Forwarded-For single", map[string]string{"X-Forwarded-For": "203.0.113.195"}, "10.0.0.1:1234", "203.0.113.195"},
		{"X-Forwarded-For chain", map[string]string{"X-Forwarded-For": "203.0.113.195, 70.41.3.18"}, "10.0.0.1:1234", "203.0.113.195"},
		{"X-Real-IP", map[string]string{"X-Real-IP": "198.51.100.178"}, "10.0.0.1:1234", "198.51.100.178"},
		{"RemoteAddr with port", nil, "192.168.1.100:54321", "192.168.1.100"},
		{"IPv6 RemoteAddr", nil, "[::1]:8080", "::1"},
		{"RemoteAddr without port", nil, "192.168.1.100", "192.168.1.100"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			if ip := GetClientIP(req); ip != tc.expected {
				t.Errorf("Expected IP '%s', got '%s'", tc.expected, ip)
			}
		})
	}
}
