// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/personality-quiz/analytics"
	"github.com/danielhkuo/personality-quiz/auth"
	"github.com/danielhkuo/personality-quiz/cliparse"
	"github.com/danielhkuo/personality-quiz/clock"
	"github.com/danielhkuo/personality-quiz/middleware"
	"github.com/danielhkuo/personality-quiz/models"
	"github.com/danielhkuo/personality-quiz/quiz"
)

// completionTimeout bounds completion log writes, which outlive the request.
const completionTimeout = 5 * time.Second

type SessionHandler struct {
	db         *sql.DB
	cfg        cliparse.Config
	rt         *Runtime
	sessions   *registry
	statements analytics.Builder
}

func NewSessionHandler(db *sql.DB, cfg cliparse.Config, rt *Runtime) *SessionHandler {
	return &SessionHandler{
		db:       db,
		cfg:      cfg,
		rt:       rt,
		sessions: newRegistry(cfg.SessionCacheSize),
		statements: analytics.Builder{
			ActivityID: "urn:personality-quiz",
			Title:      rt.Title,
		},
	}
}

// CreateSession handles POST /sessions
// An optional previous_state resumes a run saved elsewhere.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	if msg := h.rt.ConfigurationMessage(); msg != "" {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, msg)
		return
	}

	var req models.CreateSessionRequest
	if err := middleware.ParseOptionalJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	sessionID := auth.NewSessionID()
	clientHash := auth.HashClient(middleware.GetClientIP(r), h.cfg.SessionSalt)

	// The machine is built on the loop but only becomes reachable once its
	// row exists.
	var s *session
	var state quiz.State
	var view models.SessionView
	var opErr error
	err := h.rt.Loop.Do(r.Context(), func() {
		s, opErr = h.newSession(sessionID, req.PreviousState)
		if opErr != nil {
			return
		}
		s.machine.Run()
		state = s.machine.State()
		view = h.view(s)
	})
	if err == nil {
		err = opErr
	}
	if err == nil {
		err = insertSession(r.Context(), h.db, sessionID, state, clientHash)
		if err != nil {
			_ = h.rt.Loop.Post(s.machine.Stop)
		}
	}
	if err == nil {
		// A cancelled request must not leave a stored session without its
		// machine, so this step ignores cancellation.
		err = h.rt.Loop.Do(context.WithoutCancel(r.Context()), func() {
			h.sessions.add(s)
		})
	}
	if err != nil {
		slog.Error("failed to create session", "error", err)
		h.writeError(w, err)
		return
	}

	slog.Info("session created", "session_id", sessionID, "resumed", req.PreviousState != nil, "screen", view.Screen)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		SessionID:    sessionID,
		SessionToken: auth.GenerateSessionToken(sessionID, h.cfg.SessionSalt),
		Session:      view,
	})
}

// GetSession handles GET /sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	var view models.SessionView
	if !h.withSession(w, r, func(s *session) *commit {
		view = h.view(s)
		return nil
	}) {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, view)
}

// GetState handles GET /sessions/{id}/state
// Returns the snapshot a host would store to resume the quiz later.
func (h *SessionHandler) GetState(w http.ResponseWriter, r *http.Request) {
	var state quiz.State
	if !h.withSession(w, r, func(s *session) *commit {
		state = s.machine.State()
		return nil
	}) {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, state)
}

// Start handles POST /sessions/{id}/start
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	var view models.SessionView
	var started bool
	if !h.withSession(w, r, func(s *session) *commit {
		started = s.machine.Start()
		if started {
			h.rt.Recorder.RecordStart()
		}
		view = h.view(s)
		return nil
	}) {
		return
	}
	if !started {
		middleware.JSONResponse(w, http.StatusConflict, view)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, view)
}

// SubmitAnswer handles POST /sessions/{id}/answers
// Answers must name the question on screen. Anything else is rejected with
// 409 and the current view so the client can resync.
func (h *SessionHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitAnswerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var resp models.SubmitAnswerResponse
	if !h.withSession(w, r, func(s *session) *commit {
		resp.Accepted = s.machine.Answer(req.Question, req.Option)
		resp.Session = h.view(s)
		if !resp.Accepted {
			return nil
		}
		return s.commit()
	}) {
		return
	}

	if !resp.Accepted {
		middleware.JSONResponse(w, http.StatusConflict, resp)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Skip handles POST /sessions/{id}/skip
// Stops the wheel on its target. Repeated calls are harmless.
func (h *SessionHandler) Skip(w http.ResponseWriter, r *http.Request) {
	var view models.SessionView
	if !h.withSession(w, r, func(s *session) *commit {
		s.machine.Skip()
		view = h.view(s)
		return nil
	}) {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, view)
}

// Retake handles POST /sessions/{id}/retake
func (h *SessionHandler) Retake(w http.ResponseWriter, r *http.Request) {
	var view models.SessionView
	if !h.withSession(w, r, func(s *session) *commit {
		s.machine.Reset()
		h.rt.Recorder.RecordRetake()
		view = h.view(s)
		return s.commit()
	}) {
		return
	}
	slog.Info("session retaken", "session_id", view.ID)
	middleware.JSONResponse(w, http.StatusOK, view)
}

// GetResults handles GET /sessions/{id}/results
func (h *SessionHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	var result quiz.Result
	if !h.withSession(w, r, func(s *session) *commit {
		result = s.machine.Results()
		return nil
	}) {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, result)
}

// GetStatement handles GET /sessions/{id}/xapi
// Returns the "answered" statement for reporting tools.
func (h *SessionHandler) GetStatement(w http.ResponseWriter, r *http.Request) {
	var stmt analytics.Statement
	if !h.withSession(w, r, func(s *session) *commit {
		stmt = h.statements.Answered(s.machine.Results().Personality, s.machine.Score(), s.machine.MaxScore())
		return nil
	}) {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, stmt)
}

// Stream handles GET /sessions/{id}/stream
// Upgrades to a websocket carrying screen changes, wheel angles,
// announcements and analytics statements.
func (h *SessionHandler) Stream(w http.ResponseWriter, r *http.Request) {
	var view models.SessionView
	if !h.withSession(w, r, func(s *session) *commit {
		view = h.view(s)
		return nil
	}) {
		return
	}

	initial := models.StreamEvent{Type: models.EventScreen, Data: view}
	if err := h.rt.Hub.Serve(w, r, view.ID, initial); err != nil {
		// Upgrade has already written the HTTP error.
		slog.Warn("stream upgrade failed", "session_id", view.ID, "error", err)
	}
}

// withSession authenticates the request and runs f on the event loop with
// the session loaded. A commit returned by f is saved after the loop is
// released; if that fails the live session is dropped so the next request
// rebuilds it from the last saved snapshot. It writes the error response
// and returns false when anything fails.
func (h *SessionHandler) withSession(w http.ResponseWriter, r *http.Request, f func(s *session) *commit) bool {
	sessionID, err := auth.ParseSessionID(r.PathValue("id"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return false
	}
	if err := auth.ValidateSessionToken(sessionID, middleware.SessionToken(r), h.cfg.SessionSalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid session token")
		return false
	}
	if msg := h.rt.ConfigurationMessage(); msg != "" {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, msg)
		return false
	}

	ctx := r.Context()
	var live *session
	var c *commit
	err = h.rt.Loop.Do(ctx, func() {
		if s, ok := h.sessions.get(sessionID); ok {
			live = s
			c = f(s)
		}
	})
	if err == nil && live == nil {
		err = h.rebuild(ctx, sessionID, func(s *session) {
			live = s
			c = f(s)
		})
	}
	if err == nil && c != nil {
		if err = h.persist(ctx, c); err != nil {
			_ = h.rt.Loop.Post(func() { h.sessions.remove(live) })
		}
	}
	if err != nil {
		if !errors.Is(err, errSessionNotFound) {
			slog.Error("session request failed", "session_id", sessionID, "error", err)
		}
		h.writeError(w, err)
		return false
	}
	return true
}

// rebuild restores a session missing from the cache from its stored
// snapshot and hands it to f on the event loop. The database read happens
// off the loop.
func (h *SessionHandler) rebuild(ctx context.Context, sessionID string, f func(s *session)) error {
	stored, err := loadState(ctx, h.db, sessionID)
	if errors.Is(err, quiz.ErrConsistency) {
		slog.Warn("stored state discarded", "session_id", sessionID, "error", err)
	} else if err != nil {
		return err
	}

	var opErr error
	err = h.rt.Loop.Do(ctx, func() {
		// Another request may have rebuilt it meanwhile
		s, ok := h.sessions.get(sessionID)
		if !ok {
			s, opErr = h.newSession(sessionID, &stored.state)
			if opErr != nil {
				return
			}
			s.version = stored.version
			h.sessions.add(s)
			slog.Debug("session rebuilt", "session_id", sessionID, "position", s.machine.Position())
		}
		f(s)
	})
	if err != nil {
		return err
	}
	return opErr
}

// persist saves a commit, then logs the completions it carries. Completions
// are only logged once the snapshot that contains them is stored, so a
// failed save never leaves a completion behind for a run that is replayed.
func (h *SessionHandler) persist(ctx context.Context, c *commit) error {
	if err := saveState(ctx, h.db, c.id, c.version, c.state); err != nil {
		return err
	}

	total := len(h.rt.Quiz.Questions)
	for _, personality := range c.completions {
		h.rt.Recorder.RecordCompletion(personality)
		// The reveal has happened; a client hanging up must not lose it.
		insertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), completionTimeout)
		if err := insertCompletion(insertCtx, h.db, c.id, personality, total); err != nil {
			slog.Error("failed to record completion", "session_id", c.id, "error", err)
		}
		cancel()
		slog.Info("quiz completed", "session_id", c.id, "personality", personality)
	}
	return nil
}

func (h *SessionHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errSessionNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, errStaleSession):
		middleware.ErrorResponse(w, http.StatusConflict, "Session changed, reload it")
	case errors.Is(err, clock.ErrLoopClosed), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Server shutting down")
	default:
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}

// newSession builds a machine whose hooks feed the stream and analytics,
// and queue reveals for the completion log. Runs on the event loop.
func (h *SessionHandler) newSession(sessionID string, previous *quiz.State) (*session, error) {
	s := &session{id: sessionID}
	hub := h.rt.Hub

	hooks := quiz.Hooks{
		NotifyProgress: func(position int) {
			h.rt.Recorder.RecordProgress(position)
			hub.Publish(sessionID, models.EventXAPI, h.statements.Progressed(position))
		},
		NotifyCompletion: func(personality string) {
			// Logged by persist once the snapshot is saved
			s.completed = append(s.completed, personality)
			total := len(h.rt.Quiz.Questions)
			hub.Publish(sessionID, models.EventXAPI, h.statements.Completed(personality, total, total))
		},
		RequestResize: func() {
			hub.Publish(sessionID, models.EventResize, nil)
		},
		Announce: func(text string) {
			hub.Publish(sessionID, models.EventAnnounce, map[string]string{"text": text})
		},
		ResolveAssetURL: h.rt.AssetURL,
		WheelTurned: func(angle float64) {
			hub.Publish(sessionID, models.EventWheel, map[string]float64{"angle": angle})
		},
		ScreenChanged: func(quiz.Screen) {
			// Fires during construction too, before there is a machine to
			// describe.
			if s.machine == nil {
				return
			}
			hub.Publish(sessionID, models.EventScreen, h.view(s))
		},
	}

	m, err := quiz.New(h.rt.Quiz, previous, hooks, h.rt.Loop,
		quiz.WithRand(h.rt.sessionRand(sessionID)),
		quiz.WithLogger(slog.Default().With("session_id", sessionID)),
	)
	if err != nil {
		return nil, err
	}
	s.machine = m
	return s, nil
}

// view describes what the session's machine shows right now.
func (h *SessionHandler) view(s *session) models.SessionView {
	m := s.machine
	d := h.rt.Display
	v := models.SessionView{
		ID:         s.id,
		Screen:     m.Screen().String(),
		Fading:     m.Fading(),
		Position:   m.Position(),
		Total:      m.Total(),
		Appearance: d.Appearance,
		Labels: models.Labels{
			Start:       d.Start,
			Skip:        d.Skip,
			Reset:       d.Reset,
			ProgressBar: d.ProgressBar,
			Standby:     d.Standby,
		},
	}

	switch m.Screen() {
	case quiz.ScreenIntro:
		v.Intro = &models.IntroView{Introduction: d.Introduction, Image: h.rt.AssetURL(d.TitleImage)}
	case quiz.ScreenQuestion:
		if d.ShowProgressBar {
			current := m.Position() + 1
			v.Progress = &models.ProgressView{
				Current: current,
				Total:   m.Total(),
				Text:    d.Progress(current, m.Total()),
			}
		}
		if idx, q, ok := m.CurrentQuestion(); ok {
			qv := &models.QuestionView{Index: idx, Text: q.Text, Image: q.Image}
			for _, a := range q.Answers {
				qv.Answers = append(qv.Answers, models.AnswerView{Text: a.Text, Image: a.Image})
			}
			v.Question = qv
		}
	case quiz.ScreenResult:
		result := m.Results()
		v.Result = &result
	}

	if wh := m.Wheel(); wh != nil && m.Screen() == quiz.ScreenWheel {
		wv := &models.WheelView{Angle: wh.Angle(), Spinning: wh.Spinning()}
		for _, seg := range wh.Segments() {
			wv.Segments = append(wv.Segments, models.WheelSegment{Label: seg.Label, Image: seg.Image})
		}
		v.Wheel = wv
	}
	return v
}
