// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"github.com/danielhkuo/personality-quiz/quiz"
)

// Stream event types
const (
	EventScreen   = "screen"
	EventWheel    = "wheel"
	EventAnnounce = "announce"
	EventResize   = "resize"
	EventXAPI     = "xapi"
)

// Request types

type CreateSessionRequest struct {
	// PreviousState resumes a run saved by another host.
	PreviousState *quiz.State `json:"previous_state,omitempty"`
}

type SubmitAnswerRequest struct {
	Question int `json:"question"`
	Option   int `json:"option"`
}

// Response types

type CreateSessionResponse struct {
	SessionID    string      `json:"session_id"`
	SessionToken string      `json:"session_token"`
	Session      SessionView `json:"session"`
}

type SubmitAnswerResponse struct {
	Accepted bool        `json:"accepted"`
	Session  SessionView `json:"session"`
}

// SessionView is everything a client needs to render the current screen.
type SessionView struct {
	ID       string `json:"id"`
	Screen   string `json:"screen"`
	Fading   bool   `json:"fading"`
	Position int    `json:"position"`
	Total    int    `json:"total"`

	Appearance string `json:"appearance,omitempty"`
	Labels     Labels `json:"labels"`

	// Intro is set on the title screen.
	Intro *IntroView `json:"intro,omitempty"`

	// Progress is set on the question screen unless the progress bar is
	// turned off.
	Progress *ProgressView `json:"progress,omitempty"`

	// Question is set on the question screen.
	Question *QuestionView `json:"question,omitempty"`

	// Wheel is set while the wheel is used for the reveal.
	Wheel *WheelView `json:"wheel,omitempty"`

	// Result is set on the result screen.
	Result *quiz.Result `json:"result,omitempty"`
}

// Labels are the button and screen reader texts.
type Labels struct {
	Start       string `json:"start"`
	Skip        string `json:"skip"`
	Reset       string `json:"reset"`
	ProgressBar string `json:"progress_bar"`
	Standby     string `json:"standby"`
}

type IntroView struct {
	Introduction string `json:"introduction,omitempty"`
	Image        string `json:"image,omitempty"`
}

// ProgressView counts questions from 1; Text is the localised
// "current of total".
type ProgressView struct {
	Current int    `json:"current"`
	Total   int    `json:"total"`
	Text    string `json:"text"`
}

type QuestionView struct {
	Index   int          `json:"index"`
	Text    string       `json:"text"`
	Image   string       `json:"image,omitempty"`
	Answers []AnswerView `json:"answers"`
}

type AnswerView struct {
	Text  string `json:"text"`
	Image string `json:"image,omitempty"`
}

type WheelView struct {
	Segments []WheelSegment `json:"segments"`
	Angle    float64        `json:"angle"`
	Spinning bool           `json:"spinning"`
}

type WheelSegment struct {
	Label string `json:"label"`
	Image string `json:"image,omitempty"`
}

// PersonalityCount is one row of the completion statistics.
type PersonalityCount struct {
	Personality string `json:"personality"`
	Count       int    `json:"count"`
}

type StatsResponse struct {
	Completions []PersonalityCount `json:"completions"`
	Total       int                `json:"total"`
}

// StreamEvent is one message on a session's websocket.
type StreamEvent struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
