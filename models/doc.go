// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and event types for the API.

# Request Types

  - CreateSessionRequest: previous_state (optional quiz.State to resume)
  - SubmitAnswerRequest: question, option

# Response Types

  - CreateSessionResponse: session_id, session_token, session
  - SubmitAnswerResponse: accepted, session
  - SessionView: screen, position, total and the screen's payload
  - StatsResponse: completions per personality
  - ErrorResponse: error, message

# Views

SessionView carries exactly one payload for the visible screen:

	intro     no payload
	question  QuestionView (answers without their scoring)
	wheel     WheelView (segments, angle, spinning)
	result    quiz.Result

Answer effects never leave the server.

# Stream Events

StreamEvent{Type, Data} is pushed over the session websocket. Types:

	screen    SessionView after a screen change
	wheel     {"angle": float} after every wheel step
	announce  {"text": string} for assistive technology
	resize    no data
	xapi      analytics.Statement
*/
package models
