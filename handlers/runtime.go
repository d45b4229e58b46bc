// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"math/rand/v2"
	"net/url"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/personality-quiz/analytics"
	"github.com/danielhkuo/personality-quiz/clock"
	"github.com/danielhkuo/personality-quiz/content"
	"github.com/danielhkuo/personality-quiz/quiz"
)

// Runtime is what every session shares: the quiz, the event loop the
// machines run on, and where their events go.
type Runtime struct {
	Quiz quiz.Config

	// ConfigErr is set when Quiz cannot be played. Session creation then
	// answers with the configured message instead.
	ConfigErr error

	// Title names the activity in analytics statements.
	Title string

	// Display carries the title screen, progress bar and button texts into
	// every session view.
	Display content.Display

	Loop     *clock.Loop
	Hub      *Hub
	Recorder analytics.Recorder
	Gatherer prometheus.Gatherer

	// Seed fixes per-session randomness when non-zero.
	Seed uint64

	assetBase *url.URL
}

// NewRuntime checks quizCfg once so a broken definition is reported at
// startup and on every session request.
func NewRuntime(quizCfg quiz.Config, title string, loop *clock.Loop, assetBaseURL string) *Runtime {
	rt := &Runtime{
		Quiz:     quizCfg,
		Title:    title,
		Display:  content.DefaultDisplay(),
		Loop:     loop,
		Hub:      NewHub(),
		Recorder: analytics.Nop{},
	}
	if err := quizCfg.Validate(); err != nil {
		rt.ConfigErr = err
	} else if _, err := quiz.NewScoreMatrix(quizCfg.Questions, quizCfg.Personalities); err != nil {
		rt.ConfigErr = err
	}
	if assetBaseURL != "" {
		if u, err := url.Parse(assetBaseURL); err == nil {
			rt.assetBase = u
		}
	}
	return rt
}

// ConfigurationMessage is the text shown instead of the quiz, or "".
func (rt *Runtime) ConfigurationMessage() string {
	if rt.ConfigErr == nil {
		return ""
	}
	return quiz.ConfigurationMessage(rt.ConfigErr, rt.Quiz.Text)
}

// AssetURL resolves an image descriptor against the asset base URL.
// Absolute URLs pass through.
func (rt *Runtime) AssetURL(descriptor string) string {
	if descriptor == "" || rt.assetBase == nil {
		return descriptor
	}
	ref, err := url.Parse(descriptor)
	if err != nil || ref.IsAbs() || strings.HasPrefix(descriptor, "//") {
		return descriptor
	}
	return rt.assetBase.ResolveReference(ref).String()
}

// sessionRand returns the random source for one session. With a seed, a
// session replays the same tie-breaks and wheel stops when it is rebuilt.
func (rt *Runtime) sessionRand(sessionID string) *rand.Rand {
	if rt.Seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(rt.Seed, xxhash.Sum64String(sessionID)))
}
