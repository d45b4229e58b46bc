// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package quiz

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/danielhkuo/personality-quiz/clock"
	"github.com/danielhkuo/personality-quiz/wheel"
)

// Screen is what the quiz currently shows.
type Screen int

const (
	ScreenIntro Screen = iota + 1
	ScreenQuestion
	ScreenWheel
	ScreenResult
)

func (s Screen) String() string {
	switch s {
	case ScreenIntro:
		return "intro"
	case ScreenQuestion:
		return "question"
	case ScreenWheel:
		return "wheel"
	case ScreenResult:
		return "result"
	}
	return "unknown"
}

// MarshalText makes screens readable in JSON.
func (s Screen) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result is the revealed personality. Finished is false until the last
// question has been answered, in which case Text explains why.
type Result struct {
	Finished    bool   `json:"finished"`
	Personality string `json:"personality,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Text        string `json:"text,omitempty"`
}

// Machine drives a quiz from intro through the questions to the result.
// It is not safe for concurrent use: call it, and let its timers fire, on a
// single goroutine (see package clock).
type Machine struct {
	cfg          Config
	presentation Presentation
	text         Text
	fadeDuration time.Duration
	hooks        Hooks
	logger       *slog.Logger

	matrix   *ScoreMatrix
	tracker  *Tracker
	resolver *Resolver
	wheel    *wheel.Wheel
	timers   *clock.Group

	pending *State
	screen  Screen
	fading  bool
	winner  int
}

// New validates cfg, builds the scoring structures and enters the first
// screen. A non-empty previous snapshot is restored on the way in: a
// finished quiz opens on its result, a partial one on its next question.
//
// Configuration problems return an error wrapping ErrConfiguration; the
// host should show ConfigurationMessage instead of the quiz.
func New(cfg Config, previous *State, hooks Hooks, sched clock.Scheduler, opts ...Option) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	matrix, err := NewScoreMatrix(cfg.Questions, cfg.Personalities)
	if err != nil {
		return nil, err
	}

	m := &Machine{
		cfg:          cfg,
		presentation: cfg.presentation(),
		text:         cfg.Text.withDefaults(),
		fadeDuration: cfg.FadeDuration,
		hooks:        hooks,
		logger:       o.logger,
		matrix:       matrix,
		tracker:      NewTracker(matrix),
		resolver:     NewResolver(cfg.Personalities, o.rng),
		timers:       clock.NewGroup(sched),
		winner:       -1,
	}
	if m.fadeDuration <= 0 {
		m.fadeDuration = DefaultFadeDuration
	}

	if m.presentation == PresentationWheel {
		segments := make([]wheel.Segment, len(cfg.Personalities))
		for i, p := range cfg.Personalities {
			segments[i] = wheel.Segment{Label: p.Name, Image: hooks.assetURL(p.Image)}
		}
		m.wheel, err = wheel.New(segments, sched,
			wheel.WithRand(o.rng),
			wheel.WithStepObserver(func(angle float64) {
				if hooks.WheelTurned != nil {
					hooks.WheelTurned(angle)
				}
			}),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
	}

	if previous != nil && !previous.Empty() {
		s := previous.Clone()
		m.pending = &s
	}

	m.reset()
	return m, nil
}

// Run announces the opening screen. Hosts call it once the quiz is visible.
func (m *Machine) Run() {
	if m.screen == ScreenIntro {
		m.hooks.announce(m.text.TitleScreenOpened)
	}
	m.hooks.resize()
}

// Start leaves the intro screen. It reports whether the intro was showing.
func (m *Machine) Start() bool {
	if m.screen != ScreenIntro {
		return false
	}
	m.setScreen(ScreenQuestion)
	m.hooks.resize()
	return true
}

// Answer records option o for question q. Answers for any question but the
// current one, or given while no question is showing, are dropped and
// Answer returns false.
func (m *Machine) Answer(q, o int) bool {
	if m.screen != ScreenQuestion {
		m.logger.Debug("answer discarded", "question", q, "option", o, "screen", m.screen.String())
		return false
	}
	if err := m.tracker.RecordAnswer(q, o); err != nil {
		m.logger.Debug("answer discarded", "error", err)
		return false
	}

	if m.tracker.Complete() {
		m.complete(false)
		return true
	}

	m.hooks.progress(m.tracker.Position())
	m.setScreen(ScreenQuestion)
	m.hooks.resize()
	return true
}

// Skip ends the wheel animation early. It is a no-op unless the wheel is
// spinning.
func (m *Machine) Skip() bool {
	if m.wheel == nil || m.screen != ScreenWheel {
		return false
	}
	return m.wheel.Skip()
}

// Reset starts a retake. Pending timers are cancelled first. If the
// snapshot passed to New has not been consumed yet it is restored instead
// of starting from scratch.
func (m *Machine) Reset() {
	m.reset()
}

// Stop cancels pending timers and any running wheel without changing the
// screen. Hosts call it before dropping a machine.
func (m *Machine) Stop() {
	m.timers.Stop()
	if m.wheel != nil {
		m.wheel.Cancel()
	}
}

func (m *Machine) reset() {
	m.timers.Stop()
	if m.wheel != nil {
		m.wheel.Cancel()
	}
	m.resolver.Forget()
	m.winner = -1
	m.fading = false

	if m.pending != nil {
		snapshot := *m.pending
		m.pending = nil
		m.restore(snapshot)
	} else {
		m.tracker.Reset()
	}

	switch {
	case m.cfg.TitleScreen && m.tracker.Position() == 0:
		m.setScreen(ScreenIntro)
	case !m.tracker.Complete():
		m.setScreen(ScreenQuestion)
	default:
		m.complete(true)
	}
	m.hooks.resize()
}

func (m *Machine) restore(snapshot State) {
	clean, err := SanitizeState(m.matrix, snapshot)
	if err != nil {
		m.logger.Warn("restored state partly discarded", "error", err)
	}
	if clean.Scores == nil {
		m.tracker.Reset()
		return
	}

	m.tracker.RestoreFrom(clean)
	if clean.Results != "" {
		if err := m.resolver.Adopt(clean.Results); err != nil {
			m.logger.Warn("restored result discarded, resolving again", "error", err)
		}
	}
}

// complete resolves the winner and reveals it. Restores skip analytics and
// animation.
func (m *Machine) complete(fromRestore bool) {
	m.winner = m.resolver.Resolve(m.tracker.Scores())

	if fromRestore {
		m.reveal(false, false)
		return
	}

	m.hooks.completion(m.resolver.Name())

	switch m.presentation {
	case PresentationWheel:
		m.setScreen(ScreenWheel)
		m.hooks.announce(m.text.WheelStarted)
		m.hooks.resize()
		m.wheel.SpinTo(m.winner, m.wheelStopped)
	case PresentationFadeIn:
		m.reveal(true, true)
	default:
		m.reveal(false, true)
	}
}

// wheelStopped fades the wheel out, then shows the result.
func (m *Machine) wheelStopped(int) {
	m.fading = true
	m.timers.AfterFunc(m.fadeDuration, func() {
		m.fading = false
		m.reveal(false, true)
	})
}

func (m *Machine) reveal(fade, announce bool) {
	m.setScreen(ScreenResult)
	if fade {
		m.fading = true
		m.timers.AfterFunc(m.fadeDuration, func() {
			m.fading = false
			m.hooks.resize()
		})
	}
	if announce {
		m.hooks.announce(m.resultAnnouncement())
	}
	m.hooks.resize()
}

func (m *Machine) resultAnnouncement() string {
	if m.winner < 0 {
		return ""
	}
	p := m.cfg.Personalities[m.winner]
	text := m.text.ResultsTitle + " " + p.Name
	if m.cfg.DisplayDescription && p.Description != "" {
		text += ". " + p.Description
	}
	return text
}

func (m *Machine) setScreen(s Screen) {
	m.screen = s
	m.hooks.screen(s)
}

// Screen returns the screen currently shown.
func (m *Machine) Screen() Screen {
	return m.screen
}

// Fading reports whether a fade transition is in progress.
func (m *Machine) Fading() bool {
	return m.fading
}

// Position returns the number of answers given so far.
func (m *Machine) Position() int {
	return m.tracker.Position()
}

// Total returns the number of questions.
func (m *Machine) Total() int {
	return m.matrix.Questions()
}

// AnswerGiven reports whether at least one answer was recorded.
func (m *Machine) AnswerGiven() bool {
	return m.tracker.Position() > 0
}

// Score and MaxScore report progress in the shape LMS hosts expect for
// task completion. A personality quiz has no real score.
func (m *Machine) Score() int    { return m.tracker.Position() }
func (m *Machine) MaxScore() int { return m.matrix.Questions() }

// CurrentQuestion returns the question on screen with image descriptors
// resolved to URLs.
func (m *Machine) CurrentQuestion() (int, Question, bool) {
	if m.screen != ScreenQuestion {
		return -1, Question{}, false
	}
	idx := m.tracker.Position()
	src := m.cfg.Questions[idx]

	q := Question{
		Text:    src.Text,
		Image:   m.hooks.assetURL(src.Image),
		Answers: make([]Answer, len(src.Answers)),
	}
	for i, a := range src.Answers {
		q.Answers[i] = Answer{Text: a.Text, Image: m.hooks.assetURL(a.Image)}
	}
	return idx, q, true
}

// State returns a snapshot of the current progress. The winner is included
// as soon as it has been resolved, so a reload never rolls it again.
func (m *Machine) State() State {
	return State{
		Scores:       m.tracker.Scores(),
		AnswersGiven: m.tracker.Answers(),
		Results:      m.resolver.Name(),
	}
}

// Results returns the revealed personality, or a "not finished" result.
func (m *Machine) Results() Result {
	if !m.tracker.Complete() || m.winner < 0 {
		return Result{Text: m.text.NotFinished}
	}
	p := m.cfg.Personalities[m.winner]
	return Result{
		Finished:    true,
		Personality: p.Name,
		Description: p.Description,
		Image:       m.hooks.assetURL(p.Image),
	}
}

// Wheel returns the reveal wheel, or nil when the wheel is not used.
func (m *Machine) Wheel() *wheel.Wheel {
	return m.wheel
}

// Personalities returns the configured personalities in index order.
func (m *Machine) Personalities() []Personality {
	return append([]Personality(nil), m.cfg.Personalities...)
}
