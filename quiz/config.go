// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package quiz

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"
)

// Presentation selects how the result is revealed.
type Presentation string

const (
	PresentationPlain  Presentation = "plain"
	PresentationFadeIn Presentation = "fade-in"
	PresentationWheel  Presentation = "wheel"
)

// ParsePresentation accepts the configured names. "none" and "" mean plain.
func ParsePresentation(s string) (Presentation, error) {
	switch s {
	case "", "none", string(PresentationPlain):
		return PresentationPlain, nil
	case string(PresentationFadeIn):
		return PresentationFadeIn, nil
	case string(PresentationWheel):
		return PresentationWheel, nil
	}
	return "", fmt.Errorf("%w: unknown presentation %q", ErrConfiguration, s)
}

// DefaultFadeDuration is how long the wheel takes to fade out before the
// result is shown.
const DefaultFadeDuration = 500 * time.Millisecond

// Text holds every user-facing string the machine emits.
type Text struct {
	NoPersonalities   string `json:"noPersonalities" yaml:"noPersonalities"`
	NoQuestions       string `json:"noQuestions" yaml:"noQuestions"`
	NotFinished       string `json:"notFinished" yaml:"notFinished"`
	TitleScreenOpened string `json:"titleScreenWasOpened" yaml:"titleScreenWasOpened"`
	WheelStarted      string `json:"wheelStarted" yaml:"wheelStarted"`
	ResultsTitle      string `json:"resultsTitle" yaml:"resultsTitle"`
}

// DefaultText returns the built-in English strings.
func DefaultText() Text {
	return Text{
		NoPersonalities:   "It seems that there are not enough valid personalities set. Try checking for missing names or duplicate names.",
		NoQuestions:       "It seems that there is no valid question set. Try checking for valid personality names.",
		NotFinished:       "The quiz was not finished yet.",
		TitleScreenOpened: "The title screen was opened.",
		WheelStarted:      "The wheel of fortune started spinning. Please wait a moment.",
		ResultsTitle:      "Here are your results.",
	}
}

// withDefaults fills empty strings from DefaultText.
func (t Text) withDefaults() Text {
	d := DefaultText()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&t.NoPersonalities, d.NoPersonalities)
	fill(&t.NoQuestions, d.NoQuestions)
	fill(&t.NotFinished, d.NotFinished)
	fill(&t.TitleScreenOpened, d.TitleScreenOpened)
	fill(&t.WheelStarted, d.WheelStarted)
	fill(&t.ResultsTitle, d.ResultsTitle)
	return t
}

// Config describes one quiz. Zero values are valid defaults except for
// Personalities and Questions, which must be non-empty.
type Config struct {
	Personalities []Personality
	Questions     []Question

	// TitleScreen enables the intro screen before the first question.
	TitleScreen bool

	// Presentation defaults to plain. Animated=false forces plain.
	Presentation Presentation
	Animated     bool

	// DisplayDescription appends the description to the result announcement.
	DisplayDescription bool

	// FadeDuration defaults to DefaultFadeDuration.
	FadeDuration time.Duration

	Text Text
}

var (
	errNoPersonalities = fmt.Errorf("%w: no personalities", ErrConfiguration)
	errNoQuestions     = fmt.Errorf("%w: no questions", ErrConfiguration)
)

// Validate runs the checks that must pass before any scoring structure is
// built.
func (c Config) Validate() error {
	if len(c.Personalities) == 0 {
		return errNoPersonalities
	}
	if len(c.Questions) == 0 {
		return errNoQuestions
	}
	for i, q := range c.Questions {
		if len(q.Answers) == 0 {
			return fmt.Errorf("%w: question %d has no answers", ErrConfiguration, i)
		}
	}
	return nil
}

// presentation resolves the effective reveal mode.
func (c Config) presentation() Presentation {
	if !c.Animated {
		return PresentationPlain
	}
	if c.Presentation == "" {
		return PresentationPlain
	}
	return c.Presentation
}

// ConfigurationMessage returns the static text shown instead of the quiz
// when New fails with err.
func ConfigurationMessage(err error, text Text) string {
	text = text.withDefaults()
	switch {
	case errors.Is(err, errNoPersonalities):
		return text.NoPersonalities
	case errors.Is(err, ErrConfiguration):
		return text.NoQuestions
	}
	return ""
}

type options struct {
	logger *slog.Logger
	rng    *rand.Rand
}

// Option customises a Machine.
type Option func(*options)

// WithLogger sets the logger used for discarded input and restore fallbacks.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRand sets the random source for tie-breaks and wheel stop angles.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}
