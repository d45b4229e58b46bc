// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package content

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/personality-quiz/quiz"
)

// BlankAnswerText stands in for answers authored without text.
const BlankAnswerText = "ㅤ"

// Params is an authored quiz definition as read from YAML or JSON.
type Params struct {
	ShowTitleScreen bool          `yaml:"showTitleScreen" json:"showTitleScreen"`
	TitleScreen     TitleScreen   `yaml:"titleScreen" json:"titleScreen"`
	Personalities   []Personality `yaml:"personalities" json:"personalities"`
	Questions       []Question    `yaml:"questions" json:"questions"`
	Visual          Visual        `yaml:"visual" json:"visual"`
	ResultScreen    ResultScreen  `yaml:"resultScreen" json:"resultScreen"`
	L10n            L10n          `yaml:"l10n" json:"l10n"`
	A11y            A11y          `yaml:"a11y" json:"a11y"`
}

// TitleScreen is shown before the first question when ShowTitleScreen is set.
type TitleScreen struct {
	Introduction string `yaml:"introduction" json:"introduction"`
	Medium       string `yaml:"medium" json:"medium"`
}

// Personality is an authored personality, before names are trimmed.
type Personality struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Image       string `yaml:"image" json:"image"`
}

// Question is an authored question.
type Question struct {
	Text    string   `yaml:"text" json:"text"`
	Image   string   `yaml:"image" json:"image"`
	Answers []Answer `yaml:"answers" json:"answers"`
}

// Answer is an authored option. Personality holds the raw effect string;
// a nil Text is replaced with BlankAnswerText.
type Answer struct {
	Text        *string `yaml:"text" json:"text"`
	Image       string  `yaml:"image" json:"image"`
	Personality string  `yaml:"personality" json:"personality"`
}

// Visual holds the animation and progress bar switches.
type Visual struct {
	// IsAnimationOn defaults to true when omitted.
	IsAnimationOn   *bool  `yaml:"isAnimationOn" json:"isAnimationOn"`
	ShowProgressBar *bool  `yaml:"showProgressBar" json:"showProgressBar"`
	Appearance      string `yaml:"appearance" json:"appearance"`
}

// ResultScreen selects how the winner is revealed.
type ResultScreen struct {
	Animation          string `yaml:"animation" json:"animation"`
	DisplayDescription bool   `yaml:"displayDescription" json:"displayDescription"`
}

// L10n holds the visible texts.
type L10n struct {
	NoQuestions     string `yaml:"noQuestions" json:"noQuestions"`
	NoPersonalities string `yaml:"noPersonalities" json:"noPersonalities"`
	Start           string `yaml:"start" json:"start"`
	CurrentOfTotal  string `yaml:"currentOfTotal" json:"currentOfTotal"`
	Skip            string `yaml:"skip" json:"skip"`
	Reset           string `yaml:"reset" json:"reset"`
	NotFinished     string `yaml:"notFinished" json:"notFinished"`
}

// A11y holds the texts read out to screen reader users.
type A11y struct {
	TitleScreenWasOpened string `yaml:"titleScreenWasOpened" json:"titleScreenWasOpened"`
	WheelStarted         string `yaml:"wheelStarted" json:"wheelStarted"`
	ProgressBar          string `yaml:"progressBar" json:"progressBar"`
	ResultsTitle         string `yaml:"resultsTitle" json:"resultsTitle"`
	Standby              string `yaml:"standby" json:"standby"`
}

// DefaultL10n returns the built-in button and message texts.
func DefaultL10n() L10n {
	text := quiz.DefaultText()
	return L10n{
		NoQuestions:     text.NoQuestions,
		NoPersonalities: text.NoPersonalities,
		Start:           "Start",
		CurrentOfTotal:  "@current of @total",
		Skip:            "Skip",
		Reset:           "Restart",
		NotFinished:     text.NotFinished,
	}
}

// DefaultA11y returns the built-in screen reader texts.
func DefaultA11y() A11y {
	text := quiz.DefaultText()
	return A11y{
		TitleScreenWasOpened: text.TitleScreenOpened,
		WheelStarted:         text.WheelStarted,
		ProgressBar:          "Progress bar",
		ResultsTitle:         text.ResultsTitle,
		Standby:              "Stand by.",
	}
}

// Parse decodes a YAML or JSON definition and fills in defaults.
func Parse(data []byte) (Params, error) {
	var p Params
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Params{}, fmt.Errorf("failed to parse quiz definition: %w", err)
	}
	p.applyDefaults()
	return p, nil
}

// Load reads and parses a definition file.
func Load(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("failed to read quiz definition: %w", err)
	}
	return Parse(data)
}

func (p *Params) applyDefaults() {
	if p.Visual.IsAnimationOn == nil {
		on := true
		p.Visual.IsAnimationOn = &on
	}
	if p.Visual.ShowProgressBar == nil {
		on := true
		p.Visual.ShowProgressBar = &on
	}
	if p.Visual.Appearance == "" {
		p.Visual.Appearance = "classic"
	}

	l, d := &p.L10n, DefaultL10n()
	fill(&l.NoQuestions, d.NoQuestions)
	fill(&l.NoPersonalities, d.NoPersonalities)
	fill(&l.Start, d.Start)
	fill(&l.CurrentOfTotal, d.CurrentOfTotal)
	fill(&l.Skip, d.Skip)
	fill(&l.Reset, d.Reset)
	fill(&l.NotFinished, d.NotFinished)

	a, da := &p.A11y, DefaultA11y()
	fill(&a.TitleScreenWasOpened, da.TitleScreenWasOpened)
	fill(&a.WheelStarted, da.WheelStarted)
	fill(&a.ProgressBar, da.ProgressBar)
	fill(&a.ResultsTitle, da.ResultsTitle)
	fill(&a.Standby, da.Standby)
}

func fill(v *string, def string) {
	if strings.TrimSpace(*v) == "" {
		*v = def
	}
}

// Text collects the strings the quiz engine emits.
func (p Params) Text() quiz.Text {
	return quiz.Text{
		NoPersonalities:   p.L10n.NoPersonalities,
		NoQuestions:       p.L10n.NoQuestions,
		NotFinished:       p.L10n.NotFinished,
		TitleScreenOpened: p.A11y.TitleScreenWasOpened,
		WheelStarted:      p.A11y.WheelStarted,
		ResultsTitle:      p.A11y.ResultsTitle,
	}
}

// Config sanitises the parameters and converts them for the quiz engine.
// The returned config may still be empty; quiz.New reports that as a
// configuration error.
func (p Params) Config() (quiz.Config, Report, error) {
	clean, report := p.Sanitize()

	presentation, err := quiz.ParsePresentation(clean.ResultScreen.Animation)
	if err != nil {
		return quiz.Config{}, report, err
	}

	cfg := quiz.Config{
		Personalities:      make([]quiz.Personality, len(clean.Personalities)),
		Questions:          make([]quiz.Question, len(clean.Questions)),
		TitleScreen:        clean.ShowTitleScreen,
		Presentation:       presentation,
		Animated:           clean.Visual.IsAnimationOn == nil || *clean.Visual.IsAnimationOn,
		DisplayDescription: clean.ResultScreen.DisplayDescription,
		Text:               clean.Text(),
	}
	for i, ps := range clean.Personalities {
		cfg.Personalities[i] = quiz.Personality{Name: ps.Name, Description: ps.Description, Image: ps.Image}
	}
	for i, q := range clean.Questions {
		answers := make([]quiz.Answer, len(q.Answers))
		for j, a := range q.Answers {
			answers[j] = quiz.Answer{Text: *a.Text, Image: a.Image, Personalities: a.Personality}
		}
		cfg.Questions[i] = quiz.Question{Text: q.Text, Image: q.Image, Answers: answers}
	}
	return cfg, report, nil
}
