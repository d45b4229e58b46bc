// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package content

import (
	"errors"
	"reflect"
	"testing"

	"github.com/danielhkuo/personality-quiz/quiz"
)

func TestLoad_SanitizesDefinition(t *testing.T) {
	p, err := Load("testdata/fantasy.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.L10n.Skip != "Skip the wheel" {
		t.Errorf("expected custom skip text, got %q", p.L10n.Skip)
	}
	if p.L10n.Start != "Start" {
		t.Errorf("expected default start text, got %q", p.L10n.Start)
	}

	cfg, report, err := p.Config()
	if err != nil {
		t.Fatalf("Config failed: %v", err)
	}

	var names []string
	for _, ps := range cfg.Personalities {
		names = append(names, ps.Name)
	}
	if !reflect.DeepEqual(names, []string{"Wizard", "Knight", "Rogue"}) {
		t.Errorf("unexpected personalities %v", names)
	}
	if len(report.DroppedPersonalities) != 2 {
		t.Errorf("expected 2 dropped personalities, got %v", report.DroppedPersonalities)
	}

	if len(cfg.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(cfg.Questions))
	}
	if report.DroppedQuestions != 1 || report.DroppedAnswers != 1 {
		t.Errorf("unexpected report %+v", report)
	}

	first := cfg.Questions[0].Answers
	if first[1].Personalities != "knight=1" {
		t.Errorf("expected dragon dropped, got %q", first[1].Personalities)
	}
	if first[2].Personalities != "rogue=1,knight=-1" {
		t.Errorf("unexpected effects %q", first[2].Personalities)
	}
	if first[2].Text != BlankAnswerText {
		t.Errorf("expected blank text placeholder, got %q", first[2].Text)
	}

	if !cfg.TitleScreen || !cfg.Animated || !cfg.DisplayDescription {
		t.Error("flags not carried over")
	}
	if cfg.Presentation != quiz.PresentationWheel {
		t.Errorf("expected wheel, got %q", cfg.Presentation)
	}

	// The sanitised config must build
	if _, err := quiz.NewScoreMatrix(cfg.Questions, cfg.Personalities); err != nil {
		t.Errorf("sanitised config rejected: %v", err)
	}
}

func TestParse_JSON(t *testing.T) {
	p, err := Parse([]byte(`{
		"personalities": [{"name": "A"}, {"name": "B"}],
		"questions": [{"text": "q", "answers": [{"text": "x", "personality": "a=2,b"}]}],
		"visual": {"isAnimationOn": false},
		"resultScreen": {"animation": "wheel"}
	}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	cfg, report, err := p.Config()
	if err != nil {
		t.Fatal(err)
	}
	if !report.Empty() {
		t.Errorf("expected empty report, got %+v", report)
	}
	if cfg.Animated {
		t.Error("animation should be off")
	}
	if cfg.Questions[0].Answers[0].Personalities != "a=2,b=1" {
		t.Errorf("unexpected effects %q", cfg.Questions[0].Answers[0].Personalities)
	}
}

func TestConfig_AllInvalidYieldsConfigurationError(t *testing.T) {
	p, err := Parse([]byte(`
personalities:
  - name: A
questions:
  - text: q
    answers:
      - text: x
        personality: nobody
`))
	if err != nil {
		t.Fatal(err)
	}
	cfg, _, err := p.Config()
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Questions) != 0 {
		t.Fatalf("expected no questions, got %d", len(cfg.Questions))
	}
	if err := cfg.Validate(); !errors.Is(err, quiz.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestConfig_UnknownAnimation(t *testing.T) {
	p, _ := Parse([]byte(`
personalities: [{name: A}]
questions: [{text: q, answers: [{text: x, personality: a}]}]
resultScreen: {animation: confetti}
`))
	if _, _, err := p.Config(); !errors.Is(err, quiz.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("personalities: [")); err == nil {
		t.Error("expected parse error")
	}
	if _, err := Load("testdata/missing.yaml"); err == nil {
		t.Error("expected read error")
	}
}

func TestDisplay(t *testing.T) {
	p, err := Load("testdata/fantasy.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	d := p.Display()
	want := Display{
		Introduction:    "Which adventurer are you?",
		TitleImage:      "castle.png",
		ShowProgressBar: false,
		Appearance:      "classic",
		CurrentOfTotal:  "Question @current / @total",
		Start:           "Start",
		Skip:            "Skip the wheel",
		Reset:           "Restart",
		ProgressBar:     "Progress bar",
		Standby:         "Stand by.",
	}
	if d != want {
		t.Errorf("Display() = %+v, want %+v", d, want)
	}
	if got := d.Progress(2, 3); got != "Question 2 / 3" {
		t.Errorf("unexpected progress text %q", got)
	}
}

func TestDefaultDisplay(t *testing.T) {
	d := DefaultDisplay()
	if !d.ShowProgressBar || d.Introduction != "" || d.TitleImage != "" {
		t.Errorf("unexpected default display %+v", d)
	}
	if got := d.Progress(1, 2); got != "1 of 2" {
		t.Errorf("unexpected progress text %q", got)
	}
}
