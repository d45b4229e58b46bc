// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package quiz

import (
	"errors"
	"reflect"
	"testing"
)

func personalities(names ...string) []Personality {
	ps := make([]Personality, len(names))
	for i, n := range names {
		ps[i] = Personality{Name: n, Description: n + " description"}
	}
	return ps
}

func TestParseEffectToken(t *testing.T) {
	tests := []struct {
		token string
		want  EffectToken
	}{
		{"wizard=2", EffectToken{"wizard", 2}},
		{"Wizard", EffectToken{"wizard", 1}},
		{" Knight = 3", EffectToken{"knight", 3}},
		{"rogue=-1", EffectToken{"rogue", -1}},
		{"rogue=+4", EffectToken{"rogue", 4}},
		{"a=b=5", EffectToken{"a=b", 5}},
		{"e=mc", EffectToken{"e=mc", 1}},
		{"x=--1", EffectToken{"x=--1", 1}},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := ParseEffectToken(tt.token); got != tt.want {
				t.Errorf("ParseEffectToken(%q) = %+v, want %+v", tt.token, got, tt.want)
			}
		})
	}
}

func TestParseEffectTokens_SkipsEmpty(t *testing.T) {
	got := ParseEffectTokens("a=1,, b ,")
	want := []EffectToken{{"a", 1}, {"b", 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestNewScoreMatrix(t *testing.T) {
	ps := personalities("Wizard", "Knight", "Rogue")
	qs := []Question{
		{Text: "q0", Answers: []Answer{
			{Text: "a", Personalities: "wizard=2,knight"},
			{Text: "b", Personalities: "ROGUE=-1"},
		}},
		{Text: "q1", Answers: []Answer{
			{Text: "c", Personalities: "knight=3"},
		}},
	}

	m, err := NewScoreMatrix(qs, ps)
	if err != nil {
		t.Fatalf("NewScoreMatrix failed: %v", err)
	}

	if m.Questions() != 2 || m.Options(0) != 2 || m.Options(1) != 1 || m.Personalities() != 3 {
		t.Fatalf("unexpected shape: %d questions, %d/%d options", m.Questions(), m.Options(0), m.Options(1))
	}

	want := []Effect{{PersonalityIndex: 0, Score: 2}, {PersonalityIndex: 1, Score: 1}}
	if got := m.Effects(0, 0); !reflect.DeepEqual(got, want) {
		t.Errorf("Effects(0,0) = %+v, want %+v", got, want)
	}
	if got := m.Effects(0, 1); !reflect.DeepEqual(got, []Effect{{2, -1}}) {
		t.Errorf("Effects(0,1) = %+v", got)
	}
	if m.Effects(5, 0) != nil || m.Options(-1) != 0 {
		t.Error("out-of-range lookups should be empty")
	}

	// Effects returns a copy
	e := m.Effects(1, 0)
	e[0].Score = 100
	if m.Effects(1, 0)[0].Score != 3 {
		t.Error("matrix was mutated through Effects")
	}
}

func TestNewScoreMatrix_UnknownPersonality(t *testing.T) {
	ps := personalities("Wizard")
	qs := []Question{{Answers: []Answer{{Personalities: "wizard,dragon=2"}}}}

	_, err := NewScoreMatrix(qs, ps)
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestScoreMatrix_Derive(t *testing.T) {
	ps := personalities("A", "B")
	qs := []Question{
		{Answers: []Answer{{Personalities: "a=2"}, {Personalities: "b"}}},
		{Answers: []Answer{{Personalities: "a=-1,b=3"}}},
	}
	m, err := NewScoreMatrix(qs, ps)
	if err != nil {
		t.Fatal(err)
	}

	got := m.Derive([]AnswerRecord{{0, 0}, {1, 0}})
	if !reflect.DeepEqual(got, []int{1, 3}) {
		t.Errorf("Derive = %v, want [1 3]", got)
	}
}
