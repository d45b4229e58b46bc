// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package quiz

import (
	"fmt"
	"strconv"
	"strings"
)

// Personality is a named outcome. Its position in the personality list is
// the index used by effects, scores and wheel segments.
type Personality struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

// Key returns the identity used for name matching.
func (p Personality) Key() string {
	return NameKey(p.Name)
}

// NameKey normalises a personality name for case-insensitive matching.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Question is one multiple-choice question; Answers are its options in
// display order.
type Question struct {
	Text    string   `json:"text"`
	Image   string   `json:"image,omitempty"`
	Answers []Answer `json:"answers"`
}

// Answer is one option of a question. Personalities is the raw effect list,
// e.g. "wizard=2,knight" (a bare name scores 1).
type Answer struct {
	Text          string `json:"text"`
	Image         string `json:"image,omitempty"`
	Personalities string `json:"personalities"`
}

// Effect adds Score to the personality at PersonalityIndex.
type Effect struct {
	PersonalityIndex int `json:"personality_index"`
	Score            int `json:"score"`
}

// EffectToken is one parsed "name=score" entry before name resolution.
type EffectToken struct {
	Name  string
	Score int
}

// ParseEffectToken splits a token on its last '='. A trailing integer
// (optionally signed) is the score; anything else makes the whole token the
// name with a score of 1. The returned name is already normalised.
func ParseEffectToken(token string) EffectToken {
	if i := strings.LastIndex(token, "="); i >= 0 {
		if score, ok := parseScore(token[i+1:]); ok {
			return EffectToken{Name: NameKey(token[:i]), Score: score}
		}
	}
	return EffectToken{Name: NameKey(token), Score: 1}
}

func parseScore(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	digits := strings.TrimLeft(s, "+-")
	if len(s)-len(digits) > 1 || digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseEffectTokens splits a raw comma-separated effect list. Empty tokens
// are skipped.
func ParseEffectTokens(raw string) []EffectToken {
	var tokens []EffectToken
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		tokens = append(tokens, ParseEffectToken(part))
	}
	return tokens
}

// FormatEffectToken renders a token in its canonical "name=score" form.
func FormatEffectToken(tok EffectToken) string {
	return fmt.Sprintf("%s=%d", tok.Name, tok.Score)
}
