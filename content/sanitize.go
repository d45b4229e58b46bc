// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package content

import (
	"strings"

	"github.com/danielhkuo/personality-quiz/quiz"
)

// Report lists what Sanitize dropped.
type Report struct {
	DroppedPersonalities []string
	DroppedTokens        []string
	DroppedAnswers       int
	DroppedQuestions     int
}

// Empty reports whether nothing was dropped.
func (r Report) Empty() bool {
	return len(r.DroppedPersonalities) == 0 && len(r.DroppedTokens) == 0 &&
		r.DroppedAnswers == 0 && r.DroppedQuestions == 0
}

// Sanitize returns a copy of p that only references valid personalities.
func (p Params) Sanitize() (Params, Report) {
	var report Report
	out := p

	// Names keep their case for display; matching ignores it.
	known := make(map[string]bool)
	out.Personalities = nil
	for _, ps := range p.Personalities {
		name := strings.TrimSpace(ps.Name)
		if name == "" || known[quiz.NameKey(name)] {
			report.DroppedPersonalities = append(report.DroppedPersonalities, ps.Name)
			continue
		}
		known[quiz.NameKey(name)] = true
		ps.Name = name
		out.Personalities = append(out.Personalities, ps)
	}

	out.Questions = nil
	for _, q := range p.Questions {
		var answers []Answer
		for _, a := range q.Answers {
			effects, dropped := sanitizeEffects(a.Personality, known)
			report.DroppedTokens = append(report.DroppedTokens, dropped...)
			if effects == "" {
				report.DroppedAnswers++
				continue
			}
			a.Personality = effects
			if a.Text == nil {
				blank := BlankAnswerText
				a.Text = &blank
			}
			answers = append(answers, a)
		}
		if len(answers) == 0 {
			report.DroppedQuestions++
			continue
		}
		q.Answers = answers
		out.Questions = append(out.Questions, q)
	}

	return out, report
}

// sanitizeEffects rewrites a raw effect list into canonical "name=score"
// tokens, dropping tokens for unknown personalities.
func sanitizeEffects(raw string, known map[string]bool) (string, []string) {
	var kept, dropped []string
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		tok := quiz.ParseEffectToken(part)
		if !known[tok.Name] {
			dropped = append(dropped, strings.TrimSpace(part))
			continue
		}
		kept = append(kept, quiz.FormatEffectToken(tok))
	}
	return strings.Join(kept, ","), dropped
}
