// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package quiz

import "fmt"

// ScoreMatrix maps (question, option) to the effects of choosing that option.
// It is built once and never mutated.
type ScoreMatrix struct {
	personalities int
	effects       [][][]Effect
}

// NewScoreMatrix parses the effect list of every answer. Names are expected
// to be sanitised already; a name that matches no personality is an
// ErrConfiguration.
func NewScoreMatrix(questions []Question, personalities []Personality) (*ScoreMatrix, error) {
	index := make(map[string]int, len(personalities))
	for i, p := range personalities {
		if _, dup := index[p.Key()]; !dup {
			index[p.Key()] = i
		}
	}

	effects := make([][][]Effect, len(questions))
	for q, question := range questions {
		effects[q] = make([][]Effect, len(question.Answers))
		for o, answer := range question.Answers {
			for _, tok := range ParseEffectTokens(answer.Personalities) {
				idx, ok := index[tok.Name]
				if !ok {
					return nil, fmt.Errorf("%w: question %d option %d references unknown personality %q",
						ErrConfiguration, q, o, tok.Name)
				}
				effects[q][o] = append(effects[q][o], Effect{PersonalityIndex: idx, Score: tok.Score})
			}
		}
	}

	return &ScoreMatrix{personalities: len(personalities), effects: effects}, nil
}

// Questions returns the number of questions.
func (m *ScoreMatrix) Questions() int {
	return len(m.effects)
}

// Options returns the number of options of question q, or 0 if q is out of range.
func (m *ScoreMatrix) Options(q int) int {
	if q < 0 || q >= len(m.effects) {
		return 0
	}
	return len(m.effects[q])
}

// Personalities returns the length of a score vector.
func (m *ScoreMatrix) Personalities() int {
	return m.personalities
}

// Contains reports whether (q, o) addresses an existing option.
func (m *ScoreMatrix) Contains(q, o int) bool {
	return o >= 0 && o < m.Options(q)
}

// Effects returns a copy of the effects of option o of question q.
func (m *ScoreMatrix) Effects(q, o int) []Effect {
	if !m.Contains(q, o) {
		return nil
	}
	return append([]Effect(nil), m.effects[q][o]...)
}

// Apply adds the effects of (q, o) to scores in place.
func (m *ScoreMatrix) Apply(scores []int, q, o int) {
	if !m.Contains(q, o) {
		return
	}
	for _, e := range m.effects[q][o] {
		scores[e.PersonalityIndex] += e.Score
	}
}

// Derive recomputes the score vector for an answer history.
func (m *ScoreMatrix) Derive(answers []AnswerRecord) []int {
	scores := make([]int, m.personalities)
	for _, a := range answers {
		m.Apply(scores, a.Question, a.Option)
	}
	return scores
}
