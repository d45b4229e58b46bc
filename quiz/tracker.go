// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package quiz

import (
	"fmt"
	"slices"
)

// Tracker owns the answer history and running scores. Nothing else mutates
// them; readers get copies.
type Tracker struct {
	matrix   *ScoreMatrix
	scores   []int
	answers  []AnswerRecord
	restored bool
	touched  bool
}

// NewTracker returns an empty tracker for m.
func NewTracker(m *ScoreMatrix) *Tracker {
	t := &Tracker{matrix: m}
	t.clear()
	return t
}

func (t *Tracker) clear() {
	t.scores = make([]int, t.matrix.Personalities())
	t.answers = []AnswerRecord{}
}

// RecordAnswer applies option o of question q. q must be the current
// position and o a valid option, otherwise ErrSequence is returned and
// nothing changes.
func (t *Tracker) RecordAnswer(q, o int) error {
	if q != len(t.answers) {
		return fmt.Errorf("%w: answer for question %d at position %d", ErrSequence, q, len(t.answers))
	}
	if !t.matrix.Contains(q, o) {
		return fmt.Errorf("%w: option %d of question %d does not exist", ErrSequence, o, q)
	}

	t.matrix.Apply(t.scores, q, o)
	t.answers = append(t.answers, AnswerRecord{Question: q, Option: o})
	t.touched = true
	return nil
}

// Position returns the number of answers given, which is also the index of
// the next question.
func (t *Tracker) Position() int {
	return len(t.answers)
}

// Complete reports whether every question has been answered.
func (t *Tracker) Complete() bool {
	return len(t.answers) == t.matrix.Questions()
}

// RestoreFrom replaces scores and history with the snapshot as-is. It is
// accepted once, before any answer is recorded; later calls are ignored and
// return false.
func (t *Tracker) RestoreFrom(s State) bool {
	if t.restored || t.touched {
		return false
	}
	t.restored = true
	t.touched = true

	t.scores = slices.Clone(s.Scores)
	if t.scores == nil {
		t.scores = make([]int, t.matrix.Personalities())
	}
	t.answers = slices.Clone(s.AnswersGiven)
	if t.answers == nil {
		t.answers = []AnswerRecord{}
	}
	return true
}

// Reset zeroes the scores and clears the history.
func (t *Tracker) Reset() {
	t.clear()
	t.touched = true
}

// Scores returns a copy of the running score per personality.
func (t *Tracker) Scores() []int {
	return slices.Clone(t.scores)
}

// Answers returns a copy of the answer history.
func (t *Tracker) Answers() []AnswerRecord {
	return slices.Clone(t.answers)
}
