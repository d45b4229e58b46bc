// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package quiz

import (
	"errors"
	"fmt"
	"slices"
)

// AnswerRecord is one committed choice.
type AnswerRecord struct {
	Question int `json:"question"`
	Option   int `json:"option"`
}

// State is the serialisable snapshot of a quiz. Scores is always derivable
// from AnswersGiven; Results holds the winner's name once resolved.
type State struct {
	Scores       []int          `json:"scores"`
	AnswersGiven []AnswerRecord `json:"answersGiven"`
	Results      string         `json:"results,omitempty"`
}

// Clone returns a deep copy.
func (s State) Clone() State {
	return State{
		Scores:       slices.Clone(s.Scores),
		AnswersGiven: slices.Clone(s.AnswersGiven),
		Results:      s.Results,
	}
}

// Empty reports whether the snapshot carries nothing to restore.
func (s State) Empty() bool {
	return len(s.Scores) == 0 && len(s.AnswersGiven) == 0 && s.Results == ""
}

// SanitizeState checks a restored snapshot against the matrix. Each part
// that does not fit is replaced independently:
//
//   - a history longer than the quiz or with out-of-range indices is
//     dropped together with the scores and results (fresh start)
//   - scores of the wrong length or disagreeing with the history are
//     re-derived from the history
//
// The returned error joins one ErrConsistency per discarded part. Results
// names are checked later, by the resolver.
func SanitizeState(m *ScoreMatrix, s State) (State, error) {
	out := s.Clone()

	if err := checkHistory(m, out.AnswersGiven); err != nil {
		return State{}, err
	}

	var errs []error
	derived := m.Derive(out.AnswersGiven)
	switch {
	case out.Scores == nil && len(out.AnswersGiven) == 0:
		out.Scores = derived
	case len(out.Scores) != m.Personalities():
		errs = append(errs, fmt.Errorf("%w: %d scores for %d personalities",
			ErrConsistency, len(out.Scores), m.Personalities()))
		out.Scores = derived
	case !slices.Equal(out.Scores, derived):
		errs = append(errs, fmt.Errorf("%w: scores %v do not match answers (expected %v)",
			ErrConsistency, out.Scores, derived))
		out.Scores = derived
	}

	if out.AnswersGiven == nil {
		out.AnswersGiven = []AnswerRecord{}
	}
	if out.Results != "" && len(out.AnswersGiven) != m.Questions() {
		errs = append(errs, fmt.Errorf("%w: results %q stored for an unfinished quiz",
			ErrConsistency, out.Results))
		out.Results = ""
	}

	return out, errors.Join(errs...)
}

func checkHistory(m *ScoreMatrix, answers []AnswerRecord) error {
	if len(answers) > m.Questions() {
		return fmt.Errorf("%w: %d answers for %d questions", ErrConsistency, len(answers), m.Questions())
	}
	for i, a := range answers {
		if a.Question != i {
			return fmt.Errorf("%w: answer %d is for question %d", ErrConsistency, i, a.Question)
		}
		if !m.Contains(a.Question, a.Option) {
			return fmt.Errorf("%w: option %d of question %d out of range", ErrConsistency, a.Option, a.Question)
		}
	}
	return nil
}
