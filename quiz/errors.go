// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package quiz

import "errors"

var (
	// ErrConfiguration is fatal: the quiz cannot be shown at all.
	ErrConfiguration = errors.New("configuration error")

	// ErrSequence marks an answer for a question other than the current one.
	// Such answers are dropped without changing state.
	ErrSequence = errors.New("sequence error")

	// ErrConsistency marks a restored snapshot (or part of one) that does not
	// fit the current quiz. The offending part is discarded.
	ErrConsistency = errors.New("consistency error")
)
