// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package quiz

import (
	"fmt"
	"math/rand/v2"
)

// Resolver picks the winning personality at most once per completion.
// Winners are remembered by name so a persisted result survives reordering
// of the personality list.
type Resolver struct {
	personalities []Personality
	rng           *rand.Rand
	name          string
}

func NewResolver(personalities []Personality, rng *rand.Rand) *Resolver {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Resolver{personalities: personalities, rng: rng}
}

// Resolve returns the index of the winner. A winner already resolved or
// adopted is returned again without rolling; otherwise the highest score
// wins and ties are broken uniformly at random.
func (r *Resolver) Resolve(scores []int) int {
	if idx, ok := r.lookup(r.name); ok {
		return idx
	}

	if len(scores) > len(r.personalities) {
		scores = scores[:len(r.personalities)]
	}
	tied := TopScorers(scores)
	if len(tied) == 0 {
		return -1
	}
	winner := tied[0]
	if len(tied) > 1 {
		winner = tied[r.rng.IntN(len(tied))]
	}
	r.name = r.personalities[winner].Name
	return winner
}

// Adopt takes over a persisted winner. An unknown name is an
// ErrConsistency and leaves the resolver unresolved.
func (r *Resolver) Adopt(name string) error {
	idx, ok := r.lookup(name)
	if !ok {
		return fmt.Errorf("%w: result %q matches no personality", ErrConsistency, name)
	}
	r.name = r.personalities[idx].Name
	return nil
}

// Forget drops the resolved winner so the next completion rolls again.
func (r *Resolver) Forget() {
	r.name = ""
}

// Name returns the resolved winner's name, or "" if none.
func (r *Resolver) Name() string {
	return r.name
}

// Resolved reports whether a winner is fixed.
func (r *Resolver) Resolved() bool {
	return r.name != ""
}

func (r *Resolver) lookup(name string) (int, bool) {
	if name == "" {
		return -1, false
	}
	key := NameKey(name)
	for i, p := range r.personalities {
		if p.Key() == key {
			return i, true
		}
	}
	return -1, false
}

// TopScorers returns the indices holding the maximum score, ascending.
func TopScorers(scores []int) []int {
	if len(scores) == 0 {
		return nil
	}
	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}

	var tied []int
	for i, s := range scores {
		if s == max {
			tied = append(tied, i)
		}
	}
	return tied
}
