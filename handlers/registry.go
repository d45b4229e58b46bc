// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/danielhkuo/personality-quiz/quiz"
)

// session is one learner's live quiz.
type session struct {
	id      string
	machine *quiz.Machine

	// version counts accepted changes; stored snapshots carry it.
	version int64

	// completed holds reveals not yet written to the completion log.
	completed []string
}

// commit is a change made on the loop that still has to be written.
type commit struct {
	id          string
	version     int64
	state       quiz.State
	completions []string
}

// commit snapshots the machine for saving. Runs on the event loop.
func (s *session) commit() *commit {
	s.version++
	c := &commit{
		id:          s.id,
		version:     s.version,
		state:       s.machine.State(),
		completions: s.completed,
	}
	s.completed = nil
	return c
}

// registry keeps recently used machines in memory. Evicted machines are
// stopped; the database snapshot rebuilds them on the next request.
// Only touched from the event loop.
type registry struct {
	cache *lru.Cache[string, *session]
}

func newRegistry(size int) *registry {
	if size < 1 {
		size = 1
	}
	cache, err := lru.NewWithEvict[string, *session](size, func(_ string, s *session) {
		if s.machine != nil {
			s.machine.Stop()
		}
	})
	if err != nil {
		// Only returned for non-positive sizes.
		panic(err)
	}
	return &registry{cache: cache}
}

func (r *registry) get(id string) (*session, bool) {
	return r.cache.Get(id)
}

func (r *registry) add(s *session) {
	r.cache.Add(s.id, s)
}

// remove drops s if it is still the live session for its id. The machine
// is stopped by the eviction callback.
func (r *registry) remove(s *session) {
	if live, ok := r.cache.Peek(s.id); ok && live == s {
		r.cache.Remove(s.id)
	}
}

func (r *registry) len() int {
	return r.cache.Len()
}
