// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package quiz is the personality quiz engine: scoring, progress tracking,
winner resolution and the screen state machine.

# Scoring

Every answer carries a raw effect list such as "wizard=2,knight,rogue=-1".
NewScoreMatrix resolves it once into (personality index, score) pairs:

	matrix, err := quiz.NewScoreMatrix(questions, personalities)
	matrix.Effects(0, 1) // [{0 2} {1 1} {2 -1}]

A Tracker applies those effects as answers come in. Answers must arrive in
question order; anything else is an ErrSequence and changes nothing.

# Winner

The personality with the highest score wins. Ties are broken uniformly at
random, exactly once: the Resolver remembers the winner by name and the
name is part of every State snapshot, so a reloaded quiz always shows the
same result.

# Screens

Machine moves through

	intro → question 0 … question N-1 → [wheel →] result

The intro appears only if configured and no answer has been given. The
wheel appears only with PresentationWheel. A retake (Reset) returns to the
first unanswered question, or straight to the result if a restored
snapshot was already complete, without animating or reporting completion
again.

# Host integration

Hooks carries the host callbacks: progress and completion analytics,
resize requests, screen reader announcements and asset URL lookup. The
machine is single-threaded; run it together with its clock.Scheduler on
one goroutine.

	m, err := quiz.New(cfg, previous, hooks, loop)
	if errors.Is(err, quiz.ErrConfiguration) {
		show(quiz.ConfigurationMessage(err, cfg.Text))
		return
	}
	m.Run()
	m.Answer(0, 2)
	save(m.State())
*/
package quiz
