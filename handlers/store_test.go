// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/danielhkuo/personality-quiz/auth"
	"github.com/danielhkuo/personality-quiz/quiz"
	"github.com/danielhkuo/personality-quiz/testutil"
)

func TestSaveState_RequiresPreviousVersion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	id := auth.NewSessionID()

	if err := insertSession(ctx, db, id, quiz.State{}, "client"); err != nil {
		t.Fatal(err)
	}

	one := quiz.State{Scores: []int{2, 0, 0}, AnswersGiven: []quiz.AnswerRecord{{Question: 0, Option: 0}}}
	two := quiz.State{
		Scores:       []int{3, 0, 0},
		AnswersGiven: []quiz.AnswerRecord{{Question: 0, Option: 0}, {Question: 1, Option: 0}},
		Results:      "Wizard",
	}

	tests := []struct {
		name    string
		version int64
		state   quiz.State
		wantErr error
	}{
		{"skips a version", 2, two, errStaleSession},
		{"first write", 1, one, nil},
		{"second write", 2, two, nil},
		{"written twice", 2, two, errStaleSession},
		{"behind the stored row", 1, one, errStaleSession},
	}
	for _, tt := range tests {
		err := saveState(ctx, db, id, tt.version, tt.state)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.wantErr, err)
		}
	}

	stored, err := loadState(ctx, db, id)
	if err != nil {
		t.Fatal(err)
	}
	if stored.version != 2 || len(stored.state.AnswersGiven) != 2 || stored.state.Results != "Wizard" {
		t.Errorf("unexpected stored state %+v", stored)
	}
}

func TestSaveState_UnknownSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	err := saveState(context.Background(), db, auth.NewSessionID(), 1, quiz.State{})
	if !errors.Is(err, errSessionNotFound) {
		t.Errorf("expected errSessionNotFound, got %v", err)
	}
}
