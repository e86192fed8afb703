package session

import (
	"context"
	"fmt"

	"langbot/internal/ports/output"
)

// trainingState is the spaced-repetition entry point. Training itself
// is not built yet; the screen says so and offers the way back.
type trainingState struct {
	base
	vocabulary *vocabularyState
}

func newTrainingState(sc *SessionContext, vocabulary *vocabularyState) *trainingState {
	return &trainingState{base: base{sc: sc}, vocabulary: vocabulary}
}

func (s *trainingState) Show(ctx context.Context, t *Turn) (State, error) {
	screen := output.Screen{
		Text: t.text(ctx, s.sc.User.Language, "training.pending", nil),
		Rows: [][]output.Button{{t.backButton(ctx, s.sc.User.Language, "back")}},
	}
	if err := t.show(ctx, screen); err != nil {
		return nil, fmt.Errorf("render training: %w", err)
	}
	return s, nil
}

func (s *trainingState) OnSelection(ctx context.Context, t *Turn) (Outcome, error) {
	if t.Event.Token == "back" {
		next, err := s.vocabulary.Show(ctx, t)
		return Next(next), err
	}
	return Unhandled(), nil
}
