package session

import (
	"context"
	"fmt"
	"unicode/utf8"

	"langbot/internal/ports/output"
)

// maxNameLength bounds a display name, matching the copy shown to the
// user in name.prompt.
const maxNameLength = 30

// namePromptState is a reusable child screen that collects a display
// name from a free-text message. Too-long names re-render the prompt
// with guidance and do not advance.
type namePromptState struct {
	base
	language string
	cont     Continuation
}

func newNamePromptState(sc *SessionContext, language string, cont Continuation) *namePromptState {
	return &namePromptState{base: base{sc: sc}, language: language, cont: cont}
}

func (s *namePromptState) Show(ctx context.Context, t *Turn) (State, error) {
	screen := output.Screen{
		Text: t.text(ctx, s.language, "name.prompt", nil),
		Rows: [][]output.Button{{t.backButton(ctx, s.language, "back")}},
	}
	if err := t.show(ctx, screen); err != nil {
		return nil, fmt.Errorf("render name prompt: %w", err)
	}
	return s, nil
}

func (s *namePromptState) OnMessage(ctx context.Context, t *Turn) (Outcome, error) {
	name := t.Event.Text
	if utf8.RuneCountInString(name) > maxNameLength {
		screen := output.Screen{
			Text: t.text(ctx, s.language, "name.too_long", nil),
			Rows: [][]output.Button{{t.backButton(ctx, s.language, "back")}},
		}
		if err := t.show(ctx, screen); err != nil {
			return Outcome{}, fmt.Errorf("render name prompt: %w", err)
		}
		return Next(s), nil
	}
	next, err := s.cont.Caller.Complete(ctx, s.cont.Purpose, Payload{Name: name}, t)
	return Next(next), err
}

func (s *namePromptState) OnSelection(ctx context.Context, t *Turn) (Outcome, error) {
	if t.Event.Token == "back" {
		next, err := s.cont.Caller.Resume(ctx, t)
		return Next(next), err
	}
	return Unhandled(), nil
}
