package session

import (
	"context"
	"fmt"
	"regexp"

	"langbot/internal/ports/output"
	"langbot/pkg/langname"
)

var languageToken = regexp.MustCompile(`^([a-z]{2,3})_language$`)

// languagePickerState is a reusable child screen: one button per
// supported target language, sorted, plus back. Its continuation record
// decides where the pick is delivered.
type languagePickerState struct {
	base
	// display is the language the picker itself is rendered in.
	display string
	cont    Continuation
}

func newLanguagePickerState(sc *SessionContext, display string, cont Continuation) *languagePickerState {
	return &languagePickerState{base: base{sc: sc}, display: display, cont: cont}
}

func (s *languagePickerState) Show(ctx context.Context, t *Turn) (State, error) {
	rows := make([][]output.Button, 0)
	for _, code := range t.services.Translator.SupportedTargets() {
		rows = append(rows, []output.Button{{
			Label: t.text(ctx, s.display, "picker.language", map[string]any{"Language": langname.Name(code)}),
			Token: code + "_language",
		}})
	}
	rows = append(rows, []output.Button{t.backButton(ctx, s.display, "back")})

	screen := output.Screen{
		Text: t.text(ctx, s.display, "picker.prompt", nil),
		Rows: rows,
	}
	if err := t.show(ctx, screen); err != nil {
		return nil, fmt.Errorf("render language picker: %w", err)
	}
	return s, nil
}

func (s *languagePickerState) OnSelection(ctx context.Context, t *Turn) (Outcome, error) {
	if t.Event.Token == "back" {
		next, err := s.cont.Caller.Resume(ctx, t)
		return Next(next), err
	}
	if match := languageToken.FindStringSubmatch(t.Event.Token); match != nil {
		next, err := s.cont.Caller.Complete(ctx, s.cont.Purpose, Payload{Language: match[1]}, t)
		return Next(next), err
	}
	return Unhandled(), nil
}
