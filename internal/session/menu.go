package session

import (
	"context"
	"fmt"

	"langbot/internal/ports/output"
)

// menuState is the default top-level screen: settings, practice, or
// just type text to translate it. Every fallback lands here.
type menuState struct {
	base
}

func newMenuState(sc *SessionContext) *menuState {
	return &menuState{base: base{sc: sc}}
}

// Show renders the menu; text overrides the default prompt so flows can
// return here with a confirmation or an error note.
func (s *menuState) Show(ctx context.Context, t *Turn, text string) (State, error) {
	lang := s.sc.User.Language
	if text == "" {
		text = t.text(ctx, lang, "menu.prompt", nil)
	}
	screen := output.Screen{
		Text: text,
		Rows: [][]output.Button{
			{{Label: t.text(ctx, lang, "menu.settings", nil) + " ⚙️", Token: "menu_settings"}},
			{{Label: t.text(ctx, lang, "menu.practice", nil) + " 💪", Token: "menu_practice"}},
		},
	}
	if err := t.show(ctx, screen); err != nil {
		return nil, fmt.Errorf("render menu: %w", err)
	}
	return s, nil
}

func (s *menuState) OnSelection(ctx context.Context, t *Turn) (Outcome, error) {
	switch t.Event.Token {
	case "menu_settings":
		next, err := newSettingsState(s.sc, s).Show(ctx, t)
		return Next(next), err
	case "menu_practice":
		next, err := newPracticeState(s.sc, s).Show(ctx, t)
		return Next(next), err
	}
	return Unhandled(), nil
}
