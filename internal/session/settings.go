package session

import (
	"context"
	"fmt"

	"langbot/internal/ports/output"
	"langbot/pkg/langname"
)

// settingsState lets a registered user change the account language or
// the display name, reusing the language picker and the name prompt as
// child screens.
type settingsState struct {
	base
	menu *menuState
}

var _ Caller = (*settingsState)(nil)

func newSettingsState(sc *SessionContext, menu *menuState) *settingsState {
	return &settingsState{base: base{sc: sc}, menu: menu}
}

func (s *settingsState) Show(ctx context.Context, t *Turn) (State, error) {
	if err := t.show(ctx, s.screen(ctx, t)); err != nil {
		return nil, fmt.Errorf("render settings: %w", err)
	}
	return s, nil
}

func (s *settingsState) screen(ctx context.Context, t *Turn) output.Screen {
	user := s.sc.User
	return output.Screen{
		Text: t.text(ctx, user.Language, "settings.title", nil),
		Rows: [][]output.Button{
			{{
				Label: t.text(ctx, user.Language, "settings.language", map[string]any{"Language": langname.Name(user.Language)}),
				Token: "settings_language",
			}},
			{{
				Label: t.text(ctx, user.Language, "settings.name", nil) + " - " + user.Name,
				Token: "settings_name",
			}},
			{t.backButton(ctx, user.Language, "settings_back")},
		},
	}
}

func (s *settingsState) OnSelection(ctx context.Context, t *Turn) (Outcome, error) {
	switch t.Event.Token {
	case "settings_language":
		next, err := newLanguagePickerState(s.sc, s.sc.User.Language, Continuation{Caller: s, Purpose: PurposeSettingsLanguage}).Show(ctx, t)
		return Next(next), err
	case "settings_name":
		next, err := newNamePromptState(s.sc, s.sc.User.Language, Continuation{Caller: s, Purpose: PurposeSettingsName}).Show(ctx, t)
		return Next(next), err
	case "settings_back":
		next, err := s.menu.Show(ctx, t, "")
		return Next(next), err
	}
	return Unhandled(), nil
}

func (s *settingsState) Resume(ctx context.Context, t *Turn) (State, error) {
	return s.Show(ctx, t)
}

// Complete applies the child's result to the registered user. The
// context's user is refreshed in place so every other state sees the
// change immediately.
func (s *settingsState) Complete(ctx context.Context, purpose Purpose, payload Payload, t *Turn) (State, error) {
	user := s.sc.User
	switch purpose {
	case PurposeSettingsLanguage:
		if err := t.services.Users.UpdateLanguage(ctx, user.ID, payload.Language); err != nil {
			return nil, fmt.Errorf("update user language: %w", err)
		}
		user.Language = payload.Language
		note := t.text(ctx, user.Language, "settings.language_changed", map[string]any{
			"Name":     user.Name,
			"Language": langname.Name(user.Language),
		})
		return s.menu.Show(ctx, t, note)
	case PurposeSettingsName:
		if err := t.services.Users.UpdateName(ctx, user.ID, payload.Name); err != nil {
			return nil, fmt.Errorf("update user name: %w", err)
		}
		user.Name = payload.Name
		note := t.text(ctx, user.Language, "settings.name_changed", map[string]any{"Name": user.Name})
		return s.menu.Show(ctx, t, note)
	}
	return nil, fmt.Errorf("settings: unexpected continuation purpose %d", purpose)
}
