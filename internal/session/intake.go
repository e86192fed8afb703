package session

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"langbot/internal/domain"
	"langbot/internal/ports/output"
	"langbot/pkg/langname"
)

var translateToken = regexp.MustCompile(`^([a-z]{2,3})_translate$`)

// translateIntakeState consumes free text from a registered user:
// detect the language, translate straight away when detection is
// unambiguous, otherwise ask the user to disambiguate with one button
// per candidate.
type translateIntakeState struct {
	base
	// text is the message being translated, kept for the moment the
	// user answers the disambiguation screen.
	text string
}

func newTranslateIntakeState(sc *SessionContext) *translateIntakeState {
	return &translateIntakeState{base: base{sc: sc}}
}

func (s *translateIntakeState) OnMessage(ctx context.Context, t *Turn) (Outcome, error) {
	s.text = t.Event.Text
	user := s.sc.User

	detected, err := t.services.Translator.DetectLanguage(ctx, s.text)
	if err != nil {
		if errors.Is(err, domain.ErrDetectionUnavailable) {
			next, rerr := s.routingFailure(ctx, t, "error.detection", nil)
			return Next(next), rerr
		}
		return Outcome{}, fmt.Errorf("detect language: %w", err)
	}

	if len(detected) == 1 {
		next, err := s.deliver(ctx, t, detected[0].Language)
		return Next(next), err
	}

	rows := make([][]output.Button, 0, len(detected))
	for _, candidate := range detected {
		label := t.text(ctx, user.Language, "picker.language", map[string]any{
			"Language": langname.Name(candidate.Language),
		})
		rows = append(rows, []output.Button{{
			Label: fmt.Sprintf("%s - %d%%", label, candidate.Confidence),
			Token: candidate.Language + "_translate",
		}})
	}
	screen := output.Screen{
		Text: t.text(ctx, user.Language, "intake.ambiguous", nil),
		Rows: rows,
	}
	if err := t.show(ctx, screen); err != nil {
		return Outcome{}, fmt.Errorf("render disambiguation: %w", err)
	}
	return Next(s), nil
}

func (s *translateIntakeState) OnSelection(ctx context.Context, t *Turn) (Outcome, error) {
	if match := translateToken.FindStringSubmatch(t.Event.Token); match != nil {
		next, err := s.deliver(ctx, t, match[1])
		return Next(next), err
	}
	return Unhandled(), nil
}

// deliver translates the pending text from the given source language
// into the user's language and moves to the result screen. Routing
// failures become a note on the menu, never a dead end.
func (s *translateIntakeState) deliver(ctx context.Context, t *Turn, source string) (State, error) {
	user := s.sc.User
	translation, err := t.services.Translator.Translate(ctx, s.text, source, user.Language)
	switch {
	case errors.Is(err, domain.ErrUnsupportedTarget):
		return s.routingFailure(ctx, t, "error.unsupported_target", map[string]any{
			"Language": langname.Name(user.Language),
		})
	case errors.Is(err, domain.ErrUnsupportedPair):
		return s.routingFailure(ctx, t, "error.unsupported_pair", map[string]any{
			"Source": langname.Name(source),
			"Target": langname.Name(user.Language),
		})
	case err != nil:
		return nil, fmt.Errorf("translate intake: %w", err)
	}
	return newTranslationResultState(s.sc, translation).Show(ctx, t)
}

func (s *translateIntakeState) routingFailure(ctx context.Context, t *Turn, key string, data map[string]any) (State, error) {
	note := t.text(ctx, s.sc.User.Language, key, data)
	return newMenuState(s.sc).Show(ctx, t, note)
}
