package session

import (
	"context"
	"errors"
	"fmt"

	"langbot/internal/domain"
	"langbot/internal/domain/entities"
	"langbot/internal/ports/output"
	"langbot/pkg/langname"
)

// translationResultState shows a finished translation and offers to
// correct the source language or feed the words into the vocabulary.
type translationResultState struct {
	base
	translation *entities.Translation
}

var _ Caller = (*translationResultState)(nil)

func newTranslationResultState(sc *SessionContext, translation *entities.Translation) *translationResultState {
	return &translationResultState{base: base{sc: sc}, translation: translation}
}

func (s *translationResultState) Show(ctx context.Context, t *Turn) (State, error) {
	if err := t.show(ctx, s.screen(ctx, t)); err != nil {
		return nil, fmt.Errorf("render translation result: %w", err)
	}
	return s, nil
}

func (s *translationResultState) screen(ctx context.Context, t *Turn) output.Screen {
	tr := s.translation
	header := t.text(ctx, tr.TargetLanguage, "result.translated_from", map[string]any{
		"Language": langname.Name(tr.SourceLanguage),
	})
	return output.Screen{
		Text: header + " : " + tr.TargetText,
		Rows: [][]output.Button{
			{{Label: t.text(ctx, tr.TargetLanguage, "result.add_words", nil), Token: "add2vocab"}},
			{{
				Label: t.text(ctx, tr.TargetLanguage, "result.wrong_language", map[string]any{
					"Language": langname.Name(tr.SourceLanguage),
				}),
				Token: "change_lang",
			}},
		},
	}
}

func (s *translationResultState) OnSelection(ctx context.Context, t *Turn) (Outcome, error) {
	switch t.Event.Token {
	case "change_lang":
		next, err := newLanguagePickerState(s.sc, s.sc.User.Language, Continuation{Caller: s, Purpose: PurposeSourceLanguage}).Show(ctx, t)
		return Next(next), err
	case "add2vocab":
		next, err := newAddWordsState(ctx, s.sc, s.translation, s, t)
		return Next(next), err
	}
	return Unhandled(), nil
}

func (s *translationResultState) Resume(ctx context.Context, t *Turn) (State, error) {
	return s.Show(ctx, t)
}

// Complete re-translates the original text with the corrected source
// language; the result replaces the one on screen.
func (s *translationResultState) Complete(ctx context.Context, purpose Purpose, payload Payload, t *Turn) (State, error) {
	if purpose != PurposeSourceLanguage {
		return nil, fmt.Errorf("translation result: unexpected continuation purpose %d", purpose)
	}
	translation, err := t.services.Translator.Translate(ctx, s.translation.SourceText, payload.Language, s.sc.User.Language)
	switch {
	case errors.Is(err, domain.ErrUnsupportedPair) || errors.Is(err, domain.ErrUnsupportedTarget):
		note := t.text(ctx, s.sc.User.Language, "error.unsupported_pair", map[string]any{
			"Source": langname.Name(payload.Language),
			"Target": langname.Name(s.sc.User.Language),
		})
		return newMenuState(s.sc).Show(ctx, t, note)
	case err != nil:
		return nil, fmt.Errorf("retranslate: %w", err)
	}
	s.translation = translation
	return s.Show(ctx, t)
}
