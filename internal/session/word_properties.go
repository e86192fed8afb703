package session

import (
	"context"
	"fmt"

	"langbot/internal/domain/entities"
	"langbot/internal/ports/output"
)

// wordPropertiesState shows one candidate word with its translation and
// category; "remember" stores it in the vocabulary.
type wordPropertiesState struct {
	base
	word  *entities.VocabularyWord
	owner *addWordsState
}

func newWordPropertiesState(sc *SessionContext, word *entities.VocabularyWord, owner *addWordsState) *wordPropertiesState {
	return &wordPropertiesState{base: base{sc: sc}, word: word, owner: owner}
}

func (s *wordPropertiesState) Show(ctx context.Context, t *Turn) (State, error) {
	user := s.sc.User
	text := s.word.Word
	if translated, err := t.services.Translator.Translate(ctx, s.word.Word, s.word.Language, user.Language); err == nil {
		text += " - " + translated.TargetText
	}
	if s.word.Category != "" {
		text += " (" + s.word.Category + ")"
	}

	screen := output.Screen{
		Text: text,
		Rows: [][]output.Button{
			{t.backButton(ctx, user.Language, "word_back")},
			{{Label: t.text(ctx, user.Language, "word.remember", nil) + " 🧠", Token: "word_store"}},
		},
	}
	if err := t.show(ctx, screen); err != nil {
		return nil, fmt.Errorf("render word properties: %w", err)
	}
	return s, nil
}

func (s *wordPropertiesState) OnSelection(ctx context.Context, t *Turn) (Outcome, error) {
	switch t.Event.Token {
	case "word_back":
		next, err := s.owner.resumeWords(ctx, t)
		return Next(next), err
	case "word_store":
		next, err := s.owner.storeWord(ctx, s.word, t)
		return Next(next), err
	}
	return Unhandled(), nil
}
