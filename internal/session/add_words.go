package session

import (
	"context"
	"fmt"
	"log"

	"langbot/internal/application"
	"langbot/internal/domain/entities"
	"langbot/internal/ports/output"
	"langbot/pkg/langname"
)

// addWordsState is the word-review flow keyed by a translation's
// fingerprint: it offers the source text's words the user does not have
// in that language's vocabulary yet, one button per word.
type addWordsState struct {
	base
	translation *entities.Translation
	result      *translationResultState
	pending     map[string]*entities.VocabularyWord
}

// newAddWordsState filters the translation's words against the user's
// existing vocabulary and renders the review screen.
func newAddWordsState(ctx context.Context, sc *SessionContext, translation *entities.Translation, result *translationResultState, t *Turn) (State, error) {
	candidates := application.ExtractWords(translation.SourceText)
	fresh, err := t.services.Vocabulary.FilterNewWords(ctx, sc.User.ID, translation.SourceLanguage, candidates)
	if err != nil {
		return nil, fmt.Errorf("filter new words: %w", err)
	}

	pending := make(map[string]*entities.VocabularyWord, len(fresh))
	for _, word := range fresh {
		pending[word] = &entities.VocabularyWord{
			Word:     word,
			Language: translation.SourceLanguage,
			UserID:   sc.User.ID,
		}
	}

	s := &addWordsState{
		base:        base{sc: sc},
		translation: translation,
		result:      result,
		pending:     pending,
	}
	return s.showWords(ctx, t)
}

func (s *addWordsState) showWords(ctx context.Context, t *Turn) (State, error) {
	user := s.sc.User
	header := t.text(ctx, user.Language, "result.translated_from", map[string]any{
		"Language": langname.Name(s.translation.SourceLanguage),
	})

	rows := [][]output.Button{{t.backButton(ctx, user.Language, "add_words_back")}}
	buttons := make([]output.Button, 0, len(s.pending))
	for _, word := range application.ExtractWords(s.translation.SourceText) {
		if _, ok := s.pending[word]; ok {
			buttons = append(buttons, output.Button{Label: word, Token: word})
		}
	}
	for i := 0; i < len(buttons); i += 2 {
		end := min(i+2, len(buttons))
		rows = append(rows, buttons[i:end])
	}

	screen := output.Screen{
		Text: header + " : " + s.translation.TargetText,
		Rows: rows,
	}
	if err := t.show(ctx, screen); err != nil {
		return nil, fmt.Errorf("render word review: %w", err)
	}
	return s, nil
}

func (s *addWordsState) OnSelection(ctx context.Context, t *Turn) (Outcome, error) {
	if t.Event.Token == "add_words_back" {
		next, err := s.result.Resume(ctx, t)
		return Next(next), err
	}

	word, ok := s.pending[t.Event.Token]
	if !ok {
		// A token for a word no longer pending (double press, stale
		// screen): re-render rather than failing the turn.
		log.Printf("⚠️ word review: %q is not pending", t.Event.Token)
		next, err := s.showWords(ctx, t)
		return Next(next), err
	}

	if word.Category == "" {
		word.Category = s.categorize(ctx, word)
	}
	next, err := newWordPropertiesState(s.sc, word, s).Show(ctx, t)
	return Next(next), err
}

// categorize asks the language-model conversation for a one-word
// category. Failures leave the category empty; it is advisory only.
func (s *addWordsState) categorize(ctx context.Context, word *entities.VocabularyWord) string {
	prompt := fmt.Sprintf("Determine the category of the %s word: %s. Output the answer as a single word",
		langname.Name(word.Language), word.Word)
	category, err := s.sc.Assistant.Prompt(ctx, prompt)
	if err != nil {
		log.Printf("⚠️ word category lookup failed for %q: %v", word.Word, err)
		return ""
	}
	return category
}

// resumeWords returns from the word-properties screen.
func (s *addWordsState) resumeWords(ctx context.Context, t *Turn) (State, error) {
	return s.showWords(ctx, t)
}

// storeWord persists a reviewed word and removes it from the pending set.
func (s *addWordsState) storeWord(ctx context.Context, word *entities.VocabularyWord, t *Turn) (State, error) {
	if err := t.services.Vocabulary.SaveWord(ctx, word); err != nil {
		return nil, fmt.Errorf("save word %q: %w", word.Word, err)
	}
	delete(s.pending, word.Word)
	return s.showWords(ctx, t)
}
