package session

import (
	"context"
	"fmt"
	"regexp"

	"langbot/internal/domain/entities"
	"langbot/internal/ports/output"
	"langbot/pkg/langname"
)

var vocabToken = regexp.MustCompile(`^([a-z]{2,3})_vocab$`)

// practiceState lists the user's vocabularies, one button per language.
type practiceState struct {
	base
	menu         *menuState
	vocabularies map[string]*entities.Vocabulary
}

func newPracticeState(sc *SessionContext, menu *menuState) *practiceState {
	return &practiceState{base: base{sc: sc}, menu: menu}
}

func (s *practiceState) Show(ctx context.Context, t *Turn) (State, error) {
	user := s.sc.User
	vocabularies, err := t.services.Vocabulary.Languages(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list vocabularies: %w", err)
	}

	s.vocabularies = make(map[string]*entities.Vocabulary, len(vocabularies))
	rows := [][]output.Button{{t.backButton(ctx, user.Language, "practice_back")}}
	for i := range vocabularies {
		vocabulary := &vocabularies[i]
		s.vocabularies[vocabulary.Language] = vocabulary
		rows = append(rows, []output.Button{{
			Label: t.text(ctx, user.Language, "practice.item", map[string]any{
				"Language": langname.Name(vocabulary.Language),
				"Count":    vocabulary.WordCount,
			}),
			Token: vocabulary.Language + "_vocab",
		}})
	}

	text := t.text(ctx, user.Language, "practice.select", map[string]any{"Name": user.Name})
	if len(vocabularies) == 0 {
		text = t.text(ctx, user.Language, "practice.empty", map[string]any{"Name": user.Name})
	}
	if err := t.show(ctx, output.Screen{Text: text, Rows: rows}); err != nil {
		return nil, fmt.Errorf("render practice: %w", err)
	}
	return s, nil
}

func (s *practiceState) OnSelection(ctx context.Context, t *Turn) (Outcome, error) {
	if t.Event.Token == "practice_back" {
		next, err := s.menu.Show(ctx, t, "")
		return Next(next), err
	}
	if match := vocabToken.FindStringSubmatch(t.Event.Token); match != nil {
		vocabulary, ok := s.vocabularies[match[1]]
		if !ok {
			// Stale token for a vocabulary this screen never listed;
			// the session-level fallback re-renders the menu.
			return Unhandled(), nil
		}
		next, err := newVocabularyState(s.sc, s, vocabulary).Show(ctx, t)
		return Next(next), err
	}
	return Unhandled(), nil
}

// resume returns from the vocabulary browser, refreshing the counts.
func (s *practiceState) resume(ctx context.Context, t *Turn) (State, error) {
	return s.Show(ctx, t)
}
