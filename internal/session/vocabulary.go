package session

import (
	"context"
	"fmt"
	"strings"

	"langbot/internal/domain/entities"
	"langbot/internal/ports/output"
)

// wordsPerPage is the page size of the vocabulary browser.
const wordsPerPage = 30

// vocabularyState browses one vocabulary page by page. The zero-based
// page cursor lives in the state instance; page turns re-render in
// place without touching the surrounding navigation.
type vocabularyState struct {
	base
	practice   *practiceState
	vocabulary *entities.Vocabulary
	page       int
}

func newVocabularyState(sc *SessionContext, practice *practiceState, vocabulary *entities.Vocabulary) *vocabularyState {
	return &vocabularyState{base: base{sc: sc}, practice: practice, vocabulary: vocabulary}
}

func (s *vocabularyState) Show(ctx context.Context, t *Turn) (State, error) {
	user := s.sc.User
	words, err := t.services.Vocabulary.Words(ctx, user.ID, s.vocabulary.Language, s.page*wordsPerPage, wordsPerPage)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary page: %w", err)
	}

	header := t.text(ctx, user.Language, "vocab.header", map[string]any{
		"Count": s.vocabulary.WordCount,
		"Page":  s.page + 1,
	})
	lines := make([]string, 0, len(words)+2)
	lines = append(lines, header, "")
	for _, word := range words {
		line := word.Word
		if translated, err := t.services.Translator.Translate(ctx, word.Word, word.Language, user.Language); err == nil {
			line += " - " + translated.TargetText
		}
		lines = append(lines, line)
	}

	var navigation []output.Button
	if s.page > 0 {
		navigation = append(navigation, output.Button{
			Label: "◀️ " + t.text(ctx, user.Language, "vocab.prev", nil),
			Token: "prev_page",
		})
	}
	if (s.page+1)*wordsPerPage < s.vocabulary.WordCount {
		navigation = append(navigation, output.Button{
			Label: t.text(ctx, user.Language, "vocab.next", nil) + " ▶️",
			Token: "next_page",
		})
	}

	rows := make([][]output.Button, 0, 3)
	if len(navigation) > 0 {
		rows = append(rows, navigation)
	}
	rows = append(rows,
		[]output.Button{{Label: t.text(ctx, user.Language, "vocab.train", nil) + " 💪", Token: "start_train"}},
		[]output.Button{t.backButton(ctx, user.Language, "back")},
	)

	screen := output.Screen{Text: strings.Join(lines, "\n"), Rows: rows}
	if err := t.show(ctx, screen); err != nil {
		return nil, fmt.Errorf("render vocabulary: %w", err)
	}
	return s, nil
}

func (s *vocabularyState) OnSelection(ctx context.Context, t *Turn) (Outcome, error) {
	switch t.Event.Token {
	case "back":
		next, err := s.practice.resume(ctx, t)
		return Next(next), err
	case "prev_page":
		if s.page > 0 {
			s.page--
		}
		next, err := s.Show(ctx, t)
		return Next(next), err
	case "next_page":
		if (s.page+1)*wordsPerPage < s.vocabulary.WordCount {
			s.page++
		}
		next, err := s.Show(ctx, t)
		return Next(next), err
	case "start_train":
		next, err := newTrainingState(s.sc, s).Show(ctx, t)
		return Next(next), err
	}
	return Unhandled(), nil
}
