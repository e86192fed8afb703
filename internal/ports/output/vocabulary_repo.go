package output

import (
	"context"

	"github.com/google/uuid"

	"langbot/internal/domain/entities"
)

type VocabularyRepository interface {
	CountWords(ctx context.Context, userID uuid.UUID, language string) (int, error)
	// Languages lists the user's vocabularies with their word counts.
	Languages(ctx context.Context, userID uuid.UUID) ([]entities.Vocabulary, error)
	// Words pages through a vocabulary ordered by learning score, then
	// by the time the word was last checked.
	Words(ctx context.Context, userID uuid.UUID, language string, offset, limit int) ([]entities.VocabularyWord, error)
	// FilterNewWords returns the candidates the user does not have yet.
	FilterNewWords(ctx context.Context, userID uuid.UUID, language string, candidates []string) ([]string, error)
	SaveWord(ctx context.Context, word *entities.VocabularyWord) error
}
