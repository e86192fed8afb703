package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"langbot/internal/domain/entities"
	"langbot/internal/ports/output"
)

var _ output.VocabularyRepository = (*VocabularyRepository)(nil)

// VocabularyRepository implements output.VocabularyRepository using pgx.
type VocabularyRepository struct {
	pool *pgxpool.Pool
}

// NewVocabularyRepository creates a VocabularyRepository.
func NewVocabularyRepository(pool *pgxpool.Pool) *VocabularyRepository {
	return &VocabularyRepository{pool: pool}
}

func (r *VocabularyRepository) CountWords(ctx context.Context, userID uuid.UUID, language string) (int, error) {
	return withRetry(ctx, func() (int, error) {
		var count int
		err := r.pool.QueryRow(ctx,
			`SELECT COUNT(word) FROM vocabulary WHERE user_id = $1 AND language = $2`,
			userID, language,
		).Scan(&count)
		if err != nil {
			return 0, fmt.Errorf("count words: %w", err)
		}
		return count, nil
	})
}

func (r *VocabularyRepository) Languages(ctx context.Context, userID uuid.UUID) ([]entities.Vocabulary, error) {
	return withRetry(ctx, func() ([]entities.Vocabulary, error) {
		rows, err := r.pool.Query(ctx,
			`SELECT language, COUNT(word) FROM vocabulary
			 WHERE user_id = $1 GROUP BY language ORDER BY language`,
			userID,
		)
		if err != nil {
			return nil, fmt.Errorf("list vocabularies: %w", err)
		}
		defer rows.Close()

		var vocabularies []entities.Vocabulary
		for rows.Next() {
			vocabulary := entities.Vocabulary{UserID: userID}
			if err := rows.Scan(&vocabulary.Language, &vocabulary.WordCount); err != nil {
				return nil, fmt.Errorf("scan vocabulary: %w", err)
			}
			vocabularies = append(vocabularies, vocabulary)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("list vocabularies: %w", err)
		}
		return vocabularies, nil
	})
}

func (r *VocabularyRepository) Words(ctx context.Context, userID uuid.UUID, language string, offset, limit int) ([]entities.VocabularyWord, error) {
	return withRetry(ctx, func() ([]entities.VocabularyWord, error) {
		rows, err := r.pool.Query(ctx,
			`SELECT v.word, v.language, COALESCE(w.category, ''), v.learning_score, v.last_check
			 FROM vocabulary AS v
			 INNER JOIN words AS w ON v.word = w.word AND v.language = w.language
			 WHERE v.user_id = $1 AND v.language = $2
			 ORDER BY v.learning_score, v.last_check
			 OFFSET $3 LIMIT $4`,
			userID, language, offset, limit,
		)
		if err != nil {
			return nil, fmt.Errorf("page words: %w", err)
		}
		defer rows.Close()

		var words []entities.VocabularyWord
		for rows.Next() {
			word := entities.VocabularyWord{UserID: userID}
			if err := rows.Scan(&word.Word, &word.Language, &word.Category, &word.LearningScore, &word.LastCheck); err != nil {
				return nil, fmt.Errorf("scan word: %w", err)
			}
			words = append(words, word)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("page words: %w", err)
		}
		return words, nil
	})
}

func (r *VocabularyRepository) FilterNewWords(ctx context.Context, userID uuid.UUID, language string, candidates []string) ([]string, error) {
	return withRetry(ctx, func() ([]string, error) {
		rows, err := r.pool.Query(ctx,
			`SELECT nw FROM unnest($1::text[]) AS nw
			 LEFT JOIN vocabulary AS v
			 ON nw = v.word AND v.language = $2 AND v.user_id = $3
			 WHERE v.word IS NULL`,
			candidates, language, userID,
		)
		if err != nil {
			return nil, fmt.Errorf("filter new words: %w", err)
		}
		defer rows.Close()

		var fresh []string
		for rows.Next() {
			var word string
			if err := rows.Scan(&word); err != nil {
				return nil, fmt.Errorf("scan new word: %w", err)
			}
			fresh = append(fresh, word)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("filter new words: %w", err)
		}
		return fresh, nil
	})
}

// SaveWord upserts the shared word row and the user's vocabulary entry
// in one transaction, so a retried press of "remember" cannot commit a
// half-written word.
func (r *VocabularyRepository) SaveWord(ctx context.Context, word *entities.VocabularyWord) error {
	_, err := withRetry(ctx, func() (struct{}, error) {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return struct{}{}, fmt.Errorf("save word: begin: %w", err)
		}
		defer tx.Rollback(ctx)

		var category *string
		if word.Category != "" {
			category = &word.Category
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO words (word, language, category) VALUES ($1, $2, $3)
			 ON CONFLICT DO NOTHING`,
			word.Word, word.Language, category,
		); err != nil {
			return struct{}{}, fmt.Errorf("save word: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO vocabulary (word, language, user_id, learning_score, last_check)
			 VALUES ($1, $2, $3, $4, (now() AT TIME ZONE 'utc'))
			 ON CONFLICT (user_id, language, word)
			 DO UPDATE SET learning_score = excluded.learning_score, last_check = excluded.last_check`,
			word.Word, word.Language, word.UserID, word.LearningScore,
		); err != nil {
			return struct{}{}, fmt.Errorf("save vocabulary entry: %w", err)
		}
		if err := tx.Commit(ctx); err != nil {
			return struct{}{}, fmt.Errorf("save word: commit: %w", err)
		}
		return struct{}{}, nil
	})
	return err
}
