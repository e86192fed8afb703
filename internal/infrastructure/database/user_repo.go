package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"langbot/internal/domain"
	"langbot/internal/domain/entities"
	"langbot/internal/ports/output"
)

var _ output.UserRepository = (*UserRepository)(nil)

// UserRepository implements output.UserRepository using pgx.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	id, err := withRetry(ctx, func() (uuid.UUID, error) {
		var id uuid.UUID
		err := r.pool.QueryRow(ctx,
			`INSERT INTO botuser (name, language) VALUES ($1, $2) RETURNING user_id`,
			user.Name, user.Language,
		).Scan(&id)
		if err != nil {
			return uuid.Nil, fmt.Errorf("create user: %w", err)
		}
		return id, nil
	})
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return withRetry(ctx, func() (*entities.User, error) {
		user := &entities.User{ID: id}
		err := r.pool.QueryRow(ctx,
			`SELECT name, language FROM botuser WHERE user_id = $1`,
			id,
		).Scan(&user.Name, &user.Language)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("find user: %w", err)
		}
		return user, nil
	})
}

func (r *UserRepository) UpdateLanguage(ctx context.Context, id uuid.UUID, language string) error {
	_, err := withRetry(ctx, func() (struct{}, error) {
		_, err := r.pool.Exec(ctx,
			`UPDATE botuser SET language = $1 WHERE user_id = $2`,
			language, id,
		)
		if err != nil {
			return struct{}{}, fmt.Errorf("update user language: %w", err)
		}
		return struct{}{}, nil
	})
	return err
}

func (r *UserRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	_, err := withRetry(ctx, func() (struct{}, error) {
		_, err := r.pool.Exec(ctx,
			`UPDATE botuser SET name = $1 WHERE user_id = $2`,
			name, id,
		)
		if err != nil {
			return struct{}{}, fmt.Errorf("update user name: %w", err)
		}
		return struct{}{}, nil
	})
	return err
}
