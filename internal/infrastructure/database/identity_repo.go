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

var _ output.IdentityRepository = (*IdentityRepository)(nil)

// IdentityRepository implements output.IdentityRepository using pgx.
type IdentityRepository struct {
	pool *pgxpool.Pool
}

// NewIdentityRepository creates an IdentityRepository.
func NewIdentityRepository(pool *pgxpool.Pool) *IdentityRepository {
	return &IdentityRepository{pool: pool}
}

func (r *IdentityRepository) Find(ctx context.Context, platform, platformUserID string) (*entities.ExternalIdentity, error) {
	return withRetry(ctx, func() (*entities.ExternalIdentity, error) {
		var userID *uuid.UUID
		err := r.pool.QueryRow(ctx,
			`SELECT user_id FROM external_identity WHERE platform = $1 AND platform_user_id = $2`,
			platform, platformUserID,
		).Scan(&userID)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrIdentityNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("find identity: %w", err)
		}
		return &entities.ExternalIdentity{
			Platform:       platform,
			PlatformUserID: platformUserID,
			UserID:         userID,
		}, nil
	})
}

// Create inserts the identity row. ON CONFLICT DO NOTHING makes a
// retried create for the same key a no-op rather than a duplicate.
func (r *IdentityRepository) Create(ctx context.Context, identity *entities.ExternalIdentity) error {
	_, err := withRetry(ctx, func() (struct{}, error) {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO external_identity (platform, platform_user_id, user_id)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (platform, platform_user_id) DO NOTHING`,
			identity.Platform, identity.PlatformUserID, identity.UserID,
		)
		if err != nil {
			return struct{}{}, fmt.Errorf("create identity: %w", err)
		}
		return struct{}{}, nil
	})
	return err
}

func (r *IdentityRepository) LinkUser(ctx context.Context, platform, platformUserID string, userID uuid.UUID) error {
	_, err := withRetry(ctx, func() (struct{}, error) {
		_, err := r.pool.Exec(ctx,
			`UPDATE external_identity SET user_id = $1 WHERE platform = $2 AND platform_user_id = $3`,
			userID, platform, platformUserID,
		)
		if err != nil {
			return struct{}{}, fmt.Errorf("link identity: %w", err)
		}
		return struct{}{}, nil
	})
	return err
}
