package output

import (
	"context"

	"github.com/google/uuid"

	"langbot/internal/domain/entities"
)

type IdentityRepository interface {
	// Find returns domain.ErrIdentityNotFound when no row exists.
	Find(ctx context.Context, platform, platformUserID string) (*entities.ExternalIdentity, error)
	// Create is idempotent: a retried create for the same key must not
	// produce a duplicate (enforced by the store's uniqueness constraint).
	Create(ctx context.Context, identity *entities.ExternalIdentity) error
	LinkUser(ctx context.Context, platform, platformUserID string, userID uuid.UUID) error
}
