package output

import (
	"context"

	"github.com/google/uuid"

	"langbot/internal/domain/entities"
)

type UserRepository interface {
	// Create fills user.ID with the generated id.
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	UpdateLanguage(ctx context.Context, id uuid.UUID, language string) error
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
}
