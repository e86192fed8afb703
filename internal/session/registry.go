package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"langbot/internal/domain"
	"langbot/internal/domain/entities"
)

// Registry is the process-wide table from external identity to live
// Session. It creates sessions lazily and guarantees at most one live
// Session per identity, however many events race in.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	services *Services
}

// NewRegistry creates an empty Registry over the given services.
func NewRegistry(services *Services) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		services: services,
	}
}

// Resolve returns the live Session for an identity, creating the
// durable identity row on first contact and rebuilding a fresh Session
// after a restart. Store I/O happens outside the registry lock; a
// re-check under the lock keeps the one-session-per-identity invariant
// when two events for a new identity race.
func (r *Registry) Resolve(ctx context.Context, platform, platformUserID string) (*Session, error) {
	ref := platform + "/" + platformUserID

	r.mu.Lock()
	if live, ok := r.sessions[ref]; ok {
		r.mu.Unlock()
		return live, nil
	}
	r.mu.Unlock()

	identity, err := r.services.Identities.Find(ctx, platform, platformUserID)
	switch {
	case errors.Is(err, domain.ErrIdentityNotFound):
		identity = &entities.ExternalIdentity{Platform: platform, PlatformUserID: platformUserID}
		// Idempotent under retry: the store's uniqueness constraint is
		// the authority, not this process's map.
		if err := r.services.Identities.Create(ctx, identity); err != nil {
			return nil, fmt.Errorf("create identity %s: %w", ref, err)
		}
	case err != nil:
		return nil, fmt.Errorf("load identity %s: %w", ref, err)
	}

	var user *entities.User
	if identity.UserID != nil {
		user, err = r.services.Users.FindByID(ctx, *identity.UserID)
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("load user for %s: %w", ref, err)
		}
	}

	created := &Session{
		sc: &SessionContext{
			Identity:  identity,
			User:      user,
			Assistant: r.services.Chatbot.StartConversation(""),
		},
		services: r.services,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if live, ok := r.sessions[ref]; ok {
		// Lost the race to a concurrent Resolve; the registered session
		// wins so in-memory state stays continuous.
		return live, nil
	}
	r.sessions[ref] = created
	return created, nil
}
