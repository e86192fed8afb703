package session

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"langbot/internal/domain/entities"
)

func TestResolveCreatesIdentityOnFirstContact(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	registry := NewRegistry(h.services)

	live, err := registry.Resolve(ctx, "discord", "100")
	require.NoError(t, err)
	require.NotNil(t, live)
	assert.Nil(t, live.Context().User)

	stored, err := h.identities.Find(ctx, "discord", "100")
	require.NoError(t, err)
	assert.Equal(t, "discord", stored.Platform)
	assert.Equal(t, "100", stored.PlatformUserID)
}

func TestResolveReturnsSameSessionForSameIdentity(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry(newHarness().services)

	first, err := registry.Resolve(ctx, "discord", "100")
	require.NoError(t, err)
	second, err := registry.Resolve(ctx, "discord", "100")
	require.NoError(t, err)
	assert.Same(t, first, second)

	other, err := registry.Resolve(ctx, "discord", "200")
	require.NoError(t, err)
	assert.NotSame(t, first, other)
}

func TestResolveLoadsLinkedUser(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	user := h.registeredUser(t, "Sam", "fr")
	require.NoError(t, h.identities.Create(ctx, &entities.ExternalIdentity{
		Platform:       "discord",
		PlatformUserID: "100",
		UserID:         &user.ID,
	}))
	registry := NewRegistry(h.services)

	live, err := registry.Resolve(ctx, "discord", "100")
	require.NoError(t, err)
	require.NotNil(t, live.Context().User)
	assert.Equal(t, "Sam", live.Context().User.Name)
	assert.Equal(t, "fr", live.Context().User.Language)
}

func TestResolveConcurrentEventsShareOneSession(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry(newHarness().services)

	const racers = 32
	sessions := make([]*Session, racers)
	var wg sync.WaitGroup
	wg.Add(racers)
	for i := 0; i < racers; i++ {
		go func(i int) {
			defer wg.Done()
			live, err := registry.Resolve(ctx, "discord", "100")
			assert.NoError(t, err)
			sessions[i] = live
		}(i)
	}
	wg.Wait()

	for i := 1; i < racers; i++ {
		assert.Same(t, sessions[0], sessions[i])
	}
}
