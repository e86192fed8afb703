package memcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"langbot/internal/domain/entities"
)

func testCache(start time.Time) (*Cache, *time.Time) {
	clock := start
	c := New()
	c.now = func() time.Time { return clock }
	return c, &clock
}

func sample() *entities.Translation {
	return &entities.Translation{
		SourceText:     "voiture",
		SourceLanguage: "fr",
		TargetText:     "car",
		TargetLanguage: "en",
		Fingerprint:    "fp-1",
	}
}

func TestGetMissOnEmptyCache(t *testing.T) {
	c, _ := testCache(time.Now())

	cached, ok, err := c.Get(context.Background(), "fp-1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, cached)
}

func TestPutThenGet(t *testing.T) {
	ctx := context.Background()
	c, _ := testCache(time.Now())

	require.NoError(t, c.Put(ctx, "fp-1", sample(), time.Hour))

	cached, ok, err := c.Get(ctx, "fp-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "car", cached.TargetText)
}

func TestEntryExpires(t *testing.T) {
	ctx := context.Background()
	c, clock := testCache(time.Now())

	require.NoError(t, c.Put(ctx, "fp-1", sample(), time.Hour))
	*clock = clock.Add(time.Hour + time.Minute)

	_, ok, err := c.Get(ctx, "fp-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReadSlidesExpiration(t *testing.T) {
	ctx := context.Background()
	c, clock := testCache(time.Now())

	require.NoError(t, c.Put(ctx, "fp-1", sample(), time.Hour))

	// Touch the entry just before it would expire; each read buys a
	// fresh full TTL.
	for i := 0; i < 3; i++ {
		*clock = clock.Add(59 * time.Minute)
		_, ok, err := c.Get(ctx, "fp-1")
		require.NoError(t, err)
		require.True(t, ok, "read %d should still hit", i)
	}

	// Without reads the slid deadline finally passes.
	*clock = clock.Add(2 * time.Hour)
	_, ok, err := c.Get(ctx, "fp-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	c, _ := testCache(time.Now())

	require.NoError(t, c.Put(ctx, "fp-1", sample(), time.Hour))

	first, ok, err := c.Get(ctx, "fp-1")
	require.NoError(t, err)
	require.True(t, ok)
	first.TargetText = "mutated"

	second, _, err := c.Get(ctx, "fp-1")
	require.NoError(t, err)
	assert.Equal(t, "car", second.TargetText)
}
