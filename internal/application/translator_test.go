package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"langbot/internal/domain"
	"langbot/internal/domain/entities"
	"langbot/internal/ports/output"
)

type fakeProvider struct {
	kind       string
	pairs      []entities.LanguagePair
	pairsErr   error
	translated string
	fail       error
	detected   []entities.DetectedLanguage
	detectErr  error

	translateCalls int
	detectCalls    int
}

func (p *fakeProvider) Kind() string { return p.kind }

func (p *fakeProvider) SupportedPairs(ctx context.Context) ([]entities.LanguagePair, error) {
	return p.pairs, p.pairsErr
}

func (p *fakeProvider) Translate(ctx context.Context, text, source, target string) (string, error) {
	p.translateCalls++
	if p.fail != nil {
		return "", p.fail
	}
	if p.translated != "" {
		return p.translated, nil
	}
	return fmt.Sprintf("%s:%s->%s:%s", p.kind, source, target, text), nil
}

func (p *fakeProvider) DetectLanguage(ctx context.Context, text string) ([]entities.DetectedLanguage, error) {
	p.detectCalls++
	if p.detectErr != nil {
		return nil, p.detectErr
	}
	return p.detected, nil
}

type fakeCache struct {
	entries map[string]*entities.Translation
	getErr  error
	putErr  error
	gets    int
	puts    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*entities.Translation)}
}

func (c *fakeCache) Get(ctx context.Context, fingerprint string) (*entities.Translation, bool, error) {
	c.gets++
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	cached, ok := c.entries[fingerprint]
	return cached, ok, nil
}

func (c *fakeCache) Put(ctx context.Context, fingerprint string, translation *entities.Translation, ttl time.Duration) error {
	c.puts++
	if c.putErr != nil {
		return c.putErr
	}
	c.entries[fingerprint] = translation
	return nil
}

func pairs(targets string, sources ...string) []entities.LanguagePair {
	var out []entities.LanguagePair
	for _, s := range sources {
		out = append(out, entities.LanguagePair{Source: s, Target: targets})
	}
	return out
}

func TestFingerprintDeterministic(t *testing.T) {
	a := Fingerprint("voiture", "fr", "en")
	b := Fingerprint("voiture", "fr", "en")
	assert.Equal(t, a, b)

	assert.NotEqual(t, a, Fingerprint("voiture", "fr", "de"))
	assert.NotEqual(t, a, Fingerprint("voiture", "en", "fr"))
	assert.NotEqual(t, a, Fingerprint("voitures", "fr", "en"))
}

func TestTranslateCachesResult(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	provider := &fakeProvider{kind: "lt-a", pairs: pairs("en", "fr"), translated: "car"}
	router := NewTranslationRouter(ctx, cache, provider)

	first, err := router.Translate(ctx, "voiture", "fr", "en")
	require.NoError(t, err)
	assert.Equal(t, "car", first.TargetText)
	assert.Equal(t, "fr", first.SourceLanguage)
	assert.Equal(t, Fingerprint("voiture", "fr", "en"), first.Fingerprint)
	assert.Equal(t, 1, provider.translateCalls)

	second, err := router.Translate(ctx, "voiture", "fr", "en")
	require.NoError(t, err)
	assert.Equal(t, first.TargetText, second.TargetText)
	assert.Equal(t, 1, provider.translateCalls, "repeat request must be served from cache")
}

func TestTranslateFallsBackToNextProvider(t *testing.T) {
	ctx := context.Background()
	broken := &fakeProvider{kind: "lt-a", pairs: pairs("en", "fr"), fail: errors.New("boom")}
	healthy := &fakeProvider{kind: "lt-b", pairs: pairs("en", "fr"), translated: "car"}
	router := NewTranslationRouter(ctx, newFakeCache(), broken, healthy)

	translation, err := router.Translate(ctx, "voiture", "fr", "en")
	require.NoError(t, err)
	assert.Equal(t, "car", translation.TargetText)
	assert.Equal(t, 1, broken.translateCalls)
	assert.Equal(t, 1, healthy.translateCalls)
}

func TestTranslateDedupesProvidersByKind(t *testing.T) {
	ctx := context.Background()
	// Same backend registered twice; a failure must not be retried
	// against the same kind.
	first := &fakeProvider{kind: "lt-a", pairs: pairs("en", "fr"), fail: errors.New("boom")}
	twin := &fakeProvider{kind: "lt-a", pairs: pairs("en", "fr"), translated: "car"}
	router := NewTranslationRouter(ctx, newFakeCache(), first, twin)

	_, err := router.Translate(ctx, "voiture", "fr", "en")
	require.Error(t, err)
	assert.Equal(t, 1, first.translateCalls)
	assert.Equal(t, 0, twin.translateCalls)
}

func TestTranslateUnsupportedRoutes(t *testing.T) {
	ctx := context.Background()
	provider := &fakeProvider{kind: "lt-a", pairs: pairs("en", "fr", "de")}
	router := NewTranslationRouter(ctx, newFakeCache(), provider)

	_, err := router.Translate(ctx, "hola", "es", "ja")
	assert.ErrorIs(t, err, domain.ErrUnsupportedTarget)

	_, err = router.Translate(ctx, "hola", "es", "en")
	assert.ErrorIs(t, err, domain.ErrUnsupportedPair)
	assert.Equal(t, 0, provider.translateCalls)
}

func TestTranslateAllProvidersFailed(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("boom")
	provider := &fakeProvider{kind: "lt-a", pairs: pairs("en", "fr"), fail: cause}
	router := NewTranslationRouter(ctx, newFakeCache(), provider)

	_, err := router.Translate(ctx, "voiture", "fr", "en")
	assert.ErrorIs(t, err, cause)
}

func TestTranslateSurvivesBrokenCache(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	cache.getErr = errors.New("cache down")
	cache.putErr = errors.New("cache down")
	provider := &fakeProvider{kind: "lt-a", pairs: pairs("en", "fr"), translated: "car"}
	router := NewTranslationRouter(ctx, cache, provider)

	translation, err := router.Translate(ctx, "voiture", "fr", "en")
	require.NoError(t, err)
	assert.Equal(t, "car", translation.TargetText)
}

func TestProviderExcludedWhenCapabilitiesFail(t *testing.T) {
	ctx := context.Background()
	dead := &fakeProvider{kind: "lt-a", pairsErr: errors.New("unreachable")}
	alive := &fakeProvider{kind: "lt-b", pairs: pairs("en", "fr"), translated: "car"}
	router := NewTranslationRouter(ctx, newFakeCache(), dead, alive)

	assert.Equal(t, []string{"en"}, router.SupportedTargets())

	translation, err := router.Translate(ctx, "voiture", "fr", "en")
	require.NoError(t, err)
	assert.Equal(t, "car", translation.TargetText)
	assert.Equal(t, 0, dead.translateCalls)
}

func TestSupportedTargetsSorted(t *testing.T) {
	ctx := context.Background()
	provider := &fakeProvider{kind: "lt-a", pairs: []entities.LanguagePair{
		{Source: "en", Target: "ru"},
		{Source: "en", Target: "de"},
		{Source: "en", Target: "fr"},
	}}
	router := NewTranslationRouter(ctx, newFakeCache(), provider)

	assert.Equal(t, []string{"de", "fr", "ru"}, router.SupportedTargets())
}

func TestDetectLanguageFallsBack(t *testing.T) {
	ctx := context.Background()
	broken := &fakeProvider{kind: "lt-a", pairs: pairs("en", "fr"), detectErr: errors.New("boom")}
	healthy := &fakeProvider{kind: "lt-b", pairs: pairs("en", "fr"), detected: []entities.DetectedLanguage{
		{Language: "fr", Confidence: 92},
	}}
	router := NewTranslationRouter(ctx, newFakeCache(), broken, healthy)

	detected, err := router.DetectLanguage(ctx, "voiture")
	require.NoError(t, err)
	require.Len(t, detected, 1)
	assert.Equal(t, "fr", detected[0].Language)
	assert.Equal(t, 1, broken.detectCalls)
}

func TestDetectLanguageUnavailable(t *testing.T) {
	ctx := context.Background()
	broken := &fakeProvider{kind: "lt-a", pairs: pairs("en", "fr"), detectErr: errors.New("boom")}
	router := NewTranslationRouter(ctx, newFakeCache(), broken)

	_, err := router.DetectLanguage(ctx, "voiture")
	assert.ErrorIs(t, err, domain.ErrDetectionUnavailable)
}

func TestLookup(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	provider := &fakeProvider{kind: "lt-a", pairs: pairs("en", "fr"), translated: "car"}
	router := NewTranslationRouter(ctx, cache, provider)

	translation, err := router.Translate(ctx, "voiture", "fr", "en")
	require.NoError(t, err)

	found, err := router.Lookup(ctx, translation.Fingerprint)
	require.NoError(t, err)
	assert.Equal(t, "car", found.TargetText)

	_, err = router.Lookup(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrTranslationNotFound)
}

var _ output.TranslationProvider = (*fakeProvider)(nil)
var _ output.TranslationCache = (*fakeCache)(nil)
