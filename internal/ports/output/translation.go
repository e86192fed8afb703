package output

import (
	"context"
	"time"

	"langbot/internal/domain/entities"
)

// TranslationService is the routed, cached translation layer screens
// render with.
type TranslationService interface {
	Translate(ctx context.Context, text, source, target string) (*entities.Translation, error)
	// DetectLanguage returns candidates ordered by confidence.
	DetectLanguage(ctx context.Context, text string) ([]entities.DetectedLanguage, error)
	// SupportedTargets lists target languages in sorted order.
	SupportedTargets() []string
	// Lookup recalls a previously computed translation by fingerprint;
	// domain.ErrTranslationNotFound when it expired or never existed.
	Lookup(ctx context.Context, fingerprint string) (*entities.Translation, error)
}

// TranslationProvider is one upstream translation backend.
type TranslationProvider interface {
	// Kind identifies the logical provider; the router never calls two
	// providers of the same kind for one request.
	Kind() string
	// SupportedPairs advertises the provider's capabilities. Called once
	// at startup to build the route table.
	SupportedPairs(ctx context.Context) ([]entities.LanguagePair, error)
	Translate(ctx context.Context, text, source, target string) (string, error)
	DetectLanguage(ctx context.Context, text string) ([]entities.DetectedLanguage, error)
}

// TranslationCache is the external content-addressed translation store.
type TranslationCache interface {
	// Get reports a miss for absent and for unreadable entries; an
	// unreadable entry is evicted. A hit slides the entry's expiration.
	Get(ctx context.Context, fingerprint string) (*entities.Translation, bool, error)
	Put(ctx context.Context, fingerprint string, translation *entities.Translation, ttl time.Duration) error
}
