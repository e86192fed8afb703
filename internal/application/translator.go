package application

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/sony/gobreaker"

	"langbot/internal/domain"
	"langbot/internal/domain/entities"
	"langbot/internal/ports/output"
)

const (
	// TranslationTTL is how long a computed translation stays cached.
	// Reads slide the expiration, so hot translations stay warm.
	TranslationTTL = 7 * 24 * time.Hour

	providerTimeout = 10 * time.Second
)

var _ output.TranslationService = (*TranslationRouter)(nil)

// TranslationRouter routes translation calls across providers and
// writes results through the cache. The route table maps target
// language -> source language -> providers in registration order and is
// built once, from each provider's advertised capabilities.
type TranslationRouter struct {
	cache     output.TranslationCache
	routes    map[string]map[string][]*guardedProvider
	targets   []string
	detectors []*guardedProvider
	timeout   time.Duration
}

// guardedProvider wraps a provider with a circuit breaker so a flapping
// backend fails fast instead of eating the per-call deadline every turn.
type guardedProvider struct {
	output.TranslationProvider
	breaker *gobreaker.CircuitBreaker
}

func (p *guardedProvider) translate(ctx context.Context, text, source, target string) (string, error) {
	out, err := p.breaker.Execute(func() (any, error) {
		return p.TranslationProvider.Translate(ctx, text, source, target)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

func (p *guardedProvider) detect(ctx context.Context, text string) ([]entities.DetectedLanguage, error) {
	out, err := p.breaker.Execute(func() (any, error) {
		return p.TranslationProvider.DetectLanguage(ctx, text)
	})
	if err != nil {
		return nil, err
	}
	return out.([]entities.DetectedLanguage), nil
}

// NewTranslationRouter queries every provider's capabilities and builds
// the route table. A provider that fails its capability query is logged
// and excluded; the remaining providers still start.
func NewTranslationRouter(ctx context.Context, cache output.TranslationCache, providers ...output.TranslationProvider) *TranslationRouter {
	r := &TranslationRouter{
		cache:   cache,
		routes:  make(map[string]map[string][]*guardedProvider),
		timeout: providerTimeout,
	}

	for _, provider := range providers {
		pairs, err := provider.SupportedPairs(ctx)
		if err != nil {
			log.Printf("⚠️ translator %s unavailable, excluding its pairs: %v", provider.Kind(), err)
			continue
		}
		guarded := &guardedProvider{
			TranslationProvider: provider,
			breaker:             gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: provider.Kind()}),
		}
		for _, pair := range pairs {
			sources, ok := r.routes[pair.Target]
			if !ok {
				sources = make(map[string][]*guardedProvider)
				r.routes[pair.Target] = sources
			}
			sources[pair.Source] = append(sources[pair.Source], guarded)
		}
	}

	for target := range r.routes {
		r.targets = append(r.targets, target)
	}
	sort.Strings(r.targets)
	r.detectors = collectDetectors(r.routes)

	return r
}

// collectDetectors flattens the table into one provider per kind, in
// sorted kind order so detection tries providers deterministically.
func collectDetectors(routes map[string]map[string][]*guardedProvider) []*guardedProvider {
	byKind := make(map[string]*guardedProvider)
	for _, sources := range routes {
		for _, providers := range sources {
			for _, p := range providers {
				if _, ok := byKind[p.Kind()]; !ok {
					byKind[p.Kind()] = p
				}
			}
		}
	}
	kinds := make([]string, 0, len(byKind))
	for kind := range byKind {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	detectors := make([]*guardedProvider, 0, len(kinds))
	for _, kind := range kinds {
		detectors = append(detectors, byKind[kind])
	}
	return detectors
}

// Fingerprint is the deterministic id of a translation request, used as
// the cache key.
func Fingerprint(text, source, target string) string {
	sum := md5.Sum([]byte(text + source + target))
	return hex.EncodeToString(sum[:])
}

// Translate returns the cached result for an identical earlier request,
// or routes the request to the first capable provider that succeeds and
// caches its answer.
func (r *TranslationRouter) Translate(ctx context.Context, text, source, target string) (*entities.Translation, error) {
	fingerprint := Fingerprint(text, source, target)
	if cached, ok := r.fromCache(ctx, fingerprint); ok {
		return cached, nil
	}

	sources, ok := r.routes[target]
	if !ok {
		return nil, fmt.Errorf("translate into %s: %w", target, domain.ErrUnsupportedTarget)
	}
	candidates, ok := sources[source]
	if !ok {
		return nil, fmt.Errorf("translate %s -> %s: %w", source, target, domain.ErrUnsupportedPair)
	}

	var lastErr error
	for _, provider := range dedupeByKind(candidates) {
		callCtx, cancel := context.WithTimeout(ctx, r.timeout)
		translated, err := provider.translate(callCtx, text, source, target)
		cancel()
		if err != nil {
			log.Printf("⚠️ translator %s failed %s -> %s: %v", provider.Kind(), source, target, err)
			lastErr = err
			continue
		}

		translation := &entities.Translation{
			SourceText:     text,
			SourceLanguage: source,
			TargetText:     translated,
			TargetLanguage: target,
			Fingerprint:    fingerprint,
		}
		if err := r.cache.Put(ctx, fingerprint, translation, TranslationTTL); err != nil {
			log.Printf("⚠️ translation cache write failed for %s: %v", fingerprint, err)
		}
		return translation, nil
	}

	return nil, fmt.Errorf("translate %s -> %s: all providers failed: %w", source, target, lastErr)
}

// DetectLanguage tries providers in a stable order and returns the
// first successful candidate list.
func (r *TranslationRouter) DetectLanguage(ctx context.Context, text string) ([]entities.DetectedLanguage, error) {
	for _, provider := range r.detectors {
		callCtx, cancel := context.WithTimeout(ctx, r.timeout)
		detected, err := provider.detect(callCtx, text)
		cancel()
		if err != nil {
			log.Printf("⚠️ detector %s failed: %v", provider.Kind(), err)
			continue
		}
		return detected, nil
	}
	return nil, domain.ErrDetectionUnavailable
}

// SupportedTargets lists the target languages at least one provider can
// produce, sorted.
func (r *TranslationRouter) SupportedTargets() []string {
	targets := make([]string, len(r.targets))
	copy(targets, r.targets)
	return targets
}

// Lookup recalls a cached translation by fingerprint.
func (r *TranslationRouter) Lookup(ctx context.Context, fingerprint string) (*entities.Translation, error) {
	if cached, ok := r.fromCache(ctx, fingerprint); ok {
		return cached, nil
	}
	return nil, domain.ErrTranslationNotFound
}

// fromCache treats cache-store failures as misses: a broken cache must
// degrade to extra provider calls, never fail the turn.
func (r *TranslationRouter) fromCache(ctx context.Context, fingerprint string) (*entities.Translation, bool) {
	cached, ok, err := r.cache.Get(ctx, fingerprint)
	if err != nil {
		log.Printf("⚠️ translation cache read failed for %s: %v", fingerprint, err)
		return nil, false
	}
	return cached, ok
}

func dedupeByKind(candidates []*guardedProvider) []*guardedProvider {
	seen := make(map[string]bool, len(candidates))
	deduped := make([]*guardedProvider, 0, len(candidates))
	for _, p := range candidates {
		if seen[p.Kind()] {
			continue
		}
		seen[p.Kind()] = true
		deduped = append(deduped, p)
	}
	return deduped
}
