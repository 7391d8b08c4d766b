package ner

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rkabir/floodlens/internal/cache"
)

// CachedRecognizer wraps a recognizer with a cache layer keyed by article
// content. Recognition is deterministic per backend, so identical text can
// be served from cache across runs.
type CachedRecognizer struct {
	inner Recognizer
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedRecognizer wraps the given recognizer with the given cache
func NewCachedRecognizer(inner Recognizer, c cache.Cache, ttl time.Duration) *CachedRecognizer {
	return &CachedRecognizer{
		inner: inner,
		cache: c,
		ttl:   ttl,
	}
}

// Name returns the wrapped backend's name
func (r *CachedRecognizer) Name() string {
	return r.inner.Name()
}

// Recognize returns the cached document for this text if present,
// otherwise delegates to the wrapped backend and caches the result.
func (r *CachedRecognizer) Recognize(ctx context.Context, text string) (*Document, error) {
	// Backend name in the key: different backends disagree on spans
	key := cache.CacheKey(r.inner.Name() + ":" + text)

	if data, found := r.cache.Get(key); found {
		var doc Document
		if err := json.Unmarshal(data, &doc); err == nil {
			return &doc, nil
		}
		// Corrupt entry: fall through to a fresh recognition
		_ = r.cache.Delete(key)
	}

	doc, err := r.inner.Recognize(ctx, text)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(doc); err == nil {
		_ = r.cache.Set(key, data, r.ttl)
	}

	return doc, nil
}
