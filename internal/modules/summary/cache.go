package summary

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DocumentSource provides document text for summary generation.
type DocumentSource interface {
	DocumentText(ctx context.Context, corpusName, documentID string) (string, error)
}

type entry struct {
	summary   string
	createdAt time.Time
	expiresAt time.Time
}

// Cache memoizes generated summaries per document with a TTL. A key in
// flight is generated exactly once: concurrent requests await the same
// generation and observe the same text or the same failure. Failures are
// never stored, so the next request retries cleanly.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	group   singleflight.Group
	docs    DocumentSource
	gen     Generator
	logger  *zap.Logger
}

func NewCache(docs DocumentSource, gen Generator, ttl time.Duration, logger *zap.Logger) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		docs:    docs,
		gen:     gen,
		logger:  logger,
	}
}

// Document ids are only unique within a corpus.
func cacheKey(corpusName, documentID string) string {
	return corpusName + "/" + documentID
}

// GetSummary returns the summary for a document, generating it when the entry
// is absent or expired. Expiry is checked on every read; the sweep only
// bounds memory.
func (c *Cache) GetSummary(ctx context.Context, corpusName, documentID string) (string, error) {
	key := cacheKey(corpusName, documentID)
	if s, ok := c.lookup(key, time.Now()); ok {
		return s, nil
	}

	// Generation survives the first caller's cancellation so every waiter of
	// the shared flight gets the result.
	genCtx := context.WithoutCancel(ctx)

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		if s, ok := c.lookup(key, time.Now()); ok {
			return s, nil
		}

		text, err := c.docs.DocumentText(genCtx, corpusName, documentID)
		if err != nil {
			return nil, err
		}

		started := time.Now()
		summary, err := c.gen.Generate(genCtx, text)
		if err != nil {
			return nil, err
		}
		if c.logger != nil {
			c.logger.Info("summary generated",
				zap.String("corpus", corpusName),
				zap.String("document", documentID),
				zap.Duration("took", time.Since(started)),
			)
		}

		now := time.Now()
		c.mu.Lock()
		c.entries[key] = entry{summary: summary, createdAt: now, expiresAt: now.Add(c.ttl)}
		c.mu.Unlock()
		return summary, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Cache) lookup(key string, now time.Time) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || now.After(e.expiresAt) {
		return "", false
	}
	return e.summary, true
}

// RemoveExpired physically deletes expired entries. Registered as the
// background sweep job; it holds only the store lock and never blocks
// in-flight generations.
func (c *Cache) RemoveExpired(ctx context.Context) error {
	now := time.Now()

	c.mu.Lock()
	removed := 0
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
			removed++
		}
	}
	remaining := len(c.entries)
	c.mu.Unlock()

	if removed > 0 && c.logger != nil {
		c.logger.Info("summary cache sweep",
			zap.Int("removed", removed),
			zap.Int("remaining", remaining),
		)
	}
	return nil
}

// Len reports the number of physically stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
