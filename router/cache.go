package router

import (
	"context"
	"sync"

	"golang.org/x/crypto/sha3"
)

const cacheKeyLabel = "neuralsutra/router/tokens"

type cacheKey [32]byte

// CachedClassifier memoizes the intents returned by another classifier.
// Errors are not cached. It is safe for concurrent use.
type CachedClassifier struct {
	next Classifier

	mu      sync.RWMutex
	entries map[cacheKey]Intent
	hits    int
	misses  int
}

// NewCachedClassifier wraps next with an in-memory cache.
func NewCachedClassifier(next Classifier) *CachedClassifier {
	return &CachedClassifier{next: next, entries: make(map[cacheKey]Intent)}
}

// Classify implements Classifier.
func (c *CachedClassifier) Classify(ctx context.Context, tokens []string) (Intent, error) {
	key := tokenKey(tokens)

	c.mu.RLock()
	intent, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return intent, nil
	}

	intent, err := c.next.Classify(ctx, tokens)
	if err != nil {
		return intent, err
	}
	c.mu.Lock()
	c.entries[key] = intent
	c.misses++
	c.mu.Unlock()
	return intent, nil
}

// Stats returns the number of cache hits and misses so far.
func (c *CachedClassifier) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

// Len returns the number of cached token streams.
func (c *CachedClassifier) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// tokenKey digests a token stream with SHAKE-256. Each token is written with
// its length so that ["ab", "c"] and ["a", "bc"] differ.
func tokenKey(tokens []string) cacheKey {
	h := sha3.NewShake256()
	h.Write([]byte(cacheKeyLabel))
	var n [4]byte
	for _, t := range tokens {
		l := len(t)
		n[0], n[1], n[2], n[3] = byte(l>>24), byte(l>>16), byte(l>>8), byte(l)
		h.Write(n[:])
		h.Write([]byte(t))
	}
	var key cacheKey
	h.Read(key[:])
	return key
}
