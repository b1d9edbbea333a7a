package role

import (
	"context"
	"sync"

	"launchbay-gateway/internal/logger"
	"launchbay-gateway/internal/metrics"
)

// Cache memoizes upstream role lookups keyed by email, so each signed-in
// identity costs one round trip until something invalidates it. Entries
// for different emails coexist; concurrent sessions do not evict each
// other.
//
// In-flight fetches are generation-tagged. A fetch that completes after
// Invalidate has run belongs to a dead generation and is discarded instead
// of being written over fresher state; the underlying request is not
// aborted, only ignored on arrival.
type Cache struct {
	resolver Resolver

	mu         sync.Mutex
	entries    map[string]Role
	generation uint64
}

func NewCache(resolver Resolver) *Cache {
	return &Cache{
		resolver: resolver,
		entries:  make(map[string]Role),
	}
}

// Resolve returns the role for email, hitting the upstream only on a cache
// miss. It never fails: an upstream error resolves to User (least
// privilege) and is flagged for observability, not propagated. A transient
// network failure must restrict access, never escalate it.
//
// An empty email (anonymous) resolves to User without any round trip.
func (c *Cache) Resolve(ctx context.Context, token, email string) Role {
	if email == "" {
		return User
	}

	c.mu.Lock()
	if r, ok := c.entries[email]; ok {
		c.mu.Unlock()
		return r
	}
	gen := c.generation
	c.mu.Unlock()

	r, err := c.resolver.ResolveRole(ctx, token, email)
	if err != nil {
		logger.Warn("role resolve failed, falling back to least privilege", map[string]any{
			"email": email,
			"error": err.Error(),
		})
		metrics.RoleFallbackTotal.Inc()
		// not cached: the next request retries the lookup
		return User
	}

	c.mu.Lock()
	if c.generation == gen {
		c.entries[email] = r
	}
	c.mu.Unlock()

	return r
}

// Invalidate drops every cached entry. Called when an identity changes or
// when a role mutation (promote/demote, membership purchase) makes cached
// tiers suspect.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]Role)
	c.generation++
	c.mu.Unlock()
}
