package role_test

import (
	"context"
	"errors"
	"testing"

	"launchbay-gateway/internal/role"

	"github.com/stretchr/testify/assert"
)

// countingResolver returns canned roles and counts round trips.
type countingResolver struct {
	roles map[string]role.Role
	err   error
	calls int

	// onResolve, when set, runs inside each resolution — used to model
	// an identity change arriving while the fetch is in flight.
	onResolve func()
}

func (f *countingResolver) ResolveRole(_ context.Context, _ string, email string) (role.Role, error) {
	f.calls++
	if f.onResolve != nil {
		f.onResolve()
	}
	if f.err != nil {
		return role.User, f.err
	}
	if r, ok := f.roles[email]; ok {
		return r, nil
	}
	return role.User, nil
}

func TestCache_HitSkipsRoundTrip(t *testing.T) {
	resolver := &countingResolver{roles: map[string]role.Role{
		"alice@example.com": role.Admin,
	}}
	cache := role.NewCache(resolver)

	r := cache.Resolve(context.Background(), "tok", "alice@example.com")
	assert.Equal(t, role.Admin, r)
	assert.Equal(t, 1, resolver.calls)

	// same identity, no change in between: cached, no network call
	r = cache.Resolve(context.Background(), "tok", "alice@example.com")
	assert.Equal(t, role.Admin, r)
	assert.Equal(t, 1, resolver.calls)
}

func TestCache_AnonymousNeverFetches(t *testing.T) {
	resolver := &countingResolver{}
	cache := role.NewCache(resolver)

	assert.Equal(t, role.User, cache.Resolve(context.Background(), "", ""))
	assert.Equal(t, 0, resolver.calls)
}

func TestCache_FailsClosed(t *testing.T) {
	resolver := &countingResolver{err: errors.New("connection refused")}
	cache := role.NewCache(resolver)

	r := cache.Resolve(context.Background(), "tok", "alice@example.com")
	assert.Equal(t, role.User, r, "network failure must resolve to least privilege")

	// the failure is not cached; the next request retries
	resolver.err = nil
	resolver.roles = map[string]role.Role{"alice@example.com": role.Admin}
	r = cache.Resolve(context.Background(), "tok", "alice@example.com")
	assert.Equal(t, role.Admin, r)
	assert.Equal(t, 2, resolver.calls)
}

func TestCache_ConcurrentIdentitiesKeepTheirEntries(t *testing.T) {
	resolver := &countingResolver{roles: map[string]role.Role{
		"alice@example.com": role.Admin,
		"bob@example.com":   role.Membership,
	}}
	cache := role.NewCache(resolver)

	assert.Equal(t, role.Admin, cache.Resolve(context.Background(), "t1", "alice@example.com"))
	assert.Equal(t, role.Membership, cache.Resolve(context.Background(), "t2", "bob@example.com"))

	// neither lookup evicted the other: both are still cache hits
	assert.Equal(t, role.Admin, cache.Resolve(context.Background(), "t1", "alice@example.com"))
	assert.Equal(t, role.Membership, cache.Resolve(context.Background(), "t2", "bob@example.com"))
	assert.Equal(t, 2, resolver.calls)
}

func TestCache_InvalidateForcesRefetch(t *testing.T) {
	resolver := &countingResolver{roles: map[string]role.Role{
		"alice@example.com": role.Admin,
	}}
	cache := role.NewCache(resolver)

	assert.Equal(t, role.Admin, cache.Resolve(context.Background(), "tok", "alice@example.com"))

	// alice is demoted; the mutation path invalidates the cache
	resolver.roles["alice@example.com"] = role.User
	cache.Invalidate()

	assert.Equal(t, role.User, cache.Resolve(context.Background(), "tok", "alice@example.com"))
	assert.Equal(t, 2, resolver.calls)
}

func TestCache_SupersededFetchNotApplied(t *testing.T) {
	resolver := &countingResolver{roles: map[string]role.Role{
		"alice@example.com": role.Admin,
	}}
	cache := role.NewCache(resolver)

	// while alice's fetch is in flight, the identity changes (sign-out)
	resolver.onResolve = func() {
		cache.Invalidate()
	}
	r := cache.Resolve(context.Background(), "tok", "alice@example.com")
	// the caller that asked still gets its answer...
	assert.Equal(t, role.Admin, r)

	// ...but the result was discarded, not cached over the new identity:
	// the next resolve for alice makes a fresh round trip
	resolver.onResolve = nil
	cache.Resolve(context.Background(), "tok", "alice@example.com")
	assert.Equal(t, 2, resolver.calls)
}
