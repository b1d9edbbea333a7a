package session_test

import (
	"testing"

	"launchbay-gateway/internal/auth"
	"launchbay-gateway/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_InitialSnapshotIsResolving(t *testing.T) {
	m := session.NewManager()

	snap := m.Snapshot()
	assert.True(t, snap.Resolving)
	assert.False(t, snap.Identity.Present())
}

func TestManager_ApplyFlipsResolvingWithIdentity(t *testing.T) {
	m := session.NewManager()

	m.Apply(auth.Identity{Email: "alice@example.com"})

	// identity and resolving change together
	snap := m.Snapshot()
	assert.False(t, snap.Resolving)
	assert.Equal(t, "alice@example.com", snap.Identity.Email)
}

func TestManager_ClearIsIdempotent(t *testing.T) {
	m := session.NewManager()
	m.Apply(auth.Identity{Email: "alice@example.com"})

	m.Clear()
	snap := m.Snapshot()
	assert.False(t, snap.Identity.Present())
	assert.False(t, snap.Resolving)

	// second clear: no panic, same state
	m.Clear()
	snap = m.Snapshot()
	assert.False(t, snap.Identity.Present())
	assert.False(t, snap.Resolving)
}

func TestManager_SubscriberSeesChangesInOrder(t *testing.T) {
	m := session.NewManager()

	ch, cancel := m.Subscribe()
	defer cancel()

	m.Apply(auth.Identity{Email: "alice@example.com"})
	m.Apply(auth.Identity{Email: "bob@example.com"})
	m.Clear()

	first := <-ch
	second := <-ch
	third := <-ch

	assert.Equal(t, "alice@example.com", first.Identity.Email)
	assert.Equal(t, "bob@example.com", second.Identity.Email)
	assert.False(t, third.Identity.Present())
	assert.False(t, third.Resolving)
}

func TestManager_CancelReleasesSubscription(t *testing.T) {
	m := session.NewManager()

	ch, cancel := m.Subscribe()
	cancel()

	// channel is closed; a later notification must not reach it
	m.Apply(auth.Identity{Email: "alice@example.com"})

	_, open := <-ch
	assert.False(t, open)

	// cancelling twice is safe
	cancel()
}

func TestManager_SlowSubscriberDoesNotBlockApply(t *testing.T) {
	m := session.NewManager()

	// never drained
	_, cancel := m.Subscribe()
	defer cancel()

	// more notifications than the subscription buffer holds
	for i := 0; i < 100; i++ {
		m.Apply(auth.Identity{Email: "alice@example.com"})
	}

	// manager state is still correct for direct readers
	snap := m.Snapshot()
	require.Equal(t, "alice@example.com", snap.Identity.Email)
}
