package session

import (
	"sync"

	"launchbay-gateway/internal/auth"
)

// Snapshot is the pair every consumer reads: who is signed in, and whether
// the first identity notification has arrived yet. The two fields always
// change together; readers never observe a torn intermediate state.
type Snapshot struct {
	Identity  auth.Identity
	Resolving bool
}

// Manager holds the current identity and fans identity changes out to
// subscribers. Notifications are applied in arrival order; the first one
// (sign-in, restore, or an explicit clear) flips Resolving to false.
type Manager struct {
	mu        sync.Mutex
	current   auth.Identity
	resolving bool

	nextSub int
	subs    map[int]chan Snapshot
}

func NewManager() *Manager {
	return &Manager{
		resolving: true,
		subs:      make(map[int]chan Snapshot),
	}
}

// Snapshot returns the current identity and resolving flag as one unit.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{Identity: m.current, Resolving: m.resolving}
}

// Apply atomically replaces the current identity and notifies subscribers.
func (m *Manager) Apply(identity auth.Identity) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = identity
	m.resolving = false
	m.notifyLocked()
}

// Clear removes the current identity. Idempotent: clearing an already
// anonymous manager notifies subscribers again but changes nothing.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = auth.Identity{}
	m.resolving = false
	m.notifyLocked()
}

// Subscribe registers for identity-change notifications. The returned
// cancel func must be called when the consumer goes away; after cancel the
// channel is closed and no further sends occur.
func (m *Manager) Subscribe() (<-chan Snapshot, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++

	// Buffered so delivery never blocks the notifier. A subscriber that
	// falls behind misses intermediate states, not the latest one: it can
	// always re-read Snapshot().
	ch := make(chan Snapshot, 16)
	m.subs[id] = ch

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if sub, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(sub)
		}
	}

	return ch, cancel
}

// notifyLocked sends the current snapshot to every subscriber. Sends happen
// under the mutex so all subscribers observe changes in the same order.
func (m *Manager) notifyLocked() {
	snap := Snapshot{Identity: m.current, Resolving: m.resolving}
	for _, ch := range m.subs {
		select {
		case ch <- snap:
		default:
			// subscriber is not draining; drop rather than block
		}
	}
}
