package session

import (
	"context"
	"time"
)

// Session represents an authenticated user session. It carries the bearer
// token used against the upstream marketplace API; deleting the session is
// the only way that token leaves persistence.
type Session struct {
	SessionID   string    // unique session identifier
	AccountID   string    // references accounts.id
	Email       string
	DisplayName string
	AvatarURL   string
	Token       string    // bearer token for upstream calls
	CreatedAt   time.Time
	ExpiresAt   time.Time // absolute expiry time
}

// Store defines how sessions are stored and retrieved.
// Implementations (e.g., Redis) must remain stateless and opaque.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Update(ctx context.Context, s Session) error
	Delete(ctx context.Context, sessionID string) error
}
