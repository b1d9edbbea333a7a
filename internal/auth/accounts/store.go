package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"launchbay-gateway/internal/auth"
	"launchbay-gateway/internal/db"

	"github.com/google/uuid"
)

var (
	ErrAlreadyRegistered = errors.New("credentials already exist")
	ErrNotFound          = errors.New("account not found")
)

// Store owns account rows and identity links. It is the ONLY place where
// identity-to-account mapping logic lives.
type Store struct {
	db *db.DB
}

func NewStore(db *db.DB) *Store {
	return &Store{db: db}
}

// Register creates a password account. The account row is created first if
// the email is new (a federated user may add a password later).
func (s *Store) Register(
	ctx context.Context,
	email string,
	password string,
	displayName string,
	avatarURL string,
) (*Account, error) {

	var accountID uuid.UUID

	// 1. Find or create account by email
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM accounts
		WHERE LOWER(email) = LOWER($1)
	`, email).Scan(&accountID)

	if err == sql.ErrNoRows {
		err = s.db.QueryRowContext(ctx, `
			INSERT INTO accounts (email, display_name, avatar_url, email_verified)
			VALUES ($1, $2, $3, false)
			RETURNING id
		`, email, displayName, avatarURL).Scan(&accountID)
	}

	if err != nil {
		return nil, err
	}

	// 2. Refuse a second password on the same account
	var exists bool
	err = s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM credentials WHERE account_id = $1
		)
	`, accountID).Scan(&exists)

	if err != nil {
		return nil, err
	}

	if exists {
		return nil, ErrAlreadyRegistered
	}

	// 3. Hash and store
	hash, version, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO credentials (account_id, password_hash, hash_version)
		VALUES ($1, $2, $3)
	`, accountID, hash, version)

	if err != nil {
		return nil, err
	}

	return s.byID(ctx, accountID)
}

// Authenticate verifies an email/password pair and returns the account.
// Failures collapse to ErrInvalidCredentials so callers cannot probe
// which emails exist.
func (s *Store) Authenticate(
	ctx context.Context,
	email string,
	password string,
) (*Account, error) {

	var (
		accountID    uuid.UUID
		passwordHash string
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT a.id, c.password_hash
		FROM accounts a
		JOIN credentials c ON c.account_id = a.id
		WHERE LOWER(a.email) = LOWER($1)
	`, email).Scan(&accountID, &passwordHash)

	if err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	if err := VerifyPassword(passwordHash, password); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	return s.byID(ctx, accountID)
}

// ResolveFederated maps a federated identity onto an account:
// existing identity link, then email-based linking, then a new account.
func (s *Store) ResolveFederated(
	ctx context.Context,
	identity *auth.Identity,
) (*Account, error) {

	if identity == nil {
		return nil, errors.New("identity is nil")
	}

	var accountID uuid.UUID

	// 1. Try identity lookup (provider + provider_user_id)
	err := s.db.QueryRowContext(ctx, `
		SELECT account_id
		FROM identities
		WHERE provider = $1
		  AND provider_user_id = $2
	`,
		identity.Provider,
		identity.ProviderUserID,
	).Scan(&accountID)

	if err == nil {
		return s.byID(ctx, accountID)
	}

	if err != sql.ErrNoRows {
		return nil, err
	}

	// 2. Try email-based linking (existing account, new provider)
	err = s.db.QueryRowContext(ctx, `
		SELECT id
		FROM accounts
		WHERE LOWER(email) = LOWER($1)
	`,
		identity.Email,
	).Scan(&accountID)

	if err == nil {
		if err := s.linkIdentity(ctx, accountID, identity); err != nil {
			return nil, err
		}
		return s.byID(ctx, accountID)
	}

	if err != sql.ErrNoRows {
		return nil, err
	}

	// 3. Create new account + identity link
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO accounts (email, display_name, avatar_url, email_verified)
		VALUES ($1, $2, $3, true)
		RETURNING id
	`,
		identity.Email,
		identity.DisplayName,
		identity.AvatarURL,
	).Scan(&accountID)

	if err != nil {
		return nil, err
	}

	if err := s.linkIdentity(ctx, accountID, identity); err != nil {
		return nil, err
	}

	return s.byID(ctx, accountID)
}

// UpdateProfile sets display name and avatar for an existing account.
func (s *Store) UpdateProfile(
	ctx context.Context,
	email string,
	displayName string,
	avatarURL string,
) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE accounts
		SET display_name = $2, avatar_url = $3, updated_at = NOW()
		WHERE LOWER(email) = LOWER($1)
	`, email, displayName, avatarURL)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetSubscribed records a paid membership purchase locally so the profile
// screen can render without an upstream round trip. The upstream remains
// authoritative for the role this purchase confers.
func (s *Store) SetSubscribed(ctx context.Context, email string, subscribed bool) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE accounts
		SET subscribed = $2, updated_at = NOW()
		WHERE LOWER(email) = LOWER($1)
	`, email, subscribed)
	return err
}

// ByEmail loads an account by email.
func (s *Store) ByEmail(ctx context.Context, email string) (*Account, error) {
	var id uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM accounts
		WHERE LOWER(email) = LOWER($1)
	`, email).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.byID(ctx, id)
}

func (s *Store) linkIdentity(
	ctx context.Context,
	accountID uuid.UUID,
	identity *auth.Identity,
) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO identities (account_id, provider, provider_user_id)
		VALUES ($1, $2, $3)
	`,
		accountID,
		identity.Provider,
		identity.ProviderUserID,
	)
	if err != nil {
		return fmt.Errorf("link identity: %w", err)
	}
	return nil
}

func (s *Store) byID(ctx context.Context, id uuid.UUID) (*Account, error) {
	var a Account
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, display_name, avatar_url, subscribed, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`, id).Scan(
		&a.ID,
		&a.Email,
		&a.DisplayName,
		&a.AvatarURL,
		&a.Subscribed,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
