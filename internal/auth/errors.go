package auth

import "errors"

var (
	// ErrInvalidCredentials covers bad email/password pairs. Callers must
	// not learn whether the account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrProviderCancelled is returned when a federated sign-in flow is
	// abandoned or rejected at the provider.
	ErrProviderCancelled = errors.New("provider cancelled sign-in")

	// ErrNetwork covers sign-in failures where the provider or upstream
	// could not be reached at all.
	ErrNetwork = errors.New("network failure during sign-in")
)
