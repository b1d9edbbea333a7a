package auth

// Identity represents the currently authenticated user as seen by the
// gateway. It contains facts only, no decisions: entitlement logic lives
// in the entitlement package.
type Identity struct {
	Email       string // unique, required; the key every lookup uses
	DisplayName string
	AvatarURL   string
	Provider    string // "password", "google", ...
	// ProviderUserID is the provider-scoped unique identifier (OIDC sub).
	// Empty for password accounts.
	ProviderUserID string
	IDToken        string // opaque bearer token attached to upstream calls
}

// Present reports whether this identity is authenticated.
// A zero Identity means anonymous.
func (i Identity) Present() bool {
	return i.Email != ""
}
