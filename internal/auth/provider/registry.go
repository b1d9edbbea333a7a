package provider

import "fmt"

// Registry maps the :provider URL segment of /oauth/login and
// /oauth/callback onto a configured provider. Google is the only provider
// the gateway configures today; the registry keeps the seam open without
// the handlers caring.
type Registry struct {
	providers map[string]OAuthProvider
}

func NewRegistry(list ...OAuthProvider) *Registry {
	m := make(map[string]OAuthProvider, len(list))
	for _, p := range list {
		m[p.Name()] = p
	}
	return &Registry{providers: m}
}

// Get looks a provider up by name. Unknown names are a caller error (a
// mistyped URL), not a configuration failure.
func (r *Registry) Get(name string) (OAuthProvider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("no such sign-in provider: %q", name)
	}
	return p, nil
}
