package role

import (
	"context"
)

// Resolver determines which role the upstream marketplace has assigned to
// an email. It is the ONLY place where role lookups happen; everything
// else reads the cache.
type Resolver interface {
	ResolveRole(
		ctx context.Context,
		token string,
		email string,
	) (Role, error)
}
