// Package entitlement holds the pure access-decision functions. No I/O,
// no framework types: everything here is testable with plain values, and
// every screen and middleware consults these instead of re-deriving role
// checks locally.
package entitlement

import (
	"launchbay-gateway/internal/auth"
	"launchbay-gateway/internal/marketplace"
	"launchbay-gateway/internal/role"
)

// Requirement is the protection level a route subtree declares.
type Requirement int

const (
	// RequireNone: public route, always accessible.
	RequireNone Requirement = iota
	// RequireAuthenticated: any signed-in identity.
	RequireAuthenticated
	// RequireMembership: membership tier or above (admins may act
	// wherever membership can).
	RequireMembership
	// RequireAdmin: admin tier only.
	RequireAdmin
)

// CanAccessRoute decides whether an identity with the given role may view
// a route with the given requirement.
func CanAccessRoute(identity auth.Identity, r role.Role, req Requirement) bool {
	switch req {
	case RequireNone:
		return true
	case RequireAuthenticated:
		return identity.Present()
	case RequireMembership:
		return identity.Present() && r.CanModerate()
	case RequireAdmin:
		return identity.Present() && r.IsAdmin()
	default:
		return false
	}
}

// CanVote decides whether the identity may upvote the product. This is a
// UX check only: the upstream performs the authoritative rejection, and
// its answer wins whenever the two disagree.
func CanVote(identity auth.Identity, product marketplace.Product) bool {
	if !identity.Present() {
		return false
	}
	if identity.Email == product.OwnerEmail {
		return false // no self-voting
	}
	if product.HasVoted(identity.Email) {
		return false // no double-voting
	}
	return true
}

// CanReport decides whether the identity may report a product. Reporting
// one's own product is not restricted at this layer.
func CanReport(identity auth.Identity) bool {
	return identity.Present()
}
