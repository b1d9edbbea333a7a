package entitlement_test

import (
	"testing"

	"launchbay-gateway/internal/auth"
	"launchbay-gateway/internal/entitlement"
	"launchbay-gateway/internal/marketplace"
	"launchbay-gateway/internal/role"

	"github.com/stretchr/testify/assert"
)

func identity(email string) auth.Identity {
	return auth.Identity{Email: email}
}

func TestCanAccessRoute_None(t *testing.T) {
	assert.True(t, entitlement.CanAccessRoute(auth.Identity{}, role.User, entitlement.RequireNone))
	assert.True(t, entitlement.CanAccessRoute(identity("alice@example.com"), role.Admin, entitlement.RequireNone))
}

func TestCanAccessRoute_Authenticated(t *testing.T) {
	// anonymous is always denied, whatever role string might be around
	for _, r := range []role.Role{role.User, role.Membership, role.Admin} {
		assert.False(t, entitlement.CanAccessRoute(auth.Identity{}, r, entitlement.RequireAuthenticated))
	}

	assert.True(t, entitlement.CanAccessRoute(identity("alice@example.com"), role.User, entitlement.RequireAuthenticated))
}

func TestCanAccessRoute_Membership(t *testing.T) {
	alice := identity("alice@example.com")

	// admin is a superset of membership
	assert.True(t, entitlement.CanAccessRoute(alice, role.Membership, entitlement.RequireMembership))
	assert.True(t, entitlement.CanAccessRoute(alice, role.Admin, entitlement.RequireMembership))
	assert.False(t, entitlement.CanAccessRoute(alice, role.User, entitlement.RequireMembership))

	assert.False(t, entitlement.CanAccessRoute(auth.Identity{}, role.Admin, entitlement.RequireMembership))
}

func TestCanAccessRoute_Admin(t *testing.T) {
	alice := identity("alice@example.com")

	assert.True(t, entitlement.CanAccessRoute(alice, role.Admin, entitlement.RequireAdmin))
	assert.False(t, entitlement.CanAccessRoute(alice, role.Membership, entitlement.RequireAdmin))
	assert.False(t, entitlement.CanAccessRoute(alice, role.User, entitlement.RequireAdmin))
	assert.False(t, entitlement.CanAccessRoute(auth.Identity{}, role.Admin, entitlement.RequireAdmin))
}

func TestCanVote_Anonymous(t *testing.T) {
	p := marketplace.Product{ID: "p1", OwnerEmail: "bob@example.com"}
	assert.False(t, entitlement.CanVote(auth.Identity{}, p))
}

func TestCanVote_OwnerNeverVotes(t *testing.T) {
	bob := identity("bob@example.com")

	// owner is excluded regardless of voters contents
	for _, voters := range [][]string{
		nil,
		{},
		{"alice@example.com"},
		{"bob@example.com"},
	} {
		p := marketplace.Product{ID: "p1", OwnerEmail: "bob@example.com", Voters: voters}
		assert.False(t, entitlement.CanVote(bob, p), "voters=%v", voters)
	}
}

func TestCanVote_DoubleVoteBlocked(t *testing.T) {
	alice := identity("alice@example.com")

	// result is invariant under voter ordering
	orderings := [][]string{
		{"alice@example.com", "carol@example.com"},
		{"carol@example.com", "alice@example.com"},
	}
	for _, voters := range orderings {
		p := marketplace.Product{ID: "p1", OwnerEmail: "bob@example.com", Voters: voters}
		assert.False(t, entitlement.CanVote(alice, p), "voters=%v", voters)
	}
}

func TestCanVote_FreshVoterAllowed(t *testing.T) {
	alice := identity("alice@example.com")
	p := marketplace.Product{ID: "p1", OwnerEmail: "bob@example.com", Voters: []string{}}

	assert.True(t, entitlement.CanVote(alice, p))

	// after the upstream confirms the vote, the updated product blocks a second one
	p.Voters = append(p.Voters, "alice@example.com")
	assert.False(t, entitlement.CanVote(alice, p))
}

func TestCanReport(t *testing.T) {
	assert.False(t, entitlement.CanReport(auth.Identity{}))
	assert.True(t, entitlement.CanReport(identity("alice@example.com")))
}
