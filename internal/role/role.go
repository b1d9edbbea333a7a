package role

// Role is the backend-assigned privilege tier. It is deliberately the only
// place role strings are interpreted; screens and middleware use the
// helpers below instead of comparing strings themselves.
type Role string

const (
	User       Role = "user"
	Membership Role = "membership"
	Admin      Role = "admin"
)

// hierarchy orders roles by privilege (higher = more).
var hierarchy = map[Role]int{
	User:       1,
	Membership: 2,
	Admin:      3,
}

// Parse maps a backend role string onto a Role. Anything unrecognized
// (including the legacy isAdmin-era payloads) parses to User: unknown
// input must never grant privilege.
func Parse(s string) Role {
	switch Role(s) {
	case Admin:
		return Admin
	case Membership:
		return Membership
	default:
		return User
	}
}

// IsAdmin reports whether the role is the admin tier.
func (r Role) IsAdmin() bool {
	return r == Admin
}

// CanModerate reports whether the role may act on the membership surface
// (review queue, reported products). Admin is a superset of membership.
func (r Role) CanModerate() bool {
	return hierarchy[r] >= hierarchy[Membership]
}

// AtLeast reports whether the role carries at least the given tier.
func (r Role) AtLeast(min Role) bool {
	return hierarchy[r] >= hierarchy[min]
}
