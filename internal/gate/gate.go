// Package gate decides whether a protected route subtree renders or
// redirects. The decision itself is a pure function over (snapshot, role,
// requirement); the gin middleware in this package feeds it and acts on
// the outcome.
package gate

import (
	"net/url"

	"launchbay-gateway/internal/entitlement"
	"launchbay-gateway/internal/role"
	"launchbay-gateway/internal/session"
)

type State int

const (
	// Resolving: identity or role is not known yet. Persists until both
	// dependencies resolve; there is no timeout.
	Resolving State = iota
	// Denied: access refused; Decision.Redirect names where to send the
	// client.
	Denied
	// Granted: render the protected subtree. The gate itself performs no
	// further checks; screens apply finer-grained entitlement checks.
	Granted
)

const (
	LoginPath     = "/login"
	ForbiddenPath = "/forbidden"
)

type Decision struct {
	State    State
	Redirect string // set only when State == Denied
}

// Decide maps the current snapshot and resolved role onto a gate state.
//
// An anonymous denial redirects to login carrying the originally-requested
// path in the "from" query parameter, so a later sign-in can return the
// user where they were headed. An authenticated-but-underprivileged denial
// redirects to the forbidden view instead.
func Decide(
	snap session.Snapshot,
	r role.Role,
	req entitlement.Requirement,
	requestedPath string,
) Decision {

	if snap.Resolving {
		return Decision{State: Resolving}
	}

	if entitlement.CanAccessRoute(snap.Identity, r, req) {
		return Decision{State: Granted}
	}

	if !snap.Identity.Present() {
		redirect := LoginPath
		if requestedPath != "" {
			redirect += "?from=" + url.QueryEscape(requestedPath)
		}
		return Decision{State: Denied, Redirect: redirect}
	}

	return Decision{State: Denied, Redirect: ForbiddenPath}
}
