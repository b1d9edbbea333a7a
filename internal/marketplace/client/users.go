package client

import (
	"context"

	"launchbay-gateway/internal/marketplace"
	"launchbay-gateway/internal/role"
)

func (c *Client) Users(
	ctx context.Context,
	rc RequestContext,
) ([]marketplace.User, error) {

	var users []marketplace.User
	if err := c.get(ctx, rc, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UserRole fetches the role classification for an email. The canonical
// response shape is {"role": "..."}; the legacy isAdmin boolean is not
// supported.
func (c *Client) UserRole(
	ctx context.Context,
	rc RequestContext,
	email string,
) (string, error) {

	var out struct {
		Role string `json:"role"`
	}
	if err := c.get(ctx, rc, "/users/role/"+email, nil, &out); err != nil {
		return "", err
	}
	return out.Role, nil
}

func (c *Client) PromoteAdmin(
	ctx context.Context,
	rc RequestContext,
	email string,
) error {
	return c.patch(ctx, rc, "/users/admin/"+email, nil, nil)
}

func (c *Client) DemoteAdmin(
	ctx context.Context,
	rc RequestContext,
	email string,
) error {
	return c.patch(ctx, rc, "/users/remove-admin/"+email, nil, nil)
}

// Subscribe records a membership purchase upstream, which is what actually
// changes the user's role tier.
func (c *Client) Subscribe(
	ctx context.Context,
	rc RequestContext,
	email string,
) error {
	return c.patch(ctx, rc, "/subscribe/"+email, map[string]bool{"isSubscribed": true}, nil)
}

// RoleResolver adapts the client to role.Resolver.
type RoleResolver struct {
	c *Client
}

func NewRoleResolver(c *Client) *RoleResolver {
	return &RoleResolver{c: c}
}

func (r *RoleResolver) ResolveRole(
	ctx context.Context,
	token string,
	email string,
) (role.Role, error) {

	s, err := r.c.UserRole(ctx, RequestContext{Token: token}, email)
	if err != nil {
		return role.User, err
	}
	return role.Parse(s), nil
}
