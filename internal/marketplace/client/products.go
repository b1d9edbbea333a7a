package client

import (
	"context"
	"net/url"

	"launchbay-gateway/internal/marketplace"
)

// ListOptions narrows a product listing.
type ListOptions struct {
	OwnerEmail string // only this owner's products
	Search     string // tag/name search
	Sort       string // e.g. "upvotes" for trending
}

func (c *Client) Products(
	ctx context.Context,
	rc RequestContext,
	opts ListOptions,
) ([]marketplace.Product, error) {

	query := url.Values{}
	if opts.OwnerEmail != "" {
		query.Set("ownerEmail", opts.OwnerEmail)
	}
	if opts.Search != "" {
		query.Set("search", opts.Search)
	}
	if opts.Sort != "" {
		query.Set("sort", opts.Sort)
	}

	var products []marketplace.Product
	if err := c.get(ctx, rc, "/products", query, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) Product(
	ctx context.Context,
	rc RequestContext,
	id string,
) (*marketplace.Product, error) {

	var p marketplace.Product
	if err := c.get(ctx, rc, "/products/"+id, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) FeaturedProducts(
	ctx context.Context,
	rc RequestContext,
) ([]marketplace.Product, error) {

	var products []marketplace.Product
	if err := c.get(ctx, rc, "/products/featured", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) CreateProduct(
	ctx context.Context,
	rc RequestContext,
	p marketplace.Product,
) (*marketplace.Product, error) {

	var created marketplace.Product
	if err := c.post(ctx, rc, "/products", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateProduct(
	ctx context.Context,
	rc RequestContext,
	id string,
	input marketplace.ProductInput,
) error {
	return c.patch(ctx, rc, "/products/"+id, input, nil)
}

func (c *Client) DeleteProduct(
	ctx context.Context,
	rc RequestContext,
	id string,
) error {
	return c.delete(ctx, rc, "/products/"+id)
}

// Upvote submits a vote and returns the product as the upstream now sees
// it. The caller reconciles its view from the return value only; the
// upstream is the sole judge of duplicate and self votes (ErrConflict).
func (c *Client) Upvote(
	ctx context.Context,
	rc RequestContext,
	id string,
	userEmail string,
) (*marketplace.Product, error) {

	body := map[string]string{"userEmail": userEmail}

	var updated marketplace.Product
	if err := c.patch(ctx, rc, "/products/upvote/"+id, body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Report flags a product for the moderation queue.
func (c *Client) Report(
	ctx context.Context,
	rc RequestContext,
	id string,
	userEmail string,
) error {
	body := map[string]string{"userEmail": userEmail}
	return c.patch(ctx, rc, "/products/report/"+id, body, nil)
}

// SetProductStatus moves a product through the review queue
// (Pending → Accepted/Rejected).
func (c *Client) SetProductStatus(
	ctx context.Context,
	rc RequestContext,
	id string,
	status string,
) error {
	body := map[string]string{"status": status}
	return c.patch(ctx, rc, "/products/status/"+id, body, nil)
}

// SetProductFeatured marks a product featured on the landing surface.
func (c *Client) SetProductFeatured(
	ctx context.Context,
	rc RequestContext,
	id string,
) error {
	return c.patch(ctx, rc, "/products/featured/"+id, nil, nil)
}

// ReportedProducts lists products flagged by users, for the membership
// moderation queue.
func (c *Client) ReportedProducts(
	ctx context.Context,
	rc RequestContext,
) ([]marketplace.Product, error) {

	var products []marketplace.Product
	if err := c.get(ctx, rc, "/reported", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}
