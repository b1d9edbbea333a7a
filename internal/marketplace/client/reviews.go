package client

import (
	"context"

	"launchbay-gateway/internal/marketplace"
)

func (c *Client) Reviews(
	ctx context.Context,
	rc RequestContext,
	productID string,
) ([]marketplace.Review, error) {

	var reviews []marketplace.Review
	if err := c.get(ctx, rc, "/reviews/"+productID, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *Client) CreateReview(
	ctx context.Context,
	rc RequestContext,
	review marketplace.Review,
) error {
	return c.post(ctx, rc, "/reviews", review, nil)
}
