package client

import (
	"context"

	"launchbay-gateway/internal/marketplace"
)

// Coupons returns all coupons as stored upstream, expired ones included.
// Callers that render or apply coupons must filter through
// marketplace.ValidCoupons first.
func (c *Client) Coupons(
	ctx context.Context,
	rc RequestContext,
) ([]marketplace.Coupon, error) {

	var coupons []marketplace.Coupon
	if err := c.get(ctx, rc, "/coupons", nil, &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

func (c *Client) CreateCoupon(
	ctx context.Context,
	rc RequestContext,
	coupon marketplace.Coupon,
) error {
	return c.post(ctx, rc, "/coupons", coupon, nil)
}

func (c *Client) DeleteCoupon(
	ctx context.Context,
	rc RequestContext,
	id string,
) error {
	return c.delete(ctx, rc, "/coupons/"+id)
}

// CouponAnalytics returns per-coupon usage counts for the admin screen.
func (c *Client) CouponAnalytics(
	ctx context.Context,
	rc RequestContext,
) (map[string]int, error) {

	var usage map[string]int
	if err := c.get(ctx, rc, "/admin/coupon-analytics", nil, &usage); err != nil {
		return nil, err
	}
	return usage, nil
}
