package client

import (
	"context"

	"launchbay-gateway/internal/marketplace"
)

// CreatePaymentIntent asks the upstream (which owns the card-processor
// keys) for a client secret. Amount is in cents after any coupon discount.
func (c *Client) CreatePaymentIntent(
	ctx context.Context,
	rc RequestContext,
	amountCents int64,
) (clientSecret string, err error) {

	body := map[string]int64{"amount": amountCents}

	var out struct {
		ClientSecret string `json:"clientSecret"`
	}
	if err := c.post(ctx, rc, "/create-payment-intent", body, &out); err != nil {
		return "", err
	}
	return out.ClientSecret, nil
}

// SavePayment records a confirmed payment upstream.
func (c *Client) SavePayment(
	ctx context.Context,
	rc RequestContext,
	payment marketplace.Payment,
) error {
	return c.post(ctx, rc, "/save-payment", payment, nil)
}

func (c *Client) PaymentHistory(
	ctx context.Context,
	rc RequestContext,
	email string,
) ([]marketplace.Payment, error) {

	var payments []marketplace.Payment
	if err := c.get(ctx, rc, "/payment-history/"+email, nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// Statistics returns the admin dashboard aggregates.
func (c *Client) Statistics(
	ctx context.Context,
	rc RequestContext,
) (*marketplace.Statistics, error) {

	var stats marketplace.Statistics
	if err := c.get(ctx, rc, "/admin/statistics", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
