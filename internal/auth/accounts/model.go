package accounts

import "time"

// Account is the gateway-owned user record. Marketplace data (products,
// votes, payments) lives upstream; only authentication facts live here.
type Account struct {
	ID          string
	Email       string
	DisplayName string
	AvatarURL   string
	Subscribed  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
