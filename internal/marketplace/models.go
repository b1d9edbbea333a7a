// Package marketplace defines the upstream-owned entities the gateway
// mirrors transiently: products, reviews, coupons, payments. Nothing here
// is persisted locally; the upstream API is the source of truth.
package marketplace

import "time"

// Product statuses as reported by the upstream review queue.
const (
	StatusPending  = "Pending"
	StatusAccepted = "Accepted"
	StatusRejected = "Rejected"
)

type Product struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Image        string    `json:"image"`
	Description  string    `json:"description"`
	Tags         []string  `json:"tags"`
	ExternalLink string    `json:"externalLink"`
	OwnerEmail   string    `json:"ownerEmail"`
	OwnerName    string    `json:"ownerName"`
	Upvotes      int       `json:"upvotes"`
	Voters       []string  `json:"voters"`
	Status       string    `json:"status"`
	IsFeatured   bool      `json:"isFeatured"`
	ReportCount  int       `json:"reportCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// HasVoted reports whether email already appears among the voters.
// Order of the voters list is irrelevant.
func (p Product) HasVoted(email string) bool {
	for _, v := range p.Voters {
		if v == email {
			return true
		}
	}
	return false
}

type Review struct {
	ID            string    `json:"_id"`
	ProductID     string    `json:"productId"`
	ReviewerName  string    `json:"reviewerName"`
	ReviewerImage string    `json:"reviewerImage"`
	Description   string    `json:"description"`
	Rating        int       `json:"rating"`
	Date          time.Time `json:"date"`
}

type Coupon struct {
	ID              string    `json:"_id"`
	Code            string    `json:"code"`
	DiscountPercent int       `json:"discountPercent"`
	Description     string    `json:"description"`
	ExpiryDate      time.Time `json:"expiryDate"`
}

// Valid reports whether the coupon may be displayed or applied at the
// given instant. Expired coupons must never surface.
func (c Coupon) Valid(now time.Time) bool {
	return c.ExpiryDate.After(now)
}

// ValidCoupons filters out expired coupons, preserving order.
func ValidCoupons(coupons []Coupon, now time.Time) []Coupon {
	out := make([]Coupon, 0, len(coupons))
	for _, c := range coupons {
		if c.Valid(now) {
			out = append(out, c)
		}
	}
	return out
}

type Payment struct {
	ID            string    `json:"_id"`
	Email         string    `json:"email"`
	Amount        int64     `json:"amount"` // cents
	TransactionID string    `json:"transactionId"`
	CouponCode    string    `json:"couponCode,omitempty"`
	Date          time.Time `json:"date"`
}

// User is the upstream's view of a registered user, as rendered on the
// admin manage-users screen.
type User struct {
	ID           string `json:"_id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PhotoURL     string `json:"photoURL"`
	Role         string `json:"role"`
	IsSubscribed bool   `json:"isSubscribed"`
}

// Statistics is the admin dashboard aggregate.
type Statistics struct {
	TotalProducts    int `json:"totalProducts"`
	AcceptedProducts int `json:"acceptedProducts"`
	PendingProducts  int `json:"pendingProducts"`
	TotalReviews     int `json:"totalReviews"`
	TotalUsers       int `json:"totalUsers"`
}
