package marketplace

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ProductInput is the payload accepted from the add/update product forms
// before it is forwarded upstream.
type ProductInput struct {
	Name         string   `json:"name"`
	Image        string   `json:"image"`
	Description  string   `json:"description"`
	Tags         []string `json:"tags"`
	ExternalLink string   `json:"externalLink"`
}

func (p ProductInput) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(2, 120)),
		validation.Field(&p.Description, validation.Required, validation.Length(10, 4000)),
		validation.Field(&p.Image, validation.Required, is.URL),
		validation.Field(&p.ExternalLink, is.URL),
		validation.Field(&p.Tags, validation.Length(0, 10)),
	)
}

// ReviewInput is the payload accepted from the review form.
type ReviewInput struct {
	Description string `json:"description"`
	Rating      int    `json:"rating"`
}

func (r ReviewInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Description, validation.Required, validation.Length(3, 2000)),
		validation.Field(&r.Rating, validation.Required, validation.Min(1), validation.Max(5)),
	)
}

// CouponInput is the payload accepted from the admin coupon form.
type CouponInput struct {
	Code            string `json:"code"`
	DiscountPercent int    `json:"discountPercent"`
	Description     string `json:"description"`
	ExpiryDate      string `json:"expiryDate"` // YYYY-MM-DD
}

func (c CouponInput) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Code, validation.Required, validation.Length(2, 40), is.Alphanumeric),
		validation.Field(&c.DiscountPercent, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&c.ExpiryDate, validation.Required, validation.Date("2006-01-02")),
	)
}
