package handler

import (
	"net/http"
	"strings"
	"time"

	"launchbay-gateway/internal/marketplace"

	"github.com/gin-gonic/gin"
)

// ValidCoupons serves the public coupon slider. Expired coupons are
// filtered out here and never reach a user-facing surface.
func (h *Handler) ValidCoupons(c *gin.Context) {
	coupons, err := h.market.Coupons(c.Request.Context(), requestContext(c))
	if err != nil {
		writeUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, marketplace.ValidCoupons(coupons, time.Now()))
}

// ApplyCoupon resolves a code to its discount for checkout. Unknown and
// expired codes are indistinguishable to the caller.
func (h *Handler) ApplyCoupon(c *gin.Context) {
	code := strings.ToLower(strings.TrimSpace(c.Query("code")))
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coupon code required"})
		return
	}

	coupons, err := h.market.Coupons(c.Request.Context(), requestContext(c))
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	for _, coupon := range marketplace.ValidCoupons(coupons, time.Now()) {
		if strings.ToLower(coupon.Code) == code {
			c.JSON(http.StatusOK, gin.H{
				"code":            coupon.Code,
				"discountPercent": coupon.DiscountPercent,
			})
			return
		}
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired coupon"})
}

// AdminCoupons lists every coupon, expired ones flagged, so admins can
// clean them up. This is a management view, not an offer surface.
func (h *Handler) AdminCoupons(c *gin.Context) {
	coupons, err := h.market.Coupons(c.Request.Context(), requestContext(c))
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	now := time.Now()
	out := make([]gin.H, 0, len(coupons))
	for _, coupon := range coupons {
		out = append(out, gin.H{
			"coupon":  coupon,
			"expired": !coupon.Valid(now),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) AddCoupon(c *gin.Context) {
	var input marketplace.CouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expiry, err := time.Parse("2006-01-02", input.ExpiryDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expiry date"})
		return
	}
	if !expiry.After(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expiry must be in the future"})
		return
	}

	coupon := marketplace.Coupon{
		Code:            strings.ToLower(input.Code),
		DiscountPercent: input.DiscountPercent,
		Description:     input.Description,
		ExpiryDate:      expiry,
	}

	if err := h.market.CreateCoupon(c.Request.Context(), requestContext(c), coupon); err != nil {
		writeUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "coupon added"})
}

func (h *Handler) DeleteCoupon(c *gin.Context) {
	if err := h.market.DeleteCoupon(c.Request.Context(), requestContext(c), c.Param("id")); err != nil {
		writeUpstreamError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) CouponAnalytics(c *gin.Context) {
	usage, err := h.market.CouponAnalytics(c.Request.Context(), requestContext(c))
	if err != nil {
		writeUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, usage)
}
