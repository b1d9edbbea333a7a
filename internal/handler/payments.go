package handler

import (
	"net/http"
	"strings"
	"time"

	"launchbay-gateway/internal/gate"
	"launchbay-gateway/internal/logger"
	"launchbay-gateway/internal/marketplace"

	"github.com/gin-gonic/gin"
)

// membershipPriceCents is the undiscounted membership tier price.
const membershipPriceCents int64 = 2999

// CreateMembershipIntent prices the membership (applying a coupon if one
// is supplied and still valid) and asks the upstream for a payment intent.
// Card data never touches the gateway.
func (h *Handler) CreateMembershipIntent(c *gin.Context) {
	var req struct {
		CouponCode string `json:"couponCode"`
	}
	// body is optional; absence means full price
	_ = c.ShouldBindJSON(&req)

	amount := membershipPriceCents

	if req.CouponCode != "" {
		coupons, err := h.market.Coupons(c.Request.Context(), requestContext(c))
		if err != nil {
			writeUpstreamError(c, err)
			return
		}

		code := strings.ToLower(strings.TrimSpace(req.CouponCode))
		applied := false
		for _, coupon := range marketplace.ValidCoupons(coupons, time.Now()) {
			if strings.ToLower(coupon.Code) == code {
				amount -= amount * int64(coupon.DiscountPercent) / 100
				applied = true
				break
			}
		}
		if !applied {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired coupon"})
			return
		}
	}

	secret, err := h.market.CreatePaymentIntent(c.Request.Context(), requestContext(c), amount)
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clientSecret": secret,
		"amount":       amount,
	})
}

// ConfirmPayment records a confirmed membership payment and flips the
// subscription upstream and locally. The role cache is invalidated: a
// successful purchase may change the caller's tier.
func (h *Handler) ConfirmPayment(c *gin.Context) {
	var req struct {
		TransactionID string `json:"transactionId" binding:"required"`
		Amount        int64  `json:"amount" binding:"required"`
		CouponCode    string `json:"couponCode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ident := gate.IdentityFromContext(c)

	payment := marketplace.Payment{
		Email:         ident.Email,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
		CouponCode:    req.CouponCode,
		Date:          time.Now(),
	}

	if err := h.market.SavePayment(c.Request.Context(), requestContext(c), payment); err != nil {
		writeUpstreamError(c, err)
		return
	}

	if err := h.market.Subscribe(c.Request.Context(), requestContext(c), ident.Email); err != nil {
		writeUpstreamError(c, err)
		return
	}

	// local mirror for the profile screen; upstream stays authoritative
	if err := h.accounts.SetSubscribed(c.Request.Context(), ident.Email, true); err != nil {
		logger.Warn("subscription mirror failed", map[string]any{
			"error": err.Error(),
		})
	}

	h.roles.Invalidate()

	c.JSON(http.StatusOK, gin.H{"status": "subscribed"})
}

func (h *Handler) PaymentHistory(c *gin.Context) {
	ident := gate.IdentityFromContext(c)
	payments, err := h.market.PaymentHistory(c.Request.Context(), requestContext(c), ident.Email)
	if err != nil {
		writeUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}
