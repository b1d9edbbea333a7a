package handler

import (
	"net/http"
	"time"

	"launchbay-gateway/internal/gate"
	"launchbay-gateway/internal/marketplace"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListReviews(c *gin.Context) {
	reviews, err := h.market.Reviews(c.Request.Context(), requestContext(c), c.Param("id"))
	if err != nil {
		writeUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// AddReview validates and forwards a review. Reviewer name and image come
// from the session identity, not the request body.
func (h *Handler) AddReview(c *gin.Context) {
	var input marketplace.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ident := gate.IdentityFromContext(c)

	review := marketplace.Review{
		ProductID:     c.Param("id"),
		ReviewerName:  ident.DisplayName,
		ReviewerImage: ident.AvatarURL,
		Description:   input.Description,
		Rating:        input.Rating,
		Date:          time.Now(),
	}
	if review.ReviewerName == "" {
		review.ReviewerName = "Anonymous"
	}

	if err := h.market.CreateReview(c.Request.Context(), requestContext(c), review); err != nil {
		writeUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "review submitted"})
}
