package handler

import (
	"errors"
	"net/http"

	"launchbay-gateway/internal/entitlement"
	"launchbay-gateway/internal/gate"
	"launchbay-gateway/internal/marketplace"
	"launchbay-gateway/internal/marketplace/client"
	"launchbay-gateway/internal/metrics"

	"github.com/gin-gonic/gin"
)

func requestContext(c *gin.Context) client.RequestContext {
	return client.RequestContext{Token: gate.IdentityFromContext(c).IDToken}
}

// ListProducts serves the public browse surface, with optional tag/name
// search.
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.market.Products(c.Request.Context(), requestContext(c), client.ListOptions{
		Search: c.Query("search"),
	})
	if err != nil {
		writeUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct returns one product plus the caller's advisory vote/report
// eligibility, so the detail screen can disable buttons without another
// round trip.
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.market.Product(c.Request.Context(), requestContext(c), c.Param("id"))
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	ident := gate.IdentityFromContext(c)
	c.JSON(http.StatusOK, gin.H{
		"product":   product,
		"canVote":   entitlement.CanVote(ident, *product),
		"canReport": entitlement.CanReport(ident),
	})
}

func (h *Handler) FeaturedProducts(c *gin.Context) {
	products, err := h.market.FeaturedProducts(c.Request.Context(), requestContext(c))
	if err != nil {
		writeUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// TrendingProducts is the browse surface ordered by upvotes upstream.
func (h *Handler) TrendingProducts(c *gin.Context) {
	products, err := h.market.Products(c.Request.Context(), requestContext(c), client.ListOptions{
		Sort: "upvotes",
	})
	if err != nil {
		writeUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// MyProducts lists the signed-in user's own submissions.
func (h *Handler) MyProducts(c *gin.Context) {
	ident := gate.IdentityFromContext(c)
	products, err := h.market.Products(c.Request.Context(), requestContext(c), client.ListOptions{
		OwnerEmail: ident.Email,
	})
	if err != nil {
		writeUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// AddProduct validates the submission and forwards it. New products always
// enter the review queue as Pending.
func (h *Handler) AddProduct(c *gin.Context) {
	var input marketplace.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ident := gate.IdentityFromContext(c)

	product := marketplace.Product{
		Name:         input.Name,
		Image:        input.Image,
		Description:  input.Description,
		Tags:         input.Tags,
		ExternalLink: input.ExternalLink,
		OwnerEmail:   ident.Email,
		OwnerName:    ident.DisplayName,
		Status:       marketplace.StatusPending,
	}

	created, err := h.market.CreateProduct(c.Request.Context(), requestContext(c), product)
	if err != nil {
		writeUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateProduct forwards an edit after confirming ownership.
func (h *Handler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	var input marketplace.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.market.Product(c.Request.Context(), requestContext(c), id)
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	ident := gate.IdentityFromContext(c)
	if product.OwnerEmail != ident.Email {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your product"})
		return
	}

	if err := h.market.UpdateProduct(c.Request.Context(), requestContext(c), id, input); err != nil {
		writeUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// DeleteProduct forwards a delete; owners delete their own, admins may
// delete anything.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	product, err := h.market.Product(c.Request.Context(), requestContext(c), id)
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	ident := gate.IdentityFromContext(c)
	if product.OwnerEmail != ident.Email {
		// the route gates on authentication only, so no role has been
		// resolved yet; fetch it here for the admin override
		r := h.roles.Resolve(c.Request.Context(), ident.IDToken, ident.Email)
		if !r.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "not your product"})
			return
		}
	}

	if err := h.market.DeleteProduct(c.Request.Context(), requestContext(c), id); err != nil {
		writeUpstreamError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Upvote applies the advisory guard first for instant feedback, then
// forwards the vote. The response carries the product as the upstream now
// sees it; the caller renders that, never its own prediction.
func (h *Handler) Upvote(c *gin.Context) {
	id := c.Param("id")
	ident := gate.IdentityFromContext(c)

	product, err := h.market.Product(c.Request.Context(), requestContext(c), id)
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	if !entitlement.CanVote(ident, *product) {
		metrics.VoteConflictsTotal.WithLabelValues("client").Inc()
		c.JSON(http.StatusConflict, gin.H{"error": "already voted or own product"})
		return
	}

	updated, err := h.market.Upvote(c.Request.Context(), requestContext(c), id, ident.Email)
	if err != nil {
		if errors.Is(err, client.ErrConflict) {
			// the authoritative check disagreed with our advisory one
			metrics.VoteConflictsTotal.WithLabelValues("upstream").Inc()
		}
		writeUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Report flags a product. No self-report restriction at this layer.
func (h *Handler) Report(c *gin.Context) {
	ident := gate.IdentityFromContext(c)

	if !entitlement.CanReport(ident) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in to report"})
		return
	}

	if err := h.market.Report(c.Request.Context(), requestContext(c), c.Param("id"), ident.Email); err != nil {
		writeUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reported"})
}
