package handler

import (
	"net/http"
	"sort"

	"launchbay-gateway/internal/marketplace"
	"launchbay-gateway/internal/marketplace/client"

	"github.com/gin-gonic/gin"
)

// ReviewQueue lists products for the membership moderation screen,
// pending submissions first.
func (h *Handler) ReviewQueue(c *gin.Context) {
	products, err := h.market.Products(c.Request.Context(), requestContext(c), client.ListOptions{})
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	sort.SliceStable(products, func(i, j int) bool {
		return statusRank(products[i].Status) < statusRank(products[j].Status)
	})

	c.JSON(http.StatusOK, products)
}

func statusRank(status string) int {
	switch status {
	case marketplace.StatusPending:
		return 0
	case marketplace.StatusAccepted:
		return 1
	default:
		return 2
	}
}

// ApproveProduct moves a pending product to Accepted.
func (h *Handler) ApproveProduct(c *gin.Context) {
	h.setStatus(c, marketplace.StatusAccepted)
}

// RejectProduct moves a pending product to Rejected.
func (h *Handler) RejectProduct(c *gin.Context) {
	h.setStatus(c, marketplace.StatusRejected)
}

func (h *Handler) setStatus(c *gin.Context, status string) {
	if err := h.market.SetProductStatus(c.Request.Context(), requestContext(c), c.Param("id"), status); err != nil {
		writeUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// FeatureProduct marks a product featured on the landing surface.
func (h *Handler) FeatureProduct(c *gin.Context) {
	if err := h.market.SetProductFeatured(c.Request.Context(), requestContext(c), c.Param("id")); err != nil {
		writeUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "featured"})
}

// ReportedProducts serves the reported-products moderation queue.
func (h *Handler) ReportedProducts(c *gin.Context) {
	products, err := h.market.ReportedProducts(c.Request.Context(), requestContext(c))
	if err != nil {
		writeUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// RemoveReportedProduct deletes a product off the reported queue.
// Moderators act here with their own authority, not ownership.
func (h *Handler) RemoveReportedProduct(c *gin.Context) {
	if err := h.market.DeleteProduct(c.Request.Context(), requestContext(c), c.Param("id")); err != nil {
		writeUpstreamError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Statistics serves the admin dashboard aggregates.
func (h *Handler) Statistics(c *gin.Context) {
	stats, err := h.market.Statistics(c.Request.Context(), requestContext(c))
	if err != nil {
		writeUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
