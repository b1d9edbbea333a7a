// Package handler implements the gateway's marketplace surface. Every
// handler proxies to the upstream API with the caller's bearer token and
// applies the entitlement guard before mutations — as instant feedback
// only, the upstream answer always wins.
package handler

import (
	"errors"
	"net/http"

	"launchbay-gateway/internal/auth/accounts"
	"launchbay-gateway/internal/marketplace/client"
	"launchbay-gateway/internal/role"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	market   *client.Client
	accounts *accounts.Store
	roles    *role.Cache
}

func NewHandler(
	market *client.Client,
	accountStore *accounts.Store,
	roles *role.Cache,
) *Handler {
	return &Handler{
		market:   market,
		accounts: accountStore,
		roles:    roles,
	}
}

// writeUpstreamError translates a marketplace client error into the
// response the browser shows as a transient notification.
func writeUpstreamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, client.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "already done or not allowed"})
	case errors.Is(err, client.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, client.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authorized upstream"})
	case errors.Is(err, client.ErrNetwork):
		c.JSON(http.StatusBadGateway, gin.H{"error": "marketplace unavailable, try again"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "marketplace request failed"})
	}
}
