package handler

import (
	"errors"
	"net/http"

	"launchbay-gateway/internal/auth/accounts"
	"launchbay-gateway/internal/gate"

	"github.com/gin-gonic/gin"
)

// Me renders the profile screen data: identity, resolved role, and the
// local subscription flag.
func (h *Handler) Me(c *gin.Context) {
	ident := gate.IdentityFromContext(c)
	r := h.roles.Resolve(c.Request.Context(), ident.IDToken, ident.Email)

	subscribed := false
	account, err := h.accounts.ByEmail(c.Request.Context(), ident.Email)
	if err == nil {
		subscribed = account.Subscribed
	} else if !errors.Is(err, accounts.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":        ident.Email,
		"displayName":  ident.DisplayName,
		"avatarUrl":    ident.AvatarURL,
		"role":         r,
		"isSubscribed": subscribed,
	})
}

// UpdateMe edits the local profile (display name, avatar).
func (h *Handler) UpdateMe(c *gin.Context) {
	var req struct {
		DisplayName string `json:"displayName" binding:"required"`
		AvatarURL   string `json:"avatarUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ident := gate.IdentityFromContext(c)
	if err := h.accounts.UpdateProfile(c.Request.Context(), ident.Email, req.DisplayName, req.AvatarURL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// ManageUsers lists all marketplace users for the admin screen.
func (h *Handler) ManageUsers(c *gin.Context) {
	users, err := h.market.Users(c.Request.Context(), requestContext(c))
	if err != nil {
		writeUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// PromoteAdmin grants the admin tier upstream. The role cache is
// invalidated so the change is visible on the next gated request.
func (h *Handler) PromoteAdmin(c *gin.Context) {
	if err := h.market.PromoteAdmin(c.Request.Context(), requestContext(c), c.Param("email")); err != nil {
		writeUpstreamError(c, err)
		return
	}
	h.roles.Invalidate()
	c.JSON(http.StatusOK, gin.H{"status": "promoted"})
}

func (h *Handler) DemoteAdmin(c *gin.Context) {
	if err := h.market.DemoteAdmin(c.Request.Context(), requestContext(c), c.Param("email")); err != nil {
		writeUpstreamError(c, err)
		return
	}
	h.roles.Invalidate()
	c.JSON(http.StatusOK, gin.H{"status": "demoted"})
}
