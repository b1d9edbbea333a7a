package handler

import (
	"net/http"

	"launchbay-gateway/internal/auth"
	"launchbay-gateway/internal/logger"

	"github.com/gin-gonic/gin"
)

func (h *Handler) oauthLogin(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "unknown oauth provider",
		})
		return
	}

	state := generateState(c)
	_, codeChallenge := generatePKCE(c)

	authURL := p.AuthCodeURL(state, codeChallenge)
	c.Redirect(http.StatusFound, authURL)
}

func (h *Handler) oauthCallback(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "unknown oauth provider",
		})
		return
	}

	if !validateState(c) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "invalid state",
		})
		return
	}

	// The provider can come back with an error instead of a code, most
	// commonly when the user backs out of the consent screen. That is a
	// cancelled sign-in, not a failure worth a scary page: back to login.
	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("oidc callback returned error", map[string]any{
			"provider": providerName,
			"error":    errParam,
			"cause":    auth.ErrProviderCancelled.Error(),
		})
		c.Redirect(http.StatusFound, "/login")
		return
	}

	code := c.Query("code")
	if code == "" {
		logger.Error("oidc callback missing code and error", nil)
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	codeVerifier := getPKCEVerifier(c)
	if codeVerifier == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "missing pkce verifier",
		})
		return
	}

	identity, err := p.ExchangeCode(
		c.Request.Context(),
		code,
		codeVerifier,
	)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "authentication failed",
		})
		return
	}

	account, err := h.accounts.ResolveFederated(c.Request.Context(), identity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to resolve account",
		})
		return
	}

	// Provider claims win over whatever the account row held; keep the
	// row in step so the profile screen agrees with the session.
	if identity.DisplayName != account.DisplayName || identity.AvatarURL != account.AvatarURL {
		if err := h.accounts.UpdateProfile(
			c.Request.Context(),
			account.Email,
			identity.DisplayName,
			identity.AvatarURL,
		); err != nil {
			logger.Warn("profile sync failed", map[string]any{
				"error": err.Error(),
			})
		}
	}

	if err := h.establishSession(c, *identity, account.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to persist session",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "authenticated",
	})
}
