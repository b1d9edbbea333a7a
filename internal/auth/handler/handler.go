package handler

import (
	"net/http"
	"time"

	"launchbay-gateway/internal/auth"
	"launchbay-gateway/internal/auth/accounts"
	"launchbay-gateway/internal/auth/provider"
	"launchbay-gateway/internal/logger"
	"launchbay-gateway/internal/role"
	"launchbay-gateway/internal/session"

	"github.com/gin-gonic/gin"
)

// Handler owns every sign-in and sign-out path. Each successful path ends
// the same way: a persisted session, a cookie, and an identity-change
// notification through the session manager (which also invalidates the
// role cache for the previous identity).
type Handler struct {
	providers    *provider.Registry
	sessionStore session.Store
	accounts     *accounts.Store
	manager      *session.Manager
	roles        *role.Cache
	sessionTTL   time.Duration
}

func NewHandler(
	registry *provider.Registry,
	sessionStore session.Store,
	accountStore *accounts.Store,
	manager *session.Manager,
	roles *role.Cache,
	sessionTTL time.Duration,
) *Handler {
	return &Handler{
		providers:    registry,
		sessionStore: sessionStore,
		accounts:     accountStore,
		manager:      manager,
		roles:        roles,
		sessionTTL:   sessionTTL,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, loginLimit gin.HandlerFunc) {
	r.POST("/auth/register", loginLimit, h.Register)
	r.POST("/auth/login", loginLimit, h.Login)
	r.POST("/auth/logout", h.Logout)
	r.GET("/oauth/login/:provider", h.oauthLogin)
	r.GET("/oauth/callback/:provider", h.oauthCallback)
}

// establishSession is the single tail shared by password and federated
// sign-in. The identity and the resolving flag are published together via
// the manager, after the session is durable.
func (h *Handler) establishSession(c *gin.Context, identity auth.Identity, accountID string) error {

	sessionID, err := session.GenerateID()
	if err != nil {
		return err
	}

	now := time.Now()
	expiresAt := now.Add(h.sessionTTL)

	sess := session.Session{
		SessionID:   sessionID,
		AccountID:   accountID,
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
		AvatarURL:   identity.AvatarURL,
		Token:       identity.IDToken,
		CreatedAt:   now,
		ExpiresAt:   expiresAt,
	}

	if err := h.sessionStore.Create(c.Request.Context(), sess); err != nil {
		return err
	}

	session.SetCookie(c.Writer, sessionID, expiresAt)

	h.roles.Invalidate()
	h.manager.Apply(identity)

	logger.Info("session established", map[string]any{
		"account_id": accountID,
		"provider":   identity.Provider,
	})

	return nil
}

// Logout deletes the session, clears the cookie, and publishes the
// anonymous identity. Calling it without a session (or twice) is a no-op
// with the same 204 answer.
func (h *Handler) Logout(c *gin.Context) {

	cookie, err := c.Request.Cookie(session.CookieName)
	if err == nil && cookie.Value != "" {
		// best-effort: an already-gone session is still a signed-out user
		_ = h.sessionStore.Delete(c.Request.Context(), cookie.Value)
	}

	session.ClearCookie(c.Writer)

	h.roles.Invalidate()
	h.manager.Clear()

	c.Status(http.StatusNoContent)
}
