package gate

import (
	"net/http"
	"time"

	"launchbay-gateway/internal/auth"
	"launchbay-gateway/internal/entitlement"
	"launchbay-gateway/internal/logger"
	"launchbay-gateway/internal/metrics"
	"launchbay-gateway/internal/role"
	"launchbay-gateway/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	identityContextKey = "gate.identity"
	roleContextKey     = "gate.role"
)

// IdentityFromContext returns the identity the gate attached, or a zero
// (anonymous) identity on unprotected routes.
func IdentityFromContext(c *gin.Context) auth.Identity {
	if v, ok := c.Get(identityContextKey); ok {
		if ident, ok := v.(auth.Identity); ok {
			return ident
		}
	}
	return auth.Identity{}
}

// RoleFromContext returns the role the gate resolved, defaulting to User.
func RoleFromContext(c *gin.Context) role.Role {
	if v, ok := c.Get(roleContextKey); ok {
		if r, ok := v.(role.Role); ok {
			return r
		}
	}
	return role.User
}

// Gate loads the session, resolves the role when the requirement calls
// for one, and acts on the Decide outcome.
type Gate struct {
	store session.Store
	roles *role.Cache
}

func New(store session.Store, roles *role.Cache) *Gate {
	return &Gate{store: store, roles: roles}
}

// identity reconstructs the identity for this request from the session
// cookie. A missing or expired session means anonymous; a session-store
// failure also degrades to anonymous (fail closed, never escalate).
func (g *Gate) identity(c *gin.Context) auth.Identity {

	cookie, err := c.Request.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		return auth.Identity{}
	}

	sess, err := g.store.Get(c.Request.Context(), cookie.Value)
	if err != nil {
		logger.Error("session load failed", map[string]any{
			"error": err.Error(),
		})
		return auth.Identity{}
	}
	if sess == nil {
		return auth.Identity{}
	}

	if time.Now().After(sess.ExpiresAt) {
		_ = g.store.Delete(c.Request.Context(), sess.SessionID)
		return auth.Identity{}
	}

	return auth.Identity{
		Email:       sess.Email,
		DisplayName: sess.DisplayName,
		AvatarURL:   sess.AvatarURL,
		IDToken:     sess.Token,
	}
}

// resolve runs the gate for one request. By the time Decide is called the
// session and (when needed) the role have both been loaded, so the
// Resolving state never escapes this function.
func (g *Gate) resolve(c *gin.Context, req entitlement.Requirement) (Decision, auth.Identity, role.Role) {

	ident := g.identity(c)

	r := role.User
	if ident.Present() && req >= entitlement.RequireMembership {
		r = g.roles.Resolve(c.Request.Context(), ident.IDToken, ident.Email)
	}

	snap := session.Snapshot{Identity: ident, Resolving: false}
	d := Decide(snap, r, req, c.Request.URL.Path)
	return d, ident, r
}

// Attach makes the identity available on public routes without gating
// them. Anonymous traffic passes through with a zero identity; screens
// use it for advisory checks like vote-button state.
func (g *Gate) Attach() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ident := g.identity(c); ident.Present() {
			c.Set(identityContextKey, ident)
		}
		c.Next()
	}
}

// Require protects a browser-facing route subtree: denials redirect.
func (g *Gate) Require(req entitlement.Requirement) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, ident, r := g.resolve(c, req)

		if d.State != Granted {
			target := "forbidden"
			if !ident.Present() {
				target = "login"
			}
			metrics.GateDenialsTotal.WithLabelValues(target).Inc()
			c.Redirect(http.StatusFound, d.Redirect)
			c.Abort()
			return
		}

		c.Set(identityContextKey, ident)
		c.Set(roleContextKey, r)
		c.Next()
	}
}

// RequireAPI protects a JSON route subtree: denials answer 401/403
// instead of redirecting.
func (g *Gate) RequireAPI(req entitlement.Requirement) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, ident, r := g.resolve(c, req)

		if d.State != Granted {
			if !ident.Present() {
				metrics.GateDenialsTotal.WithLabelValues("login").Inc()
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "authentication required",
				})
				return
			}
			metrics.GateDenialsTotal.WithLabelValues("forbidden").Inc()
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "insufficient role",
			})
			return
		}

		c.Set(identityContextKey, ident)
		c.Set(roleContextKey, r)
		c.Next()
	}
}
