package handler

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// The two secrets of a federated sign-in flow — the CSRF state and the
// PKCE verifier — ride short-lived cookies between the redirect out and
// the callback in. Five minutes outlasts any consent screen a user is
// still going to complete.
const (
	stateCookieName = "__oauth_state"
	pkceCookieName  = "__oauth_pkce"
	flowTTL         = 5 * time.Minute
)

func randomToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

func setFlowCookie(c *gin.Context, name, value string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(flowTTL.Seconds()),
	})
}

func generateState(c *gin.Context) string {
	state := randomToken()
	setFlowCookie(c, stateCookieName, state)
	return state
}

// validateState compares the state echoed back by the provider against
// the cookie issued on the way out.
func validateState(c *gin.Context) bool {
	query := c.Query("state")
	if query == "" {
		return false
	}
	cookie, err := c.Request.Cookie(stateCookieName)
	return err == nil && cookie.Value == query
}

// generatePKCE issues a verifier/S256-challenge pair. The verifier stays
// with the browser in a cookie; only the challenge goes to the provider.
func generatePKCE(c *gin.Context) (verifier string, challenge string) {
	verifier = randomToken()
	sum := sha256.Sum256([]byte(verifier))
	challenge = base64.RawURLEncoding.EncodeToString(sum[:])

	setFlowCookie(c, pkceCookieName, verifier)
	return verifier, challenge
}

func getPKCEVerifier(c *gin.Context) string {
	cookie, err := c.Request.Cookie(pkceCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
