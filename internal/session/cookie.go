package session

import (
	"net/http"
	"time"
)

// CookieName carries the __Host- prefix, which binds the cookie to this
// host with Secure and Path=/ enforced by the browser. The attributes
// below are therefore fixed, not configurable: a caller that could weaken
// them would break the prefix contract.
const CookieName = "__Host-session"

// SetCookie issues the session cookie. Lax is enough: the gateway's state
// changes all ride POST/PATCH/DELETE, which Lax withholds cross-site.
func SetCookie(w http.ResponseWriter, sessionID string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sessionID,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie. The attributes must match
// SetCookie's or the browser treats it as a different cookie.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
