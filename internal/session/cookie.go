package session

import (
	"net/http"
	"time"
)

const (
	CookieName      = "markpad_session"
	StateCookieName = "markpad_oauth_state"
)

// CookieOptions defines how session cookies are issued.
type CookieOptions struct {
	Secure bool
}

func SetCookie(w http.ResponseWriter, token string, expiresAt time.Time, o CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearCookie(w http.ResponseWriter, o CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SetStateCookie keeps the OAuth state for the round trip to the provider.
func SetStateCookie(w http.ResponseWriter, state string, o CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     StateCookieName,
		Value:    state,
		Path:     "/auth",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearStateCookie(w http.ResponseWriter, o CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     StateCookieName,
		Value:    "",
		Path:     "/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
