package httputil

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gameofy/backend/internal/config"
)

const AuthCookieName = "auth_token"

func SetAuthCookie(w http.ResponseWriter, token string, maxAgeSeconds int) {
	isProduction := config.GetEnv("ENVIRONMENT", "development") == "production"

	cookie := &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAgeSeconds,
		HttpOnly: true,
	}

	// SameSite=None requires Secure, so fall back to Lax for local development
	if isProduction {
		cookie.SameSite = http.SameSiteNoneMode
		cookie.Secure = true
	} else {
		cookie.SameSite = http.SameSiteLaxMode
	}

	http.SetCookie(w, cookie)
}

func ClearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// GetTokenFromCookie extracts the JWT from the auth cookie.
func GetTokenFromCookie(r *http.Request) (string, error) {
	cookie, err := r.Cookie(AuthCookieName)
	if err != nil || cookie.Value == "" {
		return "", errors.New("auth cookie not found")
	}
	return cookie.Value, nil
}

// GetTokenFromRequest reads the JWT from the cookie, falling back to the
// Authorization header for clients that cannot send cookies.
func GetTokenFromRequest(r *http.Request) (string, error) {
	if token, err := GetTokenFromCookie(r); err == nil {
		return token, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
			return after, nil
		}
		return authHeader, nil
	}

	return "", errors.New("no auth token found in cookie or header")
}
