package middleware

import (
	"net/http"
	"net/url"
	"strings"
)

// AuthHandler sets object structure.
type AuthHandler struct {
	enabled   bool
	loginPath string
}

// NewAuthHandler initializes a new authentication handler, a disabled one lets every request through.
func NewAuthHandler(enabled bool, loginPath string) *AuthHandler {
	return &AuthHandler{enabled: enabled, loginPath: loginPath}
}

// AuthHandle requires a logged in administrator.
func (a *AuthHandler) AuthHandle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.enabled || SessionFromContext(r.Context()).Authenticated() {
			next.ServeHTTP(w, r)
			return
		}
		if r.Method != http.MethodGet || strings.HasPrefix(r.URL.Path, "/api/") {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		target := a.loginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
		http.Redirect(w, r, target, http.StatusSeeOther)
	})
}
