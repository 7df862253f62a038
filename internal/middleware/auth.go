package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// TokenCookie holds the viewer token after login.
const TokenCookie = "viewer_token"

// TokenMiddleware only lets requests through that carry token as the
// "token" query parameter, a bearer header or the TokenCookie. An empty
// token disables the check.
func TokenMiddleware(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" || r.URL.Path == "/auth/login" {
				next.ServeHTTP(w, r)
				return
			}

			if !matches(requestToken(r), token) {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestToken(r *http.Request) string {
	if t := r.URL.Query().Get("token"); t != "" {
		return t
	}
	if auth, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return auth
	}
	if cookie, err := r.Cookie(TokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func matches(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
