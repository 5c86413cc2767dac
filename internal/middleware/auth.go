package middleware

import (
	"net/http"
	"strings"

	"github.com/templui/goalmaster/internal/ctxkeys"
	"github.com/templui/goalmaster/internal/handler"
	"github.com/templui/goalmaster/internal/service"
)

// RequireAuth resolves the bearer token to a user and puts it in the context.
// Missing, invalid or expired tokens get a 401.
func RequireAuth(authService *service.AuthService) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w, r, service.ErrUnauthenticated)
				return
			}

			user, err := authService.ResolveUser(r.Context(), token)
			if err != nil {
				unauthorized(w, r, err)
				return
			}

			next(w, r.WithContext(ctxkeys.WithUser(r.Context(), user)))
		}
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	handler.WriteError(w, r, err)
}
