package auth

import (
	"net/http"

	"commerce-api/internal/http/response"
	"commerce-api/internal/logger"
)

// Authenticate verifies the bearer token when one is sent and stores the
// caller in the request context. Requests without an Authorization header
// pass through anonymously; a present but unusable token is rejected with 401.
func Authenticate(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}

			tokenStr := GetBearerToken(r)
			if tokenStr == "" {
				logger.Debugf("Authenticate: malformed authorization header")
				response.Error(w, r, http.StatusUnauthorized, "unauthorized")
				return
			}

			p, err := v.Verify(r.Context(), tokenStr)
			if err != nil {
				logger.Debugf("Authenticate: %v", err)
				response.Error(w, r, http.StatusUnauthorized, "unauthorized")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if PrincipalFrom(r.Context()) == nil {
			logger.Debugf("RequireAuth: no bearer token provided")
			response.Error(w, r, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}

// RequireAdmin is RequireAuth plus an ADMIN role check (403 otherwise).
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		if !PrincipalFrom(r.Context()).IsAdmin() {
			logger.Debugf("RequireAdmin: user lacks admin role")
			response.Error(w, r, http.StatusForbidden, "forbidden - admin role required")
			return
		}
		next(w, r)
	})
}
