package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/storerating/pkg/auth"
	"github.com/shashiranjanraj/storerating/pkg/logger"
	"github.com/shashiranjanraj/storerating/pkg/metrics"
	"github.com/shashiranjanraj/storerating/pkg/response"
)

// RevocationChecker reports whether a token id has been logged out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AccountChecker reports whether the account a token was issued to still
// exists.
type AccountChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// Authenticate verifies the bearer token and stores its claims in the
// request context. Any failure ends the request with 401 before the handler
// runs. rev and accounts may be nil to skip those checks.
func Authenticate(rev RevocationChecker, accounts AccountChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				metrics.AuthFailures.WithLabelValues("missing_token").Inc()
				response.Unauthorized(w, "Access denied. No token provided.")
				return
			}

			claims, err := auth.ValidateToken(token)
			if err != nil {
				metrics.AuthFailures.WithLabelValues("invalid_token").Inc()
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			if rev != nil {
				revoked, err := rev.IsRevoked(r.Context(), claims.ID)
				if err != nil {
					logger.WithCtx(r.Context()).Error("revocation lookup failed", "error", err)
					response.Error(w, http.StatusInternalServerError, "Internal server error")
					return
				}
				if revoked {
					metrics.AuthFailures.WithLabelValues("revoked").Inc()
					response.Unauthorized(w, "Token has been revoked")
					return
				}
			}

			if accounts != nil {
				exists, err := accounts.Exists(r.Context(), claims.UserID)
				if err != nil {
					logger.WithCtx(r.Context()).Error("account lookup failed", "error", err)
					response.Error(w, http.StatusInternalServerError, "Internal server error")
					return
				}
				if !exists {
					metrics.AuthFailures.WithLabelValues("unknown_account").Inc()
					response.Unauthorized(w, "Account no longer exists")
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// UserIDFromCtx returns the authenticated user's id.
func UserIDFromCtx(r *http.Request) (uint, bool) {
	c, ok := auth.FromContext(r.Context())
	if !ok {
		return 0, false
	}
	return c.UserID, true
}

// RoleFromCtx returns the authenticated user's role.
func RoleFromCtx(r *http.Request) (string, bool) {
	c, ok := auth.FromContext(r.Context())
	if !ok {
		return "", false
	}
	return c.Role, true
}
