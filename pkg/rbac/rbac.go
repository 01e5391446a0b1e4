// Package rbac provides role-based access control middleware.
package rbac

import (
	"net/http"

	"github.com/shashiranjanraj/storerating/pkg/middleware"
	"github.com/shashiranjanraj/storerating/pkg/response"
)

// Roles a user account can hold.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
	RoleOwner = "owner"
)

// HasRole allows the request through only when the authenticated user holds
// one of roles. middleware.Authenticate must run first; without claims the
// request is treated as unauthenticated.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r)
			if !ok {
				response.Unauthorized(w, "Access denied. No token provided.")
				return
			}
			if !allowed[role] {
				response.Forbidden(w, "Access denied. Insufficient permissions.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
