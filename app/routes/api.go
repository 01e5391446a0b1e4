package routes

import (
	"github.com/shashiranjanraj/storerating/app/controllers"
	"github.com/shashiranjanraj/storerating/pkg/ctx"
	"github.com/shashiranjanraj/storerating/pkg/rbac"
	"github.com/shashiranjanraj/storerating/pkg/router"
)

// Controllers is everything RegisterAPI mounts.
type Controllers struct {
	Auth   *controllers.AuthController
	Admin  *controllers.AdminController
	Owner  *controllers.OwnerController
	User   *controllers.UserController
	Health *controllers.HealthController
}

// RegisterAPI mounts the public API. authn verifies the bearer token and
// puts its claims on the request context.
func RegisterAPI(r *router.Router, c Controllers, authn router.Middleware) {
	r.Get("/", "index", ctx.Wrap(c.Health.Index))

	api := r.Group("/api")
	api.Get("/health", "health", ctx.Wrap(c.Health.Health))

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", "auth.signup", ctx.Wrap(c.Auth.Signup))
	authGroup.Post("/login", "auth.login", ctx.Wrap(c.Auth.Login))

	session := authGroup.Group("", authn)
	session.Post("/logout", "auth.logout", ctx.Wrap(c.Auth.Logout))
	session.Put("/update-password", "auth.password", ctx.Wrap(c.Auth.UpdatePassword))
	session.Get("/me", "auth.me", ctx.Wrap(c.Auth.Me))

	admin := api.Group("/admin", authn, rbac.HasRole(rbac.RoleAdmin))
	admin.Get("/dashboard", "admin.dashboard", ctx.Wrap(c.Admin.Dashboard))
	admin.Get("/users", "admin.users.index", ctx.Wrap(c.Admin.Users))
	admin.Get("/users/{id}", "admin.users.show", ctx.Wrap(c.Admin.ShowUser))
	admin.Delete("/users/{id}", "admin.users.destroy", ctx.Wrap(c.Admin.DeleteUser))
	admin.Get("/stores", "admin.stores.index", ctx.Wrap(c.Admin.Stores))

	owner := api.Group("/owner", authn, rbac.HasRole(rbac.RoleOwner))
	owner.Get("/dashboard", "owner.dashboard", ctx.Wrap(c.Owner.Dashboard))
	owner.Post("/stores", "owner.stores.store", ctx.Wrap(c.Owner.CreateStore))
	owner.Get("/stores/{id}", "owner.stores.show", ctx.Wrap(c.Owner.ShowStore))
	owner.Get("/stores/{id}/ratings", "owner.stores.ratings", ctx.Wrap(c.Owner.StoreRatings))

	user := api.Group("/user", authn, rbac.HasRole(rbac.RoleUser))
	user.Get("/stores", "user.stores.index", ctx.Wrap(c.User.Stores))
	user.Get("/ratings", "user.ratings.index", ctx.Wrap(c.User.Ratings))
	user.Post("/ratings", "user.ratings.store", ctx.Wrap(c.User.Rate))
	user.Put("/ratings/{storeId}", "user.ratings.update", ctx.Wrap(c.User.UpdateRating))
}
