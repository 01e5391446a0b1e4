package controllers

import (
	"github.com/shashiranjanraj/storerating/app/repositories"
	"github.com/shashiranjanraj/storerating/app/services"
	"github.com/shashiranjanraj/storerating/pkg/ctx"
	"github.com/shashiranjanraj/storerating/pkg/response"
)

type AdminController struct {
	service *services.AdminService
}

func NewAdminController(service *services.AdminService) *AdminController {
	return &AdminController{service: service}
}

func (ctl *AdminController) Dashboard(c *ctx.Context) {
	stats, err := ctl.service.Dashboard(c.Context())
	if err != nil {
		c.Fail(err)
		return
	}

	c.Success(response.Map{
		"totalUsers":   stats.TotalUsers,
		"totalStores":  stats.TotalStores,
		"totalRatings": stats.TotalRatings,
		"adminCount":   stats.AdminCount,
		"userCount":    stats.UserCount,
		"ownerCount":   stats.OwnerCount,
	})
}

// Users lists accounts. Query: name, email, role, sort=field:direction.
func (ctl *AdminController) Users(c *ctx.Context) {
	users, err := ctl.service.ListUsers(c.Context(), repositories.UserFilter{
		Name:  c.Query("name"),
		Email: c.Query("email"),
		Role:  c.Query("role"),
		Sort:  c.Query("sort"),
	})
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.Map{"users": users})
}

func (ctl *AdminController) ShowUser(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}

	user, err := ctl.service.GetUser(c.Context(), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.Map{"user": user})
}

func (ctl *AdminController) DeleteUser(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}

	if err := ctl.service.DeleteUser(c.Context(), c.UserID(), id); err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.Map{"message": "User deleted successfully"})
}

// Stores lists every store with its rating aggregate. Query: name, sort.
func (ctl *AdminController) Stores(c *ctx.Context) {
	stores, err := ctl.service.ListStores(c.Context(), repositories.StoreFilter{
		Name: c.Query("name"),
		Sort: c.Query("sort"),
	})
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.Map{"stores": stores})
}
