package controllers

import (
	"github.com/shashiranjanraj/storerating/app/services"
	"github.com/shashiranjanraj/storerating/pkg/ctx"
	"github.com/shashiranjanraj/storerating/pkg/response"
)

type OwnerController struct {
	service *services.OwnerService
}

func NewOwnerController(service *services.OwnerService) *OwnerController {
	return &OwnerController{service: service}
}

func (ctl *OwnerController) Dashboard(c *ctx.Context) {
	stores, err := ctl.service.Dashboard(c.Context(), c.UserID())
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.Map{"stores": stores})
}

func (ctl *OwnerController) CreateStore(c *ctx.Context) {
	var input services.CreateStoreInput
	if !c.BindJSON(&input) {
		return
	}

	id, err := ctl.service.CreateStore(c.Context(), c.UserID(), input)
	if err != nil {
		c.Fail(err)
		return
	}

	c.Created(response.Map{
		"message": "Store created successfully",
		"storeId": id,
	})
}

func (ctl *OwnerController) ShowStore(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}

	store, err := ctl.service.GetStore(c.Context(), c.UserID(), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.Map{"store": store})
}

func (ctl *OwnerController) StoreRatings(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}

	ratings, err := ctl.service.StoreRatings(c.Context(), c.UserID(), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.Map{"ratings": ratings})
}
