package controllers

import (
	"github.com/shashiranjanraj/storerating/app/repositories"
	"github.com/shashiranjanraj/storerating/app/services"
	"github.com/shashiranjanraj/storerating/pkg/ctx"
	"github.com/shashiranjanraj/storerating/pkg/response"
)

type UserController struct {
	service *services.RatingService
}

func NewUserController(service *services.RatingService) *UserController {
	return &UserController{service: service}
}

// Stores lists every store with its aggregate and the caller's own rating.
// Query: name, sort.
func (ctl *UserController) Stores(c *ctx.Context) {
	stores, err := ctl.service.ListStores(c.Context(), c.UserID(), repositories.StoreFilter{
		Name: c.Query("name"),
		Sort: c.Query("sort"),
	})
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.Map{"stores": stores})
}

func (ctl *UserController) Ratings(c *ctx.Context) {
	ratings, err := ctl.service.MyRatings(c.Context(), c.UserID())
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.Map{"ratings": ratings})
}

func (ctl *UserController) Rate(c *ctx.Context) {
	var input services.RateInput
	if !c.BindJSON(&input) {
		return
	}

	id, err := ctl.service.Rate(c.Context(), c.UserID(), input)
	if err != nil {
		c.Fail(err)
		return
	}

	c.Created(response.Map{
		"message":  "Rating added successfully",
		"ratingId": id,
	})
}

func (ctl *UserController) UpdateRating(c *ctx.Context) {
	storeID, ok := c.ParamUint("storeId")
	if !ok {
		return
	}
	var input services.UpdateRatingInput
	if !c.BindJSON(&input) {
		return
	}

	if err := ctl.service.UpdateRating(c.Context(), c.UserID(), storeID, input); err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.Map{"message": "Rating updated successfully"})
}
