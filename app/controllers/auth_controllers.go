package controllers

import (
	"github.com/shashiranjanraj/storerating/app/services"
	"github.com/shashiranjanraj/storerating/pkg/ctx"
	"github.com/shashiranjanraj/storerating/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

func (ctl *AuthController) Signup(c *ctx.Context) {
	var input services.RegisterInput
	if !c.BindJSON(&input) {
		return
	}

	id, err := ctl.service.Register(c.Context(), input)
	if err != nil {
		c.Fail(err)
		return
	}

	c.Created(response.Map{
		"message": "User created successfully",
		"userId":  id,
	})
}

func (ctl *AuthController) Login(c *ctx.Context) {
	var input services.LoginInput
	if !c.BindJSON(&input) {
		return
	}

	res, err := ctl.service.Login(c.Context(), input)
	if err != nil {
		c.Fail(err)
		return
	}

	c.Success(response.Map{
		"message": "Login successful",
		"token":   res.Token,
		"user":    res.User,
	})
}

func (ctl *AuthController) Logout(c *ctx.Context) {
	if err := ctl.service.Logout(c.Context(), c.Claims()); err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.Map{"message": "Logout successful"})
}

func (ctl *AuthController) UpdatePassword(c *ctx.Context) {
	var input services.ChangePasswordInput
	if !c.BindJSON(&input) {
		return
	}

	if err := ctl.service.ChangePassword(c.Context(), c.UserID(), input); err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.Map{"message": "Password updated successfully"})
}

func (ctl *AuthController) Me(c *ctx.Context) {
	user, err := ctl.service.Me(c.Context(), c.UserID())
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.Map{"user": user})
}
