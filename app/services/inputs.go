package services

import (
	"strings"

	"github.com/shashiranjanraj/storerating/pkg/apperr"
	"github.com/shashiranjanraj/storerating/pkg/bind"
	"github.com/shashiranjanraj/storerating/pkg/validate"
)

// RegisterInput is the signup payload.
type RegisterInput struct {
	Name     string `json:"name"     validate:"required,between=20,60,alpha_num_space"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,between=8,16,has_upper,has_symbol"`
	Address  string `json:"address"  validate:"nullable,max=400"`
	Role     string `json:"role"     validate:"required,in=admin,user,owner"`
}

func (in *RegisterInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Address = strings.TrimSpace(in.Address)
	in.Role = strings.TrimSpace(in.Role)
}

// LoginInput is the login payload.
type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (in *LoginInput) Normalize() {
	in.Email = normalizeEmail(in.Email)
}

// ChangePasswordInput is the update-password payload.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,between=8,16,has_upper,has_symbol"`
}

// CreateStoreInput is the owner's new-store payload.
type CreateStoreInput struct {
	Name    string `json:"name"    validate:"required,between=20,60,alpha_num_space"`
	Email   string `json:"email"   validate:"required,email"`
	Address string `json:"address" validate:"required,max=400"`
}

func (in *CreateStoreInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Address = strings.TrimSpace(in.Address)
}

// RateInput is the create-rating payload.
type RateInput struct {
	StoreID uint `json:"storeId" validate:"required,gte=1"`
	Rating  int  `json:"rating"  validate:"required,between=1,5"`
}

// UpdateRatingInput is the update-rating payload.
type UpdateRatingInput struct {
	Rating int `json:"rating" validate:"required,between=1,5"`
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// check normalises and validates in. Input that already went through
// bind.JSON passes unchanged.
func check(in interface{}) error {
	if n, ok := in.(bind.Normalizer); ok {
		n.Normalize()
	}
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return apperr.Validation("Validation failed", errs)
	}
	return nil
}
