package services

import "github.com/shashiranjanraj/storerating/pkg/apperr"

// Errors callers may match with errors.Is.
var (
	ErrInvalidCredentials = apperr.Unauthenticated("Invalid credentials")
	ErrWrongPassword      = apperr.Unauthenticated("Current password is incorrect")
	ErrAccountGone        = apperr.Unauthenticated("Account no longer exists")
	ErrEmailTaken         = apperr.Conflict("User with this email already exists")
	ErrStoreEmailTaken    = apperr.Conflict("A store with this email already exists")
	ErrAlreadyRated       = apperr.Conflict("You have already rated this store. Use update instead.")
	ErrSelfDelete         = apperr.Validation("You cannot delete your own account", nil)
	ErrUserNotFound       = apperr.NotFound("User not found")
	ErrStoreNotFound      = apperr.NotFound("Store not found")
	ErrOwnedStoreNotFound = apperr.NotFound("Store not found or you do not own this store")
	ErrRatingNotFound     = apperr.NotFound("Rating not found. Create a new rating first.")
)
