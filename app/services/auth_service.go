package services

import (
	"context"

	"github.com/shashiranjanraj/storerating/app/models"
	"github.com/shashiranjanraj/storerating/app/repositories"
	"github.com/shashiranjanraj/storerating/config"
	"github.com/shashiranjanraj/storerating/pkg/apperr"
	"github.com/shashiranjanraj/storerating/pkg/auth"
	"github.com/shashiranjanraj/storerating/pkg/database"
	"github.com/shashiranjanraj/storerating/pkg/event"
	"github.com/shashiranjanraj/storerating/pkg/logger"
	"github.com/shashiranjanraj/storerating/pkg/metrics"
)

// LoginResult is a signed token and the account it was issued for.
type LoginResult struct {
	Token string
	User  models.User
}

type AuthService struct {
	users  *repositories.UserRepository
	revoke *auth.Revocations
	events *event.Dispatcher
}

func NewAuthService(users *repositories.UserRepository, revoke *auth.Revocations, events *event.Dispatcher) *AuthService {
	return &AuthService{users: users, revoke: revoke, events: events}
}

// Register creates an account and returns its id. Admin accounts are only
// accepted when ALLOW_ADMIN_SIGNUP is set; use CreateAdmin otherwise.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (uint, error) {
	if err := check(&in); err != nil {
		return 0, err
	}
	if in.Role == models.RoleAdmin && !config.AllowAdminSignup() {
		return 0, apperr.Validation("Validation failed", map[string]string{
			"role": "Admin accounts cannot be created through signup.",
		})
	}
	return s.create(ctx, in)
}

// CreateAdmin creates an admin account regardless of ALLOW_ADMIN_SIGNUP.
func (s *AuthService) CreateAdmin(ctx context.Context, in RegisterInput) (uint, error) {
	in.Role = models.RoleAdmin
	if err := check(&in); err != nil {
		return 0, err
	}
	return s.create(ctx, in)
}

func (s *AuthService) create(ctx context.Context, in RegisterInput) (uint, error) {
	exists, err := s.users.EmailExists(ctx, in.Email)
	if err != nil {
		return 0, apperr.Internal("Database error", err)
	}
	if exists {
		return 0, ErrEmailTaken
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return 0, apperr.Internal("Error creating user", err)
	}

	user := models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Address:  in.Address,
		Role:     in.Role,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if database.IsUniqueViolation(err) {
			return 0, ErrEmailTaken
		}
		return 0, apperr.Internal("Error creating user", err)
	}

	s.events.Fire(ctx, event.UserRegistered, map[string]any{"user_id": user.ID, "role": user.Role})
	return user.ID, nil
}

// Login verifies the credentials and issues a token. Unknown email and
// wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	if err := check(&in); err != nil {
		return LoginResult{}, err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if database.IsNotFound(err) {
		metrics.AuthFailures.WithLabelValues("bad_credentials").Inc()
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, apperr.Internal("Database error", err)
	}
	if !auth.CheckPassword(user.Password, in.Password) {
		metrics.AuthFailures.WithLabelValues("bad_credentials").Inc()
		return LoginResult{}, ErrInvalidCredentials
	}

	token, _, err := auth.GenerateToken(auth.Subject{ID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		return LoginResult{}, apperr.Internal("Error generating token", err)
	}

	logger.WithCtx(ctx).Info("user logged in", "user_id", user.ID, "role", user.Role)
	return LoginResult{Token: token, User: user}, nil
}

// Logout revokes the presented token until it expires.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if s.revoke == nil {
		return nil
	}
	if err := s.revoke.Revoke(ctx, claims); err != nil {
		return apperr.Internal("Error logging out", err)
	}
	return nil
}

// ChangePassword replaces userID's password after verifying the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, in ChangePasswordInput) error {
	if err := check(&in); err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, userID)
	if database.IsNotFound(err) {
		return ErrUserNotFound
	}
	if err != nil {
		return apperr.Internal("Database error", err)
	}
	if !auth.CheckPassword(user.Password, in.CurrentPassword) {
		return ErrWrongPassword
	}

	hash, err := auth.HashPassword(in.NewPassword)
	if err != nil {
		return apperr.Internal("Error updating password", err)
	}
	if _, err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return apperr.Internal("Error updating password", err)
	}
	return nil
}

// Me returns userID's profile.
func (s *AuthService) Me(ctx context.Context, userID uint) (models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if database.IsNotFound(err) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, apperr.Internal("Error fetching user", err)
	}
	return user, nil
}
