package services

import (
	"context"

	"github.com/shashiranjanraj/storerating/app/models"
	"github.com/shashiranjanraj/storerating/app/repositories"
	"github.com/shashiranjanraj/storerating/pkg/apperr"
	"github.com/shashiranjanraj/storerating/pkg/database"
	"github.com/shashiranjanraj/storerating/pkg/event"
	"github.com/shashiranjanraj/storerating/pkg/logger"
)

// DashboardStats are the platform totals shown to admins.
type DashboardStats struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
	AdminCount   int64 `json:"adminCount"`
	UserCount    int64 `json:"userCount"`
	OwnerCount   int64 `json:"ownerCount"`
}

type AdminService struct {
	users   *repositories.UserRepository
	stores  *repositories.StoreRepository
	ratings *repositories.RatingRepository
	events  *event.Dispatcher
}

func NewAdminService(users *repositories.UserRepository, stores *repositories.StoreRepository, ratings *repositories.RatingRepository, events *event.Dispatcher) *AdminService {
	return &AdminService{users: users, stores: stores, ratings: ratings, events: events}
}

func (s *AdminService) Dashboard(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	var err error

	fail := func(err error) (DashboardStats, error) {
		return DashboardStats{}, apperr.Internal("Error fetching stats", err)
	}
	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return fail(err)
	}
	if stats.TotalStores, err = s.stores.Count(ctx); err != nil {
		return fail(err)
	}
	if stats.TotalRatings, err = s.ratings.Count(ctx); err != nil {
		return fail(err)
	}

	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return fail(err)
	}
	stats.AdminCount = byRole[models.RoleAdmin]
	stats.UserCount = byRole[models.RoleUser]
	stats.OwnerCount = byRole[models.RoleOwner]
	return stats, nil
}

func (s *AdminService) ListUsers(ctx context.Context, f repositories.UserFilter) ([]models.User, error) {
	users, err := s.users.List(ctx, f)
	if err != nil {
		return nil, apperr.Internal("Error fetching users", err)
	}
	return users, nil
}

func (s *AdminService) GetUser(ctx context.Context, id uint) (models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if database.IsNotFound(err) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, apperr.Internal("Error fetching user", err)
	}
	return user, nil
}

// DeleteUser removes account id together with its stores and ratings.
// An admin can never delete their own account.
func (s *AdminService) DeleteUser(ctx context.Context, actorID, id uint) error {
	if id == actorID {
		return ErrSelfDelete
	}

	if _, err := s.users.FindByID(ctx, id); err != nil {
		if database.IsNotFound(err) {
			return ErrUserNotFound
		}
		return apperr.Internal("Database error", err)
	}

	n, err := s.users.Delete(ctx, id)
	if err != nil {
		return apperr.Internal("Error deleting user", err)
	}
	if n == 0 {
		return ErrUserNotFound
	}

	logger.WithCtx(ctx).Info("user deleted", "user_id", id, "by", actorID)
	s.events.Fire(ctx, event.UserDeleted, map[string]any{"user_id": id, "by": actorID})
	return nil
}

func (s *AdminService) ListStores(ctx context.Context, f repositories.StoreFilter) ([]models.StoreSummary, error) {
	stores, err := s.stores.ListSummaries(ctx, f, repositories.AdminStoreSort)
	if err != nil {
		return nil, apperr.Internal("Error fetching stores", err)
	}
	return stores, nil
}
