package services

import (
	"context"

	"github.com/shashiranjanraj/storerating/app/models"
	"github.com/shashiranjanraj/storerating/app/repositories"
	"github.com/shashiranjanraj/storerating/pkg/apperr"
	"github.com/shashiranjanraj/storerating/pkg/database"
	"github.com/shashiranjanraj/storerating/pkg/event"
)

// RatingService serves regular users: browsing stores and rating them.
type RatingService struct {
	stores  *repositories.StoreRepository
	ratings *repositories.RatingRepository
	events  *event.Dispatcher
}

func NewRatingService(stores *repositories.StoreRepository, ratings *repositories.RatingRepository, events *event.Dispatcher) *RatingService {
	return &RatingService{stores: stores, ratings: ratings, events: events}
}

// ListStores returns every store with its aggregate and userID's own rating.
func (s *RatingService) ListStores(ctx context.Context, userID uint, f repositories.StoreFilter) ([]models.RatedStoreSummary, error) {
	stores, err := s.stores.ListForUser(ctx, userID, f)
	if err != nil {
		return nil, apperr.Internal("Error fetching stores", err)
	}
	return stores, nil
}

func (s *RatingService) MyRatings(ctx context.Context, userID uint) ([]models.UserRating, error) {
	ratings, err := s.ratings.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("Error fetching ratings", err)
	}
	return ratings, nil
}

// Rate records userID's first rating of a store.
func (s *RatingService) Rate(ctx context.Context, userID uint, in RateInput) (uint, error) {
	if err := check(&in); err != nil {
		return 0, err
	}

	if _, err := s.stores.FindByID(ctx, in.StoreID); err != nil {
		if database.IsNotFound(err) {
			return 0, ErrStoreNotFound
		}
		return 0, apperr.Internal("Database error", err)
	}

	_, err := s.ratings.Find(ctx, userID, in.StoreID)
	if err == nil {
		return 0, ErrAlreadyRated
	}
	if !database.IsNotFound(err) {
		return 0, apperr.Internal("Database error", err)
	}

	rating := models.Rating{UserID: userID, StoreID: in.StoreID, Rating: in.Rating}
	if err := s.ratings.Create(ctx, &rating); err != nil {
		if database.IsUniqueViolation(err) {
			return 0, ErrAlreadyRated
		}
		if database.IsForeignKeyViolation(err) {
			// The store or the account was deleted after the checks above.
			return 0, ErrStoreNotFound
		}
		return 0, apperr.Internal("Error saving rating", err)
	}

	s.events.Fire(ctx, event.RatingCreated, map[string]any{
		"rating_id": rating.ID, "store_id": in.StoreID, "user_id": userID,
	})
	return rating.ID, nil
}

// UpdateRating changes an existing rating. It never creates one.
func (s *RatingService) UpdateRating(ctx context.Context, userID, storeID uint, in UpdateRatingInput) error {
	if err := check(&in); err != nil {
		return err
	}

	if _, err := s.ratings.Find(ctx, userID, storeID); err != nil {
		if database.IsNotFound(err) {
			return ErrRatingNotFound
		}
		return apperr.Internal("Database error", err)
	}

	n, err := s.ratings.UpdateScore(ctx, userID, storeID, in.Rating)
	if err != nil {
		return apperr.Internal("Error updating rating", err)
	}
	if n == 0 {
		return ErrRatingNotFound
	}

	s.events.Fire(ctx, event.RatingUpdated, map[string]any{"store_id": storeID, "user_id": userID})
	return nil
}
