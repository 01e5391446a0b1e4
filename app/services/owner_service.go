package services

import (
	"context"

	"github.com/shashiranjanraj/storerating/app/models"
	"github.com/shashiranjanraj/storerating/app/repositories"
	"github.com/shashiranjanraj/storerating/pkg/apperr"
	"github.com/shashiranjanraj/storerating/pkg/database"
	"github.com/shashiranjanraj/storerating/pkg/event"
)

// OwnerService serves store owners. Every method is scoped to the owner id
// taken from the caller's token; a store owned by someone else is reported
// as not found.
type OwnerService struct {
	stores  *repositories.StoreRepository
	ratings *repositories.RatingRepository
	events  *event.Dispatcher
}

func NewOwnerService(stores *repositories.StoreRepository, ratings *repositories.RatingRepository, events *event.Dispatcher) *OwnerService {
	return &OwnerService{stores: stores, ratings: ratings, events: events}
}

func (s *OwnerService) Dashboard(ctx context.Context, ownerID uint) ([]models.StoreSummary, error) {
	stores, err := s.stores.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal("Error fetching stores", err)
	}
	return stores, nil
}

func (s *OwnerService) CreateStore(ctx context.Context, ownerID uint, in CreateStoreInput) (uint, error) {
	if err := check(&in); err != nil {
		return 0, err
	}

	exists, err := s.stores.EmailExists(ctx, in.Email)
	if err != nil {
		return 0, apperr.Internal("Database error", err)
	}
	if exists {
		return 0, ErrStoreEmailTaken
	}

	store := models.Store{Name: in.Name, Email: in.Email, Address: in.Address, OwnerID: ownerID}
	if err := s.stores.Create(ctx, &store); err != nil {
		if database.IsUniqueViolation(err) {
			return 0, ErrStoreEmailTaken
		}
		if database.IsForeignKeyViolation(err) {
			return 0, ErrAccountGone
		}
		return 0, apperr.Internal("Error creating store", err)
	}

	s.events.Fire(ctx, event.StoreCreated, map[string]any{"store_id": store.ID, "owner_id": ownerID})
	return store.ID, nil
}

func (s *OwnerService) GetStore(ctx context.Context, ownerID, storeID uint) (models.StoreSummary, error) {
	store, err := s.stores.FindOwnedSummary(ctx, storeID, ownerID)
	if database.IsNotFound(err) {
		return models.StoreSummary{}, ErrOwnedStoreNotFound
	}
	if err != nil {
		return models.StoreSummary{}, apperr.Internal("Error fetching store", err)
	}
	return store, nil
}

func (s *OwnerService) StoreRatings(ctx context.Context, ownerID, storeID uint) ([]models.StoreRating, error) {
	owned, err := s.stores.OwnedExists(ctx, storeID, ownerID)
	if err != nil {
		return nil, apperr.Internal("Database error", err)
	}
	if !owned {
		return nil, ErrOwnedStoreNotFound
	}

	ratings, err := s.ratings.ListByStore(ctx, storeID)
	if err != nil {
		return nil, apperr.Internal("Error fetching ratings", err)
	}
	return ratings, nil
}
