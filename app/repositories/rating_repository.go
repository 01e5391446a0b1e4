package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/storerating/app/models"
	"github.com/shashiranjanraj/storerating/pkg/orm"
)

var newestRatingsFirst = []clause.OrderByColumn{
	{Column: clause.Column{Table: "r", Name: "created_at"}, Desc: true},
	{Column: clause.Column{Table: "r", Name: "id"}, Desc: true},
}

// RatingRepository handles database operations for Rating.
type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Find returns userID's rating of storeID.
func (r *RatingRepository) Find(ctx context.Context, userID, storeID uint) (models.Rating, error) {
	var rating models.Rating
	err := orm.From(ctx, r.db).Model(&models.Rating{}).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		Take(&rating)
	return rating, err
}

// Create persists a new rating and sets its ID.
func (r *RatingRepository) Create(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

// UpdateScore changes userID's rating of storeID and bumps updated_at.
// It returns the number of rows changed.
func (r *RatingRepository) UpdateScore(ctx context.Context, userID, storeID uint, score int) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Rating{}).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		Update("rating", score)
	return res.RowsAffected, res.Error
}

// ListByUser returns userID's ratings with store names, newest first.
func (r *RatingRepository) ListByUser(ctx context.Context, userID uint) ([]models.UserRating, error) {
	out := make([]models.UserRating, 0)
	err := orm.From(ctx, r.db).Table("ratings AS r").
		Select("r.id, r.user_id, r.store_id, r.rating, r.created_at, r.updated_at, s.name AS store_name").
		Joins("JOIN stores AS s ON s.id = r.store_id").
		Where("r.user_id = ?", userID).
		OrderBy(newestRatingsFirst).
		Scan(&out)
	return out, err
}

// ListByStore returns the ratings on storeID with each rater's name and
// email, newest first.
func (r *RatingRepository) ListByStore(ctx context.Context, storeID uint) ([]models.StoreRating, error) {
	out := make([]models.StoreRating, 0)
	err := orm.From(ctx, r.db).Table("ratings AS r").
		Select("r.id, r.user_id, r.store_id, r.rating, r.created_at, r.updated_at, u.name AS user_name, u.email AS user_email").
		Joins("JOIN users AS u ON u.id = r.user_id").
		Where("r.store_id = ?", storeID).
		OrderBy(newestRatingsFirst).
		Scan(&out)
	return out, err
}

// Count returns the total number of ratings.
func (r *RatingRepository) Count(ctx context.Context) (int64, error) {
	return orm.From(ctx, r.db).Model(&models.Rating{}).Count()
}
