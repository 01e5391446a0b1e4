package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/storerating/app/models"
	"github.com/shashiranjanraj/storerating/pkg/orm"
)

const storeColumns = "s.id, s.name, s.email, s.address, s.owner_id, s.created_at"

var (
	storeName      = clause.Column{Table: "s", Name: "name"}
	storeEmail     = clause.Column{Table: "s", Name: "email"}
	storeAddress   = clause.Column{Table: "s", Name: "address"}
	storeCreatedAt = clause.Column{Table: "s", Name: "created_at"}
	storeID        = clause.Column{Table: "s", Name: "id"}
	averageRating  = clause.Column{Name: "average_rating"}

	newestStoresFirst = []clause.OrderByColumn{
		{Column: storeCreatedAt, Desc: true},
		{Column: storeID, Desc: true},
	}
)

// Store list allow-lists. Admins may also sort by email; the owner
// dashboard order is fixed.
var (
	AdminStoreSort = orm.NewSortAllowList(
		map[string]clause.Column{
			"name":           storeName,
			"email":          storeEmail,
			"address":        storeAddress,
			"average_rating": averageRating,
		},
		newestStoresFirst...,
	).Then(clause.OrderByColumn{Column: storeID})

	UserStoreSort = orm.NewSortAllowList(
		map[string]clause.Column{
			"name":           storeName,
			"address":        storeAddress,
			"average_rating": averageRating,
		},
		newestStoresFirst...,
	).Then(clause.OrderByColumn{Column: storeID})

	OwnerStoreSort = orm.Fixed(newestStoresFirst...)
)

// StoreFilter narrows a store list. Empty fields are ignored.
type StoreFilter struct {
	Name string
	Sort string
}

// StoreRepository handles database operations for Store.
type StoreRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

// summaries selects stores joined with their rating aggregate.
func (r *StoreRepository) summaries(ctx context.Context, extraSelect string, extraJoin string, args ...interface{}) *orm.Query {
	q := orm.From(ctx, r.db).Table("stores AS s").
		Select(storeColumns + ", AVG(r.rating) AS average_rating, COUNT(r.id) AS rating_count" + extraSelect).
		Joins("LEFT JOIN ratings AS r ON r.store_id = s.id")
	if extraJoin != "" {
		q = q.Joins(extraJoin, args...)
	}
	return q.Group(storeColumns)
}

// Create persists a new store and sets its ID.
func (r *StoreRepository) Create(ctx context.Context, store *models.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

// FindByID looks up a store by primary key.
func (r *StoreRepository) FindByID(ctx context.Context, id uint) (models.Store, error) {
	var store models.Store
	err := orm.From(ctx, r.db).Model(&models.Store{}).Where("id = ?", id).Take(&store)
	return store, err
}

// FindByEmail looks up a store by its contact email.
func (r *StoreRepository) FindByEmail(ctx context.Context, email string) (models.Store, error) {
	var store models.Store
	err := orm.From(ctx, r.db).Model(&models.Store{}).Where("email = ?", email).Take(&store)
	return store, err
}

// EmailExists reports whether a store already uses email.
func (r *StoreRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	n, err := orm.From(ctx, r.db).Model(&models.Store{}).Where("email = ?", email).Count()
	return n > 0, err
}

// OwnedExists reports whether store id belongs to ownerID.
func (r *StoreRepository) OwnedExists(ctx context.Context, id, ownerID uint) (bool, error) {
	n, err := orm.From(ctx, r.db).Model(&models.Store{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Count()
	return n > 0, err
}

// ListSummaries returns every store matching f with its aggregate, sorted
// by allow. The result is never nil.
func (r *StoreRepository) ListSummaries(ctx context.Context, f StoreFilter, allow orm.SortAllowList) ([]models.StoreSummary, error) {
	out := make([]models.StoreSummary, 0)
	err := r.summaries(ctx, "", "").
		WhereContains(storeName, f.Name).
		Sort(allow, f.Sort).
		Scan(&out)
	return out, err
}

// ListForUser is ListSummaries plus userID's own rating on each store.
func (r *StoreRepository) ListForUser(ctx context.Context, userID uint, f StoreFilter) ([]models.RatedStoreSummary, error) {
	out := make([]models.RatedStoreSummary, 0)
	err := r.summaries(ctx,
		", MAX(mine.rating) AS user_rating",
		"LEFT JOIN ratings AS mine ON mine.store_id = s.id AND mine.user_id = ?", userID,
	).
		WhereContains(storeName, f.Name).
		Sort(UserStoreSort, f.Sort).
		Scan(&out)
	return out, err
}

// ListByOwner returns ownerID's stores with aggregates, newest first.
func (r *StoreRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.StoreSummary, error) {
	out := make([]models.StoreSummary, 0)
	err := r.summaries(ctx, "", "").
		Where("s.owner_id = ?", ownerID).
		Sort(OwnerStoreSort, "").
		Scan(&out)
	return out, err
}

// FindOwnedSummary returns store id with its aggregate when it belongs to
// ownerID. It returns gorm.ErrRecordNotFound otherwise.
func (r *StoreRepository) FindOwnedSummary(ctx context.Context, id, ownerID uint) (models.StoreSummary, error) {
	var rows []models.StoreSummary
	err := r.summaries(ctx, "", "").
		Where("s.id = ? AND s.owner_id = ?", id, ownerID).
		Scan(&rows)
	if err != nil {
		return models.StoreSummary{}, err
	}
	if len(rows) == 0 {
		return models.StoreSummary{}, gorm.ErrRecordNotFound
	}
	return rows[0], nil
}

// Count returns the total number of stores.
func (r *StoreRepository) Count(ctx context.Context) (int64, error) {
	return orm.From(ctx, r.db).Model(&models.Store{}).Count()
}
