package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/storerating/app/models"
	"github.com/shashiranjanraj/storerating/pkg/orm"
)

var (
	userName      = clause.Column{Table: "users", Name: "name"}
	userEmail     = clause.Column{Table: "users", Name: "email"}
	userRole      = clause.Column{Table: "users", Name: "role"}
	userCreatedAt = clause.Column{Table: "users", Name: "created_at"}
	userID        = clause.Column{Table: "users", Name: "id"}
)

// UserSort is the admin user-list allow-list; the default is newest first.
var UserSort = orm.NewSortAllowList(
	map[string]clause.Column{
		"name":       userName,
		"email":      userEmail,
		"role":       userRole,
		"created_at": userCreatedAt,
	},
	clause.OrderByColumn{Column: userCreatedAt, Desc: true},
	clause.OrderByColumn{Column: userID, Desc: true},
).Then(clause.OrderByColumn{Column: userID})

// UserFilter narrows the admin user list. Empty fields are ignored.
type UserFilter struct {
	Name  string
	Email string
	Role  string
	Sort  string
}

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail looks up a user by their (normalised) email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := orm.From(ctx, r.db).Model(&models.User{}).Where("email = ?", email).Take(&user)
	return user, err
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	err := orm.From(ctx, r.db).Model(&models.User{}).Where("id = ?", id).Take(&user)
	return user, err
}

// Exists reports whether account id is still present.
func (r *UserRepository) Exists(ctx context.Context, id uint) (bool, error) {
	n, err := orm.From(ctx, r.db).Model(&models.User{}).Where("id = ?", id).Count()
	return n > 0, err
}

// EmailExists reports whether an account already uses email.
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	n, err := orm.From(ctx, r.db).Model(&models.User{}).Where("email = ?", email).Count()
	return n > 0, err
}

// Create persists a new user and sets its ID.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// UpdatePassword replaces the stored hash. It returns the number of rows
// changed.
func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hash string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password", hash)
	return res.RowsAffected, res.Error
}

// Delete removes a user; the schema cascades to their stores and ratings.
func (r *UserRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	return res.RowsAffected, res.Error
}

// List returns users matching f, never nil.
func (r *UserRepository) List(ctx context.Context, f UserFilter) ([]models.User, error) {
	users := make([]models.User, 0)
	err := orm.From(ctx, r.db).Model(&models.User{}).
		WhereContains(userName, f.Name).
		WhereContains(userEmail, f.Email).
		WhereEquals(userRole, f.Role).
		Sort(UserSort, f.Sort).
		Get(&users)
	return users, err
}

// Count returns the total number of users.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return orm.From(ctx, r.db).Model(&models.User{}).Count()
}

// CountByRole returns the number of users per role. Roles with no users
// are absent from the map.
func (r *UserRepository) CountByRole(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Role  string
		Total int64
	}
	err := orm.From(ctx, r.db).Model(&models.User{}).
		Select("role, COUNT(*) AS total").
		Group("role").
		Scan(&rows)
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Role] = row.Total
	}
	return out, nil
}
