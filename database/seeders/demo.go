package seeders

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storerating/app/models"
	"github.com/shashiranjanraj/storerating/app/repositories"
	"github.com/shashiranjanraj/storerating/pkg/auth"
	"github.com/shashiranjanraj/storerating/pkg/database"
)

func init() {
	Register("demo", SeedDemo)
}

type demoUser struct {
	name, email, password, address, role string
}

type demoStore struct {
	name, email, address string
	owner                string // owner email
}

type demoRating struct {
	user  string // user email
	store int    // index into demoStores
	score int
}

var demoUsers = []demoUser{
	{"Administrator User Account", "admin@example.com", "Admin@123", "123 Admin Street, City Center, State 12345", models.RoleAdmin},
	{"Regular Customer User Account", "user@example.com", "User@123", "456 User Avenue, Suburb Area, State 67890", models.RoleUser},
	{"Store Owner Business Account", "owner@example.com", "Owner@123", "789 Business Boulevard, Commercial District, State 11111", models.RoleOwner},
	{"Second Store Owner Account Name", "owner2@example.com", "Owner@456", "321 Commerce Street, Shopping District, State 22222", models.RoleOwner},
	{"Another Regular User Account", "user2@example.com", "User@456", "654 Customer Lane, Residential Area, State 33333", models.RoleUser},
}

var demoStores = []demoStore{
	{"Premium Coffee Shop Downtown", "contact@premiumcoffee.com", "100 Main Street, Downtown, City 10001", "owner@example.com"},
	{"Electronics Retail Store Megamart", "info@electronicsstore.com", "200 Tech Avenue, Innovation District, City 10002", "owner@example.com"},
	{"Fashion Boutique Trendy Styles", "contact@fashionboutique.com", "300 Style Street, Fashion District, City 10003", "owner2@example.com"},
	{"Organic Grocery Market Fresh Foods", "hello@organicgrocery.com", "400 Health Boulevard, Wellness Area, City 10004", "owner2@example.com"},
	{"Sports Equipment Super Store", "support@sportsequipment.com", "500 Athletic Avenue, Sports Complex, City 10005", "owner@example.com"},
}

var demoRatings = []demoRating{
	{"user@example.com", 0, 5},
	{"user@example.com", 1, 4},
	{"user@example.com", 2, 5},
	{"user2@example.com", 0, 4},
	{"user2@example.com", 1, 3},
	{"user2@example.com", 3, 5},
	{"user2@example.com", 4, 4},
}

// SeedDemo inserts the demo accounts, stores and ratings. Rows that
// already exist are left untouched.
func SeedDemo(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repositories.NewUserRepository(tx)
		stores := repositories.NewStoreRepository(tx)
		ratings := repositories.NewRatingRepository(tx)

		userIDs := make(map[string]uint, len(demoUsers))
		for _, u := range demoUsers {
			existing, err := users.FindByEmail(ctx, u.email)
			if err == nil {
				userIDs[u.email] = existing.ID
				continue
			}
			if !database.IsNotFound(err) {
				return err
			}

			hash, err := auth.HashPassword(u.password)
			if err != nil {
				return err
			}
			user := models.User{Name: u.name, Email: u.email, Password: hash, Address: u.address, Role: u.role}
			if err := users.Create(ctx, &user); err != nil {
				return fmt.Errorf("user %s: %w", u.email, err)
			}
			userIDs[u.email] = user.ID
		}

		storeIDs := make([]uint, len(demoStores))
		for i, s := range demoStores {
			existing, err := stores.FindByEmail(ctx, s.email)
			if err == nil {
				storeIDs[i] = existing.ID
				continue
			}
			if !database.IsNotFound(err) {
				return err
			}

			store := models.Store{Name: s.name, Email: s.email, Address: s.address, OwnerID: userIDs[s.owner]}
			if err := stores.Create(ctx, &store); err != nil {
				return fmt.Errorf("store %s: %w", s.email, err)
			}
			storeIDs[i] = store.ID
		}

		for _, r := range demoRatings {
			userID, storeID := userIDs[r.user], storeIDs[r.store]
			_, err := ratings.Find(ctx, userID, storeID)
			if err == nil {
				continue
			}
			if !database.IsNotFound(err) {
				return err
			}

			rating := models.Rating{UserID: userID, StoreID: storeID, Rating: r.score}
			if err := ratings.Create(ctx, &rating); err != nil {
				return fmt.Errorf("rating %s/%d: %w", r.user, r.store, err)
			}
		}
		return nil
	})
}
