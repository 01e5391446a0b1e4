package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storerating/app/models"
	"github.com/shashiranjanraj/storerating/pkg/migration"
)

func init() {
	migration.Register("20250101000000_create_users_table", &CreateUsersTable{})
	migration.Register("20250101000001_create_stores_table", &CreateStoresTable{})
	migration.Register("20250101000002_create_ratings_table", &CreateRatingsTable{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.User{})
}

// -------- 0002: stores --------

type CreateStoresTable struct{}

func (m *CreateStoresTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Store{})
}

func (m *CreateStoresTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Store{})
}

// -------- 0003: ratings --------

type CreateRatingsTable struct{}

func (m *CreateRatingsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Rating{})
}

func (m *CreateRatingsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Rating{})
}
