package models

import "time"

// Store belongs to an owner account and is removed with it.
type Store struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:60;not null;index:idx_stores_name;check:chk_stores_name,length(name) >= 20 AND length(name) <= 60" json:"name"`
	Email     string    `gorm:"size:255;not null;uniqueIndex:idx_stores_email" json:"email"`
	Address   string    `gorm:"size:400;not null;check:chk_stores_address,length(address) >= 1 AND length(address) <= 400" json:"address"`
	OwnerID   uint      `gorm:"not null;index:idx_stores_owner" json:"owner_id"`
	Owner     *User     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Store) TableName() string { return "stores" }

// StoreSummary is a store row with its rating aggregate.
// AverageRating is nil when the store has no ratings.
type StoreSummary struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	OwnerID       uint      `json:"owner_id"`
	CreatedAt     time.Time `json:"created_at"`
	AverageRating *float64  `json:"average_rating"`
	RatingCount   int64     `json:"rating_count"`
}

// RatedStoreSummary adds the caller's own rating to a StoreSummary.
type RatedStoreSummary struct {
	StoreSummary
	UserRating *int `json:"user_rating"`
}
