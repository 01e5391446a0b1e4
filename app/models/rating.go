package models

import "time"

// Rating is one user's 1..5 score for one store. A user rates a store at
// most once; later changes update the same row.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_ratings_user_store,priority:1;index:idx_ratings_user" json:"user_id"`
	StoreID   uint      `gorm:"not null;uniqueIndex:idx_ratings_user_store,priority:2;index:idx_ratings_store" json:"store_id"`
	Rating    int       `gorm:"not null;check:chk_ratings_rating,rating >= 1 AND rating <= 5" json:"rating"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Store     *Store    `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Rating) TableName() string { return "ratings" }

// StoreRating is a rating on an owner's store with the rater's identity.
type StoreRating struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	StoreID   uint      `json:"store_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
}

// UserRating is one of the caller's ratings with the store's name.
type UserRating struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	StoreID   uint      `json:"store_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	StoreName string    `json:"store_name"`
}
