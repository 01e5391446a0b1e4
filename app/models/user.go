package models

import "time"

// Roles a user account can hold.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
	RoleOwner = "owner"
)

// User is an account. Deleting a user cascades to the stores they own and
// the ratings they wrote.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:60;not null;check:chk_users_name,length(name) >= 20 AND length(name) <= 60" json:"name"`
	Email     string    `gorm:"size:255;not null;uniqueIndex:idx_users_email" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	Address   string    `gorm:"size:400;check:chk_users_address,length(address) <= 400" json:"address"`
	Role      string    `gorm:"size:10;not null;index:idx_users_role;check:chk_users_role,role IN ('admin','user','owner')" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_users_created_at" json:"created_at"`
}

func (User) TableName() string { return "users" }
