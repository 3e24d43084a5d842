package models

import "time"

// User is an API account. Only authenticated users may write to the catalog;
// IsStaff marks accounts created through the admin bootstrap.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(100);not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized
	IsStaff   bool      `json:"is_staff" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// RevokedToken is a denylist entry for a logged-out JWT, keyed by its jti
// claim. Rows older than ExpiresAt are safe to purge since the token would no
// longer verify anyway.
type RevokedToken struct {
	JTI       string    `gorm:"primaryKey;type:varchar(36)"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}
