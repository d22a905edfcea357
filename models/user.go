package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a customer or an administrator
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string         `json:"phone"`
	PasswordHash string         `json:"-"`
	Role         string         `gorm:"not null;default:'customer'" json:"role"` // "customer" or "admin"
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user may use the back-office
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
