package models

import (
	"time"

	"gorm.io/gorm"
)

// MenuItem is a catalog entry. Orders keep their own snapshot of name and
// price, so editing or deleting an item never changes placed orders.
type MenuItem struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"size:100;not null" json:"name"`
	Description     string         `gorm:"size:500;not null" json:"description"`
	Price           float64        `gorm:"not null;check:price >= 0" json:"price"`
	Category        string         `gorm:"not null;index" json:"category"` // starters, mains, desserts, beverages
	Image           string         `json:"image"`                          // external image URL
	ImageS3Key      *string        `json:"-"`                              // uploaded photo, served through a presigned URL
	ImageURL        string         `gorm:"-" json:"imageUrl,omitempty"`
	IsVegetarian    bool           `gorm:"not null" json:"isVegetarian"`
	IsVegan         bool           `gorm:"not null" json:"isVegan"`
	IsGlutenFree    bool           `gorm:"not null" json:"isGlutenFree"`
	IsAvailable     bool           `gorm:"not null;index" json:"isAvailable"`
	PreparationTime int            `gorm:"not null" json:"preparationTime"` // minutes
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}
