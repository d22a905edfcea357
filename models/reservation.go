package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reservation is a table booking for one (date, time slot) seating
type Reservation struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Reference       string         `gorm:"uniqueIndex;not null" json:"reference"`
	CustomerID      *uint          `gorm:"index" json:"customerId,omitempty"` // set when booked by a signed-in customer
	Name            string         `gorm:"not null" json:"name"`
	Email           string         `gorm:"not null" json:"email"`
	Phone           string         `gorm:"not null" json:"phone"`
	Date            string         `gorm:"column:booking_date;size:10;not null;index" json:"date"` // YYYY-MM-DD
	TimeSlot        string         `gorm:"not null" json:"time"`
	Guests          int            `gorm:"not null;check:guests BETWEEN 1 AND 12" json:"guests"`
	Status          string         `gorm:"not null;default:'pending'" json:"status"` // pending, confirmed, cancelled, completed
	SpecialRequests string         `json:"specialRequests"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Reservation model
func (Reservation) TableName() string {
	return "reservations"
}

// BeforeCreate assigns the public booking reference
func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.Reference == "" {
		r.Reference = uuid.NewString()
	}
	return nil
}

// OccupiesSlot reports whether the reservation blocks its seating
func (r Reservation) OccupiesSlot() bool {
	return contains(OccupyingStatuses, r.Status)
}
