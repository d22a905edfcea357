package models

import (
	"fmt"

	"gorm.io/gorm"
)

// openSlotIndex makes (date, time slot) unique among reservations that still
// hold their seating, so concurrent bookings cannot both be admitted.
const openSlotIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_reservations_open_slot
ON reservations (booking_date, time_slot)
WHERE status IN ('pending', 'confirmed') AND deleted_at IS NULL`

// All returns every persisted model, in migration order
func All() []interface{} {
	return []interface{}{&User{}, &MenuItem{}, &Reservation{}, &Order{}, &OrderItem{}}
}

// Migrate creates or updates the schema for all models
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}
	if err := db.Exec(openSlotIndex).Error; err != nil {
		return fmt.Errorf("failed to create reservation slot index: %w", err)
	}
	return nil
}
