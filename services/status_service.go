package services

import (
	"context"
	"errors"
	"strings"

	"github.com/abhiraj-restaurant/restaurant-api/models"
	"gorm.io/gorm"
)

// StatusService overwrites reservation and order statuses on behalf of an
// administrator. Any value in the enumeration is accepted from any state.
type StatusService struct {
	db *gorm.DB
}

// NewStatusService creates a status service
func NewStatusService(db *gorm.DB) *StatusService {
	return &StatusService{db: db}
}

// SetReservationStatus sets the status of reservation id
func (s *StatusService) SetReservationStatus(ctx context.Context, id uint, status string) (*models.Reservation, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, missingFieldError("Status is required", []string{"status"})
	}
	if !models.IsValidReservationStatus(status) {
		return nil, invalidStatusError("status", models.ReservationStatuses)
	}

	db := s.db.WithContext(ctx)

	var reservation models.Reservation
	if err := db.First(&reservation, id).Error; err != nil {
		return nil, lookupError("Booking not found", err)
	}

	reopening := !reservation.OccupiesSlot()
	reservation.Status = status

	// Reopening a cancelled booking can collide with a newer one for the slot
	if err := db.Model(&reservation).Update("status", status).Error; err != nil {
		if reopening && reservation.OccupiesSlot() && isUniqueViolation(err) {
			return nil, slotUnavailableError()
		}
		return nil, internalError("Failed to update booking", err)
	}

	return &reservation, nil
}

// SetOrderStatus sets the order status, the payment status, or both.
// Empty values leave the field unchanged; at least one is required.
func (s *StatusService) SetOrderStatus(ctx context.Context, id uint, status, paymentStatus string) (*models.Order, error) {
	status = strings.TrimSpace(status)
	paymentStatus = strings.TrimSpace(paymentStatus)

	if status == "" && paymentStatus == "" {
		return nil, missingFieldError("Status or payment status is required", []string{"status", "paymentStatus"})
	}
	if status != "" && !models.IsValidOrderStatus(status) {
		return nil, invalidStatusError("status", models.OrderStatuses)
	}
	if paymentStatus != "" && !models.IsValidPaymentStatus(paymentStatus) {
		return nil, invalidStatusError("paymentStatus", models.PaymentStatuses)
	}

	db := s.db.WithContext(ctx)

	var order models.Order
	if err := db.First(&order, id).Error; err != nil {
		return nil, lookupError("Order not found", err)
	}

	updates := map[string]interface{}{}
	if status != "" {
		updates["status"] = status
	}
	if paymentStatus != "" {
		updates["payment_status"] = paymentStatus
	}

	if err := db.Model(&order).Updates(updates).Error; err != nil {
		return nil, internalError("Failed to update order", err)
	}

	if err := db.Preload("Customer").Preload("Items").First(&order, order.ID).Error; err != nil {
		return nil, internalError("Failed to load order", err)
	}

	return &order, nil
}

func invalidStatusError(field string, allowed []string) *ServiceError {
	return &ServiceError{
		Kind:    KindInvalidField,
		Code:    CodeInvalidStatus,
		Message: field + " must be one of: " + strings.Join(allowed, ", "),
	}
}

func lookupError(notFoundMessage string, err error) *ServiceError {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundError(notFoundMessage)
	}
	return internalError("Failed to fetch record", err)
}
