package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abhiraj-restaurant/restaurant-api/models"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

var validate = validator.New()

// ReservationRequest is the input to reservation admission
type ReservationRequest struct {
	Name            string
	Email           string
	Phone           string
	Date            string // YYYY-MM-DD or RFC 3339
	Time            string
	Guests          *int
	SpecialRequests string
	CustomerID      *uint
}

// ReservationService admits table bookings
type ReservationService struct {
	db       *gorm.DB
	notifier Notifier
	now      func() time.Time
	location *time.Location
}

// NewReservationService creates a reservation service using the system clock
func NewReservationService(db *gorm.DB, notifier Notifier, location *time.Location) *ReservationService {
	if location == nil {
		location = time.Local
	}
	return &ReservationService{
		db:       db,
		notifier: notifier,
		now:      time.Now,
		location: location,
	}
}

// WithClock replaces the clock used to decide what "today" is
func (s *ReservationService) WithClock(now func() time.Time) *ReservationService {
	s.now = now
	return s
}

// Admit validates req and persists it as a pending reservation.
// Checks run in order: required fields, email, party size, date, slot, availability.
func (s *ReservationService) Admit(ctx context.Context, req ReservationRequest) (*models.Reservation, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
	req.SpecialRequests = strings.TrimSpace(req.SpecialRequests)

	if missing := missingReservationFields(req); len(missing) > 0 {
		return nil, missingFieldError("All required fields must be provided", missing)
	}

	if err := validate.Var(req.Email, "email"); err != nil {
		return nil, invalidFieldError(CodeInvalidField, "Email must be a valid email address")
	}

	if *req.Guests < models.MinGuests || *req.Guests > models.MaxGuests {
		return nil, invalidFieldError(CodePartySizeOutOfRange,
			fmt.Sprintf("Number of guests must be between %d and %d", models.MinGuests, models.MaxGuests))
	}

	day, err := s.parseDay(req.Date)
	if err != nil {
		return nil, invalidFieldError(CodeInvalidField, "Date must be in YYYY-MM-DD format")
	}
	if day < s.now().In(s.location).Format(dateLayout) {
		return nil, invalidFieldError(CodeDateInPast, "Booking date cannot be in the past")
	}

	if !models.IsValidTimeSlot(req.Time) {
		return nil, invalidFieldError(CodeInvalidTimeSlot, fmt.Sprintf("%q is not a bookable time slot", req.Time))
	}

	db := s.db.WithContext(ctx)

	var occupied int64
	if err := db.Model(&models.Reservation{}).
		Where("booking_date = ? AND time_slot = ? AND status IN ?", day, req.Time, models.OccupyingStatuses).
		Count(&occupied).Error; err != nil {
		return nil, internalError("Failed to check slot availability", err)
	}
	if occupied > 0 {
		return nil, slotUnavailableError()
	}

	reservation := models.Reservation{
		CustomerID:      req.CustomerID,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Date:            day,
		TimeSlot:        req.Time,
		Guests:          *req.Guests,
		Status:          models.ReservationPending,
		SpecialRequests: req.SpecialRequests,
	}

	// The partial unique index decides races the pre-check cannot see
	if err := db.Create(&reservation).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, slotUnavailableError()
		}
		return nil, internalError("Failed to create booking", err)
	}

	Dispatch(s.notifier, BookingConfirmation(reservation))

	return &reservation, nil
}

// parseDay normalizes a requested date to YYYY-MM-DD in the service location
func (s *ReservationService) parseDay(value string) (string, error) {
	if t, err := time.ParseInLocation(dateLayout, value, s.location); err == nil {
		return t.Format(dateLayout), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return "", err
	}
	return t.In(s.location).Format(dateLayout), nil
}

func missingReservationFields(req ReservationRequest) []string {
	var missing []string
	if req.Name == "" {
		missing = append(missing, "name")
	}
	if req.Email == "" {
		missing = append(missing, "email")
	}
	if req.Phone == "" {
		missing = append(missing, "phone")
	}
	if req.Date == "" {
		missing = append(missing, "date")
	}
	if req.Time == "" {
		missing = append(missing, "time")
	}
	if req.Guests == nil {
		missing = append(missing, "guests")
	}
	return missing
}

func slotUnavailableError() *ServiceError {
	return &ServiceError{
		Kind:    KindConflict,
		Code:    CodeSlotUnavailable,
		Message: "This time slot is already booked. Please choose another time.",
	}
}
