package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/abhiraj-restaurant/restaurant-api/config"
	"github.com/abhiraj-restaurant/restaurant-api/middleware"
	"github.com/abhiraj-restaurant/restaurant-api/models"
	"github.com/abhiraj-restaurant/restaurant-api/services"
)

// CreateBookingRequest represents the request body for reserving a table
type CreateBookingRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Guests          *int   `json:"guests"`
	SpecialRequests string `json:"specialRequests"`
}

// bookingSummary is the body returned after a successful reservation
func bookingSummary(r *models.Reservation) gin.H {
	return gin.H{
		"id":        r.ID,
		"reference": r.Reference,
		"name":      r.Name,
		"email":     r.Email,
		"date":      r.Date,
		"time":      r.TimeSlot,
		"guests":    r.Guests,
		"status":    r.Status,
	}
}

// CreateBooking handles POST /api/v1/bookings - public table reservation.
// A signed-in caller is recorded as the booking's customer.
func CreateBooking(c *gin.Context) {
	var customerID *uint
	if user, err := middleware.GetPrincipal(c); err == nil {
		customerID = &user.ID
	}
	admitBooking(c, customerID)
}

// AdminCreateBooking handles POST /api/v1/admin/bookings - books on behalf of a walk-in guest
func AdminCreateBooking(c *gin.Context) {
	admitBooking(c, nil)
}

func admitBooking(c *gin.Context, customerID *uint) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	service := services.NewReservationService(config.GetDB(), services.GetNotifier(), appLocation())
	reservation, err := service.Admit(c.Request.Context(), services.ReservationRequest{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Date:            req.Date,
		Time:            req.Time,
		Guests:          req.Guests,
		SpecialRequests: req.SpecialRequests,
		CustomerID:      customerID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, bookingSummary(reservation))
}

// GetMyBookings handles GET /api/v1/bookings/user - the caller's reservations, newest first
func GetMyBookings(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	bookings := []models.Reservation{}
	if err := config.GetDB().
		Where("customer_id = ?", user.ID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		respondDatabaseError(c, "Failed to fetch bookings", err)
		return
	}

	respondSuccess(c, http.StatusOK, bookings)
}

// GetBookingQRCode handles GET /api/v1/bookings/:id/qrcode - PNG for the owner or an admin
func GetBookingQRCode(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var reservation models.Reservation
	if err := config.GetDB().First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
			return
		}
		respondDatabaseError(c, "Failed to fetch booking", err)
		return
	}

	// Other customers' bookings are reported as missing
	owner := reservation.CustomerID != nil && *reservation.CustomerID == user.ID
	if !owner && !user.IsAdmin() {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		return
	}

	png, err := services.ReservationQRCode(publicBaseURL(), reservation)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "QR_CODE_ERROR", "Failed to generate QR code")
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
