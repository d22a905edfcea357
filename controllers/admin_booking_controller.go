package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/abhiraj-restaurant/restaurant-api/config"
	"github.com/abhiraj-restaurant/restaurant-api/models"
	"github.com/abhiraj-restaurant/restaurant-api/services"
)

// UpdateStatusRequest represents the request body for changing a booking's status
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ListBookings handles GET /api/v1/admin/bookings - optional ?status= and ?date= filters
func ListBookings(c *gin.Context) {
	query := config.GetDB().Order("booking_date DESC, created_at DESC")

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		if !models.IsValidReservationStatus(status) {
			respondError(c, http.StatusBadRequest, services.CodeInvalidStatus,
				"status must be one of: "+strings.Join(models.ReservationStatuses, ", "))
			return
		}
		query = query.Where("status = ?", status)
	}
	if date := strings.TrimSpace(c.Query("date")); date != "" {
		query = query.Where("booking_date = ?", date)
	}

	bookings := []models.Reservation{}
	if err := query.Find(&bookings).Error; err != nil {
		respondDatabaseError(c, "Failed to fetch bookings", err)
		return
	}

	respondSuccess(c, http.StatusOK, bookings)
}

// GetBooking handles GET /api/v1/admin/bookings/:id
func GetBooking(c *gin.Context) {
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

	respondSuccess(c, http.StatusOK, reservation)
}

// UpdateBookingStatus handles PUT /api/v1/admin/bookings/:id - overwrites the status
func UpdateBookingStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	reservation, err := services.NewStatusService(config.GetDB()).SetReservationStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, reservation)
}

// DeleteBooking handles DELETE /api/v1/admin/bookings/:id
func DeleteBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result := config.GetDB().Delete(&models.Reservation{}, id)
	if result.Error != nil {
		respondDatabaseError(c, "Failed to delete booking", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking deleted",
	})
}
