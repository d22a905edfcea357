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

// UpdateOrderRequest represents the request body for an administrative order update
type UpdateOrderRequest struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
}

// ListOrders handles GET /api/v1/admin/orders - optional ?status= filter
func ListOrders(c *gin.Context) {
	query := config.GetDB().Preload("Customer").Preload("Items").Order("created_at DESC")

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		if !models.IsValidOrderStatus(status) {
			respondError(c, http.StatusBadRequest, services.CodeInvalidStatus,
				"status must be one of: "+strings.Join(models.OrderStatuses, ", "))
			return
		}
		query = query.Where("status = ?", status)
	}

	orders := []models.Order{}
	if err := query.Find(&orders).Error; err != nil {
		respondDatabaseError(c, "Failed to fetch orders", err)
		return
	}

	respondSuccess(c, http.StatusOK, orders)
}

// AdminGetOrder handles GET /api/v1/admin/orders/:id
func AdminGetOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var order models.Order
	if err := config.GetDB().Preload("Customer").Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
			return
		}
		respondDatabaseError(c, "Failed to fetch order", err)
		return
	}

	respondSuccess(c, http.StatusOK, order)
}

// UpdateOrder handles PUT /api/v1/admin/orders/:id - sets status and/or payment status
func UpdateOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := services.NewStatusService(config.GetDB()).SetOrderStatus(c.Request.Context(), id, req.Status, req.PaymentStatus)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, order)
}

// DeleteOrder handles DELETE /api/v1/admin/orders/:id
func DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result := config.GetDB().Delete(&models.Order{}, id)
	if result.Error != nil {
		respondDatabaseError(c, "Failed to delete order", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order deleted",
	})
}
