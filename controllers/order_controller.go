package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/abhiraj-restaurant/restaurant-api/config"
	"github.com/abhiraj-restaurant/restaurant-api/models"
	"github.com/abhiraj-restaurant/restaurant-api/services"
)

// OrderItemRequest is one cart line in a checkout request
type OrderItemRequest struct {
	MenuItem uint `json:"menuItem"`
	Quantity int  `json:"quantity"`
}

// CreateOrderRequest represents the request body for checking out a cart.
// Client prices are ignored; the catalog is authoritative.
type CreateOrderRequest struct {
	Items               []OrderItemRequest `json:"items"`
	TotalAmount         *float64           `json:"totalAmount"`
	OrderType           string             `json:"orderType"`
	PaymentMethod       string             `json:"paymentMethod"`
	DeliveryAddress     *models.Address    `json:"deliveryAddress"`
	SpecialInstructions string             `json:"specialInstructions"`
}

// CreateOrder handles POST /api/v1/orders - checks out the caller's cart
func CreateOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	lines := make([]services.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, services.OrderLine{MenuItemID: item.MenuItem, Quantity: item.Quantity})
	}

	service := services.NewOrderService(config.GetDB(), services.GetNotifier())
	order, err := service.Admit(c.Request.Context(), services.OrderRequest{
		CustomerID:          user.ID,
		Items:               lines,
		TotalAmount:         req.TotalAmount,
		OrderType:           req.OrderType,
		PaymentMethod:       req.PaymentMethod,
		DeliveryAddress:     req.DeliveryAddress,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, order)
}

// GetMyOrders handles GET /api/v1/orders/user - the caller's orders, newest first
func GetMyOrders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	orders := []models.Order{}
	if err := config.GetDB().
		Preload("Items").
		Where("customer_id = ?", user.ID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		respondDatabaseError(c, "Failed to fetch orders", err)
		return
	}

	respondSuccess(c, http.StatusOK, orders)
}

// GetOrder handles GET /api/v1/orders/:id - visible to its owner only
func GetOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	// Scoping the query to the caller makes other customers' orders indistinguishable from missing ones
	var order models.Order
	err := config.GetDB().
		Preload("Customer").
		Preload("Items").
		Where("customer_id = ?", user.ID).
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
			return
		}
		respondDatabaseError(c, "Failed to fetch order", err)
		return
	}

	respondSuccess(c, http.StatusOK, order)
}
