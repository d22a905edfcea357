package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/abhiraj-restaurant/restaurant-api/models"
	"gorm.io/gorm"
)

// Fixed fulfillment offsets from admission time
const (
	DeliveryLead = 60 * time.Minute
	PickupLead   = 30 * time.Minute
)

// OrderLine is one cart entry
type OrderLine struct {
	MenuItemID uint
	Quantity   int
}

// OrderRequest is the input to order admission
type OrderRequest struct {
	CustomerID          uint
	Items               []OrderLine
	TotalAmount         *float64 // declared by the client, display only
	OrderType           string
	PaymentMethod       string
	DeliveryAddress     *models.Address
	SpecialInstructions string
}

// OrderService admits checked-out carts
type OrderService struct {
	db       *gorm.DB
	notifier Notifier
	now      func() time.Time
}

// NewOrderService creates an order service using the system clock
func NewOrderService(db *gorm.DB, notifier Notifier) *OrderService {
	return &OrderService{db: db, notifier: notifier, now: time.Now}
}

// WithClock replaces the clock used to stamp the estimated fulfillment time
func (s *OrderService) WithClock(now func() time.Time) *OrderService {
	s.now = now
	return s
}

// FulfillmentLead returns the fixed preparation offset for an order type
func FulfillmentLead(orderType string) time.Duration {
	if orderType == models.OrderTypeDelivery {
		return DeliveryLead
	}
	return PickupLead
}

// Admit validates req against the catalog and persists a pending order.
// Unit prices and the total come from the catalog, never from the client.
func (s *OrderService) Admit(ctx context.Context, req OrderRequest) (*models.Order, error) {
	if req.CustomerID == 0 {
		return nil, &ServiceError{Kind: KindUnauthenticated, Code: CodeUnauthenticated, Message: "Authentication required"}
	}

	req.OrderType = strings.TrimSpace(req.OrderType)
	req.PaymentMethod = strings.TrimSpace(req.PaymentMethod)

	if missing := missingOrderFields(req); len(missing) > 0 {
		return nil, missingFieldError("Missing required order information", missing)
	}

	if !models.IsValidOrderType(req.OrderType) {
		return nil, invalidFieldError(CodeInvalidField, "orderType must be one of: "+strings.Join(models.OrderTypes, ", "))
	}
	if !models.IsValidPaymentMethod(req.PaymentMethod) {
		return nil, invalidFieldError(CodeInvalidField, "paymentMethod must be one of: "+strings.Join(models.PaymentMethods, ", "))
	}
	for _, line := range req.Items {
		if line.MenuItemID == 0 {
			return nil, invalidFieldError(CodeInvalidField, "Every item must reference a menu item")
		}
		if line.Quantity < 1 || line.Quantity > models.MaxQuantity {
			return nil, invalidFieldError(CodeInvalidField,
				fmt.Sprintf("Item quantity must be between 1 and %d", models.MaxQuantity))
		}
	}

	var address models.Address
	if req.OrderType == models.OrderTypeDelivery {
		if req.DeliveryAddress == nil ||
			strings.TrimSpace(req.DeliveryAddress.Street) == "" ||
			strings.TrimSpace(req.DeliveryAddress.City) == "" {
			return nil, &ServiceError{
				Kind:    KindMissingField,
				Code:    CodeMissingAddress,
				Message: "Delivery address is required for delivery orders",
			}
		}
		address = *req.DeliveryAddress
	}

	db := s.db.WithContext(ctx)

	catalog, err := s.availableItems(db, req.Items)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	var totalCents int64
	for _, line := range req.Items {
		menuItem := catalog[line.MenuItemID]
		items = append(items, models.OrderItem{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Quantity:   line.Quantity,
			UnitPrice:  menuItem.Price,
		})
		totalCents += toCents(menuItem.Price) * int64(line.Quantity)
	}
	total := float64(totalCents) / 100

	if toCents(*req.TotalAmount) != totalCents {
		log.Printf("Declared order total %.2f differs from catalog total %.2f for customer %d",
			*req.TotalAmount, total, req.CustomerID)
	}

	admittedAt := s.now()
	order := models.Order{
		CustomerID:            req.CustomerID,
		Items:                 items,
		TotalAmount:           total,
		Status:                models.OrderPending,
		PaymentStatus:         models.PaymentPending,
		PaymentMethod:         req.PaymentMethod,
		OrderType:             req.OrderType,
		DeliveryAddress:       address,
		EstimatedDeliveryTime: admittedAt.Add(FulfillmentLead(req.OrderType)),
		SpecialInstructions:   strings.TrimSpace(req.SpecialInstructions),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, internalError("Failed to create order", err)
	}

	if err := db.Preload("Customer").Preload("Items").First(&order, order.ID).Error; err != nil {
		return nil, internalError("Failed to load order", err)
	}

	Dispatch(s.notifier, OrderConfirmation(order))

	return &order, nil
}

// availableItems loads the referenced catalog entries and rejects the whole
// cart when any identifier is missing or unavailable
func (s *OrderService) availableItems(db *gorm.DB, lines []OrderLine) (map[uint]models.MenuItem, error) {
	ids := make([]uint, 0, len(lines))
	seen := make(map[uint]bool, len(lines))
	for _, line := range lines {
		if !seen[line.MenuItemID] {
			seen[line.MenuItemID] = true
			ids = append(ids, line.MenuItemID)
		}
	}

	var found []models.MenuItem
	if err := db.Where("id IN ? AND is_available = ?", ids, true).Find(&found).Error; err != nil {
		return nil, internalError("Failed to load menu items", err)
	}

	catalog := make(map[uint]models.MenuItem, len(found))
	for _, item := range found {
		catalog[item.ID] = item
	}

	var unavailable []uint
	for _, id := range ids {
		if _, ok := catalog[id]; !ok {
			unavailable = append(unavailable, id)
		}
	}
	if len(unavailable) > 0 {
		sort.Slice(unavailable, func(i, j int) bool { return unavailable[i] < unavailable[j] })
		return nil, &ServiceError{
			Kind:    KindUnavailable,
			Code:    CodeItemUnavailable,
			Message: "Some items are no longer available",
			Details: map[string]interface{}{"unavailableItems": unavailable},
		}
	}

	return catalog, nil
}

func missingOrderFields(req OrderRequest) []string {
	var missing []string
	if len(req.Items) == 0 {
		missing = append(missing, "items")
	}
	if req.TotalAmount == nil {
		missing = append(missing, "totalAmount")
	}
	if req.OrderType == "" {
		missing = append(missing, "orderType")
	}
	if req.PaymentMethod == "" {
		missing = append(missing, "paymentMethod")
	}
	return missing
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
