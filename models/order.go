package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address is the delivery destination of an order
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Phone   string `json:"phone"`
}

// Order represents a checked-out cart
type Order struct {
	ID                    uint           `gorm:"primaryKey" json:"id"`
	Reference             string         `gorm:"uniqueIndex;not null" json:"reference"`
	CustomerID            uint           `gorm:"not null;index" json:"customerId"`
	Customer              User           `gorm:"foreignKey:CustomerID" json:"customer"`
	Items                 []OrderItem    `gorm:"foreignKey:OrderID" json:"items"`
	TotalAmount           float64        `gorm:"not null" json:"totalAmount"`
	Status                string         `gorm:"not null;default:'pending';index" json:"status"` // pending, confirmed, preparing, ready, delivered, cancelled
	PaymentStatus         string         `gorm:"not null;default:'pending'" json:"paymentStatus"` // pending, paid, failed, refunded
	PaymentMethod         string         `gorm:"not null" json:"paymentMethod"`                   // card, cash, upi
	OrderType             string         `gorm:"not null" json:"orderType"`                       // delivery, pickup
	DeliveryAddress       Address        `gorm:"embedded;embeddedPrefix:delivery_" json:"deliveryAddress"`
	EstimatedDeliveryTime time.Time      `json:"estimatedDeliveryTime"`
	SpecialInstructions   string         `json:"specialInstructions"`
	CreatedAt             time.Time      `json:"createdAt"`
	UpdatedAt             time.Time      `json:"updatedAt"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate assigns the public order reference
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.Reference == "" {
		o.Reference = uuid.NewString()
	}
	return nil
}

// OrderItem is a line of an order with the catalog name and price captured
// at checkout. MenuItemID is deliberately not a foreign key.
type OrderItem struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	OrderID    uint    `gorm:"not null;index" json:"orderId"`
	MenuItemID uint    `gorm:"not null;index" json:"menuItem"`
	Name       string  `gorm:"not null" json:"name"`
	Quantity   int     `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice  float64 `gorm:"not null" json:"price"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// LineTotal is the quantity times the captured unit price
func (i OrderItem) LineTotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}
