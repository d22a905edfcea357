package models

// Roles
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Reservation statuses
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
	ReservationCompleted = "completed"
)

// Order statuses
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// Payment statuses
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// Payment methods
const (
	PaymentMethodCard = "card"
	PaymentMethodCash = "cash"
	PaymentMethodUPI  = "upi"
)

// Fulfillment types
const (
	OrderTypeDelivery = "delivery"
	OrderTypePickup   = "pickup"
)

// Menu categories
const (
	CategoryStarters  = "starters"
	CategoryMains     = "mains"
	CategoryDesserts  = "desserts"
	CategoryBeverages = "beverages"
)

// Party size limits for a single reservation
const (
	MinGuests = 1
	MaxGuests = 12
)

// MaxQuantity caps a single order line
const MaxQuantity = 100

var (
	ReservationStatuses = []string{ReservationPending, ReservationConfirmed, ReservationCancelled, ReservationCompleted}
	OrderStatuses       = []string{OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderDelivered, OrderCancelled}
	PaymentStatuses     = []string{PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded}
	PaymentMethods      = []string{PaymentMethodCard, PaymentMethodCash, PaymentMethodUPI}
	OrderTypes          = []string{OrderTypeDelivery, OrderTypePickup}
	Categories          = []string{CategoryStarters, CategoryMains, CategoryDesserts, CategoryBeverages}

	// TimeSlots are the bookable half-hour seatings, lunch then dinner.
	TimeSlots = []string{
		"11:00 AM", "11:30 AM", "12:00 PM", "12:30 PM",
		"1:00 PM", "1:30 PM", "2:00 PM", "2:30 PM",
		"6:00 PM", "6:30 PM", "7:00 PM", "7:30 PM",
		"8:00 PM", "8:30 PM", "9:00 PM", "9:30 PM",
	}

	// OccupyingStatuses are the reservation statuses that hold a slot.
	OccupyingStatuses = []string{ReservationPending, ReservationConfirmed}
)

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func IsValidReservationStatus(s string) bool { return contains(ReservationStatuses, s) }
func IsValidOrderStatus(s string) bool       { return contains(OrderStatuses, s) }
func IsValidPaymentStatus(s string) bool     { return contains(PaymentStatuses, s) }
func IsValidPaymentMethod(s string) bool     { return contains(PaymentMethods, s) }
func IsValidOrderType(s string) bool         { return contains(OrderTypes, s) }
func IsValidCategory(s string) bool          { return contains(Categories, s) }
func IsValidTimeSlot(s string) bool          { return contains(TimeSlots, s) }
