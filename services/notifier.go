package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/abhiraj-restaurant/restaurant-api/config"
	"github.com/abhiraj-restaurant/restaurant-api/models"
)

// Notification kinds
const (
	NotificationBookingConfirmation = "booking.confirmation"
	NotificationOrderConfirmation   = "order.confirmation"
)

// notifyTimeout bounds a single delivery attempt
const notifyTimeout = 10 * time.Second

// Notification is an outbound message for a customer
type Notification struct {
	Kind      string                 `json:"kind"`
	Recipient string                 `json:"recipient"`
	Subject   string                 `json:"subject"`
	Data      map[string]interface{} `json:"data"`
	CreatedAt time.Time              `json:"createdAt"`
}

// Notifier delivers notifications to an external mailer
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier writes notifications to the process log
type LogNotifier struct{}

// Notify logs the notification and never fails
func (LogNotifier) Notify(ctx context.Context, n Notification) error {
	log.Printf("Sending %s to %s: %s %v", n.Kind, n.Recipient, n.Subject, n.Data)
	return nil
}

var notifierInstance Notifier = LogNotifier{}

// GetNotifier returns the process-wide notifier
func GetNotifier() Notifier {
	return notifierInstance
}

// SetNotifier sets the process-wide notifier (also used by tests)
func SetNotifier(n Notifier) {
	notifierInstance = n
}

// NewNotifier builds the notifier selected by NOTIFIER
func NewNotifier(cfg *config.Config) (Notifier, error) {
	switch cfg.Notifier {
	case config.NotifierAMQP:
		return NewAMQPNotifier(cfg.AMQPURL, cfg.AMQPExchange)
	case config.NotifierKafka:
		return NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	case config.NotifierLog, "":
		return LogNotifier{}, nil
	default:
		return nil, fmt.Errorf("unknown notifier %q", cfg.Notifier)
	}
}

// Dispatch delivers n on a detached goroutine. The caller never waits and
// delivery failures are only logged.
func Dispatch(notifier Notifier, n Notification) {
	if notifier == nil {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("Notifier panicked sending %s to %s: %v", n.Kind, n.Recipient, r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := notifier.Notify(ctx, n); err != nil {
			log.Printf("Failed to send %s notification to %s: %v", n.Kind, n.Recipient, err)
		}
	}()
}

// BookingConfirmation builds the confirmation sent after a reservation is admitted
func BookingConfirmation(r models.Reservation) Notification {
	return Notification{
		Kind:      NotificationBookingConfirmation,
		Recipient: r.Email,
		Subject:   "Booking Confirmation",
		Data: map[string]interface{}{
			"reference":       r.Reference,
			"name":            r.Name,
			"date":            r.Date,
			"time":            r.TimeSlot,
			"guests":          r.Guests,
			"phone":           r.Phone,
			"specialRequests": r.SpecialRequests,
		},
		CreatedAt: time.Now().UTC(),
	}
}

// OrderConfirmation builds the confirmation sent after an order is admitted.
// The order must have its customer loaded.
func OrderConfirmation(o models.Order) Notification {
	items := make([]map[string]interface{}, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, map[string]interface{}{
			"name":     item.Name,
			"quantity": item.Quantity,
			"price":    item.UnitPrice,
		})
	}

	return Notification{
		Kind:      NotificationOrderConfirmation,
		Recipient: o.Customer.Email,
		Subject:   "Order Confirmation",
		Data: map[string]interface{}{
			"reference":             o.Reference,
			"customerName":          o.Customer.Name,
			"items":                 items,
			"totalAmount":           o.TotalAmount,
			"orderType":             o.OrderType,
			"estimatedDeliveryTime": o.EstimatedDeliveryTime,
		},
		CreatedAt: time.Now().UTC(),
	}
}
