package services

import (
	"fmt"
	"log"

	"agromarket/internal/models"
	"agromarket/pkg/notify"
)

// Notifier surfaces success events to users. It is fire-and-forget: errors
// are logged and never affect the operation that triggered them.
type Notifier interface {
	OrderPlaced(order *models.Order)
	BookingRequested(booking *models.EquipmentBooking)
	BookingUpdated(booking *models.EquipmentBooking)
}

type webhookNotifier struct {
	client *notify.Client
}

func NewNotifier(client *notify.Client) Notifier {
	return &webhookNotifier{client: client}
}

func (n *webhookNotifier) OrderPlaced(order *models.Order) {
	n.send(notify.Event{
		Type:      "order_placed",
		UserID:    order.UserID,
		Message:   fmt.Sprintf("Order placed successfully, total %.2f", order.TotalAmount),
		Reference: order.OrderRef,
	})
}

func (n *webhookNotifier) BookingRequested(booking *models.EquipmentBooking) {
	n.send(notify.Event{
		Type:    "booking_requested",
		UserID:  booking.BorrowerID,
		Message: "Equipment booking request sent",
	})
}

func (n *webhookNotifier) BookingUpdated(booking *models.EquipmentBooking) {
	n.send(notify.Event{
		Type:    "booking_" + string(booking.Status),
		UserID:  booking.BorrowerID,
		Message: fmt.Sprintf("Booking %s", booking.Status),
	})
}

func (n *webhookNotifier) send(event notify.Event) {
	if err := n.client.Send(event); err != nil {
		log.Printf("Warning: failed to deliver %s notification: %v", event.Type, err)
	}
}
