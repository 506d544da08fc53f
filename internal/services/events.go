package services

import (
	"encoding/json"
	"time"

	"storefront/internal/models"
)

// EventPublisher delivers serialized events to a message broker. Order events go to
// rabbitmq.OrdersExchange with rabbitmq.OrderCreatedRoutingKey.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// OrderCreatedEvent is published once an order has been committed.
type OrderCreatedEvent struct {
	OrderID   string    `json:"order_id"`
	TxRef     string    `json:"tx_ref"`
	UserID    string    `json:"user_id"`
	Total     string    `json:"total"`
	Items     int       `json:"items"`
	CreatedAt time.Time `json:"created_at"`
}

func newOrderCreatedEvent(o *models.Order) OrderCreatedEvent {
	return OrderCreatedEvent{
		OrderID:   o.ID,
		TxRef:     o.TxRef,
		UserID:    o.UserID,
		Total:     o.Total().StringFixed(2),
		Items:     len(o.Items),
		CreatedAt: o.CreatedAt,
	}
}

// Encode returns the JSON wire form of the event.
func (e OrderCreatedEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}
