package models

import "time"

// OrderCreatedEvent is published to Kafka after an order is committed.
type OrderCreatedEvent struct {
	EventType     string    `json:"event_type"`
	OrderID       string    `json:"order_id"`
	OrderNumber   string    `json:"order_number"`
	CustomerEmail string    `json:"customer_email"`
	Total         string    `json:"total"`
	ItemCount     int       `json:"item_count"`
	Timestamp     time.Time `json:"timestamp"`
}

// OrderStatusChangedEvent is published to Kafka when an order's status is
// rewritten through the status endpoint.
type OrderStatusChangedEvent struct {
	EventType string    `json:"event_type"`
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
