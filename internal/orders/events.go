package orders

import (
	"encoding/json"
	"time"
)

const EventOrderCreated = "OrderCreated"

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

// OrderCreatedPayload carries everything the mailer needs to render both the
// customer confirmation and the admin alert without a database round-trip.
type OrderCreatedPayload struct {
	OrderID         int64          `json:"order_id"`
	CustomerName    string         `json:"customer_name"`
	CustomerEmail   string         `json:"customer_email"`
	CustomerPhone   string         `json:"customer_phone"`
	DeliveryAddress string         `json:"delivery_address"`
	DeliveryZone    string         `json:"delivery_zone"`
	DeliveryFee     float64        `json:"delivery_fee"`
	Subtotal        float64        `json:"subtotal"`
	TotalAmount     float64        `json:"total_amount"`
	Items           []ItemSnapshot `json:"items"`
}

type ItemSnapshot struct {
	ProductName     string  `json:"product_name"`
	Quantity        int     `json:"quantity"`
	SelectedSize    string  `json:"selected_size,omitempty"`
	SelectedColor   string  `json:"selected_color,omitempty"`
	PriceAtPurchase float64 `json:"price_at_purchase"`
}
