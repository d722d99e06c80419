package orders

import "time"

type Order struct {
	ID              int64       `json:"id"`
	CustomerName    string      `json:"customerName"`
	CustomerEmail   string      `json:"customerEmail"`
	CustomerPhone   string      `json:"customerPhone"`
	DeliveryAddress string      `json:"deliveryAddress"`
	DeliveryZone    string      `json:"deliveryZone"`
	DeliveryFee     float64     `json:"deliveryFee"`
	Subtotal        float64     `json:"subtotal"`
	TotalAmount     float64     `json:"totalAmount"`
	Status          Status      `json:"status"`
	Items           []OrderItem `json:"items"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// OrderItem snapshots the product name and unit price at purchase time, so
// later catalog edits never change what the customer agreed to pay.
type OrderItem struct {
	ID              int64   `json:"id"`
	OrderID         int64   `json:"orderId"`
	ProductID       int64   `json:"productId"`
	ProductName     string  `json:"productName"`
	Quantity        int     `json:"quantity"`
	SelectedSize    string  `json:"selectedSize,omitempty"`
	SelectedColor   string  `json:"selectedColor,omitempty"`
	PriceAtPurchase float64 `json:"priceAtPurchase"`
}

// Stats are the dashboard aggregates. All counters are zero on an empty
// store; an empty store is not an error.
type Stats struct {
	TotalOrders     int64   `json:"totalOrders"`
	PendingOrders   int64   `json:"pendingOrders"`
	DeliveredOrders int64   `json:"deliveredOrders"`
	Revenue         float64 `json:"revenue"`
	ProductCount    int64   `json:"productCount"`
	UserCount       int64   `json:"userCount"`
}
