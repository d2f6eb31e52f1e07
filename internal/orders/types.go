package orders

import "time"

// Order history statuses shown to the shopper.
const (
	StatusPending   = "pending"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
)

// PaymentCOD is cash on delivery, the only payment method the store offers.
const PaymentCOD = "cod"

// Item is one ordered line. Price is per unit in minor currency units.
type Item struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Order is the checkout payload sent to POST /api/orders. It is never stored.
type Order struct {
	Items           []Item   `json:"items"`
	Customer        Customer `json:"customer"`
	ShippingAddress Address  `json:"shippingAddress"`
	PaymentMethod   string   `json:"paymentMethod"`
	Total           int64    `json:"total"`
}

// Confirmation is the server's answer to a placed order.
type Confirmation struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

// Summary is one row of the order history page.
type Summary struct {
	ID         string    `json:"id"`
	Date       string    `json:"date"`
	Status     string    `json:"status"`
	Total      int64     `json:"total"`
	Items      int       `json:"items"`
	TrackingID string    `json:"trackingId"`
	Products   []Product `json:"products"`
}

// Product is a line inside a Summary.
type Product struct {
	Name     string `json:"name"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

// PlacedEvent is published to the orders queue after a successful checkout.
type PlacedEvent struct {
	OrderID        string    `json:"order_id"`
	IdempotencyKey string    `json:"idempotency_key,omitempty"`
	CorrelationID  string    `json:"correlation_id,omitempty"`
	CustomerName   string    `json:"customer_name"`
	CustomerEmail  string    `json:"customer_email"`
	ItemCount      int       `json:"item_count"`
	Total          int64     `json:"total"`
	PlacedAt       time.Time `json:"placed_at"`
}
