// Package orders defines the checkout payload, the confirmation the API returns
// and the sample order history.
package orders

import (
	"strconv"
	"time"

	"github.com/Fashion-Store/Aradaa/internal/cart"
)

const idPrefix = "ORD"

// NewID returns "ORD" followed by the Unix time in milliseconds.
func NewID(now time.Time) string {
	return idPrefix + strconv.FormatInt(now.UnixMilli(), 10)
}

// FromCart builds an order from the cart lines. Total is computed from the lines.
func FromCart(items []cart.Item, customer Customer, addr Address) Order {
	o := Order{
		Items:           make([]Item, 0, len(items)),
		Customer:        customer,
		ShippingAddress: addr,
		PaymentMethod:   PaymentCOD,
	}
	for _, it := range items {
		o.Items = append(o.Items, Item{
			ProductID: it.ProductID,
			Name:      it.Name,
			Size:      it.Size,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	o.Total = o.ItemsTotal()
	return o
}

// ItemsTotal sums price × quantity over the lines.
func (o Order) ItemsTotal() int64 {
	var total int64
	for _, it := range o.Items {
		total += it.Price * int64(it.Quantity)
	}
	return total
}

// ItemCount sums the line quantities.
func (o Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// Confirm returns the success response for a freshly placed order.
func Confirm(orderID string) Confirmation {
	return Confirmation{
		Success: true,
		OrderID: orderID,
		Message: "Order placed successfully",
	}
}

// Event builds the queue message for a placed order.
func Event(o Order, orderID string, placedAt time.Time) PlacedEvent {
	return PlacedEvent{
		OrderID:       orderID,
		CustomerName:  o.Customer.Name,
		CustomerEmail: o.Customer.Email,
		ItemCount:     o.ItemCount(),
		Total:         o.Total,
		PlacedAt:      placedAt.UTC(),
	}
}

// SampleHistory returns the demo order history. latestID, when set, replaces the
// id of the most recent order so a just-placed order shows up first.
func SampleHistory(now time.Time, latestID string) []Summary {
	if latestID == "" {
		latestID = "ORD1700123456"
	}
	return []Summary{
		{
			ID:         latestID,
			Date:       now.Format(time.DateOnly),
			Status:     StatusPending,
			Total:      25000,
			Items:      2,
			TrackingID: "TRK001",
			Products: []Product{
				{Name: "Classic Black Dress", Size: "M", Quantity: 1, Price: 12500},
				{Name: "Silk Evening Gown", Size: "L", Quantity: 1, Price: 12500},
			},
		},
		{
			ID:         "ORD1699987654",
			Date:       "2024-11-10",
			Status:     StatusDelivered,
			Total:      18500,
			Items:      1,
			TrackingID: "TRK002",
			Products: []Product{
				{Name: "Professional Blazer Set", Size: "S", Quantity: 1, Price: 18500},
			},
		},
		{
			ID:         "ORD1699876543",
			Date:       "2024-11-05",
			Status:     StatusShipped,
			Total:      8500,
			Items:      1,
			TrackingID: "TRK003",
			Products: []Product{
				{Name: "Floral Summer Dress", Size: "M", Quantity: 1, Price: 8500},
			},
		},
	}
}
