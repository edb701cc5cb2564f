// Package store holds the source side of the order example: the shapes an
// online store keeps for customers and their orders.
package store

import (
	"time"
)

// Address is a postal address.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Customer places orders.
type Customer struct {
	ID       int64    `json:"id"`
	FullName string   `json:"full_name"`
	Emails   []string `json:"emails"`
	Shipping *Address `json:"shipping"` // nil when the customer never entered one
}

// OrderItem is one product line of an order. Prices are in cents.
type OrderItem struct {
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitCents int64  `json:"unit_cents"`
}

// Order is a customer purchase.
type Order struct {
	ID        int64       `json:"id"`
	Status    OrderStatus `json:"status"`
	Customer  *Customer   `json:"customer"`
	Items     []OrderItem `json:"items"`
	Notes     []string    `json:"notes,omitempty"`
	OrderedAt time.Time   `json:"ordered_at"`
}

// OrderStatus is the life-cycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPaid      OrderStatus = "paid"
	StatusShipped   OrderStatus = "shipped"
	StatusCancelled OrderStatus = "cancelled"
)

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}
