// Package warehouse holds the target side of the order example: the
// shipment manifest a warehouse consumes.
package warehouse

// Recipient is who a shipment is delivered to.
type Recipient struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// Line is one product line of a shipment.
type Line struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// Shipment is the manifest built from a paid order.
type Shipment struct {
	OrderID   int64     `json:"order_id"`
	Status    string    `json:"status"`
	Customer  Recipient `json:"customer"`
	SKUs      []string  `json:"skus"`
	Lines     []Line    `json:"lines"`
	Parcels   int       `json:"parcels"`
	Priority  string    `json:"priority"`
}
