package domain

import "time"

const (
	// PayoutRate is the rider commission on a supplier subtotal.
	PayoutRate = 0.30
	// OfferWindow is how long a new order stays claimable.
	OfferWindow = 2 * time.Minute
	// UnknownSupplierID groups items that carry no supplier id.
	UnknownSupplierID = "unknown"
)

// Delivery is one supplier's portion of one order as seen by a rider.
// It is derived on every read and never stored.
type Delivery struct {
	ID                    string
	OrderID               string
	OrderRecordID         string
	SupplierID            string
	SupplierName          string
	Customer              string
	CustomerID            string
	Pickup                string
	Dropoff               string
	Payout                string
	PayoutAmount          float64
	Subtotal              string
	SubtotalAmount        float64
	Distance              string
	ExpiresIn             string
	Items                 int
	IsPartialDelivery     bool
	TotalSuppliersInOrder int
	SupplierIndex         int
	SupplierItems         []OrderItem
	Status                OrderStatus
	CreatedAt             time.Time
}

// DeliveryID builds the composite id of a supplier piece.
func DeliveryID(orderID, supplierID string) string {
	return orderID + "-" + supplierID
}
