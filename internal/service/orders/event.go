package orders

import (
	"time"

	"service-rider-platform/internal/domain"
)

// Event is a single order event
type Event struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// List of offer message types
const (
	OfferTypeOffered   = "delivery.offered"
	OfferTypeWithdrawn = "delivery.withdrawn"
)

// Offer is a message about one supplier piece.
type Offer struct {
	Type                  string             `json:"type"`
	DeliveryID            string             `json:"delivery_id"`
	OrderID               string             `json:"order_id"`
	SupplierID            string             `json:"supplier_id"`
	SupplierName          string             `json:"supplier_name,omitempty"`
	Status                domain.OrderStatus `json:"status"`
	Pickup                string             `json:"pickup,omitempty"`
	Dropoff               string             `json:"dropoff,omitempty"`
	Distance              string             `json:"distance,omitempty"`
	Payout                string             `json:"payout,omitempty"`
	PayoutAmount          float64            `json:"payout_amount,omitempty"`
	ExpiresIn             string             `json:"expires_in,omitempty"`
	IsPartialDelivery     bool               `json:"is_partial_delivery"`
	SupplierIndex         int                `json:"supplier_index"`
	TotalSuppliersInOrder int                `json:"total_suppliers_in_order"`
	OccurredAt            time.Time          `json:"occurred_at"`
}

func offerOf(kind string, d domain.Delivery, now time.Time) Offer {
	o := Offer{
		Type:                  kind,
		DeliveryID:            d.ID,
		OrderID:               d.OrderRecordID,
		SupplierID:            d.SupplierID,
		Status:                d.Status,
		IsPartialDelivery:     d.IsPartialDelivery,
		SupplierIndex:         d.SupplierIndex,
		TotalSuppliersInOrder: d.TotalSuppliersInOrder,
		OccurredAt:            now,
	}
	if kind == OfferTypeOffered {
		o.SupplierName = d.SupplierName
		o.Pickup = d.Pickup
		o.Dropoff = d.Dropoff
		o.Distance = d.Distance
		o.Payout = d.Payout
		o.PayoutAmount = d.PayoutAmount
		o.ExpiresIn = d.ExpiresIn
	}
	return o
}
