// Package splitter turns a multi-supplier order into per-supplier delivery pieces.
package splitter

import (
	"strings"
	"time"

	"service-rider-platform/internal/domain"
	"service-rider-platform/internal/money"
)

const defaultCustomer = "Customer"

type group struct {
	supplierID string
	info       supplierInfo
	items      []domain.OrderItem
}

// BySupplier partitions the order items by supplier id and returns one Delivery per
// supplier, in first-seen order. Missing upstream data degrades to placeholders.
func BySupplier(order domain.Order, now time.Time) []domain.Delivery {
	groups := groupItems(order.Items)
	if len(groups) == 0 {
		return nil
	}

	orderNumber := order.OrderNumber
	if orderNumber == "" {
		orderNumber = order.ID
	}
	customer, customerID := customerOf(order.User)
	dropoff := FormatAddress(order.Address)
	expiresIn := ExpiresIn(order.CreatedAt, now)

	out := make([]domain.Delivery, 0, len(groups))
	for i, g := range groups {
		qty, subtotal := totals(g.items)
		payout := subtotal * domain.PayoutRate

		out = append(out, domain.Delivery{
			ID:                    domain.DeliveryID(order.ID, g.supplierID),
			OrderID:               orderNumber,
			OrderRecordID:         order.ID,
			SupplierID:            g.supplierID,
			SupplierName:          g.info.name,
			Customer:              customer,
			CustomerID:            customerID,
			Pickup:                FormatAddress(g.info.address),
			Dropoff:               dropoff,
			Payout:                money.Peso(payout),
			PayoutAmount:          payout,
			Subtotal:              money.Peso(subtotal),
			SubtotalAmount:        subtotal,
			Distance:              Distance(g.info.address, order.Address),
			ExpiresIn:             expiresIn,
			Items:                 qty,
			IsPartialDelivery:     len(groups) > 1,
			TotalSuppliersInOrder: len(groups),
			SupplierIndex:         i + 1,
			SupplierItems:         g.items,
			Status:                order.PieceStatus(g.items),
			CreatedAt:             order.CreatedAt,
		})
	}
	return out
}

// Find returns the piece of the order that belongs to supplierID.
func Find(deliveries []domain.Delivery, supplierID string) (domain.Delivery, bool) {
	for _, d := range deliveries {
		if d.SupplierID == supplierID {
			return d, true
		}
	}
	return domain.Delivery{}, false
}

func groupItems(items []domain.OrderItem) []*group {
	var (
		ordered []*group
		byID    = make(map[string]*group)
	)
	for _, it := range items {
		id := it.SupplierID
		if id == "" {
			id = domain.UnknownSupplierID
		}
		g, ok := byID[id]
		if !ok {
			// supplier info is taken from the first item only
			g = &group{supplierID: id, info: resolveSupplier(it)}
			byID[id] = g
			ordered = append(ordered, g)
		}
		g.items = append(g.items, it)
	}
	return ordered
}

func totals(items []domain.OrderItem) (qty int, subtotal float64) {
	for _, it := range items {
		qty += it.Quantity
		subtotal += it.Price * float64(it.Quantity)
	}
	return qty, subtotal
}

func customerOf(u *domain.User) (name, id string) {
	if u == nil {
		return defaultCustomer, ""
	}
	name = strings.TrimSpace(u.FirstName)
	if name == "" {
		name = defaultCustomer
	}
	return name, u.ID
}
