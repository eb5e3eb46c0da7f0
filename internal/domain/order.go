package domain

import "time"

// OrderStatus is the lifecycle status of an order or of one of its items.
type OrderStatus string

// Order is a customer purchase as read from the commerce backend.
type Order struct {
	ID          string
	OrderNumber string
	Status      OrderStatus
	Total       float64
	CreatedAt   time.Time
	User        *User
	Address     *Address
	Items       []OrderItem
	Payments    []Payment
}

// OrderItem is one line of an order. SupplierID may be empty upstream.
type OrderItem struct {
	ID         string
	SupplierID string
	Quantity   int
	Price      float64
	Status     OrderStatus
	Product    Product
	Supplier   []Supplier
}

// Product is the catalogue entry an item refers to.
type Product struct {
	Name string
	SKU  string
}

// Supplier is the merchant fulfilling an item.
type Supplier struct {
	ID        string
	FirstName string
	Addresses []Address
}

// User is the customer who placed the order.
type User struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
}

// Address is a postal address. ZipCode is kept as text, it is parsed on demand.
type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

// Payment is a payment attached to an order.
type Payment struct {
	ID     string
	Method string
	Status string
	Amount float64
}

// ItemStatus returns the item's own status, or the order status when the item has none.
func (o Order) ItemStatus(it OrderItem) OrderStatus {
	if it.Status != "" {
		return it.Status
	}
	return o.Status
}

// PieceStatus is the least advanced status among items. A piece left half
// moved keeps accepting the action that completes it.
func (o Order) PieceStatus(items []OrderItem) OrderStatus {
	if len(items) == 0 {
		return o.Status
	}
	st := o.ItemStatus(items[0])
	for _, it := range items[1:] {
		if s := o.ItemStatus(it); s.Stage() < st.Stage() {
			st = s
		}
	}
	return st
}

// ItemStatusUpdate carries the arguments of the updateOrderStatus mutation.
type ItemStatusUpdate struct {
	ItemID     string
	RiderID    string
	SupplierID string
	UserID     string
	Status     OrderStatus
	Title      string
	Message    string
}
