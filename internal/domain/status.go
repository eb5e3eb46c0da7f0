package domain

import (
	"regexp"
	"strings"
)

// List of order statuses known to the commerce backend
const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
	OrderRefunded   OrderStatus = "REFUNDED"
)

var allowedOrderStatuses = [...]OrderStatus{
	OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled, OrderRefunded,
}

// Valid checks if the OrderStatus is valid
func (s OrderStatus) Valid() bool {
	for _, v := range allowedOrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no rider action can follow the status.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled || s == OrderRefunded
}

// Stage places the status on the delivery flow. Terminal statuses share the
// last stage and unknown ones rank below PENDING.
func (s OrderStatus) Stage() int {
	switch s {
	case OrderPending:
		return 0
	case OrderProcessing:
		return 1
	case OrderShipped:
		return 2
	case OrderDelivered, OrderCancelled, OrderRefunded:
		return 3
	}
	return -1
}

// ParseOrderStatus normalises upstream spelling ("shipped", " Shipped ").
func ParseOrderStatus(s string) OrderStatus {
	return OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
}

type (
	// RiderStatus represents the availability of a rider.
	RiderStatus string
	// RiderTransportType represents the vehicle of a rider.
	RiderTransportType string
)

// List of possible rider statuses
const (
	RiderAvailable RiderStatus = "available"
	RiderBusy      RiderStatus = "busy"
	RiderPaused    RiderStatus = "paused"
)

// List of possible rider transport types
const (
	TransportTypeFoot    RiderTransportType = "on_foot"
	TransportTypeScooter RiderTransportType = "scooter"
	TransportTypeCar     RiderTransportType = "car"
)

var allowedRiderStatuses = [...]RiderStatus{
	RiderAvailable, RiderBusy, RiderPaused,
}

var allowedTransportTypes = [...]RiderTransportType{
	TransportTypeFoot, TransportTypeScooter, TransportTypeCar,
}

// Valid checks if the RiderStatus is valid
func (s RiderStatus) Valid() bool {
	for _, v := range allowedRiderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the RiderTransportType is valid
func (t RiderTransportType) Valid() bool {
	for _, v := range allowedTransportTypes {
		if t == v {
			return true
		}
	}
	return false
}

var rePhone = regexp.MustCompile(`^\+[0-9]{11}$`)

// ValidatePhone validates the phone number format
func ValidatePhone(s string) bool {
	return rePhone.MatchString(s)
}
