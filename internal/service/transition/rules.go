package transition

import "service-rider-platform/internal/domain"

type rule struct {
	from []domain.OrderStatus
	to   domain.OrderStatus
}

var rules = map[domain.RiderAction]rule{
	domain.ActionAccept:  {from: []domain.OrderStatus{domain.OrderPending}, to: domain.OrderProcessing},
	domain.ActionPickup:  {from: []domain.OrderStatus{domain.OrderProcessing}, to: domain.OrderShipped},
	domain.ActionDeliver: {from: []domain.OrderStatus{domain.OrderShipped}, to: domain.OrderDelivered},
	domain.ActionCancel: {
		from: []domain.OrderStatus{domain.OrderPending, domain.OrderProcessing, domain.OrderShipped},
		to:   domain.OrderCancelled,
	},
}

func (r rule) allows(s domain.OrderStatus) bool {
	for _, f := range r.from {
		if f == s {
			return true
		}
	}
	return false
}

// Target returns the status an action moves a piece to.
func Target(a domain.RiderAction) (domain.OrderStatus, bool) {
	r, ok := rules[a]
	return r.to, ok
}

// Allowed reports whether action a may be applied to a piece in status s.
func Allowed(a domain.RiderAction, s domain.OrderStatus) bool {
	r, ok := rules[a]
	return ok && r.allows(s)
}

// riderStatusAfter is the rider availability implied by a completed action.
func riderStatusAfter(a domain.RiderAction) (domain.RiderStatus, bool) {
	switch a {
	case domain.ActionAccept:
		return domain.RiderBusy, true
	case domain.ActionDeliver, domain.ActionCancel:
		return domain.RiderAvailable, true
	default:
		return "", false
	}
}
