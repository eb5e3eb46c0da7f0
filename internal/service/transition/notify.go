package transition

import (
	"fmt"
	"strings"

	"service-rider-platform/internal/domain"
)

type notice struct {
	title   string
	message string
}

func noticeFor(a domain.RiderAction, d domain.Delivery, riderName, reason string) notice {
	rider := strings.TrimSpace(riderName)
	if rider == "" {
		rider = "Your rider"
	}
	order := d.OrderID
	from := d.SupplierName

	switch a {
	case domain.ActionAccept:
		return notice{
			title:   "Order accepted",
			message: fmt.Sprintf("%s accepted your order %s from %s.", rider, order, from),
		}
	case domain.ActionPickup:
		return notice{
			title:   "Order picked up",
			message: fmt.Sprintf("Your order %s from %s was picked up and is on its way.", order, from),
		}
	case domain.ActionDeliver:
		return notice{
			title:   "Order delivered",
			message: fmt.Sprintf("Your order %s from %s has been delivered. Enjoy!", order, from),
		}
	case domain.ActionCancel:
		return notice{
			title:   "Order cancelled",
			message: fmt.Sprintf("Your order %s from %s was cancelled by the rider: %s", order, from, strings.TrimSpace(reason)),
		}
	default:
		return notice{title: "Order updated", message: fmt.Sprintf("Your order %s was updated.", order)}
	}
}

func revertNotice(d domain.Delivery) notice {
	return notice{
		title:   "Order update reverted",
		message: fmt.Sprintf("The last update of your order %s from %s could not be completed.", d.OrderID, d.SupplierName),
	}
}
