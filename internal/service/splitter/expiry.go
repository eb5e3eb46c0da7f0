package splitter

import (
	"strconv"
	"time"

	"service-rider-platform/internal/domain"
)

// ExpiresIn renders the time left in the offer window of an order created at createdAt.
// The result is clamped at "0s" and is not a live countdown.
func ExpiresIn(createdAt, now time.Time) string {
	if createdAt.IsZero() {
		return "0s"
	}
	left := createdAt.Add(domain.OfferWindow).Sub(now)
	secs := int64(left / time.Second)
	if left < 0 {
		secs = 0
	}
	if secs < 60 {
		return strconv.FormatInt(secs, 10) + "s"
	}
	return strconv.FormatInt(secs/60, 10) + "m " + strconv.FormatInt(secs%60, 10) + "s"
}
