package orders

import (
	"context"
	"errors"
	"fmt"

	"service-rider-platform/internal/domain"
)

// ErrUnavailable marks a transport failure worth retrying (network, 429, 5xx).
var ErrUnavailable = errors.New("orders gateway: unavailable")

// ListFilter narrows an orders listing. Empty fields are not sent.
type ListFilter struct {
	Statuses []domain.OrderStatus
	RiderID  string
}

// IsTransient reports whether a failed call may succeed if tried again later.
func IsTransient(err error) bool {
	return isRetryable(err) || errors.Is(err, context.DeadlineExceeded)
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func statusStrings(in []domain.OrderStatus) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, string(s))
	}
	return out
}
