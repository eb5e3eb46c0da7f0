package orders

import (
	"context"
	"strings"

	"service-rider-platform/internal/domain"
)

type actionFunc func(context.Context, *domain.Order) error

type actionFactory struct {
	byStatus map[string]actionFunc
}

func newActionFactory(onOffered, onWithdrawn actionFunc) *actionFactory {
	return &actionFactory{
		byStatus: map[string]actionFunc{
			"created":   onOffered,
			"pending":   onOffered,
			"canceled":  onWithdrawn,
			"cancelled": onWithdrawn,
			"refunded":  onWithdrawn,
			"deleted":   onWithdrawn,
		},
	}
}

func (f *actionFactory) get(status string) (actionFunc, bool) {
	status = strings.ToLower(strings.TrimSpace(status))
	fn, ok := f.byStatus[status]
	return fn, ok
}
