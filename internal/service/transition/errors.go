package transition

import (
	"fmt"

	"service-rider-platform/internal/apperr"
)

// PartialFailureError reports a fan-out that stopped after some items were moved.
type PartialFailureError struct {
	DeliveryID string
	Updated    []string
	Failed     []string
	Reverted   []string
	Skipped    []string
	Cause      error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("transition %s: %d updated, %d failed, %d reverted, %d skipped: %v",
		e.DeliveryID, len(e.Updated), len(e.Failed), len(e.Reverted), len(e.Skipped), e.Cause)
}

// Unwrap exposes both apperr.ErrPartialFailure and the failing call's error.
func (e *PartialFailureError) Unwrap() []error {
	return []error{apperr.ErrPartialFailure, e.Cause}
}
