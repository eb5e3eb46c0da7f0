package domain

import "time"

// RiderAction is a status change a rider can trigger on a delivery piece.
type RiderAction string

// List of rider actions
const (
	ActionAccept  RiderAction = "accept"
	ActionPickup  RiderAction = "pickup"
	ActionDeliver RiderAction = "deliver"
	ActionCancel  RiderAction = "cancel"
)

// ItemResult is what happened to one item during a transition.
type ItemResult string

// List of item results
const (
	ItemUpdated  ItemResult = "updated"
	ItemFailed   ItemResult = "failed"
	ItemReverted ItemResult = "reverted"
	ItemSkipped  ItemResult = "skipped"
	// ItemUnchanged marks an item that already sat at or past the target status.
	ItemUnchanged ItemResult = "unchanged"
)

// TransitionOutcome summarises a transition attempt.
type TransitionOutcome string

// List of transition outcomes
const (
	OutcomeApplied TransitionOutcome = "applied"
	OutcomePartial TransitionOutcome = "partial"
	OutcomeFailed  TransitionOutcome = "failed"
	// OutcomeReverted means every moved item was put back, the piece is unchanged.
	OutcomeReverted TransitionOutcome = "reverted"
)

// TransitionItem is a per-item line of a transition record.
type TransitionItem struct {
	ItemID string
	Result ItemResult
}

// TransitionRecord is an audit entry of one rider transition attempt.
type TransitionRecord struct {
	ID         string
	DeliveryID string
	OrderID    string
	SupplierID string
	RiderID    string
	Action     RiderAction
	From       OrderStatus
	To         OrderStatus
	Reason     string
	Outcome    TransitionOutcome
	Error      string
	CreatedAt  time.Time
	Items      []TransitionItem
}
