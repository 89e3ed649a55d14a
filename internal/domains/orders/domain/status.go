package domain

import "fmt"

// Status enumerates the order fulfillment workflow.
type Status string

const (
	// StatusPending is the implicit initial state of every new order.
	StatusPending Status = "pending"
	// StatusProcessing means staff started preparing the shipment.
	StatusProcessing Status = "processing"
	// StatusShipped means the parcel was handed to the carrier.
	StatusShipped Status = "shipped"
	// StatusDelivered is terminal. No transition leaves it.
	StatusDelivered Status = "delivered"
	// StatusCancelled is terminal and reachable only through Cancel.
	StatusCancelled Status = "cancelled"
)

// forwardTransitions is the closed set of staff-driven advancements.
// Cancellation is not listed here: it is a distinct operation with its own
// eligibility rules.
var forwardTransitions = map[Status]Status{
	StatusPending:    StatusProcessing,
	StatusProcessing: StatusShipped,
	StatusShipped:    StatusDelivered,
}

// IsValid reports whether the value is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition leaves this status.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanAdvanceTo reports whether the forward transition s -> next is allowed.
func (s Status) CanAdvanceTo(next Status) bool {
	allowed, ok := forwardTransitions[s]
	return ok && allowed == next
}

// TransitionError reports a rejected status advancement.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}

// CancellationConflictError reports a cancel attempt on a terminal order.
type CancellationConflictError struct {
	Current Status
}

func (e *CancellationConflictError) Error() string {
	return fmt.Sprintf("order cannot be cancelled as it is already %s", e.Current)
}
