package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatus_CanAdvanceTo(t *testing.T) {
	require.True(t, StatusPending.CanAdvanceTo(StatusProcessing))
	require.True(t, StatusProcessing.CanAdvanceTo(StatusShipped))
	require.True(t, StatusShipped.CanAdvanceTo(StatusDelivered))

	// no skipping steps
	require.False(t, StatusPending.CanAdvanceTo(StatusShipped))
	require.False(t, StatusPending.CanAdvanceTo(StatusDelivered))

	// no going back
	require.False(t, StatusShipped.CanAdvanceTo(StatusProcessing))
	require.False(t, StatusDelivered.CanAdvanceTo(StatusPending))

	// terminal states advance nowhere
	require.False(t, StatusDelivered.CanAdvanceTo(StatusDelivered))
	require.False(t, StatusCancelled.CanAdvanceTo(StatusProcessing))
}

func TestStatus_IsValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		require.True(t, s.IsValid(), "expected %s to be valid", s)
	}
	require.False(t, Status("on hold").IsValid())
	require.False(t, Status("Pending").IsValid())
	require.False(t, Status("").IsValid())
}

func TestOrder_AdvanceStatus(t *testing.T) {
	order := &Order{Status: StatusPending}

	require.NoError(t, order.AdvanceStatus(StatusProcessing))
	require.Equal(t, StatusProcessing, order.Status)
	require.NoError(t, order.AdvanceStatus(StatusShipped))
	require.NoError(t, order.AdvanceStatus(StatusDelivered))
	require.Equal(t, StatusDelivered, order.Status)
}

func TestOrder_AdvanceStatus_RejectsSkips(t *testing.T) {
	order := &Order{Status: StatusPending}
	err := order.AdvanceStatus(StatusDelivered)

	var transition *TransitionError
	require.ErrorAs(t, err, &transition)
	require.Equal(t, StatusPending, transition.From)
	require.Equal(t, StatusDelivered, transition.To)
	require.Equal(t, StatusPending, order.Status, "status must not change on rejection")
}

func TestOrder_AdvanceStatus_RejectsUnknownStatus(t *testing.T) {
	order := &Order{Status: StatusPending}
	err := order.AdvanceStatus(Status("misplaced"))

	var transition *TransitionError
	require.ErrorAs(t, err, &transition)
}

func TestOrder_AdvanceStatus_CancelledIsNotAForwardTarget(t *testing.T) {
	order := &Order{Status: StatusPending}
	err := order.AdvanceStatus(StatusCancelled)

	var transition *TransitionError
	require.ErrorAs(t, err, &transition)
	require.Equal(t, StatusPending, order.Status)
}

func TestOrder_Cancel(t *testing.T) {
	order := &Order{Status: StatusShipped}
	require.NoError(t, order.Cancel("  changed my mind  "))
	require.Equal(t, StatusCancelled, order.Status)
	require.NotNil(t, order.CancellationReason)
	require.Equal(t, "changed my mind", *order.CancellationReason)
}

func TestOrder_Cancel_RequiresReason(t *testing.T) {
	order := &Order{Status: StatusPending}
	require.ErrorIs(t, order.Cancel("   "), ErrMissingReason)
	require.Equal(t, StatusPending, order.Status)
}

func TestOrder_Cancel_TerminalConflicts(t *testing.T) {
	for _, current := range []Status{StatusDelivered, StatusCancelled} {
		order := &Order{Status: current}
		err := order.Cancel("too late")

		var conflict *CancellationConflictError
		require.ErrorAs(t, err, &conflict)
		require.Equal(t, current, conflict.Current)
		require.EqualError(t, err, "order cannot be cancelled as it is already "+string(current))
	}
}
