package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func validShipping() ShippingDetails {
	return ShippingDetails{
		FirstName:    "Anita",
		LastName:     "Gurung",
		Email:        "anita@example.com",
		MobileNumber: "9801234567",
		Address:      "Lakeside 6",
		Province:     "Gandaki",
		District:     "Kaski",
		Municipal:    "Pokhara",
	}
}

func TestNewDraft(t *testing.T) {
	order, err := NewDraft(7,
		[]LineRequest{{ProductID: 1, Quantity: 2}, {ProductID: 3, Quantity: 1}},
		validShipping(), "cash-on-delivery", "TRK-1")
	require.NoError(t, err)

	require.Equal(t, int64(7), order.UserID)
	require.Equal(t, StatusPending, order.Status)
	require.Equal(t, "TRK-1", order.TrackingNumber)
	require.Len(t, order.Lines, 2)
	require.True(t, order.Lines[0].UnitPrice.IsZero(), "draft lines carry no price")
	require.Nil(t, order.CancellationReason)
}

func TestNewDraft_RequiresItems(t *testing.T) {
	_, err := NewDraft(7, nil, validShipping(), "cash-on-delivery", "TRK-1")
	require.ErrorIs(t, err, ErrNoItems)
}

func TestNewDraft_RejectsBadLines(t *testing.T) {
	_, err := NewDraft(7, []LineRequest{{ProductID: 0, Quantity: 1}}, validShipping(), "cash-on-delivery", "TRK-1")
	require.ErrorIs(t, err, ErrInvalidProductID)

	_, err = NewDraft(7, []LineRequest{{ProductID: 1, Quantity: 0}}, validShipping(), "cash-on-delivery", "TRK-1")
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestNewDraft_RequiresEveryShippingField(t *testing.T) {
	shipping := validShipping()
	shipping.District = "  "
	_, err := NewDraft(7, []LineRequest{{ProductID: 1, Quantity: 1}}, shipping, "cash-on-delivery", "TRK-1")
	require.ErrorIs(t, err, ErrMissingShipping)
}

func TestNewDraft_RequiresPaymentMethod(t *testing.T) {
	_, err := NewDraft(7, []LineRequest{{ProductID: 1, Quantity: 1}}, validShipping(), " ", "TRK-1")
	require.ErrorIs(t, err, ErrMissingPayment)
}

func TestNewDraft_ItemsCheckedBeforeShipping(t *testing.T) {
	// both items and shipping are invalid; the items failure wins
	_, err := NewDraft(7, nil, ShippingDetails{}, "", "")
	require.ErrorIs(t, err, ErrNoItems)
}

func TestLine_Subtotal(t *testing.T) {
	line := Line{Quantity: 3, UnitPrice: decimal.RequireFromString("19.99")}
	require.True(t, line.Subtotal().Equal(decimal.RequireFromString("59.97")))
}

func TestOrder_CheckTotal(t *testing.T) {
	order := &Order{
		TotalAmount: decimal.RequireFromString("25.50"),
		Lines: []Line{
			{Quantity: 1, UnitPrice: decimal.RequireFromString("10.50")},
			{Quantity: 3, UnitPrice: decimal.RequireFromString("5.00")},
		},
	}
	require.NoError(t, order.CheckTotal())

	order.TotalAmount = decimal.RequireFromString("25.51")
	require.ErrorIs(t, order.CheckTotal(), ErrTotalMismatch)
}
