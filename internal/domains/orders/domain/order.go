package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNoItems          = errors.New("order must contain items")
	ErrMissingShipping  = errors.New("all shipping details are required")
	ErrMissingPayment   = errors.New("payment method is required")
	ErrInvalidProductID = errors.New("product id must be greater than zero")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
	ErrMissingReason    = errors.New("cancellation reason is required")
	ErrMissingTracking  = errors.New("tracking number is required")
	ErrTotalMismatch    = errors.New("order total does not equal the sum of its lines")
)

// ShippingDetails is the snapshot captured verbatim from the checkout request.
// The three-level region (province, district, municipal) is stored as given;
// it is not normalized against a reference list at this layer.
type ShippingDetails struct {
	FirstName    string
	LastName     string
	Email        string
	MobileNumber string
	Address      string
	Province     string
	District     string
	Municipal    string
}

// Validate requires every shipping field to be present.
func (d ShippingDetails) Validate() error {
	fields := []string{
		d.FirstName, d.LastName, d.Email, d.MobileNumber,
		d.Address, d.Province, d.District, d.Municipal,
	}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return ErrMissingShipping
		}
	}
	return nil
}

// LineRequest is one (product, quantity) entry of an incoming cart.
type LineRequest struct {
	ProductID int64
	Quantity  int32
}

// Validate enforces line request invariants.
func (r LineRequest) Validate() error {
	if r.ProductID <= 0 {
		return ErrInvalidProductID
	}
	if r.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// Line is a persisted order line carrying its price snapshot. The unit price
// is the catalog price read inside the creation transaction and never changes
// afterwards, regardless of later catalog updates.
type Line struct {
	ProductID int64
	Quantity  int32
	UnitPrice decimal.Decimal

	// Display enrichment, populated on detail reads only.
	ProductName     string
	ProductImageURL string
}

// Subtotal returns quantity x unit price.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt32(l.Quantity))
}

// Order is the purchase aggregate. It owns its lines: they are created in the
// same transaction and never mutated independently. After creation only the
// status and cancellation reason ever change.
type Order struct {
	ID                 int64
	UserID             int64
	OrderDate          time.Time
	TotalAmount        decimal.Decimal
	Status             Status
	TrackingNumber     string
	CancellationReason *string
	Shipping           ShippingDetails
	PaymentMethod      string
	Lines              []Line
}

// NewDraft validates a checkout request and assembles the aggregate that the
// repository will price and persist. Validation happens in a fixed order so
// the first missing piece is reported before any database work: items, then
// shipping, then payment method. Lines carry no price yet; the repository
// snapshots prices inside the creation transaction.
func NewDraft(userID int64, requests []LineRequest, shipping ShippingDetails, paymentMethod, trackingNumber string) (*Order, error) {
	if len(requests) == 0 {
		return nil, ErrNoItems
	}
	for _, r := range requests {
		if err := r.Validate(); err != nil {
			return nil, err
		}
	}
	if err := shipping.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(paymentMethod) == "" {
		return nil, ErrMissingPayment
	}
	if strings.TrimSpace(trackingNumber) == "" {
		return nil, ErrMissingTracking
	}
	lines := make([]Line, 0, len(requests))
	for _, r := range requests {
		lines = append(lines, Line{ProductID: r.ProductID, Quantity: r.Quantity})
	}
	return &Order{
		UserID:         userID,
		Status:         StatusPending,
		TrackingNumber: strings.TrimSpace(trackingNumber),
		Shipping:       shipping,
		PaymentMethod:  strings.TrimSpace(paymentMethod),
		Lines:          lines,
	}, nil
}

// SumLines computes the exact decimal sum of quantity x unit price over the
// order's lines.
func (o *Order) SumLines() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// CheckTotal verifies the stored total equals the sum of the lines.
func (o *Order) CheckTotal() error {
	if !o.TotalAmount.Equal(o.SumLines()) {
		return ErrTotalMismatch
	}
	return nil
}

// AdvanceStatus applies a staff-driven forward transition. Unknown statuses
// and transitions outside the allowed set are rejected.
func (o *Order) AdvanceStatus(next Status) error {
	if !next.IsValid() || next == StatusCancelled {
		return &TransitionError{From: o.Status, To: next}
	}
	if !o.Status.CanAdvanceTo(next) {
		return &TransitionError{From: o.Status, To: next}
	}
	o.Status = next
	return nil
}

// Cancel marks the order cancelled with the mandatory reason. Terminal orders
// conflict; the error names the current status.
func (o *Order) Cancel(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrMissingReason
	}
	if o.Status.IsTerminal() {
		return &CancellationConflictError{Current: o.Status}
	}
	o.Status = StatusCancelled
	o.CancellationReason = &reason
	return nil
}
