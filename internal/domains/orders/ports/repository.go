package ports

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/everestcart/storefront-api/internal/domains/orders/domain"
)

var (
	// ErrNotFound covers both truly missing orders and orders outside the
	// caller's ownership filter, so reads cannot leak existence.
	ErrNotFound = errors.New("order not found")
)

// CustomerSummary is the joined display data of the placing user.
type CustomerSummary struct {
	FirstName string
	LastName  string
	Email     string
}

// Summary is one row of an order listing: the header enriched with customer
// display data, deliberately without line items.
type Summary struct {
	ID             int64
	UserID         int64
	OrderDate      time.Time
	TotalAmount    decimal.Decimal
	Status         domain.Status
	TrackingNumber string
	PaymentMethod  string
	Customer       CustomerSummary
}

// Repository persists order aggregates.
type Repository interface {
	// Create runs the whole order-creation transaction: per line it
	// resolves the current catalog price, verifies stock, and decrements
	// it; then it inserts the header (status pending) and the lines with
	// their price snapshots. Any failure, including a catalog
	// UnavailableError for a single line, rolls everything back and
	// leaves stock untouched. The returned order is the persisted header
	// only; its Lines slice is nil.
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)

	// List returns order summaries newest-first. A non-nil ownerID
	// restricts results to that user's orders.
	List(ctx context.Context, ownerID *int64) ([]Summary, error)

	// GetByID loads the header plus its full line list, each line enriched
	// with product name and image. A non-nil ownerID turns foreign orders
	// into ErrNotFound.
	GetByID(ctx context.Context, id int64, ownerID *int64) (*domain.Order, error)

	// UpdateStatus persists the status and cancellation reason of an
	// existing order; no other column is ever rewritten.
	UpdateStatus(ctx context.Context, order *domain.Order) (*domain.Order, error)
}
