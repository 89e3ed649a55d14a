package ports

import (
	"context"
	"errors"

	"github.com/everestcart/storefront-api/internal/domains/orders/domain"
	"github.com/everestcart/storefront-api/internal/shared/actor"
)

// ErrForbidden rejects a cancel attempt by someone who is neither staff nor
// the order's owner. Reads never return it; they collapse into ErrNotFound.
var ErrForbidden = errors.New("forbidden")

// CreateOrderInput is the checkout payload accepted from a buyer.
type CreateOrderInput struct {
	Items         []domain.LineRequest
	Shipping      domain.ShippingDetails
	PaymentMethod string
}

// Service exposes order use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, act actor.Actor, input CreateOrderInput) (*domain.Order, error)
	ListOrders(ctx context.Context, act actor.Actor) ([]Summary, error)
	GetOrder(ctx context.Context, act actor.Actor, id int64) (*domain.Order, error)
	UpdateStatus(ctx context.Context, act actor.Actor, id int64, status domain.Status) (*domain.Order, error)
	CancelOrder(ctx context.Context, act actor.Actor, id int64, reason string) (*domain.Order, error)
}

// TrackingGenerator allocates opaque unique tracking identifiers. The same
// string is later rendered as a linear barcode and a QR code.
type TrackingGenerator interface {
	NewTrackingNumber() string
}
