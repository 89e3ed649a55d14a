package application

import (
	"context"
	"strings"
	"time"

	"github.com/everestcart/storefront-api/internal/domains/orders/domain"
	"github.com/everestcart/storefront-api/internal/domains/orders/ports"
	"github.com/everestcart/storefront-api/internal/shared/actor"
)

// Service orchestrates order use cases: creation, the status workflow,
// cancellation, and the role-filtered read paths.
type Service struct {
	repo     ports.Repository
	tracking ports.TrackingGenerator
	now      func() time.Time
}

type Option func(*Service)

// WithClock overrides the creation timestamp source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, tracking ports.TrackingGenerator, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		tracking: tracking,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateOrder validates the checkout payload, allocates a tracking number,
// and hands the draft to the repository, which prices and persists it in a
// single all-or-nothing transaction. The returned order is the header only.
func (s *Service) CreateOrder(ctx context.Context, act actor.Actor, input ports.CreateOrderInput) (*domain.Order, error) {
	draft, err := domain.NewDraft(
		act.UserID,
		input.Items,
		input.Shipping,
		input.PaymentMethod,
		s.tracking.NewTrackingNumber(),
	)
	if err != nil {
		return nil, mapError(err)
	}
	draft.OrderDate = s.now().UTC()
	return s.repo.Create(ctx, draft)
}

// ListOrders returns summaries newest-first. Staff sees every order; a buyer
// sees only their own.
func (s *Service) ListOrders(ctx context.Context, act actor.Actor) ([]ports.Summary, error) {
	return s.repo.List(ctx, s.ownerFilter(act))
}

// GetOrder loads one order with its lines. A buyer asking for a foreign order
// gets ErrNotFound, indistinguishable from a missing identifier.
func (s *Service) GetOrder(ctx context.Context, act actor.Actor, id int64) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id, s.ownerFilter(act))
}

// UpdateStatus applies a staff-driven forward transition. The transition
// table rejects unknown statuses, skipped steps, and any move off a terminal
// state.
func (s *Service) UpdateStatus(ctx context.Context, act actor.Actor, id int64, status domain.Status) (*domain.Order, error) {
	if !act.IsAdmin() {
		return nil, ports.ErrForbidden
	}
	order, err := s.repo.GetByID(ctx, id, nil)
	if err != nil {
		return nil, err
	}
	if err := order.AdvanceStatus(status); err != nil {
		return nil, mapError(err)
	}
	return s.repo.UpdateStatus(ctx, order)
}

// CancelOrder cancels on behalf of staff (any order) or the owner (their own
// order). The reason is mandatory and checked before the order is even
// looked up; terminal orders conflict. Stock is never restored.
func (s *Service) CancelOrder(ctx context.Context, act actor.Actor, id int64, reason string) (*domain.Order, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, mapError(domain.ErrMissingReason)
	}
	order, err := s.repo.GetByID(ctx, id, nil)
	if err != nil {
		return nil, err
	}
	if !act.IsAdmin() && !act.Owns(order.UserID) {
		return nil, ports.ErrForbidden
	}
	if err := order.Cancel(reason); err != nil {
		return nil, mapError(err)
	}
	return s.repo.UpdateStatus(ctx, order)
}

func (s *Service) ownerFilter(act actor.Actor) *int64 {
	if act.IsAdmin() {
		return nil
	}
	id := act.UserID
	return &id
}

var _ ports.Service = (*Service)(nil)
