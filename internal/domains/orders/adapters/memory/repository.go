package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	catalogmemory "github.com/everestcart/storefront-api/internal/domains/catalog/adapters/memory"
	catalogports "github.com/everestcart/storefront-api/internal/domains/catalog/ports"
	"github.com/everestcart/storefront-api/internal/domains/orders/domain"
	"github.com/everestcart/storefront-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// CustomerResolver supplies customer display data for order summaries.
type CustomerResolver func(userID int64) (ports.CustomerSummary, bool)

// Repository is an in-memory order persistence adapter. Pricing and stock
// checks go through the catalog repository's batch sale so checkout keeps
// its all-or-nothing behavior without a database.
type Repository struct {
	mu        sync.RWMutex
	orders    map[int64]*domain.Order
	nextID    int64
	catalog   *catalogmemory.Repository
	customers CustomerResolver
}

func NewRepository(catalog *catalogmemory.Repository, customers CustomerResolver) *Repository {
	if customers == nil {
		customers = func(int64) (ports.CustomerSummary, bool) { return ports.CustomerSummary{}, false }
	}
	return &Repository{
		orders:    map[int64]*domain.Order{},
		catalog:   catalog,
		customers: customers,
	}
}

func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if r.catalog == nil {
		return nil, errors.New("memory order repository not configured with a catalog")
	}

	items := make([]catalogports.SaleItem, 0, len(order.Lines))
	for _, line := range order.Lines {
		items = append(items, catalogports.SaleItem{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	prices, err := r.catalog.SellBatch(ctx, items)
	if err != nil {
		return nil, err
	}

	clone := *order
	clone.Lines = make([]domain.Line, len(order.Lines))
	copy(clone.Lines, order.Lines)
	total := decimal.Zero
	for i := range clone.Lines {
		clone.Lines[i].UnitPrice = prices[i]
		total = total.Add(clone.Lines[i].Subtotal())
	}
	clone.TotalAmount = total

	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone.ID = r.nextID
	stored := clone
	r.orders[stored.ID] = &stored

	header := clone
	header.Lines = nil
	return &header, nil
}

func (r *Repository) List(_ context.Context, ownerID *int64) ([]ports.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	summaries := make([]ports.Summary, 0, len(r.orders))
	for _, order := range r.orders {
		if ownerID != nil && order.UserID != *ownerID {
			continue
		}
		customer, _ := r.customers(order.UserID)
		summaries = append(summaries, ports.Summary{
			ID:             order.ID,
			UserID:         order.UserID,
			OrderDate:      order.OrderDate,
			TotalAmount:    order.TotalAmount,
			Status:         order.Status,
			TrackingNumber: order.TrackingNumber,
			PaymentMethod:  order.PaymentMethod,
			Customer:       customer,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].OrderDate.Equal(summaries[j].OrderDate) {
			return summaries[i].ID > summaries[j].ID
		}
		return summaries[i].OrderDate.After(summaries[j].OrderDate)
	})
	return summaries, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64, ownerID *int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok || (ownerID != nil && order.UserID != *ownerID) {
		return nil, ports.ErrNotFound
	}
	clone := *order
	clone.Lines = make([]domain.Line, len(order.Lines))
	copy(clone.Lines, order.Lines)
	for i := range clone.Lines {
		if r.catalog == nil {
			break
		}
		if product, err := r.catalog.GetByID(ctx, clone.Lines[i].ProductID); err == nil {
			clone.Lines[i].ProductName = product.Name
			clone.Lines[i].ProductImageURL = product.ImageURL
		}
	}
	return &clone, nil
}

func (r *Repository) UpdateStatus(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[order.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	stored.Status = order.Status
	stored.CancellationReason = order.CancellationReason
	clone := *stored
	return &clone, nil
}
