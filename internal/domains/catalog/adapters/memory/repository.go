package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/everestcart/storefront-api/internal/domains/catalog/domain"
	"github.com/everestcart/storefront-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog adapter used for tests and DSN-less runs.
type Repository struct {
	mu       sync.RWMutex
	products map[int64]*domain.Product
	nextID   int64
}

func NewRepository() *Repository {
	return &Repository{products: map[int64]*domain.Product{}}
}

// Seed inserts or replaces a product, assigning an identifier when missing.
func (r *Repository) Seed(product domain.Product) *domain.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID == 0 {
		r.nextID++
		product.ID = r.nextID
	} else if product.ID > r.nextID {
		r.nextID = product.ID
	}
	clone := product
	r.products[clone.ID] = &clone
	return &clone
}

func (r *Repository) List(_ context.Context, searchTerm string) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	term := strings.ToLower(searchTerm)
	list := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		clone := *p
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

// SellBatch atomically checks stock for every item and decrements it,
// returning the unit price snapshot per item in request order. Quantities
// are summed per product first so a cart listing the same product twice is
// checked against the combined demand. The whole batch happens under one
// lock: either every item is available and decremented, or nothing changes
// and the failing product is reported. This mirrors the all-or-nothing
// contract of the SQL ledger.
func (r *Repository) SellBatch(_ context.Context, items []ports.SaleItem) ([]decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	demand := make(map[int64]int32, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, &ports.UnavailableError{ProductID: item.ProductID}
		}
		demand[item.ProductID] += item.Quantity
	}
	for _, item := range items {
		p, ok := r.products[item.ProductID]
		if !ok || !p.InStock(demand[item.ProductID]) {
			return nil, &ports.UnavailableError{ProductID: item.ProductID}
		}
	}
	for id, quantity := range demand {
		r.products[id].Stock -= quantity
	}
	prices := make([]decimal.Decimal, 0, len(items))
	for _, item := range items {
		prices = append(prices, r.products[item.ProductID].Price)
	}
	return prices, nil
}

// Stock reports the current stock count, used by tests.
func (r *Repository) Stock(id int64) int32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.products[id]; ok {
		return p.Stock
	}
	return 0
}
