package ports

import (
	"context"
	"errors"

	"github.com/everestcart/storefront-api/internal/domains/catalog/domain"
)

var ErrNotFound = errors.New("product not found")

// Repository exposes the read-only catalog paths used by the storefront.
type Repository interface {
	// List returns products, optionally filtered by a case-insensitive
	// search over name and description.
	List(ctx context.Context, searchTerm string) ([]*domain.Product, error)
	// GetByID fetches a single product.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// Service exposes catalog use cases to adapters.
type Service interface {
	ListProducts(ctx context.Context, searchTerm string) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}
