package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName       = errors.New("product name is required")
	ErrNegativePrice   = errors.New("product price must not be negative")
	ErrNegativeStock   = errors.New("product stock must not be negative")
	ErrInvalidDiscount = errors.New("product discount must be between 0 and 100")
)

// Product is the catalog entity consulted during order pricing.
// The order engine reads price and stock and decrements stock; it never
// creates, renames, or deletes products.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	GalleryURLs []string
	Stock       int32
	Discount    int32
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate enforces catalog invariants.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.Stock < 0 {
		return ErrNegativeStock
	}
	if p.Discount < 0 || p.Discount > 100 {
		return ErrInvalidDiscount
	}
	return nil
}

// InStock reports whether the requested quantity can be fulfilled.
func (p *Product) InStock(quantity int32) bool {
	return quantity > 0 && p.Stock >= quantity
}
