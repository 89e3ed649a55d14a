package mapper

import (
	"github.com/shopspring/decimal"

	catalogdomain "github.com/everestcart/storefront-api/internal/domains/catalog/domain"
)

// Product is the transport representation of a catalog product.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
	GalleryURLs []string        `json:"gallery_urls,omitempty"`
	Stock       int32           `json:"stock"`
	Discount    int32           `json:"discount"`
}

// FromDomainProduct converts a domain product to the transport representation.
func FromDomainProduct(product *catalogdomain.Product) Product {
	if product == nil {
		return Product{}
	}
	return Product{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		ImageURL:    product.ImageURL,
		GalleryURLs: product.GalleryURLs,
		Stock:       product.Stock,
		Discount:    product.Discount,
	}
}

// FromDomainProducts converts a product slice.
func FromDomainProducts(products []*catalogdomain.Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		out = append(out, FromDomainProduct(p))
	}
	return out
}
