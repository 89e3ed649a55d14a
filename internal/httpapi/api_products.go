package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	productmapper "github.com/everestcart/storefront-api/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/everestcart/storefront-api/internal/domains/catalog/ports"
)

// ProductsAPI wires HTTP transport with the catalog read service.
type ProductsAPI struct {
	service catalogports.Service
}

// NewProductsAPI creates a ProductsAPI backed by the provided service.
func NewProductsAPI(service catalogports.Service) ProductsAPI {
	return ProductsAPI{service: service}
}

// Get /api/products
// List products, optionally filtered by a search term
func (api *ProductsAPI) ListProducts(c *gin.Context) {
	products, err := api.service.ListProducts(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondProductServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, productmapper.FromDomainProducts(products))
}

// Get /api/products/:productId
// Load a single product
func (api *ProductsAPI) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	product, err := api.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondProductServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, productmapper.FromDomainProduct(product))
}
