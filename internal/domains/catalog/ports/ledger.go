package ports

import "fmt"

// SaleItem is one (product, quantity) pair presented to the inventory ledger.
type SaleItem struct {
	ProductID int64
	Quantity  int32
}

// UnavailableError fails a sale when the product is missing or short on
// stock. The two cases are deliberately indistinguishable to the buyer.
type UnavailableError struct {
	ProductID int64
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("product %d is out of stock or not found", e.ProductID)
}
