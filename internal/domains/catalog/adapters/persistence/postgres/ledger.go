package postgres

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/everestcart/storefront-api/internal/domains/catalog/ports"
)

// Ledger performs the atomic price-read/stock-check/decrement for one sale.
// It operates on a caller-supplied transaction handle so the whole sale
// shares the enclosing order-creation transaction: no decrement is visible
// outside the transaction boundary, and the row locks taken here hold until
// the caller commits or rolls back.
type Ledger struct {
	tx *gorm.DB
}

// NewLedger binds the ledger to an open transaction.
func NewLedger(tx *gorm.DB) *Ledger {
	return &Ledger{tx: tx}
}

// ResolveForSale locks the product row, verifies stock covers the requested
// quantity, decrements stock, and returns the unit price read under the lock.
// The FOR UPDATE lock closes the race where two concurrent checkouts both see
// the last unit in stock.
func (l *Ledger) ResolveForSale(ctx context.Context, item ports.SaleItem) (decimal.Decimal, error) {
	if l == nil || l.tx == nil {
		return decimal.Zero, errors.New("ledger not bound to a transaction")
	}
	var record productRecord
	err := l.tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&record, "id = ?", item.ProductID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, &ports.UnavailableError{ProductID: item.ProductID}
		}
		return decimal.Zero, err
	}
	if item.Quantity <= 0 || record.Stock < item.Quantity {
		return decimal.Zero, &ports.UnavailableError{ProductID: item.ProductID}
	}
	result := l.tx.WithContext(ctx).
		Model(&productRecord{}).
		Where("id = ?", item.ProductID).
		UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	return record.Price, nil
}
