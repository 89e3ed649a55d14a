package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	catalogpostgres "github.com/everestcart/storefront-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogports "github.com/everestcart/storefront-api/internal/domains/catalog/ports"
	"github.com/everestcart/storefront-api/internal/domains/orders/domain"
	"github.com/everestcart/storefront-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists order aggregates in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{}, &orderItemRecord{})
	}
	return repo
}

// orderRecord maps the order header to a relational table. Shipping details
// are snapshotted verbatim at checkout time.
type orderRecord struct {
	ID                 int64           `gorm:"primaryKey;column:id"`
	UserID             int64           `gorm:"column:user_id;index"`
	OrderDate          time.Time       `gorm:"column:order_date;index"`
	TotalAmount        decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2)"`
	Status             string          `gorm:"column:status;type:varchar(32);index"`
	TrackingNumber     string          `gorm:"column:tracking_number;type:varchar(64);uniqueIndex"`
	CancellationReason *string         `gorm:"column:cancellation_reason"`
	FirstName          string          `gorm:"column:first_name"`
	LastName           string          `gorm:"column:last_name"`
	Email              string          `gorm:"column:email"`
	MobileNumber       string          `gorm:"column:mobile_number"`
	Address            string          `gorm:"column:address"`
	Province           string          `gorm:"column:province"`
	District           string          `gorm:"column:district"`
	Municipal          string          `gorm:"column:municipal"`
	PaymentMethod      string          `gorm:"column:payment_method"`
}

func (orderRecord) TableName() string { return "orders" }

// orderItemRecord is one priced line of an order. Price is the per-unit
// catalog price at checkout, frozen for the life of the order.
type orderItemRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	OrderID   int64           `gorm:"column:order_id;index"`
	ProductID int64           `gorm:"column:product_id"`
	Quantity  int32           `gorm:"column:quantity"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// Create runs the whole checkout transaction. Each line is priced against
// the catalog under a row lock, stock is decremented, and the header plus
// lines are inserted. Any failure rolls the transaction back, restoring
// stock.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}

	var record orderRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ledger := catalogpostgres.NewLedger(tx)
		total := decimal.Zero
		priced := make([]orderItemRecord, 0, len(order.Lines))
		for _, line := range order.Lines {
			price, err := ledger.ResolveForSale(ctx, catalogports.SaleItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
			})
			if err != nil {
				return err
			}
			total = total.Add(price.Mul(decimal.NewFromInt32(line.Quantity)))
			priced = append(priced, orderItemRecord{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     price,
			})
		}

		record = toRecord(order)
		record.TotalAmount = total
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		for i := range priced {
			priced[i].OrderID = record.ID
		}
		return tx.Create(&priced).Error
	})
	if err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// summaryRow joins the order header with the placing user's display data.
type summaryRow struct {
	orderRecord
	UserFirstName string `gorm:"column:user_first_name"`
	UserLastName  string `gorm:"column:user_last_name"`
	UserEmail     string `gorm:"column:user_email"`
}

// List returns order summaries newest-first, joined with customer display
// data. A non-nil ownerID restricts results to that user's orders.
func (r *Repository) List(ctx context.Context, ownerID *int64) ([]ports.Summary, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	q := r.db.WithContext(ctx).
		Table("orders").
		Select("orders.*, users.first_name AS user_first_name, users.last_name AS user_last_name, users.email AS user_email").
		Joins("JOIN users ON users.id = orders.user_id").
		Order("orders.order_date DESC")
	if ownerID != nil {
		q = q.Where("orders.user_id = ?", *ownerID)
	}
	var rows []summaryRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	summaries := make([]ports.Summary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, ports.Summary{
			ID:             row.ID,
			UserID:         row.UserID,
			OrderDate:      row.OrderDate,
			TotalAmount:    row.TotalAmount,
			Status:         domain.Status(row.Status),
			TrackingNumber: row.TrackingNumber,
			PaymentMethod:  row.PaymentMethod,
			Customer: ports.CustomerSummary{
				FirstName: row.UserFirstName,
				LastName:  row.UserLastName,
				Email:     row.UserEmail,
			},
		})
	}
	return summaries, nil
}

// itemRow joins an order line with current product display data.
type itemRow struct {
	orderItemRecord
	ProductName     string `gorm:"column:product_name"`
	ProductImageURL string `gorm:"column:product_image_url"`
}

// GetByID loads the header plus its enriched line list. A non-nil ownerID
// turns foreign orders into ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id int64, ownerID *int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	q := r.db.WithContext(ctx).Where("id = ?", id)
	if ownerID != nil {
		q = q.Where("user_id = ?", *ownerID)
	}
	var record orderRecord
	if err := q.First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}

	var rows []itemRow
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.*, products.name AS product_name, products.image_url AS product_image_url").
		Joins("LEFT JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ?", id).
		Order("order_items.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	order := record.toDomain()
	order.Lines = make([]domain.Line, 0, len(rows))
	for _, row := range rows {
		order.Lines = append(order.Lines, domain.Line{
			ProductID:       row.ProductID,
			Quantity:        row.Quantity,
			UnitPrice:       row.Price,
			ProductName:     row.ProductName,
			ProductImageURL: row.ProductImageURL,
		})
	}
	return order, nil
}

// UpdateStatus persists only the status and cancellation reason columns.
func (r *Repository) UpdateStatus(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	result := r.db.WithContext(ctx).
		Model(&orderRecord{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"status":              string(order.Status),
			"cancellation_reason": order.CancellationReason,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return order, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:                 order.ID,
		UserID:             order.UserID,
		OrderDate:          order.OrderDate,
		TotalAmount:        order.TotalAmount,
		Status:             string(order.Status),
		TrackingNumber:     order.TrackingNumber,
		CancellationReason: order.CancellationReason,
		FirstName:          order.Shipping.FirstName,
		LastName:           order.Shipping.LastName,
		Email:              order.Shipping.Email,
		MobileNumber:       order.Shipping.MobileNumber,
		Address:            order.Shipping.Address,
		Province:           order.Shipping.Province,
		District:           order.Shipping.District,
		Municipal:          order.Shipping.Municipal,
		PaymentMethod:      order.PaymentMethod,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:                 r.ID,
		UserID:             r.UserID,
		OrderDate:          r.OrderDate,
		TotalAmount:        r.TotalAmount,
		Status:             domain.Status(r.Status),
		TrackingNumber:     r.TrackingNumber,
		CancellationReason: r.CancellationReason,
		Shipping: domain.ShippingDetails{
			FirstName:    r.FirstName,
			LastName:     r.LastName,
			Email:        r.Email,
			MobileNumber: r.MobileNumber,
			Address:      r.Address,
			Province:     r.Province,
			District:     r.District,
			Municipal:    r.Municipal,
		},
		PaymentMethod: r.PaymentMethod,
	}
}
