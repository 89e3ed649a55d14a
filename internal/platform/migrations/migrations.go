package migrations

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&productRecord{},
		&orderRecord{},
		&orderItemRecord{},
		&userRecord{},
		&sessionRecord{},
	)
}

// Product schema mirrors the catalog Postgres adapter.
type productRecord struct {
	ID          int64           `gorm:"primaryKey;column:id"`
	Name        string          `gorm:"column:name;index"`
	Description string          `gorm:"column:description"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	ImageURL    string          `gorm:"column:image_url"`
	GalleryURLs pq.StringArray  `gorm:"column:gallery_urls;type:text[]"`
	Stock       int32           `gorm:"column:stock"`
	Discount    int32           `gorm:"column:discount"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Order header schema mirrors the orders Postgres adapter.
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

// Order line schema mirrors the orders Postgres adapter.
type orderItemRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	OrderID   int64           `gorm:"column:order_id;index"`
	ProductID int64           `gorm:"column:product_id"`
	Quantity  int32           `gorm:"column:quantity"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID           int64     `gorm:"primaryKey;column:id"`
	FirstName    string    `gorm:"column:first_name"`
	LastName     string    `gorm:"column:last_name"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         string    `gorm:"column:role;type:varchar(16)"`
	MobileNumber string    `gorm:"column:mobile_number"`
	Address      string    `gorm:"column:address"`
	Province     string    `gorm:"column:province"`
	District     string    `gorm:"column:district"`
	Municipal    string    `gorm:"column:municipal"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Session schema mirrors the session store.
type sessionRecord struct {
	Token     string    `gorm:"primaryKey;column:token;size:512"`
	UserID    int64     `gorm:"column:user_id;index"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (sessionRecord) TableName() string { return "user_sessions" }
