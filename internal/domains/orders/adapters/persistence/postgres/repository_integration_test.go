//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	catalogports "github.com/everestcart/storefront-api/internal/domains/catalog/ports"
	"github.com/everestcart/storefront-api/internal/domains/orders/domain"
	"github.com/everestcart/storefront-api/internal/domains/orders/ports"
	"github.com/everestcart/storefront-api/internal/platform/migrations"
)

func setupOrdersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func seedCheckoutFixtures(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Exec(
		`INSERT INTO users (id, first_name, last_name, email, password_hash, role) VALUES (1, 'Anita', 'Gurung', 'anita@example.com', 'x', 'client')`,
	).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO products (id, name, price, stock) VALUES (1, 'Ilam Green Tea', 7.50, 10), (2, 'Dhaka Topi', 12.25, 1)`,
	).Error)
}

func productStock(t *testing.T, db *gorm.DB, id int64) int32 {
	t.Helper()
	var stock int32
	require.NoError(t, db.Table("products").Select("stock").Where("id = ?", id).Scan(&stock).Error)
	return stock
}

func draftOrder(t *testing.T, lines []domain.LineRequest) *domain.Order {
	t.Helper()
	order, err := domain.NewDraft(1, lines, domain.ShippingDetails{
		FirstName:    "Anita",
		LastName:     "Gurung",
		Email:        "anita@example.com",
		MobileNumber: "9801234567",
		Address:      "Lakeside 6",
		Province:     "Gandaki",
		District:     "Kaski",
		Municipal:    "Pokhara",
	}, "cash-on-delivery", "TRK-"+time.Now().Format("150405.000000000"))
	require.NoError(t, err)
	order.OrderDate = time.Now().UTC().Truncate(time.Second)
	return order
}

func TestRepository_Create_PricesAndDecrementsStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()
	seedCheckoutFixtures(t, db)

	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, draftOrder(t, []domain.LineRequest{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, created.TotalAmount.Equal(decimal.RequireFromString("27.25")), "got %s", created.TotalAmount)
	assert.Nil(t, created.Lines, "Create returns the header only")

	assert.Equal(t, int32(8), productStock(t, db, 1))
	assert.Equal(t, int32(0), productStock(t, db, 2))

	fetched, err := repo.GetByID(ctx, created.ID, nil)
	require.NoError(t, err)
	require.Len(t, fetched.Lines, 2)
	assert.True(t, fetched.Lines[0].UnitPrice.Equal(decimal.RequireFromString("7.50")))
	assert.Equal(t, "Ilam Green Tea", fetched.Lines[0].ProductName)
}

func TestRepository_Create_RollsBackOnShortStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()
	seedCheckoutFixtures(t, db)

	repo := NewRepository(db)
	ctx := context.Background()

	// the first line would succeed; the second fails and must undo it
	_, err := repo.Create(ctx, draftOrder(t, []domain.LineRequest{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 5},
	}))
	var unavailable *catalogports.UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, int64(2), unavailable.ProductID)

	assert.Equal(t, int32(10), productStock(t, db, 1), "stock untouched after rollback")
	assert.Equal(t, int32(1), productStock(t, db, 2))

	var orderCount int64
	require.NoError(t, db.Table("orders").Count(&orderCount).Error)
	assert.Zero(t, orderCount)
}

func TestRepository_Create_DuplicateLinesShareStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()
	seedCheckoutFixtures(t, db)
	require.NoError(t, db.Exec(
		`INSERT INTO products (id, name, price, stock) VALUES (3, 'Singing Bowl', 30.00, 5)`,
	).Error)

	repo := NewRepository(db)
	ctx := context.Background()

	// 3+3 of the same product against stock 5: the second line re-reads the
	// already-decremented row and must fail the whole checkout
	_, err := repo.Create(ctx, draftOrder(t, []domain.LineRequest{
		{ProductID: 3, Quantity: 3},
		{ProductID: 3, Quantity: 3},
	}))
	var unavailable *catalogports.UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, int64(3), unavailable.ProductID)
	assert.Equal(t, int32(5), productStock(t, db, 3), "rollback restores the first decrement")

	// 3+2 fits exactly
	created, err := repo.Create(ctx, draftOrder(t, []domain.LineRequest{
		{ProductID: 3, Quantity: 3},
		{ProductID: 3, Quantity: 2},
	}))
	require.NoError(t, err)
	assert.True(t, created.TotalAmount.Equal(decimal.RequireFromString("150.00")), "got %s", created.TotalAmount)
	assert.Equal(t, int32(0), productStock(t, db, 3))
}

func TestRepository_Create_UnknownProduct(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()
	seedCheckoutFixtures(t, db)

	repo := NewRepository(db)

	_, err := repo.Create(context.Background(), draftOrder(t, []domain.LineRequest{
		{ProductID: 99, Quantity: 1},
	}))
	var unavailable *catalogports.UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, int64(99), unavailable.ProductID)
}

func TestRepository_List_OwnershipAndOrdering(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()
	seedCheckoutFixtures(t, db)
	require.NoError(t, db.Exec(
		`INSERT INTO users (id, first_name, last_name, email, password_hash, role) VALUES (2, 'Bibek', 'Shrestha', 'bibek@example.com', 'x', 'client')`,
	).Error)

	repo := NewRepository(db)
	ctx := context.Background()

	first, err := repo.Create(ctx, draftOrder(t, []domain.LineRequest{{ProductID: 1, Quantity: 1}}))
	require.NoError(t, err)
	second := draftOrder(t, []domain.LineRequest{{ProductID: 1, Quantity: 1}})
	second.UserID = 2
	second.OrderDate = second.OrderDate.Add(time.Minute)
	secondCreated, err := repo.Create(ctx, second)
	require.NoError(t, err)

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(2), all[0].UserID, "newest order first")
	assert.Equal(t, "Bibek", all[0].Customer.FirstName)
	assert.Equal(t, "anita@example.com", all[1].Customer.Email)

	owner := int64(1)
	mine, err := repo.List(ctx, &owner)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)

	stranger := int64(1)
	_, err = repo.GetByID(ctx, secondCreated.ID, &stranger)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_UpdateStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()
	seedCheckoutFixtures(t, db)

	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, draftOrder(t, []domain.LineRequest{{ProductID: 1, Quantity: 1}}))
	require.NoError(t, err)

	created.Status = domain.StatusCancelled
	reason := "ordered twice"
	created.CancellationReason = &reason
	updated, err := repo.UpdateStatus(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, updated.Status)

	fetched, err := repo.GetByID(ctx, created.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, fetched.Status)
	require.NotNil(t, fetched.CancellationReason)
	assert.Equal(t, "ordered twice", *fetched.CancellationReason)

	missing := *created
	missing.ID = 9999
	_, err = repo.UpdateStatus(ctx, &missing)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
