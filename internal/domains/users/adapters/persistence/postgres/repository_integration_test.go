//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/everestcart/storefront-api/internal/domains/users/domain"
	"github.com/everestcart/storefront-api/internal/domains/users/ports"
	"github.com/everestcart/storefront-api/internal/platform/migrations"
	"github.com/everestcart/storefront-api/internal/shared/actor"
)

func setupUsersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
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

func TestRepository_SaveAndGetByEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	user, err := domain.NewUser("Anita", "Gurung", "Anita@Example.com", "hunter22", actor.RoleClient)
	require.NoError(t, err)

	saved, err := repo.Save(ctx, user)
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.Equal(t, "anita@example.com", saved.Email, "emails are stored lowercased")
	assert.NoError(t, saved.CheckPassword("hunter22"))

	fetched, err := repo.GetByEmail(ctx, "anita@example.com")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, fetched.ID)
	assert.Equal(t, actor.RoleClient, fetched.Role)

	byID, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anita", byID.FirstName)

	_, err = repo.GetByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_DuplicateEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	first, err := domain.NewUser("Anita", "Gurung", "anita@example.com", "hunter22", actor.RoleClient)
	require.NoError(t, err)
	_, err = repo.Save(ctx, first)
	require.NoError(t, err)

	second, err := domain.NewUser("Imposter", "Gurung", "anita@example.com", "hunter23", actor.RoleClient)
	require.NoError(t, err)
	_, err = repo.Save(ctx, second)
	assert.ErrorIs(t, err, ports.ErrDuplicateEmail)
}

func TestRepository_UpdateProfile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	user, err := domain.NewUser("Anita", "Gurung", "anita@example.com", "hunter22", actor.RoleClient)
	require.NoError(t, err)
	saved, err := repo.Save(ctx, user)
	require.NoError(t, err)

	require.NoError(t, saved.UpdateProfile("9801234567", "Lakeside 6", "Gandaki", "Kaski", "Pokhara"))
	updated, err := repo.Save(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, "9801234567", updated.MobileNumber)
	assert.Equal(t, "Pokhara", updated.Municipal)
}

func TestSessionStore_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	store := NewSessionStore(db, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "session-token", 42))

	userID, err := store.Lookup(ctx, "session-token")
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)

	_, err = store.Lookup(ctx, "unknown-token")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)

	require.NoError(t, store.Delete(ctx, "session-token"))
	_, err = store.Lookup(ctx, "session-token")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestSessionStore_PurgeExpired(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	ctx := context.Background()

	expired := NewSessionStore(db, -time.Minute)
	require.NoError(t, expired.Save(ctx, "stale-token", 7))

	live := NewSessionStore(db, time.Hour)
	require.NoError(t, live.Save(ctx, "fresh-token", 7))

	_, err := live.Lookup(ctx, "stale-token")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound, "expired sessions never resolve")

	purged, err := live.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	userID, err := live.Lookup(ctx, "fresh-token")
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
}
