package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	catalogmemory "github.com/everestcart/storefront-api/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/everestcart/storefront-api/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/everestcart/storefront-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/everestcart/storefront-api/internal/domains/catalog/application"
	catalogports "github.com/everestcart/storefront-api/internal/domains/catalog/ports"

	ordersmemory "github.com/everestcart/storefront-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/everestcart/storefront-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/everestcart/storefront-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/everestcart/storefront-api/internal/domains/orders/application"
	ordersports "github.com/everestcart/storefront-api/internal/domains/orders/ports"

	usersmemory "github.com/everestcart/storefront-api/internal/domains/users/adapters/memory"
	usersobs "github.com/everestcart/storefront-api/internal/domains/users/adapters/observability"
	userspostgres "github.com/everestcart/storefront-api/internal/domains/users/adapters/persistence/postgres"
	usersapp "github.com/everestcart/storefront-api/internal/domains/users/application"
	userports "github.com/everestcart/storefront-api/internal/domains/users/ports"

	"github.com/everestcart/storefront-api/internal/httpapi"
	"github.com/everestcart/storefront-api/internal/platform/migrations"
	platformobservability "github.com/everestcart/storefront-api/internal/platform/observability"
	platformpostgres "github.com/everestcart/storefront-api/internal/platform/postgres"
	"github.com/everestcart/storefront-api/internal/platform/tracking"
)

// Run boots the storefront HTTP API with observability, repositories, and
// the session-backed auth middleware wired.
func Run(ctx context.Context) error {
	const serviceName = "storefront-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	stores := buildStores(db, cfg, logger)

	catalogService := catalogobs.New(
		catalogapp.NewService(stores.catalog),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)

	userService := usersobs.New(
		usersapp.NewService(stores.users, stores.sessions),
		usersobs.WithLogger(logger),
		usersobs.WithTracer(instruments.Tracer("internal.users.application")),
		usersobs.WithMeter(instruments.Meter("internal.users.application")),
	)

	orderService := ordersobs.New(
		ordersapp.NewService(stores.orders, tracking.NewGenerator()),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	handlers := httpapi.ApiHandleFunctions{
		AuthAPI:     httpapi.NewAuthAPI(userService),
		UsersAPI:    httpapi.NewUsersAPI(userService),
		ProductsAPI: httpapi.NewProductsAPI(catalogService),
		OrdersAPI:   httpapi.NewOrdersAPI(orderService),
	}

	router := httpapi.NewRouter(handlers, httpapi.NewAuthMiddleware(userService), otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("storefront API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("storefront API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

type stores struct {
	catalog  catalogports.Repository
	orders   ordersports.Repository
	users    userports.Repository
	sessions userports.SessionStore
}

// buildStores wires the persistence adapters against postgres when a
// connection exists, otherwise against the in-memory equivalents.
func buildStores(db *gorm.DB, cfg Config, logger *slog.Logger) stores {
	if db != nil {
		logger.Info("repositories configured with postgres")
		return stores{
			catalog:  catalogpostgres.NewRepository(db),
			orders:   orderspostgres.NewRepository(db),
			users:    userspostgres.NewRepository(db),
			sessions: userspostgres.NewSessionStore(db, cfg.SessionTTL),
		}
	}
	logger.Warn("repositories configured in-memory, data will not survive restarts")
	catalogRepo := catalogmemory.NewRepository()
	usersRepo := usersmemory.NewRepository()
	ordersRepo := ordersmemory.NewRepository(catalogRepo, func(userID int64) (ordersports.CustomerSummary, bool) {
		user, err := usersRepo.GetByID(context.Background(), userID)
		if err != nil {
			return ordersports.CustomerSummary{}, false
		}
		return ordersports.CustomerSummary{
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
		}, true
	})
	return stores{
		catalog:  catalogRepo,
		orders:   ordersRepo,
		users:    usersRepo,
		sessions: usersmemory.NewSessionStore(cfg.SessionTTL),
	}
}
