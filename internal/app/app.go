// Package app assembles the server: storage reset to the seed set, stores,
// event subscribers, tracing and the HTTP router.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/inventory-tracker/api"
	"github.com/frahmantamala/inventory-tracker/internal"
	"github.com/frahmantamala/inventory-tracker/internal/auth"
	"github.com/frahmantamala/inventory-tracker/internal/category"
	categoryPostgres "github.com/frahmantamala/inventory-tracker/internal/category/postgres"
	"github.com/frahmantamala/inventory-tracker/internal/core/events"
	"github.com/frahmantamala/inventory-tracker/internal/dashboard"
	"github.com/frahmantamala/inventory-tracker/internal/inventory"
	inventoryPostgres "github.com/frahmantamala/inventory-tracker/internal/inventory/postgres"
	"github.com/frahmantamala/inventory-tracker/internal/observability"
	"github.com/frahmantamala/inventory-tracker/internal/seed"
	"github.com/frahmantamala/inventory-tracker/internal/storage"
	"github.com/frahmantamala/inventory-tracker/internal/transport"
	"github.com/frahmantamala/inventory-tracker/internal/transport/middleware"
	"github.com/frahmantamala/inventory-tracker/internal/transport/rest"
	"github.com/frahmantamala/inventory-tracker/internal/user"
	userPostgres "github.com/frahmantamala/inventory-tracker/internal/user/postgres"
	"github.com/go-chi/chi"
	"gorm.io/gorm"
)

type App struct {
	Config    *internal.Config
	Logger    *slog.Logger
	DB        *gorm.DB
	Router    *chi.Mux
	Bus       *events.EventBus
	Inventory *inventory.Store
	Users     *user.Store

	shutdownTracing func(context.Context) error
}

// New opens storage, resets it to the seed set and wires every component.
// now stamps the seed data.
func New(ctx context.Context, cfg *internal.Config, logger *slog.Logger, now time.Time) (*App, error) {
	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Observability.Tracing)
	if err != nil {
		return nil, fmt.Errorf("setup tracing: %w", err)
	}

	db, err := storage.Open(cfg.Storage)
	if err != nil {
		_ = shutdownTracing(ctx)
		return nil, fmt.Errorf("open storage: %w", err)
	}

	a := &App{
		Config:          cfg,
		Logger:          logger,
		DB:              db,
		Router:          chi.NewRouter(),
		Bus:             events.NewEventBus(logger),
		shutdownTracing: shutdownTracing,
	}

	if err := a.init(ctx, now); err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context, now time.Time) error {
	if err := storage.Migrate(ctx, a.DB, a.Config.Storage); err != nil {
		return fmt.Errorf("migrate storage: %w", err)
	}
	if err := seed.Reset(ctx, a.DB, now); err != nil {
		return fmt.Errorf("seed storage: %w", err)
	}
	a.Logger.Info("storage reset to seed data", "driver", a.Config.Storage.Driver)

	a.Bus.Subscribe(events.EventTypeStockStatusChanged, StockAlertHandler(a.Logger))

	a.Users = user.NewStore(userPostgres.NewUserRepository(a.DB), a.Logger)
	a.Inventory = inventory.NewStore(inventoryPostgres.NewInventoryRepository(a.DB), a.Logger,
		inventory.WithEventPublisher(a.Bus))
	categories := category.NewService(categoryPostgres.NewCategoryRepository(a.DB), a.Logger)
	dashboards := dashboard.NewService(a.Inventory, a.Logger)

	authService := auth.NewService(a.Users, auth.NewJWTTokenGenerator(a.Config.Security), a.Logger)

	base := transport.NewBaseHandler(a.Logger)

	sqlxDB, err := storage.SQLX(a.DB, a.Config.Storage.Driver)
	if err != nil {
		return fmt.Errorf("wrap storage for health checks: %w", err)
	}

	handlers := rest.Handlers{
		Health:    rest.NewHealthHandler(sqlxDB, a.Config.Storage.Driver),
		Auth:      auth.NewHandler(base, authService),
		RBAC:      auth.NewRBACAuthorization(base),
		User:      user.NewHandler(base, a.Users),
		Inventory: inventory.NewHandler(base, a.Inventory, categories),
		Category:  category.NewHandler(base, categories, a.Inventory),
		Dashboard: dashboard.NewHandler(base, dashboards),
		Spec:      api.Spec,
	}

	if a.Config.Server.ValidateRequests {
		doc, err := api.Load(ctx)
		if err != nil {
			return err
		}
		validator, err := middleware.OpenAPIValidator(doc)
		if err != nil {
			return err
		}
		handlers.Validator = validator
	}

	rest.RegisterAllRoutes(a.Router, handlers, a.Config.Server.AllowedOrigins, a.Logger)
	return nil
}

// Close releases storage and flushes pending spans.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if sqlDB, err := a.DB.DB(); err == nil {
		errs = append(errs, sqlDB.Close())
	} else {
		errs = append(errs, err)
	}
	if a.shutdownTracing != nil {
		errs = append(errs, a.shutdownTracing(ctx))
	}
	return errors.Join(errs...)
}
