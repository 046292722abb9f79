// Package storage opens the relational store behind every repository and
// brings its schema up to date.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/frahmantamala/inventory-tracker/internal"
	categoryDatamodel "github.com/frahmantamala/inventory-tracker/internal/core/datamodel/category"
	inventoryDatamodel "github.com/frahmantamala/inventory-tracker/internal/core/datamodel/inventory"
	userDatamodel "github.com/frahmantamala/inventory-tracker/internal/core/datamodel/user"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

//go:embed migrations/*.sql
var MigrationsFS embed.FS

const MigrationsDir = "migrations"

// Models lists every table the application owns.
func Models() []interface{} {
	return []interface{}{
		&userDatamodel.User{},
		&inventoryDatamodel.InventoryItem{},
		&categoryDatamodel.InventoryCategory{},
	}
}

// SQLDriverName is the database/sql driver registered for a storage driver.
func SQLDriverName(driver string) string {
	if driver == internal.StorageDriverPostgres {
		return "pgx"
	}
	return "sqlite3"
}

// Open connects to the configured store and applies the pool settings.
func Open(cfg internal.StorageConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case internal.StorageDriverSQLite:
		dialector = sqlite.Open(cfg.Source)
	case internal.StorageDriverPostgres:
		dialector = postgres.New(postgres.Config{DSN: cfg.Source})
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping %s storage: %w", cfg.Driver, err)
	}
	return db, nil
}

// Migrate brings the schema up to date. Postgres runs the embedded goose
// migrations; SQLite, which only ever holds a session's data, is migrated
// from the models.
func Migrate(ctx context.Context, db *gorm.DB, cfg internal.StorageConfig) error {
	if cfg.Driver != internal.StorageDriverPostgres {
		if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return RunGoose(ctx, sqlDB, cfg.MigrationsTable, "up")
}

// RunGoose runs a goose command against the embedded migrations.
func RunGoose(ctx context.Context, db *sql.DB, table, command string) error {
	goose.SetBaseFS(MigrationsFS)
	if table != "" {
		goose.SetTableName(table)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.RunContext(ctx, command, db, MigrationsDir); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// SQLX wraps the pool behind db for the raw queries of the health probes.
func SQLX(db *gorm.DB, driver string) (*sqlx.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return sqlx.NewDb(sqlDB, SQLDriverName(driver)), nil
}
