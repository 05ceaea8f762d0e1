// Package gormdb contains the concrete implementation of the persistence
// layer using GORM, with PostgreSQL for deployment and SQLite for embedded
// use.
package gormdb

import (
	"context"
	"fmt"
	"log/slog"

	"rentease/config"
	"rentease/internal/domain/lifecycle"
	"rentease/internal/errors"
	"rentease/internal/infra/persistence/model"

	"github.com/glebarez/sqlite"
	"go.uber.org/fx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the GORM database handle, runs schema migration, and registers
// lifecycle hooks for connection checks and shutdown.
func New(params Params) (*gorm.DB, error) {
	dbCfg := params.Config.Database
	if dbCfg == nil {
		return nil, errors.New("database configuration is missing")
	}

	dialector, err := openDialector(dbCfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		// Multi-step atomic operations go through txManager.Execute;
		// GORM's implicit per-statement transaction is unnecessary.
		SkipDefaultTransaction: true,
		// Constraint violations surface as gorm.ErrDuplicatedKey and
		// friends rather than driver-specific errors.
		TranslateError: true,
		// Cascade on account deletion is application-level; the schema
		// carries no FK constraint so orphans remain representable.
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger: newGormSlogLogger(params.Logger, params.Config),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s database", dbCfg.Driver)
	}

	if err := db.AutoMigrate(&model.UserModel{}, &model.ListingModel{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate schema")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sql.DB")
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			return errors.Wrap(sqlDB.PingContext(ctx), "failed to ping database")
		},
		OnStop: func(context.Context) error {
			return sqlDB.Close()
		},
	})

	return db, nil
}

func openDialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres", "":
		dsn := fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
		)

		return postgres.Open(dsn), nil
	case "sqlite":
		if cfg.Path == "" {
			return nil, errors.New("sqlite driver requires database.path")
		}

		return sqlite.Open(cfg.Path), nil
	default:
		return nil, errors.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}
