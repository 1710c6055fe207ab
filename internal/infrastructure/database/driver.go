package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/eslsoft/studyhub/internal/infrastructure/config"
	"github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// NewDriver opens the configured database and wraps it in an ent SQL driver.
//
//	postgres  database/sql over lib/pq
//	pgx       database/sql over a pgxpool (with pgx tracing when log_sql is on)
//	sqlite3   a single mattn/go-sqlite3 connection with foreign keys enforced
func NewDriver(cfg *config.Config, logger *logrus.Logger) (dialect.Driver, func(), error) {
	var (
		drv     dialect.Driver
		cleanup func()
		err     error
	)
	switch cfg.DatabaseDriver() {
	case config.DriverPostgres:
		drv, cleanup, err = openSQL(cfg, "postgres", dialect.Postgres)
	case config.DriverPgx:
		drv, cleanup, err = openPgx(cfg, logger)
	case config.DriverSQLite:
		drv, cleanup, err = openSQLite(cfg)
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, nil, err
	}

	if cfg.Database.LogSQL && cfg.DatabaseDriver() != config.DriverPgx {
		entry := logger.WithField("component", "sql")
		drv = dialect.DebugWithContext(drv, func(ctx context.Context, args ...any) {
			entry.WithContext(ctx).Debug(args...)
		})
	}
	return drv, cleanup, nil
}

func openSQL(cfg *config.Config, driverName, dialectName string) (dialect.Driver, func(), error) {
	rawDB, err := sql.Open(driverName, cfg.DatabaseURL())
	if err != nil {
		return nil, nil, fmt.Errorf("open sql db: %w", err)
	}
	if cfg.Database.MaxConns > 0 {
		rawDB.SetMaxOpenConns(int(cfg.Database.MaxConns))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rawDB.PingContext(ctx); err != nil {
		rawDB.Close()
		return nil, nil, fmt.Errorf("ping sql db: %w", err)
	}

	drv := entsql.OpenDB(dialectName, rawDB)
	return drv, func() { _ = drv.Close() }, nil
}

func openPgx(cfg *config.Config, logger *logrus.Logger) (dialect.Driver, func(), error) {
	pool, closePool, err := NewConnection(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	rawDB := stdlib.OpenDBFromPool(pool)
	drv := entsql.OpenDB(dialect.Postgres, rawDB)
	return drv, func() {
		_ = drv.Close()
		closePool()
	}, nil
}

func openSQLite(cfg *config.Config) (dialect.Driver, func(), error) {
	return OpenSQLite(cfg.DatabaseURL())
}

// OpenSQLite opens a SQLite database behind a single connection so writers never interleave.
func OpenSQLite(dsn string) (dialect.Driver, func(), error) {
	rawDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite db: %w", err)
	}
	rawDB.SetMaxOpenConns(1)
	rawDB.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rawDB.PingContext(ctx); err != nil {
		rawDB.Close()
		return nil, nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := rawDB.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		rawDB.Close()
		return nil, nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
	}

	drv := entsql.OpenDB(dialect.SQLite, rawDB)
	return drv, func() { _ = drv.Close() }, nil
}
