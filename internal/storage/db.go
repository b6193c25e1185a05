package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/samims/notification-api/internal/config"
)

const (
	driverPgx    = "pgx"
	driverSQLite = "sqlite"
)

// Open connects to the configured database. The returned func releases
// every resource Open acquired.
func Open(ctx context.Context, dbCfg config.DBConfig) (*sqlx.DB, func(), error) {
	switch dbCfg.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, dbCfg)
	case config.DriverSQLite:
		db, err := OpenSQLite(ctx, dbCfg.URL)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported driver %q", dbCfg.Driver)
	}
}

func openPostgres(ctx context.Context, dbCfg config.DBConfig) (*sqlx.DB, func(), error) {
	poolCfg, err := pgxpool.ParseConfig(dbCfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse postgres url: %w", err)
	}
	if dbCfg.MaxOpenConn > 0 {
		poolCfg.MaxConns = int32(dbCfg.MaxOpenConn)
	}
	if dbCfg.ConnMaxIdle > 0 {
		poolCfg.MaxConnIdleTime = dbCfg.ConnMaxIdle
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create pool: %w", err)
	}

	db := sqlx.NewDb(stdlib.OpenDBFromPool(pool), driverPgx)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		pool.Close()
		return nil, nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	closeFn := func() {
		_ = db.Close()
		pool.Close()
	}
	return db, closeFn, nil
}

// OpenSQLite opens a SQLite database. ":memory:" yields a private in-memory
// database, which is why the pool is pinned to a single connection.
func OpenSQLite(ctx context.Context, path string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverSQLite, sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}
	return db, nil
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "_pragma=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
}
