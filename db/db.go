// Package db establishes the PostgreSQL connection pool and runs schema
// migrations. The pool is opened once at process start, passed explicitly to
// every service, and closed at shutdown.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // migrate postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // file-based migrations
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq" // database/sql driver used by migrate

	"github.com/user/periferia-go/apperror"
	"github.com/user/periferia-go/config"
)

// NewPool creates a pgx connection pool from the database configuration and
// verifies connectivity with a ping.
func NewPool(cfg *config.DatabaseConfig) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error parsing DSN for database %s", cfg.DBName), err)
	}
	poolConfig.MaxConns = int32(cfg.PoolSize)
	poolConfig.MaxConnIdleTime = 10 * time.Minute
	poolConfig.MaxConnLifetime = 30 * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error creating pool for database %s", cfg.DBName), err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error connecting to database %s", cfg.DBName), err)
	}

	return pool, nil
}

// migrateDSN builds the lib/pq style DSN that golang-migrate's postgres
// driver expects.
func migrateDSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName,
	)
}

// RunMigrations applies any pending migrations from migrationsPath. The
// schema owns the uniqueness constraints (users.email, users.alias, the
// (user_id, post_id) pair on likes) and the cascade from posts to likes.
func RunMigrations(cfg *config.DatabaseConfig, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, migrateDSN(cfg))
	if err != nil {
		return apperror.NewMigrationError("failed to create migrator", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			fmt.Printf("warning: error closing migration source: %v\n", srcErr)
		}
		if dbErr != nil {
			fmt.Printf("warning: error closing migration database: %v\n", dbErr)
		}
	}()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return apperror.NewMigrationError("failed to run migrations", err)
	}
	return nil
}
