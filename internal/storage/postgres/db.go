package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// DB owns the pgx pool and the database/sql handle the stores run on.
type DB struct {
	pool *pgxpool.Pool
	sql  *sql.DB
}

// Connect opens the pool, verifies connectivity and applies migrations.
func Connect(ctx context.Context, databaseURL string, maxConns int32, logger zerolog.Logger) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	d := &DB{pool: pool, sql: stdlib.OpenDBFromPool(pool)}
	if err := d.migrate(ctx); err != nil {
		d.Close()
		return nil, err
	}

	logger.Info().
		Str("host", cfg.ConnConfig.Host).
		Str("database", cfg.ConnConfig.Database).
		Int32("max_conns", cfg.MaxConns).
		Msg("database ready")
	return d, nil
}

// SQL returns the database/sql handle backed by the pool.
func (d *DB) SQL() *sql.DB {
	return d.sql
}

// Close releases database resources.
func (d *DB) Close() {
	if d.sql != nil {
		_ = d.sql.Close()
	}
	if d.pool != nil {
		d.pool.Close()
	}
}

func (d *DB) migrate(ctx context.Context) error {
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, d.sql, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
