// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps a *sql.DB and implements the domain repository interfaces.
type DB struct {
	sql *sql.DB
}

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS customers (id BIGSERIAL PRIMARY KEY, name TEXT NOT NULL, surname TEXT NOT NULL, email TEXT NOT NULL, username TEXT UNIQUE NOT NULL, password_hash TEXT NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE TABLE IF NOT EXISTS administrators (id BIGSERIAL PRIMARY KEY, username TEXT UNIQUE NOT NULL, password_hash TEXT NOT NULL);",
		"CREATE TABLE IF NOT EXISTS products (id BIGSERIAL PRIMARY KEY, name TEXT UNIQUE NOT NULL, price DOUBLE PRECISION NOT NULL, stock INTEGER NOT NULL CHECK(stock >= 0), image TEXT, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE TABLE IF NOT EXISTS orders (id BIGSERIAL PRIMARY KEY, customer_id BIGINT NOT NULL REFERENCES customers(id), product_id BIGINT REFERENCES products(id), quantity INTEGER NOT NULL CHECK(quantity > 0), created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_orders_customer_id ON orders(customer_id);",
		"CREATE TABLE IF NOT EXISTS cancelled_orders (order_id BIGINT NOT NULL, customer_id BIGINT NOT NULL, product_id BIGINT, quantity INTEGER NOT NULL, cancelled_at TIMESTAMPTZ NOT NULL);",
		"CREATE TABLE IF NOT EXISTS sales (id BIGSERIAL PRIMARY KEY, order_id BIGINT NOT NULL, customer_id BIGINT NOT NULL, username TEXT NOT NULL, product_name TEXT NOT NULL, quantity INTEGER NOT NULL, total DOUBLE PRECISION NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_sales_order_id ON sales(order_id);",
		"CREATE TABLE IF NOT EXISTS client_sessions (id BIGSERIAL PRIMARY KEY, customer_id BIGINT UNIQUE NOT NULL REFERENCES customers(id), login_at TIMESTAMPTZ NOT NULL, logout_at TIMESTAMPTZ, ip TEXT NOT NULL);",
		"CREATE TABLE IF NOT EXISTS auth_sessions (token TEXT PRIMARY KEY, role TEXT NOT NULL, principal_id BIGINT NOT NULL, username TEXT NOT NULL, expires_at TIMESTAMPTZ NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_auth_sessions_expires_at ON auth_sessions(expires_at);",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
