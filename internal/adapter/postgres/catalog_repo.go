package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Geovany-dotcom/Backend2/internal/domain"
)

// ProductRepo implements the catalog on DB.
type ProductRepo struct {
	db *DB
}

// NewProductRepo wraps a DB as a ProductRepository.
func NewProductRepo(db *DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// List returns every product.
func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		"SELECT id, name, price, stock, image, created_at FROM products ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.Image, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetByID retrieves a product by id, (nil, nil) when absent.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT id, name, price, stock, image, created_at FROM products WHERE id = $1",
		id,
	).Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.Image, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByName retrieves a product by name, (nil, nil) when absent.
func (r *ProductRepo) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT id, name, price, stock, image, created_at FROM products WHERE name = $1",
		name,
	).Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.Image, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new product.
func (r *ProductRepo) Create(ctx context.Context, name string, price float64, stock int, image *string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.sql.QueryRowContext(ctx,
		"INSERT INTO products (name, price, stock, image, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id, name, price, stock, image, created_at",
		name, price, stock, image, time.Now(),
	).Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.Image, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update replaces a product's name, price and stock, (nil, nil) when absent.
func (r *ProductRepo) Update(ctx context.Context, id int64, name string, price float64, stock int) (*domain.Product, error) {
	var p domain.Product
	err := r.db.sql.QueryRowContext(ctx,
		"UPDATE products SET name = $2, price = $3, stock = $4 WHERE id = $1 RETURNING id, name, price, stock, image, created_at",
		id, name, price, stock,
	).Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.Image, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete nulls out order references to the product and removes it, all within
// one transaction. Returns false when no such product exists.
func (r *ProductRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tx, err := r.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "UPDATE orders SET product_id = NULL WHERE product_id = $1", id); err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx, "UPDATE cancelled_orders SET product_id = NULL WHERE product_id = $1", id); err != nil {
		return false, err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	return true, tx.Commit()
}
