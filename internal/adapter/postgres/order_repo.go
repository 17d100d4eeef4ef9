package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Geovany-dotcom/Backend2/internal/domain"
)

// OrderRepo implements the order lifecycle on DB.
type OrderRepo struct {
	db *DB
}

// NewOrderRepo wraps a DB as an OrderRepository.
func NewOrderRepo(db *DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// GetByID retrieves an order by id, (nil, nil) when absent.
func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT id, customer_id, product_id, quantity, created_at FROM orders WHERE id = $1",
		id,
	).Scan(&o.ID, &o.CustomerID, &o.ProductID, &o.Quantity, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Place records a purchase in one transaction: guarded stock decrement, order
// insert, sale insert. Returns domain.ErrInsufficientStock when the guard
// finds less stock than requested.
func (r *OrderRepo) Place(ctx context.Context, p domain.Placement) (int64, error) {
	tx, err := r.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"UPDATE products SET stock = stock - $2 WHERE id = $1 AND stock >= $2",
		p.ProductID, p.Quantity,
	)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, domain.ErrInsufficientStock
	}

	now := time.Now()
	var orderID int64
	err = tx.QueryRowContext(ctx,
		"INSERT INTO orders (customer_id, product_id, quantity, created_at) VALUES ($1, $2, $3, $4) RETURNING id",
		p.CustomerID, p.ProductID, p.Quantity, now,
	).Scan(&orderID)
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO sales (order_id, customer_id, username, product_name, quantity, total, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		orderID, p.CustomerID, p.Username, p.ProductName, p.Quantity, p.Total, now,
	)
	if err != nil {
		return 0, err
	}

	return orderID, tx.Commit()
}

// Cancel archives the order, deletes its sales, restores the product stock
// and removes the order, all within one transaction.
func (r *OrderRepo) Cancel(ctx context.Context, o domain.Order, cancelledAt time.Time) error {
	tx, err := r.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO cancelled_orders (order_id, customer_id, product_id, quantity, cancelled_at) VALUES ($1, $2, $3, $4, $5)",
		o.ID, o.CustomerID, o.ProductID, o.Quantity, cancelledAt,
	)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM sales WHERE order_id = $1", o.ID); err != nil {
		return err
	}
	if o.ProductID != nil {
		_, err = tx.ExecContext(ctx,
			"UPDATE products SET stock = stock + $2 WHERE id = $1",
			*o.ProductID, o.Quantity,
		)
		if err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", o.ID); err != nil {
		return err
	}

	return tx.Commit()
}

// ListForCustomer returns the customer's orders with product name and line
// total, most recent first.
func (r *OrderRepo) ListForCustomer(ctx context.Context, customerID int64) ([]domain.OrderLine, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		`SELECT o.id, p.name, o.quantity, p.price * o.quantity, o.created_at
		 FROM orders o JOIN products p ON o.product_id = p.id
		 WHERE o.customer_id = $1 ORDER BY o.created_at DESC`,
		customerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.OrderLine
	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(&l.OrderID, &l.ProductName, &l.Quantity, &l.Total, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ListAll returns every order with customer and product names, most recent
// first.
func (r *OrderRepo) ListAll(ctx context.Context) ([]domain.OrderSummary, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		`SELECT o.id, c.name, p.name, o.quantity, o.created_at
		 FROM orders o
		 JOIN customers c ON o.customer_id = c.id
		 JOIN products p ON o.product_id = p.id
		 ORDER BY o.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.OrderSummary
	for rows.Next() {
		var s domain.OrderSummary
		if err := rows.Scan(&s.OrderID, &s.CustomerName, &s.ProductName, &s.Quantity, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
