package postgres

import (
	"context"

	"github.com/Geovany-dotcom/Backend2/internal/domain"
)

// ReportRepo implements the read-only reporting queries on DB.
type ReportRepo struct {
	db *DB
}

// NewReportRepo wraps a DB as a ReportRepository.
func NewReportRepo(db *DB) *ReportRepo {
	return &ReportRepo{db: db}
}

// ListSales returns every sale row, most recent first.
func (r *ReportRepo) ListSales(ctx context.Context) ([]domain.Sale, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		"SELECT id, order_id, customer_id, username, product_name, quantity, total, created_at FROM sales ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Sale
	for rows.Next() {
		var s domain.Sale
		if err := rows.Scan(&s.ID, &s.OrderID, &s.CustomerID, &s.Username, &s.ProductName, &s.Quantity, &s.Total, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// TotalRevenue returns the sum of all sale totals, zero when there are none.
func (r *ReportRepo) TotalRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.sql.QueryRowContext(ctx, "SELECT COALESCE(SUM(total), 0) FROM sales").Scan(&total)
	return total, err
}

// TopProducts returns quantity sold per product, best sellers first.
func (r *ReportRepo) TopProducts(ctx context.Context) ([]domain.ProductDemand, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		"SELECT product_name, SUM(quantity) FROM sales GROUP BY product_name ORDER BY SUM(quantity) DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ProductDemand
	for rows.Next() {
		var p domain.ProductDemand
		if err := rows.Scan(&p.ProductName, &p.TotalSold); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// PanelCounts returns the dashboard headline counters.
func (r *ReportRepo) PanelCounts(ctx context.Context) (domain.PanelData, error) {
	var d domain.PanelData
	err := r.db.sql.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM products),
		        (SELECT COALESCE(SUM(stock), 0) FROM products),
		        (SELECT COUNT(*) FROM customers),
		        (SELECT COUNT(*) FROM orders)`,
	).Scan(&d.Products, &d.Stock, &d.Customers, &d.Orders)
	return d, err
}

// OrdersPerMonth returns order counts grouped by calendar month, ascending.
func (r *ReportRepo) OrdersPerMonth(ctx context.Context) ([]domain.MonthCount, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		"SELECT EXTRACT(MONTH FROM created_at)::int, COUNT(*) FROM orders GROUP BY 1 ORDER BY 1")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.MonthCount
	for rows.Next() {
		var m domain.MonthCount
		if err := rows.Scan(&m.Month, &m.Total); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// OrdersPerProduct returns order counts grouped by product name.
func (r *ReportRepo) OrdersPerProduct(ctx context.Context) ([]domain.ProductCount, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		`SELECT p.name, COUNT(*)
		 FROM products p JOIN orders o ON p.id = o.product_id
		 GROUP BY p.name ORDER BY p.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ProductCount
	for rows.Next() {
		var p domain.ProductCount
		if err := rows.Scan(&p.Name, &p.Total); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
