package domain

import "context"

// ProductDemand is one row of the best-sellers report.
type ProductDemand struct {
	ProductName string `json:"product_name"`
	TotalSold   int    `json:"total_sold"`
}

// PanelData holds the dashboard headline counters.
type PanelData struct {
	Products  int `json:"products"`
	Stock     int `json:"stock"`
	Customers int `json:"customers"`
	Orders    int `json:"orders"`
}

// MonthCount is the number of orders placed in one calendar month (1-12).
type MonthCount struct {
	Month int
	Total int
}

// ProductCount is the number of orders placed for one product.
type ProductCount struct {
	Name  string
	Total int
}

// ReportRepository is the port for the read-only reporting queries.
type ReportRepository interface {
	ListSales(ctx context.Context) ([]Sale, error)
	TotalRevenue(ctx context.Context) (float64, error)
	TopProducts(ctx context.Context) ([]ProductDemand, error)
	PanelCounts(ctx context.Context) (PanelData, error)
	OrdersPerMonth(ctx context.Context) ([]MonthCount, error)
	OrdersPerProduct(ctx context.Context) ([]ProductCount, error)
}
