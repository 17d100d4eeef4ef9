package app

import (
	"context"

	"github.com/Geovany-dotcom/Backend2/internal/domain"
)

const lowStockThreshold = 10

// Displayed verbatim by the storefront, hence the Spanish copy.
const lowStockMessage = "Favor de actualizar inventario"

var monthNames = map[int]string{
	1: "Enero", 2: "Febrero", 3: "Marzo", 4: "Abril",
	5: "Mayo", 6: "Junio", 7: "Julio", 8: "Agosto",
	9: "Septiembre", 10: "Octubre", 11: "Noviembre", 12: "Diciembre",
}

// ReportService encapsulates the read-only reporting use cases.
type ReportService struct {
	reports        domain.ReportRepository
	products       domain.ProductRepository
	clientSessions domain.ClientSessionRepository
}

// NewReportService creates a ReportService backed by the given repositories.
func NewReportService(reports domain.ReportRepository, products domain.ProductRepository, clientSessions domain.ClientSessionRepository) *ReportService {
	return &ReportService{reports: reports, products: products, clientSessions: clientSessions}
}

// StockStatus is one row of the stock check report.
type StockStatus struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	Message   string `json:"message"`
}

// ChartData holds the dashboard chart series: orders per month (bars) and
// orders per product (pie).
type ChartData struct {
	Bars      []int    `json:"bars"`
	BarLabels []string `json:"barLabels"`
	Pie       []int    `json:"pie"`
	PieLabels []string `json:"pieLabels"`
}

// Sales returns every sale row.
func (s *ReportService) Sales(ctx context.Context) ([]domain.Sale, error) {
	return s.reports.ListSales(ctx)
}

// TotalRevenue returns the sum of all sale totals, zero when there are none.
func (s *ReportService) TotalRevenue(ctx context.Context) (float64, error) {
	return s.reports.TotalRevenue(ctx)
}

// TopProducts returns quantity sold per product, best sellers first.
func (s *ReportService) TopProducts(ctx context.Context) ([]domain.ProductDemand, error) {
	return s.reports.TopProducts(ctx)
}

// VerifyStock reports every product's stock level with a restock warning on
// products below the threshold.
func (s *ReportService) VerifyStock(ctx context.Context) ([]StockStatus, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]StockStatus, 0, len(products))
	for _, p := range products {
		st := StockStatus{ProductID: p.ID, Name: p.Name, Stock: p.Stock}
		if p.Stock < lowStockThreshold {
			st.Message = lowStockMessage
		}
		out = append(out, st)
	}
	return out, nil
}

// Panel returns the dashboard headline counters.
func (s *ReportService) Panel(ctx context.Context) (domain.PanelData, error) {
	return s.reports.PanelCounts(ctx)
}

// Charts assembles the dashboard chart series from the monthly and
// per-product order counts.
func (s *ReportService) Charts(ctx context.Context) (*ChartData, error) {
	months, err := s.reports.OrdersPerMonth(ctx)
	if err != nil {
		return nil, err
	}
	perProduct, err := s.reports.OrdersPerProduct(ctx)
	if err != nil {
		return nil, err
	}

	data := &ChartData{
		Bars:      make([]int, 0, len(months)),
		BarLabels: make([]string, 0, len(months)),
		Pie:       make([]int, 0, len(perProduct)),
		PieLabels: make([]string, 0, len(perProduct)),
	}
	for _, m := range months {
		data.Bars = append(data.Bars, m.Total)
		data.BarLabels = append(data.BarLabels, monthNames[m.Month])
	}
	for _, p := range perProduct {
		data.Pie = append(data.Pie, p.Total)
		data.PieLabels = append(data.PieLabels, p.Name)
	}
	return data, nil
}

// ClientSessions returns the customer login audit log.
func (s *ReportService) ClientSessions(ctx context.Context) ([]domain.ClientSessionInfo, error) {
	return s.clientSessions.List(ctx)
}
