package adapthttp

import (
	"net/http"

	"github.com/Geovany-dotcom/Backend2/internal/app"
	"github.com/Geovany-dotcom/Backend2/internal/domain"
)

func (s *Server) handleSales(w http.ResponseWriter, r *http.Request) {
	items, err := s.reports.Sales(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []domain.Sale{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleTotalRevenue(w http.ResponseWriter, r *http.Request) {
	total, err := s.reports.TotalRevenue(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"total_revenue": total})
}

func (s *Server) handleTopProducts(w http.ResponseWriter, r *http.Request) {
	items, err := s.reports.TopProducts(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []domain.ProductDemand{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleVerifyStock(w http.ResponseWriter, r *http.Request) {
	items, err := s.reports.VerifyStock(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []app.StockStatus{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handlePanel(w http.ResponseWriter, r *http.Request) {
	data, err := s.reports.Panel(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	data, err := s.reports.Charts(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleClientSessions(w http.ResponseWriter, r *http.Request) {
	items, err := s.reports.ClientSessions(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []domain.ClientSessionInfo{}
	}
	writeJSON(w, http.StatusOK, items)
}
