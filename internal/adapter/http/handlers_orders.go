package adapthttp

import (
	"net/http"

	"github.com/Geovany-dotcom/Backend2/internal/domain"
)

func (s *Server) handlePurchase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductName string `json:"product_name"`
		Quantity    int    `json:"quantity"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	orderID, err := s.orders.Place(r.Context(), principalFromContext(r), req.ProductName, req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "purchase completed", "order_id": orderID})
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.orders.Cancel(r.Context(), principalFromContext(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "order cancelled"})
}

func (s *Server) handleMyOrders(w http.ResponseWriter, r *http.Request) {
	items, err := s.orders.ListMine(r.Context(), principalFromContext(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []domain.OrderLine{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleAllOrders(w http.ResponseWriter, r *http.Request) {
	items, err := s.orders.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []domain.OrderSummary{}
	}
	writeJSON(w, http.StatusOK, items)
}
