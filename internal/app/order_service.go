package app

import (
	"context"
	"errors"
	"time"

	"github.com/Geovany-dotcom/Backend2/internal/domain"
)

var (
	// ErrNotCustomer indicates the operation requires a logged-in customer.
	ErrNotCustomer = errors.New("customer login required")
	// ErrInsufficientStock indicates the requested quantity exceeds stock.
	ErrInsufficientStock = domain.ErrInsufficientStock
)

// OrderService encapsulates the order lifecycle: placement against available
// stock and transactional cancellation.
type OrderService struct {
	products domain.ProductRepository
	orders   domain.OrderRepository
}

// NewOrderService creates an OrderService backed by the given repositories.
func NewOrderService(products domain.ProductRepository, orders domain.OrderRepository) *OrderService {
	return &OrderService{products: products, orders: orders}
}

// Place records a purchase of quantity units of the named product for the
// calling principal. The stock decrement, order insert and sale insert are
// all-or-nothing; the sale total is price times quantity at purchase time.
func (s *OrderService) Place(ctx context.Context, principal *domain.Principal, productName string, quantity int) (int64, error) {
	p, err := s.products.GetByName(ctx, productName)
	if err != nil {
		return 0, err
	}
	if p == nil {
		return 0, ErrProductNotFound
	}
	if quantity <= 0 {
		return 0, ErrValidation
	}
	if quantity > p.Stock {
		return 0, ErrInsufficientStock
	}
	if principal == nil || principal.Role != domain.RoleCustomer {
		return 0, ErrNotCustomer
	}
	return s.orders.Place(ctx, domain.Placement{
		CustomerID:  principal.ID,
		ProductID:   p.ID,
		Quantity:    quantity,
		Username:    principal.Username,
		ProductName: p.Name,
		Total:       p.Price * float64(quantity),
	})
}

// Cancel archives and removes an order owned by the calling customer,
// restoring its quantity to the product's stock. A missing order and an
// order owned by someone else are both reported as forbidden.
func (s *OrderService) Cancel(ctx context.Context, principal *domain.Principal, orderID int64) error {
	if principal == nil || principal.Role != domain.RoleCustomer {
		return ErrForbidden
	}
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if o == nil || o.CustomerID != principal.ID {
		return ErrForbidden
	}
	return s.orders.Cancel(ctx, *o, time.Now())
}

// ListMine returns the calling customer's orders with product name and line
// total.
func (s *OrderService) ListMine(ctx context.Context, principal *domain.Principal) ([]domain.OrderLine, error) {
	if principal == nil || principal.Role != domain.RoleCustomer {
		return nil, ErrNotCustomer
	}
	return s.orders.ListForCustomer(ctx, principal.ID)
}

// ListAll returns every order with customer and product names.
func (s *OrderService) ListAll(ctx context.Context) ([]domain.OrderSummary, error) {
	return s.orders.ListAll(ctx)
}
