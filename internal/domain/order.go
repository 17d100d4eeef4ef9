package domain

import (
	"context"
	"errors"
	"time"
)

// ErrInsufficientStock is returned by OrderRepository.Place when the guarded
// stock decrement finds less stock than requested at commit time.
var ErrInsufficientStock = errors.New("insufficient stock")

// Order is a pending purchase. Cancellation archives and deletes it; there is
// no retained terminal state.
type Order struct {
	ID         int64
	CustomerID int64
	ProductID  *int64
	Quantity   int
	CreatedAt  time.Time
}

// CancelledOrder is the append-only archive row written when an order is
// cancelled.
type CancelledOrder struct {
	OrderID     int64
	CustomerID  int64
	ProductID   *int64
	Quantity    int
	CancelledAt time.Time
}

// Sale is the financial record written alongside order placement. Username and
// product name are snapshots taken at purchase time.
type Sale struct {
	ID          int64     `json:"sale_id"`
	OrderID     int64     `json:"order_id"`
	CustomerID  int64     `json:"customer_id"`
	Username    string    `json:"username"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Total       float64   `json:"total"`
	CreatedAt   time.Time `json:"created_at"`
}

// Placement carries everything the repository needs to record a purchase
// atomically: stock decrement, order insert and sale insert.
type Placement struct {
	CustomerID  int64
	ProductID   int64
	Quantity    int
	Username    string
	ProductName string
	Total       float64
}

// OrderLine is a customer-facing view of one of their orders.
type OrderLine struct {
	OrderID     int64     `json:"order_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Total       float64   `json:"total"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrderSummary is the back-office view of any order.
type OrderSummary struct {
	OrderID      int64     `json:"order_id"`
	CustomerName string    `json:"customer_name"`
	ProductName  string    `json:"product_name"`
	Quantity     int       `json:"quantity"`
	CreatedAt    time.Time `json:"created_at"`
}

// OrderRepository is the port for the order lifecycle. Place and Cancel are
// all-or-nothing: implementations must not leave partial state behind.
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*Order, error)
	Place(ctx context.Context, p Placement) (int64, error)
	Cancel(ctx context.Context, o Order, cancelledAt time.Time) error
	ListForCustomer(ctx context.Context, customerID int64) ([]OrderLine, error)
	ListAll(ctx context.Context) ([]OrderSummary, error)
}
