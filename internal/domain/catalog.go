package domain

import (
	"context"
	"time"
)

// Product is a catalog entry. Stock never goes below zero: placement is
// rejected when the requested quantity exceeds it.
type Product struct {
	ID        int64
	Name      string
	Price     float64
	Stock     int
	Image     *string
	CreatedAt time.Time
}

// ProductRepository is the port for catalog persistence.
type ProductRepository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	GetByName(ctx context.Context, name string) (*Product, error)
	Create(ctx context.Context, name string, price float64, stock int, image *string) (*Product, error)
	Update(ctx context.Context, id int64, name string, price float64, stock int) (*Product, error)
	// Delete removes a product, nulling out references from live and archived
	// orders first. Returns false when no such product exists.
	Delete(ctx context.Context, id int64) (bool, error)
}
