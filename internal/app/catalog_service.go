package app

import (
	"context"
	"errors"

	"github.com/Geovany-dotcom/Backend2/internal/domain"
)

// ErrProductNotFound indicates that no product matched the given id or name.
var ErrProductNotFound = errors.New("product not found")

// CatalogService encapsulates product catalog use cases.
type CatalogService struct {
	products domain.ProductRepository
}

// NewCatalogService creates a CatalogService backed by the given repository.
func NewCatalogService(products domain.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

// List returns every catalog product.
func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

// Create validates and stores a new product. image is the stored filename of
// an uploaded picture, nil when none was provided.
func (s *CatalogService) Create(ctx context.Context, name string, price float64, stock int, image *string) (*domain.Product, error) {
	if name == "" || price < 0 || stock < 0 {
		return nil, ErrValidation
	}
	return s.products.Create(ctx, name, price, stock, image)
}

// Update replaces a product's name, price and stock.
func (s *CatalogService) Update(ctx context.Context, id int64, name string, price float64, stock int) (*domain.Product, error) {
	if name == "" || price < 0 || stock < 0 {
		return nil, ErrValidation
	}
	p, err := s.products.Update(ctx, id, name, price, stock)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// Delete removes a product. Orders referencing it keep their rows with the
// product reference nulled out.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	ok, err := s.products.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProductNotFound
	}
	return nil
}
