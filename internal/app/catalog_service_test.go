package app

import (
	"context"
	"testing"

	"github.com/Geovany-dotcom/Backend2/internal/domain"
)

func TestCatalogService_Create_Validation(t *testing.T) {
	svc := NewCatalogService(&mockProductRepo{})
	ctx := context.Background()

	cases := []struct {
		name  string
		price float64
		stock int
	}{
		{"", 10, 1},
		{"Laptop", -1, 1},
		{"Laptop", 10, -1},
	}
	for _, c := range cases {
		if _, err := svc.Create(ctx, c.name, c.price, c.stock, nil); err != ErrValidation {
			t.Errorf("Create(%q, %v, %d): expected ErrValidation, got %v", c.name, c.price, c.stock, err)
		}
	}
}

func TestCatalogService_Update_NotFound(t *testing.T) {
	svc := NewCatalogService(&mockProductRepo{})

	_, err := svc.Update(context.Background(), 99, "Laptop", 10, 1)
	if err != ErrProductNotFound {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCatalogService_Update_Success(t *testing.T) {
	products := &mockProductRepo{
		updateFn: func(ctx context.Context, id int64, name string, price float64, stock int) (*domain.Product, error) {
			return &domain.Product{ID: id, Name: name, Price: price, Stock: stock}, nil
		},
	}
	svc := NewCatalogService(products)

	p, err := svc.Update(context.Background(), 3, "Laptop", 1200, 7)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if p.ID != 3 || p.Price != 1200 || p.Stock != 7 {
		t.Errorf("unexpected product: %+v", p)
	}
}

func TestCatalogService_Delete_NotFound(t *testing.T) {
	svc := NewCatalogService(&mockProductRepo{})

	if err := svc.Delete(context.Background(), 99); err != ErrProductNotFound {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}
