package memory

import (
	"context"
	"testing"
	"time"

	"github.com/Geovany-dotcom/Backend2/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepo_PlaceAndCancel_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db := New()
	products := db.NewProductRepo()
	orders := db.NewOrderRepo()
	reports := db.NewReportRepo()

	cust, err := db.Create(ctx, "Ana", "Lopez", "ana@example.com", "ana", "hash")
	require.NoError(t, err)

	p, err := products.Create(ctx, "Laptop", 1500, 5, nil)
	require.NoError(t, err)

	orderID, err := orders.Place(ctx, domain.Placement{
		CustomerID:  cust.ID,
		ProductID:   p.ID,
		Quantity:    3,
		Username:    cust.Username,
		ProductName: p.Name,
		Total:       4500,
	})
	require.NoError(t, err)

	got, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock)

	sales, err := reports.ListSales(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, orderID, sales[0].OrderID)
	assert.Equal(t, 4500.0, sales[0].Total)

	o, err := orders.GetByID(ctx, orderID)
	require.NoError(t, err)
	require.NotNil(t, o)

	err = orders.Cancel(ctx, *o, time.Now())
	require.NoError(t, err)

	got, err = products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock, "cancellation must restore the stock")

	sales, err = reports.ListSales(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales, "cancellation must remove the sale")

	o, err = orders.GetByID(ctx, orderID)
	require.NoError(t, err)
	assert.Nil(t, o, "cancelled order must be gone")
}

func TestOrderRepo_Place_InsufficientStock(t *testing.T) {
	ctx := context.Background()
	db := New()
	products := db.NewProductRepo()
	orders := db.NewOrderRepo()

	p, err := products.Create(ctx, "Mouse", 20, 2, nil)
	require.NoError(t, err)

	_, err = orders.Place(ctx, domain.Placement{
		CustomerID:  1,
		ProductID:   p.ID,
		Quantity:    3,
		Username:    "ana",
		ProductName: p.Name,
		Total:       60,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock, "failed placement must not touch stock")
}

func TestProductRepo_Delete_UnlinksOrders(t *testing.T) {
	ctx := context.Background()
	db := New()
	products := db.NewProductRepo()
	orders := db.NewOrderRepo()

	p, err := products.Create(ctx, "Teclado", 45, 10, nil)
	require.NoError(t, err)

	orderID, err := orders.Place(ctx, domain.Placement{
		CustomerID:  1,
		ProductID:   p.ID,
		Quantity:    1,
		Username:    "ana",
		ProductName: p.Name,
		Total:       45,
	})
	require.NoError(t, err)

	deleted, err := products.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	o, err := orders.GetByID(ctx, orderID)
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Nil(t, o.ProductID, "deleting a product must null the order reference")
}

func TestProductRepo_Delete_Missing(t *testing.T) {
	db := New()
	deleted, err := db.NewProductRepo().Delete(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestClientSessionRepo_UpsertKeepsOneRowPerCustomer(t *testing.T) {
	ctx := context.Background()
	db := New()
	audit := db.NewClientSessionRepo()

	cust, err := db.Create(ctx, "Ana", "Lopez", "ana@example.com", "ana", "hash")
	require.NoError(t, err)

	first := time.Now().Add(-time.Hour)
	require.NoError(t, audit.Upsert(ctx, cust.ID, first, "10.0.0.1"))
	require.NoError(t, audit.CloseOpen(ctx, cust.ID, first.Add(time.Minute)))

	second := time.Now()
	require.NoError(t, audit.Upsert(ctx, cust.ID, second, "10.0.0.2"))

	out, err := audit.List(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1, "repeat logins must refresh the single audit row")
	assert.Equal(t, "10.0.0.2", out[0].IP)
	assert.Nil(t, out[0].LogoutAt, "a fresh login reopens the row")
	assert.Equal(t, "ana", out[0].Username)
}

func TestSessionRepo_DeleteExpired(t *testing.T) {
	ctx := context.Background()
	db := New()
	sessions := db.NewSessionRepo()

	now := time.Now()
	require.NoError(t, sessions.Create(ctx, domain.AuthSession{
		Token: "stale", Role: domain.RoleCustomer, PrincipalID: 1,
		ExpiresAt: now.Add(-time.Minute), CreatedAt: now.Add(-25 * time.Hour),
	}))
	require.NoError(t, sessions.Create(ctx, domain.AuthSession{
		Token: "live", Role: domain.RoleCustomer, PrincipalID: 2,
		ExpiresAt: now.Add(time.Hour), CreatedAt: now,
	}))

	require.NoError(t, sessions.DeleteExpired(ctx))

	s, err := sessions.GetByToken(ctx, "stale")
	require.NoError(t, err)
	assert.Nil(t, s, "expired session must be swept")

	s, err = sessions.GetByToken(ctx, "live")
	require.NoError(t, err)
	assert.NotNil(t, s, "live session must survive the sweep")
}

func TestReportRepo_PanelCounts(t *testing.T) {
	ctx := context.Background()
	db := New()
	products := db.NewProductRepo()
	orders := db.NewOrderRepo()
	reports := db.NewReportRepo()

	_, err := db.Create(ctx, "Ana", "Lopez", "ana@example.com", "ana", "hash")
	require.NoError(t, err)

	p1, err := products.Create(ctx, "Laptop", 1500, 4, nil)
	require.NoError(t, err)
	_, err = products.Create(ctx, "Mouse", 20, 6, nil)
	require.NoError(t, err)

	_, err = orders.Place(ctx, domain.Placement{
		CustomerID: 1, ProductID: p1.ID, Quantity: 1, Username: "ana", ProductName: "Laptop", Total: 1500,
	})
	require.NoError(t, err)

	d, err := reports.PanelCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PanelData{Products: 2, Stock: 9, Customers: 1, Orders: 1}, d)
}
