// Package memory implements the domain repositories in memory for
// development and testing.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Geovany-dotcom/Backend2/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu             sync.Mutex
	customers      []*domain.Customer
	admins         []*domain.Administrator
	products       []domain.Product
	orders         []domain.Order
	cancelled      []domain.CancelledOrder
	sales          []domain.Sale
	clientSessions map[int64]*domain.ClientSession
	authSessions   map[string]*domain.AuthSession

	customerIDCounter      int64
	productIDCounter       int64
	orderIDCounter         int64
	saleIDCounter          int64
	clientSessionIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		clientSessions: make(map[int64]*domain.ClientSession),
		authSessions:   make(map[string]*domain.AuthSession),
	}
}

// Ensure interfaces are met.
var _ domain.CustomerRepository = (*DB)(nil)
var _ domain.AdministratorRepository = (*AdminRepo)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)
var _ domain.ClientSessionRepository = (*ClientSessionRepo)(nil)
var _ domain.ProductRepository = (*ProductRepo)(nil)
var _ domain.OrderRepository = (*OrderRepo)(nil)
var _ domain.ReportRepository = (*ReportRepo)(nil)

// --- CustomerRepository ---

// GetByUsername retrieves a customer by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, c := range db.customers {
		if c.Username == username {
			return c, nil
		}
	}
	return nil, nil
}

// Create creates a new customer.
func (db *DB) Create(ctx context.Context, name, surname, email, username, passwordHash string) (*domain.Customer, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, c := range db.customers {
		if c.Username == username {
			return nil, errors.New("username already taken")
		}
	}

	db.customerIDCounter++
	c := &domain.Customer{
		ID:           db.customerIDCounter,
		Name:         name,
		Surname:      surname,
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.customers = append(db.customers, c)
	return c, nil
}

// Count returns the total number of customers.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.customers), nil
}

// SeedAdministrator adds an administrator account, mimicking the out-of-band
// provisioning done with seed SQL in production.
func (db *DB) SeedAdministrator(username, passwordHash string) *domain.Administrator {
	db.mu.Lock()
	defer db.mu.Unlock()

	a := &domain.Administrator{
		ID:           int64(len(db.admins) + 1),
		Username:     username,
		PasswordHash: passwordHash,
	}
	db.admins = append(db.admins, a)
	return a
}

// --- AdministratorRepository ---

// AdminRepo implements administrator lookups.
type AdminRepo struct {
	db *DB
}

// NewAdminRepo wraps the DB as an AdministratorRepository.
func (db *DB) NewAdminRepo() *AdminRepo {
	return &AdminRepo{db: db}
}

// GetByUsername retrieves an administrator by username.
func (r *AdminRepo) GetByUsername(ctx context.Context, username string) (*domain.Administrator, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, a := range r.db.admins {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, nil
}

// --- SessionRepository ---

// SessionRepo implements auth-session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps the DB as a SessionRepository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create stores a new auth session.
func (r *SessionRepo) Create(ctx context.Context, s domain.AuthSession) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cp := s
	r.db.authSessions[s.Token] = &cp
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.AuthSession, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.authSessions[token]; ok {
		return s, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.authSessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.authSessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.authSessions, k)
		}
	}
	return nil
}

// --- ClientSessionRepository ---

// ClientSessionRepo implements the login audit log.
type ClientSessionRepo struct {
	db *DB
}

// NewClientSessionRepo wraps the DB as a ClientSessionRepository.
func (db *DB) NewClientSessionRepo() *ClientSessionRepo {
	return &ClientSessionRepo{db: db}
}

// Upsert inserts or refreshes the customer's audit row.
func (r *ClientSessionRepo) Upsert(ctx context.Context, customerID int64, loginAt time.Time, ip string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.clientSessions[customerID]; ok {
		s.LoginAt = loginAt
		s.LogoutAt = nil
		s.IP = ip
		return nil
	}
	r.db.clientSessionIDCounter++
	r.db.clientSessions[customerID] = &domain.ClientSession{
		ID:         r.db.clientSessionIDCounter,
		CustomerID: customerID,
		LoginAt:    loginAt,
		IP:         ip,
	}
	return nil
}

// CloseOpen stamps the customer's open audit row with the logout time.
func (r *ClientSessionRepo) CloseOpen(ctx context.Context, customerID int64, logoutAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.clientSessions[customerID]; ok && s.LogoutAt == nil {
		t := logoutAt
		s.LogoutAt = &t
	}
	return nil
}

// List returns the audit log joined with customer identity.
func (r *ClientSessionRepo) List(ctx context.Context) ([]domain.ClientSessionInfo, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var out []domain.ClientSessionInfo
	for _, s := range r.db.clientSessions {
		info := domain.ClientSessionInfo{
			SessionID:  s.ID,
			CustomerID: s.CustomerID,
			LoginAt:    s.LoginAt,
			LogoutAt:   s.LogoutAt,
			IP:         s.IP,
		}
		for _, c := range r.db.customers {
			if c.ID == s.CustomerID {
				info.CustomerName = c.Name
				info.Username = c.Username
				break
			}
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LoginAt.After(out[j].LoginAt) })
	return out, nil
}

// --- ProductRepository ---

// ProductRepo implements the catalog.
type ProductRepo struct {
	db *DB
}

// NewProductRepo wraps the DB as a ProductRepository.
func (db *DB) NewProductRepo() *ProductRepo {
	return &ProductRepo{db: db}
}

// List returns every product.
func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := make([]domain.Product, len(r.db.products))
	copy(out, r.db.products)
	return out, nil
}

// GetByID retrieves a product by id.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.products {
		if r.db.products[i].ID == id {
			cp := r.db.products[i]
			return &cp, nil
		}
	}
	return nil, nil
}

// GetByName retrieves a product by name.
func (r *ProductRepo) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.products {
		if r.db.products[i].Name == name {
			cp := r.db.products[i]
			return &cp, nil
		}
	}
	return nil, nil
}

// Create creates a new product.
func (r *ProductRepo) Create(ctx context.Context, name string, price float64, stock int, image *string) (*domain.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.products {
		if r.db.products[i].Name == name {
			return nil, errors.New("product name already taken")
		}
	}
	r.db.productIDCounter++
	p := domain.Product{
		ID:        r.db.productIDCounter,
		Name:      name,
		Price:     price,
		Stock:     stock,
		Image:     image,
		CreatedAt: time.Now().UTC(),
	}
	r.db.products = append(r.db.products, p)
	cp := p
	return &cp, nil
}

// Update replaces a product's name, price and stock.
func (r *ProductRepo) Update(ctx context.Context, id int64, name string, price float64, stock int) (*domain.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.products {
		if r.db.products[i].ID == id {
			r.db.products[i].Name = name
			r.db.products[i].Price = price
			r.db.products[i].Stock = stock
			cp := r.db.products[i]
			return &cp, nil
		}
	}
	return nil, nil
}

// Delete removes a product, nulling out order references first.
func (r *ProductRepo) Delete(ctx context.Context, id int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.products {
		if r.db.products[i].ID != id {
			continue
		}
		for j := range r.db.orders {
			if r.db.orders[j].ProductID != nil && *r.db.orders[j].ProductID == id {
				r.db.orders[j].ProductID = nil
			}
		}
		for j := range r.db.cancelled {
			if r.db.cancelled[j].ProductID != nil && *r.db.cancelled[j].ProductID == id {
				r.db.cancelled[j].ProductID = nil
			}
		}
		r.db.products = append(r.db.products[:i], r.db.products[i+1:]...)
		return true, nil
	}
	return false, nil
}

// --- OrderRepository ---

// OrderRepo implements the order lifecycle.
type OrderRepo struct {
	db *DB
}

// NewOrderRepo wraps the DB as an OrderRepository.
func (db *DB) NewOrderRepo() *OrderRepo {
	return &OrderRepo{db: db}
}

// GetByID retrieves an order by id.
func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.orders {
		if r.db.orders[i].ID == id {
			cp := r.db.orders[i]
			return &cp, nil
		}
	}
	return nil, nil
}

// Place records a purchase. The mutex makes the stock check and the three
// writes atomic, matching the transactional contract.
func (r *OrderRepo) Place(ctx context.Context, p domain.Placement) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var prod *domain.Product
	for i := range r.db.products {
		if r.db.products[i].ID == p.ProductID {
			prod = &r.db.products[i]
			break
		}
	}
	if prod == nil || prod.Stock < p.Quantity {
		return 0, domain.ErrInsufficientStock
	}
	prod.Stock -= p.Quantity

	now := time.Now().UTC()
	r.db.orderIDCounter++
	orderID := r.db.orderIDCounter
	pid := p.ProductID
	r.db.orders = append(r.db.orders, domain.Order{
		ID:         orderID,
		CustomerID: p.CustomerID,
		ProductID:  &pid,
		Quantity:   p.Quantity,
		CreatedAt:  now,
	})

	r.db.saleIDCounter++
	r.db.sales = append(r.db.sales, domain.Sale{
		ID:          r.db.saleIDCounter,
		OrderID:     orderID,
		CustomerID:  p.CustomerID,
		Username:    p.Username,
		ProductName: p.ProductName,
		Quantity:    p.Quantity,
		Total:       p.Total,
		CreatedAt:   now,
	})
	return orderID, nil
}

// Cancel archives the order, deletes its sales, restores stock and removes
// the order.
func (r *OrderRepo) Cancel(ctx context.Context, o domain.Order, cancelledAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	idx := -1
	for i := range r.db.orders {
		if r.db.orders[i].ID == o.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return errors.New("order not found")
	}

	r.db.cancelled = append(r.db.cancelled, domain.CancelledOrder{
		OrderID:     o.ID,
		CustomerID:  o.CustomerID,
		ProductID:   o.ProductID,
		Quantity:    o.Quantity,
		CancelledAt: cancelledAt,
	})

	kept := r.db.sales[:0]
	for _, s := range r.db.sales {
		if s.OrderID != o.ID {
			kept = append(kept, s)
		}
	}
	r.db.sales = kept

	if o.ProductID != nil {
		for i := range r.db.products {
			if r.db.products[i].ID == *o.ProductID {
				r.db.products[i].Stock += o.Quantity
				break
			}
		}
	}

	r.db.orders = append(r.db.orders[:idx], r.db.orders[idx+1:]...)
	return nil
}

// ListForCustomer returns the customer's orders with product name and line
// total.
func (r *OrderRepo) ListForCustomer(ctx context.Context, customerID int64) ([]domain.OrderLine, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var out []domain.OrderLine
	for _, o := range r.db.orders {
		if o.CustomerID != customerID || o.ProductID == nil {
			continue
		}
		line := domain.OrderLine{OrderID: o.ID, Quantity: o.Quantity, CreatedAt: o.CreatedAt}
		for i := range r.db.products {
			if r.db.products[i].ID == *o.ProductID {
				line.ProductName = r.db.products[i].Name
				line.Total = r.db.products[i].Price * float64(o.Quantity)
				break
			}
		}
		out = append(out, line)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ListAll returns every order with customer and product names.
func (r *OrderRepo) ListAll(ctx context.Context) ([]domain.OrderSummary, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var out []domain.OrderSummary
	for _, o := range r.db.orders {
		if o.ProductID == nil {
			continue
		}
		s := domain.OrderSummary{OrderID: o.ID, Quantity: o.Quantity, CreatedAt: o.CreatedAt}
		for _, c := range r.db.customers {
			if c.ID == o.CustomerID {
				s.CustomerName = c.Name
				break
			}
		}
		for i := range r.db.products {
			if r.db.products[i].ID == *o.ProductID {
				s.ProductName = r.db.products[i].Name
				break
			}
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// --- ReportRepository ---

// ReportRepo implements the read-only reporting queries.
type ReportRepo struct {
	db *DB
}

// NewReportRepo wraps the DB as a ReportRepository.
func (db *DB) NewReportRepo() *ReportRepo {
	return &ReportRepo{db: db}
}

// ListSales returns every sale row.
func (r *ReportRepo) ListSales(ctx context.Context) ([]domain.Sale, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := make([]domain.Sale, len(r.db.sales))
	copy(out, r.db.sales)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// TotalRevenue returns the sum of all sale totals.
func (r *ReportRepo) TotalRevenue(ctx context.Context) (float64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var total float64
	for _, s := range r.db.sales {
		total += s.Total
	}
	return total, nil
}

// TopProducts returns quantity sold per product, best sellers first.
func (r *ReportRepo) TopProducts(ctx context.Context) ([]domain.ProductDemand, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	sums := make(map[string]int)
	for _, s := range r.db.sales {
		sums[s.ProductName] += s.Quantity
	}
	out := make([]domain.ProductDemand, 0, len(sums))
	for name, total := range sums {
		out = append(out, domain.ProductDemand{ProductName: name, TotalSold: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalSold > out[j].TotalSold })
	return out, nil
}

// PanelCounts returns the dashboard headline counters.
func (r *ReportRepo) PanelCounts(ctx context.Context) (domain.PanelData, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	d := domain.PanelData{
		Products:  len(r.db.products),
		Customers: len(r.db.customers),
		Orders:    len(r.db.orders),
	}
	for _, p := range r.db.products {
		d.Stock += p.Stock
	}
	return d, nil
}

// OrdersPerMonth returns order counts grouped by calendar month.
func (r *ReportRepo) OrdersPerMonth(ctx context.Context) ([]domain.MonthCount, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	counts := make(map[int]int)
	for _, o := range r.db.orders {
		counts[int(o.CreatedAt.Month())]++
	}
	var out []domain.MonthCount
	for m := 1; m <= 12; m++ {
		if counts[m] > 0 {
			out = append(out, domain.MonthCount{Month: m, Total: counts[m]})
		}
	}
	return out, nil
}

// OrdersPerProduct returns order counts grouped by product name.
func (r *ReportRepo) OrdersPerProduct(ctx context.Context) ([]domain.ProductCount, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	counts := make(map[string]int)
	for _, o := range r.db.orders {
		if o.ProductID == nil {
			continue
		}
		for i := range r.db.products {
			if r.db.products[i].ID == *o.ProductID {
				counts[r.db.products[i].Name]++
				break
			}
		}
	}
	names := make([]string, 0, len(counts))
	for n := range counts {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]domain.ProductCount, 0, len(names))
	for _, n := range names {
		out = append(out, domain.ProductCount{Name: n, Total: counts[n]})
	}
	return out, nil
}
