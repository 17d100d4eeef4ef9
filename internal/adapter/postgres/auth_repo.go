package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Geovany-dotcom/Backend2/internal/domain"
)

// GetByUsername retrieves a customer by username. Returns (nil, nil) when no
// customer matches; a non-nil error always means the query itself failed.
func (d *DB) GetByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	var c domain.Customer
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, name, surname, email, username, password_hash, created_at FROM customers WHERE username = $1",
		username,
	).Scan(&c.ID, &c.Name, &c.Surname, &c.Email, &c.Username, &c.PasswordHash, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new customer.
func (d *DB) Create(ctx context.Context, name, surname, email, username, passwordHash string) (*domain.Customer, error) {
	var c domain.Customer
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO customers (name, surname, email, username, password_hash, created_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, name, surname, email, username, password_hash, created_at",
		name, surname, email, username, passwordHash, time.Now(),
	).Scan(&c.ID, &c.Name, &c.Surname, &c.Email, &c.Username, &c.PasswordHash, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Count returns the total number of customers.
func (d *DB) Count(ctx context.Context) (int, error) {
	var count int
	err := d.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM customers").Scan(&count)
	return count, err
}

// AdminRepo implements administrator lookups on DB.
type AdminRepo struct {
	db *DB
}

// NewAdminRepo wraps a DB as an AdministratorRepository.
func NewAdminRepo(db *DB) *AdminRepo {
	return &AdminRepo{db: db}
}

// GetByUsername retrieves an administrator by username, (nil, nil) when absent.
func (r *AdminRepo) GetByUsername(ctx context.Context, username string) (*domain.Administrator, error) {
	var a domain.Administrator
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT id, username, password_hash FROM administrators WHERE username = $1",
		username,
	).Scan(&a.ID, &a.Username, &a.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// SessionRepo implements auth-session operations on DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create stores a new auth session.
func (r *SessionRepo) Create(ctx context.Context, s domain.AuthSession) error {
	_, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO auth_sessions (token, role, principal_id, username, expires_at, created_at) VALUES ($1, $2, $3, $4, $5, $6)",
		s.Token, string(s.Role), s.PrincipalID, s.Username, s.ExpiresAt, s.CreatedAt,
	)
	return err
}

// GetByToken retrieves a session by token, (nil, nil) when absent.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.AuthSession, error) {
	var s domain.AuthSession
	var role string
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT token, role, principal_id, username, expires_at, created_at FROM auth_sessions WHERE token = $1",
		token,
	).Scan(&s.Token, &role, &s.PrincipalID, &s.Username, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.Role = domain.Role(role)
	return &s, nil
}

// Delete removes a session by token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM auth_sessions WHERE token = $1", token)
	return err
}

// DeleteExpired removes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM auth_sessions WHERE expires_at < $1", time.Now())
	return err
}

// ClientSessionRepo implements the login audit log on DB.
type ClientSessionRepo struct {
	db *DB
}

// NewClientSessionRepo wraps a DB as a ClientSessionRepository.
func NewClientSessionRepo(db *DB) *ClientSessionRepo {
	return &ClientSessionRepo{db: db}
}

// Upsert inserts the customer's audit row or refreshes its login timestamp
// and IP, reopening it if it was closed.
func (r *ClientSessionRepo) Upsert(ctx context.Context, customerID int64, loginAt time.Time, ip string) error {
	_, err := r.db.sql.ExecContext(ctx,
		`INSERT INTO client_sessions (customer_id, login_at, ip) VALUES ($1, $2, $3)
		 ON CONFLICT (customer_id) DO UPDATE SET login_at = EXCLUDED.login_at, ip = EXCLUDED.ip, logout_at = NULL`,
		customerID, loginAt, ip,
	)
	return err
}

// CloseOpen stamps the customer's open audit row with the logout time.
func (r *ClientSessionRepo) CloseOpen(ctx context.Context, customerID int64, logoutAt time.Time) error {
	_, err := r.db.sql.ExecContext(ctx,
		"UPDATE client_sessions SET logout_at = $2 WHERE customer_id = $1 AND logout_at IS NULL",
		customerID, logoutAt,
	)
	return err
}

// List returns the audit log joined with customer identity.
func (r *ClientSessionRepo) List(ctx context.Context) ([]domain.ClientSessionInfo, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		`SELECT cs.id, cs.customer_id, c.name, c.username, cs.login_at, cs.logout_at, cs.ip
		 FROM client_sessions cs JOIN customers c ON cs.customer_id = c.id
		 ORDER BY cs.login_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ClientSessionInfo
	for rows.Next() {
		var s domain.ClientSessionInfo
		if err := rows.Scan(&s.SessionID, &s.CustomerID, &s.CustomerName, &s.Username, &s.LoginAt, &s.LogoutAt, &s.IP); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
