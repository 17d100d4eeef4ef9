// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// Role identifies the kind of authenticated principal.
type Role string

const (
	// RoleCustomer is a self-registered shop customer.
	RoleCustomer Role = "customer"
	// RoleAdministrator is a back-office administrator, provisioned out of band.
	RoleAdministrator Role = "administrator"
)

// Customer represents a self-registered shop customer.
type Customer struct {
	ID           int64
	Name         string
	Surname      string
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Administrator represents a back-office administrator account.
type Administrator struct {
	ID           int64
	Username     string
	PasswordHash string
}

// Principal is the authenticated actor attached to a request.
type Principal struct {
	Role     Role
	ID       int64
	Username string
}

// AuthSession is a server-side session record validated on every request.
type AuthSession struct {
	Token       string
	Role        Role
	PrincipalID int64
	Username    string
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// ClientSession is the per-customer login audit row: one row per customer,
// refreshed on login and stamped closed on logout.
type ClientSession struct {
	ID         int64
	CustomerID int64
	LoginAt    time.Time
	LogoutAt   *time.Time
	IP         string
}

// ClientSessionInfo is a ClientSession joined with customer identity for the
// back-office session report.
type ClientSessionInfo struct {
	SessionID    int64      `json:"session_id"`
	CustomerID   int64      `json:"customer_id"`
	CustomerName string     `json:"customer_name"`
	Username     string     `json:"username"`
	LoginAt      time.Time  `json:"login_at"`
	LogoutAt     *time.Time `json:"logout_at"`
	IP           string     `json:"ip"`
}

// CustomerRepository defines the port for customer persistence operations.
type CustomerRepository interface {
	GetByUsername(ctx context.Context, username string) (*Customer, error)
	Create(ctx context.Context, name, surname, email, username, passwordHash string) (*Customer, error)
	Count(ctx context.Context) (int, error)
}

// AdministratorRepository defines the port for administrator lookups.
// Administrators are never created through the service.
type AdministratorRepository interface {
	GetByUsername(ctx context.Context, username string) (*Administrator, error)
}

// SessionRepository defines the port for auth-session persistence.
type SessionRepository interface {
	Create(ctx context.Context, s AuthSession) error
	GetByToken(ctx context.Context, token string) (*AuthSession, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}

// ClientSessionRepository defines the port for the login audit log.
type ClientSessionRepository interface {
	Upsert(ctx context.Context, customerID int64, loginAt time.Time, ip string) error
	CloseOpen(ctx context.Context, customerID int64, logoutAt time.Time) error
	List(ctx context.Context) ([]ClientSessionInfo, error)
}
