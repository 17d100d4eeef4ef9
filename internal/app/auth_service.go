// Package app holds the application services and business logic.
package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/Geovany-dotcom/Backend2/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials indicates that the provided username or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionNotFound indicates that the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the session has expired.
	ErrSessionExpired = errors.New("session expired")
	// ErrForbidden indicates a role or ownership mismatch.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation indicates malformed or missing input.
	ErrValidation = errors.New("invalid input")
)

// AuthService handles authentication, registration and session management.
type AuthService struct {
	customers      domain.CustomerRepository
	admins         domain.AdministratorRepository
	sessions       domain.SessionRepository
	clientSessions domain.ClientSessionRepository
	sessionTTL     time.Duration
}

// NewAuthService creates a new authentication service.
func NewAuthService(customers domain.CustomerRepository, admins domain.AdministratorRepository, sessions domain.SessionRepository, clientSessions domain.ClientSessionRepository) *AuthService {
	return &AuthService{
		customers:      customers,
		admins:         admins,
		sessions:       sessions,
		clientSessions: clientSessions,
		sessionTTL:     24 * time.Hour,
	}
}

// WithSessionTTL overrides the default 24h session lifetime.
func (s *AuthService) WithSessionTTL(ttl time.Duration) *AuthService {
	s.sessionTTL = ttl
	return s
}

// Login authenticates either a customer or an administrator, customer first,
// and creates a session. A successful customer login also refreshes the
// customer's audit row with the login time and client IP; administrator
// logins never touch the audit log.
func (s *AuthService) Login(ctx context.Context, username, password, ip string) (string, domain.Role, error) {
	cust, err := s.customers.GetByUsername(ctx, username)
	if err != nil {
		return "", "", err
	}
	if cust != nil && bcrypt.CompareHashAndPassword([]byte(cust.PasswordHash), []byte(password)) == nil {
		token, err := s.createSession(ctx, domain.RoleCustomer, cust.ID, cust.Username)
		if err != nil {
			return "", "", err
		}
		if err := s.clientSessions.Upsert(ctx, cust.ID, time.Now(), ip); err != nil {
			return "", "", err
		}
		return token, domain.RoleCustomer, nil
	}

	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		return "", "", err
	}
	if admin != nil && bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) == nil {
		token, err := s.createSession(ctx, domain.RoleAdministrator, admin.ID, admin.Username)
		if err != nil {
			return "", "", err
		}
		return token, domain.RoleAdministrator, nil
	}

	return "", "", ErrInvalidCredentials
}

// LoginAdministratorSSO creates a session for an administrator already
// authenticated by the identity provider, matched by email. Administrators
// are provisioned out of band, so an unknown email is rejected rather than
// auto-created.
func (s *AuthService) LoginAdministratorSSO(ctx context.Context, email string) (string, error) {
	admin, err := s.admins.GetByUsername(ctx, email)
	if err != nil {
		return "", err
	}
	if admin == nil {
		return "", ErrForbidden
	}
	return s.createSession(ctx, domain.RoleAdministrator, admin.ID, admin.Username)
}

// Logout invalidates a session and, for customers, stamps the open audit row
// with the logout time.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	sess, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return err
	}
	if sess == nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return err
	}
	if sess.Role == domain.RoleCustomer {
		return s.clientSessions.CloseOpen(ctx, sess.PrincipalID, time.Now())
	}
	return nil
}

// ValidateSession resolves a session token into the request principal.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*domain.Principal, error) {
	sess, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	if time.Now().After(sess.ExpiresAt) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionExpired
	}
	return &domain.Principal{Role: sess.Role, ID: sess.PrincipalID, Username: sess.Username}, nil
}

// PurgeExpiredSessions removes every expired session. ValidateSession only
// deletes a session when its own token is presented, so abandoned sessions
// need this sweep to be reclaimed.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) error {
	return s.sessions.DeleteExpired(ctx)
}

// RegisterCustomer hashes the password and creates a customer account.
func (s *AuthService) RegisterCustomer(ctx context.Context, name, surname, email, username, password string) error {
	if name == "" || surname == "" || username == "" || password == "" {
		return ErrValidation
	}
	if !strings.Contains(email, "@") {
		return ErrValidation
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.customers.Create(ctx, name, surname, email, username, string(hash))
	return err
}

func (s *AuthService) createSession(ctx context.Context, role domain.Role, id int64, username string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	now := time.Now()
	sess := domain.AuthSession{
		Token:       token,
		Role:        role,
		PrincipalID: id,
		Username:    username,
		ExpiresAt:   now.Add(s.sessionTTL),
		CreatedAt:   now,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return "", err
	}
	return token, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
