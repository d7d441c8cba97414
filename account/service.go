/*
Package account implements the identity/session collaborator.

PURPOSE:
  Registration, login, and opaque session tokens. The rotation engine never
  authenticates anything; this package supplies the authenticated user id
  that keys the persisted selection.

PASSWORDS:
  Hashed with bcrypt at the default cost. Authentication failures are
  deliberately indistinguishable (unknown email vs wrong password) to avoid
  leaking which addresses are registered.

SESSIONS:
  A session is a 32-byte random token, hex encoded, stored server-side with
  a 30-day expiry. Logout deletes the token.
*/
package account

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/warp/rotation-engine/store/sqlite"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrMissingFields      = errors.New("email and password are required")
)

const sessionTTL = 30 * 24 * time.Hour

// Service handles accounts and sessions backed by the sqlite store.
type Service struct {
	store *sqlite.Store
}

// NewService creates an account service.
func NewService(store *sqlite.Store) *Service {
	return &Service{store: store}
}

// Register creates a new account and returns its user id.
func (s *Service) Register(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", ErrMissingFields
	}
	if len(password) < 6 {
		return "", ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := sqlite.User{
		ID:           newToken(16),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.store.SaveUser(ctx, user); err != nil {
		if errors.Is(err, sqlite.ErrDuplicateEmail) {
			return "", ErrEmailTaken
		}
		return "", err
	}
	return user.ID, nil
}

// Authenticate checks credentials and returns the user id.
func (s *Service) Authenticate(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", ErrMissingFields
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return user.ID, nil
}

// StartSession creates a session token for a user.
func (s *Service) StartSession(ctx context.Context, userID string) (string, error) {
	token := newToken(32)
	if err := s.store.CreateAuthSession(ctx, token, userID, time.Now().Add(sessionTTL)); err != nil {
		return "", err
	}
	return token, nil
}

// ResolveSession maps a token back to a user id. Unknown or expired tokens
// return sqlite.ErrNotFound.
func (s *Service) ResolveSession(ctx context.Context, token string) (string, error) {
	return s.store.GetAuthSession(ctx, token)
}

// EndSession deletes a session token.
func (s *Service) EndSession(ctx context.Context, token string) error {
	return s.store.DeleteAuthSession(ctx, token)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func newToken(bytes int) string {
	buf := make([]byte, bytes)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return hex.EncodeToString(buf)
}
