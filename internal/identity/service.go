package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lenden-pay/lenden/internal/auth"
)

var (
	// ErrNotActive signals a sign-in attempt on a record still pending
	// approval (or blocked).
	ErrNotActive = errors.New("user not active")
	// ErrBadCredentials signals a PIN mismatch on an existing record.
	ErrBadCredentials = errors.New("invalid credentials")
)

// Service manages the identity lifecycle: registration, sign-in and the
// token-backed profile fetch.
type Service struct {
	repo   Repository
	hasher *auth.Hasher
	tokens *auth.TokenIssuer
}

// NewService creates a new identity service with its injected collaborators.
func NewService(repo Repository, hasher *auth.Hasher, tokens *auth.TokenIssuer) *Service {
	return &Service{repo: repo, hasher: hasher, tokens: tokens}
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Name  string
	Email string
	Phone string
	PIN   string
	Role  string
}

// Register creates a pending user with a zero balance and a hashed PIN. The
// raw PIN is not retained anywhere past the digest computation.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	_, err := s.repo.FindByRoleAndContact(ctx, in.Role, in.Email, in.Phone)
	if err == nil {
		return User{}, ErrDuplicate
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, fmt.Errorf("check existing user: %w", err)
	}

	user := User{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Role:      in.Role,
		PINHash:   s.hasher.Hash(in.PIN),
		Status:    StatusPending,
		Balance:   0,
		CreatedAt: time.Now().UTC(),
	}

	// The storage layer still enforces uniqueness, so a racing registration
	// that slipped past the lookup surfaces as ErrDuplicate here.
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return User{}, ErrDuplicate
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// SignIn verifies a PIN for the record matching phonemail (email or phone,
// any role) and issues a session token on success.
func (s *Service) SignIn(ctx context.Context, phonemail, pin string) (User, string, error) {
	user, err := s.repo.FindByContact(ctx, phonemail)
	if errors.Is(err, ErrNotFound) {
		return User{}, "", ErrNotFound
	}
	if err != nil {
		return User{}, "", fmt.Errorf("find user: %w", err)
	}

	if user.Status != StatusActive {
		return User{}, "", ErrNotActive
	}

	if !s.hasher.Compare(pin, user.PINHash) {
		return User{}, "", ErrBadCredentials
	}

	token, err := s.tokens.Issue(auth.Claims{
		Email:  user.Email,
		Phone:  user.Phone,
		Role:   user.Role,
		Status: user.Status,
	})
	if err != nil {
		return User{}, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// Authenticate resolves verified token claims back to a live directory
// record. A signed token whose subject no longer exists is rejected.
func (s *Service) Authenticate(ctx context.Context, claims auth.Claims) (User, error) {
	user, err := s.repo.FindByClaims(ctx, claims.Email, claims.Phone, claims.Role)
	if errors.Is(err, ErrNotFound) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("find user by claims: %w", err)
	}
	return user, nil
}
