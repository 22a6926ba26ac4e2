package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinic-api/internal/model"
	"github.com/clinicdesk/clinic-api/internal/repository"
	"github.com/clinicdesk/clinic-api/pkg/auth"
	apperrors "github.com/clinicdesk/clinic-api/pkg/errors"
	"github.com/clinicdesk/clinic-api/pkg/metrics"
	"github.com/clinicdesk/clinic-api/pkg/security"
)

type Service struct {
	users   repository.UserRepository
	jwtSvc  auth.JWTService
	hasher  security.PasswordHasher
	revoker TokenRevoker
	metrics *metrics.Metrics
}

func NewService(users repository.UserRepository, jwtSvc auth.JWTService,
	hasher security.PasswordHasher, revoker TokenRevoker, m *metrics.Metrics) *Service {
	return &Service{
		users:   users,
		jwtSvc:  jwtSvc,
		hasher:  hasher,
		revoker: revoker,
		metrics: m,
	}
}

// Authenticate maps a stored credential to a session token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*model.TokenResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.metrics.RecordLogin("rejected")
			return nil, apperrors.Unauthorized("invalid username or password", err)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.metrics.RecordLogin("rejected")
		return nil, apperrors.Unauthorized("invalid username or password", err)
	}

	principal := &model.Principal{ID: user.ID, Username: user.Username}
	token, err := s.jwtSvc.GenerateToken(principal)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.metrics.RecordLogin("accepted")
	return &model.TokenResponse{Token: token, Principal: principal}, nil
}

// LoadPrincipal restores a principal by ID for session validation.
func (s *Service) LoadPrincipal(ctx context.Context, id uuid.UUID) (*model.Principal, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.Principal{ID: user.ID, Username: user.Username}, nil
}

// ValidateToken checks signature, expiry and the revocation list.
func (s *Service) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid token", err)
	}

	if s.revoker != nil {
		revoked, err := s.revoker.IsRevoked(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("failed to check token revocation: %w", err)
		}
		if revoked {
			return nil, apperrors.Unauthorized("token revoked", nil)
		}
	}

	return claims, nil
}

// Logout revokes the token until its natural expiry.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return apperrors.Unauthorized("invalid token", err)
	}

	if s.revoker == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.revoker.Revoke(ctx, token, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// CreateUser provisions a staff account. A duplicate username surfaces
// as a distinct error, leaving the existing account untouched.
func (s *Service) CreateUser(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" {
		return nil, apperrors.InvalidInput("", "username cannot be empty", nil)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.InvalidInput("", "invalid password", err)
	}

	user := &model.User{Username: username, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
