package service

import (
	"context"
	"errors"

	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

const invalidCredentials = "Invalid username or password"

// AuthService checks login credentials.
type AuthService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
}

// NewAuthService builds the service.
func NewAuthService(users repository.UserRepository, hasher *auth.PasswordHasher) *AuthService {
	return &AuthService{users: users, hasher: hasher}
}

// Login returns the user when username and password match. Unknown users and
// wrong passwords produce the same 401.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthorized(invalidCredentials)
		}
		return nil, apperrors.NewInternalError(err)
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, apperrors.NewUnauthorized(invalidCredentials)
	}
	return user, nil
}
