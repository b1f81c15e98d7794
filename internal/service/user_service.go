package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/policy"
	"github.com/spec-kit/helpdesk/internal/repository"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// UserService is the user directory. Plaintext passwords only pass through on
// their way to the hasher; they are never stored or logged.
type UserService struct {
	users      repository.UserRepository
	hasher     *auth.PasswordHasher
	dispatcher events.Dispatcher
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	Hasher     *auth.PasswordHasher
	Dispatcher events.Dispatcher
}

// CreateUserInput describes a new directory user.
type CreateUserInput struct {
	Username  string
	Password  string
	AuthLevel domain.AuthLevel
}

// UpdateUserInput changes a user's password and/or level. Nil fields are left as stored.
type UpdateUserInput struct {
	Username  string
	Password  *string
	AuthLevel *domain.AuthLevel
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{
		users:      deps.UserRepo,
		hasher:     deps.Hasher,
		dispatcher: deps.Dispatcher,
	}
}

// CreateUser adds a user on behalf of an admin.
func (s *UserService) CreateUser(ctx context.Context, actor domain.UserSnapshot, input CreateUserInput) (*domain.User, error) {
	if err := policy.AuthorizeUserManagement(actor); err != nil {
		return nil, err
	}
	return s.create(ctx, &actor, input)
}

func (s *UserService) create(ctx context.Context, actor *domain.UserSnapshot, input CreateUserInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("Username and password are required", nil)
	}
	if !input.AuthLevel.Valid() {
		return nil, apperrors.NewValidationError("Invalid auth level", nil)
	}

	hash, err := s.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		AuthLevel:    input.AuthLevel,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("Username already exists", map[string]any{"username": username})
		}
		return nil, apperrors.NewInternalError(err)
	}

	level := user.AuthLevel
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventUserCreated,
		Actor:   actor,
		Payload: events.UserChangedPayload{Username: user.Username, AuthLevel: &level},
	})
	return user, nil
}

// DeleteUser removes a user. Their tickets are left in place with the frozen
// owner snapshot.
func (s *UserService) DeleteUser(ctx context.Context, actor domain.UserSnapshot, username string) error {
	if err := policy.AuthorizeUserManagement(actor); err != nil {
		return err
	}
	if err := s.users.DeleteByUsername(ctx, username); err != nil {
		return mapUserError(err)
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventUserDeleted,
		Actor:   &actor,
		Payload: events.UserChangedPayload{Username: username},
	})
	return nil
}

// UpdateUser re-hashes a supplied password and/or changes the level.
func (s *UserService) UpdateUser(ctx context.Context, actor domain.UserSnapshot, input UpdateUserInput) (*domain.User, error) {
	if err := policy.AuthorizeUserManagement(actor); err != nil {
		return nil, err
	}
	user, err := s.GetUser(ctx, input.Username)
	if err != nil {
		return nil, err
	}

	if input.AuthLevel != nil {
		if !input.AuthLevel.Valid() {
			return nil, apperrors.NewValidationError("Invalid auth level", nil)
		}
		user.AuthLevel = *input.AuthLevel
	}
	if input.Password != nil {
		hash, err := s.hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, mapUserError(err)
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:  events.EventUserUpdated,
		Actor: &actor,
		Payload: events.UserChangedPayload{
			Username:        user.Username,
			AuthLevel:       input.AuthLevel,
			PasswordChanged: input.Password != nil,
		},
	})
	return user, nil
}

// GetUser returns the live record for username.
func (s *UserService) GetUser(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, mapUserError(err)
	}
	return user, nil
}

// ListUsers returns every user for an admin.
func (s *UserService) ListUsers(ctx context.Context, actor domain.UserSnapshot) ([]domain.User, error) {
	if err := policy.AuthorizeUserManagement(actor); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return users, nil
}

// CountUsers returns the number of users in the directory.
func (s *UserService) CountUsers(ctx context.Context) (int, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return 0, apperrors.NewInternalError(err)
	}
	return count, nil
}

func (s *UserService) hashPassword(password string) (string, error) {
	if password == "" {
		return "", apperrors.NewValidationError("Password must not be empty", nil)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return "", apperrors.NewValidationError("Password is too long", nil)
		}
		return "", apperrors.NewInternalError(err)
	}
	return hash, nil
}

func mapUserError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("User", nil)
	}
	return apperrors.NewInternalError(err)
}
