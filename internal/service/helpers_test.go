package service

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/repository"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

var (
	adminActor = domain.UserSnapshot{Username: "admin", ID: 100, AuthLevel: domain.AuthLevelAdmin}
	aliceActor = domain.UserSnapshot{Username: "alice", ID: 1, AuthLevel: domain.AuthLevelStandard}
	bobActor   = domain.UserSnapshot{Username: "bob", ID: 2, AuthLevel: domain.AuthLevelStandard}
)

func newUserService(t *testing.T) (*UserService, *repository.MemoryUserRepository, events.Dispatcher) {
	t.Helper()
	repo := repository.NewMemoryUserRepository()
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewUserService(UserDependencies{
		UserRepo:   repo,
		Hasher:     auth.NewPasswordHasher(bcrypt.MinCost),
		Dispatcher: dispatcher,
	})
	return svc, repo, dispatcher
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, status, apperrors.ToDomainError(err).HTTPStatus, err.Error())
}

func requireForbidden(t *testing.T, err error) {
	t.Helper()
	requireStatus(t, err, http.StatusForbidden)
}
