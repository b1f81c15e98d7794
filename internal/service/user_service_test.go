package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
)

func TestCreateUserHashesPassword(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newUserService(t)

	user, err := svc.CreateUser(ctx, adminActor, CreateUserInput{Username: "alice", Password: "pw", AuthLevel: domain.AuthLevelStandard})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	stored, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "pw", stored.PasswordHash)
	assert.True(t, auth.NewPasswordHasher(bcrypt.MinCost).Verify("pw", stored.PasswordHash))
}

func TestCreateUserErrors(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newUserService(t)

	_, err := svc.CreateUser(ctx, aliceActor, CreateUserInput{Username: "x", Password: "pw"})
	requireForbidden(t, err)

	_, err = svc.CreateUser(ctx, adminActor, CreateUserInput{Username: "  ", Password: "pw"})
	requireStatus(t, err, http.StatusBadRequest)

	_, err = svc.CreateUser(ctx, adminActor, CreateUserInput{Username: "x", Password: "pw", AuthLevel: 7})
	requireStatus(t, err, http.StatusBadRequest)

	_, err = svc.CreateUser(ctx, adminActor, CreateUserInput{Username: "x", Password: strings.Repeat("a", 100)})
	requireStatus(t, err, http.StatusBadRequest)

	_, err = svc.CreateUser(ctx, adminActor, CreateUserInput{Username: "dup", Password: "pw"})
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, adminActor, CreateUserInput{Username: "dup", Password: "pw2"})
	requireStatus(t, err, http.StatusConflict)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newUserService(t)

	_, err := svc.CreateUser(ctx, adminActor, CreateUserInput{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	requireForbidden(t, svc.DeleteUser(ctx, bobActor, "alice"))
	require.NoError(t, svc.DeleteUser(ctx, adminActor, "alice"))
	requireStatus(t, svc.DeleteUser(ctx, adminActor, "alice"), http.StatusNotFound)

	_, err = svc.GetUser(ctx, "alice")
	requireStatus(t, err, http.StatusNotFound)
}

func TestUpdateUserOptionalFields(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newUserService(t)
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)

	_, err := svc.CreateUser(ctx, adminActor, CreateUserInput{Username: "alice", Password: "old"})
	require.NoError(t, err)
	before, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)

	admin := domain.AuthLevelAdmin
	_, err = svc.UpdateUser(ctx, adminActor, UpdateUserInput{Username: "alice", AuthLevel: &admin})
	require.NoError(t, err)
	after, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.AuthLevelAdmin, after.AuthLevel)
	assert.Equal(t, before.PasswordHash, after.PasswordHash, "absent password keeps the hash")

	newPass := "new"
	_, err = svc.UpdateUser(ctx, adminActor, UpdateUserInput{Username: "alice", Password: &newPass})
	require.NoError(t, err)
	after, err = repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, hasher.Verify("new", after.PasswordHash))
	assert.Equal(t, domain.AuthLevelAdmin, after.AuthLevel, "absent level keeps the level")

	_, err = svc.UpdateUser(ctx, adminActor, UpdateUserInput{Username: "ghost", Password: &newPass})
	requireStatus(t, err, http.StatusNotFound)

	_, err = svc.UpdateUser(ctx, aliceActor, UpdateUserInput{Username: "alice", Password: &newPass})
	requireForbidden(t, err)
}

func TestListUsersAdminOnly(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newUserService(t)
	_, err := svc.CreateUser(ctx, adminActor, CreateUserInput{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	users, err := svc.ListUsers(ctx, adminActor)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	_, err = svc.ListUsers(ctx, aliceActor)
	requireForbidden(t, err)
}

func TestUserEventsNeverCarryPasswords(t *testing.T) {
	ctx := context.Background()
	svc, _, dispatcher := newUserService(t)

	var seen []events.Event
	record := func(_ context.Context, e events.Event) error { seen = append(seen, e); return nil }
	dispatcher.Subscribe(events.EventUserCreated, record)
	dispatcher.Subscribe(events.EventUserUpdated, record)

	_, err := svc.CreateUser(ctx, adminActor, CreateUserInput{Username: "alice", Password: "topsecret"})
	require.NoError(t, err)
	pass := "othersecret"
	_, err = svc.UpdateUser(ctx, adminActor, UpdateUserInput{Username: "alice", Password: &pass})
	require.NoError(t, err)

	require.Len(t, seen, 2)
	updated, ok := seen[1].Payload.(events.UserChangedPayload)
	require.True(t, ok)
	assert.True(t, updated.PasswordChanged)
	assert.Equal(t, "alice", updated.Username)
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newUserService(t)
	login := NewAuthService(repo, auth.NewPasswordHasher(bcrypt.MinCost))

	_, err := svc.CreateUser(ctx, adminActor, CreateUserInput{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	user, err := login.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = login.Login(ctx, "alice", "nope")
	requireStatus(t, err, http.StatusUnauthorized)
	_, err = login.Login(ctx, "nobody", "pw")
	requireStatus(t, err, http.StatusUnauthorized)
}
