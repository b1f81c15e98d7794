package service

import (
	"bytes"
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/domain"
)

var bootstrapLine = regexp.MustCompile(`^Admin user created\. Username: admin, Password: (\S{24})\n$`)

func TestEnsureAdminOnEmptyDirectory(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newUserService(t)
	var out bytes.Buffer

	created, err := EnsureAdmin(ctx, svc, "admin", &out)
	require.NoError(t, err)
	assert.True(t, created)

	match := bootstrapLine.FindStringSubmatch(out.String())
	require.Len(t, match, 2, out.String())

	admin, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.AuthLevelAdmin, admin.AuthLevel)
	assert.NotContains(t, admin.PasswordHash, match[1])
	assert.True(t, auth.NewPasswordHasher(bcrypt.MinCost).Verify(match[1], admin.PasswordHash))
}

func TestEnsureAdminSkipsPopulatedDirectory(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newUserService(t)
	_, err := svc.CreateUser(ctx, adminActor, CreateUserInput{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	var out bytes.Buffer
	created, err := EnsureAdmin(ctx, svc, "admin", &out)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Empty(t, out.String())
}
