package persistence

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMigrationFilesOrdered(t *testing.T) {
	files, err := migrationFiles(migrationFS)
	require.NoError(t, err)
	require.Equal(t, []string{"migrations/0001_users.sql", "migrations/0002_tickets.sql"}, files)

	for _, name := range files {
		content, err := fs.ReadFile(migrationFS, name)
		require.NoError(t, err)
		assert.Contains(t, string(content), "IF NOT EXISTS", name)
	}
}

func TestTicketsMigrationHasNoUserForeignKey(t *testing.T) {
	content, err := fs.ReadFile(migrationFS, "migrations/0002_tickets.sql")
	require.NoError(t, err)
	assert.False(t, strings.Contains(strings.ToUpper(string(content)), "REFERENCES"))
}

func TestRunMigrationsWithoutPool(t *testing.T) {
	require.NoError(t, RunMigrations(context.Background(), nil, zap.NewNop()))
}

func TestNilRedisPing(t *testing.T) {
	var r *Redis
	assert.Error(t, r.Ping(context.Background()))
	r.Close()
}
