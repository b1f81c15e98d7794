package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/config"
)

func TestNewPostgresWithoutDSNIsMemoryMode(t *testing.T) {
	pg, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, pg.Enabled())
	assert.Nil(t, pg.PoolHandle())
	assert.Error(t, pg.Ping(context.Background()))
	pg.Close()
}

func TestNewPostgresRejectsBadDSN(t *testing.T) {
	_, err := NewPostgres(context.Background(), config.PostgresConfig{DSN: "postgres://localhost:notaport/db"}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse POSTGRES_DSN")
}

func TestApplyPoolLimits(t *testing.T) {
	poolCfg, err := pgxpool.ParseConfig("postgres://u:p@localhost:5432/helpdesk")
	require.NoError(t, err)
	defaultMin := poolCfg.MinConns

	applyPoolLimits(poolCfg, config.PostgresConfig{MaxConns: 7, ConnMaxIdleSec: 5, ConnMaxLifeSec: 60})
	assert.Equal(t, int32(7), poolCfg.MaxConns)
	assert.Equal(t, defaultMin, poolCfg.MinConns)
	assert.Equal(t, 5*time.Second, poolCfg.MaxConnIdleTime)
	assert.Equal(t, time.Minute, poolCfg.MaxConnLifetime)
}
