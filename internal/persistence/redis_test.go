package persistence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/helpdesk/internal/config"
)

func TestNewRedisWithoutAddr(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	r := NewRedis(config.RedisConfig{}, zap.New(core))
	assert.Nil(t, r)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zap.WarnLevel, logs.All()[0].Level)
}

func TestNewRedisUnreachableLogsAddr(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	start := time.Now()
	r := NewRedis(config.RedisConfig{Addr: "127.0.0.1:1", DB: 2}, zap.New(core))
	defer r.Close()

	require.NotNil(t, r)
	require.NotNil(t, r.Client)
	assert.Less(t, time.Since(start), connectTimeout+time.Second)

	entries := logs.FilterMessage("unable to reach redis").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "127.0.0.1:1", fields["addr"])
	assert.EqualValues(t, 2, fields["db"])
	assert.Contains(t, fields, "error")
}
