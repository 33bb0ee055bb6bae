package db

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/orders-api/internal/config"
)

func TestNewRedis(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	rdb, err := NewRedis(context.Background(), &config.Config{RedisAddr: s.Addr()})
	require.NoError(t, err)
	defer rdb.Close()

	assert.NoError(t, rdb.Set(context.Background(), "k", "v", 0).Err())
	assert.True(t, s.Exists("k"))
}

func TestNewRedis_Unreachable(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	addr := s.Addr()
	s.Close()

	_, err = NewRedis(context.Background(), &config.Config{RedisAddr: addr})
	assert.ErrorContains(t, err, "connect redis")
}
