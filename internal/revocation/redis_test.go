package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisRegistry(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	reg, err := NewRedis("redis://"+mr.Addr(), time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { reg.Close() })
	return reg, mr
}

func TestRedis_RevokeIsVisibleImmediately(t *testing.T) {
	reg, _ := newRedisRegistry(t)
	ctx := context.Background()

	revoked, err := reg.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, reg.Revoke(ctx, "tok"))

	revoked, err = reg.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRedis_EntryExpiresAfterWindow(t *testing.T) {
	reg, mr := newRedisRegistry(t)
	ctx := context.Background()

	require.NoError(t, reg.Revoke(ctx, "tok"))

	mr.FastForward(time.Hour + time.Minute)

	revoked, err := reg.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedis_RevokeIsIdempotent(t *testing.T) {
	reg, _ := newRedisRegistry(t)
	ctx := context.Background()

	require.NoError(t, reg.Revoke(ctx, "tok"))
	require.NoError(t, reg.Revoke(ctx, "tok"))

	revoked, err := reg.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestNewRedis_RejectsBadURL(t *testing.T) {
	_, err := NewRedis("not-a-url", time.Hour)
	require.Error(t, err)
}
