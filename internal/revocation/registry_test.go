package revocation

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_RevokeIsVisibleImmediately(t *testing.T) {
	t.Parallel()

	reg := NewMemory(time.Hour)
	defer reg.Close()
	ctx := context.Background()

	revoked, err := reg.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, reg.Revoke(ctx, "tok"))

	revoked, err = reg.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = reg.IsRevoked(ctx, "other")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMemory_EntryExpiresAfterWindow(t *testing.T) {
	t.Parallel()

	reg := NewMemory(30 * time.Millisecond)
	defer reg.Close()
	ctx := context.Background()

	require.NoError(t, reg.Revoke(ctx, "tok"))

	revoked, err := reg.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)

	require.Eventually(t, func() bool {
		revoked, err := reg.IsRevoked(ctx, "tok")
		return err == nil && !revoked
	}, time.Second, 10*time.Millisecond)
}

func TestMemory_RevokeIsIdempotent(t *testing.T) {
	t.Parallel()

	reg := NewMemory(time.Hour)
	defer reg.Close()
	ctx := context.Background()

	require.NoError(t, reg.Revoke(ctx, "tok"))
	require.NoError(t, reg.Revoke(ctx, "tok"))

	revoked, err := reg.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	reg := NewMemory(time.Hour)
	defer reg.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		token := fmt.Sprintf("tok-%d", i)
		go func() {
			defer wg.Done()
			_ = reg.Revoke(ctx, token)
		}()
		go func() {
			defer wg.Done()
			_, _ = reg.IsRevoked(ctx, token)
		}()
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		revoked, err := reg.IsRevoked(ctx, fmt.Sprintf("tok-%d", i))
		require.NoError(t, err)
		assert.True(t, revoked)
	}
}

func TestMemory_CloseStopsTracking(t *testing.T) {
	t.Parallel()

	reg := NewMemory(time.Hour)
	ctx := context.Background()

	require.NoError(t, reg.Revoke(ctx, "tok"))
	require.NoError(t, reg.Close())

	revoked, err := reg.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)

	// Revoke after close is a no-op, not a panic.
	require.NoError(t, reg.Revoke(ctx, "tok"))
}
