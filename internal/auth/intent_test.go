package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryIntentStoreRoundTrip(t *testing.T) {
	s := NewMemoryIntentStore()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Put(ctx, "tok", ResetIntent{UserID: 7}, time.Minute))
	intent, ok, err := s.Get(ctx, "tok")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(7), intent.UserID)
	require.False(t, intent.Verified)

	// Put overwrites in place.
	require.NoError(t, s.Put(ctx, "tok", ResetIntent{UserID: 7, Verified: true}, time.Minute))
	intent, ok, err = s.Get(ctx, "tok")
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, intent.Verified)

	require.NoError(t, s.Delete(ctx, "tok"))
	_, ok, err = s.Get(ctx, "tok")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryIntentStoreExpiry(t *testing.T) {
	s := NewMemoryIntentStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "tok", ResetIntent{UserID: 1}, -time.Second))
	_, ok, err := s.Get(ctx, "tok")
	require.NoError(t, err)
	require.False(t, ok)

	// Re-putting the same token restarts the TTL.
	require.NoError(t, s.Put(ctx, "tok", ResetIntent{UserID: 1}, time.Minute))
	_, ok, err = s.Get(ctx, "tok")
	require.NoError(t, err)
	require.True(t, ok)
}
