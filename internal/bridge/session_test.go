package bridge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "bridge:session:device-1", sessionKey("device-1"))
}

func TestMemorySessionStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemorySessionStore()
	store.now = func() time.Time { return now }

	missing, err := store.Load(ctx, "device-1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, store.Save(ctx, "device-1", Session{AccessToken: "a", RefreshToken: "r"}, time.Hour))

	got, err := store.Load(ctx, "device-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a", got.AccessToken)

	now = now.Add(time.Hour)
	expired, err := store.Load(ctx, "device-1")
	require.NoError(t, err)
	assert.Nil(t, expired, "session past its ttl is gone")

	require.NoError(t, store.Save(ctx, "device-2", Session{AccessToken: "b"}, 0))
	require.NoError(t, store.Delete(ctx, "device-2"))
	gone, err := store.Load(ctx, "device-2")
	require.NoError(t, err)
	assert.Nil(t, gone)
}
