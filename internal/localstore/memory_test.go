package localstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	var out payload
	found, err := store.Get(ctx, "missing", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, KeyNotificationSettings, payload{Name: "a", Count: 2}))

	found, err = store.Get(ctx, KeyNotificationSettings, &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "a", Count: 2}, out)

	// Overwrite replaces wholesale
	require.NoError(t, store.Set(ctx, KeyNotificationSettings, payload{Name: "b"}))
	_, err = store.Get(ctx, KeyNotificationSettings, &out)
	require.NoError(t, err)
	assert.Equal(t, payload{Name: "b"}, out)

	require.NoError(t, store.Delete(ctx, KeyNotificationSettings))
	found, err = store.Get(ctx, KeyNotificationSettings, &out)
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting an absent key is fine
	assert.NoError(t, store.Delete(ctx, "missing"))
}
