package memcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamespares/chinaprof/core"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestCache_SetGet(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := New()
	c.nowFunc = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", payload{Name: "amy", Count: 3}, time.Minute))

	var got payload
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, payload{Name: "amy", Count: 3}, got)

	now = now.Add(59 * time.Second)
	assert.NoError(t, c.Get(ctx, "k", &got))

	now = now.Add(time.Second)
	assert.Equal(t, core.ErrCacheMiss, c.Get(ctx, "k", &got))
	assert.Zero(t, c.Len())
}

func TestCache_noExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	c := New()
	c.nowFunc = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", 1, 0))
	now = now.Add(24 * 365 * time.Hour)

	var got int
	assert.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, 1, got)
}

func TestCache_errors(t *testing.T) {
	ctx := context.Background()
	c := New()
	var dst payload

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "set empty key", err: c.Set(ctx, "", 1, time.Minute), wantErr: core.ErrCacheKey},
		{name: "set nil value", err: c.Set(ctx, "k", nil, time.Minute), wantErr: core.ErrCacheNilVal},
		{name: "get empty key", err: c.Get(ctx, "", &dst), wantErr: core.ErrCacheKey},
		{name: "get missing key", err: c.Get(ctx, "missing", &dst), wantErr: core.ErrCacheMiss},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantErr, tc.err)
		})
	}
}

func TestCache_Delete(t *testing.T) {
	ctx := context.Background()
	c := New()
	require.NoError(t, c.Set(ctx, "a", 1, 0))
	require.NoError(t, c.Set(ctx, "b", 2, 0))
	require.NoError(t, c.Set(ctx, "c", 3, 0))

	require.NoError(t, c.Delete(ctx, "a", "b", "unknown"))

	var got int
	assert.Equal(t, core.ErrCacheMiss, c.Get(ctx, "a", &got))
	assert.Equal(t, core.ErrCacheMiss, c.Get(ctx, "b", &got))
	assert.NoError(t, c.Get(ctx, "c", &got))
	assert.Equal(t, 3, got)
}
