package cache

import (
	"context"
	"testing"
	"time"

	"ski-stays/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_LazyEviction(t *testing.T) {
	clk := clock.NewMockClock(time.Unix(1_700_000_000, 0))
	s := NewMemoryStore(clk)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "a", []byte(`1`), time.Second))
	require.NoError(t, s.Set(ctx, "b", []byte(`2`), time.Hour))

	v, ok, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`1`), v)

	clk.Add(2 * time.Second)
	// expired but still held until looked up
	assert.Equal(t, 2, s.Len())

	_, ok, err = s.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())

	_, ok, _ = s.Get(ctx, "missing")
	assert.False(t, ok)
}
