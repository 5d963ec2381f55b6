package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGetPrefix(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "donation:a:1", []byte("one")))
	require.NoError(t, m.Set(ctx, "donation:b:2", []byte("two")))
	require.NoError(t, m.Set(ctx, "other:c", []byte("three")))

	got, err := m.Get(ctx, "donation:a:1")
	require.NoError(t, err)
	require.Equal(t, []byte("one"), got)

	_, err = m.Get(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)

	vals, err := m.GetByPrefix(ctx, "donation:")
	require.NoError(t, err)
	require.Len(t, vals, 2)
	require.Equal(t, 3, m.Len())
}

func TestMemoryStore_ValueIsolation(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	src := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", src))
	src[0] = 'z'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), got)
}
