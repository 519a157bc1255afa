//go:build integration

package snapshot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestBadgerStoreRoundTrip exercises a real embedded BadgerDB database.
//
// Run with: go test -tags=integration ./internal/snapshot/...
func TestBadgerStoreRoundTrip(t *testing.T) {
	store, err := NewBadgerStore(BadgerStoreConfig{Dir: t.TempDir(), Key: "image"})
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	_, err = store.Load(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	want := []byte("pretend this is an image byte array")
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestBadgerStoreSaveOverwritesPreviousSnapshot(t *testing.T) {
	store, err := NewBadgerStore(BadgerStoreConfig{Dir: t.TempDir(), Key: "image"})
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, []byte("first")))
	require.NoError(t, store.Save(ctx, []byte("second")))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []byte("second"), got)
}
