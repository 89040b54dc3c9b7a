package localstore

import (
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

func stores(t *testing.T) map[string]Store {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fs,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			var got []item
			found, err := store.Get("cart", &got)
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, store.Set("cart", []item{{ID: "a", Quantity: 2}}))
			require.NoError(t, store.Set("favorites", []string{"b"}))

			found, err = store.Get("cart", &got)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, []item{{ID: "a", Quantity: 2}}, got)

			require.NoError(t, store.Clear("cart"))
			found, err = store.Get("cart", &got)
			require.NoError(t, err)
			assert.False(t, found)

			var favorites []string
			found, err = store.Get("favorites", &favorites)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, []string{"b"}, favorites)

			require.NoError(t, store.Clear("missing"))
		})
	}
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	first, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set("favorites", []string{"x", "y"}))

	second, err := NewFileStore(dir)
	require.NoError(t, err)

	var got []string
	found, err := second.Get("favorites", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"x", "y"}, got)
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))

	var got []string
	_, err = store.Get("cart", &got)
	assert.Error(t, err)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Set("key", i)
			var v int
			_, _ = store.Get("key", &v)
		}(i)
	}
	wg.Wait()

	var v int
	found, err := store.Get("key", &v)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, v >= 0 && v < 20)
}
