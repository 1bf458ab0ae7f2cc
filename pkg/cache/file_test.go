package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)
	defer c.Close()

	_, hit, err := c.Get(ctx, "diagram:abc")
	require.NoError(t, err)
	assert.False(t, hit, "empty cache should miss")

	require.NoError(t, c.Set(ctx, "diagram:abc", []byte(`{"width":2}`), 0))

	data, hit, err := c.Get(ctx, "diagram:abc")
	require.NoError(t, err)
	require.True(t, hit, "Get after Set should hit")
	assert.Equal(t, []byte(`{"width":2}`), data)

	require.NoError(t, c.Delete(ctx, "diagram:abc"))
	_, hit, err = c.Get(ctx, "diagram:abc")
	require.NoError(t, err)
	assert.False(t, hit, "Get after Delete should miss")
	assert.NoError(t, c.Delete(ctx, "diagram:abc"), "deleting a missing key")
}

func TestFileCachePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "cache")

	first, err := NewFileCache(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "circuit:xyz", []byte("qasm"), 0))

	second, err := NewFileCache(dir)
	require.NoError(t, err)
	data, hit, err := second.Get(ctx, "circuit:xyz")
	require.NoError(t, err)
	require.True(t, hit, "entries should survive a new instance")
	assert.Equal(t, []byte("qasm"), data)
}

func TestFileCacheTTL(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	_, hit, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, hit, "expired entry should miss")
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "cache")
	c, err := NewFileCache(dir)
	require.NoError(t, err)

	for _, key := range []string{"a", "b", "c"} {
		require.NoError(t, c.Set(ctx, key, []byte(key), 0))
	}
	require.NoError(t, c.Clear(ctx))

	for _, key := range []string{"a", "b", "c"} {
		_, hit, err := c.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, hit, "Get(%q) after Clear should miss", key)
	}
	_, err = os.Stat(dir)
	assert.NoError(t, err, "Clear should keep the cache directory")
}

func TestFileCacheIgnoresCorruptEntries(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "key", []byte("value"), 0))

	// Corrupt the stored file in place.
	fc := c.(*FileCache)
	require.NoError(t, os.WriteFile(fc.path("key"), []byte("not json"), 0o644))

	_, hit, err := c.Get(ctx, "key")
	require.NoError(t, err, "a corrupt entry should read as a clean miss")
	assert.False(t, hit)
}
