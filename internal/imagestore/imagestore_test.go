package imagestore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreKeepsSameNamedUploadsApart(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	first, err := store.Store("logo.PNG", []byte("first"))
	require.NoError(t, err)
	second, err := store.Store("logo.PNG", []byte("second"))
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.True(t, strings.HasSuffix(first, ".png"))

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	require.Equal(t, []byte("first"), data)
}

func TestDeleteIsBestEffort(t *testing.T) {
	ctx := context.Background()
	store, err := New(t.TempDir())
	require.NoError(t, err)

	path, err := store.Store("ref.jpg", []byte("bytes"))
	require.NoError(t, err)

	store.Delete(ctx, path)
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))

	// missing files and empty paths are silently ignored
	store.Delete(ctx, path)
	store.Delete(ctx, "")
	store.Delete(ctx, filepath.Join(store.Dir, "never-existed.png"))
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "images")
	_, err := New(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}
