package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpcprof/pkg/config"
)

func newTree(t *testing.T, files map[string]string) *LocalStorage {
	t.Helper()
	dir := t.TempDir()
	for key, body := range files {
		path := filepath.Join(dir, filepath.FromSlash(key))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	}
	storage, err := NewLocalStorage(dir)
	require.NoError(t, err)
	return storage
}

func TestNewLocalStorage(t *testing.T) {
	t.Run("ExistingDir", func(t *testing.T) {
		dir := t.TempDir()
		storage, err := NewLocalStorage(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, storage.GetBasePath())
	})

	t.Run("EmptyPathIsCwd", func(t *testing.T) {
		storage, err := NewLocalStorage("")
		require.NoError(t, err)
		assert.Equal(t, ".", storage.GetBasePath())
	})

	t.Run("MissingDir", func(t *testing.T) {
		_, err := NewLocalStorage(filepath.Join(t.TempDir(), "absent"))
		assert.Error(t, err)
	})

	t.Run("NotADir", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, nil, 0644))
		_, err := NewLocalStorage(file)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
	})
}

func TestLocalStorage_Open(t *testing.T) {
	storage := newTree(t, map[string]string{"runs/a.eprof": "EPRF"})
	ctx := context.Background()

	rc, err := storage.Open(ctx, "runs/a.eprof")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "EPRF", string(data))

	_, err = storage.Open(ctx, "runs/b.eprof")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestLocalStorage_Open_RejectsEscapingKeys(t *testing.T) {
	storage := newTree(t, nil)
	ctx := context.Background()

	for _, key := range []string{"", "..", "../etc/passwd", "/etc/passwd", "a/../../b"} {
		t.Run(key, func(t *testing.T) {
			_, err := storage.Open(ctx, key)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid key")
		})
	}
}

func TestLocalStorage_Open_Canceled(t *testing.T) {
	storage := newTree(t, map[string]string{"a": "x"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := storage.Open(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalStorage_Fetch(t *testing.T) {
	storage := newTree(t, map[string]string{"runs/x/b.dprof": "DPRF"})
	ctx := context.Background()

	dst := filepath.Join(t.TempDir(), "work", "b.dprof")
	require.NoError(t, storage.Fetch(ctx, "runs/x/b.dprof", dst))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "DPRF", string(data))

	err = storage.Fetch(ctx, "runs/x/missing", filepath.Join(t.TempDir(), "m"))
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestLocalStorage_Exists(t *testing.T) {
	storage := newTree(t, map[string]string{"runs/a.eprof": "EPRF"})
	ctx := context.Background()

	ok, err := storage.Exists(ctx, "runs/a.eprof")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = storage.Exists(ctx, "runs")
	require.NoError(t, err)
	assert.False(t, ok, "directories are not objects")

	ok, err = storage.Exists(ctx, "runs/none")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalStorage_List(t *testing.T) {
	storage := newTree(t, map[string]string{
		"runs/2024/b.dprof": "b",
		"runs/2024/a.eprof": "a",
		"runs/2023/c.eprof": "c",
		"other/d.dprof":     "d",
	})
	ctx := context.Background()

	keys, err := storage.List(ctx, "runs/2024/")
	require.NoError(t, err)
	assert.Equal(t, []string{"runs/2024/a.eprof", "runs/2024/b.dprof"}, keys)

	keys, err = storage.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, keys, 4)

	keys, err = storage.List(ctx, "nothing/")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestLocalStorage_GetURL(t *testing.T) {
	storage := newTree(t, nil)
	assert.Equal(t, filepath.Join(storage.GetBasePath(), "runs", "a.eprof"), storage.GetURL("runs/a.eprof"))
}

func TestNewStorage(t *testing.T) {
	dir := t.TempDir()

	storage, err := NewStorage(&config.StorageConfig{Type: "local", LocalPath: dir})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, storage)

	storage, err = NewStorage(&config.StorageConfig{LocalPath: dir})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, storage)

	_, err = NewStorage(&config.StorageConfig{Type: "s3"})
	assert.Error(t, err)
}
