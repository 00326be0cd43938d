package filestorage

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageOpen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "signature.png"), []byte("png-bytes"), 0o644))

	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	rc, info, err := store.Open("signature.png")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, "PNG", info.Format)
	assert.Equal(t, int64(9), info.FileSize)
}

func TestLocalStorageMissingAsset(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, _, err = store.Open("nope.png")
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestLocalStorageRejectsEscape(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Join(filepath.Dir(root), "secret.png")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))
	t.Cleanup(func() { _ = os.Remove(outside) })

	store, err := NewLocalStorage(root)
	require.NoError(t, err)

	_, err = store.Stat("../secret.png")
	assert.ErrorIs(t, err, ErrAssetNotFound)

	_, err = store.Stat("")
	assert.Error(t, err)
}
