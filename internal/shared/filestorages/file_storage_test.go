package filestorages

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) FileStorage {
	t.Helper()

	storage, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)
	return storage
}

func TestNewFileStorage_EmptyRootDir(t *testing.T) {
	t.Parallel()

	storage, err := NewFileStorage("")
	assert.Nil(t, storage)
	assert.ErrorIs(t, err, ErrInvalidRootDir)
}

func TestPut_ValidKey(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)
	ctx := context.Background()

	validKeys := []string{
		"report.pdf",
		"reports/key-1/report.json",
		"nested/deep/path/file.pdf",
		"file-with-dashes.json",
		"file_with_underscores.pdf",
	}

	for _, key := range validKeys {
		t.Run(key, func(t *testing.T) {
			data := "test data"
			reader := strings.NewReader(data)

			result, err := storage.Put(ctx, key, reader, PutOptions{AllowOverwrite: false})
			require.NoError(t, err, "key %q should be valid", key)
			assert.Equal(t, key, result.FileKey)

			// Verify file was created
			fullPath := filepath.Join(storage.(*fileStorage).dir, key)
			content, err := os.ReadFile(fullPath)
			require.NoError(t, err)
			assert.Equal(t, data, string(content))
		})
	}
}

func TestPut_InvalidKey(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)
	ctx := context.Background()

	invalidKeys := []string{
		"",
		"..",
		".",
		"../escape.pdf",
		"reports/../../escape.pdf",
		"/absolute/path.pdf",
	}

	for _, key := range invalidKeys {
		t.Run(key, func(t *testing.T) {
			_, err := storage.Put(ctx, key, strings.NewReader("x"), PutOptions{})
			assert.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}

func TestPut_AllowOverwriteFalse_FileExists(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)
	ctx := context.Background()

	key := "reports/report.pdf"

	_, err := storage.Put(ctx, key, strings.NewReader("initial data"), PutOptions{AllowOverwrite: false})
	require.NoError(t, err)

	_, err = storage.Put(ctx, key, strings.NewReader("second write"), PutOptions{AllowOverwrite: false})
	assert.ErrorIs(t, err, ErrFileAlreadyExists)

	// Initial content untouched
	rc, err := storage.Get(ctx, key)
	require.NoError(t, err)
	defer rc.Close()
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "initial data", string(content))
}

func TestPut_AllowOverwriteTrue_Replaces(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)
	ctx := context.Background()

	key := "reports/report.json"

	_, err := storage.Put(ctx, key, strings.NewReader("v1"), PutOptions{AllowOverwrite: true})
	require.NoError(t, err)
	_, err = storage.Put(ctx, key, strings.NewReader("v2"), PutOptions{AllowOverwrite: true})
	require.NoError(t, err)

	rc, err := storage.Get(ctx, key)
	require.NoError(t, err)
	defer rc.Close()
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(content))
}

func TestPut_NoPartialFileOnFailedWrite(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)
	ctx := context.Background()

	key := "reports/broken.pdf"

	_, err := storage.Put(ctx, key, failingReader{}, PutOptions{AllowOverwrite: true})
	assert.Error(t, err)

	_, err = storage.Get(ctx, key)
	assert.ErrorIs(t, err, ErrFileNotFound)

	// No temp leftovers either
	entries, err := os.ReadDir(filepath.Join(storage.(*fileStorage).dir, "reports"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)

	_, err := storage.Get(context.Background(), "missing.pdf")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}
