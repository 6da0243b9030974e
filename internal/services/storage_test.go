package services

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["file"][0]
}

func TestStorageService_SaveTempUniquePaths(t *testing.T) {
	dir := t.TempDir()
	storage := NewStorageService(dir, zaptest.NewLogger(t))
	header := newFileHeader(t, "cv.pdf", buildPDF("Jane Doe"))

	first, err := storage.SaveTemp(header)
	require.NoError(t, err)
	second, err := storage.SaveTemp(header)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, dir, filepath.Dir(first))
	assert.True(t, strings.HasPrefix(filepath.Base(first), "upload_"))
	assert.FileExists(t, first)
	assert.FileExists(t, second)

	storage.Remove(first)
	storage.Remove(second)
	assert.NoFileExists(t, first)
	assert.NoFileExists(t, second)
}

func TestStorageService_RejectsNonPDF(t *testing.T) {
	dir := t.TempDir()
	storage := NewStorageService(dir, zaptest.NewLogger(t))
	header := newFileHeader(t, "cv.pdf", []byte("plain text pretending to be a pdf"))

	_, err := storage.SaveTemp(header)

	assert.ErrorIs(t, err, ErrNotPDF)
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestStorageService_RemoveIsBestEffort(t *testing.T) {
	storage := NewStorageService(t.TempDir(), zaptest.NewLogger(t))

	assert.NotPanics(t, func() {
		storage.Remove("")
		storage.Remove(filepath.Join(t.TempDir(), "already-gone.pdf"))
	})
}

func TestStorageService_EnsureTempDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	storage := NewStorageService(dir, zaptest.NewLogger(t))

	require.NoError(t, storage.EnsureTempDir())
	assert.DirExists(t, dir)
}
