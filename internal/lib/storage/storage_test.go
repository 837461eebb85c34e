package storage

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/realty/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG.
const pixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

func newTestStorage(t *testing.T, maxSize int64) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(&config.UploadConfig{
		Dir:          t.TempDir(),
		MaxSizeBytes: maxSize,
		PublicPath:   "/uploads",
	})
	require.NoError(t, err)
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return s
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(pixelPNG)
	require.NoError(t, err)
	return data
}

func TestSave_StoresImage(t *testing.T) {
	s := newTestStorage(t, 1<<20)

	stored, err := s.Save("house.png", bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stored.Filename, "1700000000000_"))
	assert.True(t, strings.HasSuffix(stored.Filename, ".png"))
	assert.Equal(t, "house.png", stored.OriginalName)
	assert.Equal(t, "image/png", stored.MimeType)
	assert.Equal(t, "/uploads/"+stored.Filename, stored.URL)
	assert.FileExists(t, filepath.Join(s.Dir(), stored.Filename))
}

func TestSave_RejectsNonImages(t *testing.T) {
	s := newTestStorage(t, 1<<20)

	_, err := s.Save("notes.png", strings.NewReader("just some text pretending to be an image"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestSave_RejectsOversizedFiles(t *testing.T) {
	s := newTestStorage(t, 10)

	_, err := s.Save("house.png", bytes.NewReader(pngBytes(t)))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestDelete(t *testing.T) {
	s := newTestStorage(t, 1<<20)
	stored, err := s.Save("house.png", bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)

	require.NoError(t, s.Delete(stored.Filename))
	_, statErr := os.Stat(filepath.Join(s.Dir(), stored.Filename))
	assert.True(t, os.IsNotExist(statErr))

	assert.ErrorIs(t, s.Delete(stored.Filename), ErrNotFound)
}

func TestPath_RejectsTraversal(t *testing.T) {
	s := newTestStorage(t, 1<<20)

	for _, name := range []string{"../etc/passwd", "a/b.png", "", ".hidden"} {
		_, err := s.Path(name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

func TestFilenameFromURL(t *testing.T) {
	s := newTestStorage(t, 1<<20)

	name, ok := s.FilenameFromURL("/uploads/123_abc.png")
	assert.True(t, ok)
	assert.Equal(t, "123_abc.png", name)

	_, ok = s.FilenameFromURL("https://cdn.example.com/uploads/123_abc.png")
	assert.False(t, ok)

	_, ok = s.FilenameFromURL("/uploads/../secret")
	assert.False(t, ok)
}
