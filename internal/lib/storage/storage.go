// Package storage keeps uploaded images on the local disk and maps them to
// the public URLs they are served from.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/deppfellow/realty/internal/config"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("file not found")
	ErrTooLarge        = errors.New("file exceeds the maximum allowed size")
	ErrUnsupportedType = errors.New("only jpeg, png, gif and webp images are allowed")
	ErrInvalidName     = errors.New("invalid file name")
)

// allowedTypes maps sniffed MIME types to the extension files are stored with.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// StoredFile describes a file written by Save.
type StoredFile struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mimetype"`
	URL          string `json:"url"`
}

type LocalStorage struct {
	dir        string
	publicPath string
	maxSize    int64
	now        func() time.Time
}

// NewLocalStorage creates the upload directory when missing.
func NewLocalStorage(cfg *config.UploadConfig) (*LocalStorage, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}

	return &LocalStorage{
		dir:        cfg.Dir,
		publicPath: strings.TrimSuffix(cfg.PublicPath, "/"),
		maxSize:    cfg.MaxSizeBytes,
		now:        time.Now,
	}, nil
}

func (s *LocalStorage) Dir() string {
	return s.dir
}

func (s *LocalStorage) MaxSize() int64 {
	return s.maxSize
}

// Save sniffs the content type of src, rejects anything that is not an
// allowed image and writes it as <unixMillis>_<uuid><ext>.
func (s *LocalStorage) Save(originalName string, src io.Reader) (*StoredFile, error) {
	data, err := io.ReadAll(io.LimitReader(src, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return nil, ErrTooLarge
	}

	mime := mimetype.Detect(data)
	ext, ok := allowedTypes[mime.String()]
	if !ok {
		return nil, ErrUnsupportedType
	}
	if orig := strings.ToLower(filepath.Ext(originalName)); orig == ".jpeg" && ext == ".jpg" {
		ext = orig
	}

	filename := fmt.Sprintf("%d_%s%s", s.now().UnixMilli(), uuid.NewString(), ext)

	if err := writeFileAtomic(filepath.Join(s.dir, filename), data); err != nil {
		return nil, err
	}

	return &StoredFile{
		Filename:     filename,
		OriginalName: filepath.Base(originalName),
		Size:         int64(len(data)),
		MimeType:     mime.String(),
		URL:          s.URL(filename),
	}, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		tmp.Close()
		return fmt.Errorf("writing upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing upload: %w", err)
	}

	return os.Rename(tmp.Name(), path)
}

// Path resolves filename inside the upload directory, refusing anything
// that would escape it.
func (s *LocalStorage) Path(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", ErrInvalidName
	}
	return filepath.Join(s.dir, filename), nil
}

func (s *LocalStorage) Exists(filename string) bool {
	path, err := s.Path(filename)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (s *LocalStorage) Delete(filename string) error {
	path, err := s.Path(filename)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("deleting %s: %w", filename, err)
	}
	return nil
}

// URL returns the public path a stored file is served from.
func (s *LocalStorage) URL(filename string) string {
	return s.publicPath + "/" + filename
}

// FilenameFromURL returns the stored filename for URLs produced by URL.
// Absolute URLs and inline images report false.
func (s *LocalStorage) FilenameFromURL(url string) (string, bool) {
	prefix := s.publicPath + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}

	name := strings.TrimPrefix(url, prefix)
	if _, err := s.Path(name); err != nil {
		return "", false
	}
	return name, true
}
