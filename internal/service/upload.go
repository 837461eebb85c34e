package service

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/deppfellow/realty/internal/errs"
	"github.com/deppfellow/realty/internal/lib/storage"
	"github.com/deppfellow/realty/internal/server"
)

type UploadService struct {
	server  *server.Server
	storage *storage.LocalStorage
}

func NewUploadService(s *server.Server) *UploadService {
	return &UploadService{server: s, storage: s.Storage}
}

// SaveImage stores the uploaded image. The declared size is checked before
// the body is read; the stored size is checked again by the storage.
func (s *UploadService) SaveImage(fh *multipart.FileHeader) (*storage.StoredFile, error) {
	if fh.Size > s.storage.MaxSize() {
		return nil, s.tooLarge()
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload: %w", err)
	}
	defer src.Close()

	stored, err := s.storage.Save(fh.Filename, src)
	if err != nil {
		return nil, s.translate(err)
	}

	s.server.Logger.Info().
		Str("filename", stored.Filename).
		Str("mimetype", stored.MimeType).
		Int64("size", stored.Size).
		Msg("image uploaded")

	return stored, nil
}

func (s *UploadService) DeleteImage(filename string) error {
	if err := s.storage.Delete(filename); err != nil {
		return s.translate(err)
	}

	s.server.Logger.Info().Str("filename", filename).Msg("image deleted")
	return nil
}

// FilePath resolves a stored image for serving.
func (s *UploadService) FilePath(filename string) (string, error) {
	path, err := s.storage.Path(filename)
	if err != nil {
		return "", s.translate(err)
	}
	if !s.storage.Exists(filename) {
		return "", s.translate(storage.ErrNotFound)
	}
	return path, nil
}

func (s *UploadService) tooLarge() *errs.HTTPError {
	return errs.NewPayloadTooLargeError(fmt.Sprintf("File is too large, the maximum size is %d MB", s.storage.MaxSize()>>20))
}

func (s *UploadService) translate(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return errs.NewNotFoundError("File not found", true, errs.Code("FILE_NOT_FOUND"))
	case errors.Is(err, storage.ErrInvalidName):
		return errs.NewBadRequestError("Invalid file name", true, errs.Code("INVALID_FILENAME"), nil, nil)
	case errors.Is(err, storage.ErrUnsupportedType):
		return errs.NewBadRequestError("Only image files are allowed (jpeg, png, gif, webp)", true, errs.Code("INVALID_FILE_TYPE"),
			[]errs.FieldError{{Field: "image", Message: "must be a jpeg, png, gif or webp image"}}, nil)
	case errors.Is(err, storage.ErrTooLarge):
		return s.tooLarge()
	default:
		return err
	}
}
