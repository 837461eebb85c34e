package handler

import (
	"errors"
	"net/http"

	"github.com/deppfellow/realty/internal/errs"
	"github.com/deppfellow/realty/internal/model"
	"github.com/deppfellow/realty/internal/server"
	"github.com/deppfellow/realty/internal/service"
	"github.com/labstack/echo/v4"
)

const (
	uploadField        = "image"
	uploadCacheControl = "public, max-age=31536000"
)

type UploadHandler struct {
	Handler
	uploads *service.UploadService
}

func NewUploadHandler(s *server.Server, uploads *service.UploadService) *UploadHandler {
	return &UploadHandler{Handler: NewHandler(s), uploads: uploads}
}

func (h *UploadHandler) UploadImage(c echo.Context, _ *model.EmptyPayload) (*model.Response, error) {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, errs.NewBadRequestError("No file uploaded", true, errs.Code("NO_FILE"),
				[]errs.FieldError{{Field: uploadField, Message: "is required"}}, nil)
		}
		return nil, err
	}

	stored, err := h.uploads.SaveImage(fh)
	if err != nil {
		return nil, err
	}
	return model.OKWithMessage(stored, "Image uploaded successfully"), nil
}

func (h *UploadHandler) DeleteImage(c echo.Context, p *model.FilenameParam) (*model.Response, error) {
	if err := h.uploads.DeleteImage(p.Filename); err != nil {
		return nil, err
	}
	return model.OKWithMessage(nil, "Image deleted successfully"), nil
}

// ServeImage streams a stored image with a long-lived cache header.
// Filenames are unique per upload, so the content never changes.
func (h *UploadHandler) ServeImage(c echo.Context) error {
	path, err := h.uploads.FilePath(c.Param("filename"))
	if err != nil {
		return err
	}

	c.Response().Header().Set("Cache-Control", uploadCacheControl)
	return c.File(path)
}
