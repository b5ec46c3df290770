// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/linkshelf/internal/platform/apperr"
	"github.com/taibuivan/linkshelf/internal/platform/ctxutil"
	"github.com/taibuivan/linkshelf/internal/platform/respond"
	"github.com/taibuivan/linkshelf/pkg/uuid"
)

const (
	// FieldImage is the only form field accepted as a file.
	FieldImage = "image"
	// MaxParts bounds the number of multipart sections, files and text alike.
	MaxParts = 10

	keyPrefix = "covers/"
	fieldURL  = "url"
)

// ErrNotConfigured is reported when no bucket is configured.
var ErrNotConfigured = errors.New("upload: object storage not configured")

// Handler implements the /api/upload-helper endpoints.
type Handler struct {
	storage  Storage
	maxBytes int64
}

// NewHandler constructs an upload [Handler]. A nil storage makes every
// upload fail with a configuration error.
func NewHandler(storage Storage, maxBytes int64) *Handler {
	return &Handler{storage: storage, maxBytes: maxBytes}
}

// Routes returns a [chi.Router]; every endpoint runs behind guards.
func (handler *Handler) Routes(guards ...func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()
	router.Use(guards...)

	router.Post("/cover-image", handler.coverImage)

	return router
}

/*
POST /api/upload-helper/cover-image.

Request (multipart/form-data):
  - image: file (exactly one, image/*)

Response:
  - 200: {message, url}
  - 400: Oversized body, extra files, unexpected field or non-image content
  - 500: Object storage not configured
*/
func (handler *Handler) coverImage(writer http.ResponseWriter, request *http.Request) {
	if handler.storage == nil {
		respond.Error(writer, request, apperr.Internal(ErrNotConfigured))
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, handler.maxBytes)

	file, err := readImage(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	key := keyPrefix + uuid.New() + file.extension
	url, err := handler.storage.Put(request.Context(), key, bytes.NewReader(file.data), file.contentType)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	ctxutil.GetLogger(request.Context()).Info("cover_image_uploaded",
		slog.String("key", key),
		slog.Int("bytes", len(file.data)),
	)
	respond.Success(writer, http.StatusOK, "Image uploaded successfully", respond.Fields{fieldURL: url})
}

type imageFile struct {
	data        []byte
	contentType string
	extension   string
}

// readImage walks the multipart body and returns the single image it carries.
// Text fields are read and ignored.
func readImage(request *http.Request) (*imageFile, error) {
	reader, err := request.MultipartReader()
	if err != nil {
		return nil, apperr.Upload("MALFORMED_MULTIPART", "Request must be multipart/form-data").WithCause(err)
	}

	var file *imageFile
	for parts := 1; ; parts++ {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, multipartError(err)
		}
		if parts > MaxParts {
			return nil, apperr.Upload("LIMIT_PART_COUNT", "Too many parts in the multipart form.")
		}

		if part.FileName() == "" {
			if _, err := io.Copy(io.Discard, part); err != nil {
				return nil, multipartError(err)
			}
			continue
		}

		if part.FormName() != FieldImage {
			return nil, apperr.Upload("LIMIT_UNEXPECTED_FILE", fmt.Sprintf("Unexpected field: %s", part.FormName()))
		}
		if file != nil {
			return nil, apperr.Upload("LIMIT_FILE_COUNT", "Too many files uploaded.")
		}

		data, err := io.ReadAll(part)
		if err != nil {
			return nil, multipartError(err)
		}
		file = &imageFile{data: data, extension: strings.ToLower(filepath.Ext(part.FileName()))}
	}

	if file == nil {
		return nil, apperr.Upload("NO_FILE", fmt.Sprintf("An image file is required in field '%s'.", FieldImage))
	}

	file.contentType = http.DetectContentType(file.data)
	if !strings.HasPrefix(file.contentType, "image/") {
		return nil, apperr.Upload("INVALID_FILE_TYPE", "Only image uploads are allowed")
	}
	if file.extension == "" {
		if extensions, _ := mime.ExtensionsByType(file.contentType); len(extensions) > 0 {
			file.extension = extensions[0]
		}
	}

	return file, nil
}

// multipartError keeps size violations recognisable to the normalizer and
// reports everything else as a malformed body.
func multipartError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return err
	}
	return apperr.Upload("MALFORMED_MULTIPART", "Malformed multipart form data").WithCause(err)
}
