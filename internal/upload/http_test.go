// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package upload_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/linkshelf/internal/upload"
)

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	data, _ := io.ReadAll(body)
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

type formFile struct {
	field, name string
	data        []byte
}

func multipartRequest(t *testing.T, fields map[string]string, files ...formFile) *http.Request {
	t.Helper()
	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)

	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	for _, file := range files {
		part, err := writer.CreateFormFile(file.field, file.name)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, "/api/upload-helper/cover-image", &buffer)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	return request
}

func serve(storage upload.Storage, maxBytes int64, request *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	router := chi.NewRouter()
	router.Mount("/api/upload-helper", upload.NewHandler(storage, maxBytes).Routes())

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	var decoded map[string]any
	_ = json.Unmarshal(recorder.Body.Bytes(), &decoded)
	return recorder, decoded
}

/*
TestCoverImage_Success verifies the object key, detected type and returned URL.
*/
func TestCoverImage_Success(t *testing.T) {
	storage := &mockStorage{}
	storage.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "covers/") && strings.HasSuffix(key, ".png")
	}), pngBytes, "image/png").Return("https://cdn.example.com/covers/x.png", nil)

	request := multipartRequest(t, map[string]string{"note": "ignored"}, formFile{"image", "Cover.PNG", pngBytes})
	recorder, decoded := serve(storage, 1<<20, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "https://cdn.example.com/covers/x.png", decoded["url"])
	storage.AssertExpectations(t)
}

/*
TestCoverImage_Rejections verifies each multipart rule and its message.
*/
func TestCoverImage_Rejections(t *testing.T) {
	manyFields := make(map[string]string)
	for i := range upload.MaxParts + 1 {
		manyFields[fmt.Sprintf("field%d", i)] = "x"
	}

	tests := []struct {
		name     string
		request  func(t *testing.T) *http.Request
		maxBytes int64
		message  string
	}{
		{
			name:     "too_large",
			request:  func(t *testing.T) *http.Request { return multipartRequest(t, nil, formFile{"image", "a.png", bytes.Repeat(pngBytes, 100)}) },
			maxBytes: 512,
		},
		{
			name: "two_files",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, nil, formFile{"image", "a.png", pngBytes}, formFile{"image", "b.png", pngBytes})
			},
			maxBytes: 1 << 20,
			message:  "Too many files uploaded.",
		},
		{
			name:     "wrong_field",
			request:  func(t *testing.T) *http.Request { return multipartRequest(t, nil, formFile{"avatar", "a.png", pngBytes}) },
			maxBytes: 1 << 20,
			message:  "Unexpected field: avatar",
		},
		{
			name:     "too_many_parts",
			request:  func(t *testing.T) *http.Request { return multipartRequest(t, manyFields) },
			maxBytes: 1 << 20,
			message:  "Too many parts in the multipart form.",
		},
		{
			name:     "not_an_image",
			request:  func(t *testing.T) *http.Request { return multipartRequest(t, nil, formFile{"image", "a.png", []byte("plain text")}) },
			maxBytes: 1 << 20,
			message:  "Only image uploads are allowed",
		},
		{
			name: "not_multipart",
			request: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/upload-helper/cover-image", strings.NewReader(`{}`))
			},
			maxBytes: 1 << 20,
			message:  "Request must be multipart/form-data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := &mockStorage{}

			recorder, decoded := serve(storage, tt.maxBytes, tt.request(t))

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Equal(t, false, decoded["success"])
			if tt.message != "" {
				assert.Equal(t, tt.message, decoded["message"])
			}
			storage.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

/*
TestCoverImage_NotConfigured verifies the 500 when no bucket is set.
*/
func TestCoverImage_NotConfigured(t *testing.T) {
	recorder, _ := serve(nil, 1<<20, multipartRequest(t, nil, formFile{"image", "a.png", pngBytes}))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}
