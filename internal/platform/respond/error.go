// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/taibuivan/linkshelf/internal/platform/apperr"
	"github.com/taibuivan/linkshelf/internal/platform/ctxutil"
	"github.com/taibuivan/linkshelf/internal/platform/dberr"
	requestutil "github.com/taibuivan/linkshelf/internal/platform/request"
	"github.com/taibuivan/linkshelf/internal/platform/sec"
	"github.com/taibuivan/linkshelf/pkg/uuid"
)

// genericMessage replaces the message of non-operational errors in strict mode.
const genericMessage = "Something went wrong!"

// ErrorEnvelope is the JSON envelope for error responses.
//
// Name, Code, Stack and Raw are only populated in verbose mode.
type ErrorEnvelope struct {
	Success bool                `json:"success"`
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Errors  []apperr.FieldError `json:"errors,omitempty"`
	Name    string              `json:"name,omitempty"`
	Code    string              `json:"code,omitempty"`
	Stack   string              `json:"stack,omitempty"`
	Raw     string              `json:"error,omitempty"`
}

// Error converts any Go error into a standardized JSON API error response.
//
// # Flow
//  1. Classify err into an [*apperr.AppError] ([Normalize]).
//  2. Record the failure on the request logger and the optional sink.
//  3. Render verbose or strict output per the request's [ctxutil.ErrorPolicy].
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	appError := Normalize(err)
	policy := ctxutil.GetErrorPolicy(request.Context())

	record(request, policy, appError, err)

	envelope := ErrorEnvelope{
		Success: false,
		Status:  appError.Status(),
		Message: appError.Message,
		Errors:  appError.Details,
	}

	switch {
	case policy.Verbose:
		envelope.Name = appError.Kind.String()
		envelope.Code = appError.Code
		envelope.Stack = appError.Stack
		envelope.Raw = err.Error()
		if !appError.Operational {
			envelope.Message = err.Error()
		}
	case !appError.Operational:
		JSON(writer, http.StatusInternalServerError, ErrorEnvelope{
			Success: false,
			Status:  "error",
			Message: genericMessage,
		})
		return
	}

	JSON(writer, appError.HTTPStatus, envelope)
}

// Normalize maps heterogeneous failures onto the closed [apperr.Kind] set.
func Normalize(err error) *apperr.AppError {
	if appError := apperr.As(err); appError != nil {
		return appError
	}

	var (
		syntaxErr   *json.SyntaxError
		typeErr     *json.UnmarshalTypeError
		maxBytesErr *http.MaxBytesError
	)

	switch {
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr), errors.Is(err, io.ErrUnexpectedEOF):
		return apperr.BadRequest("Invalid JSON format in request body").WithCause(err)

	case errors.As(err, &maxBytesErr), errors.Is(err, multipart.ErrMessageTooLarge):
		return apperr.Upload("LIMIT_FILE_SIZE", "File size is too large. Maximum size allowed is specified in configuration.").WithCause(err)

	case errors.Is(err, sec.ErrTokenExpired):
		return apperr.Unauthorized("Your token has expired! Please log in again.").WithCause(err)

	case errors.Is(err, sec.ErrTokenInvalid):
		return apperr.Unauthorized("Invalid token. Please log in again!").WithCause(err)

	case errors.Is(err, uuid.ErrMalformed):
		return apperr.BadRequest("Invalid identifier").WithCause(err)
	}

	if conflict := dberr.AsConflict(err); conflict != nil {
		return conflict
	}

	return apperr.Internal(err)
}

// record writes the failure to the request logger and, when configured, the sink.
func record(request *http.Request, policy ctxutil.ErrorPolicy, appError *apperr.AppError, err error) {
	attributes := []any{
		slog.String("method", request.Method),
		slog.String("path", request.URL.Path),
		slog.String("message", err.Error()),
		slog.String("name", appError.Kind.String()),
		slog.String("code", appError.Code),
		slog.Int("status", appError.HTTPStatus),
		slog.String("ip", requestutil.ClientIP(request)),
		slog.String("user_agent", request.UserAgent()),
		slog.String("request_id", ctxutil.GetRequestID(request.Context())),
	}
	if appError.Stack != "" {
		attributes = append(attributes, slog.String("stack", appError.Stack))
	}
	if appError.Cause != nil {
		attributes = append(attributes, slog.String("cause", fmt.Sprint(appError.Cause)))
	}

	level := slog.LevelWarn
	if appError.HTTPStatus >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	context := request.Context()
	ctxutil.GetLogger(context).Log(context, level, "request_failed", attributes...)
	if policy.Sink != nil {
		policy.Sink.Log(context, level, "request_failed", attributes...)
	}
}
