// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// Successes are flat envelopes `{success: true, message?, ...payload}`.
// Failures go through [Error], the single funnel that classifies, logs and
// renders every error according to the request's error policy.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/taibuivan/linkshelf/internal/platform/constants"
	"github.com/taibuivan/linkshelf/pkg/pagination"
)

// Fields is the payload merged into a success envelope.
type Fields map[string]any

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// Success writes `{success: true, message?, ...fields}` with statusCode.
func Success(writer http.ResponseWriter, statusCode int, message string, fields Fields) {
	envelope := make(map[string]any, len(fields)+2)
	for key, value := range fields {
		envelope[key] = value
	}

	envelope[constants.FieldSuccess] = true
	if message != "" {
		envelope[constants.FieldMessage] = message
	}

	JSON(writer, statusCode, envelope)
}

// OK writes a 200 success envelope.
func OK(writer http.ResponseWriter, fields Fields) {
	Success(writer, http.StatusOK, "", fields)
}

// Created writes a 201 success envelope with a message.
func Created(writer http.ResponseWriter, message string, fields Fields) {
	Success(writer, http.StatusCreated, message, fields)
}

// Paginated writes a 200 envelope with results and the flattened pagination metadata.
func Paginated(writer http.ResponseWriter, results interface{}, metadata pagination.Meta) {
	OK(writer, Fields{
		constants.FieldResults: results,
		"page":                 metadata.Page,
		"limit":                metadata.Limit,
		"total":                metadata.Total,
		"totalPages":           metadata.TotalPages,
	})
}

// NoContent writes a 204 No Content response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}
