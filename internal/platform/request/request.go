// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/linkshelf/internal/platform/apperr"
	"github.com/taibuivan/linkshelf/internal/platform/constants"
	"github.com/taibuivan/linkshelf/internal/platform/ctxutil"
	"github.com/taibuivan/linkshelf/internal/platform/sec"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

The body is capped at [constants.MaxJSONBodyBytes]. Decoding failures are
returned unchanged so the response layer can classify them (syntax, type,
oversized body). An empty body decodes to the zero value. Anything after the
first JSON value, other than whitespace, is rejected.

Parameters:
  - writer: http.ResponseWriter (needed by http.MaxBytesReader)
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target interface{}) error {
	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxJSONBodyBytes)

	decoder := json.NewDecoder(request.Body)
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	var trailing json.RawMessage
	switch err := decoder.Decode(&trailing); {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return err
	default:
		return apperr.BadRequest("Invalid JSON format in request body")
	}
}

/*
ID retrieves a named URL parameter (identifier) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Identity extracts the resolved caller from the request context.

Returns nil if the request is not authenticated.
*/
func Identity(request *http.Request) *sec.Identity {
	return ctxutil.GetIdentity(request.Context())
}

/*
RequiredIdentity ensures the request is authenticated and returns the caller.

Returns:
  - *sec.Identity: The resolved caller
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredIdentity(request *http.Request) (*sec.Identity, error) {
	identity := Identity(request)
	if identity == nil {
		return nil, apperr.Unauthorized("Unauthorized request")
	}
	return identity, nil
}

/*
ClientIP returns the host part of the connection address.

Proxy headers are not read here. Behind a trusted proxy the server installs
chi's RealIP middleware, which rewrites RemoteAddr before this runs.
*/
func ClientIP(request *http.Request) string {
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
