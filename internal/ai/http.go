// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ai

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/linkshelf/internal/platform/request"
	"github.com/taibuivan/linkshelf/internal/platform/respond"
)

// Handler implements the /api/ai endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs an AI [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router]; every endpoint runs behind guards.
func (handler *Handler) Routes(guards ...func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()
	router.Use(guards...)

	router.Post("/generate-description", handler.generateDescription)

	return router
}

// GenerateInput is the request body of generate-description.
type GenerateInput struct {
	Title string `json:"title"`
}

/*
POST /api/ai/generate-description.

Request (Body):
  - title: string (required)

Response:
  - 200: {description}
  - 400: Missing title or content blocked
  - 429: Per-user limit or provider quota reached
  - 500: Provider not configured or generation failed
*/
func (handler *Handler) generateDescription(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input GenerateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	description, err := handler.service.Generate(request.Context(), identity.ID, input.Title)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Fields{FieldDescription: description})
}
