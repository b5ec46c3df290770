// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/linkshelf/internal/platform/constants"
	requestutil "github.com/taibuivan/linkshelf/internal/platform/request"
	"github.com/taibuivan/linkshelf/internal/platform/respond"
)

// Handler implements the /api/categories endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a category [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for categories. Mutations run behind guards
// (authentication and the admin role check, in that order).
func (handler *Handler) Routes(guards ...func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	router.With(guards...).Post("/", handler.create)
	router.With(guards...).Delete("/{id}", handler.delete)

	return router
}

/*
GET /api/categories.

Response:
  - 200: {results: []Category} ordered by name
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Fields{constants.FieldResults: categories})
}

// GET /api/categories/{id}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	category, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Fields{FieldCategory: category})
}

/*
POST /api/categories.

Request (Body):
  - name: string (required, unique)
  - description: string (optional)

Response:
  - 201: {message, category}
  - 400: Validation error or duplicate name
  - 401/403: Not an authenticated admin
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Category created", respond.Fields{FieldCategory: category})
}

/*
DELETE /api/categories/{id}.

Response:
  - 204: Deleted
  - 404: Category not found (including malformed ids)
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
