// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/linkshelf/internal/platform/request"
	"github.com/taibuivan/linkshelf/internal/platform/respond"
	"github.com/taibuivan/linkshelf/pkg/pagination"
	"github.com/taibuivan/linkshelf/pkg/query"
)

// Handler implements the /api/sites endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a site [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for sites. Reads are public; mutations run
// behind guards.
func (handler *Handler) Routes(guards ...func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	router.Group(func(protected chi.Router) {
		protected.Use(guards...)
		protected.Post("/", handler.create)
		protected.Patch("/{id}", handler.update)
		protected.Delete("/{id}", handler.delete)
	})

	return router
}

/*
GET /api/sites.

Request (Query):
  - category: string (category id)
  - q | title | search: string (case-insensitive title match)
  - sort: string (e.g. "-created_at,title")
  - page, limit: int

Response:
  - 200: {results, page, limit, total, totalPages}
  - 400: Invalid category id or sort field
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()

	sites, meta, err := handler.service.List(request.Context(), ListQuery{
		Category: values.Get(FieldCategory),
		Search:   query.FirstNonEmpty(values, "q", "title", "search"),
		Sort:     values.Get(FieldSort),
		Page:     pagination.FromRequest(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, sites, meta)
}

// GET /api/sites/{id}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	site, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Fields{FieldSite: site})
}

/*
POST /api/sites.

Request (Body):
  - site_url | siteUrl: string (required, absolute uri)
  - title: string (required)
  - cover_image | coverImage: string (optional uri)
  - description: string (optional)
  - category: string (required category id)

Response:
  - 201: {message, site}
  - 400: Validation error
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	patch, err := decodePatch(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	site, err := handler.service.Create(request.Context(), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Site created successfully", respond.Fields{FieldSite: site})
}

/*
PATCH /api/sites/{id}.

Description: Partial update. Unknown fields are ignored.

Response:
  - 200: {message, site}
  - 400: Validation error
  - 404: Site not found
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	patch, err := decodePatch(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	site, err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Success(writer, http.StatusOK, "Site updated", respond.Fields{FieldSite: site})
}

// DELETE /api/sites/{id}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// decodePatch reads a JSON object body. An empty body is an empty patch.
func decodePatch(writer http.ResponseWriter, request *http.Request) (Patch, error) {
	var body map[string]json.RawMessage
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		return nil, err
	}
	return NormalizePatch(body), nil
}
