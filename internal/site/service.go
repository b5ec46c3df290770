// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/taibuivan/linkshelf/internal/platform/apperr"
	"github.com/taibuivan/linkshelf/internal/platform/database/schema"
	"github.com/taibuivan/linkshelf/internal/platform/validate"
	"github.com/taibuivan/linkshelf/pkg/pagination"
	"github.com/taibuivan/linkshelf/pkg/query"
	"github.com/taibuivan/linkshelf/pkg/uuid"
)

// Service orchestrates site rules.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a site [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

/*
Create validates and persists a new site.

Description: The patch supplies every field; the assembled record is
validated as a whole so one response lists every failing field.

Parameters:
  - context: context.Context
  - patch: Patch (already normalized)

Returns:
  - *Site: Persisted entity with timestamps
  - error: Validation or persistence failures
*/
func (service *Service) Create(context context.Context, patch Patch) (*Site, error) {
	site := &Site{ID: uuid.New()}
	if err := patch.Apply(site); err != nil {
		return nil, err
	}
	if err := validateSite(site); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, site); err != nil {
		return nil, err
	}

	service.logger.Info("site_created",
		slog.String("site_id", site.ID),
		slog.String("category", site.Category),
	)
	return site, nil
}

/*
List returns one page of sites.

Description: Sort fields are checked against the sortable columns and a
category filter must be a well-formed id. The total reflects the filter,
not the page.

Returns:
  - []*Site: The page
  - pagination.Meta: Page, limit, total and totalPages
  - error: BadRequest on an invalid filter or sort
*/
func (service *Service) List(context context.Context, listQuery ListQuery) ([]*Site, pagination.Meta, error) {
	if listQuery.Category != "" {
		category, ok := uuid.Canonical(listQuery.Category)
		if !ok {
			return nil, pagination.Meta{}, apperr.BadRequest("Invalid category id")
		}
		listQuery.Category = category
	}

	order, err := parseOrder(listQuery.Sort)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	params := listQuery.Page
	if params.Page < 1 {
		params.Page = pagination.DefaultPage
	}
	if params.Limit < 1 {
		params.Limit = pagination.DefaultLimit
	}

	filter := Filter{Category: listQuery.Category, Search: listQuery.Search, Order: order}
	sites, total, err := service.repo.List(context, filter, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return sites, pagination.NewMeta(params, total), nil
}

// Get retrieves one site. A malformed id is reported as not found.
func (service *Service) Get(context context.Context, id string) (*Site, error) {
	id, ok := uuid.Canonical(id)
	if !ok {
		return nil, apperr.NotFound(resourceSite).WithCause(apperr.ErrMalformedID)
	}
	return service.repo.FindByID(context, id)
}

/*
Update applies a partial change to one site.

Description: An empty patch, including one whose keys were all dropped by
the allow-list, returns the current record unchanged. Otherwise the merged
record is validated with the same rules as creation before it is written.

Returns:
  - *Site: The record after the update
  - error: NotFound, Validation or persistence failures
*/
func (service *Service) Update(context context.Context, id string, patch Patch) (*Site, error) {
	id, ok := uuid.Canonical(id)
	if !ok {
		return nil, apperr.NotFound(resourceSite).WithCause(apperr.ErrMalformedID)
	}

	site, err := service.repo.FindByID(context, id)
	if err != nil || patch.Empty() {
		return site, err
	}

	if err := patch.Apply(site); err != nil {
		return nil, err
	}
	if err := validateSite(site); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, site); err != nil {
		return nil, err
	}

	service.logger.Info("site_updated",
		slog.String("site_id", site.ID),
		slog.Int("fields", len(patch)),
	)
	return site, nil
}

// Delete removes one site. A malformed id is reported as not found.
func (service *Service) Delete(context context.Context, id string) error {
	id, ok := uuid.Canonical(id)
	if !ok {
		return apperr.NotFound(resourceSite).WithCause(apperr.ErrMalformedID)
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("site_deleted", slog.String("site_id", id))
	return nil
}

// # Validation

func validateSite(site *Site) error {
	validator := &validate.Validator{}

	validator.Required(FieldSiteURL, site.SiteURL)
	if site.SiteURL != "" {
		validator.URI(FieldSiteURL, site.SiteURL)
	}

	validator.Required(FieldTitle, site.Title)

	if site.CoverImage != nil {
		validator.OptionalURI(FieldCoverImage, *site.CoverImage)
	}

	// Stored as text, so every spelling of the same id is reduced to one form.
	validator.Required(FieldCategory, site.Category)
	if site.Category != "" {
		if category, ok := uuid.Canonical(site.Category); ok {
			site.Category = category
		} else {
			validator.ID(FieldCategory, site.Category)
		}
	}

	return validator.Err()
}

// parseOrder resolves a sort expression against the sortable columns.
// Client spellings go through the same alias table as patches.
func parseOrder(expression string) ([]Order, error) {
	fields := query.Sort(expression)
	if len(fields) == 0 {
		return nil, nil
	}

	sortable := schema.Site.Sortable()
	order := make([]Order, 0, len(fields))
	for _, field := range fields {
		column := field.Field
		if alias, ok := fieldAliases[column]; ok {
			column = alias
		}
		if !slices.Contains(sortable, column) {
			return nil, apperr.BadRequest(fmt.Sprintf("Cannot sort by '%s'", field.Field))
		}
		order = append(order, Order{Column: column, Descending: field.Descending})
	}
	return order, nil
}
