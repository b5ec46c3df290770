// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/linkshelf/internal/platform/apperr"
	"github.com/taibuivan/linkshelf/internal/platform/validate"
	"github.com/taibuivan/linkshelf/pkg/uuid"
)

// Service orchestrates category rules.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a category [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

/*
Create validates and persists a new category.

Description: The name is trimmed; a blank description is stored as NULL.
A duplicate name surfaces as a 400 Conflict naming the field.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Category: Persisted entity with timestamps
  - error: Validation, Conflict or persistence failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Category, error) {
	name := strings.TrimSpace(input.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, NameMaxLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	category := &Category{
		ID:          uuid.New(),
		Name:        name,
		Description: input.Description,
	}
	if category.Description != nil && strings.TrimSpace(*category.Description) == "" {
		category.Description = nil
	}

	if err := service.repo.Create(context, category); err != nil {
		return nil, err
	}

	service.logger.Info("category_created",
		slog.String("category_id", category.ID),
		slog.String("name", category.Name),
	)
	return category, nil
}

// List returns every category ordered by name.
func (service *Service) List(context context.Context) ([]*Category, error) {
	return service.repo.List(context)
}

// Get retrieves one category. A malformed id is reported as not found.
func (service *Service) Get(context context.Context, id string) (*Category, error) {
	id, ok := uuid.Canonical(id)
	if !ok {
		return nil, apperr.NotFound(resourceCategory).WithCause(apperr.ErrMalformedID)
	}
	return service.repo.FindByID(context, id)
}

// Delete removes one category. A malformed id is reported as not found.
func (service *Service) Delete(context context.Context, id string) error {
	id, ok := uuid.Canonical(id)
	if !ok {
		return apperr.NotFound(resourceCategory).WithCause(apperr.ErrMalformedID)
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("category_deleted", slog.String("category_id", id))
	return nil
}
