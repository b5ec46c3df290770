// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/linkshelf/internal/platform/apperr"
	"github.com/taibuivan/linkshelf/internal/site"
	"github.com/taibuivan/linkshelf/pkg/pagination"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, s *site.Site) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockRepository) List(ctx context.Context, filter site.Filter, limit, offset int) ([]*site.Site, int, error) {
	args := m.Called(ctx, filter, limit, offset)
	sites, _ := args.Get(0).([]*site.Site)
	return sites, args.Int(1), args.Error(2)
}

func (m *mockRepository) FindByID(ctx context.Context, id string) (*site.Site, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*site.Site)
	return s, args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, s *site.Site) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func newService(repo site.Repository) *site.Service {
	return site.NewService(repo, slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

const (
	knownID    = "0190c1a2-0000-7000-8000-0000000000d1"
	categoryID = "0190c1a2-0000-7000-8000-0000000000c1"
)

func storedSite() *site.Site {
	stamp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &site.Site{
		ID:        knownID,
		SiteURL:   "https://go.dev",
		Title:     "Go",
		Category:  categoryID,
		CreatedAt: stamp,
		UpdatedAt: stamp,
	}
}

/*
TestCreate verifies the assembled record and field-level validation.
*/
func TestCreate(t *testing.T) {
	t.Run("accepts_aliases", func(t *testing.T) {
		repo := &mockRepository{}
		repo.On("Create", mock.Anything, mock.MatchedBy(func(s *site.Site) bool {
			return s.SiteURL == "https://go.dev" && s.CoverImage != nil && *s.CoverImage == "https://go.dev/c.png" && s.ID != ""
		})).Return(nil)

		patch := site.NormalizePatch(body(t, `{"siteUrl":"https://go.dev","coverImage":"https://go.dev/c.png","title":"Go","category":"`+categoryID+`"}`))
		created, err := newService(repo).Create(context.Background(), patch)

		require.NoError(t, err)
		assert.Equal(t, "Go", created.Title)
		repo.AssertExpectations(t)
	})

	tests := []struct {
		name   string
		raw    string
		fields []string
	}{
		{"empty_body", `{}`, []string{"site_url", "title", "category"}},
		{"relative_url", `{"site_url":"/home","title":"Go","category":"` + categoryID + `"}`, []string{"site_url"}},
		{"bad_cover", `{"site_url":"https://go.dev","title":"Go","cover_image":"nope","category":"` + categoryID + `"}`, []string{"cover_image"}},
		{"bad_category", `{"site_url":"https://go.dev","title":"Go","category":"abc"}`, []string{"category"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepository{}

			_, err := newService(repo).Create(context.Background(), site.NormalizePatch(body(t, tt.raw)))

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, apperr.KindValidation, appError.Kind)

			fields := make([]string, 0, len(appError.Details))
			for _, detail := range appError.Details {
				fields = append(fields, detail.Field)
			}
			assert.Equal(t, tt.fields, fields)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

/*
TestList verifies filter validation, sort whitelisting and metadata.
*/
func TestList(t *testing.T) {
	t.Run("filter_and_meta", func(t *testing.T) {
		repo := &mockRepository{}
		expected := site.Filter{
			Category: categoryID,
			Search:   "go",
			Order:    []site.Order{{Column: "created_at", Descending: true}, {Column: "site_url"}},
		}
		repo.On("List", mock.Anything, expected, 2, 2).Return([]*site.Site{storedSite()}, 3, nil)

		sites, meta, err := newService(repo).List(context.Background(), site.ListQuery{
			Category: categoryID,
			Search:   "go",
			Sort:     "-created_at,siteUrl",
			Page:     pagination.Params{Page: 2, Limit: 2},
		})

		require.NoError(t, err)
		assert.Len(t, sites, 1)
		assert.Equal(t, pagination.Meta{Page: 2, Limit: 2, Total: 3, TotalPages: 2}, meta)
	})

	t.Run("empty_result_has_one_page", func(t *testing.T) {
		repo := &mockRepository{}
		repo.On("List", mock.Anything, site.Filter{}, 10, 0).Return([]*site.Site{}, 0, nil)

		_, meta, err := newService(repo).List(context.Background(), site.ListQuery{})

		require.NoError(t, err)
		assert.Equal(t, pagination.Meta{Page: 1, Limit: 10, Total: 0, TotalPages: 1}, meta)
	})

	t.Run("invalid_category", func(t *testing.T) {
		_, _, err := newService(&mockRepository{}).List(context.Background(), site.ListQuery{Category: "abc"})
		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, apperr.KindBadRequest, appError.Kind)
		assert.Equal(t, "Invalid category id", appError.Message)
	})

	t.Run("unknown_sort_field", func(t *testing.T) {
		_, _, err := newService(&mockRepository{}).List(context.Background(), site.ListQuery{Sort: "password_hash"})
		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, apperr.KindBadRequest, appError.Kind)
		assert.Equal(t, "Cannot sort by 'password_hash'", appError.Message)
	})
}

/*
TestUpdate verifies the empty patch shortcut, merging and validation.
*/
func TestUpdate(t *testing.T) {
	t.Run("empty_patch_returns_current", func(t *testing.T) {
		repo := &mockRepository{}
		repo.On("FindByID", mock.Anything, knownID).Return(storedSite(), nil)

		updated, err := newService(repo).Update(context.Background(), knownID, site.NormalizePatch(body(t, `{"id":"other"}`)))

		require.NoError(t, err)
		assert.Equal(t, "Go", updated.Title)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("merged_and_saved", func(t *testing.T) {
		repo := &mockRepository{}
		repo.On("FindByID", mock.Anything, knownID).Return(storedSite(), nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(s *site.Site) bool {
			return s.Title == "Golang" && s.SiteURL == "https://go.dev" && s.Description != nil && *s.Description == "Docs"
		})).Return(nil)

		updated, err := newService(repo).Update(context.Background(), knownID, site.NormalizePatch(body(t, `{"title":"Golang","description":"Docs"}`)))

		require.NoError(t, err)
		assert.Equal(t, "Golang", updated.Title)
		repo.AssertExpectations(t)
	})

	t.Run("invalid_merge_rejected", func(t *testing.T) {
		repo := &mockRepository{}
		repo.On("FindByID", mock.Anything, knownID).Return(storedSite(), nil)

		_, err := newService(repo).Update(context.Background(), knownID, site.NormalizePatch(body(t, `{"siteUrl":"not a url"}`)))

		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("missing_and_malformed", func(t *testing.T) {
		repo := &mockRepository{}
		repo.On("FindByID", mock.Anything, knownID).Return(nil, apperr.NotFound("Site"))

		_, err := newService(repo).Update(context.Background(), knownID, site.NormalizePatch(body(t, `{"title":"x"}`)))
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

		_, err = newService(repo).Update(context.Background(), "nope", site.Patch{})
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

/*
TestGetDelete verifies that malformed ids never reach the store.
*/
func TestGetDelete(t *testing.T) {
	repo := &mockRepository{}
	repo.On("FindByID", mock.Anything, knownID).Return(storedSite(), nil)
	repo.On("Delete", mock.Anything, knownID).Return(nil)
	service := newService(repo)

	found, err := service.Get(context.Background(), knownID)
	require.NoError(t, err)
	assert.Equal(t, knownID, found.ID)
	require.NoError(t, service.Delete(context.Background(), knownID))

	_, err = service.Get(context.Background(), "12")
	assert.Equal(t, "Site not found", apperr.As(err).Message)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(service.Delete(context.Background(), "12")))

	repo.AssertNumberOfCalls(t, "FindByID", 1)
	repo.AssertNumberOfCalls(t, "Delete", 1)
}

/*
TestIdentifierSpellings verifies that every accepted spelling of an id is reduced
to the lower-case hyphenated form before it reaches the store.
*/
func TestIdentifierSpellings(t *testing.T) {
	braced := "{" + strings.ToUpper(categoryID) + "}"

	t.Run("create_stores_canonical_category", func(t *testing.T) {
		repo := &mockRepository{}
		repo.On("Create", mock.Anything, mock.MatchedBy(func(s *site.Site) bool {
			return s.Category == categoryID
		})).Return(nil)

		created, err := newService(repo).Create(context.Background(),
			site.NormalizePatch(body(t, `{"site_url":"https://go.dev","title":"Go","category":"`+braced+`"}`)))

		require.NoError(t, err)
		assert.Equal(t, categoryID, created.Category)
		repo.AssertExpectations(t)
	})

	t.Run("update_stores_canonical_category", func(t *testing.T) {
		repo := &mockRepository{}
		repo.On("FindByID", mock.Anything, knownID).Return(storedSite(), nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(s *site.Site) bool {
			return s.Category == categoryID
		})).Return(nil)

		_, err := newService(repo).Update(context.Background(), strings.ToUpper(knownID),
			site.NormalizePatch(body(t, `{"category":"urn:uuid:`+strings.ToUpper(categoryID)+`"}`)))

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("list_filters_by_canonical_category", func(t *testing.T) {
		repo := &mockRepository{}
		repo.On("List", mock.Anything, site.Filter{Category: categoryID}, 10, 0).Return([]*site.Site{storedSite()}, 1, nil)

		sites, _, err := newService(repo).List(context.Background(), site.ListQuery{Category: braced})

		require.NoError(t, err)
		assert.Len(t, sites, 1)
		repo.AssertExpectations(t)
	})

	t.Run("get_and_delete_use_canonical_id", func(t *testing.T) {
		repo := &mockRepository{}
		repo.On("FindByID", mock.Anything, knownID).Return(storedSite(), nil)
		repo.On("Delete", mock.Anything, knownID).Return(nil)
		service := newService(repo)

		_, err := service.Get(context.Background(), "urn:uuid:"+knownID)
		require.NoError(t, err)
		require.NoError(t, service.Delete(context.Background(), strings.ToUpper(knownID)))
		repo.AssertExpectations(t)
	})
}
