// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/linkshelf/internal/category"
	"github.com/taibuivan/linkshelf/internal/platform/apperr"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, c *category.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockRepository) List(ctx context.Context) ([]*category.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]*category.Category)
	return categories, args.Error(1)
}

func (m *mockRepository) FindByID(ctx context.Context, id string) (*category.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*category.Category)
	return c, args.Error(1)
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func newService(repo category.Repository) *category.Service {
	return category.NewService(repo, slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

const knownID = "0190c1a2-0000-7000-8000-0000000000c1"

/*
TestCreate verifies trimming, validation and pass-through of store conflicts.
*/
func TestCreate(t *testing.T) {
	t.Run("trimmed_and_blank_description_dropped", func(t *testing.T) {
		repo := &mockRepository{}
		blank := "  "
		repo.On("Create", mock.Anything, mock.MatchedBy(func(c *category.Category) bool {
			return c.Name == "News" && c.Description == nil && c.ID != ""
		})).Return(nil)

		created, err := newService(repo).Create(context.Background(), category.CreateInput{Name: "  News ", Description: &blank})
		require.NoError(t, err)
		assert.Equal(t, "News", created.Name)
		repo.AssertExpectations(t)
	})

	t.Run("name_required", func(t *testing.T) {
		repo := &mockRepository{}
		_, err := newService(repo).Create(context.Background(), category.CreateInput{Name: "   "})

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, apperr.KindValidation, appError.Kind)
		assert.Equal(t, category.FieldName, appError.Details[0].Field)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate_passthrough", func(t *testing.T) {
		repo := &mockRepository{}
		repo.On("Create", mock.Anything, mock.Anything).Return(apperr.Conflict("Duplicate field value"))

		_, err := newService(repo).Create(context.Background(), category.CreateInput{Name: "News"})
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	})
}

/*
TestGetAndDelete verifies that malformed ids never reach the store.
*/
func TestGetAndDelete(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		repoErr error
		kind    apperr.Kind
		reaches bool
	}{
		{"malformed", "abc", nil, apperr.KindNotFound, false},
		{"missing", knownID, apperr.NotFound("Category"), apperr.KindNotFound, true},
		{"store_failure", knownID, errors.New("boom"), apperr.KindInternal, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepository{}
			repo.On("FindByID", mock.Anything, tt.id).Return(nil, tt.repoErr)
			repo.On("Delete", mock.Anything, tt.id).Return(tt.repoErr)
			service := newService(repo)

			_, err := service.Get(context.Background(), tt.id)
			assert.Equal(t, tt.kind, apperr.KindOf(err))

			err = service.Delete(context.Background(), tt.id)
			assert.Equal(t, tt.kind, apperr.KindOf(err))

			if tt.reaches {
				repo.AssertCalled(t, "Delete", mock.Anything, tt.id)
			} else {
				assert.ErrorIs(t, err, apperr.ErrMalformedID)
				repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			}
		})
	}
}

/*
TestGetAndDelete_CanonicalID verifies that alternative id spellings reach the store in canonical form.
*/
func TestGetAndDelete_CanonicalID(t *testing.T) {
	repo := &mockRepository{}
	repo.On("FindByID", mock.Anything, knownID).Return(&category.Category{ID: knownID, Name: "News"}, nil)
	repo.On("Delete", mock.Anything, knownID).Return(nil)
	service := newService(repo)

	found, err := service.Get(context.Background(), "{"+strings.ToUpper(knownID)+"}")
	require.NoError(t, err)
	assert.Equal(t, "News", found.Name)

	require.NoError(t, service.Delete(context.Background(), "urn:uuid:"+knownID))
	repo.AssertExpectations(t)
}
