// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/linkshelf/internal/platform/apperr"
	"github.com/taibuivan/linkshelf/internal/platform/postgres/pgtest"
	"github.com/taibuivan/linkshelf/internal/site"
	"github.com/taibuivan/linkshelf/pkg/pagination"
	"github.com/taibuivan/linkshelf/pkg/pointer"
	"github.com/taibuivan/linkshelf/pkg/uuid"
)

/*
TestPostgresRepository exercises the site store against a real database.
*/
func TestPostgresRepository(t *testing.T) {
	pool := pgtest.New(t)
	repository := site.NewPostgresRepository(pool)
	ctx := context.Background()

	otherCategory := uuid.New()

	seed := func(t *testing.T, title, category string) *site.Site {
		t.Helper()
		record := &site.Site{ID: uuid.New(), SiteURL: "https://" + uuid.New() + ".io", Title: title, Category: category}
		require.NoError(t, repository.Create(ctx, record))
		return record
	}

	t.Run("default_order_and_window_total", func(t *testing.T) {
		pgtest.Truncate(t, pool, "sites")
		first := seed(t, "Alpha", categoryID)
		seed(t, "Beta", categoryID)
		seed(t, "Gamma", categoryID)

		sites, total, err := repository.List(ctx, site.Filter{}, 2, 0)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, sites, 2)
		assert.Equal(t, first.ID, sites[0].ID)
	})

	t.Run("page_past_the_end_keeps_total", func(t *testing.T) {
		pgtest.Truncate(t, pool, "sites")
		seed(t, "Alpha", categoryID)

		sites, total, err := repository.List(ctx, site.Filter{}, 10, 20)
		require.NoError(t, err)
		assert.Empty(t, sites)
		assert.Equal(t, 1, total)

		huge := pagination.Params{Page: math.MaxInt, Limit: pagination.MaxLimit}
		sites, total, err = repository.List(ctx, site.Filter{}, huge.Limit, huge.Offset())
		require.NoError(t, err)
		assert.Empty(t, sites)
		assert.Equal(t, 1, total)
	})

	t.Run("category_search_and_sort", func(t *testing.T) {
		pgtest.Truncate(t, pool, "sites")
		seed(t, "Go blog", categoryID)
		seed(t, "Go tour", categoryID)
		seed(t, "Go tour", otherCategory)
		seed(t, "Rust book", categoryID)

		sites, total, err := repository.List(ctx, site.Filter{
			Category: categoryID,
			Search:   "GO",
			Order:    []site.Order{{Column: "title", Descending: true}},
		}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, sites, 2)
		assert.Equal(t, "Go tour", sites[0].Title)
		assert.Equal(t, "Go blog", sites[1].Title)
	})

	t.Run("search_metacharacters_are_literal", func(t *testing.T) {
		pgtest.Truncate(t, pool, "sites")
		seed(t, "100% Go", categoryID)
		seed(t, "1000 Go", categoryID)
		seed(t, "snake_case", categoryID)
		seed(t, "snakeXcase", categoryID)

		sites, _, err := repository.List(ctx, site.Filter{Search: "0%"}, 10, 0)
		require.NoError(t, err)
		require.Len(t, sites, 1)
		assert.Equal(t, "100% Go", sites[0].Title)

		sites, _, err = repository.List(ctx, site.Filter{Search: "e_c"}, 10, 0)
		require.NoError(t, err)
		require.Len(t, sites, 1)
		assert.Equal(t, "snake_case", sites[0].Title)
	})

	t.Run("update_refreshes_timestamp", func(t *testing.T) {
		pgtest.Truncate(t, pool, "sites")
		record := seed(t, "Alpha", categoryID)
		created := record.UpdatedAt

		record.Title = "Alpha 2"
		record.Description = pointer.To("Second edition")
		require.NoError(t, repository.Update(ctx, record))

		found, err := repository.FindByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alpha 2", found.Title)
		assert.Equal(t, "Second edition", pointer.Val(found.Description))
		assert.False(t, found.UpdatedAt.Before(created))
	})

	t.Run("missing_rows", func(t *testing.T) {
		_, err := repository.FindByID(ctx, uuid.New())
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

		err = repository.Update(ctx, &site.Site{ID: uuid.New(), SiteURL: "https://a.io", Title: "A", Category: categoryID})
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(repository.Delete(ctx, uuid.New())))
	})
}
