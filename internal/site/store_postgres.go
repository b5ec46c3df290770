// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/linkshelf/internal/platform/apperr"
	"github.com/taibuivan/linkshelf/internal/platform/database/schema"
	"github.com/taibuivan/linkshelf/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed site store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var siteColumns = strings.Join(schema.Site.Columns(), ", ")

// likeEscaper escapes the pattern metacharacters of ILIKE with a backslash.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike makes term match literally inside a LIKE/ILIKE pattern.
func EscapeLike(term string) string {
	return likeEscaper.Replace(term)
}

func (repository *PostgresRepository) Create(context context.Context, site *Site) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.Site.Table,
		schema.Site.ID, schema.Site.SiteURL, schema.Site.Title, schema.Site.CoverImage,
		schema.Site.Description, schema.Site.Category, schema.Site.CreatedAt, schema.Site.UpdatedAt,
		schema.Site.CreatedAt, schema.Site.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		site.ID, site.SiteURL, site.Title, site.CoverImage, site.Description, site.Category,
	).Scan(&site.CreatedAt, &site.UpdatedAt)
	return dberr.Wrap(err, resourceSite)
}

/*
List retrieves one page of sites matching filter.

Description: Conditions are assembled with positional arguments only. The
total comes from a window count so the page and the count share a snapshot.
An out-of-range page returns no rows and therefore no window value, in which
case a plain count is issued.

Returns:
  - []*Site: The page, never nil
  - int: Total rows matching filter
  - error: Persistence failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Site, int, error) {
	var where strings.Builder
	where.WriteString("WHERE 1=1")

	args := []any{}
	argIndex := 1

	if filter.Category != "" {
		fmt.Fprintf(&where, " AND %s = $%d", schema.Site.Category, argIndex)
		args = append(args, filter.Category)
		argIndex++
	}

	if filter.Search != "" {
		fmt.Fprintf(&where, ` AND %s ILIKE $%d ESCAPE '\'`, schema.Site.Title, argIndex)
		args = append(args, "%"+EscapeLike(filter.Search)+"%")
		argIndex++
	}

	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER()
		FROM %s
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, siteColumns, schema.Site.Table, where.String(), orderClause(filter.Order), argIndex, argIndex+1)

	rows, err := repository.pool.Query(context, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceSite)
	}
	defer rows.Close()

	var total int
	sites := make([]*Site, 0, limit)
	for rows.Next() {
		site := &Site{}
		if err := rows.Scan(
			&site.ID, &site.SiteURL, &site.Title, &site.CoverImage, &site.Description,
			&site.Category, &site.CreatedAt, &site.UpdatedAt, &total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, resourceSite)
		}
		sites = append(sites, site)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceSite)
	}

	if len(sites) == 0 && offset > 0 {
		countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, schema.Site.Table, where.String())
		if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
			return nil, 0, dberr.Wrap(err, resourceSite)
		}
	}

	return sites, total, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Site, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, siteColumns, schema.Site.Table, schema.Site.ID)

	site, err := scanSite(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceSite)
	}
	return site, nil
}

func (repository *PostgresRepository) Update(context context.Context, site *Site) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.Site.Table,
		schema.Site.SiteURL, schema.Site.Title, schema.Site.CoverImage, schema.Site.Description,
		schema.Site.Category, schema.Site.UpdatedAt,
		schema.Site.ID,
		siteColumns,
	)

	updated, err := scanSite(repository.pool.QueryRow(context, query,
		site.ID, site.SiteURL, site.Title, site.CoverImage, site.Description, site.Category,
	))
	if err != nil {
		return dberr.Wrap(err, resourceSite)
	}

	*site = *updated
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Site.Table, schema.Site.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceSite)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceSite)
	}
	return nil
}

// # Helpers

func scanSite(row pgx.Row) (*Site, error) {
	site := &Site{}
	err := row.Scan(
		&site.ID, &site.SiteURL, &site.Title, &site.CoverImage, &site.Description,
		&site.Category, &site.CreatedAt, &site.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return site, nil
}

// orderClause renders validated terms. Columns outside the sortable set are
// skipped; the id tie-breaker keeps pages stable.
func orderClause(order []Order) string {
	sortable := make(map[string]bool)
	for _, column := range schema.Site.Sortable() {
		sortable[column] = true
	}

	terms := make([]string, 0, len(order)+2)
	for _, term := range order {
		if !sortable[term.Column] {
			continue
		}
		direction := "ASC"
		if term.Descending {
			direction = "DESC"
		}
		terms = append(terms, term.Column+" "+direction)
	}

	if len(terms) == 0 {
		terms = append(terms, schema.Site.CreatedAt+" ASC")
	}
	return strings.Join(append(terms, schema.Site.ID+" ASC"), ", ")
}
