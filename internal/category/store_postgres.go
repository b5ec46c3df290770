// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/linkshelf/internal/platform/apperr"
	"github.com/taibuivan/linkshelf/internal/platform/database/schema"
	"github.com/taibuivan/linkshelf/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed category store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var categoryColumns = strings.Join(schema.Category.Columns(), ", ")

func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.Category.Table,
		schema.Category.ID, schema.Category.Name, schema.Category.Description, schema.Category.CreatedAt, schema.Category.UpdatedAt,
		schema.Category.CreatedAt, schema.Category.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, category.ID, category.Name, category.Description).
		Scan(&category.CreatedAt, &category.UpdatedAt)
	return dberr.Wrap(err, resourceCategory)
}

func (repository *PostgresRepository) List(context context.Context) ([]*Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`,
		categoryColumns, schema.Category.Table, schema.Category.Name)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, resourceCategory)
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		category := &Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, resourceCategory)
		}
		categories = append(categories, category)
	}

	return categories, dberr.Wrap(rows.Err(), resourceCategory)
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		categoryColumns, schema.Category.Table, schema.Category.ID)

	category := &Category{}
	err := repository.pool.QueryRow(context, query, id).
		Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, resourceCategory)
	}
	return category, nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Category.Table, schema.Category.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceCategory)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceCategory)
	}
	return nil
}
