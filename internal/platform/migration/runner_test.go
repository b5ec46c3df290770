// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/linkshelf/internal/platform/migration"
)

/*
TestDatabaseURL verifies the scheme rewrite for golang-migrate's pgx5 driver.
*/
func TestDatabaseURL(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{"postgres_scheme", "postgres://u:p@localhost:5432/shelf?sslmode=disable", "pgx5://u:p@localhost:5432/shelf?sslmode=disable"},
		{"postgresql_scheme", "postgresql://u:p@db/shelf", "pgx5://u:p@db/shelf"},
		{"already_pgx5", "pgx5://u:p@db/shelf", "pgx5://u:p@db/shelf"},
		{"keyword_dsn_untouched", "host=db user=u", "host=db user=u"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, migration.DatabaseURL(tt.dsn))
		})
	}
}
