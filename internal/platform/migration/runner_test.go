// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/mangacal/internal/platform/migration"
)

/*
TestPgx5DSN verifies scheme rewriting for golang-migrate.
*/
func TestPgx5DSN(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@db:5432/manga":   "pgx5://u:p@db:5432/manga",
		"postgresql://u:p@db:5432/manga": "pgx5://u:p@db:5432/manga",
		"pgx5://u:p@db:5432/manga":       "pgx5://u:p@db:5432/manga",
		"host=db user=u dbname=manga":    "host=db user=u dbname=manga",
	}

	for input, expect := range tests {
		assert.Equal(t, expect, migration.Pgx5DSN(input), input)
	}
}
