// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package release

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/mangacal/internal/platform/constants"
	"github.com/taibuivan/mangacal/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using a pgxpool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository returns a fully wired postgres implementation.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
ListEntries returns publications matching query.

Description: The WHERE clause is built dynamically; optional filters only add
a predicate when set. The cover is the first element of image_url, prefixed
with the "covers/" CDN folder.

Parameters:
  - context: context.Context
  - query: Query

Returns:
  - []*Publication
  - error: Database execution or scanning errors
*/
func (repository *PostgresRepository) ListEntries(context context.Context, query Query) ([]*Publication, error) {
	sql, args := buildEntriesQuery(query)

	rows, err := repository.db.Query(context, sql, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_entries")
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Publication, error) {
		p := &Publication{}
		err := row.Scan(
			&p.ID, &p.Name, &p.Date, &p.Publisher.ID, &p.Publisher.Name,
			&p.Price, &p.Description, &p.Edition, &p.Digital, &p.SeriesID,
			&p.Volume, &p.ImageURL,
		)
		return p, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_entry")
	}

	return entries, nil
}

// buildEntriesQuery assembles the SQL text and positional arguments.
func buildEntriesQuery(query Query) (string, []any) {
	var queryBuilder strings.Builder
	args := []any{
		query.Range.Start.Format(constants.DateLayout),
		query.Range.End.Format(constants.DateLayout),
	}
	argID := 3

	queryBuilder.WriteString(`
		SELECT
			p.id::text, p.name, to_char(p.date, 'YYYY-MM-DD'),
			pub.id, COALESCE(pub.name, pub.id),
			p.price, p.description, p.edition, p.digital, p.serie, p.volume,
			CASE WHEN cardinality(p.image_url) > 0 THEN 'covers/' || p.image_url[1] END
		FROM publication p
		JOIN publisher pub ON pub.id = p.publisher
		WHERE p.date >= $1::date AND p.date <= $2::date
	`)

	// Publisher Filtering
	if len(query.Filter.Publishers) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.publisher = ANY($%d)", argID))
		args = append(args, query.Filter.Publishers)
		argID++
	}

	// Digital Filtering
	if query.Filter.Digital != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.digital = $%d", argID))
		args = append(args, *query.Filter.Digital)
	}

	direction := "DESC"
	if query.Ascending {
		direction = "ASC"
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY p.date %s, p.name ASC, p.edition DESC", direction))

	return queryBuilder.String(), args
}
