// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package series

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/mangacal/internal/core/release"
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

// seriesColumns is shared by the list and detail queries.
// The two LATERAL joins pick the first volume and the latest license record.
const seriesColumns = `
		SELECT
			s.id, s.name, s.anilist, s.status::text,
			pub.id, COALESCE(pub.name, pub.id), COALESCE(pub.color, ''),
			t.id, COALESCE(t.name, t.id), COALESCE(t.color, ''),
			fp.id IS NOT NULL, fp.image, fp.date,
			lic.image_url, lic.timestamp
		FROM series s
		JOIN publisher pub ON pub.id = s.publisher
		JOIN type t ON t.id = s.type
		LEFT JOIN LATERAL (
			SELECT p.id, p.image_url[1] AS image, p.date::timestamptz AS date
			FROM publication p
			WHERE p.serie = s.id
			ORDER BY p.volume ASC NULLS LAST, p.date ASC
			LIMIT 1
		) fp ON true
		LEFT JOIN LATERAL (
			SELECT l.image_url, l.timestamp
			FROM licensed l
			WHERE l.serie = s.id
			ORDER BY l.timestamp DESC
			LIMIT 1
		) lic ON true
`

/*
List returns the series matching filter.

Description: Optional ANY($n) predicates are appended per non-empty set.
Ordering by the enum column follows its declaration order.

Parameters:
  - context: context.Context
  - filter: Filter

Returns:
  - []*Series
  - error: Database execution or scanning errors
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter) ([]*Series, error) {
	sql, args := buildListQuery(filter)

	rows, err := repository.db.Query(context, sql, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_series")
	}

	list, err := pgx.CollectRows(rows, scanSeries)
	if err != nil {
		return nil, dberr.Wrap(err, "scan_series")
	}

	return list, nil
}

// buildListQuery assembles the SQL text and positional arguments.
func buildListQuery(filter Filter) (string, []any) {
	var queryBuilder strings.Builder
	var conditions []string
	var args []any

	queryBuilder.WriteString(seriesColumns)

	if len(filter.Publishers) > 0 {
		args = append(args, filter.Publishers)
		conditions = append(conditions, fmt.Sprintf("s.publisher = ANY($%d)", len(args)))
	}
	if len(filter.Types) > 0 {
		args = append(args, filter.Types)
		conditions = append(conditions, fmt.Sprintf("s.type = ANY($%d)", len(args)))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			statuses[i] = string(status)
		}
		args = append(args, statuses)
		conditions = append(conditions, fmt.Sprintf("s.status = ANY($%d::status[])", len(args)))
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString("		WHERE " + strings.Join(conditions, " AND ") + "\n")
	}
	queryBuilder.WriteString("		ORDER BY s.status ASC, s.publisher ASC, s.name ASC")

	return queryBuilder.String(), args
}

// scanSeries hydrates one row of [seriesColumns] and applies the cover rule.
func scanSeries(row pgx.CollectableRow) (*Series, error) {
	s := &Series{}
	var (
		status string
		source CoverSource
	)
	err := row.Scan(
		&s.ID, &s.Name, &s.Anilist, &status,
		&s.Publisher.ID, &s.Publisher.Name, &s.Publisher.Color,
		&s.Type.ID, &s.Type.Name, &s.Type.Color,
		&source.HasPublication, &source.PublicationImage, &source.PublicationDate,
		&source.LicenseImage, &source.LicenseTime,
	)
	if err != nil {
		return nil, err
	}

	s.Status = Status(status)
	s.ImageURL = source.Cover()
	s.Timestamp = source.Timestamp()
	return s, nil
}

/*
Get returns one series with its publications and license.

Description: The three reads travel in a single pgx batch, one round trip.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *Detail
  - error: ErrNotFound if missing
*/
func (repository *PostgresRepository) Get(context context.Context, id int64) (*Detail, error) {
	const publicationsQuery = `
		SELECT
			p.id::text, p.name, to_char(p.date, 'YYYY-MM-DD'),
			pub.id, COALESCE(pub.name, pub.id),
			p.price, p.description, p.edition, p.digital, p.serie, p.volume,
			CASE WHEN cardinality(p.image_url) > 0 THEN 'covers/' || p.image_url[1] END
		FROM publication p
		JOIN publisher pub ON pub.id = p.publisher
		WHERE p.serie = $1
		ORDER BY p.volume ASC NULLS LAST, p.edition DESC
	`
	const licenseQuery = `
		SELECT source, image_url, timestamp
		FROM licensed
		WHERE serie = $1
		ORDER BY timestamp DESC
		LIMIT 1
	`

	batch := &pgx.Batch{}
	batch.Queue(seriesColumns+"		WHERE s.id = $1", id)
	batch.Queue(publicationsQuery, id)
	batch.Queue(licenseQuery, id)

	results := repository.db.SendBatch(context, batch)
	defer results.Close()

	// 1. Series row
	seriesRows, err := results.Query()
	if err != nil {
		return nil, dberr.Wrap(err, "get_series")
	}
	found, err := pgx.CollectExactlyOneRow(seriesRows, scanSeries)
	if err != nil {
		return nil, dberr.NotFoundAs(dberr.Wrap(err, "get_series"), "Series")
	}

	// 2. Publications
	publicationRows, err := results.Query()
	if err != nil {
		return nil, dberr.Wrap(err, "list_series_publications")
	}
	publications, err := pgx.CollectRows(publicationRows, func(row pgx.CollectableRow) (*release.Publication, error) {
		p := &release.Publication{}
		err := row.Scan(
			&p.ID, &p.Name, &p.Date, &p.Publisher.ID, &p.Publisher.Name,
			&p.Price, &p.Description, &p.Edition, &p.Digital, &p.SeriesID,
			&p.Volume, &p.ImageURL,
		)
		return p, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_series_publication")
	}

	// 3. License (optional)
	var (
		license   License
		image     *string
		timestamp time.Time
	)
	err = results.QueryRow().Scan(&license.Source, &image, &timestamp)
	detail := &Detail{Series: *found, Publications: publications}
	switch {
	case err == nil:
		license.Timestamp = timestamp
		if image != nil && *image != "" {
			path := licenseCoverFolder + *image
			license.ImageURL = &path
		}
		detail.License = &license
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, dberr.Wrap(err, "get_series_license")
	}

	return detail, nil
}

// IDs returns the id and name of every series.
func (repository *PostgresRepository) IDs(context context.Context) ([]Ref, error) {
	rows, err := repository.db.Query(context, `SELECT id, name FROM series ORDER BY id ASC`)
	if err != nil {
		return nil, dberr.Wrap(err, "list_series_ids")
	}

	refs, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Ref])
	if err != nil {
		return nil, dberr.Wrap(err, "scan_series_id")
	}

	return refs, nil
}
