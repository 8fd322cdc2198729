// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

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
ListPublishers retrieves every publisher.

Description: Name and color are nullable upstream; they are coalesced to
empty strings so templates never render "<nil>".

Parameters:
  - context: context.Context

Returns:
  - []*Publisher
  - error: Database execution or scanning errors
*/
func (repository *PostgresRepository) ListPublishers(context context.Context) ([]*Publisher, error) {
	const query = `
		SELECT id, COALESCE(name, id), COALESCE(color, '')
		FROM publisher
		ORDER BY name ASC;
	`

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_publishers")
	}

	publishers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Publisher, error) {
		p := &Publisher{}
		return p, row.Scan(&p.ID, &p.Name, &p.Color)
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_publisher")
	}

	return publishers, nil
}

/*
GetPublisher fetches a single publisher by its identifier.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Publisher
  - error: Not found or execution errors
*/
func (repository *PostgresRepository) GetPublisher(context context.Context, id string) (*Publisher, error) {
	const query = `
		SELECT id, COALESCE(name, id), COALESCE(color, '')
		FROM publisher
		WHERE id = $1;
	`

	p := &Publisher{}
	err := repository.db.QueryRow(context, query, id).Scan(&p.ID, &p.Name, &p.Color)
	if err != nil {
		return nil, dberr.NotFoundAs(dberr.Wrap(err, "get_publisher"), "Publisher")
	}

	return p, nil
}

// ListTypes retrieves every book type.
func (repository *PostgresRepository) ListTypes(context context.Context) ([]*Type, error) {
	const query = `
		SELECT id, COALESCE(name, id), COALESCE(color, '')
		FROM type
		ORDER BY name ASC;
	`

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_types")
	}

	types, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Type, error) {
		t := &Type{}
		return t, row.Scan(&t.ID, &t.Name, &t.Color)
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_type")
	}

	return types, nil
}

// GetType fetches a single book type by its identifier.
func (repository *PostgresRepository) GetType(context context.Context, id string) (*Type, error) {
	const query = `
		SELECT id, COALESCE(name, id), COALESCE(color, '')
		FROM type
		WHERE id = $1;
	`

	t := &Type{}
	err := repository.db.QueryRow(context, query, id).Scan(&t.ID, &t.Name, &t.Color)
	if err != nil {
		return nil, dberr.NotFoundAs(dberr.Wrap(err, "get_type"), "Type")
	}

	return t, nil
}
