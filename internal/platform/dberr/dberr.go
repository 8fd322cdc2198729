// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/mangacal/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Server-side failures keep the SQLSTATE in the logged cause.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return apperr.Internal(fmt.Errorf("%s: sqlstate %s: %w", action, pgErr.Code, err))
	}

	// 3. Everything else is an opaque internal error.
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// NotFoundAs replaces the generic not-found error with one naming the resource.
func NotFoundAs(err error, resource string) error {
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound(resource)
	}
	return err
}
