// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package google adapts the Google Sheets and Calendar REST clients to the
// narrow read operations the site needs.
//
// # Architecture
//
// Domain services depend on the small [ValuesReader] and [EventsReader]
// interfaces below, never on the generated clients, so their tests use
// in-memory fakes while this package is tested against httptest servers.
package google

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/taibuivan/mangacal/internal/platform/otel"
)

// ValuesReader reads a rectangular range of a spreadsheet as strings.
type ValuesReader interface {
	Values(ctx context.Context, spreadsheetID, rng string) ([][]string, error)
}

// SheetsReader implements [ValuesReader] over sheets/v4.
type SheetsReader struct {
	service *sheets.Service
}

/*
NewSheetsReader builds a Sheets client authenticated with an API key.

Parameters:
  - ctx: context for client construction
  - apiKey: key with the Sheets API enabled
  - extra: additional client options (endpoint overrides in tests)

Returns:
  - *SheetsReader
  - error: client construction failure
*/
func NewSheetsReader(ctx context.Context, apiKey string, extra ...option.ClientOption) (*SheetsReader, error) {
	options := append([]option.ClientOption{option.WithAPIKey(apiKey)}, extra...)
	service, err := sheets.NewService(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("google: sheets client: %w", err)
	}
	return &SheetsReader{service: service}, nil
}

// Values returns the cells of rng, stringified. Empty ranges yield an empty slice.
func (reader *SheetsReader) Values(ctx context.Context, spreadsheetID, rng string) (rows [][]string, err error) {
	ctx, span := otel.Start(ctx, "google.sheets.values", attribute.String("range", rng))
	defer otel.End(span, &err)

	response, err := reader.service.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("google: read range %s: %w", rng, err)
	}

	rows = make([][]string, 0, len(response.Values))
	for _, row := range response.Values {
		cells := make([]string, len(row))
		for i, cell := range row {
			if cell != nil {
				cells[i] = fmt.Sprint(cell)
			}
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
