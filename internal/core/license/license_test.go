// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package license_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mangacal/internal/core/license"
	"github.com/taibuivan/mangacal/internal/platform/apperr"
)

type fakeSheets struct {
	values map[string][][]string
	err    error
}

func (sheets *fakeSheets) Values(_ context.Context, _, rng string) ([][]string, error) {
	if sheets.err != nil {
		return nil, sheets.err
	}
	return sheets.values[rng], nil
}

func fixture() *fakeSheets {
	return &fakeSheets{values: map[string][][]string{
		license.LicensedRange: {
			{"Chainsaw Man", "https://fb.com/post", "105778", "https://img/csm.jpg", "NXB Trẻ", "Manga"},
			{"Omniscient Reader", "", "", "", "IPM", "Manhwa"},
			{"Spice and Wolf", "", "", "", "IPM", "Light Novel"},
			{"Short row"},
			{"", "untitled rows are skipped"},
		},
		license.UnknownRange: {
			{"Dandadan", "https://x.com/rumor"},
		},
	}}
}

/*
TestService_List verifies row padding and both tabs.
*/
func TestService_List(t *testing.T) {
	sheet, err := license.NewService(fixture(), "sheet-1", nil).List(context.Background())
	require.NoError(t, err)

	require.Len(t, sheet.Licensed, 4)
	assert.Equal(t, license.Entry{Title: "Short row"}, sheet.Licensed[3])
	assert.Equal(t, "105778", sheet.Licensed[0].Anilist)

	require.Len(t, sheet.Unknown, 1)
	assert.Equal(t, "https://x.com/rumor", sheet.Unknown[0].Source)

	_, err = license.NewService(&fakeSheets{err: errors.New("boom")}, "sheet-1", nil).List(context.Background())
	assert.Equal(t, http.StatusBadGateway, apperr.Status(err))
}

/*
TestEntry_Type verifies type keys and badge colors.
*/
func TestEntry_Type(t *testing.T) {
	tests := []struct {
		typ   string
		key   string
		color string
	}{
		{"Manga", "manga", "#29b6f6"},
		{"manhua", "manhua", "#29b6f6"},
		{"Light Novel", "light-novel", "#ffca28"},
		{"light-novel", "light-novel", "#ffca28"},
		{"Artbook", "artbook", "#ef5350"},
		{"Fanbook", "fanbook", "#ff7043"},
		{"Encyclopedia", "encyclopedia", "#66bb6a"},
		{"Doujinshi", "doujinshi", ""},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			entry := license.Entry{Type: tt.typ}
			assert.Equal(t, tt.key, entry.TypeKey())
			assert.Equal(t, tt.color, entry.TypeColor())
		})
	}
}

/*
TestFilter_Apply verifies case-insensitive filtering.
*/
func TestFilter_Apply(t *testing.T) {
	sheet, err := license.NewService(fixture(), "sheet-1", nil).List(context.Background())
	require.NoError(t, err)

	titles := func(entries []license.Entry) []string {
		out := make([]string, len(entries))
		for i, entry := range entries {
			out[i] = entry.Title
		}
		return out
	}

	assert.Len(t, license.Filter{}.Apply(sheet.Licensed), 4)
	assert.Equal(t, []string{"Spice and Wolf"}, titles(license.Filter{Types: []string{"LIGHT-NOVEL"}}.Apply(sheet.Licensed)))
	assert.Equal(t, []string{"Omniscient Reader", "Spice and Wolf"}, titles(license.Filter{Publishers: []string{"ipm"}}.Apply(sheet.Licensed)))
	assert.Empty(t, license.Filter{Types: []string{"manga"}, Publishers: []string{"ipm"}}.Apply(sheet.Licensed))

	assert.Equal(t, []string{"NXB Trẻ", "IPM"}, license.Publishers(sheet.Licensed))
}
