// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package announcement_test

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mangacal/internal/core/announcement"
	"github.com/taibuivan/mangacal/internal/platform/apperr"
	"github.com/taibuivan/mangacal/internal/platform/cache"
)

type fakeSheets struct {
	values map[string][][]string
	err    error
	calls  atomic.Int32
}

func (sheets *fakeSheets) Values(_ context.Context, spreadsheetID, rng string) ([][]string, error) {
	sheets.calls.Add(1)
	if sheets.err != nil {
		return nil, sheets.err
	}
	if spreadsheetID != "sheet-1" {
		return nil, errors.New("unknown spreadsheet")
	}
	return sheets.values[rng], nil
}

/*
TestService_Banner covers present, missing and failing cells.
*/
func TestService_Banner(t *testing.T) {
	tests := []struct {
		name   string
		sheets *fakeSheets
		want   *announcement.Banner
		status int
	}{
		{"both", &fakeSheets{values: map[string][][]string{
			announcement.UpdateRange: {{" Cập nhật 17/10 "}},
			announcement.InfoRange:   {{"Lịch tháng 11 đã có"}},
		}}, &announcement.Banner{Update: "Cập nhật 17/10", Info: "Lịch tháng 11 đã có"}, 0},
		{"missing", &fakeSheets{values: map[string][][]string{
			announcement.UpdateRange: {{"Cập nhật"}},
			announcement.InfoRange:   {},
		}}, &announcement.Banner{Update: "Cập nhật"}, 0},
		{"failing", &fakeSheets{err: errors.New("403")}, nil, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := announcement.NewService(tt.sheets, "sheet-1", nil)
			banner, err := service.Banner(context.Background())
			if tt.status != 0 {
				assert.Equal(t, tt.status, apperr.Status(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, banner)
		})
	}

	assert.True(t, (&announcement.Banner{}).IsEmpty())
}

/*
TestService_BannerCached verifies that the sheet is read once per interval.
*/
func TestService_BannerCached(t *testing.T) {
	sheets := &fakeSheets{values: map[string][][]string{announcement.UpdateRange: {{"x"}}}}
	service := announcement.NewService(sheets, "sheet-1", cache.NewMemoryStore())

	for range 3 {
		banner, err := service.Banner(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "x", banner.Update)
	}
	assert.Equal(t, int32(2), sheets.calls.Load())
}
