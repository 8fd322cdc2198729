// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package series_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mangacal/internal/core/reference"
	"github.com/taibuivan/mangacal/internal/core/series"
	"github.com/taibuivan/mangacal/internal/platform/apperr"
	"github.com/taibuivan/mangacal/internal/platform/cache"
	"github.com/taibuivan/mangacal/internal/platform/constants"
	"github.com/taibuivan/mangacal/pkg/pointer"
)

type fakeRepository struct {
	all       []*series.Series
	listCalls int
}

func (repo *fakeRepository) List(_ context.Context, filter series.Filter) ([]*series.Series, error) {
	repo.listCalls++
	var out []*series.Series
	for _, s := range repo.all {
		if filter.Matches(s) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (repo *fakeRepository) Get(_ context.Context, id int64) (*series.Detail, error) {
	for _, s := range repo.all {
		if s.ID == id {
			return &series.Detail{Series: *s}, nil
		}
	}
	return nil, apperr.NotFound("Series")
}

func (repo *fakeRepository) IDs(context.Context) ([]series.Ref, error) {
	refs := make([]series.Ref, len(repo.all))
	for i, s := range repo.all {
		refs[i] = series.Ref{ID: s.ID, Name: s.Name}
	}
	return refs, nil
}

func newFixture() *fakeRepository {
	kim := reference.Publisher{ID: "kim", Name: "NXB Kim Đồng"}
	ipm := reference.Publisher{ID: "ipm", Name: "IPM"}
	manga := reference.Type{ID: "manga", Name: "Manga"}
	novel := reference.Type{ID: "light-novel", Name: "Light Novel"}

	return &fakeRepository{all: []*series.Series{
		{ID: 1, Name: "Doraemon", Publisher: kim, Type: manga, Status: series.StatusFinished},
		{ID: 2, Name: "Spy x Family", Publisher: kim, Type: manga, Status: series.StatusPublished},
		{ID: 3, Name: "Oregairu", Publisher: ipm, Type: novel, Status: series.StatusLicensed},
		{ID: 4, Name: "Frieren", Publisher: ipm, Type: manga, Status: series.StatusPending},
	}}
}

/*
TestStatus_Step verifies the progress step of every status.
*/
func TestStatus_Step(t *testing.T) {
	tests := []struct {
		status series.Status
		step   int
	}{
		{series.StatusPending, 1},
		{series.StatusLicensed, 1},
		{series.StatusPublished, 2},
		{series.StatusFinished, 3},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.step, tt.status.Step())
			assert.NotEmpty(t, tt.status.Label())
		})
	}
}

/*
TestCoverSource verifies cover and timestamp precedence.
*/
func TestCoverSource(t *testing.T) {
	released := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	signed := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		source    series.CoverSource
		cover     *string
		timestamp *time.Time
	}{
		{"publication", series.CoverSource{
			HasPublication: true, PublicationImage: pointer.To("a.jpg"), PublicationDate: &released,
			LicenseImage: pointer.To("b.jpg"), LicenseTime: &signed,
		}, pointer.To("covers/a.jpg"), &released},
		{"publication_without_image", series.CoverSource{
			HasPublication: true, PublicationDate: &released,
			LicenseImage: pointer.To("b.jpg"), LicenseTime: &signed,
		}, pointer.To("raw-covers/b.jpg"), &released},
		{"license_only", series.CoverSource{
			LicenseImage: pointer.To("b.jpg"), LicenseTime: &signed,
		}, pointer.To("raw-covers/b.jpg"), &signed},
		{"nothing", series.CoverSource{}, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.cover, tt.source.Cover())

			stamp := tt.source.Timestamp()
			if tt.timestamp == nil {
				assert.Nil(t, stamp)
				return
			}
			require.NotNil(t, stamp)
			assert.True(t, tt.timestamp.Equal(stamp.Time))
		})
	}
}

/*
TestUnixTime_JSON verifies that timestamps serialize as unix seconds.
*/
func TestUnixTime_JSON(t *testing.T) {
	payload, err := json.Marshal(series.Series{
		ID:        7,
		Timestamp: &series.UnixTime{Time: time.Unix(1760000000, 0)},
	})
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"timestamp":1760000000`)
	assert.Contains(t, string(payload), `"image_url":null`)
}

/*
TestFilter_Matches verifies that a status filter never admits an excluded status.
*/
func TestFilter_Matches(t *testing.T) {
	repo := newFixture()

	filters := []series.Filter{
		{},
		{Statuses: []series.Status{series.StatusPublished}},
		{Statuses: []series.Status{series.StatusPending, series.StatusLicensed}},
		{Publishers: []string{"ipm"}, Types: []string{"manga"}},
	}

	for _, filter := range filters {
		for _, s := range repo.all {
			if !filter.Matches(s) {
				continue
			}
			if len(filter.Statuses) > 0 {
				assert.Contains(t, filter.Statuses, s.Status)
			}
			if len(filter.Publishers) > 0 {
				assert.Contains(t, filter.Publishers, s.Publisher.ID)
			}
		}
	}

	assert.True(t, series.Filter{}.IsZero())
	assert.False(t, series.Filter{Types: []string{"manga"}}.Matches(repo.all[2]))
}

/*
TestDetail_DaysSinceLicense verifies the pending counter.
*/
func TestDetail_DaysSinceLicense(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	_, ok := (&series.Detail{}).DaysSinceLicense(now)
	assert.False(t, ok)

	detail := &series.Detail{License: &series.License{Timestamp: now.AddDate(0, 0, -45).Add(-time.Hour)}}
	days, ok := detail.DaysSinceLicense(now)
	assert.True(t, ok)
	assert.Equal(t, 45, days)
}

/*
TestService_List covers validation and caching.
*/
func TestService_List(t *testing.T) {
	repo := newFixture()
	service := series.NewService(repo, cache.NewMemoryStore())
	ctx := context.Background()

	for range 2 {
		list, err := service.List(ctx, series.Filter{Publishers: []string{"kim"}})
		require.NoError(t, err)
		assert.Len(t, list, 2)
	}
	assert.Equal(t, 1, repo.listCalls)

	_, err := service.List(ctx, series.Filter{Statuses: []series.Status{"Licensed"}})
	assert.Equal(t, http.StatusBadRequest, apperr.Status(err))
	assert.Equal(t, 1, repo.listCalls)

	_, err = service.Get(ctx, 99)
	assert.Equal(t, http.StatusNotFound, apperr.Status(err))

	refs, err := service.IDs(ctx)
	require.NoError(t, err)
	assert.Len(t, refs, 4)
}

/*
TestHandler verifies the series API contract.
*/
func TestHandler(t *testing.T) {
	router := chi.NewRouter()
	router.Mount("/api/series", series.NewHandler(series.NewService(newFixture(), nil)).Routes())

	tests := []struct {
		name   string
		method string
		path   string
		status int
		check  func(t *testing.T, recorder *httptest.ResponseRecorder)
	}{
		{"all", http.MethodGet, "/api/series", http.StatusOK, func(t *testing.T, recorder *httptest.ResponseRecorder) {
			assert.Equal(t, constants.SeriesAPICacheControl, recorder.Header().Get(constants.HeaderCacheControl))
			var list []series.Series
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &list))
			assert.Len(t, list, 4)
		}},
		{"comma_and_repeat", http.MethodGet, "/api/series?status=pending,licensed&publisher=ipm&publisher=kim", http.StatusOK, func(t *testing.T, recorder *httptest.ResponseRecorder) {
			var list []series.Series
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &list))
			require.Len(t, list, 2)
			for _, s := range list {
				assert.Contains(t, []series.Status{series.StatusPending, series.StatusLicensed}, s.Status)
			}
		}},
		{"empty", http.MethodGet, "/api/series?publisher=tre", http.StatusNoContent, func(t *testing.T, recorder *httptest.ResponseRecorder) {
			assert.Empty(t, recorder.Body.String())
		}},
		{"bad_status", http.MethodGet, "/api/series?status=done", http.StatusBadRequest, func(t *testing.T, recorder *httptest.ResponseRecorder) {
			assert.Contains(t, recorder.Body.String(), "VALIDATION_ERROR")
		}},
		{"post", http.MethodPost, "/api/series", http.StatusMethodNotAllowed, func(t *testing.T, recorder *httptest.ResponseRecorder) {
			assert.Equal(t, "GET", recorder.Header().Get(constants.HeaderAllow))
			assert.Equal(t, "Method POST Not Allowed", recorder.Body.String())
		}},
		{"delete", http.MethodDelete, "/api/series", http.StatusMethodNotAllowed, func(t *testing.T, recorder *httptest.ResponseRecorder) {
			assert.Equal(t, "Method DELETE Not Allowed", recorder.Body.String())
		}},
		{"detail", http.MethodGet, "/api/series/2", http.StatusOK, func(t *testing.T, recorder *httptest.ResponseRecorder) {
			assert.Contains(t, recorder.Body.String(), `"name":"Spy x Family"`)
		}},
		{"detail_missing", http.MethodGet, "/api/series/abc", http.StatusNotFound, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.status, recorder.Code)
			if tt.check != nil {
				tt.check(t, recorder)
			}
		})
	}
}
