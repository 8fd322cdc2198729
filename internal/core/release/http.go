// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package release

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/mangacal/internal/platform/constants"
	requestutil "github.com/taibuivan/mangacal/internal/platform/request"
	"github.com/taibuivan/mangacal/internal/platform/respond"
	"github.com/taibuivan/mangacal/internal/platform/validate"
	"github.com/taibuivan/mangacal/pkg/slug"
)

// Handler implements the HTTP layer for publications and feeds.
type Handler struct {
	service *Service
	now     func() time.Time
}

// NewHandler constructs a new release [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service, now: time.Now}
}

// Routes returns a [chi.Router] for /api/publications.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listEntries)
	router.Get("/grouped", handler.listGroups)

	return router
}

/*
GET /api/publications.

Request (Query):
  - start, end: YYYY-MM-DD (default: current month)
  - publisher: repeatable or comma separated
  - digital: true | false
  - order: asc (default) | desc

Response:
  - 200: []Publication
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) listEntries(writer http.ResponseWriter, request *http.Request) {
	query, err := ParseQuery(request, handler.now())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, err := handler.service.Entries(request.Context(), query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}

/*
GET /api/publications/grouped.

Request (Query): same as GET /api/publications.

Response:
  - 200: []DateGroup
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) listGroups(writer http.ResponseWriter, request *http.Request) {
	query, err := ParseQuery(request, handler.now())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	groups, err := handler.service.EntriesByGroup(request.Context(), query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, groups)
}

/*
GET /calendar/{publisher}.ics.

Description: Subscription feed of one publisher's releases.

Response:
  - 200: text/calendar
  - 404: Publisher not found
*/
func (handler *Handler) ServeFeed(writer http.ResponseWriter, request *http.Request) {
	body, publisher, err := handler.service.Feed(request.Context(), requestutil.Param(request, "publisher"), handler.now())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	header := writer.Header()
	header.Set("Content-Type", "text/calendar; charset=utf-8")
	header.Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s.ics"`, slug.From(publisher.Name)))
	header.Set(constants.HeaderCacheControl, fmt.Sprintf("public, max-age=%d", int(constants.CalendarRevalidate.Seconds())))
	writer.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(writer, body)
}

/*
ParseQuery reads and validates the entries query string.

Both dates are optional; a missing bound defaults to the corresponding edge
of the current month. The end may not precede the start.

Parameters:
  - request: *http.Request
  - now: time.Time (anchor of the default month)

Returns:
  - Query
  - error: 400 VALIDATION_ERROR listing every bad field
*/
func ParseQuery(request *http.Request, now time.Time) (Query, error) {
	start := requestutil.Query(request, "start")
	end := requestutil.Query(request, "end")
	order := requestutil.Query(request, "order")
	digital := requestutil.Query(request, "digital")
	publishers := requestutil.Values(request, "publisher")

	v := &validate.Validator{}
	v.Date("start", start, constants.DateLayout).
		Date("end", end, constants.DateLayout)
	if order != "" {
		v.OneOf("order", order, "asc", "desc")
	}
	if digital != "" {
		v.OneOf("digital", digital, "true", "false")
	}
	for _, publisher := range publishers {
		v.Slug("publisher", publisher)
	}
	if err := v.Err(); err != nil {
		return Query{}, err
	}

	window := MonthOf(now)
	if start != "" {
		window.Start, _ = time.ParseInLocation(constants.DateLayout, start, constants.SiteZone)
	}
	if end != "" {
		window.End, _ = time.ParseInLocation(constants.DateLayout, end, constants.SiteZone)
	}
	if err := v.Custom("end", window.End.Before(window.Start), "Must not be before start").Err(); err != nil {
		return Query{}, err
	}

	query := Query{
		Range:     window,
		Filter:    Filter{Publishers: publishers},
		Ascending: order != "desc",
	}
	if digital != "" {
		flag, _ := strconv.ParseBool(digital)
		query.Filter.Digital = &flag
	}

	return query, nil
}
