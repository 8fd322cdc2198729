// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package series

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/mangacal/internal/platform/apperr"
	"github.com/taibuivan/mangacal/internal/platform/constants"
	requestutil "github.com/taibuivan/mangacal/internal/platform/request"
	"github.com/taibuivan/mangacal/internal/platform/respond"
)

// Handler implements the HTTP layer for series.
type Handler struct {
	service *Service
}

// NewHandler constructs a new series [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for /api/series.
//
// The collection route answers every method itself so that unsupported ones
// get the plain-text 405 body API clients already parse.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.HandleFunc("/", handler.collection)
	router.Get("/{id}", handler.getSeries)

	return router
}

// collection dispatches /api/series by method.
func (handler *Handler) collection(writer http.ResponseWriter, request *http.Request) {
	switch request.Method {
	case http.MethodGet:
		handler.listSeries(writer, request)
	default:
		writer.Header().Set(constants.HeaderAllow, http.MethodGet)
		writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
		writer.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = io.WriteString(writer, apperr.MethodNotAllowed(request.Method).Message)
	}
}

/*
GET /api/series.

Request (Query):
  - publisher, type, status: repeatable or comma separated

Response:
  - 200: []Series (unwrapped array, edge-cached for 2 hours)
  - 204: No rows
  - 400: VALIDATION_ERROR for unknown statuses
*/
func (handler *Handler) listSeries(writer http.ResponseWriter, request *http.Request) {
	filter := FilterFromRequest(request)

	list, err := handler.service.List(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if len(list) == 0 {
		respond.NoContent(writer)
		return
	}

	writer.Header().Set(constants.HeaderCacheControl, constants.SeriesAPICacheControl)
	respond.Raw(writer, list)
}

/*
GET /api/series/{id}.

Response:
  - 200: Detail
  - 404: Series not found
*/
func (handler *Handler) getSeries(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.ParseInt(requestutil.Param(request, "id"), 10, 64)
	if err != nil {
		respond.Error(writer, request, apperr.NotFound("Series"))
		return
	}

	detail, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

// FilterFromRequest reads publisher, type and status query parameters.
func FilterFromRequest(request *http.Request) Filter {
	filter := Filter{
		Publishers: requestutil.Values(request, "publisher"),
		Types:      requestutil.Values(request, "type"),
	}
	for _, status := range requestutil.Values(request, "status") {
		filter.Statuses = append(filter.Statuses, Status(status))
	}
	return filter
}
