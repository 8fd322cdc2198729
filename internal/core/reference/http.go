// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/mangacal/internal/platform/request"
	"github.com/taibuivan/mangacal/internal/platform/respond"
)

// Handler implements the HTTP layer for reference data.
type Handler struct {
	service *Service
}

// NewHandler constructs a new reference [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the reference endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// # Publishers Endpoints
	router.Get("/publishers", handler.listPublishers)
	router.Get("/publishers/{id}", handler.getPublisher)

	// # Types Endpoints
	router.Get("/types", handler.listTypes)
	router.Get("/types/{id}", handler.getType)

	return router
}

/*
GET /api/publishers.

Response:
  - 200: []Publisher
*/
func (handler *Handler) listPublishers(writer http.ResponseWriter, request *http.Request) {
	publishers, err := handler.service.ListPublishers(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, publishers)
}

/*
GET /api/publishers/{id}.

Response:
  - 200: Publisher
  - 404: ErrNotFound: Publisher not found
*/
func (handler *Handler) getPublisher(writer http.ResponseWriter, request *http.Request) {
	publisher, err := handler.service.GetPublisher(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, publisher)
}

/*
GET /api/types.

Response:
  - 200: []Type
*/
func (handler *Handler) listTypes(writer http.ResponseWriter, request *http.Request) {
	types, err := handler.service.ListTypes(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, types)
}

/*
GET /api/types/{id}.

Response:
  - 200: Type
  - 404: ErrNotFound: Type not found
*/
func (handler *Handler) getType(writer http.ResponseWriter, request *http.Request) {
	bookType, err := handler.service.GetType(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, bookType)
}
