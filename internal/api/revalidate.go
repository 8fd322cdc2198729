// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/taibuivan/mangacal/internal/platform/apperr"
	"github.com/taibuivan/mangacal/internal/platform/cache"
	"github.com/taibuivan/mangacal/internal/platform/constants"
	"github.com/taibuivan/mangacal/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/mangacal/internal/platform/request"
	"github.com/taibuivan/mangacal/internal/platform/respond"
	"github.com/taibuivan/mangacal/internal/platform/sec"
	"github.com/taibuivan/mangacal/internal/platform/validate"
)

// scopePrefixes maps each revalidation scope to the cache namespace it purges.
var scopePrefixes = map[string]string{
	sec.ScopeCalendar: constants.CachePrefixCalendar,
	sec.ScopeSeries:   constants.CachePrefixSeries,
	sec.ScopeLicense:  constants.CachePrefixLicense,
	sec.ScopeSheet:    constants.CachePrefixSheet,
}

// RevalidateHandler purges cached pages on demand.
type RevalidateHandler struct {
	store cache.Store
}

// NewRevalidateHandler returns a handler purging entries of store.
func NewRevalidateHandler(store cache.Store) *RevalidateHandler {
	return &RevalidateHandler{store: store}
}

type revalidateRequest struct {
	Scopes []string `json:"scopes"`
}

/*
POST /api/revalidate.

Description: Requires a bearer token (see middleware.RequireToken). Each
requested scope must be known and granted by the token.

Request (Body):
  - scopes: []string

Response:
  - 200: {"data": {"purged": n}}
  - 400: VALIDATION_ERROR for empty or unknown scopes
  - 403: FORBIDDEN when a scope is not granted
*/
func (handler *RevalidateHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	var body revalidateRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Custom("scopes", len(body.Scopes) == 0, "At least one scope is required")
	v.EachOneOf("scopes", body.Scopes, sec.Scopes...)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	granted := ctxutil.GetScopes(ctx)
	for _, scope := range body.Scopes {
		if !slices.Contains(granted, scope) {
			respond.Error(writer, request, apperr.Forbidden("Token does not grant scope "+scope))
			return
		}
	}

	purged := 0
	for _, scope := range slices.Compact(slices.Sorted(slices.Values(body.Scopes))) {
		count, err := handler.store.DeletePrefix(ctx, scopePrefixes[scope])
		if err != nil {
			ctxutil.GetLogger(ctx).ErrorContext(ctx, "cache_purge_failed", slog.String("scope", scope), slog.Any("error", err))
			respond.Error(writer, request, apperr.ServiceUnavailable("Cache is unavailable"))
			return
		}
		purged += count
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "cache_revalidated",
		slog.Any("scopes", body.Scopes),
		slog.Int("purged", purged),
	)
	respond.OK(writer, map[string]int{constants.FieldPurged: purged})
}
