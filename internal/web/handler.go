// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package web serves the server-rendered pages: the release calendar, the
licensing grid, series details, the legacy sheet and the sitemap.

Pages are html/template bodies wrapped as templ components. Every page is
rendered into a buffer before anything is written, so data-load failures
always surface as the error page with the matching status.
*/
package web

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/mangacal/internal/core/announcement"
	"github.com/taibuivan/mangacal/internal/core/calendar"
	"github.com/taibuivan/mangacal/internal/core/license"
	"github.com/taibuivan/mangacal/internal/core/reference"
	"github.com/taibuivan/mangacal/internal/core/series"
	"github.com/taibuivan/mangacal/internal/platform/cdn"
	"github.com/taibuivan/mangacal/internal/platform/constants"
	"github.com/taibuivan/mangacal/internal/platform/respond"
)

// Services are the data sources behind the pages.
type Services struct {
	Calendar   *calendar.Service
	Banner     *announcement.Service
	Series     *series.Service
	References *reference.Service
	Sheet      *license.Service
}

// Options configure links and clocks.
type Options struct {
	SiteURL    string
	CDNBaseURL string
	// Now defaults to time.Now.
	Now func() time.Time
}

// Handler implements the page routes.
type Handler struct {
	services  Services
	templates *Templates
	siteURL   string
	now       func() time.Time
}

// NewHandler parses the templates and returns a ready [Handler].
func NewHandler(services Services, options Options) (*Handler, error) {
	now := options.Now
	if now == nil {
		now = time.Now
	}

	templates, err := ParseTemplates(funcMap(cdn.New(options.CDNBaseURL), now))
	if err != nil {
		return nil, err
	}

	return &Handler{
		services:  services,
		templates: templates,
		siteURL:   strings.TrimRight(options.SiteURL, "/"),
		now:       now,
	}, nil
}

// Routes returns a [chi.Router] with every page.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.calendarPage)
	router.Get("/license", handler.licensePage)
	router.Get("/license/sheet", handler.sheetPage)
	router.Get("/license/{id}", handler.seriesPage)
	router.Get("/sitemap.xml", handler.sitemap)
	router.Handle("/static/*", http.FileServer(http.FS(staticFS)))

	return router
}

// # Shared Page Plumbing

// Meta is the head of every page.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	Image       string
	// Section highlights the active navigation entry.
	Section string
}

type errorPage struct {
	Meta
	Status  int
	Message string
}

// NotFound renders the error page with 404.
func (handler *Handler) NotFound(writer http.ResponseWriter, request *http.Request) {
	render(writer, request, http.StatusNotFound, handler.templates.Page("error", errorPage{
		Meta:    handler.meta("Không tìm thấy trang", "", request.URL.Path, ""),
		Status:  http.StatusNotFound,
		Message: "Trang bạn tìm không tồn tại.",
	}))
}

// fail renders the error page for err with its status.
func (handler *Handler) fail(writer http.ResponseWriter, request *http.Request, err error) {
	appError := respond.Resolve(request, err)

	message := appError.Message
	if appError.HTTPStatus >= http.StatusInternalServerError {
		message = "Không tải được dữ liệu, vui lòng thử lại sau."
	}

	render(writer, request, appError.HTTPStatus, handler.templates.Page("error", errorPage{
		Meta:    handler.meta(fmt.Sprintf("Lỗi %d", appError.HTTPStatus), "", request.URL.Path, ""),
		Status:  appError.HTTPStatus,
		Message: message,
	}))
}

func (handler *Handler) meta(title, description, path, section string) Meta {
	return Meta{
		Title:       title + " | mangaGLHF",
		Description: description,
		Canonical:   handler.siteURL + path,
		Section:     section,
	}
}

// revalidateAfter lets shared caches keep a page for the revalidation window.
func revalidateAfter(writer http.ResponseWriter, window time.Duration) {
	writer.Header().Set(constants.HeaderCacheControl, fmt.Sprintf("public, max-age=0, s-maxage=%d", int(window.Seconds())))
}
