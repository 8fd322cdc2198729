// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/mangacal/internal/core/announcement"
	"github.com/taibuivan/mangacal/internal/core/calendar"
	"github.com/taibuivan/mangacal/internal/core/license"
	"github.com/taibuivan/mangacal/internal/core/reference"
	"github.com/taibuivan/mangacal/internal/core/series"
	"github.com/taibuivan/mangacal/internal/platform/apperr"
	"github.com/taibuivan/mangacal/internal/platform/constants"
	"github.com/taibuivan/mangacal/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/mangacal/internal/platform/request"
)

// # Release Calendar

type sourceOption struct {
	calendar.Source
	Checked bool
	// FeedURL is the subscription link offered in the download menu.
	FeedURL string
}

type shareLinks struct {
	Facebook  string
	// Messenger uses an app scheme that html/template would otherwise neutralize.
	Messenger template.URL
	Twitter   string
}

type calendarPage struct {
	Meta
	Banner  *announcement.Banner
	View    *calendar.MonthView
	Sources []sourceOption
	PrevURL string
	NextURL string
	Share   shareLinks
}

/*
GET /.

Request (Query):
  - month: YYYY-MM, defaults to the current month
  - publisher: repeatable or comma separated catalog ids
*/
func (handler *Handler) calendarPage(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	month, err := calendar.ParseMonth(requestutil.Query(request, "month"), handler.now())
	if err != nil {
		handler.fail(writer, request, apperr.ValidationError("Tháng không hợp lệ, dùng định dạng YYYY-MM"))
		return
	}
	selected := requestutil.Values(request, "publisher")

	var (
		view   *calendar.MonthView
		banner *announcement.Banner
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		view, err = handler.services.Calendar.Month(groupCtx, month, selected)
		return err
	})
	group.Go(func() error {
		loaded, err := handler.services.Banner.Banner(groupCtx)
		if err != nil {
			// The banner is decorative; the calendar still renders without it.
			ctxutil.GetLogger(ctx).WarnContext(ctx, "banner_unavailable", slog.Any("error", err))
			loaded = &announcement.Banner{}
		}
		banner = loaded
		return nil
	})
	if err := group.Wait(); err != nil {
		handler.fail(writer, request, err)
		return
	}

	catalog := handler.services.Calendar.Catalog()
	filtered := len(selected) > 0 && len(view.Selected) < len(catalog.Publishers)

	sources := make([]sourceOption, len(catalog.Publishers))
	for i, source := range catalog.Publishers {
		feed := source.ICSURL
		if feed == "" {
			feed = handler.siteURL + "/calendar/" + source.ID + ".ics"
		}
		sources[i] = sourceOption{
			Source:  source,
			Checked: !filtered || slices.Contains(view.Selected, source.ID),
			FeedURL: feed,
		}
	}

	monthURL := func(value string) string {
		query := url.Values{"month": {value}}
		if filtered {
			query.Set("publisher", strings.Join(view.Selected, ","))
		}
		return "/?" + query.Encode()
	}

	page := calendarPage{
		Meta: handler.meta("Lịch phát hành Manga",
			"Xem lịch phát hành manga chưa bao giờ là dễ hơn, nay được tổng hợp từ nhiều NXB khác nhau!", "/", "calendar"),
		Banner:  banner,
		View:    view,
		Sources: sources,
		PrevURL: monthURL(view.Prev),
		NextURL: monthURL(view.Next),
	}
	page.Share = shareLinks{
		Facebook:  "https://www.facebook.com/sharer/sharer.php?u=" + url.QueryEscape(page.Canonical),
		Messenger: template.URL("fb-messenger://share/?link=" + url.QueryEscape(page.Canonical)),
		Twitter:   "https://twitter.com/share?url=" + url.QueryEscape(page.Canonical),
	}

	revalidateAfter(writer, constants.CalendarRevalidate)
	render(writer, request, http.StatusOK, handler.templates.Page("calendar", page))
}

// # Licensing Grid

type statusOption struct {
	Value string
	Label string
}

type licenseSelection struct {
	Publishers []string
	Types      []string
	Statuses   []string
}

type licensePage struct {
	Meta
	Series     []*series.Series
	Publishers []*reference.Publisher
	Types      []*reference.Type
	Statuses   []statusOption
	Selection  licenseSelection
}

/*
GET /license.

Request (Query):
  - publisher, type, status: repeatable or comma separated
*/
func (handler *Handler) licensePage(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	filter := series.FilterFromRequest(request)

	var (
		list       []*series.Series
		publishers []*reference.Publisher
		types      []*reference.Type
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		list, err = handler.services.Series.List(groupCtx, filter)
		return err
	})
	group.Go(func() (err error) {
		publishers, err = handler.services.References.ListPublishers(groupCtx)
		return err
	})
	group.Go(func() (err error) {
		types, err = handler.services.References.ListTypes(groupCtx)
		return err
	})
	if err := group.Wait(); err != nil {
		handler.fail(writer, request, err)
		return
	}

	statuses := make([]statusOption, len(series.Statuses))
	selectedStatuses := make([]string, len(filter.Statuses))
	for i, status := range series.Statuses {
		statuses[i] = statusOption{Value: string(status), Label: status.Label()}
	}
	for i, status := range filter.Statuses {
		selectedStatuses[i] = string(status)
	}

	revalidateAfter(writer, constants.LicenseRevalidate)
	render(writer, request, http.StatusOK, handler.templates.Page("license", licensePage{
		Meta: handler.meta("Thông tin bản quyền Manga",
			"Xem thông tin manga được mua bản quyền, cập nhật thường xuyên!", "/license", "license"),
		Series:     list,
		Publishers: publishers,
		Types:      types,
		Statuses:   statuses,
		Selection: licenseSelection{
			Publishers: filter.Publishers,
			Types:      filter.Types,
			Statuses:   selectedStatuses,
		},
	}))
}

// # Series Detail

type progressStep struct {
	Label string
	Done  bool
}

type seriesPage struct {
	Meta
	Detail *series.Detail
	Steps  []progressStep
	// WaitingDays is set while the series is licensed but unpublished.
	WaitingDays  *int
	ShowReleases bool
}

// GET /license/{id}.
func (handler *Handler) seriesPage(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.ParseInt(requestutil.Param(request, "id"), 10, 64)
	if err != nil {
		handler.NotFound(writer, request)
		return
	}

	detail, err := handler.services.Series.Get(request.Context(), id)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	step := detail.Status.Step()
	page := seriesPage{
		Meta: handler.meta("Bản quyền "+detail.Name,
			"Xem thông tin bản quyền và lịch xuất bản của "+detail.Name+" trên mangaGLHF!",
			"/license/"+strconv.FormatInt(detail.ID, 10), "license"),
		Detail: detail,
		Steps: []progressStep{
			{Label: "Đã mua bản quyền", Done: true},
			{Label: "Đã phát hành", Done: step > 1},
			{Label: "Đã hoàn thành", Done: step > 2},
		},
		ShowReleases: step >= 2,
	}
	if detail.ImageURL != nil {
		page.Image = *detail.ImageURL
	}
	if days, ok := detail.DaysSinceLicense(handler.now()); ok && step == 1 {
		page.WaitingDays = &days
	}

	revalidateAfter(writer, constants.LicenseRevalidate)
	render(writer, request, http.StatusOK, handler.templates.Page("series", page))
}

// # Legacy Sheet

type sheetPage struct {
	Meta
	Licensed   []license.Entry
	Unknown    []license.Entry
	Types      []string
	Publishers []string
	Selection  license.Filter
}

// GET /license/sheet.
func (handler *Handler) sheetPage(writer http.ResponseWriter, request *http.Request) {
	sheet, err := handler.services.Sheet.List(request.Context())
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	filter := license.Filter{
		Types:      requestutil.Values(request, "type"),
		Publishers: requestutil.Values(request, "publisher"),
	}

	revalidateAfter(writer, constants.LicenseRevalidate)
	render(writer, request, http.StatusOK, handler.templates.Page("sheet", sheetPage{
		Meta: handler.meta("Thông tin bản quyền (bảng cũ)",
			"Danh sách bản quyền tổng hợp từ bảng tính cũ.", "/license/sheet", "license"),
		Licensed:   filter.Apply(sheet.Licensed),
		Unknown:    sheet.Unknown,
		Types:      license.TypeKeys,
		Publishers: license.Publishers(sheet.Licensed),
		Selection:  filter,
	}))
}
