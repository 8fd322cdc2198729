// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package series tracks the licensing status of every series in the database.

A series moves through four states: pending (rumored or announced),
licensed (contract signed), published (first volume released) and finished
(last volume released). The license pages and GET /api/series read it.

# Cover Rule

A card shows the first volume's cover when it has one, then the cover posted
with the license announcement, then nothing. The card's timestamp follows the
same precedence: first volume date, then license date.
*/
package series

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/taibuivan/mangacal/internal/core/reference"
	"github.com/taibuivan/mangacal/internal/core/release"
	"github.com/taibuivan/mangacal/pkg/pointer"
)

// CDN folders of the two cover sources.
const (
	publicationCoverFolder = "covers/"
	licenseCoverFolder     = "raw-covers/"
)

// # Status Domain

// Status is the licensing state of a series. Values mirror the database enum.
type Status string

const (
	StatusPending   Status = "pending"
	StatusLicensed  Status = "licensed"
	StatusPublished Status = "published"
	StatusFinished  Status = "finished"
)

// Statuses lists every status in enum order.
var Statuses = []Status{StatusPending, StatusLicensed, StatusPublished, StatusFinished}

// StatusNames returns [Statuses] as strings, for validation messages.
func StatusNames() []string {
	names := make([]string, len(Statuses))
	for i, status := range Statuses {
		names[i] = string(status)
	}
	return names
}

// Step is the progress position of the detail page: 3 finished, 2 published, 1 otherwise.
func (status Status) Step() int {
	switch status {
	case StatusFinished:
		return 3
	case StatusPublished:
		return 2
	default:
		return 1
	}
}

// Label is the Vietnamese display name.
func (status Status) Label() string {
	switch status {
	case StatusPending:
		return "Chờ xác nhận"
	case StatusLicensed:
		return "Đã mua bản quyền"
	case StatusPublished:
		return "Đang phát hành"
	case StatusFinished:
		return "Đã hoàn thành"
	default:
		return string(status)
	}
}

// # Series Domain

// UnixTime is a time serialized as whole unix seconds.
type UnixTime struct {
	time.Time
}

// MarshalJSON implements [json.Marshaler].
func (t UnixTime) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, t.Unix(), 10), nil
}

// UnmarshalJSON implements [json.Unmarshaler].
func (t *UnixTime) UnmarshalJSON(data []byte) error {
	var seconds int64
	if err := json.Unmarshal(data, &seconds); err != nil {
		return err
	}
	t.Time = time.Unix(seconds, 0).UTC()
	return nil
}

// Series is one card of the license grid.
type Series struct {
	ID        int64               `json:"id"`
	Name      string              `json:"name"`
	Anilist   *int64              `json:"anilist,omitempty"`
	Publisher reference.Publisher `json:"publisher"`
	Type      reference.Type      `json:"type"`
	Status    Status              `json:"status"`
	ImageURL  *string             `json:"image_url"`
	Timestamp *UnixTime           `json:"timestamp"`
}

// License is the acquisition record of a series.
type License struct {
	Source    *string   `json:"source"`
	ImageURL  *string   `json:"image_url"`
	Timestamp time.Time `json:"timestamp"`
}

// Detail is a series with its releases and license record.
type Detail struct {
	Series
	Publications []*release.Publication `json:"publication"`
	License      *License               `json:"licensed"`
}

// DaysSinceLicense returns whole days elapsed since the license was signed.
// ok is false when the series has no license record.
func (detail *Detail) DaysSinceLicense(now time.Time) (days int, ok bool) {
	if detail.License == nil {
		return 0, false
	}
	elapsed := now.Sub(detail.License.Timestamp)
	if elapsed < 0 {
		return 0, true
	}
	return int(elapsed.Hours() / 24), true
}

// Ref is the minimal identity of a series, used for sitemaps.
type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// # Cover Resolution

// CoverSource carries the raw inputs of the cover rule.
type CoverSource struct {
	// HasPublication is true when the series has at least one publication.
	HasPublication bool
	// PublicationImage is the first image file of the first volume.
	PublicationImage *string
	PublicationDate  *time.Time
	LicenseImage     *string
	LicenseTime      *time.Time
}

// Cover returns the CDN path of the card image, or nil.
func (source CoverSource) Cover() *string {
	if cover := pointer.Prefixed(publicationCoverFolder, source.PublicationImage); cover != nil {
		return cover
	}
	return pointer.Prefixed(licenseCoverFolder, source.LicenseImage)
}

// Timestamp returns the card date: first volume release, else license signing.
func (source CoverSource) Timestamp() *UnixTime {
	if source.HasPublication && source.PublicationDate != nil {
		return &UnixTime{Time: *source.PublicationDate}
	}
	if source.LicenseTime != nil {
		return &UnixTime{Time: *source.LicenseTime}
	}
	return nil
}

// # Filtering

// Filter narrows the series list. An empty set admits everything.
type Filter struct {
	Publishers []string
	Types      []string
	Statuses   []Status
}

// IsZero reports whether the filter admits every series.
func (filter Filter) IsZero() bool {
	return len(filter.Publishers) == 0 && len(filter.Types) == 0 && len(filter.Statuses) == 0
}

// Matches reports whether series passes every non-empty set of the filter.
func (filter Filter) Matches(series *Series) bool {
	return admits(filter.Publishers, series.Publisher.ID) &&
		admits(filter.Types, series.Type.ID) &&
		admits(filter.Statuses, series.Status)
}

func admits[T comparable](set []T, value T) bool {
	if len(set) == 0 {
		return true
	}
	for _, candidate := range set {
		if candidate == value {
			return true
		}
	}
	return false
}
