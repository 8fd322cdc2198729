// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, revalidation intervals and cross-cutting
keys that are shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Revalidation: How long rendered data stays fresh before it is rebuilt.
  - Locale: Site time zone used for "today" and default month ranges.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "mangacal"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	// Page builds may fan out to every publisher calendar, so this is wider than the API needs.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 25 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 20.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 40

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Revalidation

const (
	// CalendarRevalidate is the freshness window of the calendar page and its banner.
	CalendarRevalidate = 2 * time.Hour

	// LicenseRevalidate is the freshness window of the licensing pages.
	LicenseRevalidate = 1 * time.Hour

	// SeriesAPICacheControl is sent by GET /api/series so the edge caches it for 2 hours.
	SeriesAPICacheControl = "max-age=0, s-maxage=7200"

	// RevalidateIssuer is the 'iss' claim expected on revalidation tokens.
	RevalidateIssuer = "mangacal"
)

// # Cache Prefixes (Revalidation Taxonomy)

// One prefix per revalidation scope: Google Calendar months, database reads,
// the legacy licensing sheet, and the banner cells.
const (
	CachePrefixCalendar = "calendar:"
	CachePrefixSeries   = "series:"
	CachePrefixLicense  = "license:"
	CachePrefixSheet    = "sheet:"
)

// # Locale

// SiteZone is the fixed UTC+7 offset of Vietnam. No DST applies.
var SiteZone = time.FixedZone("ICT", 7*60*60)

// DateLayout is the ISO date used in query strings and grouping keys.
const DateLayout = "2006-01-02"

// MonthLayout is the month selector used in calendar query strings.
const MonthLayout = "2006-01"

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
	HeaderCacheControl  = "Cache-Control"
	HeaderAllow         = "Allow"
)

// # JSON Field Identifiers

const (
	FieldStatus  = "status"
	FieldChecks  = "checks"
	FieldPurged  = "purged"
	FieldApp     = "app"
	FieldVersion = "version"
)
