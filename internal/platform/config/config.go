// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, Google clients) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the mangacal web server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (hosted PostgreSQL, read-only for this service)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// RunMigrations applies the schema at boot. Only meant for local databases.
	// MigrationPath reads SQL from disk instead of the files embedded in the binary.
	RunMigrations bool   `env:"RUN_MIGRATIONS" envDefault:"false"`
	MigrationPath string `env:"MIGRATION_PATH"`

	// Revalidation cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Google Sheets + Calendar
	GoogleAPIKey string `env:"GOOGLE_API_KEY,required"`
	SheetID      string `env:"SHEET_ID,required"`

	// Image CDN and public origin
	CDNBaseURL string `env:"CDN_BASE_URL" envDefault:"https://res.cloudinary.com/glhfvn/image/upload"`
	SiteURL    string `env:"SITE_URL"     envDefault:"https://manga.glhf.vn"`

	// CatalogPath overrides the embedded publisher calendar catalog.
	CatalogPath string `env:"CATALOG_PATH"`

	// RevalidateSecret signs on-demand revalidation tokens. Empty disables the webhook.
	RevalidateSecret string `env:"REVALIDATE_SECRET"`

	// Tracing
	OtelEnabled  bool   `env:"OTEL_ENABLED"  envDefault:"false"`
	OtelEndpoint string `env:"OTEL_ENDPOINT"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Fails if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	// The canonical origin is used to build absolute links (sitemap, ICS, share).
	site, err := url.Parse(cfg.SiteURL)
	if err != nil || site.Scheme == "" || site.Host == "" {
		return nil, fmt.Errorf("config: SITE_URL must be an absolute URL, got %q", cfg.SiteURL)
	}
	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")
	cfg.CDNBaseURL = strings.TrimRight(cfg.CDNBaseURL, "/")

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// TracingEnabled reports whether spans should be exported.
func (c *Config) TracingEnabled() bool {
	return c.OtelEnabled && c.OtelEndpoint != ""
}

// RevalidateEnabled reports whether the on-demand revalidation webhook is mounted.
func (c *Config) RevalidateEnabled() bool {
	return c.RevalidateSecret != ""
}

// SiteHost returns the host part of [Config.SiteURL].
func (c *Config) SiteHost() string {
	site, err := url.Parse(c.SiteURL)
	if err != nil {
		return ""
	}
	return site.Host
}

// AllowedOrigin returns the only cross-origin caller accepted in production.
func (c *Config) AllowedOrigin() string {
	return c.SiteURL
}
