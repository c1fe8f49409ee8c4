package report

import (
	"time"

	"catalog-insights/core/resources"

	"go.uber.org/zap"
)

// Config holds the report and export settings.
type Config struct {
	// FetchConcurrency bounds detailed resource fetches in flight.
	FetchConcurrency int `mapstructure:"fetch_concurrency" default:"10"`
	// FetchTimeoutSeconds bounds one resource fetch attempt.
	FetchTimeoutSeconds int `mapstructure:"fetch_timeout_seconds" default:"30"`
	// FetchRetries is the number of retries after a failed resource fetch.
	FetchRetries int `mapstructure:"fetch_retries" default:"2"`
	// CatalogCacheTTLSeconds is how long a catalog snapshot is reused. 0 rebuilds on every request.
	CatalogCacheTTLSeconds int `mapstructure:"catalog_cache_ttl_seconds" default:"300"`
	// FuzzyThreshold is the minimum name similarity accepted, never below 0.8.
	FuzzyThreshold float64 `mapstructure:"fuzzy_threshold" default:"0.8"`
	// ExportDir is the local directory receiving exports.
	ExportDir string `mapstructure:"export_dir" default:"./exports"`
}

// CatalogCacheTTL returns the catalog snapshot lifetime.
func (c Config) CatalogCacheTTL() time.Duration {
	if c.CatalogCacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CatalogCacheTTLSeconds) * time.Second
}

// Aggregation returns the resource aggregation settings. Mode is left to each report.
func (c Config) Aggregation(logger *zap.Logger) resources.Options {
	retries := c.FetchRetries
	if retries < 0 {
		retries = 0
	}
	return resources.Options{
		Concurrency: c.FetchConcurrency,
		Timeout:     time.Duration(c.FetchTimeoutSeconds) * time.Second,
		MaxAttempts: retries + 1,
		Logger:      logger,
	}
}
