package metrics

// Config holds the Prometheus metrics settings.
type Config struct {
	// Enabled exposes /metrics and records the collectors.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Namespace prefixes every metric name.
	Namespace string `mapstructure:"namespace" default:"catalog_insights"`
}
