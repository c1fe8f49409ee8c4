package platform

// Config holds configuration for the platform API client.
type Config struct {
	// BaseURL is the root URL of the platform API.
	BaseURL string `mapstructure:"base_url" default:"http://localhost:8080"`
	// Token is the bearer token sent with every request.
	Token string `mapstructure:"token" default:""`
	// TimeoutSeconds bounds each HTTP request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// PageSize is the number of elements requested per page.
	PageSize int `mapstructure:"page_size" default:"100"`
	// MaxRetries is the number of retries after a failed attempt.
	MaxRetries int `mapstructure:"max_retries" default:"3"`
	// RetryIntervalMillis is the initial backoff between attempts.
	RetryIntervalMillis int `mapstructure:"retry_interval_ms" default:"500"`
	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify" default:"false"`
}
