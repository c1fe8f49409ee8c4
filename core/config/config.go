package config

import (
	"reflect"
	"strings"

	"catalog-insights/core/database"
	"catalog-insights/core/logger"
	"catalog-insights/core/metrics"
	"catalog-insights/core/platform"
	"catalog-insights/core/report"
	"catalog-insights/core/server"
	"catalog-insights/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Platform holds configuration for the provisioning platform API.
	Platform platform.Config `mapstructure:"platform"`
	// Reports holds configuration for report building and exports.
	Reports report.Config `mapstructure:"reports"`
	// Storage holds configuration for the export object storage.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Metrics holds configuration for the Prometheus endpoint.
	Metrics metrics.Config `mapstructure:"metrics"`
	// Database holds configuration for the export history database.
	Database database.Config `mapstructure:"database"`
}

// LoadConfig loads configuration from environment variables and the .env file in path.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Defaults come from the `default` struct tags
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. PLATFORM_BASE_URL -> platform.base_url)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues walks the struct and registers every `mapstructure` key in
// Viper with its `default` tag value.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set the default, even if empty, so AutomaticEnv sees the key
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
