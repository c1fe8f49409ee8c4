// Package config provides configuration management for catalog-insights.
//
// It uses Viper with environment variables (SECTION_KEY, e.g.
// PLATFORM_BASE_URL) and an optional .env file loaded with godotenv.
// Defaults are declared on the section structs with `default` tags.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, request deadlines
//   - Platform: provisioning platform API URL, token, paging and retries
//   - Reports: resource fetch pool, catalog cache TTL, export directory
//   - Storage: S3/MinIO target for exports
//   - Database: export run history (MySQL or SQLite)
//   - Metrics: Prometheus endpoint toggle and namespace
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Platform.BaseURL)
package config
