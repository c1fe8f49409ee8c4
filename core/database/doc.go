// Package database handles the relational store used for export run history.
//
// It wraps GORM to configure MySQL (production) or SQLite (local runs and
// tests) connections from the application's configuration. The connection
// is optional: callers log a warning and skip persistence when it fails.
//
// # Schema
//
// ExportRunRepository migrates the export_runs table and verifies the
// resulting columns with the schema inspector, which reads SHOW COLUMNS on
// MySQL and PRAGMA table_info on SQLite.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logger.Warn("Optional database connection failed", zap.Error(err))
//	}
//
//	repo := database.NewExportRunRepository(db)
//	_ = repo.Migrate(ctx)
package database
