// Package reports serves the reconciliation reports over HTTP.
//
// The Service loads deployments from the platform, matches them against a
// catalog index held in its own reconcile.Registry and delegates to the
// core/report builders. Every build is timed and counted in core/metrics.
//
// Routes:
//
//	GET  /reports/activity
//	GET  /reports/catalog-usage
//	GET  /reports/resources-usage
//	GET  /reports/unsynced
//	POST /reports/catalog/refresh
package reports
