// Package metrics exposes Prometheus collectors for report builds,
// reconciliation outcomes, resource fetch failures and export runs.
package metrics
