// Package export writes deployment bundles to disk.
//
// A run creates export_<UTC timestamp>/ under the configured directory with:
//
//   - <catalog item key>.json per catalog item bundle
//   - unsynced_deployments.json when unsynced deployments are included
//   - summary.json listing every bundle and the totals
//   - summary.xlsx on request (Bundles and Unsynced sheets)
//
// Files can be uploaded to object storage under the same directory name,
// and each run is recorded in the export_runs table when a database is configured.
package export
