// Package bundle partitions a deployment set for export: one bundle per
// matched catalog item, an unsynced bundle and a summary. The partitioning
// is deterministic, so identical input and catalog snapshot produce
// identical bundles and keys.
package bundle
