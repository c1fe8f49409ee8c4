// Package report builds the analytical reports served by the CLI and the
// HTTP API: the activity timeline, catalog usage, resource usage and
// unsynced-deployment diagnostics.
//
// Every builder is a pure function of its inputs plus the catalog snapshot
// held by the matcher it receives. Options are validated before any
// processing; invalid values yield an *apperror.ValidationError.
//
// Reports are immutable once returned and carry snake_case JSON tags, which
// form the contract with the presentation layers.
package report
