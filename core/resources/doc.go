// Package resources computes resource counts and type breakdowns for a set
// of deployments.
//
// # Modes
//
//   - fast: the per-deployment count is the platform-supplied estimate
//     (Deployment.ResourceCount, 0 when absent). No network access.
//   - detailed: the Fetcher is invoked for every deployment through a
//     bounded worker pool. Each call obeys a per-fetch timeout and a small
//     bounded retry count.
//
// # Partial Failures
//
// A deployment whose fetch still fails after its retries is logged and marked
// unavailable rather than zero. The Stats then carries a PartialResultWarning
// listing the affected deployment ids. Sibling fetches are never cancelled by
// one failure. Cancelling the caller's context abandons in-flight fetches and
// Aggregate returns the context error instead of a truncated result.
//
// # Usage
//
//	stats, err := resources.Aggregate(ctx, deployments, client, resources.Options{
//	    Mode:        resources.ModeDetailed,
//	    Concurrency: 8,
//	})
package resources
