// Package deployments exposes read-only deployment and resource lookups.
package deployments
