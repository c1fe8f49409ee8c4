package resources

import (
	"context"
	"sort"

	"catalog-insights/core/models"
)

// Mode selects how resource counts are obtained.
type Mode string

const (
	// ModeFast uses the platform-supplied resource count estimate.
	ModeFast Mode = "fast"
	// ModeDetailed fetches the actual resource list of every deployment.
	ModeDetailed Mode = "detailed"
)

// ModeFor returns ModeDetailed when detailed is true, ModeFast otherwise.
func ModeFor(detailed bool) Mode {
	if detailed {
		return ModeDetailed
	}
	return ModeFast
}

// UnknownType is the type key used for resources without a type tag.
const UnknownType = "unknown"

// Fetcher obtains the resources of one deployment.
// Implementations are expected to be timeout-bounded.
type Fetcher interface {
	FetchResources(ctx context.Context, deploymentID string) ([]models.Resource, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, deploymentID string) ([]models.Resource, error)

// FetchResources calls f.
func (f FetcherFunc) FetchResources(ctx context.Context, deploymentID string) ([]models.Resource, error) {
	return f(ctx, deploymentID)
}

// TypeCount is the number and share of resources of one type.
type TypeCount struct {
	Type       string  `json:"type"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// DeploymentResources holds the resource data of one deployment.
type DeploymentResources struct {
	DeploymentID string `json:"deployment_id"`

	// Count is the number of resources. It is meaningless when Available is false.
	Count int `json:"count"`

	// Available is false when detailed fetching failed for this deployment.
	Available bool `json:"available"`

	// Types counts resources by type. Only populated in detailed mode.
	Types map[string]int `json:"types,omitempty"`

	// Resources is the fetched resource list. Only populated in detailed mode.
	Resources []models.Resource `json:"-"`
}

// PartialResultWarning marks a result computed without the resource data of some deployments.
type PartialResultWarning struct {
	Message       string   `json:"message"`
	DeploymentIDs []string `json:"deployment_ids"`
}

// Stats is the aggregated resource data of a deployment set.
type Stats struct {
	Mode Mode `json:"mode"`

	// TotalResources sums the counts of every available deployment.
	TotalResources int `json:"total_resources"`

	// ByType is sorted by count descending, then type ascending.
	ByType []TypeCount `json:"by_type"`

	// PerDeployment is keyed by deployment id.
	PerDeployment map[string]DeploymentResources `json:"per_deployment"`

	// AverageResourcesPerDeployment is computed over available deployments, 0 when none.
	AverageResourcesPerDeployment float64 `json:"average_resources_per_deployment"`

	// Warning is set when some deployments' resource data is unavailable.
	Warning *PartialResultWarning `json:"warning,omitempty"`
}

// For returns the resource data of deployment id.
func (s *Stats) For(id string) (DeploymentResources, bool) {
	dr, ok := s.PerDeployment[id]
	return dr, ok
}

// Sum totals the available counts of ids. complete is false when any of
// them is unavailable or unknown.
func (s *Stats) Sum(ids []string) (total int, complete bool) {
	complete = true
	for _, id := range ids {
		dr, ok := s.PerDeployment[id]
		if !ok || !dr.Available {
			complete = false
			continue
		}
		total += dr.Count
	}
	return total, complete
}

// Unavailable returns the sorted ids of deployments without resource data.
func (s *Stats) Unavailable() []string {
	var ids []string
	for id, dr := range s.PerDeployment {
		if !dr.Available {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
