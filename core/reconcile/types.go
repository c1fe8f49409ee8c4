package reconcile

// Strategy names the heuristic that linked a deployment to a catalog item.
type Strategy string

const (
	// StrategyDirectID matches on the deployment's catalog item id.
	StrategyDirectID Strategy = "direct_id"
	// StrategyBlueprintID matches on the deployment's blueprint id.
	StrategyBlueprintID Strategy = "blueprint_id"
	// StrategyExactName matches a single catalog item by normalized name.
	StrategyExactName Strategy = "exact_name"
	// StrategyFuzzyName matches the most similar catalog item name above the threshold.
	StrategyFuzzyName Strategy = "fuzzy_name"
	// StrategyNone means no strategy succeeded.
	StrategyNone Strategy = "none"
)

// Strategies lists the matching strategies in priority order.
var Strategies = []Strategy{StrategyDirectID, StrategyBlueprintID, StrategyExactName, StrategyFuzzyName}

// Confidence assigned by the deterministic strategies.
const (
	ConfidenceDirectID    = 1.0
	ConfidenceBlueprintID = 0.95
	ConfidenceExactName   = 0.9
)

// DefaultFuzzyThreshold is the minimum similarity accepted by the fuzzy strategy.
const DefaultFuzzyThreshold = 0.8

// UnsyncedReason classifies why a deployment could not be linked to a catalog item.
type UnsyncedReason string

const (
	// ReasonMissingCatalogReferences means the deployment carries no catalog item id, blueprint id or catalog item name.
	ReasonMissingCatalogReferences UnsyncedReason = "missing_catalog_references"
	// ReasonCatalogItemDeleted means the referenced catalog item id no longer exists.
	ReasonCatalogItemDeleted UnsyncedReason = "catalog_item_deleted"
	// ReasonBlueprintDeleted means the referenced blueprint is no longer published by any catalog item.
	ReasonBlueprintDeleted UnsyncedReason = "blueprint_deleted"
	// ReasonCatalogNameMismatch means a catalog item name was present but matched nothing.
	ReasonCatalogNameMismatch UnsyncedReason = "catalog_name_mismatch"
	// ReasonExternalCreation means the deployment was likely created outside the catalog workflow.
	ReasonExternalCreation UnsyncedReason = "external_creation"
)

// Reasons lists every unsynced reason in classification priority order.
var Reasons = []UnsyncedReason{
	ReasonMissingCatalogReferences,
	ReasonCatalogItemDeleted,
	ReasonBlueprintDeleted,
	ReasonCatalogNameMismatch,
	ReasonExternalCreation,
}

// ParseReason converts s into an UnsyncedReason.
func ParseReason(s string) (UnsyncedReason, bool) {
	for _, r := range Reasons {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// MatchResult is the reconciliation outcome for a single deployment.
type MatchResult struct {
	// DeploymentID is the id of the reconciled deployment.
	DeploymentID string `json:"deployment_id"`

	// MatchedCatalogItemID is the id of the originating catalog item, nil when unsynced.
	MatchedCatalogItemID *string `json:"matched_catalog_item_id"`

	// Strategy is the heuristic that produced the match.
	Strategy Strategy `json:"strategy"`

	// Confidence ranks the match between 0.0 and 1.0.
	Confidence float64 `json:"confidence"`

	// UnsyncedReason is populated iff MatchedCatalogItemID is nil.
	UnsyncedReason *UnsyncedReason `json:"unsynced_reason"`
}

// Matched reports whether the deployment was linked to a catalog item.
func (r MatchResult) Matched() bool {
	return r.MatchedCatalogItemID != nil
}

// CatalogItemID returns the matched catalog item id, or "" when unsynced.
func (r MatchResult) CatalogItemID() string {
	if r.MatchedCatalogItemID == nil {
		return ""
	}
	return *r.MatchedCatalogItemID
}

// Reason returns the unsynced reason, or "" when matched.
func (r MatchResult) Reason() UnsyncedReason {
	if r.UnsyncedReason == nil {
		return ""
	}
	return *r.UnsyncedReason
}
