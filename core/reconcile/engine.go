package reconcile

import (
	"strings"

	"catalog-insights/core/models"
)

// Matcher links deployments to the catalog items of one index snapshot.
// It holds no mutable state, so one Matcher may serve concurrent callers.
type Matcher struct {
	index          *Index
	fuzzyThreshold float64
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// WithFuzzyThreshold raises the minimum similarity accepted by the fuzzy
// strategy. Values below DefaultFuzzyThreshold or above 1 are ignored.
func WithFuzzyThreshold(threshold float64) MatcherOption {
	return func(m *Matcher) {
		if threshold >= DefaultFuzzyThreshold && threshold <= 1 {
			m.fuzzyThreshold = threshold
		}
	}
}

// NewMatcher creates a matcher over index. A nil index behaves as an empty catalog.
func NewMatcher(index *Index, opts ...MatcherOption) *Matcher {
	if index == nil {
		index = NewIndex(nil)
	}
	m := &Matcher{index: index, fuzzyThreshold: DefaultFuzzyThreshold}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Index returns the snapshot the matcher operates on.
func (m *Matcher) Index() *Index {
	return m.index
}

// Match determines the originating catalog item of d. Strategies run in
// priority order and the first success wins. Failing to match is a normal,
// classified outcome and never an error.
func (m *Matcher) Match(d models.Deployment) MatchResult {
	if !hasReferences(d) {
		return unsynced(d.ID, ReasonMissingCatalogReferences)
	}

	if models.Present(d.CatalogItemID) {
		if item, ok := m.index.ByID(strings.TrimSpace(*d.CatalogItemID)); ok {
			return matched(d.ID, item.ID, StrategyDirectID, ConfidenceDirectID)
		}
	}

	if models.Present(d.BlueprintID) {
		if item, ok := m.index.ByBlueprintID(strings.TrimSpace(*d.BlueprintID)); ok {
			return matched(d.ID, item.ID, StrategyBlueprintID, ConfidenceBlueprintID)
		}
	}

	key := Normalize(matchName(d))
	if key != "" {
		candidates := m.index.byNormalizedName[key]
		if len(candidates) == 1 {
			return matched(d.ID, candidates[0].ID, StrategyExactName, ConfidenceExactName)
		}

		if item, score, ok := m.fuzzy(key); ok {
			return matched(d.ID, item.ID, StrategyFuzzyName, score)
		}
	}

	return unsynced(d.ID, classify(d, key))
}

// MatchAll reconciles every deployment, returning one result per deployment in input order.
func (m *Matcher) MatchAll(deployments []models.Deployment) []MatchResult {
	results := make([]MatchResult, len(deployments))
	for i, d := range deployments {
		results[i] = m.Match(d)
	}
	return results
}

// fuzzy returns the most similar catalog item to key. Items whose normalized
// name equals key are skipped: reaching this point with such items means the
// name is ambiguous, and ambiguity is never resolved by similarity.
// Ties keep the lowest catalog item id.
func (m *Matcher) fuzzy(key string) (models.CatalogItem, float64, bool) {
	var (
		best      models.CatalogItem
		bestScore float64
		found     bool
	)

	for _, item := range m.index.items {
		name := Normalize(item.Name)
		if name == key {
			continue
		}
		score := Similarity(key, name)
		if score > bestScore {
			best, bestScore, found = item, score, true
		}
	}

	if !found || bestScore < m.fuzzyThreshold {
		return models.CatalogItem{}, 0, false
	}
	return best, bestScore, true
}

// hasReferences reports whether the deployment carries any catalog reference.
// A deployment without one is never linked by its own name.
func hasReferences(d models.Deployment) bool {
	return models.Present(d.CatalogItemID) || models.Present(d.BlueprintID) || models.Present(d.CatalogItemName)
}

// matchName is the name used by the name strategies: the catalog item name
// recorded on the deployment, or the deployment name when only a stale id
// or blueprint id is present.
func matchName(d models.Deployment) string {
	if models.Present(d.CatalogItemName) {
		return *d.CatalogItemName
	}
	return d.Name
}

// classify explains why no strategy matched. key is the normalized name the
// name strategies used.
func classify(d models.Deployment, key string) UnsyncedReason {
	hasItemID := models.Present(d.CatalogItemID)
	hasBlueprintID := models.Present(d.BlueprintID)
	hasItemName := models.Present(d.CatalogItemName)

	switch {
	case !hasItemID && !hasBlueprintID && !hasItemName:
		return ReasonMissingCatalogReferences
	case hasItemID:
		return ReasonCatalogItemDeleted
	case hasBlueprintID:
		return ReasonBlueprintDeleted
	case hasItemName && key != "":
		return ReasonCatalogNameMismatch
	default:
		return ReasonExternalCreation
	}
}

func unsynced(deploymentID string, reason UnsyncedReason) MatchResult {
	return MatchResult{
		DeploymentID:   deploymentID,
		Strategy:       StrategyNone,
		UnsyncedReason: &reason,
	}
}

func matched(deploymentID, catalogItemID string, strategy Strategy, confidence float64) MatchResult {
	id := catalogItemID
	return MatchResult{
		DeploymentID:         deploymentID,
		MatchedCatalogItemID: &id,
		Strategy:             strategy,
		Confidence:           confidence,
	}
}
