package reconcile

import (
	"testing"

	"catalog-insights/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []models.CatalogItem {
	return []models.CatalogItem{
		{ID: "c1", Name: "Ubuntu", Type: models.CatalogTypeBlueprint},
		{ID: "c2", Name: "Windows Server 2022", Type: models.CatalogTypeBlueprint, BlueprintID: models.Ptr("bp-win")},
		{ID: "c3", Name: "Ubuntu Server", Type: models.CatalogTypeBlueprint, BlueprintID: models.Ptr("bp-ubu")},
		{ID: "c4", Name: "Restart VM", Type: models.CatalogTypeWorkflow},
	}
}

// TestMatch_SpecExample covers the canonical direct/exact/deleted example.
func TestMatch_SpecExample(t *testing.T) {
	m := NewMatcher(NewIndex([]models.CatalogItem{{ID: "c1", Name: "Ubuntu"}}))

	r1 := m.Match(models.Deployment{ID: "d1", CatalogItemID: models.Ptr("c1")})
	assert.Equal(t, StrategyDirectID, r1.Strategy)
	assert.Equal(t, "c1", r1.CatalogItemID())
	assert.Equal(t, 1.0, r1.Confidence)
	assert.Nil(t, r1.UnsyncedReason)

	r2 := m.Match(models.Deployment{ID: "d2", CatalogItemName: models.Ptr("Ubuntu")})
	assert.Equal(t, StrategyExactName, r2.Strategy)
	assert.Equal(t, "c1", r2.CatalogItemID())
	assert.Equal(t, 0.9, r2.Confidence)

	r3 := m.Match(models.Deployment{ID: "d3", CatalogItemID: models.Ptr("missing")})
	assert.False(t, r3.Matched())
	assert.Equal(t, StrategyNone, r3.Strategy)
	require.NotNil(t, r3.UnsyncedReason)
	assert.Equal(t, ReasonCatalogItemDeleted, *r3.UnsyncedReason)
}

// TestMatch_DirectIDWins tests that a valid catalog item id wins regardless of names.
func TestMatch_DirectIDWins(t *testing.T) {
	m := NewMatcher(NewIndex(testCatalog()))

	r := m.Match(models.Deployment{
		ID:              "d1",
		Name:            "Windows Server 2022",
		CatalogItemID:   models.Ptr("c1"),
		BlueprintID:     models.Ptr("bp-win"),
		CatalogItemName: models.Ptr("Windows Server 2022"),
	})
	assert.Equal(t, StrategyDirectID, r.Strategy)
	assert.Equal(t, "c1", r.CatalogItemID())
}

func TestMatch_Cascade(t *testing.T) {
	m := NewMatcher(NewIndex(testCatalog()))

	tests := []struct {
		name       string
		deployment models.Deployment
		strategy   Strategy
		itemID     string
		reason     UnsyncedReason
	}{
		{
			name:       "blueprint id after deleted item id",
			deployment: models.Deployment{ID: "d", CatalogItemID: models.Ptr("gone"), BlueprintID: models.Ptr("bp-win")},
			strategy:   StrategyBlueprintID,
			itemID:     "c2",
		},
		{
			name:       "exact name is case and punctuation insensitive",
			deployment: models.Deployment{ID: "d", CatalogItemName: models.Ptr("  WINDOWS   server 2022! ")},
			strategy:   StrategyExactName,
			itemID:     "c2",
		},
		{
			name:       "deployment name used when catalog item name absent",
			deployment: models.Deployment{ID: "d", Name: "Restart VM", BlueprintID: models.Ptr("bp-gone")},
			strategy:   StrategyExactName,
			itemID:     "c4",
		},
		{
			name:       "fuzzy name",
			deployment: models.Deployment{ID: "d", CatalogItemName: models.Ptr("Ubuntu Servers")},
			strategy:   StrategyFuzzyName,
			itemID:     "c3",
		},
		{
			name:       "no references",
			deployment: models.Deployment{ID: "d", Name: "something unrelated"},
			strategy:   StrategyNone,
			reason:     ReasonMissingCatalogReferences,
		},
		{
			name:       "blueprint deleted",
			deployment: models.Deployment{ID: "d", BlueprintID: models.Ptr("bp-gone")},
			strategy:   StrategyNone,
			reason:     ReasonBlueprintDeleted,
		},
		{
			name:       "name mismatch",
			deployment: models.Deployment{ID: "d", CatalogItemName: models.Ptr("CentOS Stream")},
			strategy:   StrategyNone,
			reason:     ReasonCatalogNameMismatch,
		},
		{
			name:       "name without matchable characters",
			deployment: models.Deployment{ID: "d", CatalogItemName: models.Ptr("---")},
			strategy:   StrategyNone,
			reason:     ReasonExternalCreation,
		},
		{
			name:       "blank references count as absent",
			deployment: models.Deployment{ID: "d", CatalogItemID: models.Ptr(" "), BlueprintID: models.Ptr(""), CatalogItemName: models.Ptr("")},
			strategy:   StrategyNone,
			reason:     ReasonMissingCatalogReferences,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := m.Match(tt.deployment)
			assert.Equal(t, tt.strategy, r.Strategy)
			assert.Equal(t, tt.deployment.ID, r.DeploymentID)
			if tt.strategy == StrategyNone {
				assert.False(t, r.Matched())
				assert.Equal(t, tt.reason, r.Reason())
				assert.Equal(t, 0.0, r.Confidence)
				return
			}
			assert.Equal(t, tt.itemID, r.CatalogItemID())
			assert.Nil(t, r.UnsyncedReason)
		})
	}
}

// TestMatch_DeploymentNameNeedsReference tests that a deployment without any
// catalog reference stays unsynced even when its own name matches an item.
func TestMatch_DeploymentNameNeedsReference(t *testing.T) {
	m := NewMatcher(NewIndex([]models.CatalogItem{{ID: "c1", Name: "Ubuntu"}}))

	for _, name := range []string{"Ubuntu", "Ubuntuu"} {
		r := m.Match(models.Deployment{ID: "d", Name: name})
		assert.False(t, r.Matched(), name)
		assert.Equal(t, StrategyNone, r.Strategy, name)
		assert.Equal(t, ReasonMissingCatalogReferences, r.Reason(), name)
	}

	r := m.Match(models.Deployment{ID: "d", Name: "Ubuntuu", CatalogItemID: models.Ptr("stale")})
	assert.Equal(t, StrategyFuzzyName, r.Strategy)
	assert.Equal(t, "c1", r.CatalogItemID())
}

// TestMatch_NameCollision tests that ambiguous names are neither exact nor fuzzy matches.
func TestMatch_NameCollision(t *testing.T) {
	m := NewMatcher(NewIndex([]models.CatalogItem{
		{ID: "a", Name: "Ubuntu"},
		{ID: "b", Name: "ubuntu"},
	}))

	r := m.Match(models.Deployment{ID: "d", CatalogItemName: models.Ptr("Ubuntu")})
	assert.False(t, r.Matched())
	assert.Equal(t, ReasonCatalogNameMismatch, r.Reason())
	assert.Equal(t, []string{"ubuntu"}, m.Index().Collisions())
}

func TestMatch_FuzzyConfidenceFloor(t *testing.T) {
	m := NewMatcher(NewIndex(testCatalog()))

	names := []string{"Ubuntu Servers", "Windows Server 2019", "Restart VMs", "Ubunt", "Server Ubuntu", "Linux", "Win"}
	for _, name := range names {
		r := m.Match(models.Deployment{ID: name, CatalogItemName: models.Ptr(name)})
		if r.Strategy == StrategyFuzzyName {
			assert.GreaterOrEqual(t, r.Confidence, DefaultFuzzyThreshold, name)
			assert.LessOrEqual(t, r.Confidence, 1.0, name)
		}
	}
}

func TestWithFuzzyThreshold(t *testing.T) {
	idx := NewIndex(testCatalog())
	d := models.Deployment{ID: "d", CatalogItemName: models.Ptr("Ubuntu Servers")}

	strict := NewMatcher(idx, WithFuzzyThreshold(0.99))
	assert.False(t, strict.Match(d).Matched())

	// Thresholds below the floor are ignored.
	loose := NewMatcher(idx, WithFuzzyThreshold(0.1))
	assert.Equal(t, StrategyFuzzyName, loose.Match(d).Strategy)
	assert.False(t, loose.Match(models.Deployment{ID: "x", CatalogItemName: models.Ptr("CentOS")}).Matched())
}

func TestMatchAll_OneResultPerDeployment(t *testing.T) {
	m := NewMatcher(NewIndex(testCatalog()))
	deployments := []models.Deployment{
		{ID: "d1", CatalogItemID: models.Ptr("c1")},
		{ID: "d2"},
		{ID: "d3", BlueprintID: models.Ptr("bp-ubu")},
	}

	results := m.MatchAll(deployments)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, deployments[i].ID, r.DeploymentID)
		assert.Equal(t, r.Matched(), r.UnsyncedReason == nil)
	}
}

func TestNewMatcher_NilIndex(t *testing.T) {
	m := NewMatcher(nil)
	r := m.Match(models.Deployment{ID: "d", CatalogItemID: models.Ptr("c1")})
	assert.Equal(t, ReasonCatalogItemDeleted, r.Reason())
}

func TestParseReason(t *testing.T) {
	r, ok := ParseReason("blueprint_deleted")
	assert.True(t, ok)
	assert.Equal(t, ReasonBlueprintDeleted, r)

	_, ok = ParseReason("nope")
	assert.False(t, ok)
}
