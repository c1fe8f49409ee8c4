package bundle

import (
	"testing"
	"time"

	"catalog-insights/core/models"
	"catalog-insights/core/reconcile"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)

func testMatcher() *reconcile.Matcher {
	return reconcile.NewMatcher(reconcile.NewIndex([]models.CatalogItem{
		{ID: "c-1", Name: "Ubuntu 22.04 (LTS)"},
		{ID: "c-2", Name: "Windows Server", BlueprintID: models.Ptr("bp-win")},
		{ID: "c-3", Name: "Idle Item"},
	}))
}

func testDeployments() []models.Deployment {
	return []models.Deployment{
		{ID: "d3", CatalogItemID: models.Ptr("c-1"), CreatedAt: base.Add(2 * time.Hour), ResourceCount: models.Ptr(2)},
		{ID: "d1", CatalogItemID: models.Ptr("c-1"), CreatedAt: base, ResourceCount: models.Ptr(4)},
		{ID: "d2", BlueprintID: models.Ptr("bp-win"), CreatedAt: base},
		{ID: "d4", CatalogItemID: models.Ptr("gone"), CreatedAt: base.Add(time.Hour)},
		{ID: "d0", Name: "zz-9", CreatedAt: base.Add(time.Hour)},
		{ID: "d5", CatalogItemID: models.Ptr("c-1"), CreatedAt: base, ResourceCount: models.Ptr(1)},
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "Ubuntu_22_04__LTS__c_1", Key(models.CatalogItem{ID: "c-1", Name: "Ubuntu 22.04 (LTS)"}))
	assert.Equal(t, "Caf___x", Key(models.CatalogItem{ID: "x", Name: "Café "}))
	assert.Equal(t, "_abc", Key(models.CatalogItem{ID: "abc"}))
}

func TestGroup_Partition(t *testing.T) {
	deps := testDeployments()
	out := Group(deps, testMatcher(), true)

	require.Len(t, out.Bundles, 2)
	assert.Equal(t, "Ubuntu_22_04__LTS__c_1", out.Bundles[0].Key)
	assert.Equal(t, "Windows_Server_c_2", out.Bundles[1].Key)

	ubuntu := out.Bundles[0]
	assert.Equal(t, 3, ubuntu.DeploymentCount)
	assert.Equal(t, 7, ubuntu.ResourceCount)
	ids := []string{}
	for _, d := range ubuntu.Deployments {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"d1", "d5", "d3"}, ids)

	require.NotNil(t, out.Unsynced)
	assert.Equal(t, 2, out.Unsynced.DeploymentCount)
	assert.Equal(t, "d0", out.Unsynced.Deployments[0].ID)
	assert.Equal(t, reconcile.ReasonMissingCatalogReferences, out.Unsynced.Deployments[0].UnsyncedReason)
	assert.Equal(t, reconcile.ReasonCatalogItemDeleted, out.Unsynced.Deployments[1].UnsyncedReason)

	total := out.Unsynced.DeploymentCount
	seen := map[string]int{}
	for _, b := range out.Bundles {
		total += b.DeploymentCount
		for _, d := range b.Deployments {
			seen[d.ID]++
		}
	}
	for _, d := range out.Unsynced.Deployments {
		seen[d.ID]++
	}
	assert.Equal(t, len(deps), total)
	for _, d := range deps {
		assert.Equal(t, 1, seen[d.ID], d.ID)
	}

	assert.Equal(t, 2, out.Summary.TotalCatalogItems)
	assert.Equal(t, 6, out.Summary.TotalDeployments)
	assert.Equal(t, 4, out.Summary.CatalogLinked)
	assert.Equal(t, 2, out.Summary.Unlinked)
	assert.Equal(t, 7, out.Summary.TotalResources)
	assert.Equal(t, 2.0, out.Summary.AvgDeploymentsPerActiveItem)
}

func TestGroup_ExcludeUnsynced(t *testing.T) {
	out := Group(testDeployments(), testMatcher(), false)
	assert.Nil(t, out.Unsynced)
	assert.Equal(t, 2, out.Summary.Unlinked)
}

func TestGroup_Idempotent(t *testing.T) {
	m := testMatcher()
	first, err := json.Marshal(Group(testDeployments(), m, true))
	require.NoError(t, err)

	reversed := testDeployments()
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	for i := 0; i < 3; i++ {
		again, err := json.Marshal(Group(testDeployments(), m, true))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}

	shuffled, err := json.Marshal(Group(reversed, m, true))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(shuffled))
}

func TestGroup_Empty(t *testing.T) {
	out := Group(nil, nil, true)
	assert.Empty(t, out.Bundles)
	require.NotNil(t, out.Unsynced)
	assert.Equal(t, 0, out.Unsynced.DeploymentCount)
	assert.Equal(t, 0, out.Summary.TotalDeployments)
	assert.Equal(t, 0.0, out.Summary.AvgDeploymentsPerActiveItem)
}

func TestGroup_CollidingKeys(t *testing.T) {
	m := reconcile.NewMatcher(reconcile.NewIndex([]models.CatalogItem{
		{ID: "a_1", Name: "Web"},
		{ID: "a-1", Name: "Web"},
		{ID: "deployments", Name: "unsynced"},
	}))
	deps := []models.Deployment{
		{ID: "d1", CatalogItemID: models.Ptr("a-1")},
		{ID: "d2", CatalogItemID: models.Ptr("a_1")},
		{ID: "d3", CatalogItemID: models.Ptr("deployments")},
		{ID: "d4"},
	}

	out := Group(deps, m, true)
	require.Len(t, out.Bundles, 3)

	keys := map[string]string{}
	for _, b := range out.Bundles {
		keys[b.CatalogItem.ID] = b.Key
	}
	assert.Equal(t, "Web_a_1", keys["a-1"])
	assert.Equal(t, "Web_a_1_2", keys["a_1"])
	assert.Equal(t, "unsynced_deployments_2", keys["deployments"])
	assert.Equal(t, UnsyncedKey, out.Unsynced.Key)

	again := Group(deps, m, true)
	for i := range out.Bundles {
		assert.Equal(t, out.Bundles[i].Key, again.Bundles[i].Key)
	}
}
