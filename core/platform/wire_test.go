package platform

import (
	"testing"

	"catalog-insights/core/models"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogType(t *testing.T) {
	tests := []struct {
		id, name string
		want     string
	}{
		{"com.vmw.blueprint", "", models.CatalogTypeBlueprint},
		{"", "VMware Cloud Templates Blueprint", models.CatalogTypeBlueprint},
		{"com.vmw.vro.workflow", "", models.CatalogTypeWorkflow},
		{"com.vmw.saltstack", "SaltStack", "SaltStack"},
		{"com.vmw.abx", "", "com.vmw.abx"},
		{"", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, catalogType(tt.id, tt.name), tt.id+"|"+tt.name)
	}
}

func TestResourceDTO_DefaultsDeploymentID(t *testing.T) {
	r := resourceDTO{ID: "r1"}.model("d1")
	assert.Equal(t, "d1", r.DeploymentID)

	r = resourceDTO{ID: "r1", DeploymentID: "d2"}.model("d1")
	assert.Equal(t, "d2", r.DeploymentID)
}

func TestDeploymentDTO_ResourceCount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *int
	}{
		{"number", `{"id":"d1","resourceCount":3}`, models.Ptr(3)},
		{"numeric string", `{"id":"d1","resourceCount":"7"}`, models.Ptr(7)},
		{"garbage", `{"id":"d1","resourceCount":"n/a"}`, nil},
		{"absent", `{"id":"d1"}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dto deploymentDTO
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &dto))
			assert.Equal(t, tt.want, dto.model().ResourceCount)
		})
	}
}
