package platform

import (
	"strings"
	"time"

	"catalog-insights/core/models"
	"catalog-insights/core/utils"

	"github.com/shopspring/decimal"
)

// page is the envelope of every paginated platform listing.
type page[T any] struct {
	Content       []T  `json:"content"`
	Number        int  `json:"number"`
	TotalPages    int  `json:"totalPages"`
	TotalElements int  `json:"totalElements"`
	Last          bool `json:"last"`
}

type catalogTypeDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type catalogItemDTO struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Status     string         `json:"status"`
	Version    string         `json:"version"`
	Type       catalogTypeDTO `json:"type"`
	SourceID   string         `json:"sourceId"`
	ProjectIDs []string       `json:"projectIds"`
}

func (d catalogItemDTO) model() models.CatalogItem {
	item := models.CatalogItem{
		ID:         d.ID,
		Name:       d.Name,
		Type:       catalogType(d.Type.ID, d.Type.Name),
		Status:     d.Status,
		Version:    d.Version,
		ProjectIDs: d.ProjectIDs,
	}
	if d.SourceID != "" && item.Type == models.CatalogTypeBlueprint {
		item.BlueprintID = models.Ptr(d.SourceID)
	}
	return item
}

// catalogType maps the platform's type identifier, e.g. "com.vmw.blueprint", to a short type.
func catalogType(id, name string) string {
	switch {
	case id == "" && name == "":
		return ""
	case hasSuffixFold(id, "blueprint") || hasSuffixFold(name, "blueprint"):
		return models.CatalogTypeBlueprint
	case hasSuffixFold(id, "workflow") || hasSuffixFold(name, "workflow"):
		return models.CatalogTypeWorkflow
	case name != "":
		return name
	default:
		return id
	}
}

type expenseDTO struct {
	TotalCost *decimal.Decimal `json:"totalCost"`
}

type deploymentDTO struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Status          string         `json:"status"`
	ProjectID       string         `json:"projectId"`
	CreatedAt       time.Time      `json:"createdAt"`
	CatalogItemID   *string        `json:"catalogItemId"`
	BlueprintID     *string        `json:"blueprintId"`
	CatalogItemName *string        `json:"catalogItemName"`
	Inputs          map[string]any `json:"inputs"`
	Expense         *expenseDTO    `json:"expense"`
	// ResourceCount arrives as a number or a numeric string depending on the platform version.
	ResourceCount any `json:"resourceCount"`
}

func (d deploymentDTO) model() models.Deployment {
	dep := models.Deployment{
		ID:              d.ID,
		Name:            d.Name,
		Status:          d.Status,
		ProjectID:       d.ProjectID,
		CreatedAt:       d.CreatedAt,
		CatalogItemID:   d.CatalogItemID,
		BlueprintID:     d.BlueprintID,
		CatalogItemName: d.CatalogItemName,
		Inputs:          d.Inputs,
	}
	if n, ok := utils.ToInt(d.ResourceCount); ok {
		dep.ResourceCount = &n
	}
	if d.Expense != nil && d.Expense.TotalCost != nil {
		dep.Expense = &models.Expense{Total: d.Expense.TotalCost}
	}
	return dep
}

type resourceDTO struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Type         string         `json:"type"`
	DeploymentID string         `json:"deploymentId"`
	SyncStatus   string         `json:"syncStatus"`
	Properties   map[string]any `json:"properties"`
}

func (d resourceDTO) model(deploymentID string) models.Resource {
	r := models.Resource{
		ID:           d.ID,
		Name:         d.Name,
		Type:         d.Type,
		DeploymentID: d.DeploymentID,
		Status:       d.SyncStatus,
		Properties:   d.Properties,
	}
	if r.DeploymentID == "" {
		r.DeploymentID = deploymentID
	}
	return r
}

// DeploymentRequest is the body of a catalog item request.
type DeploymentRequest struct {
	DeploymentName string         `json:"deploymentName" validate:"required"`
	ProjectID      string         `json:"projectId" validate:"required"`
	Version        string         `json:"version,omitempty"`
	Reason         string         `json:"reason,omitempty"`
	Inputs         map[string]any `json:"inputs,omitempty"`
}

// DeploymentRequestResult is the platform's answer to a catalog item request.
type DeploymentRequestResult struct {
	DeploymentID   string `json:"deploymentId"`
	DeploymentName string `json:"deploymentName"`
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}
