package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Catalog item types published by the platform.
const (
	CatalogTypeBlueprint = "blueprint"
	CatalogTypeWorkflow  = "workflow"
)

// CatalogItem is a publishable, deployable definition offered for self-service request.
type CatalogItem struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Status  string `json:"status,omitempty"`
	Version string `json:"version,omitempty"`
	// BlueprintID is the source blueprint of blueprint-backed items.
	BlueprintID *string `json:"blueprint_id,omitempty"`
	// ProjectIDs lists the projects the item is shared with.
	ProjectIDs []string `json:"project_ids,omitempty"`
}

// Expense holds the cost information attached to a deployment.
type Expense struct {
	Total *decimal.Decimal `json:"total,omitempty"`
}

// Deployment is an instantiated set of provisioned resources.
type Deployment struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	ProjectID string    `json:"project_id"`
	CreatedAt time.Time `json:"created_at"`

	CatalogItemID   *string `json:"catalog_item_id,omitempty"`
	BlueprintID     *string `json:"blueprint_id,omitempty"`
	CatalogItemName *string `json:"catalog_item_name,omitempty"`

	Inputs  map[string]any `json:"inputs,omitempty"`
	Expense *Expense       `json:"expense,omitempty"`

	// ResourceCount is the cheap estimate supplied by the platform listing.
	ResourceCount *int `json:"resource_count,omitempty"`
}

// ExpenseTotal returns the deployment's total expense, or zero when absent.
func (d Deployment) ExpenseTotal() decimal.Decimal {
	if d.Expense == nil || d.Expense.Total == nil {
		return decimal.Zero
	}
	return *d.Expense.Total
}

// Resource is one infrastructure object belonging to a deployment.
type Resource struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Type         string         `json:"type"`
	DeploymentID string         `json:"deployment_id"`
	Status       string         `json:"status,omitempty"`
	Properties   map[string]any `json:"properties,omitempty"`
}

// IsSuccessful reports whether status ends in _SUCCESSFUL.
func IsSuccessful(status string) bool {
	return strings.HasSuffix(status, "_SUCCESSFUL")
}

// IsFailed reports whether status ends in _FAILED.
func IsFailed(status string) bool {
	return strings.HasSuffix(status, "_FAILED")
}

// IsInProgress reports whether status ends in _INPROGRESS.
func IsInProgress(status string) bool {
	return strings.HasSuffix(status, "_INPROGRESS")
}

// Present reports whether an optional string carries a non-blank value.
func Present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// Value dereferences an optional string, returning "" when absent.
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
