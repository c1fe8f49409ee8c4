package reconcile

import (
	"context"

	"catalog-insights/core/models"
)

// CatalogLister loads the catalog item snapshot an index is built from.
// Implementations own pagination, authentication and retries.
type CatalogLister interface {
	ListCatalogItems(ctx context.Context) ([]models.CatalogItem, error)
}

// CatalogListerFunc adapts a function to the CatalogLister interface.
type CatalogListerFunc func(ctx context.Context) ([]models.CatalogItem, error)

// ListCatalogItems calls f.
func (f CatalogListerFunc) ListCatalogItems(ctx context.Context) ([]models.CatalogItem, error) {
	return f(ctx)
}
