package reconcile

import (
	"sort"
	"strings"
	"unicode"

	"catalog-insights/core/models"
)

// Index holds O(1) lookup structures over an immutable catalog item snapshot.
// It is never mutated after NewIndex returns and may be shared across goroutines.
type Index struct {
	items            []models.CatalogItem
	byID             map[string]models.CatalogItem
	byBlueprintID    map[string]models.CatalogItem
	byNormalizedName map[string][]models.CatalogItem
}

// NewIndex builds an index over items. Items are copied and ordered by id so
// every scan over the index is deterministic. Duplicate ids keep the first item.
func NewIndex(items []models.CatalogItem) *Index {
	sorted := make([]models.CatalogItem, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		sorted = append(sorted, item)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	idx := &Index{
		items:            sorted,
		byID:             make(map[string]models.CatalogItem, len(sorted)),
		byBlueprintID:    make(map[string]models.CatalogItem),
		byNormalizedName: make(map[string][]models.CatalogItem, len(sorted)),
	}

	for _, item := range sorted {
		idx.byID[item.ID] = item

		if models.Present(item.BlueprintID) {
			bp := strings.TrimSpace(*item.BlueprintID)
			if _, exists := idx.byBlueprintID[bp]; !exists {
				idx.byBlueprintID[bp] = item
			}
		}

		if key := Normalize(item.Name); key != "" {
			idx.byNormalizedName[key] = append(idx.byNormalizedName[key], item)
		}
	}

	return idx
}

// Items returns the indexed catalog items ordered by id.
func (idx *Index) Items() []models.CatalogItem {
	out := make([]models.CatalogItem, len(idx.items))
	copy(out, idx.items)
	return out
}

// Len returns the number of indexed catalog items.
func (idx *Index) Len() int {
	return len(idx.items)
}

// ByID looks up a catalog item by id.
func (idx *Index) ByID(id string) (models.CatalogItem, bool) {
	item, ok := idx.byID[id]
	return item, ok
}

// ByBlueprintID looks up the catalog item publishing blueprint id.
func (idx *Index) ByBlueprintID(id string) (models.CatalogItem, bool) {
	item, ok := idx.byBlueprintID[id]
	return item, ok
}

// ByName returns every catalog item whose normalized name equals Normalize(name).
func (idx *Index) ByName(name string) []models.CatalogItem {
	return idx.byNormalizedName[Normalize(name)]
}

// Collisions returns the normalized names shared by more than one catalog item, sorted.
func (idx *Index) Collisions() []string {
	var keys []string
	for key, items := range idx.byNormalizedName {
		if len(items) > 1 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Normalize lower-cases s, strips punctuation and collapses whitespace.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
