// Package reconcile links provisioned deployments back to the catalog items
// that produced them.
//
// # Architecture
//
// The reconcile system consists of three components:
//
// 1. Index: O(1) lookup structures (by id, by blueprint id, by normalized
//    name) over one immutable catalog item snapshot.
//
// 2. Matcher: runs a fixed-priority strategy cascade against an Index and
//    classifies every deployment it cannot link with an UnsyncedReason.
//
// 3. Registry: an explicitly owned, TTL-bounded holder of the current Index
//    with stampede protection and an Invalidate call. There is no package
//    level cache.
//
// # Strategies
//
//   - direct_id: the deployment's catalog item id exists in the index (1.0)
//   - blueprint_id: the deployment's blueprint id is published by an item (0.95)
//   - exact_name: the normalized name maps to exactly one item (0.9)
//   - fuzzy_name: the most similar item name scores at least 0.8 (score)
//
// Name matching uses the global name index. Two projects sharing a catalog
// item display name can therefore produce cross-project name matches.
//
// # Usage Example
//
//	idx := reconcile.NewIndex(items)
//	m := reconcile.NewMatcher(idx)
//	for _, r := range m.MatchAll(deployments) {
//	    fmt.Println(r.DeploymentID, r.Strategy, r.CatalogItemID())
//	}
package reconcile
