package report

import (
	"catalog-insights/core/apperror"
	"catalog-insights/core/reconcile"
	"catalog-insights/core/resources"
)

// ValidateOptions checks report options against their validate tags. The
// builders call it first; callers that load data before building call it
// before loading so bad input never costs an upstream round trip.
func ValidateOptions(opts any) error {
	return apperror.Validate(opts)
}

// matcherOrEmpty treats a nil matcher as one over an empty catalog.
func matcherOrEmpty(m *reconcile.Matcher) *reconcile.Matcher {
	if m == nil {
		return reconcile.NewMatcher(nil)
	}
	return m
}

// aggregationOptions applies the report's mode onto the shared aggregation settings.
func aggregationOptions(base resources.Options, detailed bool) resources.Options {
	base.Mode = resources.ModeFor(detailed)
	return base
}
