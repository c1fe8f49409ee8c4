package resources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"catalog-insights/core/apperror"
	"catalog-insights/core/models"
	"catalog-insights/core/utils"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Defaults applied to zero Options fields.
const (
	DefaultConcurrency   = 10
	DefaultTimeout       = 30 * time.Second
	DefaultMaxAttempts   = 3
	DefaultRetryInterval = 250 * time.Millisecond
)

// Options controls an aggregation.
type Options struct {
	// Mode selects fast or detailed counting. Empty means fast.
	Mode Mode

	// Concurrency bounds the number of fetches in flight.
	Concurrency int

	// Timeout bounds each individual fetch attempt.
	Timeout time.Duration

	// MaxAttempts bounds the attempts per deployment, first call included.
	MaxAttempts int

	// RetryInterval is the initial backoff between attempts.
	RetryInterval time.Duration

	// Logger receives fetch failures. Nil disables logging.
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Mode == "" {
		o.Mode = ModeFast
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.RetryInterval <= 0 {
		o.RetryInterval = DefaultRetryInterval
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Aggregate computes resource statistics for deployments.
// Deployments sharing an id are counted once.
func Aggregate(ctx context.Context, deployments []models.Deployment, fetcher Fetcher, opts Options) (*Stats, error) {
	opts = opts.withDefaults()

	unique := dedupe(deployments)
	per := make(map[string]DeploymentResources, len(unique))

	switch opts.Mode {
	case ModeFast:
		for _, d := range unique {
			count := 0
			if d.ResourceCount != nil && *d.ResourceCount > 0 {
				count = *d.ResourceCount
			}
			per[d.ID] = DeploymentResources{DeploymentID: d.ID, Count: count, Available: true}
		}
	case ModeDetailed:
		if fetcher == nil {
			return nil, fmt.Errorf("detailed resource aggregation requires a fetcher")
		}
		fetched, err := fetchAll(ctx, unique, fetcher, opts)
		if err != nil {
			return nil, err
		}
		per = fetched
	default:
		return nil, apperror.NewValidationError("mode", opts.Mode, "must be one of [fast, detailed]")
	}

	return summarize(opts.Mode, per), nil
}

// fetchAll runs the detailed fan-out. Each worker writes only its own
// deployment's entry into the shared map, under mu.
func fetchAll(ctx context.Context, deployments []models.Deployment, fetcher Fetcher, opts Options) (map[string]DeploymentResources, error) {
	var (
		mu  sync.Mutex
		per = make(map[string]DeploymentResources, len(deployments))
		g   errgroup.Group
	)
	g.SetLimit(opts.Concurrency)

	for _, d := range deployments {
		if ctx.Err() != nil {
			break
		}

		id := d.ID
		g.Go(func() error {
			list, err := fetchWithRetry(ctx, fetcher, id, opts)

			entry := DeploymentResources{DeploymentID: id}
			if err != nil {
				if ctx.Err() == nil {
					opts.Logger.Warn("Resource fetch failed, marking deployment unavailable",
						zap.String("deployment_id", id),
						zap.Error(err),
					)
				}
			} else {
				entry.Available = true
				entry.Count = len(list)
				entry.Resources = list
				entry.Types = countTypes(list)
			}

			mu.Lock()
			per[id] = entry
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("resource aggregation cancelled: %w", err)
	}
	return per, nil
}

// fetchWithRetry calls fetcher with a per-attempt timeout and exponential backoff.
// Client errors other than throttling are not retried.
func fetchWithRetry(ctx context.Context, fetcher Fetcher, id string, opts Options) ([]models.Resource, error) {
	operation := func() ([]models.Resource, error) {
		attemptCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
		defer cancel()

		list, err := fetcher.FetchResources(attemptCtx, id)
		if err == nil {
			return list, nil
		}
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}

		var upstream *apperror.UpstreamError
		if errors.As(err, &upstream) && upstream.StatusCode >= 400 && upstream.StatusCode < 500 &&
			upstream.StatusCode != http.StatusTooManyRequests {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = opts.RetryInterval
	b.MaxInterval = 10 * opts.RetryInterval

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(opts.MaxAttempts)),
	)
}

func summarize(mode Mode, per map[string]DeploymentResources) *Stats {
	stats := &Stats{
		Mode:          mode,
		ByType:        []TypeCount{},
		PerDeployment: per,
	}

	typeTotals := make(map[string]int)
	available := 0
	for _, dr := range per {
		if !dr.Available {
			continue
		}
		available++
		stats.TotalResources += dr.Count
		for t, n := range dr.Types {
			typeTotals[t] += n
		}
	}

	for t, n := range typeTotals {
		stats.ByType = append(stats.ByType, TypeCount{
			Type:       t,
			Count:      n,
			Percentage: utils.Percent(n, stats.TotalResources),
		})
	}
	sort.Slice(stats.ByType, func(i, j int) bool {
		if stats.ByType[i].Count != stats.ByType[j].Count {
			return stats.ByType[i].Count > stats.ByType[j].Count
		}
		return stats.ByType[i].Type < stats.ByType[j].Type
	})

	stats.AverageResourcesPerDeployment = utils.Ratio(stats.TotalResources, available)

	if missing := stats.Unavailable(); len(missing) > 0 {
		stats.Warning = &PartialResultWarning{
			Message:       fmt.Sprintf("resource data unavailable for %d of %d deployments", len(missing), len(per)),
			DeploymentIDs: missing,
		}
	}

	return stats
}

func countTypes(list []models.Resource) map[string]int {
	types := make(map[string]int)
	for _, r := range list {
		t := r.Type
		if t == "" {
			t = UnknownType
		}
		types[t]++
	}
	return types
}

func dedupe(deployments []models.Deployment) []models.Deployment {
	seen := make(map[string]struct{}, len(deployments))
	out := make([]models.Deployment, 0, len(deployments))
	for _, d := range deployments {
		if _, ok := seen[d.ID]; ok {
			continue
		}
		seen[d.ID] = struct{}{}
		out = append(out, d)
	}
	return out
}
