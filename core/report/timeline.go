package report

import (
	"fmt"
	"sort"
	"time"

	"catalog-insights/core/models"
	"catalog-insights/core/reconcile"
	"catalog-insights/core/utils"
)

// Timeline grouping periods.
const (
	GroupByDay   = "day"
	GroupByWeek  = "week"
	GroupByMonth = "month"
	GroupByYear  = "year"
)

// Trend directions.
const (
	TrendIncreasing       = "increasing"
	TrendDecreasing       = "decreasing"
	TrendStable           = "stable"
	TrendInsufficientData = "insufficient_data"
)

// trendDeadband is the percentage change below which a trend is stable.
const trendDeadband = 5.0

// TimelineOptions parameterizes BuildTimeline.
type TimelineOptions struct {
	DaysBack int    `json:"days_back" validate:"min=1,max=365"`
	GroupBy  string `json:"group_by" validate:"oneof=day week month year"`

	// Now anchors the window. Zero means time.Now().
	Now time.Time `json:"-"`
}

// TimelineBucket aggregates the deployments created in one period.
type TimelineBucket struct {
	Period             string    `json:"period"`
	Start              time.Time `json:"start"`
	Total              int       `json:"total"`
	Successful         int       `json:"successful"`
	Failed             int       `json:"failed"`
	InProgress         int       `json:"in_progress"`
	UniqueCatalogItems int       `json:"unique_catalog_items"`
	UniqueProjects     int       `json:"unique_projects"`
}

// Trend compares the two halves of the window.
type Trend struct {
	Direction  string `json:"direction"`
	FirstHalf  int    `json:"first_half"`
	SecondHalf int    `json:"second_half"`

	// ChangePercent is nil when the first half is empty.
	ChangePercent *float64 `json:"change_percent"`
}

// Peak is the busiest period of the window.
type Peak struct {
	Period string `json:"period"`
	Total  int    `json:"total"`
}

// TimelineSummary totals the window.
type TimelineSummary struct {
	TotalDeployments int       `json:"total_deployments"`
	Successful       int       `json:"successful"`
	Failed           int       `json:"failed"`
	InProgress       int       `json:"in_progress"`
	SuccessRate      float64   `json:"success_rate"`
	DaysBack         int       `json:"days_back"`
	GroupBy          string    `json:"group_by"`
	RangeStart       time.Time `json:"range_start"`
	RangeEnd         time.Time `json:"range_end"`
}

// TimelineReport is the deployment activity over a time window.
type TimelineReport struct {
	Summary TimelineSummary  `json:"summary"`
	Buckets []TimelineBucket `json:"buckets"`
	Trend   Trend            `json:"trend"`

	// Peak is nil when the window holds no deployments.
	Peak *Peak `json:"peak"`
}

type bucketAcc struct {
	bucket   TimelineBucket
	items    map[string]struct{}
	projects map[string]struct{}
}

// BuildTimeline buckets the deployments created within the last DaysBack
// days by period and derives the trend and peak of the window.
func BuildTimeline(deployments []models.Deployment, matcher *reconcile.Matcher, opts TimelineOptions) (*TimelineReport, error) {
	if err := ValidateOptions(opts); err != nil {
		return nil, err
	}
	matcher = matcherOrEmpty(matcher)

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()
	window := time.Duration(opts.DaysBack) * 24 * time.Hour
	start := now.Add(-window)
	mid := now.Add(-window / 2)

	report := &TimelineReport{
		Summary: TimelineSummary{
			DaysBack:   opts.DaysBack,
			GroupBy:    opts.GroupBy,
			RangeStart: start,
			RangeEnd:   now,
		},
		Buckets: []TimelineBucket{},
	}

	accs := make(map[string]*bucketAcc)
	for _, d := range deployments {
		created := d.CreatedAt.UTC()
		if created.Before(start) || created.After(now) {
			continue
		}

		key, periodStart := periodOf(created, opts.GroupBy)
		acc, ok := accs[key]
		if !ok {
			acc = &bucketAcc{
				bucket:   TimelineBucket{Period: key, Start: periodStart},
				items:    make(map[string]struct{}),
				projects: make(map[string]struct{}),
			}
			accs[key] = acc
		}

		acc.bucket.Total++
		report.Summary.TotalDeployments++
		switch {
		case models.IsSuccessful(d.Status):
			acc.bucket.Successful++
			report.Summary.Successful++
		case models.IsFailed(d.Status):
			acc.bucket.Failed++
			report.Summary.Failed++
		case models.IsInProgress(d.Status):
			acc.bucket.InProgress++
			report.Summary.InProgress++
		}

		if res := matcher.Match(d); res.Matched() {
			acc.items[res.CatalogItemID()] = struct{}{}
		}
		if d.ProjectID != "" {
			acc.projects[d.ProjectID] = struct{}{}
		}

		if created.Before(mid) {
			report.Trend.FirstHalf++
		} else {
			report.Trend.SecondHalf++
		}
	}

	for _, acc := range accs {
		acc.bucket.UniqueCatalogItems = len(acc.items)
		acc.bucket.UniqueProjects = len(acc.projects)
		report.Buckets = append(report.Buckets, acc.bucket)
	}
	sort.Slice(report.Buckets, func(i, j int) bool {
		return report.Buckets[i].Start.Before(report.Buckets[j].Start)
	})

	report.Summary.SuccessRate = utils.Percent(report.Summary.Successful, report.Summary.TotalDeployments)
	report.Trend.Direction, report.Trend.ChangePercent = trendOf(report.Trend.FirstHalf, report.Trend.SecondHalf)

	for _, b := range report.Buckets {
		if report.Peak == nil || b.Total > report.Peak.Total {
			report.Peak = &Peak{Period: b.Period, Total: b.Total}
		}
	}

	return report, nil
}

// periodOf returns the bucket key and the start of the period t falls in.
func periodOf(t time.Time, groupBy string) (string, time.Time) {
	switch groupBy {
	case GroupByWeek:
		year, week := t.ISOWeek()
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		offset := (int(day.Weekday()) + 6) % 7
		return fmt.Sprintf("%04d-W%02d", year, week), day.AddDate(0, 0, -offset)
	case GroupByMonth:
		s := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		return s.Format("2006-01"), s
	case GroupByYear:
		s := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return s.Format("2006"), s
	default:
		s := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return s.Format("2006-01-02"), s
	}
}

func trendOf(first, second int) (string, *float64) {
	if first == 0 {
		return TrendInsufficientData, nil
	}

	change := utils.Round2(float64(second-first) / float64(first) * 100)
	switch {
	case change > trendDeadband:
		return TrendIncreasing, &change
	case change < -trendDeadband:
		return TrendDecreasing, &change
	default:
		return TrendStable, &change
	}
}
