// Package valueobject contains immutable value types shared across use cases.
package valueobject

import (
	"fmt"
	"time"
)

// Granularity is the bucket size of a statistics time series.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
	GranularityYearly  Granularity = "yearly"
)

// ParseGranularity validates a raw period parameter. An empty value means daily.
func ParseGranularity(raw string) (Granularity, bool) {
	switch g := Granularity(raw); g {
	case "":
		return GranularityDaily, true
	case GranularityDaily, GranularityWeekly, GranularityMonthly, GranularityYearly:
		return g, true
	}
	return "", false
}

// BucketKey returns the series key of t. Keys sort lexically in chronological order:
// daily "2006-01-02", weekly "2006-WW" (Sunday-based week of year, 00-53),
// monthly "2006-01", yearly "2006".
func (g Granularity) BucketKey(t time.Time) string {
	t = t.UTC()
	switch g {
	case GranularityWeekly:
		return fmt.Sprintf("%04d-%02d", t.Year(), SundayWeekNumber(t))
	case GranularityMonthly:
		return t.Format("2006-01")
	case GranularityYearly:
		return t.Format("2006")
	default:
		return t.Format("2006-01-02")
	}
}

// SundayWeekNumber is the week of the year with Sunday as the first day of the
// week. Days before the year's first Sunday are in week 0.
func SundayWeekNumber(t time.Time) int {
	yday := t.YearDay() - 1
	return (yday + 7 - int(t.Weekday())) / 7
}
