// Package statistics contains the period statistics use cases.
package statistics

import (
	"fmt"
	"time"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

// DateLayout is the wire format of date query parameters.
const DateLayout = "2006-01-02"

// ParseDate parses an optional YYYY-MM-DD parameter. An empty string yields nil.
func ParseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, raw, time.UTC)
	if err != nil {
		return nil, domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidDateFormat,
			fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", raw),
			domainerror.ErrInvalidDateFormat,
		)
	}
	return &t, nil
}

// ResolveRange turns optional bounds into a whole-day period. Missing bounds
// default to the calendar month of now (no start) and to now (no end).
func ResolveRange(start, end *time.Time, now time.Time) (entity.Period, error) {
	month := entity.MonthPeriod(now)

	from := month.Start
	to := now.UTC()
	switch {
	case start == nil && end == nil:
		to = month.End
	case start == nil:
		from = entity.FirstOfMonth(*end)
		to = *end
	case end == nil:
		from = *start
		if from.After(to) {
			to = from
		}
	default:
		from, to = *start, *end
	}

	if to.Before(from) {
		return entity.Period{}, domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidDateRange,
			"end date must not be before start date",
			domainerror.ErrInvalidDateRange,
		)
	}

	return entity.DayPeriod(from, to), nil
}

// ValidateType rejects unknown transaction type filters. Nil means all types.
func ValidateType(txType *entity.TransactionType) error {
	if txType != nil && !txType.IsValid() {
		return domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidStatisticsType,
			"type must be income or expense",
			domainerror.ErrInvalidStatisticsType,
		)
	}
	return nil
}

// GeneratePeriodLabel renders a human-readable label for a period.
func GeneratePeriodLabel(period entity.Period) string {
	start, end := period.Start, period.End
	if start.Year() == end.Year() && start.Month() == end.Month() {
		if start.Day() == 1 && entity.MonthPeriod(start).End.Equal(end) {
			return period.MonthLabel()
		}
		return fmt.Sprintf("%d-%d %s", start.Day(), end.Day(), start.Format("Jan 2006"))
	}
	return fmt.Sprintf("%s - %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
}

func queryFailed(err error) error {
	return domainerror.NewStatisticsError(
		domainerror.ErrCodeStatisticsQueryFailed,
		"failed to load transactions",
		err,
	)
}
