// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// Period is a closed date interval [Start, End].
type Period struct {
	Start time.Time
	End   time.Time
}

// MonthPeriod returns the calendar month containing t, in UTC, from the first
// instant of the first day to the last nanosecond of the last day.
func MonthPeriod(t time.Time) Period {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Period{
		Start: start,
		End:   start.AddDate(0, 1, 0).Add(-time.Nanosecond),
	}
}

// FirstOfMonth returns midnight UTC of the first day of t's month.
func FirstOfMonth(t time.Time) time.Time {
	return MonthPeriod(t).Start
}

// DayPeriod widens [from, to] to whole days: from 00:00 of from's day to the
// last nanosecond of to's day.
func DayPeriod(from, to time.Time) Period {
	from, to = from.UTC(), to.UTC()
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1).Add(-time.Nanosecond)
	return Period{Start: start, End: end}
}

// Days returns the number of calendar days covered by the period.
func (p Period) Days() int {
	start := time.Date(p.Start.Year(), p.Start.Month(), p.Start.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(p.End.Year(), p.End.Month(), p.End.Day(), 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours()/24) + 1
}

// Previous returns the period of equal length in days that ends the day
// before this one starts.
func (p Period) Previous() Period {
	days := p.Days()
	prevEnd := p.Start.AddDate(0, 0, -1)
	prevStart := prevEnd.AddDate(0, 0, -(days - 1))
	return DayPeriod(prevStart, prevEnd)
}

// PreviousMonth returns the calendar month before the one containing Start.
func (p Period) PreviousMonth() Period {
	return MonthPeriod(FirstOfMonth(p.Start).AddDate(0, -1, 0))
}

// Contains reports whether t falls inside the period, bounds included.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// MonthLabel renders the month of Start, e.g. "January 2026".
func (p Period) MonthLabel() string {
	return p.Start.Format("January 2006")
}
