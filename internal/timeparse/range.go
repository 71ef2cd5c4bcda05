package timeparse

import (
	"strings"
	"time"
)

// DateRange bounds a query; either side may be nil for unbounded.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// RangeFlags mirrors the CLI's date shortcut flags plus any explicit
// bounds already parsed by the caller.
type RangeFlags struct {
	Today     bool
	Yesterday bool
	Week      bool
	Month     bool
	From      *time.Time
	To        *time.Time
}

// ResolveRange turns shortcut flags into a concrete range. Explicit
// bounds take absolute precedence and shortcuts are then ignored;
// otherwise precedence is today > yesterday > week > month. No input
// resolves to an unbounded range.
func ResolveRange(flags RangeFlags, weekStart time.Weekday, reference time.Time) DateRange {
	if flags.From != nil || flags.To != nil {
		return DateRange{From: flags.From, To: flags.To}
	}

	ref := reference.UTC()

	switch {
	case flags.Today:
		from := StartOfDay(ref)
		to := EndOfDay(ref)
		return DateRange{From: &from, To: &to}

	case flags.Yesterday:
		yesterday := ref.AddDate(0, 0, -1)
		from := StartOfDay(yesterday)
		to := EndOfDay(yesterday)
		return DateRange{From: &from, To: &to}

	case flags.Week:
		// The most recent week-start day at or before the reference;
		// the reference's own midnight when the weekdays match.
		daysBack := int(ref.Weekday()) - int(weekStart)
		if daysBack < 0 {
			daysBack += 7
		}
		from := StartOfDay(ref).AddDate(0, 0, -daysBack)
		to := ref
		return DateRange{From: &from, To: &to}

	case flags.Month:
		from := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
		to := ref
		return DateRange{From: &from, To: &to}
	}

	return DateRange{}
}

// ParseWeekday maps a lowercase weekday name onto time.Weekday,
// defaulting to Monday for anything unrecognized.
func ParseWeekday(name string) time.Weekday {
	if wd, ok := weekdays[strings.ToLower(name)]; ok {
		return wd
	}
	return time.Monday
}
