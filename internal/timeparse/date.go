package timeparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/machielvdw/clokk/internal/core"
)

const dateHint = `Accepted formats: "now", "today 9am", "yesterday 5pm", "2 hours ago", "last monday 3pm", "2026-02-26", "Feb 26", "2026-02-26T14:30:00Z".`

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var (
	relativeRe  = regexp.MustCompile(`(?i)^(\d+)\s+(second|minute|hour|day|week)s?\s+ago$`)
	todayRe     = regexp.MustCompile(`(?i)^today(?:\s+(.+))?$`)
	yesterdayRe = regexp.MustCompile(`(?i)^yesterday(?:\s+(.+))?$`)
	lastDayRe   = regexp.MustCompile(`(?i)^last\s+(monday|tuesday|wednesday|thursday|friday|saturday|sunday)(?:\s+(.+))?$`)
	isoPrefixRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}`)

	time24Re = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	time12Re = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)$`)
)

// isoLayouts cover the ISO-8601 prefix step; layouts without a zone
// are read as UTC.
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// calendarLayouts are tried in order; the first valid match wins.
// Yearless layouts are completed with the reference year.
var calendarLayouts = []struct {
	layout  string
	hasYear bool
}{
	{"2006-01-02", true},
	{"Jan 2, 2006", true},
	{"Jan 2 2006", true},
	{"Jan 2", false},
	{"January 2, 2006", true},
	{"January 2 2006", true},
	{"January 2", false},
	{"01/02/2006", true}, // MM/DD/YYYY
	{"02/01/2006", true}, // DD/MM/YYYY
}

// fallbackLayouts are the last-resort generic parse before giving up.
var fallbackLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC1123,
	time.ANSIC,
}

// ParseDate converts a free-form date expression, relative to a
// reference instant, into an absolute UTC time at millisecond
// precision. Pass a fixed reference for deterministic tests.
func ParseDate(input string, reference time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return time.Time{}, core.NewValidation("Date cannot be empty.", map[string]any{"input": input})
	}

	ref := reference.UTC().Truncate(time.Millisecond)

	if strings.EqualFold(trimmed, "now") {
		return ref, nil
	}

	if m := relativeRe.FindStringSubmatch(trimmed); m != nil {
		amount, _ := strconv.Atoi(m[1])
		switch strings.ToLower(m[2]) {
		case "second":
			return ref.Add(-time.Duration(amount) * time.Second), nil
		case "minute":
			return ref.Add(-time.Duration(amount) * time.Minute), nil
		case "hour":
			return ref.Add(-time.Duration(amount) * time.Hour), nil
		case "day":
			return ref.AddDate(0, 0, -amount), nil
		case "week":
			return ref.AddDate(0, 0, -7*amount), nil
		}
	}

	if m := todayRe.FindStringSubmatch(trimmed); m != nil {
		return withOptionalTime(StartOfDay(ref), m[1], input)
	}

	if m := yesterdayRe.FindStringSubmatch(trimmed); m != nil {
		return withOptionalTime(StartOfDay(ref).AddDate(0, 0, -1), m[1], input)
	}

	if m := lastDayRe.FindStringSubmatch(trimmed); m != nil {
		target := weekdays[strings.ToLower(m[1])]
		// Same weekday means a full week back, never "today".
		daysBack := int(ref.Weekday()) - int(target)
		if daysBack <= 0 {
			daysBack += 7
		}
		return withOptionalTime(StartOfDay(ref).AddDate(0, 0, -daysBack), m[2], input)
	}

	if isoPrefixRe.MatchString(trimmed) {
		for _, layout := range isoLayouts {
			if t, err := time.Parse(layout, trimmed); err == nil {
				return t.UTC().Truncate(time.Millisecond), nil
			}
		}
	}

	for _, cl := range calendarLayouts {
		t, err := time.Parse(cl.layout, trimmed)
		if err != nil {
			continue
		}
		if !cl.hasYear {
			t = time.Date(ref.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		return t.UTC(), nil
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.UTC().Truncate(time.Millisecond), nil
		}
	}

	return time.Time{}, core.NewValidation(
		fmt.Sprintf("Unable to parse date: %q. %s", input, dateHint),
		map[string]any{"input": input},
	)
}

// withOptionalTime applies a trailing time-of-day phrase to a midnight
// base. An unparsable phrase fails the whole expression.
func withOptionalTime(base time.Time, timeStr, originalInput string) (time.Time, error) {
	if timeStr == "" {
		return base, nil
	}
	t := strings.ToLower(strings.TrimSpace(timeStr))

	if m := time24Re.FindStringSubmatch(t); m != nil {
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		return base.Add(time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute), nil
	}

	if m := time12Re.FindStringSubmatch(t); m != nil {
		hours, _ := strconv.Atoi(m[1])
		minutes := 0
		if m[2] != "" {
			minutes, _ = strconv.Atoi(m[2])
		}
		if m[3] == "pm" && hours != 12 {
			hours += 12
		}
		if m[3] == "am" && hours == 12 {
			hours = 0
		}
		return base.Add(time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute), nil
	}

	return time.Time{}, core.NewValidation(
		fmt.Sprintf("Unable to parse time %q in %q. Use formats like \"9am\", \"14:30\", \"3:30pm\".", timeStr, originalInput),
		map[string]any{"input": originalInput},
	)
}

// StartOfDay returns midnight UTC of t's day.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the last representable millisecond of t's UTC day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Millisecond)
}
