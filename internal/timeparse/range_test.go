package timeparse

import (
	"testing"
	"time"
)

func TestResolveRangeToday(t *testing.T) {
	rng := ResolveRange(RangeFlags{Today: true}, time.Monday, ref)
	if rng.From == nil || rng.To == nil {
		t.Fatal("expected bounded range")
	}
	if want := time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC); !rng.From.Equal(want) {
		t.Errorf("From = %v, want %v", rng.From, want)
	}
	if want := time.Date(2026, 2, 25, 23, 59, 59, 999000000, time.UTC); !rng.To.Equal(want) {
		t.Errorf("To = %v, want %v", rng.To, want)
	}
}

func TestResolveRangeYesterday(t *testing.T) {
	rng := ResolveRange(RangeFlags{Yesterday: true}, time.Monday, ref)
	if want := time.Date(2026, 2, 24, 0, 0, 0, 0, time.UTC); !rng.From.Equal(want) {
		t.Errorf("From = %v, want %v", rng.From, want)
	}
	if want := time.Date(2026, 2, 24, 23, 59, 59, 999000000, time.UTC); !rng.To.Equal(want) {
		t.Errorf("To = %v, want %v", rng.To, want)
	}
}

func TestResolveRangeWeek(t *testing.T) {
	// Reference is Wednesday; the week starts the previous Monday.
	rng := ResolveRange(RangeFlags{Week: true}, time.Monday, ref)
	if want := time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC); !rng.From.Equal(want) {
		t.Errorf("From = %v, want %v", rng.From, want)
	}
	if !rng.To.Equal(ref) {
		t.Errorf("To = %v, want reference %v", rng.To, ref)
	}

	// With a Sunday week start the window begins a day earlier.
	rng = ResolveRange(RangeFlags{Week: true}, time.Sunday, ref)
	if want := time.Date(2026, 2, 22, 0, 0, 0, 0, time.UTC); !rng.From.Equal(want) {
		t.Errorf("sunday From = %v, want %v", rng.From, want)
	}
}

func TestResolveRangeWeekOnWeekStartDay(t *testing.T) {
	monday := time.Date(2026, 2, 23, 10, 0, 0, 0, time.UTC)
	rng := ResolveRange(RangeFlags{Week: true}, time.Monday, monday)
	if want := time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC); !rng.From.Equal(want) {
		t.Errorf("From = %v, want same day midnight %v", rng.From, want)
	}
}

func TestResolveRangeMonth(t *testing.T) {
	rng := ResolveRange(RangeFlags{Month: true}, time.Monday, ref)
	if want := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC); !rng.From.Equal(want) {
		t.Errorf("From = %v, want %v", rng.From, want)
	}
	if !rng.To.Equal(ref) {
		t.Errorf("To = %v, want reference %v", rng.To, ref)
	}
}

func TestResolveRangeExplicitBoundsWin(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rng := ResolveRange(RangeFlags{Today: true, Week: true, From: &from}, time.Monday, ref)
	if rng.From == nil || !rng.From.Equal(from) {
		t.Errorf("From = %v, want explicit %v", rng.From, from)
	}
	if rng.To != nil {
		t.Errorf("To = %v, want open end", rng.To)
	}
}

func TestResolveRangeShortcutPrecedence(t *testing.T) {
	rng := ResolveRange(RangeFlags{Today: true, Month: true}, time.Monday, ref)
	if want := time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC); !rng.From.Equal(want) {
		t.Errorf("today should beat month: From = %v, want %v", rng.From, want)
	}
}

func TestResolveRangeEmpty(t *testing.T) {
	rng := ResolveRange(RangeFlags{}, time.Monday, ref)
	if rng.From != nil || rng.To != nil {
		t.Errorf("expected unbounded range, got %v .. %v", rng.From, rng.To)
	}
}

func TestParseWeekday(t *testing.T) {
	if got := ParseWeekday("sunday"); got != time.Sunday {
		t.Errorf("sunday = %v", got)
	}
	if got := ParseWeekday("Friday"); got != time.Friday {
		t.Errorf("Friday = %v", got)
	}
	if got := ParseWeekday("not-a-day"); got != time.Monday {
		t.Errorf("fallback = %v, want Monday", got)
	}
}
