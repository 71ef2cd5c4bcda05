// Package timeparse converts free-form date, duration, and tag input
// into exact values. Every parser takes explicit inputs and returns
// typed validation errors, so interface layers and tests stay
// deterministic.
package timeparse

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/machielvdw/clokk/internal/core"
)

const durationHint = `Accepted formats: "1h30m", "1.5h", "90m", "90 minutes", "30s", "1:30:00".`

var (
	colonRe = regexp.MustCompile(`^(\d+):(\d{1,2})(?::(\d{1,2}))?$`)

	// Longer unit spellings come first so a bare "m" never wins
	// against the start of "minutes".
	unitRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(hours?|hrs?|minutes?|mins?|seconds?|secs?|h|m|s)`)
)

// ParseDuration converts a duration expression into whole seconds.
//
// Two-part colon values are always hours:minutes, never
// minutes:seconds: "0:45" is 45 minutes. This is a documented
// convention, not a magnitude heuristic.
func ParseDuration(input string) (int64, error) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "" {
		return 0, core.NewValidation("Duration cannot be empty.", map[string]any{"input": input})
	}

	if m := colonRe.FindStringSubmatch(trimmed); m != nil {
		first, _ := strconv.ParseInt(m[1], 10, 64)
		second, _ := strconv.ParseInt(m[2], 10, 64)
		if m[3] != "" {
			third, _ := strconv.ParseInt(m[3], 10, 64)
			return first*3600 + second*60 + third, nil
		}
		return first*3600 + second*60, nil
	}

	var total int64
	matched := false
	for _, idx := range unitRe.FindAllStringSubmatchIndex(trimmed, -1) {
		unit := trimmed[idx[4]:idx[5]]
		// A single-letter unit directly followed by another letter is
		// the start of some other word, not a unit.
		if len(unit) == 1 && idx[5] < len(trimmed) && isLetter(trimmed[idx[5]]) {
			continue
		}
		matched = true
		value, _ := strconv.ParseFloat(trimmed[idx[2]:idx[3]], 64)
		switch {
		case strings.HasPrefix(unit, "h"):
			total += int64(math.Round(value * 3600))
		case strings.HasPrefix(unit, "m"):
			total += int64(math.Round(value * 60))
		default:
			total += int64(math.Round(value))
		}
	}
	if matched {
		if total < 0 {
			return 0, core.NewValidation("Duration cannot be negative.", map[string]any{"input": input})
		}
		return total, nil
	}

	return 0, core.NewValidation(
		fmt.Sprintf("Unable to parse duration: %q. %s", input, durationHint),
		map[string]any{"input": input},
	)
}

func isLetter(b byte) bool {
	return b >= 'a' && b <= 'z'
}

// FormatDuration renders seconds as a compact human string, dropping
// zero components: "1h 30m", "45m", "0s".
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		return "-" + FormatDuration(-seconds)
	}
	if seconds == 0 {
		return "0s"
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if secs > 0 {
		parts = append(parts, fmt.Sprintf("%ds", secs))
	}
	return strings.Join(parts, " ")
}
