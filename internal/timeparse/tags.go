package timeparse

import (
	"regexp"
	"strings"
)

var tagSplitRe = regexp.MustCompile(`[,\s]+`)

// ParseTags accepts comma-separated, space-separated, or mixed tag
// input and returns trimmed tags with duplicates removed, insertion
// order preserved.
func ParseTags(inputs ...string) []string {
	raw := strings.Join(inputs, ",")

	seen := map[string]bool{}
	var tags []string
	for _, tag := range tagSplitRe.Split(raw, -1) {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}
