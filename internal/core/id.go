package core

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Ids are prefixed so entry and project references are distinguishable
// at a glance: a base36 millisecond timestamp keeps them roughly
// sortable, a uuid-derived suffix keeps them unique.

func newID(prefix string) string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return prefix + "_" + ts + suffix
}

// NewEntryID returns a fresh "ent_" id.
func NewEntryID() string { return newID("ent") }

// NewProjectID returns a fresh "prj_" id.
func NewProjectID() string { return newID("prj") }

// IsEntryID reports whether ref looks like an entry id.
func IsEntryID(ref string) bool { return strings.HasPrefix(ref, "ent_") }

// IsProjectID reports whether ref looks like a project id.
func IsProjectID(ref string) bool { return strings.HasPrefix(ref, "prj_") }
