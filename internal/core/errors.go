package core

import (
	"errors"
	"fmt"
)

// Error codes for every expected failure path. Interface layers render
// these as structured envelopes; the codes are part of the contract.
const (
	CodeTimerAlreadyRunning  = "TIMER_ALREADY_RUNNING"
	CodeNoTimerRunning       = "NO_TIMER_RUNNING"
	CodeEntryNotFound        = "ENTRY_NOT_FOUND"
	CodeProjectNotFound      = "PROJECT_NOT_FOUND"
	CodeProjectAlreadyExists = "PROJECT_ALREADY_EXISTS"
	CodeProjectHasEntries    = "PROJECT_HAS_ENTRIES"
	CodeValidation           = "VALIDATION_ERROR"
	CodeNoEntriesFound       = "NO_ENTRIES_FOUND"
	CodeConfigKeyUnknown     = "CONFIG_KEY_UNKNOWN"
	CodeConfigValueInvalid   = "CONFIG_VALUE_INVALID"
	CodeStorage              = "STORAGE_ERROR"
)

// Error is a typed, user-facing failure: a machine-readable code, a
// human message, optional corrective suggestions, and structured
// context for agent callers.
type Error struct {
	Code        string
	Message     string
	Suggestions []string
	Context     map[string]any
	ExitCode    int
	cause       error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// ErrCode extracts the taxonomy code from err, or "" if err is not a
// typed core error.
func ErrCode(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// ExitCode returns the process exit code for err. Untyped errors map
// to 1.
func ExitCode(err error) int {
	var ce *Error
	if errors.As(err, &ce) && ce.ExitCode != 0 {
		return ce.ExitCode
	}
	return 1
}

func newError(code, message string) *Error {
	return &Error{Code: code, Message: message, ExitCode: 1, Context: map[string]any{}}
}

// NewTimerAlreadyRunning reports a start attempt while a timer runs.
func NewTimerAlreadyRunning(entryID, description string) *Error {
	e := newError(CodeTimerAlreadyRunning, fmt.Sprintf(
		"A timer is already running: %q (%s). Stop it first with 'clokk stop' or use 'clokk switch' to stop and start in one command.",
		description, entryID))
	e.Suggestions = []string{"clokk stop", `clokk switch "<new description>"`}
	e.Context["running_entry_id"] = entryID
	e.Context["running_description"] = description
	return e
}

// NewNoTimerRunning reports a stop/switch/cancel with no active timer.
func NewNoTimerRunning() *Error {
	e := newError(CodeNoTimerRunning, "No timer is currently running. Start one with 'clokk start'.")
	e.Suggestions = []string{"clokk start"}
	return e
}

// NewEntryNotFound reports a missing entry id.
func NewEntryNotFound(entryID string) *Error {
	e := newError(CodeEntryNotFound, fmt.Sprintf("Entry %q not found.", entryID))
	e.Suggestions = []string{"clokk list --today"}
	e.Context["entry_id"] = entryID
	return e
}

// NewProjectNotFound reports an unresolvable project reference.
func NewProjectNotFound(ref string) *Error {
	e := newError(CodeProjectNotFound, fmt.Sprintf("Project %q not found.", ref))
	e.Suggestions = []string{"clokk project list"}
	e.Context["project_ref"] = ref
	return e
}

// NewProjectAlreadyExists reports a duplicate project name.
func NewProjectAlreadyExists(name string) *Error {
	e := newError(CodeProjectAlreadyExists, fmt.Sprintf("A project named %q already exists.", name))
	e.Suggestions = []string{"clokk project list"}
	e.Context["project_name"] = name
	return e
}

// NewProjectHasEntries blocks a project delete that would orphan
// entries without --force.
func NewProjectHasEntries(projectID string, entryCount int) *Error {
	e := newError(CodeProjectHasEntries, fmt.Sprintf(
		"Project %q has %d entries. Use --force to delete anyway (entries will become unassigned).",
		projectID, entryCount))
	e.Suggestions = []string{fmt.Sprintf("clokk project delete %s --force", projectID)}
	e.Context["project_id"] = projectID
	e.Context["entry_count"] = entryCount
	return e
}

// NewValidation reports bad, missing, or contradictory input.
func NewValidation(message string, context map[string]any) *Error {
	e := newError(CodeValidation, message)
	for k, v := range context {
		e.Context[k] = v
	}
	return e
}

// NewNoEntriesFound reports an empty result where one entry was needed.
func NewNoEntriesFound(message string) *Error {
	if message == "" {
		message = "No entries found matching the given filters."
	}
	return newError(CodeNoEntriesFound, message)
}

// NewConfigKeyUnknown reports a configuration key outside the schema.
func NewConfigKeyUnknown(key string) *Error {
	e := newError(CodeConfigKeyUnknown, fmt.Sprintf("Unknown configuration key: %q.", key))
	e.Suggestions = []string{"clokk config show"}
	e.Context["key"] = key
	return e
}

// NewConfigValueInvalid reports a configuration value of the wrong
// shape for its key.
func NewConfigValueInvalid(key, value, expected string) *Error {
	e := newError(CodeConfigValueInvalid, fmt.Sprintf("Invalid value for %q: expected %s, got %q.", key, expected, value))
	e.Context["key"] = key
	e.Context["value"] = value
	e.Context["expected"] = expected
	return e
}

// WrapStorage wraps an unrecoverable storage failure, keeping it
// distinct from the domain taxonomy. The cause stays reachable through
// errors.Unwrap.
func WrapStorage(op string, cause error) *Error {
	e := newError(CodeStorage, fmt.Sprintf("storage error: %s: %v", op, cause))
	e.ExitCode = 2
	e.cause = cause
	return e
}
