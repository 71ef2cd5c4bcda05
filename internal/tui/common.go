package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/machielvdw/clokk/internal/core"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewProjects
	viewReports
)

var viewNames = []string{"Dashboard", "Projects", "Reports"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type timerChangedMsg struct {
	text string
}

type exportDoneMsg struct {
	path string
}

type dashboardDataMsg struct {
	status  *core.StatusResult
	recent  []core.Entry
	today   *core.ReportResult
	names   map[string]string
	loadErr error
}

type projectsDataMsg struct {
	projects []core.Project
}

type reportsDataMsg struct {
	byDay     *core.ReportResult
	byProject *core.ReportResult
}

// --- Helpers ---

func formatClock(d time.Duration) string {
	secs := int64(d / time.Second)
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func errStatus(err error) func() tea.Msg {
	return func() tea.Msg {
		return statusMsg{text: err.Error(), isError: true}
	}
}
