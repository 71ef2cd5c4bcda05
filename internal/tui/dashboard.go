package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/machielvdw/clokk/internal/config"
	"github.com/machielvdw/clokk/internal/core"
	"github.com/machielvdw/clokk/internal/timeparse"
)

type dashboardModel struct {
	repo   core.Repository
	cfg    config.Config
	width  int
	height int

	status   *core.StatusResult
	recent   []core.Entry
	today    *core.ReportResult
	names    map[string]string
	projects []core.Project

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formDescription *string
	formProject     *string
	formTags        *string
}

func newDashboardModel(repo core.Repository, cfg config.Config) dashboardModel {
	desc, project, tags := "", "", ""
	return dashboardModel{
		repo:            repo,
		cfg:             cfg,
		names:           map[string]string{},
		formDescription: &desc,
		formProject:     &project,
		formTags:        &tags,
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dashboardModel) isRunning() bool {
	return d.status != nil && d.status.Running
}

func (d dashboardModel) elapsed() time.Duration {
	if !d.isRunning() {
		return 0
	}
	return time.Since(d.status.Entry.StartTime)
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		status, err := core.GetStatus(d.repo)
		if err != nil {
			return dashboardDataMsg{loadErr: err}
		}

		list, err := core.ListEntries(d.repo, core.EntryFilters{Limit: 5})
		if err != nil {
			return dashboardDataMsg{loadErr: err}
		}

		now := time.Now()
		from := timeparse.StartOfDay(now.UTC())
		to := timeparse.EndOfDay(now.UTC())
		today, err := core.GenerateReport(d.repo, core.ReportFilters{
			From:    &from,
			To:      &to,
			GroupBy: core.GroupByProject,
		})
		if err != nil {
			return dashboardDataMsg{loadErr: err}
		}

		names := map[string]string{}
		projects, _ := core.ListProjects(d.repo, core.ProjectFilters{IncludeArchived: true})
		for _, p := range projects {
			names[p.ID] = p.Name
		}

		return dashboardDataMsg{
			status: status,
			recent: list.Entries,
			today:  today,
			names:  names,
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if d.formActive && d.form != nil {
		return d.updateForm(msg)
	}

	switch msg := msg.(type) {
	case dashboardDataMsg:
		if msg.loadErr != nil {
			return d, errStatus(msg.loadErr)
		}
		d.status = msg.status
		d.recent = msg.recent
		d.today = msg.today
		d.names = msg.names
		return d, nil

	case tickMsg:
		// Elapsed time derives from the running entry's start, so a
		// tick only needs a re-render.
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start):
			if d.isRunning() {
				return d, nil
			}
			return d.showStartForm()

		case key.Matches(msg, keys.Stop):
			return d, d.stopTimer()

		case key.Matches(msg, keys.Cancel):
			return d, d.cancelTimer()

		case key.Matches(msg, keys.Resume):
			if d.isRunning() {
				return d, nil
			}
			return d, d.resumeTimer()
		}
	}
	return d, nil
}

func (d dashboardModel) showStartForm() (dashboardModel, tea.Cmd) {
	*d.formDescription = ""
	*d.formProject = d.cfg.DefaultProject
	*d.formTags = ""

	projects, _ := core.ListProjects(d.repo, core.ProjectFilters{})
	d.projects = projects

	projectOptions := make([]huh.Option[string], 0, len(projects)+1)
	projectOptions = append(projectOptions, huh.NewOption("(no project)", ""))
	for _, p := range projects {
		projectOptions = append(projectOptions, huh.NewOption(p.Name, p.Name))
	}

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Description").Value(d.formDescription),
			huh.NewSelect[string]().Title("Project").Options(projectOptions...).Value(d.formProject),
			huh.NewInput().Title("Tags (comma-separated)").Value(d.formTags),
		),
	).WithShowHelp(true).WithShowErrors(true)

	d.formActive = true
	return d, d.form.Init()
}

func (d dashboardModel) updateForm(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			d.formActive = false
			d.form = nil
			return d, nil
		}
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	if d.form.State == huh.StateCompleted {
		d.formActive = false
		return d, d.startTimer(*d.formDescription, *d.formProject, *d.formTags)
	}

	return d, cmd
}

func (d dashboardModel) startTimer(description, project, tags string) tea.Cmd {
	return func() tea.Msg {
		billable := d.cfg.DefaultBillable
		in := core.StartTimerInput{
			Description: description,
			Project:     project,
			Billable:    &billable,
		}
		if tags != "" {
			in.Tags = timeparse.ParseTags(tags)
		}
		if _, err := core.StartTimer(d.repo, in); err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}
		return timerChangedMsg{text: "Timer started"}
	}
}

func (d dashboardModel) stopTimer() tea.Cmd {
	return func() tea.Msg {
		entry, err := core.StopTimer(d.repo, core.StopTimerInput{})
		if err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}
		dur := int64(0)
		if v := entry.DurationSeconds(); v != nil {
			dur = *v
		}
		return timerChangedMsg{text: "Stopped after " + timeparse.FormatDuration(dur)}
	}
}

func (d dashboardModel) cancelTimer() tea.Cmd {
	return func() tea.Msg {
		if _, err := core.CancelTimer(d.repo); err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}
		return timerChangedMsg{text: "Timer cancelled"}
	}
}

func (d dashboardModel) resumeTimer() tea.Cmd {
	return func() tea.Msg {
		entry, err := core.ResumeTimer(d.repo, core.ResumeTimerInput{})
		if err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}
		text := "Resumed"
		if entry.Description != "" {
			text = fmt.Sprintf("Resumed %q", entry.Description)
		}
		return timerChangedMsg{text: text}
	}
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	if d.formActive && d.form != nil {
		title := titleStyle.Render("Start Timer")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", d.form.View())
		return panelStyle.Width(d.width - 4).Render(content)
	}

	contentWidth := d.width - 4
	timerPanel := d.renderTimerPanel(contentWidth)
	summaryPanel := d.renderTodayPanel(contentWidth)
	recentPanel := d.renderRecentPanel(contentWidth)

	return lipgloss.JoinVertical(lipgloss.Left, timerPanel, summaryPanel, recentPanel)
}

func (d dashboardModel) renderTimerPanel(w int) string {
	if d.isRunning() {
		entry := d.status.Entry
		timeDisplay := timerRunningStyle.Width(w - 6).Render(formatClock(d.elapsed()))
		indicator := successStyle.Render("●  RUNNING")

		line := entry.Description
		if line == "" {
			line = entry.ID
		}
		descLine := highlightStyle.Render(line)
		if entry.ProjectID != nil {
			if name := d.names[*entry.ProjectID]; name != "" {
				descLine += mutedStyle.Render(" · " + name)
			}
		}

		content := lipgloss.JoinVertical(lipgloss.Center,
			timeDisplay,
			indicator,
			descLine,
		)
		return activePanelStyle.Width(w).Render(content)
	}

	timeDisplay := timerStyle.Width(w - 6).Render("00:00:00")
	indicator := mutedStyle.Render("■  STOPPED")
	hint := mutedStyle.Render("Press s to start, r to resume the last entry")

	content := lipgloss.JoinVertical(lipgloss.Center,
		timeDisplay,
		indicator,
		hint,
	)
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderTodayPanel(w int) string {
	title := titleStyle.Render("Today")
	total := int64(0)
	if d.today != nil {
		total = d.today.TotalSeconds
	}
	header := fmt.Sprintf("%s  %s", title, highlightStyle.Render(timeparse.FormatDuration(total)))

	if d.today == nil || len(d.today.Groups) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			mutedStyle.Render("No entries today"),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, header)
	for _, g := range d.today.Groups {
		row := fmt.Sprintf("  %-24s %10s  (%d entries)",
			g.Key,
			timeparse.FormatDuration(g.TotalSeconds),
			g.EntryCount,
		)
		rows = append(rows, row)
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderRecentPanel(w int) string {
	title := titleStyle.Render("Recent Entries")
	if len(d.recent) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No entries yet"),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	for i := range d.recent {
		e := &d.recent[i]
		name := ""
		if e.ProjectID != nil {
			name = d.names[*e.ProjectID]
		}
		dur := "running"
		status := "●"
		if v := e.DurationSeconds(); v != nil {
			dur = timeparse.FormatDuration(*v)
			status = "✓"
		}
		desc := e.Description
		if desc == "" {
			desc = mutedStyle.Render(e.ID)
		}
		row := fmt.Sprintf("  %s %s  %-28s %-16s %s",
			status, e.StartTime.Local().Format("15:04"), desc, name, dur)
		rows = append(rows, row)
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
