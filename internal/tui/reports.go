package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/machielvdw/clokk/internal/config"
	"github.com/machielvdw/clokk/internal/core"
	"github.com/machielvdw/clokk/internal/timeparse"
)

type reportsModel struct {
	repo   core.Repository
	cfg    config.Config
	width  int
	height int

	offset    int // 7-day blocks back from today (0 = current)
	byDay     *core.ReportResult
	byProject *core.ReportResult

	chart barchart.Model
}

func newReportsModel(repo core.Repository, cfg config.Config) reportsModel {
	return reportsModel{
		repo:  repo,
		cfg:   cfg,
		chart: barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

// dateRange is the 7-day window the view shows, ending at the end of
// today when offset is zero.
func (r reportsModel) dateRange() (time.Time, time.Time) {
	now := time.Now().UTC()
	to := timeparse.EndOfDay(now.AddDate(0, 0, -7*r.offset))
	from := timeparse.StartOfDay(to.AddDate(0, 0, -6))
	return from, to
}

func (r reportsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		from, to := r.dateRange()

		byDay, err := core.GenerateReport(r.repo, core.ReportFilters{
			From:    &from,
			To:      &to,
			GroupBy: core.GroupByDay,
		})
		if err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}

		byProject, err := core.GenerateReport(r.repo, core.ReportFilters{
			From:    &from,
			To:      &to,
			GroupBy: core.GroupByProject,
		})
		if err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}

		return reportsDataMsg{byDay: byDay, byProject: byProject}
	}
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		r.byDay = msg.byDay
		r.byProject = msg.byProject
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.offset++
			return r, r.refresh()
		case key.Matches(msg, keys.Right):
			if r.offset > 0 {
				r.offset--
			}
			return r, r.refresh()
		}
	}
	return r, nil
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	totals := map[string]int64{}
	if r.byDay != nil {
		for _, g := range r.byDay.Groups {
			totals[g.Key] = g.TotalSeconds
		}
	}

	from, to := r.dateRange()
	barStyle := lipgloss.NewStyle().Foreground(colorPrimary)
	emptyStyle := lipgloss.NewStyle().Foreground(colorSubtle)

	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		day := d.Format("2006-01-02")
		hours := float64(totals[day]) / 3600.0

		style := barStyle
		if hours == 0 {
			style = emptyStyle
		}
		bars = append(bars, barchart.BarData{
			Label: d.Format("Mon 02"),
			Values: []barchart.BarValue{
				{Name: day, Value: hours, Style: style},
			},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	from, to := r.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s", from.Format("Jan 02"), to.Format("Jan 02, 2006")))

	total := ""
	if r.byDay != nil {
		total = highlightStyle.Render(timeparse.FormatDuration(r.byDay.TotalSeconds))
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Reports"), "  ", dateLabel, "  ", total,
	)

	chartView := r.chart.View()
	tableView := r.renderProjectTable(w)
	nav := mutedStyle.Render("  ←/→: earlier/later week")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", tableView, "", nav,
		),
	)
}

func (r reportsModel) renderProjectTable(w int) string {
	if r.byProject == nil || len(r.byProject.Groups) == 0 {
		return mutedStyle.Render("  No data for this period")
	}

	var rows []string
	headerRow := mutedStyle.Render(fmt.Sprintf("  %-24s %10s %10s %12s", "Project", "Time", "Billable", "Amount"))
	rows = append(rows, headerRow)

	sep := w - 6
	if sep > 60 {
		sep = 60
	}
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", sep)))

	for _, g := range r.byProject.Groups {
		amount := ""
		if g.BillableAmount != nil {
			amount = fmt.Sprintf("%.2f %s", *g.BillableAmount, *g.Currency)
		}
		rows = append(rows, fmt.Sprintf("  %-24s %10s %10s %12s",
			g.Key,
			timeparse.FormatDuration(g.TotalSeconds),
			timeparse.FormatDuration(g.BillableSeconds),
			amount,
		))
	}

	return strings.Join(rows, "\n")
}
