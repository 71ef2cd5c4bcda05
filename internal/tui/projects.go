package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/machielvdw/clokk/internal/config"
	"github.com/machielvdw/clokk/internal/core"
)

type projectsModel struct {
	repo   core.Repository
	cfg    config.Config
	width  int
	height int

	projects     []core.Project
	cursor       int
	showArchived bool

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formName   *string
	formClient *string
	formRate   *string
}

func newProjectsModel(repo core.Repository, cfg config.Config) projectsModel {
	name, client, rate := "", "", ""
	return projectsModel{
		repo:       repo,
		cfg:        cfg,
		formName:   &name,
		formClient: &client,
		formRate:   &rate,
	}
}

func (p *projectsModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p projectsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		projects, _ := core.ListProjects(p.repo, core.ProjectFilters{IncludeArchived: p.showArchived})
		return projectsDataMsg{projects: projects}
	}
}

func (p projectsModel) update(msg tea.Msg) (projectsModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case projectsDataMsg:
		p.projects = msg.projects
		if p.cursor >= len(p.projects) {
			p.cursor = len(p.projects) - 1
			if p.cursor < 0 {
				p.cursor = 0
			}
		}
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, keys.Down):
			if p.cursor < len(p.projects)-1 {
				p.cursor++
			}
		case key.Matches(msg, keys.New):
			return p.showNewProjectForm()
		case key.Matches(msg, keys.Archive):
			if len(p.projects) > 0 {
				ref := p.projects[p.cursor].ID
				return p, func() tea.Msg {
					if _, err := core.ArchiveProject(p.repo, ref); err != nil {
						return statusMsg{text: err.Error(), isError: true}
					}
					return statusMsg{text: "Project archived"}
				}
			}
		case key.Matches(msg, keys.Enter):
			p.showArchived = !p.showArchived
			return p, p.refresh()
		}
	}
	return p, nil
}

func (p projectsModel) showNewProjectForm() (projectsModel, tea.Cmd) {
	*p.formName = ""
	*p.formClient = ""
	*p.formRate = ""

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Project Name").Value(p.formName),
			huh.NewInput().Title("Client (optional)").Value(p.formClient),
			huh.NewInput().Title("Hourly Rate (optional)").Value(p.formRate),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p projectsModel) updateForm(msg tea.Msg) (projectsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		name, client, rate := *p.formName, *p.formClient, *p.formRate
		if name == "" {
			return p, p.refresh()
		}
		return p, tea.Sequence(p.createProject(name, client, rate), p.refresh())
	}

	return p, cmd
}

func (p projectsModel) createProject(name, client, rate string) tea.Cmd {
	return func() tea.Msg {
		in := core.CreateProjectInput{
			Name:     name,
			Currency: p.cfg.DefaultCurrency,
		}
		if client != "" {
			in.Client = &client
		}
		if rate != "" {
			v, err := strconv.ParseFloat(rate, 64)
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Invalid rate %q", rate), isError: true}
			}
			in.Rate = &v
		}
		if _, err := core.CreateProject(p.repo, in); err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}
		return statusMsg{text: fmt.Sprintf("Created project %q", name)}
	}
}

func (p projectsModel) view() string {
	if p.formActive && p.form != nil {
		title := titleStyle.Render("New Project")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View())
		return panelStyle.Width(p.width - 4).Render(content)
	}

	w := p.width - 4
	title := titleStyle.Render("Projects")
	if p.showArchived {
		title += mutedStyle.Render("  (including archived)")
	}

	if len(p.projects) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No projects yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-24s %-16s %-14s %s", "Name", "Client", "Rate", ""))
	rows = append(rows, header)

	for i := range p.projects {
		proj := &p.projects[i]
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		client := ""
		if proj.Client != nil {
			client = *proj.Client
		}
		rate := ""
		if proj.Rate != nil {
			rate = fmt.Sprintf("%.2f %s/h", *proj.Rate, proj.Currency)
		}
		suffix := ""
		if proj.Archived {
			suffix = mutedStyle.Render("archived")
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-24s %-16s %-14s", cursor, proj.Name, client, rate))+suffix)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  d: archive  enter: toggle archived"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
