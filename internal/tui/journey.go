package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/japa/internal/practice"
	"github.com/sadopc/japa/internal/store"
)

type journeyModel struct {
	svc    *Services
	width  int
	height int

	milestones []store.Milestone
	stats      *store.Stats
	cursor     int

	bar progress.Model
}

func newJourneyModel(svc *Services) journeyModel {
	return journeyModel{
		svc: svc,
		bar: progress.New(
			progress.WithSolidFill(string(colorPrimary)),
			progress.WithWidth(30),
		),
	}
}

func (j *journeyModel) setSize(w, h int) {
	j.width = w
	j.height = h
	j.bar.Width = min(max(w/3, 10), 40)
}

type journeyDataMsg struct {
	milestones []store.Milestone
	stats      *store.Stats
}

func (j journeyModel) refresh() tea.Cmd {
	tracker := j.svc.Practice
	return func() tea.Msg {
		st, err := tracker.Stats()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		ms, err := tracker.Milestones()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		return journeyDataMsg{milestones: ms, stats: st}
	}
}

func (j journeyModel) update(msg tea.Msg) (journeyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case journeyDataMsg:
		j.milestones = msg.milestones
		j.stats = msg.stats
		if j.cursor >= len(j.milestones) {
			j.cursor = max(0, len(j.milestones)-1)
		}
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if j.cursor > 0 {
				j.cursor--
			}
		case key.Matches(msg, keys.Down):
			if j.cursor < len(j.milestones)-1 {
				j.cursor++
			}
		}
	}
	return j, nil
}

func (j journeyModel) view() string {
	w := j.width - 4

	title := titleStyle.Render("Milestones")
	var rows []string
	rows = append(rows, title, "")

	if len(j.milestones) == 0 {
		rows = append(rows, mutedStyle.Render("  Loading..."))
	}
	for i, m := range j.milestones {
		cursor := "  "
		nameStyle := normalItemStyle
		if i == j.cursor {
			cursor = "> "
			nameStyle = selectedItemStyle
		}
		mark := mutedStyle.Render("○")
		if m.IsAchieved {
			mark = successStyle.Render("✓")
		}
		name := nameStyle.Width(24).Render(m.Title)
		rows = append(rows, fmt.Sprintf("%s%s %s %s %3d%%",
			cursor, mark, name, j.bar.ViewAs(float64(m.Progress)/100), m.Progress))
		if i == j.cursor {
			rows = append(rows, mutedStyle.Render("      "+m.Description))
		}
	}

	rows = append(rows, "", titleStyle.Render("Achievements"), j.renderAchievements())

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (j journeyModel) renderAchievements() string {
	var unlocked, locked []string
	for _, a := range practice.Achievements {
		if j.stats != nil && j.stats.HasAchievement(a.Tag) {
			unlocked = append(unlocked, successStyle.Render("★ "+a.Title))
		} else {
			locked = append(locked, mutedStyle.Render("☆ "+a.Title))
		}
	}
	return "  " + strings.Join(append(unlocked, locked...), "   ")
}
