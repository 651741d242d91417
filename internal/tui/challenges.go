package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/japa/internal/challenge"
)

type challengesModel struct {
	svc    *Services
	width  int
	height int

	daily       challenge.Challenge
	monthly     challenge.MonthlyChallenge
	dailyDone   bool
	monthlyDone bool
	cursor      int // 0 daily, 1 monthly
}

func newChallengesModel(svc *Services) challengesModel {
	return challengesModel{svc: svc}
}

func (c *challengesModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

type challengesDataMsg struct {
	daily       challenge.Challenge
	monthly     challenge.MonthlyChallenge
	dailyDone   bool
	monthlyDone bool
}

type challengeDoneMsg struct {
	monthly bool
}

func (c challengesModel) refresh() tea.Cmd {
	svc := c.svc
	return func() tea.Msg {
		now := svc.now()
		dailyDone, err := svc.Challenges.IsDailyComplete(now)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		monthlyDone, err := svc.Challenges.IsMonthlyComplete(now)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		return challengesDataMsg{
			daily:       challenge.Daily(now),
			monthly:     challenge.Monthly(now),
			dailyDone:   dailyDone,
			monthlyDone: monthlyDone,
		}
	}
}

func (c challengesModel) update(msg tea.Msg) (challengesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case challengesDataMsg:
		c.daily = msg.daily
		c.monthly = msg.monthly
		c.dailyDone = msg.dailyDone
		c.monthlyDone = msg.monthlyDone
		return c, nil

	case challengeDoneMsg:
		if msg.monthly {
			c.monthlyDone = true
			return c, statusCmd("Monthly challenge complete", false)
		}
		c.dailyDone = true
		return c, statusCmd("Daily challenge complete", false)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			c.cursor = 0
		case key.Matches(msg, keys.Down):
			c.cursor = 1
		case key.Matches(msg, keys.Complete), key.Matches(msg, keys.Enter):
			return c, c.markComplete()
		}
	}
	return c, nil
}

func (c challengesModel) markComplete() tea.Cmd {
	if (c.cursor == 0 && c.dailyDone) || (c.cursor == 1 && c.monthlyDone) {
		return statusCmd("Already completed", false)
	}
	svc := c.svc
	monthly := c.cursor == 1
	return func() tea.Msg {
		now := svc.now()
		mark := svc.Challenges.MarkDailyComplete
		if monthly {
			mark = svc.Challenges.MarkMonthlyComplete
		}
		if err := mark(now); err != nil {
			return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
		}
		return challengeDoneMsg{monthly: monthly}
	}
}

func (c challengesModel) view() string {
	w := c.width - 4
	if c.daily.ID == "" {
		return panelStyle.Width(w).Render(mutedStyle.Render("Loading..."))
	}

	daily := c.renderChallenge(w, "Today's challenge", c.daily, c.dailyDone, c.cursor == 0)
	monthly := c.renderChallenge(w, "This month", c.monthly.Challenge, c.monthlyDone, c.cursor == 1)
	hint := mutedStyle.Render("  ↑/↓: select  c: mark complete")

	return lipgloss.JoinVertical(lipgloss.Left, daily, monthly, hint)
}

func (c challengesModel) renderChallenge(w int, heading string, ch challenge.Challenge, done, active bool) string {
	style := panelStyle
	if active {
		style = activePanelStyle
	}

	state := mutedStyle.Render("○ open")
	if done {
		state = successStyle.Render("✓ completed")
	}

	meta := fmt.Sprintf("%s · %s", string(ch.Category), challenge.DifficultyLabel(ch.Difficulty))
	if ch.TargetCount > 0 {
		meta += fmt.Sprintf(" · %s mantras", formatCount(ch.TargetCount))
	}

	return style.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		subtitleStyle.Render(heading),
		titleStyle.Render(ch.Title)+"  "+state,
		normalItemStyle.Width(w-6).Render(ch.Description),
		mutedStyle.Render(meta),
	))
}
