package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/japa/internal/challenge"
	"github.com/sadopc/japa/internal/practice"
	"github.com/sadopc/japa/internal/store"
)

// sessionMarks are the in-round counts that earn a note.
var sessionMarks = map[int]string{
	27:   "27 mantras, a quarter mala",
	54:   "54 mantras, half a mala",
	81:   "81 mantras, three quarters of a mala",
	108:  "108 mantras, a full mala",
	1008: "1,008 mantras in a single sitting",
}

// counterModel is one practice sitting: a round counts up to the target and
// then blocks until a new round is started.
type counterModel struct {
	svc    *Services
	width  int
	height int

	session int
	rounds  int
	target  int
	chime   string
	done    bool

	stats  *store.Stats
	mantra challenge.Mantra
	bar    progress.Model
}

func newCounterModel(svc *Services) counterModel {
	return counterModel{
		svc:    svc,
		target: svc.DefaultTarget,
		chime:  store.DefaultSettings.CompletionChime,
		bar:    progress.New(progress.WithGradient(string(colorAccent), string(colorPrimary))),
	}
}

func (c *counterModel) setSize(w, h int) {
	c.width = w
	c.height = h
	c.bar.Width = min(max(w-16, 10), 60)
}

type counterDataMsg struct {
	stats    *store.Stats
	settings store.Settings
}

func (c counterModel) loadData() tea.Cmd {
	svc := c.svc
	return func() tea.Msg {
		st, err := svc.Practice.Stats()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		settings, _ := svc.Store.GetSettings()
		return counterDataMsg{stats: st, settings: settings}
	}
}

// roundTarget resolves the round size. A zero setting falls back to the
// configured default, and zero there means an open-ended round.
func roundTarget(setting, fallback int) int {
	if setting > 0 {
		return setting
	}
	return fallback
}

func (c counterModel) update(msg tea.Msg) (counterModel, tea.Cmd) {
	switch msg := msg.(type) {
	case counterDataMsg:
		c.stats = msg.stats
		c.target = roundTarget(msg.settings.TargetCount, c.svc.DefaultTarget)
		c.chime = msg.settings.CompletionChime
		c.mantra = challenge.DailyContent(c.svc.now()).Mantra
		if c.target > 0 && c.session >= c.target {
			c.done = true
		}
		return c, nil

	case countedMsg:
		c.stats = msg.result.Stats
		if msg.reached {
			c.svc.Sound.PlayCompletion(c.chime)
		}
		if note := countedNote(msg); note != "" {
			return c, statusCmd(note, false)
		}
		return c, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Count):
			return c.count()
		case key.Matches(msg, keys.NewRound):
			c.session = 0
			c.done = false
			return c, statusCmd("New round", false)
		}
	}
	return c, nil
}

func (c counterModel) count() (counterModel, tea.Cmd) {
	if c.done {
		return c, statusCmd("Round complete. Press r to begin a new round", false)
	}
	c.session++
	reached := c.target > 0 && c.session >= c.target
	if reached {
		c.done = true
		c.rounds++
	}

	session := c.session
	tracker := c.svc.Practice
	return c, func() tea.Msg {
		res, err := tracker.Increment(1)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Count error: %v", err), isError: true}
		}
		return countedMsg{result: res, session: session, reached: reached}
	}
}

// countedNote builds the status line for one increment.
func countedNote(msg countedMsg) string {
	var parts []string
	for _, tag := range msg.result.NewAchievements {
		if a, ok := practice.AchievementByTag(tag); ok {
			parts = append(parts, "Achievement unlocked: "+a.Title)
		}
	}
	for _, m := range msg.result.NewMilestones {
		parts = append(parts, "Milestone reached: "+m.Title)
	}
	if msg.reached {
		parts = append(parts, "Round complete")
	} else if note, ok := sessionMarks[msg.session]; ok {
		parts = append(parts, note)
	}
	return strings.Join(parts, " · ")
}

func (c counterModel) ratio() float64 {
	if c.target <= 0 {
		return 0
	}
	return min(float64(c.session)/float64(c.target), 1)
}

func (c counterModel) view() string {
	w := c.width - 4

	title := titleStyle.Render("Japa")
	var mantra string
	if c.mantra.Text != "" {
		mantra = mantraStyle.Render(c.mantra.Text)
	}

	countText := formatCount(c.session)
	if c.target > 0 {
		countText += " / " + formatCount(c.target)
	}
	style := countStyle
	if c.done {
		style = countDoneStyle
	}
	count := style.Width(w - 6).Render(countText)

	var bar string
	if c.target > 0 {
		bar = lipgloss.PlaceHorizontal(w-6, lipgloss.Center, c.bar.ViewAs(c.ratio()))
	}

	rounds := mutedStyle.Render(fmt.Sprintf("Rounds this sitting: %d", c.rounds))

	var totals string
	if c.stats != nil {
		totals = fmt.Sprintf("Today %s  ·  Total %s  ·  Streak %s",
			highlightStyle.Render(formatCount(c.stats.TodayCount)),
			highlightStyle.Render(formatCount(c.stats.TotalCount)),
			highlightStyle.Render(plural(c.stats.Streak, "day")),
		)
	}

	hint := mutedStyle.Render("space: count  r: new round")
	if c.done {
		hint = successStyle.Render("Round complete. Press r to begin a new round")
	}

	return activePanelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title, mantra, "", "", count, "", bar, "", rounds, totals, "", hint,
		),
	)
}
