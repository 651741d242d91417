package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/sadopc/japa/internal/challenge"
	"github.com/sadopc/japa/internal/identity"
	"github.com/sadopc/japa/internal/practice"
	"github.com/sadopc/japa/internal/reminder"
	"github.com/sadopc/japa/internal/sound"
	"github.com/sadopc/japa/internal/store"
)

// Services bundles what the views read from and write to.
type Services struct {
	Store      *store.Store
	Practice   *practice.Tracker
	Challenges *challenge.Tracker
	Identity   *identity.Service
	Reminders  *reminder.Service
	Sound      *sound.Player

	ExportDir     string
	DefaultTarget int
	Now           func() time.Time
}

func (s *Services) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// viewState represents the currently active view.
type viewState int

const (
	viewCounter viewState = iota
	viewDashboard
	viewJourney
	viewChallenges
	viewProfile
	viewSettings
)

var viewNames = []string{"Counter", "Dashboard", "Journey", "Challenges", "Profile", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type countedMsg struct {
	result  *practice.Result
	session int
	reached bool
}

type exportDoneMsg struct {
	path string
}

// ReminderMsg carries a delivered reminder into the program via Program.Send.
type ReminderMsg reminder.Notification

type permissionPromptMsg struct{}

// --- Helpers ---

func statusCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isError: isError} }
}

// formatCount renders n with thousands separators, e.g. 10008 -> "10,008".
func formatCount(n int) string {
	return humanize.Comma(int64(n))
}

func plural(n int, word string) string {
	if n == 1 {
		return formatCount(n) + " " + word
	}
	return formatCount(n) + " " + word + "s"
}
