package tui

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"github.com/sadopc/japa/internal/export"
	"github.com/sadopc/japa/internal/identity"
	"github.com/sadopc/japa/internal/practice"
	"github.com/sadopc/japa/internal/sound"
)

var exportFormats = []string{"Daily log (CSV)", "Journey summary (JSON)", "Identity package (JSON)"}

// App is the root Bubble Tea model.
type App struct {
	svc    *Services
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int
	prompting     bool

	counter    counterModel
	dashboard  dashboardModel
	journey    journeyModel
	challenges challengesModel
	profile    profileModel
	settings   settingsModel

	help      help.Model
	status    string
	statusErr bool
}

func NewApp(svc Services) App {
	h := help.New()
	h.ShowAll = false

	s := &svc
	return App{
		svc:        s,
		activeView: viewCounter,
		counter:    newCounterModel(s),
		dashboard:  newDashboardModel(s),
		journey:    newJourneyModel(s),
		challenges: newChallengesModel(s),
		profile:    newProfileModel(s),
		settings:   newSettingsModel(s),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.counter.loadData(),
		a.profile.refresh(),
		a.checkPermissionPrompt(),
	)
}

func (a App) checkPermissionPrompt() tea.Cmd {
	rem := a.svc.Reminders
	return func() tea.Msg {
		show, err := rem.ShouldShowPermissionPrompt()
		if err != nil || !show {
			return nil
		}
		if err := rem.MarkPermissionPromptShown(); err != nil {
			return statusMsg{text: fmt.Sprintf("Reminder error: %v", err), isError: true}
		}
		return permissionPromptMsg{}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.counter.setSize(a.width, contentHeight)
		a.dashboard.setSize(a.width, contentHeight)
		a.journey.setSize(a.width, contentHeight)
		a.challenges.setSize(a.width, contentHeight)
		a.profile.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.prompting {
			return a.updatePermissionPrompt(msg)
		}
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// A child form captures all input.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchTo(viewCounter)
		case key.Matches(msg, keys.Tab2):
			return a.switchTo(viewDashboard)
		case key.Matches(msg, keys.Tab3):
			return a.switchTo(viewJourney)
		case key.Matches(msg, keys.Tab4):
			return a.switchTo(viewChallenges)
		case key.Matches(msg, keys.Tab5):
			return a.switchTo(viewProfile)
		case key.Matches(msg, keys.Tab6):
			return a.switchTo(viewSettings)
		case key.Matches(msg, keys.Tab):
			return a.switchTo((a.activeView + 1) % viewState(len(viewNames)))
		}
		return a.updateActiveView(msg)

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusErr = false
		a.exportPicking = false
		return a, nil

	case ReminderMsg:
		a.status = "ॐ " + msg.Body
		a.statusErr = false
		return a, a.reminderChime()

	case permissionPromptMsg:
		a.prompting = true
		return a, nil

	case counterDataMsg, countedMsg:
		a.counter, cmd = a.counter.update(msg)
		return a, cmd

	case dashboardDataMsg:
		a.dashboard, cmd = a.dashboard.update(msg)
		return a, cmd

	case journeyDataMsg:
		a.journey, cmd = a.journey.update(msg)
		return a, cmd

	case challengesDataMsg, challengeDoneMsg:
		a.challenges, cmd = a.challenges.update(msg)
		return a, cmd

	case profileDataMsg:
		if msg.identity == nil && a.profile.autoCreate {
			a.activeView = viewProfile
		}
		a.profile, cmd = a.profile.update(msg)
		return a, cmd

	case tokenMsg:
		a.profile, cmd = a.profile.update(msg)
		return a, cmd

	case profileDoneMsg:
		a.status = msg.text
		a.statusErr = false
		cmds := []tea.Cmd{a.profile.refresh()}
		if msg.changed {
			cmds = append(cmds, a.counter.loadData(), a.refreshCurrentView())
		}
		return a, tea.Batch(cmds...)

	case settingsDataMsg:
		a.settings, cmd = a.settings.update(msg)
		return a, cmd

	case settingsSavedMsg:
		a.status = "Settings saved"
		a.statusErr = false
		return a, a.counter.loadData()
	}

	return a.updateActiveView(msg)
}

// reminderChime rings the user's completion chime for a delivered reminder.
// "none" keeps reminders silent.
func (a App) reminderChime() tea.Cmd {
	svc := a.svc
	return func() tea.Msg {
		chime, err := svc.Store.GetSetting("completion_chime")
		if err != nil {
			log.Debug().Err(err).Msg("reminder chime setting")
		}
		svc.Sound.Play(sound.Parse(chime))
		return nil
	}
}

func (a App) switchTo(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	return a, a.refreshCurrentView()
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewCounter:
		a.counter, cmd = a.counter.update(msg)
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewJourney:
		a.journey, cmd = a.journey.update(msg)
	case viewChallenges:
		a.challenges, cmd = a.challenges.update(msg)
	case viewProfile:
		a.profile, cmd = a.profile.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewProfile:
		return a.profile.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewCounter:
		return a.counter.loadData()
	case viewDashboard:
		return a.dashboard.loadData()
	case viewJourney:
		return a.journey.refresh()
	case viewChallenges:
		return a.challenges.refresh()
	case viewProfile:
		return a.profile.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewCounter:
		content = a.counter.view()
	case viewDashboard:
		content = a.dashboard.view()
	case viewJourney:
		content = a.journey.view()
	case viewChallenges:
		content = a.challenges.view()
	case viewProfile:
		content = a.profile.view()
	case viewSettings:
		content = a.settings.view()
	}

	contentHeight := max(a.height-lipgloss.Height(header)-lipgloss.Height(footer), 1)

	switch {
	case a.prompting:
		content = a.renderPermissionPrompt()
	case a.exportPicking:
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("ॐ japa")
	gap := max(a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)
	gap := max(a.width-lipgloss.Width(left)-lipgloss.Width(status)-2, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

func (a App) renderPermissionPrompt() string {
	rows := []string{
		titleStyle.Render("Practice reminders"),
		"",
		normalItemStyle.Render("Would you like a gentle reminder to chant each day?"),
		mutedStyle.Render("Times can be changed in Settings."),
		"",
		mutedStyle.Render("  y: enable  n: not now"),
	}
	return activePanelStyle.Width(a.width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updatePermissionPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var granted bool
	switch {
	case key.Matches(msg, keys.Yes):
		granted = true
	case key.Matches(msg, keys.No):
	default:
		return a, nil
	}
	a.prompting = false
	rem := a.svc.Reminders
	return a, func() tea.Msg {
		if err := rem.SetPermission(granted); err != nil {
			return statusMsg{text: fmt.Sprintf("Reminder error: %v", err), isError: true}
		}
		if granted {
			return statusMsg{text: "Reminders enabled"}
		}
		return statusMsg{text: "Reminders off. You can enable them in Settings"}
	}
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	svc := a.svc
	return func() tea.Msg {
		dir := svc.ExportDir
		dateStr := svc.now().Format(practice.DateLayout)

		if format == 2 {
			pkg, err := svc.Identity.Export()
			if errors.Is(err, identity.ErrNoIdentity) {
				return statusMsg{text: "Create an identity before exporting it", isError: true}
			}
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
			}
			path, err := export.PackageToJSON(pkg, dir)
			if err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
			return exportDoneMsg{path: path}
		}

		st, err := svc.Practice.Stats()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		records, err := svc.Practice.DailyRecords()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		var path string
		if format == 0 {
			path = filepath.Join(dir, fmt.Sprintf("japa-daily-%s.csv", dateStr))
			if err := export.DailyRecordsToCSV(records, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(dir, fmt.Sprintf("japa-journey-%s.json", dateStr))
			if err := export.JourneyToJSON(st, records, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
