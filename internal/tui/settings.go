package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/japa/internal/reminder"
	"github.com/sadopc/japa/internal/sound"
	"github.com/sadopc/japa/internal/store"
)

type settingsModel struct {
	svc    *Services
	width  int
	height int

	settings store.Settings
	prefs    store.NotificationPrefs
	loaded   bool

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	theme       *string
	fontSize    *string
	colorScheme *string
	animations  *bool
	background  *string
	chime       *string
	language    *string
	target      *string
	remindersOn *bool
	dailyPrompt *bool
	reminderN   *int
	morningTime *string
	eveningTime *string
}

func newSettingsModel(svc *Services) settingsModel {
	theme, fontSize, scheme, bg, chime, lang, target := "", "", "", "", "", "", ""
	morning, evening := "", ""
	animations, on, prompt := false, false, false
	n := 1
	return settingsModel{
		svc:         svc,
		theme:       &theme,
		fontSize:    &fontSize,
		colorScheme: &scheme,
		animations:  &animations,
		background:  &bg,
		chime:       &chime,
		language:    &lang,
		target:      &target,
		remindersOn: &on,
		dailyPrompt: &prompt,
		reminderN:   &n,
		morningTime: &morning,
		eveningTime: &evening,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings store.Settings
	prefs    store.NotificationPrefs
}

func (s settingsModel) refresh() tea.Cmd {
	svc := s.svc
	return func() tea.Msg {
		settings, err := svc.Store.GetSettings()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		prefs, err := svc.Reminders.Preferences()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		return settingsDataMsg{settings: settings, prefs: prefs}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		s.prefs = msg.prefs
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		case key.Matches(msg, keys.Test):
			return s, s.sendTest()
		}
	}
	return s, nil
}

func validateTarget(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return errors.New("enter a whole number, 0 for the default")
	}
	return nil
}

func validateTime(v string) error {
	if !reminder.ValidTime(reminder.To24Hour(strings.TrimSpace(v))) {
		return errors.New("use HH:MM or h:MM AM/PM")
	}
	return nil
}

func chimeOptions() []huh.Option[string] {
	labels := map[sound.Sound]string{
		sound.Bell:  "Bell",
		sound.Bowl:  "Singing bowl",
		sound.Chime: "Chime",
		sound.None:  "No sound",
	}
	opts := make([]huh.Option[string], len(sound.All))
	for i, snd := range sound.All {
		opts[i] = huh.NewOption(labels[snd], string(snd))
	}
	return opts
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	st, p := s.settings, s.prefs
	*s.theme = st.Theme
	*s.fontSize = st.FontSize
	*s.colorScheme = st.ColorScheme
	*s.animations = st.AnimationsEnabled
	*s.background = st.BackgroundSound
	*s.chime = string(sound.Parse(st.CompletionChime))
	*s.language = st.Language
	*s.target = strconv.Itoa(st.TargetCount)
	*s.remindersOn = p.Status == reminder.StatusGranted
	*s.dailyPrompt = p.ShowDailyPermissionPopup
	*s.reminderN = max(1, min(p.ReminderCount, 2))
	*s.morningTime = reminder.FormatTimeForDisplay(p.MorningTime)
	*s.eveningTime = reminder.FormatTimeForDisplay(p.EveningTime)

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Round target").
				Description("Mantras per round, 0 uses the configured default").
				Value(s.target).Validate(validateTarget),
			huh.NewSelect[string]().Title("Completion chime").Options(chimeOptions()...).Value(s.chime),
			huh.NewSelect[string]().Title("Background sound").
				Options(
					huh.NewOption("None", "none"),
					huh.NewOption("Forest ambience", "forest"),
					huh.NewOption("Temple bells", "bells"),
				).Value(s.background),
		).Title("Practice"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Theme").
				Options(
					huh.NewOption("Light", "light"),
					huh.NewOption("Dark", "dark"),
					huh.NewOption("System", "system"),
				).Value(s.theme),
			huh.NewSelect[string]().Title("Font size").
				Options(
					huh.NewOption("Small", "small"),
					huh.NewOption("Medium", "medium"),
					huh.NewOption("Large", "large"),
				).Value(s.fontSize),
			huh.NewSelect[string]().Title("Color scheme").
				Options(
					huh.NewOption("Spiritual gold", "spiritual-gold"),
					huh.NewOption("Sacred orange", "sacred-orange"),
					huh.NewOption("Peaceful blue", "peaceful-blue"),
				).Value(s.colorScheme),
			huh.NewConfirm().Title("Animations").Affirmative("On").Negative("Off").Value(s.animations),
			huh.NewSelect[string]().Title("Language").
				Options(
					huh.NewOption("English", "english"),
					huh.NewOption("Hindi", "hindi"),
				).Value(s.language),
		).Title("Display"),
		huh.NewGroup(
			huh.NewConfirm().Title("Practice reminders").Affirmative("On").Negative("Off").Value(s.remindersOn),
			huh.NewConfirm().Title("Ask daily while reminders are off").Affirmative("Yes").Negative("No").Value(s.dailyPrompt),
			huh.NewSelect[int]().Title("Reminders per day").
				Options(
					huh.NewOption("Once (morning)", 1),
					huh.NewOption("Twice (morning and evening)", 2),
				).Value(s.reminderN),
			huh.NewInput().Title("Morning time").Value(s.morningTime).Validate(validateTime),
			huh.NewInput().Title("Evening time").Value(s.eveningTime).Validate(validateTime),
		).Title("Reminders"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		return s, tea.Sequence(s.saveSettings(), s.refresh())
	}

	return s, cmd
}

// formValues reads the form pointers back into typed records.
func (s settingsModel) formValues() (store.Settings, func(p *store.NotificationPrefs)) {
	target, _ := strconv.Atoi(strings.TrimSpace(*s.target))
	st := store.Settings{
		Theme:             *s.theme,
		ColorScheme:       *s.colorScheme,
		BackgroundSound:   *s.background,
		CompletionChime:   *s.chime,
		Language:          *s.language,
		FontSize:          *s.fontSize,
		AnimationsEnabled: *s.animations,
		TargetCount:       target,
	}

	on, prompt, n := *s.remindersOn, *s.dailyPrompt, *s.reminderN
	morning := reminder.To24Hour(strings.TrimSpace(*s.morningTime))
	evening := reminder.To24Hour(strings.TrimSpace(*s.eveningTime))
	apply := func(p *store.NotificationPrefs) {
		switch {
		case on:
			p.Status = reminder.StatusGranted
		case p.Status == reminder.StatusGranted:
			p.Status = reminder.StatusDenied
		}
		p.ShowDailyPermissionPopup = prompt
		p.ReminderCount = n
		p.MorningTime = morning
		p.EveningTime = evening
	}
	return st, apply
}

func (s settingsModel) saveSettings() tea.Cmd {
	svc := s.svc
	st, apply := s.formValues()
	return func() tea.Msg {
		if err := svc.Store.SaveSettings(st); err != nil {
			return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
		}
		if _, err := svc.Reminders.Update(apply); err != nil {
			return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
		}
		return settingsSavedMsg{}
	}
}

type settingsSavedMsg struct{}

func (s settingsModel) sendTest() tea.Cmd {
	rem := s.svc.Reminders
	return func() tea.Msg {
		sent, err := rem.SendTest()
		switch {
		case err != nil:
			return statusMsg{text: fmt.Sprintf("Test reminder failed: %v", err), isError: true}
		case !sent:
			return statusMsg{text: "Turn reminders on to send a test", isError: true}
		}
		return nil
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}
	if !s.loaded {
		return panelStyle.Width(w).Render(mutedStyle.Render("Loading..."))
	}

	st, p := s.settings, s.prefs
	target := formatCount(st.TargetCount)
	if st.TargetCount == 0 {
		target = "default"
	}
	reminders := onOff(p.Status == reminder.StatusGranted)
	if p.Status == reminder.StatusGranted {
		reminders += " · " + reminder.FormatTimeForDisplay(p.MorningTime)
		if p.ReminderCount == 2 {
			reminders += " and " + reminder.FormatTimeForDisplay(p.EveningTime)
		}
	}

	items := []struct{ label, value string }{
		{"Round target", target},
		{"Completion chime", string(sound.Parse(st.CompletionChime))},
		{"Background sound", st.BackgroundSound},
		{"Theme", st.Theme},
		{"Font size", st.FontSize},
		{"Color scheme", st.ColorScheme},
		{"Animations", onOff(st.AnimationsEnabled)},
		{"Language", st.Language},
		{"Reminders", reminders},
	}

	rows := []string{title, ""}
	for _, it := range items {
		label := lipgloss.NewStyle().Width(24).Render(it.label)
		rows = append(rows, fmt.Sprintf("  %s %s", label, highlightStyle.Render(it.value)))
	}
	rows = append(rows, "", mutedStyle.Render("Press enter to edit settings  t: test reminder"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
