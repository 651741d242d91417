package tui

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/japa/internal/challenge"
	"github.com/sadopc/japa/internal/identity"
	"github.com/sadopc/japa/internal/practice"
	"github.com/sadopc/japa/internal/reminder"
	"github.com/sadopc/japa/internal/sound"
	"github.com/sadopc/japa/internal/store"
)

var fixedNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	svc   *Services
	store *store.Store
	bell  *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	now := func() time.Time { return fixedNow }
	tracker := practice.NewTracker(s, now)
	bell := &bytes.Buffer{}
	svc := &Services{
		Store:         s,
		Practice:      tracker,
		Challenges:    challenge.NewTracker(s),
		Identity:      identity.NewService(s, tracker, now, nil),
		Reminders:     reminder.NewService(s, nil, now),
		Sound:         sound.NewPlayer(bell),
		ExportDir:     t.TempDir(),
		DefaultTarget: 108,
		Now:           now,
	}
	return &testEnv{svc: svc, store: s, bell: bell}
}

// run executes cmd and returns its message, failing on a nil command.
func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd()
}

func statusText(t *testing.T, msg tea.Msg) statusMsg {
	t.Helper()
	sm, ok := msg.(statusMsg)
	if !ok {
		t.Fatalf("expected statusMsg, got %T", msg)
	}
	return sm
}

// ============================================================
// Helpers
// ============================================================

func TestFormatCount(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{108, "108"},
		{1008, "1,008"},
		{10008, "10,008"},
		{1234567, "1,234,567"},
		{-1008, "-1,008"},
	}
	for _, tt := range tests {
		if got := formatCount(tt.n); got != tt.want {
			t.Errorf("formatCount(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestPlural(t *testing.T) {
	if got := plural(1, "day"); got != "1 day" {
		t.Fatalf("got %q", got)
	}
	if got := plural(21, "day"); got != "21 days" {
		t.Fatalf("got %q", got)
	}
}

func TestRoundTarget(t *testing.T) {
	if roundTarget(27, 108) != 27 {
		t.Fatal("setting should win")
	}
	if roundTarget(0, 108) != 108 {
		t.Fatal("zero setting should fall back")
	}
	if roundTarget(0, 0) != 0 {
		t.Fatal("both zero means open-ended")
	}
}

func TestViewNames(t *testing.T) {
	if len(viewNames) != int(viewSettings)+1 {
		t.Fatalf("expected %d view names, got %d", int(viewSettings)+1, len(viewNames))
	}
	if viewNames[viewCounter] != "Counter" || viewNames[viewSettings] != "Settings" {
		t.Fatalf("unexpected view names %v", viewNames)
	}
}

// ============================================================
// Counter
// ============================================================

func loadedCounter(t *testing.T, env *testEnv, target int) counterModel {
	t.Helper()
	st := store.DefaultSettings
	st.TargetCount = target
	if err := env.store.SaveSettings(st); err != nil {
		t.Fatal(err)
	}
	c := newCounterModel(env.svc)
	c.setSize(100, 30)
	c, _ = c.update(run(t, c.loadData()))
	return c
}

func TestCounterLoadsTarget(t *testing.T) {
	env := newTestEnv(t)
	c := loadedCounter(t, env, 27)
	if c.target != 27 {
		t.Fatalf("target = %d, want 27", c.target)
	}
	if c.mantra.Text == "" {
		t.Fatal("mantra of the day should be loaded")
	}

	c = loadedCounter(t, env, 0)
	if c.target != 108 {
		t.Fatalf("target = %d, want configured default 108", c.target)
	}
}

func TestCounterCountPersists(t *testing.T) {
	env := newTestEnv(t)
	c := loadedCounter(t, env, 108)

	c, cmd := c.count()
	if c.session != 1 {
		t.Fatalf("session = %d, want 1", c.session)
	}
	msg, ok := run(t, cmd).(countedMsg)
	if !ok {
		t.Fatal("expected countedMsg")
	}
	if msg.result.Stats.TotalCount != 1 || msg.result.Stats.TodayCount != 1 {
		t.Fatalf("unexpected stats %+v", msg.result.Stats)
	}

	c, _ = c.update(msg)
	if c.stats == nil || c.stats.TotalCount != 1 {
		t.Fatal("counter should show updated stats")
	}
}

func TestCounterBlocksAtTarget(t *testing.T) {
	env := newTestEnv(t)
	c := loadedCounter(t, env, 3)

	var cmd tea.Cmd
	for range 3 {
		c, cmd = c.count()
		c, _ = c.update(run(t, cmd))
	}
	if !c.done || c.rounds != 1 {
		t.Fatalf("round should be complete, done=%v rounds=%d", c.done, c.rounds)
	}
	if !strings.Contains(env.bell.String(), "\a") {
		t.Fatal("completion chime should ring")
	}

	c, cmd = c.count()
	if c.session != 3 {
		t.Fatalf("session = %d, counting should be blocked", c.session)
	}
	if _, ok := run(t, cmd).(statusMsg); !ok {
		t.Fatal("blocked count should only report status")
	}

	st, _ := env.svc.Practice.Stats()
	if st.TotalCount != 3 {
		t.Fatalf("total = %d, want 3", st.TotalCount)
	}

	c, _ = c.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if c.done || c.session != 0 {
		t.Fatal("new round should reset the session")
	}
	if c.rounds != 1 {
		t.Fatal("completed rounds survive a new round")
	}
}

func TestCounterSpaceCounts(t *testing.T) {
	env := newTestEnv(t)
	c := loadedCounter(t, env, 108)

	c, cmd := c.update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	if c.session != 1 || cmd == nil {
		t.Fatal("space should count")
	}
}

func TestCountedNote(t *testing.T) {
	res := &practice.Result{Stats: &store.Stats{}}

	if note := countedNote(countedMsg{result: res, session: 5}); note != "" {
		t.Fatalf("expected no note, got %q", note)
	}
	if note := countedNote(countedMsg{result: res, session: 27}); !strings.Contains(note, "quarter mala") {
		t.Fatalf("got %q", note)
	}
	if note := countedNote(countedMsg{result: res, session: 108, reached: true}); note != "Round complete" {
		t.Fatalf("got %q", note)
	}

	res = &practice.Result{
		Stats:           &store.Stats{},
		NewAchievements: []string{"108_TOTAL"},
		NewMilestones:   []store.Milestone{{Title: "Sacred 108"}},
	}
	note := countedNote(countedMsg{result: res, session: 12})
	if !strings.Contains(note, "Achievement unlocked: 108 mantras") || !strings.Contains(note, "Milestone reached: Sacred 108") {
		t.Fatalf("got %q", note)
	}
}

// ============================================================
// Dashboard
// ============================================================

func TestDailySeries(t *testing.T) {
	records := []store.DailyRecord{
		{Date: "2026-03-10", Count: 108},
		{Date: "2026-03-08", Count: 27},
		{Date: "2026-02-01", Count: 5},
	}
	dates, counts := dailySeries(records, fixedNow, 7)
	if len(dates) != 7 || len(counts) != 7 {
		t.Fatalf("expected 7 days, got %d", len(dates))
	}
	if dates[0] != "2026-03-04" || dates[6] != "2026-03-10" {
		t.Fatalf("unexpected range %s..%s", dates[0], dates[6])
	}
	want := []int{0, 0, 0, 0, 27, 0, 108}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("counts = %v, want %v", counts, want)
		}
	}
}

func TestChartDays(t *testing.T) {
	if chartDays(10) != 7 {
		t.Fatal("narrow charts show a week")
	}
	if chartDays(300) != practice.MaxDailyRecords {
		t.Fatal("wide charts are capped at the log size")
	}
	if chartDays(60) != 20 {
		t.Fatalf("chartDays(60) = %d", chartDays(60))
	}
}

func TestDashboardLoad(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.svc.Practice.Increment(5); err != nil {
		t.Fatal(err)
	}

	d := newDashboardModel(env.svc)
	d.setSize(120, 40)
	d, _ = d.update(run(t, d.loadData()))

	if d.stats == nil || d.stats.TotalCount != 5 {
		t.Fatal("stats not loaded")
	}
	if len(d.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(d.records))
	}
	if d.next == nil || d.next.IsAchieved {
		t.Fatal("next milestone not loaded")
	}
	if d.content.Mantra.Text != challenge.DailyContent(fixedNow).Mantra.Text {
		t.Fatal("mantra of the day mismatch")
	}
	if !strings.Contains(d.view(), "Mantra of the day") {
		t.Fatal("view should show the mantra panel")
	}
}

// ============================================================
// Journey
// ============================================================

func TestJourneyLoadAndNavigate(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.svc.Practice.Increment(108); err != nil {
		t.Fatal(err)
	}

	j := newJourneyModel(env.svc)
	j.setSize(120, 40)
	j, _ = j.update(run(t, j.refresh()))
	if len(j.milestones) != len(practice.Catalog) {
		t.Fatalf("expected %d milestones, got %d", len(practice.Catalog), len(j.milestones))
	}

	j, _ = j.update(tea.KeyMsg{Type: tea.KeyDown})
	if j.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", j.cursor)
	}
	j, _ = j.update(tea.KeyMsg{Type: tea.KeyUp})
	j, _ = j.update(tea.KeyMsg{Type: tea.KeyUp})
	if j.cursor != 0 {
		t.Fatal("cursor should stop at the top")
	}

	view := j.view()
	if !strings.Contains(view, "Sacred 108") || !strings.Contains(view, "108 mantras") {
		t.Fatal("view should list milestones and achievements")
	}
}

// ============================================================
// Challenges
// ============================================================

func TestChallengesMarkComplete(t *testing.T) {
	env := newTestEnv(t)
	c := newChallengesModel(env.svc)
	c.setSize(120, 40)
	c, _ = c.update(run(t, c.refresh()))

	if c.daily.ID != challenge.Daily(fixedNow).ID {
		t.Fatal("daily challenge mismatch")
	}
	if c.monthly.ID != challenge.Monthly(fixedNow).ID {
		t.Fatal("monthly challenge mismatch")
	}
	if c.dailyDone || c.monthlyDone {
		t.Fatal("nothing should be complete yet")
	}

	msg := run(t, c.markComplete())
	c, _ = c.update(msg)
	if !c.dailyDone {
		t.Fatal("daily should be complete")
	}
	if done, _ := env.svc.Challenges.IsDailyComplete(fixedNow); !done {
		t.Fatal("daily completion should persist")
	}
	if sm := statusText(t, run(t, c.markComplete())); sm.text != "Already completed" {
		t.Fatalf("got %q", sm.text)
	}

	c, _ = c.update(tea.KeyMsg{Type: tea.KeyDown})
	c, _ = c.update(run(t, c.markComplete()))
	if !c.monthlyDone {
		t.Fatal("monthly should be complete")
	}
}

// ============================================================
// Profile
// ============================================================

func TestProfileAutoCreateForm(t *testing.T) {
	env := newTestEnv(t)
	p := newProfileModel(env.svc)
	p.setSize(120, 40)

	p, _ = p.update(run(t, p.refresh()))
	if !p.formActive || p.formType != "create" {
		t.Fatal("onboarding form should open when no identity exists")
	}
	if p.autoCreate {
		t.Fatal("onboarding opens only once")
	}

	p, _ = p.update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.formActive {
		t.Fatal("esc should cancel the form")
	}
}

func TestProfileSubmitCreateAndEdit(t *testing.T) {
	env := newTestEnv(t)
	p := newProfileModel(env.svc)

	p.formType = "create"
	*p.formName = "  Shanti "
	*p.formSymbol = 2
	done, ok := run(t, p.submit()).(profileDoneMsg)
	if !ok || done.text != "Welcome, Shanti" {
		t.Fatalf("unexpected result %+v", done)
	}

	p.formType = "edit"
	*p.formName = "Prema"
	*p.formSymbol = 3
	if _, ok := run(t, p.submit()).(profileDoneMsg); !ok {
		t.Fatal("edit should succeed")
	}
	id, err := env.svc.Identity.Get()
	if err != nil {
		t.Fatal(err)
	}
	if id.SpiritualName != "Prema" || id.SymbolID != 3 {
		t.Fatalf("identity not updated: %+v", id)
	}
}

func TestProfileResetNeedsConfirm(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.svc.Identity.Create("Shanti", 1); err != nil {
		t.Fatal(err)
	}
	p := newProfileModel(env.svc)
	p.formType = "reset"

	*p.formConfirm = false
	if p.submit() != nil {
		t.Fatal("unconfirmed reset should do nothing")
	}

	*p.formConfirm = true
	done, ok := run(t, p.submit()).(profileDoneMsg)
	if !ok || !done.changed {
		t.Fatal("confirmed reset should report a change")
	}
	if exists, _ := env.svc.Identity.Exists(); exists {
		t.Fatal("identity should be gone")
	}
}

func TestImportJourneyInvalid(t *testing.T) {
	env := newTestEnv(t)
	for _, input := range []string{"", "hello", identity.TokenPrefix + "!!!", "/no/such/file.json"} {
		sm := statusText(t, importJourney(env.svc.Identity, input, importReplace))
		if sm.text != "Invalid code, please try again" || !sm.isError {
			t.Fatalf("input %q: got %+v", input, sm)
		}
	}
}

func TestImportJourneyTampered(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.svc.Identity.Create("Shanti", 1); err != nil {
		t.Fatal(err)
	}
	pkg, err := env.svc.Identity.Export()
	if err != nil {
		t.Fatal(err)
	}
	pkg.Stats.TotalCount = 100000
	data, _ := json.Marshal(pkg)
	token := identity.TokenPrefix + base64.StdEncoding.EncodeToString(data)

	sm := statusText(t, importJourney(env.svc.Identity, token, importReplace))
	if sm.text != "Invalid or tampered data" {
		t.Fatalf("got %q", sm.text)
	}
}

func TestImportJourneyTokenAndFile(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.svc.Identity.Create("Shanti", 1); err != nil {
		t.Fatal(err)
	}
	if _, err := env.svc.Practice.Increment(54); err != nil {
		t.Fatal(err)
	}
	token, err := env.svc.Identity.ExportToken()
	if err != nil {
		t.Fatal(err)
	}
	if err := env.svc.Identity.Reset(); err != nil {
		t.Fatal(err)
	}

	done, ok := importJourney(env.svc.Identity, token, importReplace).(profileDoneMsg)
	if !ok || !done.changed {
		t.Fatal("replace import should succeed")
	}
	st, _ := env.svc.Practice.Stats()
	if st.TotalCount != 54 {
		t.Fatalf("total = %d, want 54", st.TotalCount)
	}

	// Merging the same journey back counts it twice.
	pkg, _ := env.svc.Identity.Export()
	data, _ := json.Marshal(pkg)
	path := filepath.Join(t.TempDir(), pkg.FileName())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := importJourney(env.svc.Identity, path, importMerge).(profileDoneMsg); !ok {
		t.Fatal("merge import from file should succeed")
	}
	st, _ = env.svc.Practice.Stats()
	if st.TotalCount != 108 {
		t.Fatalf("total = %d, want 108", st.TotalCount)
	}
}

func TestImportJourneyMergeWithoutIdentity(t *testing.T) {
	env := newTestEnv(t)
	id, err := env.svc.Identity.Create("Shanti", 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := env.svc.Practice.Increment(27); err != nil {
		t.Fatal(err)
	}
	token, err := env.svc.Identity.ExportToken()
	if err != nil {
		t.Fatal(err)
	}
	if err := env.svc.Identity.Reset(); err != nil {
		t.Fatal(err)
	}

	done, ok := importJourney(env.svc.Identity, token, importMerge).(profileDoneMsg)
	if !ok {
		t.Fatal("merge with no identity should fall back to restore")
	}
	if !strings.Contains(done.text, "restored") {
		t.Fatalf("status = %q, want a restore", done.text)
	}
	got, err := env.svc.Identity.Get()
	if err != nil {
		t.Fatalf("identity not restored: %v", err)
	}
	if got.UniqueID != id.UniqueID {
		t.Fatalf("unique id = %s, want %s", got.UniqueID, id.UniqueID)
	}
	st, _ := env.svc.Practice.Stats()
	if st.TotalCount != 27 {
		t.Fatalf("total = %d, want 27", st.TotalCount)
	}
}

func TestProfileShareToken(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.svc.Identity.Create("Shanti", 1); err != nil {
		t.Fatal(err)
	}
	p := newProfileModel(env.svc)
	p, _ = p.update(run(t, p.refresh()))

	msg, ok := run(t, p.shareToken()).(tokenMsg)
	if !ok {
		t.Fatal("expected tokenMsg")
	}
	if !strings.HasPrefix(msg.token, identity.TokenPrefix) {
		t.Fatalf("bad token %q", msg.token)
	}
	p, _ = p.update(msg)
	if p.token != msg.token {
		t.Fatal("token should be shown")
	}
	if identity.ParseToken(p.token) == nil {
		t.Fatal("shown token should parse")
	}
}

// ============================================================
// Settings
// ============================================================

func TestValidateTarget(t *testing.T) {
	for _, ok := range []string{"0", "108", " 27 "} {
		if validateTarget(ok) != nil {
			t.Errorf("%q should be valid", ok)
		}
	}
	for _, bad := range []string{"", "-1", "abc", "1.5"} {
		if validateTarget(bad) == nil {
			t.Errorf("%q should be invalid", bad)
		}
	}
}

func TestValidateTime(t *testing.T) {
	for _, ok := range []string{"07:00", "19:30", "7:00 AM", "7:30 PM"} {
		if validateTime(ok) != nil {
			t.Errorf("%q should be valid", ok)
		}
	}
	for _, bad := range []string{"", "25:00", "7 PM", "noon"} {
		if validateTime(bad) == nil {
			t.Errorf("%q should be invalid", bad)
		}
	}
}

func TestSettingsSave(t *testing.T) {
	env := newTestEnv(t)
	s := newSettingsModel(env.svc)
	s, _ = s.update(run(t, s.refresh()))
	s, _ = s.showForm()

	if *s.target != "108" || *s.chime != "bell" {
		t.Fatalf("form not seeded: target=%q chime=%q", *s.target, *s.chime)
	}
	if *s.morningTime != "7:00 AM" {
		t.Fatalf("morning = %q, want 12-hour display", *s.morningTime)
	}

	*s.target = "27"
	*s.chime = "bowl"
	*s.remindersOn = true
	*s.reminderN = 2
	*s.morningTime = "6:15 AM"
	*s.eveningTime = "20:45"

	if _, ok := run(t, s.saveSettings()).(settingsSavedMsg); !ok {
		t.Fatal("save should succeed")
	}

	st, _ := env.store.GetSettings()
	if st.TargetCount != 27 || st.CompletionChime != "bowl" {
		t.Fatalf("settings not saved: %+v", st)
	}
	prefs, _ := env.svc.Reminders.Preferences()
	if prefs.Status != reminder.StatusGranted || prefs.ReminderCount != 2 {
		t.Fatalf("prefs not saved: %+v", prefs)
	}
	if prefs.MorningTime != "06:15" || prefs.EveningTime != "20:45" {
		t.Fatalf("times = %q/%q", prefs.MorningTime, prefs.EveningTime)
	}

	// Turning reminders off denies them.
	*s.remindersOn = false
	run(t, s.saveSettings())
	prefs, _ = env.svc.Reminders.Preferences()
	if prefs.Status != reminder.StatusDenied {
		t.Fatalf("status = %q, want denied", prefs.Status)
	}
}

func TestSettingsSendTestRequiresPermission(t *testing.T) {
	env := newTestEnv(t)
	s := newSettingsModel(env.svc)
	sm := statusText(t, run(t, s.sendTest()))
	if !sm.isError {
		t.Fatal("test reminder without permission should report an error")
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	env := newTestEnv(t)
	app := NewApp(*env.svc)

	if app.activeView != viewCounter {
		t.Fatal("default view should be the counter")
	}
	if app.showHelp || app.exportPicking || app.prompting {
		t.Fatal("overlays should be hidden by default")
	}
	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppViewStates(t *testing.T) {
	env := newTestEnv(t)
	app := NewApp(*env.svc)
	app.width = 120
	app.height = 40

	for v := range viewState(len(viewNames)) {
		app.activeView = v
		if output := app.View(); output == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppTabCycles(t *testing.T) {
	env := newTestEnv(t)
	app := NewApp(*env.svc)
	app.activeView = viewSettings

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyTab})
	if model.(App).activeView != viewCounter {
		t.Fatal("tab should wrap to the counter")
	}
	if cmd == nil {
		t.Fatal("switching views should refresh")
	}

	model, _ = model.(App).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4")})
	if model.(App).activeView != viewChallenges {
		t.Fatal("4 should open challenges")
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	env := newTestEnv(t)
	app := NewApp(*env.svc)
	app.width = 120
	app.height = 40

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppLoadingState(t *testing.T) {
	env := newTestEnv(t)
	app := NewApp(*env.svc)
	if output := app.View(); output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppStatusMessage(t *testing.T) {
	env := newTestEnv(t)
	app := NewApp(*env.svc)
	app.width = 120
	app.height = 40

	model, _ := app.Update(statusMsg{text: "test status"})
	if !strings.Contains(model.(App).renderFooter(), "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppOnboardingSwitchesToProfile(t *testing.T) {
	env := newTestEnv(t)
	app := NewApp(*env.svc)

	model, _ := app.Update(profileDataMsg{})
	got := model.(App)
	if got.activeView != viewProfile {
		t.Fatal("missing identity should open the profile view")
	}
	if !got.isFormActive() {
		t.Fatal("onboarding form should be active")
	}
}

func TestAppReminderMsg(t *testing.T) {
	env := newTestEnv(t)
	app := NewApp(*env.svc)

	model, cmd := app.Update(ReminderMsg{Title: reminder.Title, Body: "Time to chant"})
	if !strings.Contains(model.(App).status, "Time to chant") {
		t.Fatal("reminder should show in the status line")
	}
	run(t, cmd)
	if env.bell.String() != "\a" {
		t.Fatalf("default chime should ring once, got %q", env.bell.String())
	}
}

func TestAppReminderUsesChimeSetting(t *testing.T) {
	tests := []struct {
		chime string
		want  int
	}{
		{"bowl", 2},
		{"chime", 3},
		{"none", 0},
	}
	for _, tt := range tests {
		t.Run(tt.chime, func(t *testing.T) {
			env := newTestEnv(t)
			if err := env.store.SetSetting("completion_chime", tt.chime); err != nil {
				t.Fatal(err)
			}
			app := NewApp(*env.svc)
			_, cmd := app.Update(ReminderMsg{Title: reminder.Title, Body: "Time to chant"})
			run(t, cmd)
			if env.bell.Len() != tt.want {
				t.Fatalf("rings = %d, want %d", env.bell.Len(), tt.want)
			}
		})
	}
}

func TestAppPermissionPrompt(t *testing.T) {
	env := newTestEnv(t)
	app := NewApp(*env.svc)

	msg := run(t, app.checkPermissionPrompt())
	if _, ok := msg.(permissionPromptMsg); !ok {
		t.Fatalf("expected prompt on first run, got %T", msg)
	}
	if msg := run(t, app.checkPermissionPrompt()); msg != nil {
		t.Fatal("prompt is shown once per day")
	}

	model, _ := app.Update(permissionPromptMsg{})
	app = model.(App)
	if !app.prompting {
		t.Fatal("prompt should be visible")
	}

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if model.(App).prompting {
		t.Fatal("answering should close the prompt")
	}
	run(t, cmd)
	prefs, _ := env.svc.Reminders.Preferences()
	if prefs.Status != reminder.StatusGranted {
		t.Fatalf("status = %q, want granted", prefs.Status)
	}
}

func TestAppExport(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.svc.Practice.Increment(9); err != nil {
		t.Fatal(err)
	}
	app := NewApp(*env.svc)

	for format, ext := range []string{".csv", ".json"} {
		done, ok := run(t, app.doExport(format)).(exportDoneMsg)
		if !ok {
			t.Fatalf("format %d: export failed", format)
		}
		if filepath.Ext(done.path) != ext {
			t.Fatalf("format %d: path %q", format, done.path)
		}
		if _, err := os.Stat(done.path); err != nil {
			t.Fatal(err)
		}
	}

	sm := statusText(t, run(t, app.doExport(2)))
	if !sm.isError {
		t.Fatal("package export without identity should fail")
	}

	if _, err := env.svc.Identity.Create("Shanti", 1); err != nil {
		t.Fatal(err)
	}
	done, ok := run(t, app.doExport(2)).(exportDoneMsg)
	if !ok {
		t.Fatal("package export should succeed")
	}
	pkg, err := identity.ReadPackageFile(done.path)
	if err != nil {
		t.Fatal(err)
	}
	if identity.Verify(pkg) != nil {
		t.Fatal("exported package should verify")
	}
}

func TestAppExportPickerNavigation(t *testing.T) {
	env := newTestEnv(t)
	app := NewApp(*env.svc)

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	app = model.(App)
	if !app.exportPicking {
		t.Fatal("e should open the export picker")
	}
	for range 5 {
		model, _ = app.Update(tea.KeyMsg{Type: tea.KeyDown})
		app = model.(App)
	}
	if app.exportCursor != len(exportFormats)-1 {
		t.Fatalf("cursor = %d", app.exportCursor)
	}
	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if model.(App).exportPicking {
		t.Fatal("esc should close the picker")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test: they must render)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"count", func() string { return countStyle.Render("test") }},
		{"countDone", func() string { return countDoneStyle.Render("test") }},
		{"mantra", func() string { return mantraStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"subtitle", func() string { return subtitleStyle.Render("test") }},
		{"accent", func() string { return accentStyle.Render("test") }},
		{"success", func() string { return successStyle.Render("test") }},
		{"warning", func() string { return warningStyle.Render("test") }},
		{"error", func() string { return errorStyle.Render("test") }},
		{"muted", func() string { return mutedStyle.Render("test") }},
		{"highlight", func() string { return highlightStyle.Render("test") }},
		{"header", func() string { return headerStyle.Render("test") }},
		{"footer", func() string { return footerStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
		{"normalItem", func() string { return normalItemStyle.Render("test") }},
	}

	for _, s := range styles {
		if s.fn() == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}
