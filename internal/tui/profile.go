package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"github.com/sadopc/japa/internal/identity"
	"github.com/sadopc/japa/internal/store"
)

const (
	importReplace = "replace"
	importMerge   = "merge"
)

type profileModel struct {
	svc    *Services
	width  int
	height int

	identity *store.Identity
	stats    *store.Stats
	token    string
	loaded   bool

	// autoCreate opens the onboarding form the first time no identity is found.
	autoCreate bool

	formActive bool
	form       *huh.Form
	formType   string // "create", "edit", "import", "reset"

	// Form field pointers (survive value copies)
	formName    *string
	formSymbol  *int
	formImport  *string
	formMode    *string
	formConfirm *bool
}

func newProfileModel(svc *Services) profileModel {
	name, symbol, imp, mode, confirm := "", identity.Symbols[0].ID, "", importReplace, false
	return profileModel{
		svc:         svc,
		autoCreate:  true,
		formName:    &name,
		formSymbol:  &symbol,
		formImport:  &imp,
		formMode:    &mode,
		formConfirm: &confirm,
	}
}

func (p *profileModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type profileDataMsg struct {
	identity *store.Identity
	stats    *store.Stats
}

// profileDoneMsg reports a finished profile action. changed means the
// practice records were replaced, merged or wiped.
type profileDoneMsg struct {
	text    string
	changed bool
}

type tokenMsg struct {
	token  string
	copied bool
}

func (p profileModel) refresh() tea.Cmd {
	svc := p.svc
	return func() tea.Msg {
		id, err := svc.Identity.Get()
		if err != nil && !errors.Is(err, identity.ErrNoIdentity) {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		st, err := svc.Practice.Stats()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		return profileDataMsg{identity: id, stats: st}
	}
}

func (p profileModel) update(msg tea.Msg) (profileModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case profileDataMsg:
		p.identity = msg.identity
		p.stats = msg.stats
		p.loaded = true
		if p.identity == nil {
			p.token = ""
			if p.autoCreate {
				p.autoCreate = false
				return p.showCreateForm()
			}
		}
		return p, nil

	case tokenMsg:
		p.token = msg.token
		if msg.copied {
			return p, statusCmd("Share code copied to clipboard", false)
		}
		return p, statusCmd("Share code shown below", false)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.New):
			if p.identity == nil {
				return p.showCreateForm()
			}
		case key.Matches(msg, keys.Edit):
			if p.identity == nil {
				return p.showCreateForm()
			}
			return p.showEditForm()
		case key.Matches(msg, keys.Token):
			if p.identity != nil {
				return p, p.shareToken()
			}
		case key.Matches(msg, keys.Import):
			return p.showImportForm()
		case key.Matches(msg, keys.Reset):
			return p.showResetForm()
		}
	}
	return p, nil
}

func symbolOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], len(identity.Symbols))
	for i, s := range identity.Symbols {
		opts[i] = huh.NewOption(fmt.Sprintf("%s  %s", s.Glyph, s.Name), s.ID)
	}
	return opts
}

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("a spiritual name is required")
	}
	return nil
}

func (p profileModel) showCreateForm() (profileModel, tea.Cmd) {
	*p.formName = ""
	*p.formSymbol = identity.Symbols[0].ID
	p.formType = "create"

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Spiritual name").
				Description("How you would like to be known on your journey").
				Value(p.formName).Validate(validateName),
			huh.NewSelect[int]().Title("Symbol").Options(symbolOptions()...).Value(p.formSymbol),
		).Title("Begin your journey"),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p profileModel) showEditForm() (profileModel, tea.Cmd) {
	*p.formName = p.identity.SpiritualName
	*p.formSymbol = p.identity.SymbolID
	p.formType = "edit"

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Spiritual name").Value(p.formName).Validate(validateName),
			huh.NewSelect[int]().Title("Symbol").Options(symbolOptions()...).Value(p.formSymbol),
		).Title("Edit profile"),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p profileModel) showImportForm() (profileModel, tea.Cmd) {
	*p.formImport = ""
	*p.formMode = importReplace
	p.formType = "import"

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().Title("Share code or package file").
				Description("Paste an "+identity.TokenPrefix+" code, or the path of an exported .json file").
				Value(p.formImport),
			huh.NewSelect[string]().Title("Apply as").
				Options(
					huh.NewOption("Replace my journey", importReplace),
					huh.NewOption("Merge into my journey", importMerge),
				).Value(p.formMode),
		).Title("Import journey"),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p profileModel) showResetForm() (profileModel, tea.Cmd) {
	*p.formConfirm = false
	p.formType = "reset"

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title("Reset your journey?").
				Description("Your identity, counts, daily log and milestones will be deleted.").
				Affirmative("Reset").Negative("Cancel").
				Value(p.formConfirm),
		),
	).WithShowHelp(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p profileModel) updateForm(msg tea.Msg) (profileModel, tea.Cmd) {
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
		return p, p.submit()
	}

	return p, cmd
}

// submit runs the action for the completed form.
func (p profileModel) submit() tea.Cmd {
	svc := p.svc
	name, symbol := *p.formName, *p.formSymbol
	input, mode, confirm := *p.formImport, *p.formMode, *p.formConfirm

	switch p.formType {
	case "create":
		return func() tea.Msg {
			id, err := svc.Identity.Create(name, symbol)
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Could not create identity: %v", err), isError: true}
			}
			return profileDoneMsg{text: "Welcome, " + id.SpiritualName}
		}
	case "edit":
		return func() tea.Msg {
			if err := svc.Identity.UpdateName(name); err != nil {
				return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
			}
			if err := svc.Identity.UpdateSymbol(symbol); err != nil {
				return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
			}
			return profileDoneMsg{text: "Profile updated"}
		}
	case "import":
		return func() tea.Msg {
			return importJourney(svc.Identity, input, mode)
		}
	case "reset":
		if !confirm {
			return nil
		}
		return func() tea.Msg {
			if err := svc.Identity.Reset(); err != nil {
				return statusMsg{text: fmt.Sprintf("Reset failed: %v", err), isError: true}
			}
			return profileDoneMsg{text: "Journey reset", changed: true}
		}
	}
	return nil
}

// importJourney resolves input as a share code or a package file path and
// applies it. It returns the message to show.
func importJourney(ids *identity.Service, input, mode string) tea.Msg {
	input = strings.TrimSpace(input)

	var pkg *identity.Package
	if strings.HasPrefix(input, identity.TokenPrefix) {
		pkg = identity.ParseToken(input)
	} else if input != "" {
		var err error
		pkg, err = identity.ReadPackageFile(input)
		if err != nil {
			log.Debug().Err(err).Str("path", input).Msg("import package file")
			pkg = nil
		}
	}
	if pkg == nil {
		return statusMsg{text: "Invalid code, please try again", isError: true}
	}

	// Merging needs a local identity to merge into.
	if mode == importMerge {
		exists, err := ids.Exists()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Import failed: %v", err), isError: true}
		}
		if !exists {
			mode = importReplace
		}
	}

	apply, verb := ids.ApplyReplace, "restored"
	if mode == importMerge {
		apply, verb = ids.ApplyMerge, "merged"
	}
	if err := apply(pkg); err != nil {
		if errors.Is(err, identity.ErrChecksumMismatch) || errors.Is(err, identity.ErrMalformedPackage) {
			return statusMsg{text: "Invalid or tampered data", isError: true}
		}
		return statusMsg{text: fmt.Sprintf("Import failed: %v", err), isError: true}
	}
	return profileDoneMsg{text: fmt.Sprintf("Journey %s (%s mantras)", verb, formatCount(pkg.Stats.TotalCount)), changed: true}
}

func (p profileModel) shareToken() tea.Cmd {
	ids := p.svc.Identity
	return func() tea.Msg {
		token, err := ids.ExportToken()
		if err != nil {
			return statusMsg{text: "Could not create share code", isError: true}
		}
		copied := true
		if err := clipboard.WriteAll(token); err != nil {
			log.Debug().Err(err).Msg("clipboard unavailable")
			copied = false
		}
		return tokenMsg{token: token, copied: copied}
	}
}

func (p profileModel) view() string {
	w := p.width - 4
	title := titleStyle.Render("Profile")

	if p.formActive && p.form != nil {
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View()),
		)
	}

	if !p.loaded {
		return panelStyle.Width(w).Render(mutedStyle.Render("Loading..."))
	}

	if p.identity == nil {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "",
			normalItemStyle.Render("You have not created a spiritual identity yet."),
			"",
			mutedStyle.Render("n: create identity  i: import journey"),
		))
	}

	id := p.identity
	glyph := "?"
	symbolName := ""
	if s, ok := identity.SymbolByID(id.SymbolID); ok {
		glyph, symbolName = s.Glyph, s.Name
	}
	since := time.UnixMilli(id.CreationDate).Format("January 2, 2006")

	rows := []string{
		title, "",
		fmt.Sprintf("%s  %s", highlightStyle.Render(glyph), titleStyle.Render(id.SpiritualName)),
		mutedStyle.Render(symbolName),
		"",
		fmt.Sprintf("%s %s", mutedStyle.Render("Identity:"), accentStyle.Render(id.UniqueID)),
		fmt.Sprintf("%s %s", mutedStyle.Render("Practising since:"), normalItemStyle.Render(since)),
	}
	if p.stats != nil {
		rows = append(rows, fmt.Sprintf("%s %s", mutedStyle.Render("Lifetime mantras:"),
			highlightStyle.Render(formatCount(p.stats.TotalCount))))
	}
	if p.token != "" {
		rows = append(rows, "", subtitleStyle.Render("Share code"),
			normalItemStyle.Width(w-6).Render(p.token))
	}
	rows = append(rows, "", mutedStyle.Render("enter: edit  t: share code  i: import  e: export  X: reset"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
