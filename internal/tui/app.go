// Package tui implements the colorvault gallery terminal user interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opencode-ai/colorvault/internal/models"
	"github.com/opencode-ai/colorvault/internal/palettes"
	"github.com/opencode-ai/colorvault/internal/session"
	"github.com/opencode-ai/colorvault/internal/theme"
	"github.com/opencode-ai/colorvault/internal/tui/components"
	"github.com/opencode-ai/colorvault/internal/tui/styles"
)

// ConsentChecker reports whether storage consent is in place.
type ConsentChecker interface {
	HasConsent(ctx context.Context) bool
}

// Options wires the gallery to the core.
type Options struct {
	Controller *session.Controller
	// Load produces the startup collection; it runs off the update loop.
	Load       func(context.Context) []models.Palette
	Consent    ConsentChecker
	Preference *theme.Preference
	Signal     theme.Signal
	// SwatchLimit caps swatches per card.
	SwatchLimit int
}

// Run launches the gallery program. The draft of an unfinished edit session
// is discarded on quit.
func Run(ctx context.Context, opts Options) error {
	if opts.Controller == nil {
		return errors.New("session controller is required")
	}

	m := newModel(ctx, opts)
	m.themeSub = subscribeTheme(opts.Signal)
	defer m.themeSub.Close()

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

type model struct {
	ctx        context.Context
	ctrl       *session.Controller
	load       func(context.Context) []models.Palette
	consent    ConsentChecker
	preference *theme.Preference
	signal     theme.Signal
	themeSub   *themeSubscription

	styles      styles.Styles
	themePref   models.Theme
	width       int
	height      int
	cursor      int
	swatchLimit int

	form      *components.PaletteForm
	filtering bool
	filter    string

	consentGiven bool
	status       string
	statusStyle  statusKind
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusWarning
	statusError
)

const (
	minWidth  = 60
	minHeight = 15
)

func newModel(ctx context.Context, opts Options) model {
	m := model{
		ctx:         ctx,
		ctrl:        opts.Controller,
		load:        opts.Load,
		consent:     opts.Consent,
		preference:  opts.Preference,
		signal:      opts.Signal,
		swatchLimit: opts.SwatchLimit,
		themePref:   models.ThemeLight,
	}
	if m.preference != nil {
		m.themePref = m.preference.Current(ctx)
	}
	if m.consent != nil {
		m.consentGiven = m.consent.HasConsent(ctx)
	}
	m.applyTheme()
	return m
}

func (m *model) applyTheme() {
	m.styles = styles.BuildStyles(styles.ForTheme(theme.Resolve(m.themePref, m.signal)))
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.themeSub.wait()}
	if m.ctrl.IsLoading() {
		cmds = append(cmds, LoadPalettes(m.ctx, m.load))
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case PalettesLoadedMsg:
		m.ctrl.Publish(msg.Palettes)
		m.clampCursor()
	case ThemeChangedMsg:
		m.applyTheme()
		return m, m.themeSub.wait()
	case ConsentSavedMsg:
		m.handleConsentSaved(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.form != nil {
		return m.handleFormKey(msg), nil
	}
	if _, pending := m.ctrl.PendingDelete(); pending {
		return m.handleDeleteKey(msg), nil
	}
	if m.filtering {
		return m.handleFilterKey(msg), nil
	}
	if m.ctrl.IsLoading() {
		if msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "j", "down":
		m.cursor++
		m.clampCursor()
	case "k", "up":
		m.cursor--
		m.clampCursor()
	case "e":
		m.toggleEdit()
	case "J", "shift+down":
		m.move(1)
	case "K", "shift+up":
		m.move(-1)
	case "a":
		if m.ctrl.Editing() {
			m.form = components.NewPaletteForm()
		}
	case "enter":
		if m.ctrl.Editing() {
			if p, ok := m.selected(); ok {
				m.form = components.EditPaletteForm(palettes.DraftFrom(p))
			}
		}
	case "d", "delete":
		if p, ok := m.selected(); ok && m.ctrl.Editing() {
			if _, err := m.ctrl.RequestDelete(p.ID); err != nil {
				m.setStatus(statusError, err.Error())
			}
		}
	case "c":
		if !m.consentGiven {
			return m, m.acceptConsent()
		}
	case "t":
		m.cycleTheme()
	case "/":
		if !m.ctrl.Editing() {
			m.filtering = true
		}
	}
	return m, nil
}

func (m model) handleFormKey(msg tea.KeyMsg) model {
	switch msg.Type {
	case tea.KeyEsc:
		m.form = nil
	case tea.KeyEnter:
		m.saveForm()
	case tea.KeyTab, tea.KeyDown:
		m.form.Move(1)
	case tea.KeyShiftTab, tea.KeyUp:
		m.form.Move(-1)
	case tea.KeyBackspace:
		m.form.Backspace()
	case tea.KeyCtrlN:
		m.form.AddColor()
	case tea.KeyCtrlD:
		m.form.RemoveColor()
	case tea.KeySpace:
		m.form.Type(" ")
	case tea.KeyRunes:
		m.form.Type(string(msg.Runes))
	}
	return m
}

func (m *model) saveForm() {
	p, err := palettes.Build(m.form.Draft())
	if err != nil {
		m.form.Err = err.Error()
		return
	}

	if m.form.Editing() {
		err = m.ctrl.ReplacePalette(p)
	} else {
		err = m.ctrl.AddPalette(p)
	}
	if err != nil {
		m.form.Err = err.Error()
		return
	}

	if !m.form.Editing() {
		m.cursor = len(m.ctrl.Displayed()) - 1
	}
	verb := "added to"
	if m.form.Editing() {
		verb = "updated in"
	}
	m.form = nil
	m.setStatus(statusInfo, fmt.Sprintf("%q %s the draft.", p.Name, verb))
}

func (m model) handleDeleteKey(msg tea.KeyMsg) model {
	switch msg.String() {
	case "y", "Y", "enter":
		if err := m.ctrl.ConfirmDelete(); err != nil {
			m.setStatus(statusError, err.Error())
		}
		m.clampCursor()
	case "n", "N", "esc":
		m.ctrl.CancelDelete()
	}
	return m
}

func (m model) handleFilterKey(msg tea.KeyMsg) model {
	switch msg.Type {
	case tea.KeyEnter:
		m.filtering = false
	case tea.KeyEsc:
		m.filtering = false
		m.filter = ""
	case tea.KeyBackspace:
		if r := []rune(m.filter); len(r) > 0 {
			m.filter = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.filter += " "
	case tea.KeyRunes:
		m.filter += string(msg.Runes)
	}
	m.cursor = 0
	return m
}

func (m *model) toggleEdit() {
	if !m.ctrl.Editing() {
		if err := m.ctrl.EnterEdit(); err != nil {
			m.setStatus(statusError, err.Error())
			return
		}
		m.filter = ""
		m.setStatus(statusInfo, "Edit mode: a add, enter edit, d delete, J/K move, e save.")
		return
	}

	result, err := m.ctrl.ExitEdit(m.ctx)
	if err != nil {
		m.setStatus(statusError, err.Error())
		return
	}
	m.clampCursor()
	switch {
	case result.Persisted:
		m.setStatus(statusSuccess, "Changes saved.")
	case result.ConsentMissing:
		m.setStatus(statusWarning, "Please accept the storage policy to persist your changes. Your changes are visible but will be lost on exit.")
	default:
		m.setStatus(statusWarning, "Changes could not be saved and will be lost on exit.")
	}
}

func (m *model) move(delta int) {
	if !m.ctrl.Editing() {
		return
	}
	to := m.cursor + delta
	if err := m.ctrl.Move(m.cursor, to); err != nil {
		return
	}
	m.cursor = to
}

func (m model) acceptConsent() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	if ctrl.Editing() {
		// Accepting saves the active collection, so it waits until the draft is committed.
		return func() tea.Msg {
			return ConsentSavedMsg{Err: errors.New("leave edit mode before accepting storage")}
		}
	}
	saved, err := ctrl.AcceptConsent(ctx)
	return func() tea.Msg {
		return ConsentSavedMsg{Saved: saved, Err: err}
	}
}

func (m *model) handleConsentSaved(msg ConsentSavedMsg) {
	if msg.Err != nil {
		m.setStatus(statusError, msg.Err.Error())
		return
	}
	m.consentGiven = true
	if msg.Saved {
		m.setStatus(statusSuccess, "Storage accepted. Palettes saved.")
	} else {
		m.setStatus(statusWarning, "Storage accepted, but palettes could not be saved.")
	}
}

func (m *model) cycleTheme() {
	if m.preference == nil || !m.preference.Enabled() {
		return
	}
	next := map[models.Theme]models.Theme{
		models.ThemeLight:  models.ThemeDark,
		models.ThemeDark:   models.ThemeSystem,
		models.ThemeSystem: models.ThemeLight,
	}[m.themePref]
	if err := m.preference.Set(m.ctx, next); err != nil {
		m.setStatus(statusError, err.Error())
		return
	}
	m.themePref = next
	m.applyTheme()
	m.setStatus(statusInfo, fmt.Sprintf("Theme: %s", next))
}

func (m *model) setStatus(kind statusKind, text string) {
	m.statusStyle = kind
	m.status = text
}

func (m model) visible() []models.Palette {
	all := m.ctrl.Displayed()
	query := strings.ToLower(strings.TrimSpace(m.filter))
	if query == "" || m.ctrl.Editing() {
		return all
	}
	out := make([]models.Palette, 0, len(all))
	for _, p := range all {
		haystack := strings.ToLower(p.Name + " " + strings.Join(p.Tags, " "))
		if strings.Contains(haystack, query) {
			out = append(out, p)
		}
	}
	return out
}

func (m model) selected() (models.Palette, bool) {
	list := m.visible()
	if m.cursor < 0 || m.cursor >= len(list) {
		return models.Palette{}, false
	}
	return list[m.cursor], true
}

func (m *model) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m model) View() string {
	if m.width > 0 && m.height > 0 {
		if m.width < minWidth || m.height < minHeight {
			return fmt.Sprintf("%s\n", joinLines(m.smallViewLines()))
		}
	}

	modeLabel := m.styles.Muted.Render("view mode")
	if m.ctrl.Editing() {
		modeLabel = m.styles.Warning.Render("edit mode")
	}
	lines := []string{
		m.styles.Title.Render("Color Vault") + "  " + modeLabel,
		"",
	}

	if m.form != nil {
		lines = append(lines, m.form.Render(m.styles)...)
		return fmt.Sprintf("%s\n", joinLines(lines))
	}

	if p, pending := m.ctrl.PendingDelete(); pending {
		lines = append(lines, components.RenderDeleteDialog(m.styles, p))
		return fmt.Sprintf("%s\n", joinLines(lines))
	}

	lines = append(lines, m.galleryLines()...)

	if m.filtering || m.filter != "" {
		lines = append(lines, "", m.styles.Text.Render("/"+m.filter))
	}
	if m.status != "" {
		lines = append(lines, "", m.statusLine())
	}
	if !m.consentGiven {
		lines = append(lines, "", components.RenderConsentBanner(m.styles))
	}

	lines = append(lines, "", m.styles.Muted.Render(m.shortcuts()))
	return fmt.Sprintf("%s\n", joinLines(lines))
}

func (m model) galleryLines() []string {
	if m.ctrl.IsLoading() {
		return []string{m.styles.Muted.Render("Loading palettes...")}
	}

	list := m.visible()
	if len(list) == 0 {
		switch {
		case m.filter != "":
			return []string{components.EmptyFiltered(m.filter).Render(m.styles)}
		case m.ctrl.Editing():
			return []string{components.EmptyDraft().Render(m.styles)}
		default:
			return []string{components.EmptyGallery().Render(m.styles)}
		}
	}

	lines := make([]string, 0, len(list))
	for i, p := range list {
		lines = append(lines, components.RenderPaletteCard(m.styles, components.PaletteCard{
			Palette:     p,
			Index:       i,
			Selected:    i == m.cursor,
			Editing:     m.ctrl.Editing(),
			SwatchLimit: m.swatchLimit,
		}))
	}
	return lines
}

func (m model) statusLine() string {
	switch m.statusStyle {
	case statusSuccess:
		return m.styles.Success.Render(m.status)
	case statusWarning:
		return m.styles.Warning.Render(m.status)
	case statusError:
		return m.styles.Error.Render(m.status)
	default:
		return m.styles.Info.Render(m.status)
	}
}

func (m model) shortcuts() string {
	if m.ctrl.Editing() {
		return "Shortcuts: e save | a add | enter edit | d delete | J/K move | j/k select | q quit (discard)"
	}
	parts := []string{"q quit", "e edit", "j/k select", "/ filter"}
	if !m.consentGiven {
		parts = append(parts, "c accept storage")
	}
	if m.preference != nil && m.preference.Enabled() {
		parts = append(parts, "t theme")
	}
	return "Shortcuts: " + strings.Join(parts, " | ")
}

func (m model) smallViewLines() []string {
	message := fmt.Sprintf("Terminal too small (%dx%d).", m.width, m.height)
	hint := fmt.Sprintf("Resize to at least %dx%d.", minWidth, minHeight)

	return []string{
		m.styles.Warning.Render(message),
		m.styles.Muted.Render(hint),
		m.styles.Muted.Render("Press q to quit."),
	}
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
