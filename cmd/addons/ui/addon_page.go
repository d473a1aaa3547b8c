package ui

import (
	"context"
	"fmt"
	"strings"

	"addonlist/internal/addon"
	"addonlist/internal/catalog"
	"addonlist/internal/clipboard"
	"addonlist/internal/filter"
	"addonlist/internal/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CopyTargets are the bulk copy targets cycled with the service key.
var CopyTargets = []string{
	addon.PreferredService,
	string(addon.ServiceCurse),
	string(addon.ServiceWowi),
	string(addon.ServiceRepo),
}

// Rows reserved around the table for header, filter bar, detail pane and help.
const chromeHeight = 16

// PageOptions configures the initial state of the addon page.
type PageOptions struct {
	Game        string
	Query       string
	ShowHidden  bool
	CopyService string
	Styles      *Styles
}

// AddonPageModel is the interactive addon list: a filterable table of one
// game's addons with per-row and bulk clipboard actions.
type AddonPageModel struct {
	ctx     context.Context
	store   *catalog.Store
	watcher *catalog.Watcher
	clip    clipboard.Writer

	width  int
	height int
	table  table.Model

	// Data
	games    []string
	game     int
	sets     catalog.DataSet
	visible  []addon.Record
	loading  bool
	loadErr  error
	quitting bool

	// A source changed while a batch was in flight; reload once it lands.
	pendingReload bool

	// Filter state
	filterInput   textinput.Model
	filterFocused bool
	matcher       filter.Matcher
	showHidden    bool
	copyTarget    int

	status    string
	statusBad bool

	spinner spinner.Model
	help    help.Model
	keys    keyMap
	styles  Styles
}

// NewAddonPageModel creates the page over store. The watcher may be nil.
func NewAddonPageModel(ctx context.Context, store *catalog.Store, watcher *catalog.Watcher, clip clipboard.Writer, opts PageOptions) AddonPageModel {
	styles := DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}

	t := table.New(
		table.WithColumns(columns(100)),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Theme.Border).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(styles.Theme.Foreground).
		Background(styles.Theme.Selected).
		Bold(false)
	t.SetStyles(ts)

	fi := textinput.New()
	fi.Prompt = "Filter: "
	fi.CharLimit = 80
	fi.Width = 40
	fi.SetValue(opts.Query)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	m := AddonPageModel{
		ctx:         ctx,
		store:       store,
		watcher:     watcher,
		clip:        clip,
		table:       t,
		games:       store.Names(),
		sets:        store.Sets(),
		loading:     true,
		filterInput: fi,
		showHidden:  opts.ShowHidden,
		spinner:     sp,
		help:        help.New(),
		keys:        defaultKeyMap(),
		styles:      styles,
	}
	for i, g := range m.games {
		if g == opts.Game {
			m.game = i
		}
	}
	for i, s := range CopyTargets {
		if s == opts.CopyService {
			m.copyTarget = i
		}
	}
	m.applyFilter()
	return m
}

// Init starts the first load and, when configured, the file watch loop.
func (m AddonPageModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadCmd(m.ctx, m.store), watchCmd(m.ctx, m.watcher))
}

// Update handles messages.
func (m AddonPageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case loadedMsg:
		m.loading = false
		m.loadErr = msg.err
		if msg.err != nil {
			logging.Get(logging.CategoryUI).Error("load failed: %v", msg.err)
			m.setStatus("Load failed: "+msg.err.Error(), true)
		} else {
			m.sets = msg.sets
			m.applyFilter()
			logging.UIDebug("loaded %d data sets", len(msg.sets))
		}
		if m.pendingReload {
			m.pendingReload = false
			logging.UIDebug("starting queued reload")
			return m, m.reload()
		}
		return m, nil

	case sourceChangedMsg:
		m.setStatus(fmt.Sprintf("%s changed, reloading", msg.name), false)
		if m.loading {
			logging.UI("%s changed on disk during a load, queueing reload", msg.name)
			m.pendingReload = true
			return m, watchCmd(m.ctx, m.watcher)
		}
		logging.UI("%s changed on disk, reloading", msg.name)
		return m, tea.Batch(m.reload(), watchCmd(m.ctx, m.watcher))

	case copiedMsg:
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
		} else {
			m.setStatus("Copied "+msg.what, false)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.filterFocused {
			return m.updateFilter(msg)
		}
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	if !m.filterFocused {
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// updateFilter routes keys while the filter input has focus. Navigation keys
// still move the table; everything else edits the query.
func (m AddonPageModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc", "enter":
		m.filterFocused = false
		m.filterInput.Blur()
		return m, nil
	case "up", "down", "pgup", "pgdown", "home", "end":
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	m.filterInput, cmd = m.filterInput.Update(msg)
	// Live filtering on each keystroke
	m.applyFilter()
	return m, cmd
}

func (m *AddonPageModel) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit, true

	case key.Matches(msg, m.keys.Filter):
		m.filterFocused = true
		return m.filterInput.Focus(), true

	case key.Matches(msg, m.keys.ClearFilter):
		m.ClearFilter()
		return nil, true

	case key.Matches(msg, m.keys.Hidden):
		m.showHidden = !m.showHidden
		m.applyFilter()
		m.table.SetCursor(0)
		return nil, true

	case key.Matches(msg, m.keys.NextGame):
		m.switchGame(1)
		return nil, true

	case key.Matches(msg, m.keys.PrevGame):
		m.switchGame(-1)
		return nil, true

	case key.Matches(msg, m.keys.Service):
		m.copyTarget = (m.copyTarget + 1) % len(CopyTargets)
		m.setStatus("Copy target: "+targetTitle(CopyTargets[m.copyTarget]), false)
		return nil, true

	case key.Matches(msg, m.keys.CopyLinks):
		return m.copyAll(false), true

	case key.Matches(msg, m.keys.CopyCommands):
		return m.copyAll(true), true

	case key.Matches(msg, m.keys.CopyLink):
		return m.copySelected(false), true

	case key.Matches(msg, m.keys.CopyCommand):
		return m.copySelected(true), true

	case key.Matches(msg, m.keys.Reload):
		if m.loading {
			return nil, true
		}
		m.setStatus("Reloading...", false)
		return m.reload(), true

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil, true
	}
	return nil, false
}

func (m *AddonPageModel) reload() tea.Cmd {
	m.loading = true
	return tea.Batch(m.spinner.Tick, loadCmd(m.ctx, m.store))
}

func (m *AddonPageModel) switchGame(delta int) {
	if len(m.games) < 2 {
		return
	}
	m.game = (m.game + delta + len(m.games)) % len(m.games)
	m.applyFilter()
	m.table.SetCursor(0)
	logging.UIDebug("switched to %s", m.Game())
}

func (m *AddonPageModel) copyAll(commands bool) tea.Cmd {
	target := CopyTargets[m.copyTarget]
	b, err := filter.CollectAll(m.visible, m.matcher, target)
	if err != nil {
		m.setStatus(err.Error(), true)
		return nil
	}
	if b.Len() == 0 {
		m.setStatus("Nothing to copy for "+targetTitle(target), true)
		return nil
	}
	if commands {
		return copyCmd(m.clip, b.CommandsText(), fmt.Sprintf("%d wowa commands (%s)", b.Len(), targetTitle(target)))
	}
	return copyCmd(m.clip, b.LinksText(), fmt.Sprintf("%d links (%s)", b.Len(), targetTitle(target)))
}

func (m *AddonPageModel) copySelected(command bool) tea.Cmd {
	r, ok := m.Selected()
	if !ok {
		return nil
	}
	for _, sl := range addon.LinksFor(r) {
		if !sl.Preferred {
			continue
		}
		if command {
			return copyCmd(m.clip, sl.Command, "wowa command for "+r.Name)
		}
		return copyCmd(m.clip, sl.Link, sl.Service.Title()+" link for "+r.Name)
	}
	m.setStatus(r.Name+" has no download links", true)
	return nil
}

func (m *AddonPageModel) setStatus(s string, bad bool) {
	m.status = s
	m.statusBad = bad
}

// applyFilter recomputes the visible rows from the current query, hidden
// toggle and game.
func (m *AddonPageModel) applyFilter() {
	m.matcher = filter.Compile(m.filterInput.Value())
	m.visible = filter.VisibleRows(m.rows(), m.matcher, m.showHidden)
	m.filterInput.Placeholder = fmt.Sprintf("%d addons", len(m.visible))
	if m.matcher.Bad() {
		m.filterInput.TextStyle = m.styles.Error
	} else {
		m.filterInput.TextStyle = m.styles.Body
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the visible records
func (m *AddonPageModel) updateTableRows() {
	rows := make([]table.Row, 0, len(m.visible))
	for _, r := range m.visible {
		preferred, _ := addon.ResolvePreferred(r)
		row := table.Row{supportedMark(r), r.Name}
		for _, s := range addon.Services {
			cell := r.Slug(s)
			if cell != "" && s == preferred {
				cell += " *"
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}
	m.table.SetRows(rows)
	if n := len(rows); n > 0 && (m.table.Cursor() < 0 || m.table.Cursor() >= n) {
		m.table.SetCursor(n - 1)
	}
}

func (m AddonPageModel) rows() []addon.Record {
	if len(m.games) == 0 {
		return nil
	}
	return m.sets[m.games[m.game]]
}

// ClearFilter clears the filter text and shows the whole partition again.
func (m *AddonPageModel) ClearFilter() {
	m.filterInput.SetValue("")
	m.applyFilter()
}

// Game returns the name of the game being shown.
func (m AddonPageModel) Game() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.game]
}

// Visible returns the rows currently shown.
func (m AddonPageModel) Visible() []addon.Record { return m.visible }

// BadQuery reports whether the filter text is an invalid pattern.
func (m AddonPageModel) BadQuery() bool { return m.matcher.Bad() }

// CopyTarget returns the bulk copy target.
func (m AddonPageModel) CopyTarget() string { return CopyTargets[m.copyTarget] }

// Status returns the status line text.
func (m AddonPageModel) Status() string { return m.status }

// Selected returns the record under the table cursor.
func (m AddonPageModel) Selected() (addon.Record, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return addon.Record{}, false
	}
	return m.visible[i], true
}

// View renders the page.
func (m AddonPageModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteString("\n\n")

	switch {
	case m.sets == nil && m.loadErr != nil:
		sb.WriteString(m.styles.Error.Render("Failed to load addon lists"))
		sb.WriteString("\n")
		sb.WriteString(m.styles.Body.Render(m.loadErr.Error()))
		sb.WriteString("\n\n")
		sb.WriteString(m.styles.Muted.Render("[r] Retry  [q] Quit"))
		return m.styles.Content.Render(sb.String())
	case m.sets == nil:
		sb.WriteString(m.spinner.View() + " Loading addon lists...")
		return m.styles.Content.Render(sb.String())
	}

	sb.WriteString(m.renderFilterBar())
	sb.WriteString("\n")
	sb.WriteString(m.table.View())
	sb.WriteString("\n")

	if len(m.visible) == 0 {
		sb.WriteString(m.styles.Muted.Render("No addons match."))
		sb.WriteString("\n")
	} else if r, ok := m.Selected(); ok {
		sb.WriteString(m.renderDetail(r))
	}

	sb.WriteString("\n")
	sb.WriteString(m.renderStatus())
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))

	return m.styles.Content.Render(sb.String())
}

func (m AddonPageModel) renderHeader() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render(" WoW Addons "))
	sb.WriteString("  ")
	for i, g := range m.games {
		style := m.styles.Tab
		if i == m.game {
			style = m.styles.ActiveTab
		}
		sb.WriteString(style.Render(g))
		sb.WriteString("  ")
	}
	if m.loading && m.sets != nil {
		sb.WriteString(m.spinner.View())
	}
	return sb.String()
}

// renderFilterBar renders the filter input and the toggle indicators
func (m AddonPageModel) renderFilterBar() string {
	box := m.styles.FilterBox
	switch {
	case m.matcher.Bad():
		box = m.styles.FilterBoxBad
	case m.filterFocused:
		box = m.styles.FilterBoxFocused
	}

	parts := []string{box.Render(m.filterInput.View())}

	var flags strings.Builder
	if m.matcher.Bad() {
		flags.WriteString(m.styles.Error.Render("invalid pattern, showing all"))
		flags.WriteString("  ")
	}
	if m.showHidden {
		flags.WriteString(m.styles.Warning.Render("Problematic addons"))
	} else {
		flags.WriteString(m.styles.Muted.Render("Problematic: hidden"))
	}
	flags.WriteString("  ")
	flags.WriteString(m.styles.Muted.Render("Copy: "))
	flags.WriteString(m.styles.Bold.Render(targetTitle(CopyTargets[m.copyTarget])))
	parts = append(parts, "  ", flags.String())

	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m AddonPageModel) renderDetail(r addon.Record) string {
	var sb strings.Builder
	sb.WriteString(m.styles.RenderDivider(max(m.width-4, 20)))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Title.Render(r.Name))
	if r.Supported {
		sb.WriteString(" " + m.styles.Success.Render("supported"))
	}
	sb.WriteString("\n")
	if r.Website != "" {
		sb.WriteString(m.styles.Muted.Render("Website:   ") + r.Website + "\n")
	}
	if link := addon.SpotlightLink(r.Spotlight); link != "" {
		sb.WriteString(m.styles.Muted.Render("Spotlight: ") + link + "\n")
	}
	for _, sl := range addon.LinksFor(r) {
		label := fmt.Sprintf("%-14s", sl.Service.Title())
		line := label + sl.Link + "  " + m.styles.Muted.Render(sl.Command)
		if sl.Preferred {
			line = m.styles.Preferred.Render(label+sl.Link) + "  " + m.styles.Muted.Render(sl.Command)
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

func (m AddonPageModel) renderStatus() string {
	var s string
	switch {
	case m.status == "":
		s = m.styles.Muted.Render(fmt.Sprintf("Showing %d of %d addons", len(m.visible), len(m.rows())))
	case m.statusBad:
		s = m.styles.Error.Render(m.status)
	default:
		s = m.styles.Info.Render(m.status)
	}
	return s
}

// SetSize updates the size.
func (m *AddonPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.help.Width = w
	m.table.SetColumns(columns(w - 4))
	m.table.SetWidth(w - 4)
	m.table.SetHeight(max(h-chromeHeight, 5))
}

func columns(width int) []table.Column {
	const mark, curse, wowi, repo = 2, 24, 14, 28
	name := max(width-mark-curse-wowi-repo-10, 20)
	return []table.Column{
		{Title: "", Width: mark},
		{Title: "Addon", Width: name},
		{Title: addon.ServiceCurse.Title(), Width: curse},
		{Title: addon.ServiceWowi.Title(), Width: wowi},
		{Title: addon.ServiceRepo.Title(), Width: repo},
	}
}

func supportedMark(r addon.Record) string {
	if r.Supported {
		return "✓"
	}
	return ""
}

func targetTitle(target string) string {
	if target == addon.PreferredService {
		return "preferred"
	}
	return addon.Service(target).Title()
}
