// Package app is the root Bubble Tea model of the table viewer. It loads a
// source, hosts the table and the status bar, and handles global keys.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/miosa/window-table/config"
	"github.com/miosa/window-table/logger"
	"github.com/miosa/window-table/msg"
	"github.com/miosa/window-table/source"
	"github.com/miosa/window-table/style"
	"github.com/miosa/window-table/ui/status"
	"github.com/miosa/window-table/ui/table"
)

// ProfileDir is set by main to the user's profile directory path.
// Settings changed from the keyboard are saved there; empty disables saving.
var ProfileDir string

const (
	statusHeight = 1
	loadTimeout  = time.Minute
	defaultHint  = "? help"
)

// -- Model --------------------------------------------------------------------

// Model is the root Bubble Tea model.
type Model struct {
	src  source.Source
	cfg  config.Config
	log  logger.Logger
	keys KeyMap

	table    table.Model
	hasTable bool
	status   status.Model

	state    State
	err      error
	loading  bool
	showHelp bool

	// dataHash identifies the rows on screen so an unchanged reload is a no-op.
	dataHash uint64
	hashed   bool

	width  int
	height int
}

// New constructs the root Model for src. It applies the configured theme.
func New(src source.Source, cfg config.Config, log logger.Logger) Model {
	if log == nil {
		log = logger.DefaultLogger
	}
	if cfg.Theme != "" {
		style.SetTheme(cfg.Theme)
	}
	st := status.New()
	st.SetSource(src.Name())
	st.SetHint(defaultHint)
	return Model{
		src:     src,
		cfg:     cfg,
		log:     log.With("component", "app"),
		keys:    DefaultKeyMap(),
		status:  st,
		state:   StateLoading,
		loading: true,
	}
}

// -- Init ---------------------------------------------------------------------

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(false), func() tea.Msg { return tea.RequestWindowSize() })
}

// -- Update -------------------------------------------------------------------

func (m Model) Update(rawMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := rawMsg.(type) {

	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.status.SetWidth(v.Width)
		if !m.hasTable {
			return m, nil
		}
		return m.updateTable(m.tableSize())

	case tea.KeyPressMsg:
		return m.handleKey(v)

	// -- Data --

	case msg.DataLoaded:
		return m.handleLoaded(v)

	case msg.LoadFailed:
		return m.handleLoadFailed(v)
	}

	if !m.hasTable {
		return m, nil
	}
	return m.updateTable(rawMsg)
}

func (m Model) updateTable(v tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(v)
	m.syncStatus()
	return m, cmd
}

func (m *Model) syncStatus() {
	if !m.hasTable {
		return
	}
	s := m.table.Stats()
	m.status.SetRange(s.First, s.Last, s.Rows)
	m.status.SetSizing(s.Measured, s.State.String(), s.Variable)
}

func (m Model) tableSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: m.width, Height: max(m.height-statusHeight, 0)}
}

func (m Model) tableOptions() []table.Option {
	retention := table.RetainSizes
	if m.cfg.ResetSizes {
		retention = table.ResetSizes
	}
	return []table.Option{
		table.WithRowHeight(m.cfg.RowHeight),
		table.WithOverscan(m.cfg.Overscan),
		table.WithVariableSizeRows(m.cfg.VariableRows),
		table.WithDebounceWait(m.cfg.Debounce()),
		table.WithDisableHeader(m.cfg.DisableHeader),
		table.WithMeasureMargin(m.cfg.MeasureMargin),
		table.WithScrollbar(m.cfg.Scrollbar),
		table.WithSizeRetention(retention),
		table.WithLogger(m.log.With("component", "table")),
	}
}

// -- Loading ------------------------------------------------------------------

func (m Model) load(reload bool) tea.Cmd {
	src := m.src
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		ds, err := src.Load(ctx)
		if err != nil {
			return msg.LoadFailed{Source: src.Name(), Err: err}
		}
		return msg.DataLoaded{Source: src.Name(), Dataset: ds, Reload: reload}
	}
}

func (m Model) handleLoaded(v msg.DataLoaded) (Model, tea.Cmd) {
	m.loading = false
	h, err := hashstructure.Hash(v.Dataset, hashstructure.FormatV2, nil)
	if err != nil {
		m.log.Warn("dataset hash failed", "err", err)
	}
	if m.hasTable && err == nil && m.hashed && h == m.dataHash {
		m.log.Debug("reload unchanged", "source", v.Source)
		m.status.SetHint("no changes")
		return m, nil
	}
	m.dataHash, m.hashed = h, err == nil

	m.log.Info("dataset loaded", "source", v.Source, "rows", len(v.Dataset.Rows), "columns", len(v.Dataset.Columns))
	m.state = StateReady
	m.err = nil
	m.status.SetSource(v.Source)
	m.status.SetHint(defaultHint)

	cols := BuildColumns(v.Dataset, m.cfg)
	if !m.hasTable {
		m.table = table.New(cols, v.Dataset.Rows, m.tableOptions()...)
		m.hasTable = true
		cmds := []tea.Cmd{m.table.Init()}
		if m.width > 0 {
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(m.tableSize())
			cmds = append(cmds, cmd)
		}
		m.syncStatus()
		return m, tea.Batch(cmds...)
	}

	var cmds []tea.Cmd
	if !sameKeys(m.table.Columns(), cols) {
		cmds = append(cmds, m.table.SetColumns(cols))
	}
	cmds = append(cmds, m.table.SetData(v.Dataset.Rows))
	m.syncStatus()
	return m, tea.Batch(cmds...)
}

func (m Model) handleLoadFailed(v msg.LoadFailed) (Model, tea.Cmd) {
	m.loading = false
	m.log.Error("load failed", "source", v.Source, "err", v.Err)
	if m.hasTable {
		// Keep the rows already on screen.
		m.status.SetHint("reload failed")
		return m, nil
	}
	m.state = StateFailed
	m.err = v.Err
	return m, nil
}

// -- Keys ---------------------------------------------------------------------

func (m Model) handleKey(k tea.KeyPressMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(k, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(k, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp {
		if key.Matches(k, m.keys.Escape) {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(k, m.keys.Reload):
		if m.loading {
			return m, nil
		}
		m.loading = true
		m.status.SetHint("reloading…")
		return m, m.load(true)

	case key.Matches(k, m.keys.ToggleVariable):
		m.cfg.VariableRows = !m.cfg.VariableRows
		m.saveConfig()
		if !m.hasTable {
			return m, nil
		}
		cmd := m.table.SetVariableSizeRows(m.cfg.VariableRows)
		m.syncStatus()
		return m, cmd

	case key.Matches(k, m.keys.CycleTheme):
		name := nextTheme(style.CurrentThemeName)
		if !style.SetTheme(name) {
			return m, nil
		}
		m.cfg.Theme = name
		m.saveConfig()
		m.status.SetHint("theme: " + name)
		if !m.hasTable {
			return m, nil
		}
		return m, m.table.Refresh()
	}

	if !m.hasTable {
		return m, nil
	}
	return m.updateTable(k)
}

func (m Model) saveConfig() {
	if ProfileDir == "" {
		return
	}
	if err := config.Save(ProfileDir, m.cfg); err != nil {
		m.log.Warn("save config failed", "err", err)
	}
}

func nextTheme(current string) string {
	for i, name := range style.ThemeNames {
		if name == current {
			return style.ThemeNames[(i+1)%len(style.ThemeNames)]
		}
	}
	return style.ThemeNames[0]
}

// -- View ---------------------------------------------------------------------

// View renders the current frame. AltScreen and MouseMode are set on every
// frame.
func (m Model) View() tea.View {
	v := tea.NewView(m.renderView())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

func (m Model) renderView() string {
	if m.showHelp {
		return m.helpText()
	}
	switch m.state {
	case StateLoading:
		return style.Faint.Render("Loading " + m.src.Name() + "…")
	case StateFailed:
		return style.ErrorText.Render(fmt.Sprintf("Could not load %s: %v", m.src.Name(), m.err)) +
			"\n\n" + style.Hint.Render("r retry · q quit")
	}

	body := m.table.View()
	if h := m.height - statusHeight; h > 0 {
		n := 0
		if body != "" {
			n = lipgloss.Height(body)
		}
		if n < h {
			body += strings.Repeat("\n", h-n)
		}
	}
	return body + "\n" + m.status.View()
}

func (m Model) helpText() string {
	var b strings.Builder
	b.WriteString(style.Bold.Render("Keybindings") + "\n\n")
	scroll := table.DefaultKeyMap()
	if m.hasTable {
		scroll = m.table.KeyMap()
	}
	bindings := append(scroll.ShortHelp(), m.keys.Bindings()...)
	for _, kb := range bindings {
		h := kb.Help()
		fmt.Fprintf(&b, "  %-8s %s\n", h.Key, h.Desc)
	}
	b.WriteString("\n" + style.Hint.Render("esc close"))
	return b.String()
}

// -- Accessors ----------------------------------------------------------------

// State returns the application state.
func (m Model) State() State { return m.state }

// Table returns the hosted table. It is the zero Model before the first load.
func (m Model) Table() table.Model { return m.table }

// Config returns the current settings, including keyboard toggles.
func (m Model) Config() config.Config { return m.cfg }
