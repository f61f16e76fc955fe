// Package ui provides the Bubble Tea lookup screen and the report renderer.
package ui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/vinquery/internal/nhtsa"
	"github.com/five82/vinquery/internal/prefs"
	"github.com/five82/vinquery/internal/vin"
)

// QueryFactory builds the Query for a VIN entered by the user.
type QueryFactory func(vin string) *nhtsa.Query

// Options configures the UI.
type Options struct {
	Context   context.Context
	NewQuery  QueryFactory
	Logger    *slog.Logger
	ThemeName string
	PrefsPath string // empty disables saving preferences
	VIN       string // initial input value
}

// decodedMsg carries the finished query back to Update.
type decodedMsg struct {
	seq   int
	query *nhtsa.Query
	info  nhtsa.VehicleInfo
	ok    bool
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	newQuery  QueryFactory
	logger    *slog.Logger
	prefsPath string

	theme  Theme
	keys   keyMap
	input  textinput.Model
	spin   spinner.Model
	help   help.Model
	width  int
	height int

	loading bool
	seq     int // bumped per submission and clear; older results are dropped
	warning string
	result  *decodedMsg
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	input := textinput.New()
	input.Placeholder = "17-character VIN"
	input.CharLimit = 32
	input.Prompt = "VIN › "
	input.SetValue(opts.VIN)
	input.Focus()

	return Model{
		ctx:       ctx,
		newQuery:  opts.NewQuery,
		logger:    logger,
		prefsPath: opts.PrefsPath,
		theme:     GetTheme(opts.ThemeName),
		keys:      DefaultKeyMap(),
		input:     input,
		spin:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:      help.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case decodedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		m.result = &msg
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs("")
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.input.SetValue("")
		m.seq++
		m.loading = false
		m.result = nil
		m.warning = ""
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.loading || m.newQuery == nil {
		return m, nil
	}
	v := vin.Normalize(m.input.Value())
	if v == "" {
		m.warning = "Enter a VIN to decode."
		return m, nil
	}
	m.input.SetValue(v)
	m.warning = ""
	if err := vin.Validate(v); err != nil {
		m.warning = "Warning: " + err.Error()
		m.logger.Warn("vin failed local validation", "vin", v, "err", err)
	}
	m.seq++
	m.loading = true
	m.result = nil
	m.savePrefs(v)
	return m, tea.Batch(m.spin.Tick, m.decodeCmd(v))
}

func (m Model) decodeCmd(v string) tea.Cmd {
	ctx, seq := m.ctx, m.seq
	q := m.newQuery(v)
	return func() tea.Msg {
		info, ok := q.Get(ctx)
		return decodedMsg{seq: seq, query: q, info: info, ok: ok}
	}
}

func (m Model) savePrefs(lastVIN string) {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Load(m.prefsPath)
	p.Theme = m.theme.Name
	if lastVIN != "" {
		p.LastVIN = lastVIN
	}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save preferences failed", "err", err)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	s := m.theme.Styles()
	if m.width > 4 {
		s.Panel = s.Panel.Width(m.width - 2)
	}

	sections := []string{
		s.Title.Render("vinquery") + s.MutedText.Render("  NHTSA vPIC decoder"),
		"",
		m.input.View(),
	}
	if m.warning != "" {
		sections = append(sections, s.WarningText.Render(m.warning))
	}
	sections = append(sections, "")

	switch {
	case m.loading:
		sections = append(sections, m.spin.View()+s.MutedText.Render(" Decoding..."))
	case m.result != nil:
		sections = append(sections, RenderReport(s, m.result.query, m.result.info, m.result.ok))
	}

	sections = append(sections, "", s.Footer.Render(m.help.View(m.keys)))
	return strings.TrimRight(lipgloss.JoinVertical(lipgloss.Left, sections...), "\n") + "\n"
}

// Run starts the TUI and blocks until the user quits or ctx is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	opts.Context = ctx
	_, err := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
