package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/christiandt/electrolux-ac-cli/internal/aircon"
)

// refreshInterval is how often the dashboard polls the device.
const refreshInterval = 5 * time.Second

// commander is the slice of the controller the dashboard drives.
type commander interface {
	Status() (string, error)
	SetPower(aircon.Switch) (string, error)
	SetMode(aircon.Mode) (string, error)
	SetFanSpeed(aircon.FanSpeed) (string, error)
	SetTemperature(int) (string, error)
}

// Messages
type statusMsg struct{ status *aircon.Status }
type commandErrMsg struct{ err error }
type refreshTickMsg time.Time

// keyMap defines the dashboard key bindings
type keyMap struct {
	Power   key.Binding
	Mode    key.Binding
	Fan     key.Binding
	Warmer  key.Binding
	Cooler  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings to be shown in the help line
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Power, k.Mode, k.Fan, k.Warmer, k.Cooler, k.Refresh, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Power:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "power")),
		Mode:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mode")),
		Fan:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fan")),
		Warmer:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "warmer")),
		Cooler:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "cooler")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Cycle orders for the mode and fan keys.
var (
	modeCycle = []aircon.Mode{aircon.ModeAuto, aircon.ModeCool, aircon.ModeHeat, aircon.ModeDry, aircon.ModeFan, aircon.ModeHeat8}
	fanCycle  = []aircon.FanSpeed{aircon.FanAuto, aircon.FanLow, aircon.FanMid, aircon.FanHigh, aircon.FanTurbo, aircon.FanQuiet}
)

// Model is the dashboard bubbletea model
type Model struct {
	ac      commander
	name    string
	keys    keyMap
	spinner spinner.Model

	status *aircon.Status
	err    error
	busy   bool
}

// NewModel builds a dashboard around an already-connected controller.
// name is shown in the title (typically the device name or address).
func NewModel(ac commander, name string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		ac:      ac,
		name:    name,
		keys:    defaultKeyMap(),
		spinner: sp,
		busy:    true,
	}
}

// Init starts the spinner and the first status poll
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refreshCmd())
}

// refreshCmd polls the device status once.
func (m Model) refreshCmd() tea.Cmd {
	ac := m.ac
	return func() tea.Msg {
		text, err := ac.Status()
		if err != nil {
			return commandErrMsg{err}
		}
		status, err := aircon.ParseStatus(text)
		if err != nil {
			return commandErrMsg{err}
		}
		return statusMsg{status}
	}
}

// commandCmd runs a device command, then re-polls so the panel reflects the
// device's own view of the new state.
func (m Model) commandCmd(run func() (string, error)) tea.Cmd {
	refresh := m.refreshCmd()
	return func() tea.Msg {
		if _, err := run(); err != nil {
			return commandErrMsg{err}
		}
		return refresh()
	}
}

func scheduleRefresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		m.status = msg.status
		m.err = nil
		m.busy = false
		return m, scheduleRefresh()

	case commandErrMsg:
		m.err = msg.err
		m.busy = false
		return m, scheduleRefresh()

	case refreshTickMsg:
		if m.busy {
			// A command or poll is already in flight; skip this tick.
			return m, scheduleRefresh()
		}
		m.busy = true
		return m, m.refreshCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// Everything else needs a known device state and an idle link.
	if m.busy || m.status == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Refresh):
		m.busy = true
		return m, m.refreshCmd()

	case key.Matches(msg, m.keys.Power):
		target := aircon.SwitchOn
		if m.status.Power != 0 {
			target = aircon.SwitchOff
		}
		m.busy = true
		return m, m.commandCmd(func() (string, error) { return m.ac.SetPower(target) })

	case key.Matches(msg, m.keys.Mode):
		next := nextMode(aircon.Mode(m.status.Mode))
		m.busy = true
		return m, m.commandCmd(func() (string, error) { return m.ac.SetMode(next) })

	case key.Matches(msg, m.keys.Fan):
		next := nextFan(aircon.FanSpeed(m.status.FanSpeed))
		m.busy = true
		return m, m.commandCmd(func() (string, error) { return m.ac.SetFanSpeed(next) })

	case key.Matches(msg, m.keys.Warmer):
		target := m.status.Setpoint + 1
		m.busy = true
		return m, m.commandCmd(func() (string, error) { return m.ac.SetTemperature(target) })

	case key.Matches(msg, m.keys.Cooler):
		target := m.status.Setpoint - 1
		m.busy = true
		return m, m.commandCmd(func() (string, error) { return m.ac.SetTemperature(target) })
	}

	return m, nil
}

func nextMode(current aircon.Mode) aircon.Mode {
	for i, mode := range modeCycle {
		if mode == current {
			return modeCycle[(i+1)%len(modeCycle)]
		}
	}
	return modeCycle[0]
}

func nextFan(current aircon.FanSpeed) aircon.FanSpeed {
	for i, fan := range fanCycle {
		if fan == current {
			return fanCycle[(i+1)%len(fanCycle)]
		}
	}
	return fanCycle[0]
}

// View renders the dashboard
func (m Model) View() string {
	var b strings.Builder

	title := fmt.Sprintf("AIR CONDITIONER / %s", m.name)
	if m.busy {
		title = m.spinner.View() + " " + title
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	if m.status == nil {
		b.WriteString(panelStyle.Render("waiting for device..."))
	} else {
		b.WriteString(panelStyle.Render(m.renderStatus()))
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("error: %v", m.err)))
	}

	b.WriteString(helpStyle.Render(m.renderHelp()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderStatus() string {
	s := m.status
	rows := []struct {
		label, value string
		on           *int
	}{
		{"Power", "", &s.Power},
		{"Mode", aircon.Mode(s.Mode).String(), nil},
		{"Fan", aircon.FanSpeed(s.FanSpeed).String(), nil},
		{"Setpoint", fmt.Sprintf("%d°C", s.Setpoint), nil},
		{"Ambient", fmt.Sprintf("%d°C", s.AmbientTemp), nil},
		{"Swing", "", &s.Swing},
		{"Display", "", &s.Display},
		{"Sleep", "", &s.Sleep},
		{"Self-clean", "", &s.SelfClean},
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(labelStyle.Render(row.label))
		if row.on != nil {
			if *row.on != 0 {
				b.WriteString(onStyle.Render("on"))
			} else {
				b.WriteString(offStyle.Render("off"))
			}
		} else {
			b.WriteString(valueStyle.Render(row.value))
		}
	}
	return b.String()
}

func (m Model) renderHelp() string {
	parts := make([]string, 0, 8)
	for _, binding := range m.keys.ShortHelp() {
		h := binding.Help()
		parts = append(parts, fmt.Sprintf("%s %s", h.Key, h.Desc))
	}
	return strings.Join(parts, " • ")
}

// Run starts the dashboard and blocks until the user quits.
func Run(ac commander, name string) error {
	program := tea.NewProgram(NewModel(ac, name), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}
