package main

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gonzanicorodriguez/juego-topo/internal/mole"
)

const (
	simTick  = 5 * time.Millisecond
	tapTime  = 150 * time.Millisecond
	holdTime = 1500 * time.Millisecond
	simLog   = "topo-debug.log"
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Play in the terminal",
	Long: `Play in the terminal with the keyboard standing in for the buttons.

Controls:
  a s d f  - tap button 1-4
  A S D F  - hold button 1-4 for 1.5s (starts a round)
  q        - quit

With --verbose, state changes are logged to topo-debug.log.`,
	RunE: runSim,
}

// simBus is a keyboard-driven button bus that also latches the LED output.
// Terminals only report key presses, so every key press holds its button
// down for a fixed time.
type simBus struct {
	clock mole.Clock
	until [mole.NumButtons]int64
	leds  uint8
}

func (s *simBus) Read() uint8 {
	now := s.clock.Millis()
	var bus uint8
	for i, t := range s.until {
		if now >= t {
			bus |= mole.Mask(i)
		}
	}
	return bus
}

func (s *simBus) Write(mask uint8) {
	s.leds = mask
}

func (s *simBus) hold(i int, d time.Duration) {
	s.until[i] = s.clock.Millis() + d.Milliseconds()
}

func (s *simBus) held(i int) bool {
	return s.clock.Millis() < s.until[i]
}

type simKeyMap struct {
	Tap  [mole.NumButtons]key.Binding
	Hold [mole.NumButtons]key.Binding
	Quit key.Binding
}

func defaultSimKeyMap() simKeyMap {
	km := simKeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
	for i, k := range simLabels {
		km.Tap[i] = key.NewBinding(key.WithKeys(k))
		km.Hold[i] = key.NewBinding(key.WithKeys(strings.ToUpper(k)))
	}
	// The help line shows each row of buttons once.
	km.Tap[0].SetHelp("a/s/d/f", "tap")
	km.Hold[0].SetHelp("A/S/D/F", "hold")
	return km
}

func (k simKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tap[0], k.Hold[0], k.Quit}
}

func (k simKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var (
	simTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	simLEDOn   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8"))
	simLEDOff  = lipgloss.NewStyle().Foreground(lipgloss.Color("#45475A"))
	simCell    = lipgloss.NewStyle().Width(13).Align(lipgloss.Center)
	simWin     = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	simLose    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
	simBoxed   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#45475A")).Padding(0, 1)
	simLabels  = [mole.NumButtons]string{"a", "s", "d", "f"}
	simPressed = "▼"
)

type tickMsg time.Time

type simModel struct {
	game *mole.Game
	bus  *simBus
	keys simKeyMap
	help help.Model
}

func newSimModel(clock mole.Clock, r mole.Random) simModel {
	bus := &simBus{clock: clock}
	return simModel{
		game: mole.NewGame(clock, bus, bus, r),
		bus:  bus,
		keys: defaultSimKeyMap(),
		help: help.New(),
	}
}

func simTickCmd() tea.Cmd {
	return tea.Tick(simTick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m simModel) Init() tea.Cmd {
	return simTickCmd()
}

func (m simModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		for i := range m.keys.Tap {
			switch {
			case key.Matches(msg, m.keys.Tap[i]):
				m.bus.hold(i, tapTime)
			case key.Matches(msg, m.keys.Hold[i]):
				m.bus.hold(i, holdTime)
			}
		}
	case tickMsg:
		m.game.Step()
		return m, simTickCmd()
	}
	return m, nil
}

func (m simModel) View() string {
	s := m.game.Snapshot()

	leds := make([]string, 0, mole.NumButtons)
	buttons := make([]string, 0, mole.NumButtons)
	for i := 0; i < mole.NumButtons; i++ {
		if m.bus.leds&mole.Mask(i) != 0 {
			leds = append(leds, simCell.Render(simLEDOn.Render("●")))
		} else {
			leds = append(leds, simCell.Render(simLEDOff.Render("○")))
		}
		label := simLabels[i]
		if m.bus.held(i) {
			label = simPressed
		}
		buttons = append(buttons, simCell.Render(fmt.Sprintf("[%s] %s", label, s.Buttons[i])))
	}

	status := "state: " + s.State.String()
	switch s.Result {
	case mole.OutcomeWin:
		status += "   last round: " + simWin.Render("you got the mole")
	case mole.OutcomeLose:
		status += "   last round: " + simLose.Render("the mole got away")
	}

	var b strings.Builder
	b.WriteString(simTitle.Render("topo"))
	b.WriteString("\n\n")
	b.WriteString(simBoxed.Render(lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Top, leds...),
		lipgloss.JoinHorizontal(lipgloss.Top, buttons...),
	)))
	b.WriteString("\n")
	b.WriteString(status)
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func runSim(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadSimConfig()
	if err != nil {
		return err
	}

	m := newSimModel(newMonoClock(), rand.New(rand.NewSource(time.Now().UnixNano())))
	if verbose || cfg.Verbose {
		f, err := tea.LogToFile(simLog, "sim")
		if err != nil {
			return fmt.Errorf("open %s: %w", simLog, err)
		}
		defer f.Close()
		m.game.OnTransition(logTransitions(m.game))
	} else {
		log.SetOutput(io.Discard)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("simulator: %w", err)
	}
	return nil
}
