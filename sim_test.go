package main

import (
	"math/rand"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonzanicorodriguez/juego-topo/internal/mole"
)

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestSim() (simModel, *stepClock) {
	clock := &stepClock{ms: 100}
	return newSimModel(clock, rand.New(rand.NewSource(1))), clock
}

// tick advances the clock by ms, feeding one tick per millisecond.
func tick(t *testing.T, m simModel, clock *stepClock, ms int) simModel {
	for i := 0; i < ms; i++ {
		clock.ms++
		next, cmd := m.Update(tickMsg(time.Now()))
		require.NotNil(t, cmd)
		m = next.(simModel)
	}
	return m
}

func TestSimBus_AllReleasedAtStart(t *testing.T) {
	m, _ := newTestSim()
	assert.Equal(t, mole.AllLEDs, m.bus.Read())
}

func TestSim_TapHoldsButtonBriefly(t *testing.T) {
	m, clock := newTestSim()

	next, cmd := m.Update(keyMsg('s'))
	assert.Nil(t, cmd)
	m = next.(simModel)
	assert.True(t, m.bus.held(1))
	assert.Equal(t, mole.AllLEDs&^mole.Mask(1), m.bus.Read())

	clock.ms += tapTime.Milliseconds()
	assert.False(t, m.bus.held(1))
	assert.Equal(t, mole.AllLEDs, m.bus.Read())
}

func TestSim_UpperCaseHoldsLonger(t *testing.T) {
	m, clock := newTestSim()

	next, _ := m.Update(keyMsg('F'))
	m = next.(simModel)

	clock.ms += tapTime.Milliseconds()
	assert.True(t, m.bus.held(3))
	clock.ms += holdTime.Milliseconds()
	assert.False(t, m.bus.held(3))
}

func TestSim_Quit(t *testing.T) {
	m, _ := newTestSim()

	_, cmd := m.Update(keyMsg('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestSim_InitSchedulesTick(t *testing.T) {
	m, _ := newTestSim()
	assert.NotNil(t, m.Init())
}

func TestSim_HoldStartsRound(t *testing.T) {
	m, clock := newTestSim()
	assert.Contains(t, m.View(), "state: standby")

	next, _ := m.Update(keyMsg('A'))
	m = next.(simModel)
	m = tick(t, m, clock, 1700)

	assert.Equal(t, mole.StateMole, m.game.State())
	assert.Equal(t, mole.AllLEDs, m.bus.leds)
	assert.Contains(t, m.View(), "state: mole")
}

func TestSim_ViewShowsButtons(t *testing.T) {
	m, _ := newTestSim()
	next, _ := m.Update(keyMsg('d'))
	m = next.(simModel)

	view := m.View()
	assert.Contains(t, view, "topo")
	assert.Contains(t, view, "[a] up")
	assert.Contains(t, view, "[▼] up")
	assert.Contains(t, view, "q quit")
}

func TestSimKeyMap_ShortHelp(t *testing.T) {
	km := defaultSimKeyMap()
	bindings := km.ShortHelp()

	require.Len(t, bindings, 3)
	assert.Equal(t, "a/s/d/f", bindings[0].Help().Key)
	assert.Equal(t, "hold", bindings[1].Help().Desc)
	assert.Equal(t, "quit", bindings[2].Help().Desc)
	assert.Len(t, km.FullHelp(), 1)
}

func TestSim_ViewRendersHelp(t *testing.T) {
	m, _ := newTestSim()
	view := m.View()

	assert.Contains(t, view, "a/s/d/f tap")
	assert.Contains(t, view, "A/S/D/F hold")
}
