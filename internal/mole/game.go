package mole

import "fmt"

type State uint8

const (
	StateStandby State = iota
	StateKeys
	StateMole
	StateCompare
	StateWin
	StateMoleWins
)

func (s State) String() string {
	switch s {
	case StateStandby:
		return "standby"
	case StateKeys:
		return "keys"
	case StateMole:
		return "mole"
	case StateCompare:
		return "compare"
	case StateWin:
		return "win"
	case StateMoleWins:
		return "mole-wins"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLose
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLose:
		return "lose"
	}
	return "none"
}

// Snapshot is a copy of the game state for display.
type Snapshot struct {
	State   State
	LEDs    uint8
	Mole    int // -1 until a mole was picked
	Hit     int // -1 unless a button was hit this round
	Buttons [NumButtons]ButtonState
	Result  Outcome
}

type Game struct {
	clock   Clock
	buttons ButtonBus
	leds    LEDBus
	rand    Random

	state   State
	keys    [NumButtons]Button
	ledMask uint8

	lastScan  int64
	phaseAt   int64
	moleTime  int64
	mole      int
	hit       int
	blinkAt   int64
	blinkStep int
	result    Outcome

	onTransition func(from, to State)
}

func NewGame(clock Clock, buttons ButtonBus, leds LEDBus, rand Random) *Game {
	g := &Game{
		clock:     clock,
		buttons:   buttons,
		leds:      leds,
		rand:      rand,
		mole:      -1,
		hit:       -1,
		blinkStep: 1,
	}
	for i := range g.keys {
		g.keys[i] = NewButton(i)
	}
	g.setLEDs(0)
	return g
}

// OnTransition registers fn to be called on every state change.
func (g *Game) OnTransition(fn func(from, to State)) {
	g.onTransition = fn
}

func (g *Game) State() State {
	return g.state
}

// Result reports how the last finished round ended.
func (g *Game) Result() Outcome {
	return g.result
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		State:  g.state,
		LEDs:   g.ledMask,
		Mole:   g.mole,
		Hit:    g.hit,
		Result: g.result,
	}
	for i := range g.keys {
		s.Buttons[i] = g.keys[i].State
	}
	return s
}

// Step runs one pass of the polling loop. It never blocks.
func (g *Game) Step() {
	now := g.clock.Millis()

	switch g.state {
	case StateStandby:
		if !g.scanDue(now) {
			return
		}
		bus := g.buttons.Read()
		start := false
		for i := range g.keys {
			g.keys[i].Update(bus, now)
			if g.keys[i].Held >= HoldToStart {
				start = true
			}
		}
		if start {
			g.rand.Seed(g.clock.Micros())
			for i := range g.keys {
				g.keys[i].ClearHeld()
			}
			g.enter(StateKeys, now)
		}

	case StateKeys:
		// Wait until every button is released before the round starts.
		if !g.scanDue(now) {
			return
		}
		bus := g.buttons.Read()
		for i := range g.keys {
			g.keys[i].Update(bus, now)
			if g.keys[i].State != ButtonUp {
				return
			}
		}
		for i := range g.keys {
			g.keys[i].ClearHeld()
		}
		g.setLEDs(AllLEDs)
		g.phaseAt = now
		g.mole = -1
		g.hit = -1
		g.enter(StateMole, now)

	case StateMole:
		g.stepMole(now)

	case StateCompare:
		if g.hit == g.mole {
			g.enter(StateWin, now)
		} else {
			g.enter(StateMoleWins, now)
		}

	case StateWin, StateMoleWins:
		g.stepBlink(now)

	default:
		g.enter(StateStandby, now)
	}
}

func (g *Game) stepMole(now int64) {
	switch g.ledMask {
	case AllLEDs:
		if now-g.phaseAt > AttractTime {
			g.phaseAt = now
			g.setLEDs(0)
		}
	case 0:
		g.mole = g.rand.Intn(NumButtons)
		g.moleTime = int64(MoleBaseTime + g.rand.Intn(MoleJitter))
		g.phaseAt = now
		g.setLEDs(Mask(g.mole))
	default:
		if now-g.phaseAt > g.moleTime {
			g.enter(StateMoleWins, now)
			return
		}
		if !g.scanDue(now) {
			return
		}
		bus := g.buttons.Read()
		hit := -1
		for i := range g.keys {
			g.keys[i].Update(bus, now)
			if g.keys[i].Pressed() {
				hit = i
			}
		}
		if hit >= 0 {
			g.hit = hit
			g.enter(StateCompare, now)
		}
	}
}

// stepBlink plays the end-of-round pattern: odd steps light, even steps
// clear, and the last step hands back to standby.
func (g *Game) stepBlink(now int64) {
	if now-g.blinkAt <= BlinkInterval {
		return
	}
	g.blinkAt = now

	switch {
	case g.blinkStep%2 == 0:
		g.setLEDs(0)
	case g.state == StateWin:
		g.setLEDs(AllLEDs)
	default:
		g.setLEDs(Mask(g.mole))
	}

	if g.blinkStep == BlinkSteps {
		g.blinkStep = 1
		g.enter(StateStandby, now)
		return
	}
	g.blinkStep++
}

func (g *Game) scanDue(now int64) bool {
	if now-g.lastScan <= ScanInterval {
		return false
	}
	g.lastScan = now
	return true
}

func (g *Game) enter(next State, now int64) {
	prev := g.state
	g.state = next

	switch next {
	case StateStandby:
		// Buttons are not scanned during compare and blink, so a press
		// still in progress only counts from here on.
		for i := range g.keys {
			if s := g.keys[i].State; s == ButtonDown || s == ButtonRising {
				g.keys[i].DownAt = now
			}
			g.keys[i].ClearHeld()
		}
	case StateWin:
		g.result = OutcomeWin
		g.blinkAt = now - BlinkInterval - 1
	case StateMoleWins:
		g.result = OutcomeLose
		g.blinkAt = now - BlinkInterval - 1
	}

	if g.onTransition != nil && prev != next {
		g.onTransition(prev, next)
	}
}

func (g *Game) setLEDs(mask uint8) {
	g.ledMask = mask
	g.leds.Write(mask)
}
