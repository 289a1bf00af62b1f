// Package mole implements the whack-a-mole game: a debouncer per button and
// the game state machine that drives the four LEDs. It does not touch
// hardware; the caller supplies the clock, the buses and a random source and
// calls Game.Step from its polling loop.
package mole

const (
	NumButtons = 4

	ScanInterval  = 40   // ms between debounce scans
	HoldToStart   = 1000 // ms a press must last to start a game
	AttractTime   = 1000 // ms all LEDs stay on before the mole shows up
	MoleBaseTime  = 5000 // ms
	MoleJitter    = 2001
	BlinkInterval = 500 // ms
	BlinkSteps    = 6

	AllLEDs uint8 = 1<<NumButtons - 1
)

// Clock is a monotonic time source.
type Clock interface {
	Millis() int64
	Micros() int64
}

// ButtonBus reads the button inputs. Bit i is the level of button i; inputs
// are pulled up, so a pressed button reads 0.
type ButtonBus interface {
	Read() uint8
}

// LEDBus drives the LEDs. Bit i lights LED i.
type LEDBus interface {
	Write(mask uint8)
}

// Random is satisfied by *math/rand.Rand.
type Random interface {
	Seed(seed int64)
	Intn(n int) int
}

// Mask returns the bus bit for button or LED i.
func Mask(i int) uint8 {
	return 1 << uint(i)
}
