package mole

import "fmt"

type ButtonState uint8

const (
	ButtonDown ButtonState = iota
	ButtonUp
	ButtonFalling
	ButtonRising
)

func (s ButtonState) String() string {
	switch s {
	case ButtonDown:
		return "down"
	case ButtonUp:
		return "up"
	case ButtonFalling:
		return "falling"
	case ButtonRising:
		return "rising"
	}
	return fmt.Sprintf("ButtonState(%d)", uint8(s))
}

// Button debounces one input. A level change is only accepted when two
// consecutive scans agree.
type Button struct {
	Index  int
	State  ButtonState
	DownAt int64 // ms, set on a confirmed falling edge
	Held   int64 // ms between the last confirmed falling and rising edges
}

func NewButton(index int) Button {
	b := Button{Index: index}
	b.Reset()
	return b
}

func (b *Button) Reset() {
	b.State = ButtonUp
}

// Update advances the debouncer with the raw bus value read at now.
func (b *Button) Update(bus uint8, now int64) {
	released := bus&Mask(b.Index) != 0

	switch b.State {
	case ButtonDown:
		if released {
			b.State = ButtonRising
		}
	case ButtonUp:
		if !released {
			b.State = ButtonFalling
		}
	case ButtonFalling:
		if !released {
			b.DownAt = now
			b.State = ButtonDown
		} else {
			b.State = ButtonUp
		}
	case ButtonRising:
		if released {
			b.State = ButtonUp
			b.Held = now - b.DownAt
		} else {
			b.State = ButtonDown
		}
	default:
		b.Reset()
	}
}

// ClearHeld consumes the last completed press.
func (b *Button) ClearHeld() {
	b.Held = 0
}

func (b *Button) Pressed() bool {
	return b.State == ButtonDown
}
