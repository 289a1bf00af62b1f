package mole

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const released = AllLEDs

func TestButton_StartsUp(t *testing.T) {
	b := NewButton(2)
	assert.Equal(t, ButtonUp, b.State)
	assert.Equal(t, 2, b.Index)
	assert.Zero(t, b.Held)
}

func TestButton_PressNeedsTwoScans(t *testing.T) {
	b := NewButton(1)
	pressed := released &^ Mask(1)

	b.Update(pressed, 100)
	assert.Equal(t, ButtonFalling, b.State)
	assert.False(t, b.Pressed())

	b.Update(pressed, 140)
	assert.Equal(t, ButtonDown, b.State)
	assert.True(t, b.Pressed())
	assert.Equal(t, int64(140), b.DownAt)
}

func TestButton_RejectsBounce(t *testing.T) {
	b := NewButton(0)
	pressed := released &^ Mask(0)

	b.Update(pressed, 10)
	b.Update(released, 50)
	assert.Equal(t, ButtonUp, b.State)

	b.Update(pressed, 90)
	b.Update(pressed, 130)
	b.Update(released, 170)
	assert.Equal(t, ButtonRising, b.State)
	b.Update(pressed, 210)
	assert.Equal(t, ButtonDown, b.State)
	assert.Zero(t, b.Held, "a bounce on release must not complete the press")
}

func TestButton_HeldMeasuredBetweenEdges(t *testing.T) {
	b := NewButton(3)
	pressed := released &^ Mask(3)

	b.Update(pressed, 0)
	b.Update(pressed, 40)
	b.Update(released, 1200)
	b.Update(released, 1240)

	assert.Equal(t, ButtonUp, b.State)
	assert.Equal(t, int64(1200), b.Held)

	b.ClearHeld()
	assert.Zero(t, b.Held)
}

func TestButton_IgnoresOtherBits(t *testing.T) {
	b := NewButton(0)
	b.Update(released&^Mask(1)&^Mask(2), 0)
	assert.Equal(t, ButtonUp, b.State)
}

func TestButton_UnknownStateResets(t *testing.T) {
	b := NewButton(0)
	b.State = ButtonState(42)
	b.Update(released, 0)
	assert.Equal(t, ButtonUp, b.State)
	assert.Equal(t, "ButtonState(42)", ButtonState(42).String())
}
