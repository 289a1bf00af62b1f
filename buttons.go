package main

import (
	"fmt"
	"log"

	"github.com/stianeikeland/go-rpio/v4"

	"github.com/gonzanicorodriguez/juego-topo/internal/mole"
)

type Pin = rpio.Pin

// gpioPin is the part of rpio.Pin the board uses after setup.
type gpioPin interface {
	Read() rpio.State
	High()
	Low()
}

// board maps the game's button and LED buses onto GPIO pins.
type board struct {
	buttons [mole.NumButtons]gpioPin
	leds    [mole.NumButtons]gpioPin
	close   func() error
}

func openBoard(cfg Config) (*board, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("open gpio: %w", err)
	}
	b := &board{close: rpio.Close}
	for i, n := range cfg.ButtonPins {
		pin := Pin(n)
		pin.Input()
		pin.PullUp()
		b.buttons[i] = pin
	}
	for i, n := range cfg.LEDPins {
		pin := Pin(n)
		pin.Output()
		pin.Low()
		b.leds[i] = pin
	}
	log.Printf("topo: buttons on %v, leds on %v", cfg.ButtonPins, cfg.LEDPins)
	return b, nil
}

// Read returns the raw button levels; a released button reads high.
func (b *board) Read() uint8 {
	var bus uint8
	for i, pin := range b.buttons {
		if pin.Read() == rpio.High {
			bus |= mole.Mask(i)
		}
	}
	return bus
}

func (b *board) Write(mask uint8) {
	for i, pin := range b.leds {
		if mask&mole.Mask(i) != 0 {
			pin.High()
		} else {
			pin.Low()
		}
	}
}

// Close switches the LEDs off and releases the GPIO mapping.
func (b *board) Close() error {
	b.Write(0)
	if b.close == nil {
		return nil
	}
	return b.close()
}
