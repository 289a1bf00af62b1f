package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/gonzanicorodriguez/juego-topo/internal/mole"
)

// BCM numbering; the Pi header exposes GPIO 0 to 27.
const maxPin = 27

var (
	errPinCount     = errors.New("config: need exactly one pin per button and LED")
	errPinRange     = errors.New("config: pin out of range")
	errDuplicatePin = errors.New("config: pin used twice")
	errPollInterval = errors.New("config: poll interval must be positive")
)

// Config holds the hardware wiring. Game timing is fixed in package mole.
type Config struct {
	ButtonPins   []int         `env:"TOPO_BUTTON_PINS" envDefault:"6,13,19,26"`
	LEDPins      []int         `env:"TOPO_LED_PINS" envDefault:"12,16,20,21"`
	PollInterval time.Duration `env:"TOPO_POLL_INTERVAL" envDefault:"1ms"`
	Verbose      bool          `env:"TOPO_VERBOSE"`
}

// SimConfig is the part of the environment the terminal simulator reads.
// It has no pins, so bad wiring variables do not stop it.
type SimConfig struct {
	Verbose bool `env:"TOPO_VERBOSE"`
}

func LoadSimConfig() (SimConfig, error) {
	var cfg SimConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if len(c.ButtonPins) != mole.NumButtons || len(c.LEDPins) != mole.NumButtons {
		return fmt.Errorf("%w: got %d buttons, %d leds", errPinCount, len(c.ButtonPins), len(c.LEDPins))
	}
	seen := make(map[int]bool)
	for _, pin := range append(append([]int{}, c.ButtonPins...), c.LEDPins...) {
		if pin < 0 || pin > maxPin {
			return fmt.Errorf("%w: %d", errPinRange, pin)
		}
		if seen[pin] {
			return fmt.Errorf("%w: %d", errDuplicatePin, pin)
		}
		seen[pin] = true
	}
	if c.PollInterval <= 0 {
		return errPollInterval
	}
	return nil
}
