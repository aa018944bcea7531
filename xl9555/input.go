// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package xl9555

import (
	"errors"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/pin"
)

// Input reads one pin of a shared Dev.
//
// Input does not configure the pin direction. The pin must have been made an
// input with Dev.ConfigureDirections.
type Input struct {
	dev *Dev
	pin Pin
}

// NewInput returns an Input for p. No bus transaction is made.
func NewInput(d *Dev, p Pin) *Input {
	return &Input{dev: d, pin: p}
}

// ReadErr returns the level of the pin. Bus errors are narrowed to
// ErrCommunication.
func (i *Input) ReadErr() (gpio.Level, error) {
	v, err := i.dev.ReadValue(i.pin)
	if err != nil {
		return gpio.Low, ErrCommunication
	}
	return gpio.Level(v), nil
}

// Read implements gpio.PinIn. It returns gpio.Low if the bus failed; use
// ReadErr to tell the two apart.
func (i *Input) Read() gpio.Level {
	l, _ := i.ReadErr()
	return l
}

// In implements gpio.PinIn. The chip has neither pull resistors nor per pin
// edge detection, and the direction is left untouched, so In only validates
// its arguments.
func (i *Input) In(pull gpio.Pull, edge gpio.Edge) error {
	switch pull {
	case gpio.PullDown:
		return errors.New("xl9555: PullDown is not supported")
	case gpio.PullUp:
		return errors.New("xl9555: PullUp is not supported")
	}
	if edge != gpio.NoEdge {
		return errors.New("xl9555: edge detection not supported")
	}
	return nil
}

// WaitForEdge implements gpio.PinIn. It always returns false.
func (i *Input) WaitForEdge(timeout time.Duration) bool {
	return false
}

func (i *Input) Pull() gpio.Pull {
	return gpio.Float
}

func (i *Input) DefaultPull() gpio.Pull {
	return gpio.Float
}

// Pin returns the mask the Input reads.
func (i *Input) Pin() Pin {
	return i.pin
}

func (i *Input) Name() string {
	return i.dev.String() + "_" + i.pin.String()
}

func (i *Input) String() string {
	return i.Name()
}

func (i *Input) Number() int {
	return i.pin.Number()
}

func (i *Input) Function() string {
	return string(i.Func())
}

// Func returns gpio.IN.
func (i *Input) Func() pin.Func {
	return gpio.IN
}

func (i *Input) SupportedFuncs() []pin.Func {
	return []pin.Func{gpio.IN}
}

// SetFunc implements pin.PinFunc. Only gpio.IN is accepted and the direction
// is left untouched.
func (i *Input) SetFunc(f pin.Func) error {
	if f != gpio.IN {
		return errors.New("xl9555: Input cannot be " + string(f))
	}
	return nil
}

func (i *Input) Halt() error {
	return nil
}

var _ gpio.PinIn = &Input{}
var _ pin.PinFunc = &Input{}
