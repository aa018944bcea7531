// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package xl9555

import (
	"errors"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
)

// gpioPin is the gpio.PinIO published in gpioreg by Dev.Register. It pairs
// an Input and an Output on the same pin.
type gpioPin struct {
	in  Input
	out Output
}

func (p *gpioPin) String() string {
	return p.in.Name()
}

func (p *gpioPin) Name() string {
	return p.in.Name()
}

func (p *gpioPin) Number() int {
	return p.in.Number()
}

func (p *gpioPin) Halt() error {
	return nil
}

func (p *gpioPin) In(pull gpio.Pull, edge gpio.Edge) error {
	return p.in.In(pull, edge)
}

func (p *gpioPin) Read() gpio.Level {
	return p.in.Read()
}

func (p *gpioPin) WaitForEdge(timeout time.Duration) bool {
	return false
}

func (p *gpioPin) Pull() gpio.Pull {
	return gpio.Float
}

func (p *gpioPin) DefaultPull() gpio.Pull {
	return gpio.Float
}

// Out sets the output latch. Unlike most gpio.PinOut implementations it does
// not switch the pin to output.
func (p *gpioPin) Out(l gpio.Level) error {
	return p.out.Out(l)
}

func (p *gpioPin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return ErrNotSupported
}

func (p *gpioPin) Function() string {
	return string(p.Func())
}

// Func reads the configuration registers to report gpio.IN or gpio.OUT.
func (p *gpioPin) Func() pin.Func {
	dir, err := p.in.dev.ReadDirections()
	if err != nil {
		return pin.FuncNone
	}
	if Pin(dir)&p.in.pin != 0 {
		return gpio.IN
	}
	return gpio.OUT
}

// SupportedFuncs implements pin.PinFunc.
func (p *gpioPin) SupportedFuncs() []pin.Func {
	return supportedFuncs[:]
}

// SetFunc changes the direction of this pin only.
func (p *gpioPin) SetFunc(f pin.Func) error {
	var input bool
	switch f {
	case gpio.IN:
		input = true
	case gpio.OUT:
	default:
		return errors.New("xl9555: Function not supported: " + string(f))
	}
	return p.in.dev.setDirection(p.in.pin, input)
}

var supportedFuncs = [...]pin.Func{gpio.IN, gpio.OUT}

var _ gpio.PinIO = &gpioPin{}
var _ pin.PinFunc = &gpioPin{}
