// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package xl9555

import (
	"errors"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
)

// Output drives one pin of a shared Dev. Several Outputs, even for the same
// pin, may share a Dev; the last write wins.
//
// Output does not configure the pin direction. The pin must have been made
// an output with Dev.ConfigureDirections.
type Output struct {
	dev *Dev
	pin Pin
}

// NewOutput returns an Output for p and drives it to l. If the initial write
// fails no Output is returned.
func NewOutput(d *Dev, p Pin, l gpio.Level) (*Output, error) {
	if err := d.SetValue(p, bool(l)); err != nil {
		return nil, err
	}
	return &Output{dev: d, pin: p}, nil
}

// SetLow drives the pin low.
func (o *Output) SetLow() error {
	return o.set(false)
}

// SetHigh drives the pin high.
func (o *Output) SetHigh() error {
	return o.set(true)
}

// Out implements gpio.PinOut. The direction is left untouched.
func (o *Output) Out(l gpio.Level) error {
	return o.set(bool(l))
}

// PWM implements gpio.PinOut. The chip has no PWM.
func (o *Output) PWM(duty gpio.Duty, f physic.Frequency) error {
	return ErrNotSupported
}

// Pin returns the mask the Output drives.
func (o *Output) Pin() Pin {
	return o.pin
}

func (o *Output) Name() string {
	return o.dev.String() + "_" + o.pin.String()
}

func (o *Output) String() string {
	return o.Name()
}

func (o *Output) Number() int {
	return o.pin.Number()
}

func (o *Output) Function() string {
	return string(o.Func())
}

// Func returns gpio.OUT.
func (o *Output) Func() pin.Func {
	return gpio.OUT
}

func (o *Output) SupportedFuncs() []pin.Func {
	return []pin.Func{gpio.OUT}
}

// SetFunc implements pin.PinFunc. Only gpio.OUT is accepted and the
// direction is left untouched.
func (o *Output) SetFunc(f pin.Func) error {
	if f != gpio.OUT {
		return errors.New("xl9555: Output cannot be " + string(f))
	}
	return nil
}

// Halt implements conn.Resource. The pin keeps its level.
func (o *Output) Halt() error {
	return nil
}

// set narrows any bus error to ErrCommunication.
func (o *Output) set(v bool) error {
	if err := o.dev.SetValue(o.pin, v); err != nil {
		return ErrCommunication
	}
	return nil
}

var _ gpio.PinOut = &Output{}
var _ pin.PinFunc = &Output{}
