// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package xl9555 provides a driver for the XL9555 16-bit I²C I/O expander.
//
// The chip has two 8-bit ports, P0 and P1, and four register pairs: input,
// output, polarity inversion and configuration (direction). Every register
// pair is read or written as one 2-byte transaction, port 0 first.
//
// The driver keeps no copy of the registers: every operation is a fresh bus
// transaction. A Dev is safe for concurrent use; operations are serialized so
// that at most one transaction, or one read-modify-write sequence, is in
// flight at any time.
//
// Single pins are exposed as gpio.PinOut through Output and as gpio.PinIn
// through Input. Directions are never changed implicitly; call
// ConfigureDirections first.
//
// The register map is the same as the TCA9555/PCA9555.
package xl9555

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
)

var (
	// ErrCommunication is returned by the pin adapters when the underlying
	// bus transaction failed.
	ErrCommunication = errors.New("xl9555: communication with device failed")
	// ErrBusy is returned by TrySetValue when another operation holds the
	// device.
	ErrBusy = errors.New("xl9555: device busy")
	// ErrNotSupported is returned for features the chip lacks.
	ErrNotSupported = errors.New("xl9555: not supported")
	// ErrInvalidPin is returned when parsing an unknown pin name.
	ErrInvalidPin = errors.New("xl9555: invalid pin")
)

// Opts holds the state of the address select pins.
type Opts struct {
	A0 bool
	A1 bool
	A2 bool
}

// DefaultOpts has all address select pins tied low, address 0x20.
var DefaultOpts = Opts{}

// Dev is a handle to an XL9555.
type Dev struct {
	mu   sync.Mutex
	d    i2c.Dev
	pins []gpioPin
}

// New returns a handle to an XL9555 on bus.
//
// A read of the input registers is done to confirm the device responds. If
// it fails no device is returned.
func New(bus i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	d := &Dev{d: i2c.Dev{Bus: bus, Addr: Address(opts.A0, opts.A1, opts.A2)}}
	var buf [2]byte
	if err := d.readPair(InputPort0, &buf); err != nil {
		return nil, err
	}
	return d, nil
}

// Addr returns the I²C address of the device.
func (d *Dev) Addr() uint16 {
	return d.d.Addr
}

func (d *Dev) String() string {
	return "XL9555_" + strconv.FormatUint(uint64(d.d.Addr), 16)
}

// Halt implements conn.Resource. The chip has nothing to stop.
func (d *Dev) Halt() error {
	return nil
}

// Close removes any registration to the device.
func (d *Dev) Close() error {
	return d.Unregister()
}

// ConfigureDirections overwrites the configuration registers. A 1 bit makes
// the pin an input, a 0 bit an output. The whole 16-bit map is written.
func (d *Dev) ConfigureDirections(value uint16) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writePair(ConfigPort0, value)
}

// setDirection flips the configuration bit of p only, leaving the
// direction of the other pins as read from the chip.
func (d *Dev) setDirection(p Pin, input bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	var buf [2]byte
	if err := d.readPair(ConfigPort0, &buf); err != nil {
		return err
	}
	v := uint16(buf[1])<<8 | uint16(buf[0])
	if input {
		v |= uint16(p)
	} else {
		v &^= uint16(p)
	}
	return d.writePair(ConfigPort0, v)
}

// ReadDirections returns the configuration registers.
func (d *Dev) ReadDirections() (uint16, error) {
	return d.readWord(ConfigPort0)
}

// SetValue drives the output latch of p high or low, leaving the other bits
// unchanged.
//
// Masks up to P07 modify port 0, any larger mask modifies port 1 only. Use
// single pins, or masks confined to one port.
func (d *Dev) SetValue(p Pin, value bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.setValue(p, value)
}

// TrySetValue is SetValue, except that it fails with ErrBusy instead of
// waiting when another operation is in progress.
func (d *Dev) TrySetValue(p Pin, value bool) error {
	if !d.mu.TryLock() {
		return ErrBusy
	}
	defer d.mu.Unlock()
	return d.setValue(p, value)
}

// ReadValue returns the level of the input of p. The same port selection
// rule as SetValue applies.
func (d *Dev) ReadValue(p Pin) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var buf [2]byte
	if err := d.readPair(InputPort0, &buf); err != nil {
		return false, err
	}
	m, port0 := p.split()
	if port0 {
		return buf[0]&m != 0, nil
	}
	return buf[1]&m != 0, nil
}

// ReadAllValue returns the input level of all 16 pins, P00 in bit 0.
func (d *Dev) ReadAllValue() (uint16, error) {
	return d.readWord(InputPort0)
}

// ReadOutputs returns the output latch registers.
func (d *Dev) ReadOutputs() (uint16, error) {
	return d.readWord(OutputPort0)
}

// WriteOutputs overwrites the output latch registers.
func (d *Dev) WriteOutputs(value uint16) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writePair(OutputPort0, value)
}

// SetPolarity overwrites the polarity inversion registers. A 1 bit inverts
// the value read from the corresponding input.
func (d *Dev) SetPolarity(value uint16) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writePair(InversionPort0, value)
}

// ReadPolarity returns the polarity inversion registers.
func (d *Dev) ReadPolarity() (uint16, error) {
	return d.readWord(InversionPort0)
}

// Register publishes the 16 pins in gpioreg as XL9555_<addr>_P00 and so on.
func (d *Dev) Register() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pins != nil {
		return nil
	}
	pins := make([]gpioPin, 16)
	for i := range pins {
		p := Pin(1 << i)
		pins[i] = gpioPin{in: Input{dev: d, pin: p}, out: Output{dev: d, pin: p}}
		if err := gpioreg.Register(&pins[i]); err != nil {
			for j := 0; j < i; j++ {
				_ = gpioreg.Unregister(pins[j].Name())
			}
			return fmt.Errorf("xl9555: %w", err)
		}
	}
	d.pins = pins
	return nil
}

// Unregister removes the pins published by Register. All pins are removed
// even if one fails; the first error is returned.
func (d *Dev) Unregister() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	var err error
	for i := range d.pins {
		if err2 := gpioreg.Unregister(d.pins[i].Name()); err2 != nil && err == nil {
			err = fmt.Errorf("xl9555: %w", err2)
		}
	}
	d.pins = nil
	return err
}

func (d *Dev) setValue(p Pin, value bool) error {
	var buf [2]byte
	if err := d.readPair(OutputPort0, &buf); err != nil {
		return err
	}
	m, port0 := p.split()
	i := 1
	if port0 {
		i = 0
	}
	if value {
		buf[i] |= m
	} else {
		buf[i] &^= m
	}
	return d.writePair(OutputPort0, uint16(buf[1])<<8|uint16(buf[0]))
}

func (d *Dev) readWord(reg uint8) (uint16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var buf [2]byte
	if err := d.readPair(reg, &buf); err != nil {
		return 0, err
	}
	return uint16(buf[1])<<8 | uint16(buf[0]), nil
}

// readPair reads reg and reg+1 in one transaction.
func (d *Dev) readPair(reg uint8, buf *[2]byte) error {
	if err := d.d.Tx([]byte{reg}, buf[:]); err != nil {
		return fmt.Errorf("xl9555: %w", err)
	}
	return nil
}

// writePair writes reg and reg+1 in one transaction, low byte first.
func (d *Dev) writePair(reg uint8, value uint16) error {
	if err := d.d.Tx([]byte{reg, byte(value), byte(value >> 8)}, nil); err != nil {
		return fmt.Errorf("xl9555: %w", err)
	}
	return nil
}

var _ conn.Resource = &Dev{}
var _ io.Closer = &Dev{}
