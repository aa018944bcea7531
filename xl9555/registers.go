// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package xl9555

import (
	"fmt"
	"math/bits"
	"strings"
)

// BaseAddress is the I²C address of the chip with A0, A1 and A2 tied low.
const BaseAddress uint16 = 0x20

// Register addresses. Registers come in pairs, port 0 followed by port 1,
// and are always accessed two at a time.
const (
	InputPort0     uint8 = 0 // Input Port Register 0
	InputPort1     uint8 = 1 // Input Port Register 1
	OutputPort0    uint8 = 2 // Output Port Register 0
	OutputPort1    uint8 = 3 // Output Port Register 1
	InversionPort0 uint8 = 4 // Polarity Inversion Port Register 0
	InversionPort1 uint8 = 5 // Polarity Inversion Port Register 1
	ConfigPort0    uint8 = 6 // Configuration Port Register 0
	ConfigPort1    uint8 = 7 // Configuration Port Register 1
)

// Pin is a bit mask of one or more of the 16 I/O lines. Port 0 occupies bits
// 0-7 and port 1 bits 8-15. Masks can be combined with |.
type Pin uint16

// Pins of port 0 and port 1.
const (
	P00 Pin = 1 << iota
	P01
	P02
	P03
	P04
	P05
	P06
	P07
	P10
	P11
	P12
	P13
	P14
	P15
	P16
	P17

	AllPins Pin = 0xFFFF
)

// Number returns the line index 0-15 of a single pin mask, or -1 when the
// mask does not have exactly one bit set.
func (p Pin) Number() int {
	if bits.OnesCount16(uint16(p)) != 1 {
		return -1
	}
	return bits.TrailingZeros16(uint16(p))
}

// String returns "P00".."P17", joined with | for multi-pin masks.
func (p Pin) String() string {
	if p == 0 {
		return "0"
	}
	var names []string
	for i := 0; i < 16; i++ {
		if p&(1<<i) != 0 {
			names = append(names, fmt.Sprintf("P%d%d", i/8, i%8))
		}
	}
	return strings.Join(names, "|")
}

// ParsePin parses a pin name such as "P13" or "p13". Names may be combined
// with |.
func ParsePin(s string) (Pin, error) {
	var p Pin
	for _, name := range strings.Split(s, "|") {
		name = strings.ToUpper(strings.TrimSpace(name))
		if len(name) != 3 || name[0] != 'P' || name[1] < '0' || name[1] > '1' || name[2] < '0' || name[2] > '7' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidPin, s)
		}
		p |= 1 << (int(name[1]-'0')*8 + int(name[2]-'0'))
	}
	return p, nil
}

// Address returns the 7-bit I²C address selected by the A0, A1 and A2
// strapping pins.
func Address(a0, a1, a2 bool) uint16 {
	addr := BaseAddress
	if a2 {
		addr |= 1 << 2
	}
	if a1 {
		addr |= 1 << 1
	}
	if a0 {
		addr |= 1
	}
	return addr
}

// split returns the port 0 byte used by a pin mask and true, or the port 1
// byte and false. Masks up to 0x0080 address port 0, anything above port 1.
// A mask spanning both ports therefore only updates port 1.
func (p Pin) split() (uint8, bool) {
	if p <= 0x0080 {
		return uint8(p), true
	}
	return uint8(p >> 8), false
}
