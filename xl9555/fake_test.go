// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package xl9555

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/physic"
)

var errInjected = errors.New("injected bus failure")

// fakeBus simulates the register file of one XL9555. With loopback set, a
// write to the output registers is mirrored into the input registers, as if
// every output was wired back to itself.
type fakeBus struct {
	mu       sync.Mutex
	addr     uint16
	regs     [8]byte
	loopback bool
	fail     bool
	reads    int
	writes   int
}

func (f *fakeBus) String() string {
	return "fakeBus"
}

func (f *fakeBus) SetSpeed(physic.Frequency) error {
	return nil
}

func (f *fakeBus) Tx(addr uint16, w, r []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errInjected
	}
	if addr != f.addr {
		return fmt.Errorf("fakeBus: no device at 0x%x", addr)
	}
	if len(w) == 0 || w[0] > ConfigPort0 || w[0]%2 != 0 {
		return fmt.Errorf("fakeBus: bad register access %#v", w)
	}
	reg := w[0]
	switch {
	case len(w) == 1 && len(r) == 2:
		f.reads++
		r[0], r[1] = f.regs[reg], f.regs[reg+1]
	case len(w) == 3 && len(r) == 0:
		f.writes++
		f.regs[reg], f.regs[reg+1] = w[1], w[2]
		if f.loopback && reg == OutputPort0 {
			f.regs[InputPort0], f.regs[InputPort1] = w[1], w[2]
		}
	default:
		return fmt.Errorf("fakeBus: unexpected transaction w=%#v r=%d", w, len(r))
	}
	return nil
}

func (f *fakeBus) word(reg uint8) uint16 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint16(f.regs[reg+1])<<8 | uint16(f.regs[reg])
}

func (f *fakeBus) setWord(reg uint8, v uint16) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.regs[reg], f.regs[reg+1] = byte(v), byte(v>>8)
}

func (f *fakeBus) setFail(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = fail
}
