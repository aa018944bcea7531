// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package xl9555

import (
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

func TestInput(t *testing.T) {
	scenario := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			probe(0x20),
			{Addr: 0x20, W: []byte{0x00}, R: []byte{0x00, 0x02}},
			{Addr: 0x20, W: []byte{0x00}, R: []byte{0x00, 0x00}},
		},
	}
	dev, err := New(scenario, nil)
	if err != nil {
		t.Fatal(err)
	}
	in := NewInput(dev, P11)
	if err := in.In(gpio.Float, gpio.NoEdge); err != nil {
		t.Fatal(err)
	}
	if l := in.Read(); l != gpio.High {
		t.Errorf("Read() = %s, want High", l)
	}
	l, err := in.ReadErr()
	if err != nil {
		t.Fatal(err)
	}
	if l != gpio.Low {
		t.Errorf("ReadErr() = %s, want Low", l)
	}
	if err := scenario.Close(); err != nil {
		t.Error(err)
	}
}

func TestInput_fails(t *testing.T) {
	bus := &fakeBus{addr: 0x20}
	bus.setWord(InputPort0, 0xFFFF)
	dev, err := New(bus, nil)
	if err != nil {
		t.Fatal(err)
	}
	in := NewInput(dev, P04)
	bus.setFail(true)
	if l := in.Read(); l != gpio.Low {
		t.Errorf("Read() on failure = %s, want Low", l)
	}
	if _, err := in.ReadErr(); err != ErrCommunication {
		t.Errorf("ReadErr() = %v, want ErrCommunication", err)
	}
}

func TestInput_In(t *testing.T) {
	bus := &fakeBus{addr: 0x20}
	dev, err := New(bus, nil)
	if err != nil {
		t.Fatal(err)
	}
	in := NewInput(dev, P00)
	tests := []struct {
		pull    gpio.Pull
		edge    gpio.Edge
		wantErr bool
	}{
		{gpio.Float, gpio.NoEdge, false},
		{gpio.PullNoChange, gpio.NoEdge, false},
		{gpio.PullUp, gpio.NoEdge, true},
		{gpio.PullDown, gpio.NoEdge, true},
		{gpio.Float, gpio.RisingEdge, true},
		{gpio.Float, gpio.BothEdges, true},
	}
	for _, tc := range tests {
		err := in.In(tc.pull, tc.edge)
		if (err != nil) != tc.wantErr {
			t.Errorf("In(%s, %s) = %v", tc.pull, tc.edge, err)
		}
	}
	if bus.writes != 0 {
		t.Error("In() must not change directions")
	}
	if in.WaitForEdge(time.Millisecond) {
		t.Error("WaitForEdge() should return false")
	}
	if in.Pull() != gpio.Float || in.DefaultPull() != gpio.Float {
		t.Error("pull should be Float")
	}
	if in.Name() != "XL9555_20_P00" || in.Number() != 0 || in.Pin() != P00 {
		t.Errorf("unexpected identity %s %d", in.Name(), in.Number())
	}
	if in.Function() != "IN" {
		t.Errorf("Function() = %q", in.Function())
	}
}
