// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pinscreen

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/maruel/ansi256"
)

func TestShow(t *testing.T) {
	var buf bytes.Buffer
	d := New(&buf, nil)
	if d.String() != "PinScreen" {
		t.Fatal(d.String())
	}
	if err := d.Show(0x0101, 0x0F0F); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	high := ansi256.Default.Block(DefaultOpts.High)
	low := ansi256.Default.Block(DefaultOpts.Low)
	unused := ansi256.Default.Block(DefaultOpts.Unused)
	want := "\r\033[0m" +
		high + strings.Repeat(low, 3) + strings.Repeat(unused, 4) +
		"\033[0m " +
		high + strings.Repeat(low, 3) + strings.Repeat(unused, 4) +
		"\033[0m 0x0101 "
	if got != want {
		t.Errorf("Show() = %q, want %q", got, want)
	}

	buf.Reset()
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "\n\033[0m" {
		t.Errorf("Halt() = %q", buf.String())
	}
}

func TestShow_maskedValue(t *testing.T) {
	var buf bytes.Buffer
	d := New(&buf, &DefaultOpts)
	if err := d.Show(0xFFFF, 0x00FF); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), " 0x00ff ") {
		t.Errorf("unexpected %q", buf.String())
	}
}

func TestSnapshot(t *testing.T) {
	img, err := Snapshot(0x8001, 0xFFFE, nil)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != width || b.Dy() != height {
		t.Fatalf("bounds %v", b)
	}
	tests := []struct {
		pin  int
		want color.NRGBA
	}{
		{0, DefaultOpts.Unused},
		{1, DefaultOpts.Low},
		{8, DefaultOpts.Low},
		{15, DefaultOpts.High},
	}
	for _, tc := range tests {
		x, y := Center(tc.pin)
		r, g, b, a := img.At(int(x), int(y)).RGBA()
		wr, wg, wb, wa := tc.want.RGBA()
		if r != wr || g != wg || b != wb || a != wa {
			t.Errorf("pin %d: color %v, want %v", tc.pin, img.At(int(x), int(y)), tc.want)
		}
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, 0x00FF, 0xFFFF, nil); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != width || b.Dy() != height {
		t.Errorf("bounds %v", b)
	}
}
