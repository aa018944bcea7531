// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pinscreen renders the levels of the 16 lines of an I/O expander,
// either to a terminal using ANSI color codes or to an image.
//
// Useful to watch inputs change while probing a board.
package pinscreen

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Pins is the number of lines rendered.
const Pins = 16

// Opts represents the options available for rendering.
type Opts struct {
	Palette *ansi256.Palette
	High    color.NRGBA
	Low     color.NRGBA
	Unused  color.NRGBA

	_ struct{}
}

// DefaultOpts renders high lines green, low lines dark red and lines outside
// the mask grey.
var DefaultOpts = Opts{
	High:   color.NRGBA{0x00, 0xC0, 0x00, 0xFF},
	Low:    color.NRGBA{0x60, 0x00, 0x00, 0xFF},
	Unused: color.NRGBA{0x30, 0x30, 0x30, 0xFF},
}

// Dev writes one line per snapshot to a terminal.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette
	opts    Opts

	buf bytes.Buffer
}

// New returns a Dev that writes to w.
func New(w io.Writer, opts *Opts) *Dev {
	if opts == nil {
		opts = &DefaultOpts
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	return &Dev{w: w, palette: *p, opts: *opts}
}

// NewStdout returns a Dev that writes to the console.
func NewStdout(opts *Opts) *Dev {
	return New(colorable.NewColorableStdout(), opts)
}

func (d *Dev) String() string {
	return "PinScreen"
}

// Halt resets the terminal attributes and ends the line.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// Show overwrites the current terminal line with P00 to P17, left to right,
// followed by the hexadecimal value. Lines not in mask are drawn as unused.
func (d *Dev) Show(levels, mask uint16) error {
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	for i := 0; i < Pins; i++ {
		if i == 8 {
			_, _ = d.buf.WriteString("\033[0m ")
		}
		_, _ = io.WriteString(&d.buf, d.palette.Block(d.opts.colorOf(levels, mask, i)))
	}
	_, _ = fmt.Fprintf(&d.buf, "\033[0m 0x%04x ", levels&mask)
	_, err := d.buf.WriteTo(d.w)
	return err
}

func (o *Opts) colorOf(levels, mask uint16, i int) color.NRGBA {
	switch {
	case mask&(1<<i) == 0:
		return o.Unused
	case levels&(1<<i) != 0:
		return o.High
	default:
		return o.Low
	}
}

// Geometry of Snapshot.
const (
	cell   = 40
	radius = 14
	width  = 8 * cell
	height = 2 * (cell + 16)
)

// Snapshot draws port 0 on the top row and port 1 on the bottom row, one
// labelled disc per line.
func Snapshot(levels, mask uint16, opts *Opts) (image.Image, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	face, err := labelFace()
	if err != nil {
		return nil, err
	}
	dc := gg.NewContext(width, height)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.SetFontFace(face)
	for i := 0; i < Pins; i++ {
		x, y := Center(i)
		dc.DrawCircle(x, y, radius)
		dc.SetColor(opts.colorOf(levels, mask, i))
		dc.Fill()
		dc.SetRGB(1, 1, 1)
		dc.DrawStringAnchored(fmt.Sprintf("P%d%d", i/8, i%8), x, y+radius+8, 0.5, 0.5)
	}
	return dc.Image(), nil
}

// Center returns the center of the disc of line i in a Snapshot.
func Center(i int) (float64, float64) {
	row, col := i/8, i%8
	return float64(col*cell + cell/2), float64(row*(cell+16) + cell/2)
}

// WritePNG encodes a Snapshot as PNG to w.
func WritePNG(w io.Writer, levels, mask uint16, opts *Opts) error {
	img, err := Snapshot(levels, mask, opts)
	if err != nil {
		return err
	}
	dc := gg.NewContextForImage(img)
	return dc.EncodePNG(w)
}

var (
	labelOnce sync.Once
	label     font.Face
	labelErr  error
)

func labelFace() (font.Face, error) {
	labelOnce.Do(func() {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			labelErr = fmt.Errorf("pinscreen: %w", err)
			return
		}
		label = truetype.NewFace(f, &truetype.Options{Size: 9})
	})
	return label, labelErr
}

var _ fmt.Stringer = &Dev{}
