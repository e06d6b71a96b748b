// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package termscreen implements a 2D display.Drawer that outputs to the
// terminal using ANSI 256 colors.
//
// Each character cell shows the average of a Scale x Scale block of pixels,
// so a 240x320 panel fits in a regular terminal with Scale set to 8.
package termscreen

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
)

// Opts represents the options available for this display.
type Opts struct {
	// Width and Height are in pixels.
	Width, Height int
	// Scale is the number of pixels per character cell on each axis. 0 means
	// 1.
	Scale   int
	Palette *ansi256.Palette
}

// DefaultOpts is a 240x320 panel, one character cell per 8x8 pixels.
var DefaultOpts = Opts{Width: 240, Height: 320, Scale: 8}

// Dev is a terminal preview of a pixel display.
type Dev struct {
	w       io.Writer
	scale   int
	palette ansi256.Palette

	img   *image.NRGBA
	buf   bytes.Buffer
	lines int
}

// New returns a Dev that displays at the console.
func New(opts *Opts) (*Dev, error) {
	return NewWriter(colorable.NewColorableStdout(), opts)
}

// NewWriter returns a Dev that writes its frames to w. nil opts means
// DefaultOpts.
func NewWriter(w io.Writer, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, errors.New("termscreen: invalid size")
	}
	s := opts.Scale
	if s <= 0 {
		s = 1
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	return &Dev{
		w:       w,
		scale:   s,
		palette: *p,
		img:     image.NewNRGBA(image.Rect(0, 0, opts.Width, opts.Height)),
	}, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("TermScreen{%dx%d/%d}", d.img.Rect.Dx(), d.img.Rect.Dy(), d.scale)
}

// Halt implements conn.Resource.
//
// It resets the terminal colors.
func (d *Dev) Halt() error {
	_, err := io.WriteString(d.w, "\033[0m\n")
	return err
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.img.Rect
}

// Image returns the current content. It must not be modified.
func (d *Dev) Image() *image.NRGBA {
	return d.img
}

// Draw implements display.Drawer.
//
// The whole screen is printed again, overwriting the previous frame.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	draw.Draw(d.img, r, src, sp, draw.Src)
	return d.refresh()
}

func (d *Dev) refresh() error {
	d.buf.Reset()
	if d.lines != 0 {
		fmt.Fprintf(&d.buf, "\033[%dA", d.lines)
	}
	b := d.img.Rect
	d.lines = 0
	for y := b.Min.Y; y < b.Max.Y; y += d.scale {
		_, _ = d.buf.WriteString("\r\033[0m")
		for x := b.Min.X; x < b.Max.X; x += d.scale {
			_, _ = io.WriteString(&d.buf, d.palette.Block(d.cell(x, y)))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
		d.lines++
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

// cell averages the block starting at x, y.
func (d *Dev) cell(x, y int) color.NRGBA {
	r := image.Rect(x, y, x+d.scale, y+d.scale).Intersect(d.img.Rect)
	var sr, sg, sb, n int
	for j := r.Min.Y; j < r.Max.Y; j++ {
		for i := r.Min.X; i < r.Max.X; i++ {
			c := d.img.NRGBAAt(i, j)
			sr += int(c.R)
			sg += int(c.G)
			sb += int(c.B)
			n++
		}
	}
	return color.NRGBA{byte(sr / n), byte(sg / n), byte(sb / n), 255}
}

var _ display.Drawer = &Dev{}
var _ conn.Resource = &Dev{}
