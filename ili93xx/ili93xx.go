// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ili93xx

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"tinygo.org/x/drivers"
)

// Variant is the controller model.
type Variant int

const (
	// ILI9341 also covers the ILI9340.
	ILI9341 Variant = iota
	// ILI9341Inv is an ILI9341 glass mounted upside down with inverted
	// colors, found on some cheap shields.
	ILI9341Inv
	ILI9325
	ILI9328
	HX8347D
	HX8347G
	// SSD1297 is driven in its 18 bit mode, each pixel takes three bytes.
	SSD1297
)

func (v Variant) String() string {
	switch v {
	case ILI9341:
		return "ILI9341"
	case ILI9341Inv:
		return "ILI9341Inv"
	case ILI9325:
		return "ILI9325"
	case ILI9328:
		return "ILI9328"
	case HX8347D:
		return "HX8347D"
	case HX8347G:
		return "HX8347G"
	case SSD1297:
		return "SSD1297"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// pixelSize is the number of bytes sent per pixel.
func (v Variant) pixelSize() int {
	if v == SSD1297 {
		return 3
	}
	return 2
}

// encode writes c to px in the pixel format of v.
func (v Variant) encode(px []byte, c color.Color) {
	if v == SSD1297 {
		m := RGB565Model.Convert(c).(color.RGBA)
		px[0], px[1], px[2] = m.R, m.G, m.B
		return
	}
	p := Color565(c)
	px[0], px[1] = byte(p>>8), byte(p)
}

// Rotation of the picture, clockwise.
type Rotation int

const (
	Rotation0 Rotation = iota
	Rotation90
	Rotation180
	Rotation270
)

// Opts defines the panel.
type Opts struct {
	Variant Variant
	// Width and Height are the native size of the panel, in portrait.
	Width, Height int
	Rotation      Rotation
}

// DefaultOpts is a 2.4" 240x320 ILI9341 shield.
var DefaultOpts = Opts{
	Variant: ILI9341,
	Width:   240,
	Height:  320,
}

var errHalted = errors.New("ili93xx: device is halted")

// Dev is an open handle to the display controller.
type Dev struct {
	ctrl   controller
	opts   Opts
	rot    Rotation
	rect   image.Rectangle
	row    []byte
	name   string
	halted bool
}

// New opens a handle to a display on an 8080 8 bit parallel bus, resets it
// and runs the init sequence of opts.Variant.
//
// Only CS, CD and WR are required in pins.
func New(data DataBus, pins *ControlPins, opts *Opts) (*Dev, error) {
	if data == nil {
		return nil, errors.New("ili93xx: data bus is required")
	}
	if pins == nil || pins.CS == nil || pins.CD == nil || pins.WR == nil {
		return nil, errors.New("ili93xx: CS, CD and WR are required")
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	b := &bus{lines: data, pins: *pins}
	if err := b.reset(); err != nil {
		return nil, err
	}
	b.sleep(50 * time.Millisecond)
	d, err := newDev(b, opts)
	if err != nil {
		return nil, err
	}
	d.name = fmt.Sprint(data)
	return d, nil
}

func newDev(ctrl controller, opts *Opts) (*Dev, error) {
	if opts.Width <= 0 || opts.Height <= 0 || opts.Width > 0xffff || opts.Height > 0xffff {
		return nil, fmt.Errorf("ili93xx: invalid size %dx%d", opts.Width, opts.Height)
	}
	if opts.Variant < ILI9341 || opts.Variant > SSD1297 {
		return nil, fmt.Errorf("ili93xx: unknown variant %s", opts.Variant)
	}
	d := &Dev{ctrl: ctrl, opts: *opts}
	ctrl.begin()
	initVariant(ctrl, opts.Variant)
	d.rotate(opts.Rotation)
	if err := ctrl.end(); err != nil {
		return nil, fmt.Errorf("ili93xx: init: %w", err)
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("ili93xx{%s, %dx%d, %s}", d.opts.Variant, d.rect.Dx(), d.rect.Dy(), d.name)
}

// ColorModel implements display.Drawer.
//
// Colors are rounded down to RGB565, including on the SSD1297.
func (d *Dev) ColorModel() color.Model {
	return RGB565Model
}

// Bounds implements display.Drawer. It reflects the current rotation.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Rotation returns the current rotation.
func (d *Dev) Rotation() Rotation {
	return d.rot
}

// SetRotation rotates the picture. Content already on the panel is not
// redrawn.
func (d *Dev) SetRotation(r Rotation) error {
	if d.halted {
		return errHalted
	}
	d.ctrl.begin()
	d.rotate(r)
	return d.ctrl.end()
}

func (d *Dev) rotate(r Rotation) {
	d.rot = r & 3
	w, h := d.opts.Width, d.opts.Height
	if d.rot&1 != 0 {
		w, h = h, w
	}
	d.rect = image.Rect(0, 0, w, h)
	setRotation(d.ctrl, d.opts.Variant, d.rot)
	setAddrWindow(d.ctrl, d.opts.Variant, d.rot, d.opts.Width, d.opts.Height, 0, 0, w-1, h-1)
}

// Draw implements display.Drawer.
//
// Only the intersection of r with the screen is sent.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errHalted
	}
	dst := r.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}
	sp = sp.Add(dst.Min.Sub(r.Min))
	ps := d.opts.Variant.pixelSize()
	n := ps * dst.Dx()
	if cap(d.row) < n {
		d.row = make([]byte, n)
	}
	row := d.row[:n]
	d.ctrl.begin()
	setAddrWindow(d.ctrl, d.opts.Variant, d.rot, d.opts.Width, d.opts.Height, dst.Min.X, dst.Min.Y, dst.Max.X-1, dst.Max.Y-1)
	startWrite(d.ctrl, d.opts.Variant)
	for y := 0; y < dst.Dy(); y++ {
		for x := 0; x < dst.Dx(); x++ {
			d.opts.Variant.encode(row[ps*x:], src.At(sp.X+x, sp.Y+y))
		}
		d.ctrl.data(row...)
	}
	return d.ctrl.end()
}

// FillRect fills r with c.
func (d *Dev) FillRect(r image.Rectangle, c color.Color) error {
	if d.halted {
		return errHalted
	}
	r = r.Intersect(d.rect)
	if r.Empty() {
		return nil
	}
	px := make([]byte, d.opts.Variant.pixelSize())
	d.opts.Variant.encode(px, c)
	d.ctrl.begin()
	setAddrWindow(d.ctrl, d.opts.Variant, d.rot, d.opts.Width, d.opts.Height, r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1)
	startWrite(d.ctrl, d.opts.Variant)
	d.ctrl.fill(px, r.Dx()*r.Dy())
	return d.ctrl.end()
}

// FillScreen fills the whole screen with c.
func (d *Dev) FillScreen(c color.Color) error {
	return d.FillRect(d.rect, c)
}

// Size implements drivers.Displayer.
func (d *Dev) Size() (x, y int16) {
	return int16(d.rect.Dx()), int16(d.rect.Dy())
}

// SetPixel implements drivers.Displayer. The pixel is written immediately.
func (d *Dev) SetPixel(x, y int16, c color.RGBA) {
	_ = d.FillRect(image.Rect(int(x), int(y), int(x)+1, int(y)+1), c)
}

// Display implements drivers.Displayer. Writes are not buffered so there is
// nothing to do.
func (d *Dev) Display() error {
	return nil
}

// Power turns the panel output on or off. The memory content is kept.
func (d *Dev) Power(on bool) error {
	if d.halted {
		return errHalted
	}
	d.ctrl.begin()
	setDisplay(d.ctrl, d.opts.Variant, on)
	return d.ctrl.end()
}

// Halt implements conn.Resource.
//
// It turns the display off. It can't be used afterwards.
func (d *Dev) Halt() error {
	if d.halted {
		return nil
	}
	d.ctrl.begin()
	setDisplay(d.ctrl, d.opts.Variant, false)
	err := d.ctrl.end()
	d.halted = true
	return err
}

// Color565 converts c to the RGB565 format of the panel.
func Color565(c color.Color) uint16 {
	r, g, b, _ := c.RGBA()
	return uint16(r>>11)<<11 | uint16(g>>10)<<5 | uint16(b>>11)
}

// RGB565Model rounds colors to what the panel can show.
var RGB565Model = color.ModelFunc(func(c color.Color) color.Color {
	v := Color565(c)
	r := byte(v>>11) << 3
	g := byte(v>>5) << 2
	b := byte(v) << 3
	return color.RGBA{R: r | r>>5, G: g | g>>6, B: b | b>>5, A: 0xff}
})

var _ display.Drawer = &Dev{}
var _ drivers.Displayer = &Dev{}
var _ conn.Resource = &Dev{}
