// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package touchdraw draws touch feedback on a display sharing its bus with
// the touch panel.
//
// Each stroke is drawn as a green dot where the contact started, white lines
// joining the sampled points and a red dot where it ended. The coordinates of
// the last touch are printed in the top-left corner.
package touchdraw

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"periph.io/x/conn/v3/display"

	"github.com/GermanBionicSystems/tftlcd/lcdtouch"
)

// Switcher hands the shared lines to the display and back.
type Switcher interface {
	SetMode(m lcdtouch.Mode) error
}

// Source is the touch panel polled by Poll. *lcdtouch.Touch implements it.
type Source interface {
	Switcher
	Read() (lcdtouch.Point, lcdtouch.Status, error)
	Strokes() uint32
}

// Opts defines the look of the feedback.
type Opts struct {
	// Face is used for the info text. When nil, Go Regular at FontSize is
	// used.
	Face     font.Face
	FontSize float64
	// DotRadius is the radius of the start and end dots in pixels.
	DotRadius float64
	// LineWidth is the width of the stroke lines in pixels.
	LineWidth  float64
	Background color.Color
	Stroke     color.Color
	DownDot    color.Color
	UpDot      color.Color
	Text       color.Color
}

// DefaultOpts draws white strokes on black.
var DefaultOpts = Opts{
	FontSize:   12,
	DotRadius:  3,
	LineWidth:  1,
	Background: color.Black,
	Stroke:     color.White,
	DownDot:    color.RGBA{G: 0xff, A: 0xff},
	UpDot:      color.RGBA{R: 0xff, A: 0xff},
	Text:       color.White,
}

// Canvas keeps a copy of the screen content and flushes the regions it
// changes to the display.
type Canvas struct {
	dst   display.Drawer
	sw    Switcher
	opts  Opts
	dc    *gg.Context
	rect  image.Rectangle
	infoH int

	last    lcdtouch.Point
	hasLast bool
	strokes uint32
}

// New returns a Canvas drawing on dst. sw is switched to ModeDraw around
// every transfer to dst.
func New(dst display.Drawer, sw Switcher, opts *Opts) (*Canvas, error) {
	if dst == nil || sw == nil {
		return nil, errors.New("touchdraw: display and switcher are required")
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	rect := dst.Bounds()
	if rect.Empty() {
		return nil, fmt.Errorf("touchdraw: %s has no pixels", dst)
	}
	c := &Canvas{
		dst:  dst,
		sw:   sw,
		opts: *opts,
		dc:   gg.NewContext(rect.Dx(), rect.Dy()),
		rect: rect,
	}
	if c.opts.Face == nil {
		c.opts.Face = loadFace(c.opts.FontSize)
	}
	c.dc.SetFontFace(c.opts.Face)
	m := c.opts.Face.Metrics()
	c.infoH = (m.Height.Ceil() + 2) * 2
	return c, nil
}

// loadFace returns Go Regular, or the basic 7x13 face if it can't be parsed.
func loadFace(size float64) font.Face {
	if size <= 0 {
		size = DefaultOpts.FontSize
	}
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(f, &truetype.Options{Size: size})
}

// Image returns the canvas content.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// Clear fills the screen with the background color and forgets the last
// point.
func (c *Canvas) Clear() error {
	c.dc.SetColor(c.opts.Background)
	c.dc.Clear()
	c.hasLast = false
	return c.flush(image.Rectangle{Max: c.rect.Size()})
}

// Connect draws p as the continuation of the current stroke.
//
// A line is drawn from the previous point if it was still in contact. A
// point tagged Down starts a new stroke and gets a dot.
func (c *Canvas) Connect(p lcdtouch.Point) error {
	var dirty image.Rectangle
	if c.hasLast && (c.last.State == lcdtouch.Down || c.last.State == lcdtouch.Move) {
		c.dc.SetColor(c.opts.Stroke)
		c.dc.SetLineWidth(c.opts.LineWidth)
		c.dc.DrawLine(float64(c.last.X), float64(c.last.Y), float64(p.X), float64(p.Y))
		c.dc.Stroke()
		dirty = c.around(c.last).Union(c.around(p))
		if c.last.State == lcdtouch.Down {
			// Keep the start dot above the line.
			c.dot(c.last, c.opts.DownDot)
		}
	}
	if p.State == lcdtouch.Down {
		dirty = dirty.Union(c.dot(p, c.opts.DownDot))
	}
	c.last = p
	c.hasLast = true
	return c.flush(dirty)
}

// EndStroke marks the last point as released: it gets a red dot and its
// coordinates are printed.
func (c *Canvas) EndStroke() error {
	if !c.hasLast || c.last.State == lcdtouch.Up {
		return nil
	}
	c.last.State = lcdtouch.Up
	if err := c.flush(c.dot(c.last, c.opts.UpDot)); err != nil {
		return err
	}
	return c.PrintInfo()
}

// PrintInfo prints the coordinates and state of the last point in the
// top-left corner.
func (c *Canvas) PrintInfo() error {
	w := c.rect.Dx()
	c.dc.SetColor(c.opts.Background)
	c.dc.DrawRectangle(0, 0, float64(w), float64(c.infoH))
	c.dc.Fill()
	c.dc.SetColor(c.opts.Text)
	lh := float64(c.infoH) / 2
	c.dc.DrawString(fmt.Sprintf("Last touch: x=%3d y=%3d", c.last.X, c.last.Y), 2, lh-2)
	c.dc.DrawString(c.last.State.String(), 2, 2*lh-2)
	return c.flush(image.Rect(0, 0, w, c.infoH))
}

// Poll runs one iteration of a foreground loop: a stroke ended since the
// last call is closed, then the panel is read and the point connected.
func (c *Canvas) Poll(s Source) error {
	if n := s.Strokes(); n != c.strokes {
		c.strokes = n
		if err := c.EndStroke(); err != nil {
			return err
		}
	}
	p, st, err := s.Read()
	if err != nil {
		return err
	}
	if st != lcdtouch.ReadSuccess {
		return nil
	}
	return c.Connect(p)
}

func (c *Canvas) dot(p lcdtouch.Point, col color.Color) image.Rectangle {
	c.dc.SetColor(col)
	c.dc.DrawCircle(float64(p.X), float64(p.Y), c.opts.DotRadius)
	c.dc.Fill()
	return c.around(p)
}

// around returns the region that drawing at p may have touched.
func (c *Canvas) around(p lcdtouch.Point) image.Rectangle {
	r := int(math.Ceil(math.Max(c.opts.DotRadius, c.opts.LineWidth))) + 1
	return image.Rect(int(p.X)-r, int(p.Y)-r, int(p.X)+r+1, int(p.Y)+r+1)
}

// flush copies r from the canvas to the display, r being in canvas
// coordinates.
func (c *Canvas) flush(r image.Rectangle) error {
	r = r.Intersect(image.Rectangle{Max: c.rect.Size()})
	if r.Empty() {
		return nil
	}
	if err := c.sw.SetMode(lcdtouch.ModeDraw); err != nil {
		return err
	}
	err := c.dst.Draw(r.Add(c.rect.Min), c.dc.Image(), r.Min)
	if err2 := c.sw.SetMode(lcdtouch.ModeTouch); err == nil {
		err = err2
	}
	return err
}

func (c *Canvas) String() string {
	return fmt.Sprintf("touchdraw{%s}", c.dst)
}
