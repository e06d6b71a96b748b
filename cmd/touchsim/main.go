// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// touchsim runs the touch feedback loop on a simulated resistive panel.
//
// The mouse is the finger: hold the left button and drag to draw. Press C to
// clear the screen. With -headless, a scripted stroke is drawn in the
// terminal instead.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"periph.io/x/conn/v3/display"

	"github.com/GermanBionicSystems/tftlcd/ili93xx"
	"github.com/GermanBionicSystems/tftlcd/lcdtouch"
	"github.com/GermanBionicSystems/tftlcd/lcdtouch/lcdtouchtest"
	"github.com/GermanBionicSystems/tftlcd/lcdtouch/touchdraw"
	"github.com/GermanBionicSystems/tftlcd/panelview"
	"github.com/GermanBionicSystems/tftlcd/termscreen"
)

// frame is an in-memory panel showing colors the way an RGB565 controller
// does.
type frame struct {
	img *image.RGBA
}

func newFrame(w, h int) *frame {
	return &frame{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (f *frame) String() string {
	return fmt.Sprintf("frame{%dx%d}", f.img.Rect.Dx(), f.img.Rect.Dy())
}

func (f *frame) Halt() error {
	return nil
}

func (f *frame) ColorModel() color.Model {
	return ili93xx.RGB565Model
}

func (f *frame) Bounds() image.Rectangle {
	return f.img.Rect
}

func (f *frame) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	dst := r.Intersect(f.img.Rect)
	sp = sp.Add(dst.Min.Sub(r.Min))
	for y := 0; y < dst.Dy(); y++ {
		for x := 0; x < dst.Dx(); x++ {
			f.img.Set(dst.Min.X+x, dst.Min.Y+y, ili93xx.RGB565Model.Convert(src.At(sp.X+x, sp.Y+y)))
		}
	}
	return nil
}

// sim wires the simulated panel to the touch driver.
type sim struct {
	panel *lcdtouchtest.Resistive
	touch *lcdtouch.Touch
	w, h  int
}

func newSim() (*sim, error) {
	opts := lcdtouch.DefaultOpts
	panel := lcdtouchtest.NewResistive(opts.Calibration)
	t, err := lcdtouch.New(panel, panel.ADCX(), panel.ADCY(), &opts)
	if err != nil {
		return nil, err
	}
	panel.Watch(t)
	if err := t.SetMode(lcdtouch.ModeTouch); err != nil {
		return nil, err
	}
	return &sim{panel: panel, touch: t, w: opts.Calibration.Width, h: opts.Calibration.Height}, nil
}

// game is the ebiten window.
type game struct {
	s      *sim
	fb     *frame
	canvas *touchdraw.Canvas
	img    *ebiten.Image
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if err := g.canvas.Clear(); err != nil {
			return err
		}
	}
	x, y := ebiten.CursorPosition()
	in := image.Pt(x, y).In(g.fb.Bounds())
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && in {
		g.s.panel.Press(x, y)
	} else {
		g.s.panel.Release()
	}
	return g.canvas.Poll(g.s.touch)
}

func (g *game) Draw(screen *ebiten.Image) {
	g.img.WritePixels(g.fb.img.Pix)
	screen.DrawImage(g.img, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.s.w, g.s.h
}

// serve mirrors d over HTTP on addr. An empty addr returns d unchanged.
func serve(addr string, d display.Drawer) (display.Drawer, error) {
	if addr == "" {
		return d, nil
	}
	m, err := panelview.New(d, nil)
	if err != nil {
		return nil, err
	}
	go func() {
		log.Printf("http: %v", http.ListenAndServe(addr, m))
	}()
	return m, nil
}

func runWindow(s *sim, zoom int, addr string) error {
	fb := newFrame(s.w, s.h)
	dst, err := serve(addr, fb)
	if err != nil {
		return err
	}
	c, err := touchdraw.New(dst, s.touch, nil)
	if err != nil {
		return err
	}
	if err := c.Clear(); err != nil {
		return err
	}
	g := &game{s: s, fb: fb, canvas: c, img: ebiten.NewImage(s.w, s.h)}
	ebiten.SetWindowTitle("touchsim")
	ebiten.SetWindowSize(s.w*zoom, s.h*zoom)
	ebiten.SetTPS(50)
	return ebiten.RunGame(g)
}

// script returns the points of a diagonal stroke across the panel.
func script(w, h, n int) []image.Point {
	pts := make([]image.Point, n)
	for i := range pts {
		pts[i] = image.Pt(w/6+i*(4*w/6)/(n-1), h/4+i*(h/2)/(n-1))
	}
	return pts
}

// runScript draws one stroke on dst through the simulated panel.
func runScript(ctx context.Context, s *sim, dst display.Drawer, step time.Duration) error {
	c, err := touchdraw.New(dst, s.touch, nil)
	if err != nil {
		return err
	}
	if err := c.Clear(); err != nil {
		return err
	}
	for _, p := range script(s.w, s.h, 12) {
		s.panel.Press(p.X, p.Y)
		if err := c.Poll(s.touch); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(step):
		}
	}
	s.panel.Release()
	return c.Poll(s.touch)
}

func mainImpl() error {
	headless := flag.Bool("headless", false, "draw a scripted stroke in the terminal instead of opening a window")
	zoom := flag.Int("zoom", 2, "window zoom factor")
	cell := flag.Int("cell", 8, "pixels per terminal character with -headless")
	step := flag.Duration("step", 50*time.Millisecond, "delay between scripted samples")
	httpAddr := flag.String("http", "", "also serve a live view of the panel on this address, e.g. :8080")
	flag.Parse()
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}

	s, err := newSim()
	if err != nil {
		return err
	}
	defer s.touch.Halt()
	if !*headless {
		return runWindow(s, *zoom, *httpAddr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	term, err := termscreen.New(&termscreen.Opts{Width: s.w, Height: s.h, Scale: *cell})
	if err != nil {
		return err
	}
	dst, err := serve(*httpAddr, term)
	if err != nil {
		return err
	}
	defer dst.Halt()
	if err := runScript(ctx, s, dst, *step); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		log.Fatalf("touchsim: %v", err)
	}
}
