// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"image"
	"image/color"
	"testing"
	"time"
)

func TestFrameDraw(t *testing.T) {
	f := newFrame(4, 4)
	src := image.NewUniform(color.RGBA{R: 0x13, G: 0x47, B: 0x9a, A: 0xff})
	if err := f.Draw(image.Rect(2, 2, 6, 6), src, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if c := f.img.RGBAAt(3, 3); c != (color.RGBA{R: 0x10, G: 0x45, B: 0x9c, A: 0xff}) {
		t.Fatalf("RGBAAt(3, 3) = %v", c)
	}
	if c := f.img.RGBAAt(1, 1); c != (color.RGBA{}) {
		t.Fatalf("RGBAAt(1, 1) = %v", c)
	}
}

func TestScript(t *testing.T) {
	pts := script(240, 320, 12)
	if pts[0] != image.Pt(40, 80) || pts[11] != image.Pt(200, 240) {
		t.Fatalf("stroke from %v to %v", pts[0], pts[11])
	}
}

func TestRunScript(t *testing.T) {
	s, err := newSim()
	if err != nil {
		t.Fatal(err)
	}
	defer s.touch.Halt()
	f := newFrame(s.w, s.h)
	if err := runScript(context.Background(), s, f, 0); err != nil {
		t.Fatal(err)
	}
	if s.panel.Pressed() {
		t.Fatal("panel still pressed")
	}
	if s.touch.Strokes() != 1 {
		t.Fatalf("Strokes() = %d", s.touch.Strokes())
	}
	green := color.RGBA{G: 0xff, A: 0xff}
	red := color.RGBA{R: 0xff, A: 0xff}
	if c := f.img.RGBAAt(40, 80); c != green {
		t.Fatalf("start = %v", c)
	}
	if c := f.img.RGBAAt(200, 240); c != red {
		t.Fatalf("end = %v", c)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := runScript(ctx, s, f, time.Hour); err != context.Canceled {
		t.Fatalf("runScript() = %v", err)
	}
}

func TestServeDisabled(t *testing.T) {
	f := newFrame(2, 2)
	d, err := serve("", f)
	if err != nil {
		t.Fatal(err)
	}
	if d != f {
		t.Fatal("expected the drawer itself")
	}
}
