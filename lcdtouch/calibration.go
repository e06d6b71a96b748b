// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdtouch

import (
	"errors"
	"math"
)

// Calibration holds the ADC window of the panel and the screen size it maps
// to.
//
// Readings at XMin/YMin map to the right/bottom edge of the screen and
// readings at XMax/YMax map to the top left corner, the panel's layers are
// wired mirrored relative to the display's pixel origin.
type Calibration struct {
	XMin, XMax uint32
	YMin, YMax uint32
	// NoTouchX is the X reading above which the divider is considered open,
	// i.e. nothing touches the panel.
	NoTouchX uint32
	// Width and Height of the screen in pixels.
	Width, Height int
}

// DefaultCalibration matches a 2.4" 240x320 shield read by a 12 bit ADC.
var DefaultCalibration = Calibration{
	XMin:     500,
	XMax:     3600,
	YMin:     300,
	YMax:     3780,
	NoTouchX: 4095 - 100,
	Width:    240,
	Height:   320,
}

func (c *Calibration) validate() error {
	if c.XMax <= c.XMin {
		return errors.New("lcdtouch: XMax must be greater than XMin")
	}
	if c.YMax <= c.YMin {
		return errors.New("lcdtouch: YMax must be greater than YMin")
	}
	if c.Width <= 0 || c.Height <= 0 || c.Width > math.MaxInt16 || c.Height > math.MaxInt16 {
		return errors.New("lcdtouch: invalid screen size")
	}
	return nil
}

// Map converts a raw ADC pair to pixel coordinates.
//
// The result is always within [0, Width]x[0, Height].
func (c *Calibration) Map(rawX, rawY uint32) (x, y int16) {
	nx := norm(rawX, c.XMin, c.XMax)
	ny := norm(rawY, c.YMin, c.YMax)
	x = int16(math.Round((1 - nx) * float64(c.Width)))
	y = int16(math.Round((1 - ny) * float64(c.Height)))
	return x, y
}

// norm returns (v-lo)/(hi-lo) clamped to [0, 1].
func norm(v, lo, hi uint32) float64 {
	if hi <= lo {
		return 0
	}
	f := (float64(v) - float64(lo)) / (float64(hi) - float64(lo))
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
