// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdtouch

import (
	"tinygo.org/x/drivers/touch"
)

// ReadTouchPoint implements touch.Pointer from the TinyGo drivers.
//
// X and Y are screen pixels and Z is 1 while the panel is touched, 0
// otherwise. Errors read as no touch.
func (t *Touch) ReadTouchPoint() touch.Point {
	p, s, err := t.Read()
	if err != nil || s != ReadSuccess {
		return touch.Point{}
	}
	return touch.Point{X: int(p.X), Y: int(p.Y), Z: 1}
}

var _ touch.Pointer = &Touch{}
