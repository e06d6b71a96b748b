// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcdtouch reads a 4-wire resistive touch panel whose lines are
// shared with the 8-bit parallel bus of a TFT LCD.
//
// The four panel lines (X+, X-, Y+, Y-) double as bus lines of the display,
// so the panel can't be read while the display is being drawn on. Call
// SetMode(ModeDraw) before talking to the display and SetMode(ModeTouch)
// afterwards.
//
// In touch mode Y+ is an input with a pull-up and both-edge detection while
// X+ and X- are driven low. Pressing the panel pulls Y+ low (OnDown),
// releasing it lets Y+ rise again (OnUp). A foreground loop calls Read, which
// measures the panel as two voltage dividers, X first, then Y, and maps the
// readings to pixel coordinates.
//
// # Wiring
//
// On the common Arduino-shield TFT modules the panel lines are:
//
//	X- = WR
//	X+ = D7
//	Y- = D6
//	Y+ = CD (RS)
//
// Y+ and X- must also be routed to ADC capable inputs.
package lcdtouch
