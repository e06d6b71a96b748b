// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ili93xx drives ILI9341, ILI9325/ILI9328, HX8347D/G and SSD1297 TFT
// controllers over an 8080 style 8 bit parallel bus.
//
// The bus is bit-banged on GPIO lines: 8 data lines plus CS, CD, WR and the
// optional RD and RST. On Arduino-shield modules some of those lines are
// shared with a resistive touch panel, see package lcdtouch for the mode
// switching needed before each transfer.
//
// Pixels are sent as RGB565, high byte first, except on the SSD1297 which
// takes three bytes per pixel.
//
// # Datasheet
//
// https://cdn-shop.adafruit.com/datasheets/ILI9341.pdf
//
// https://cdn-shop.adafruit.com/datasheets/ILI9325.pdf
package ili93xx
