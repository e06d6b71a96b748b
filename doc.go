// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tftlcd is a container for the drivers of TFT LCD shields with a
// resistive touch panel.
//
// ili93xx drives the display controller over its 8 bit parallel bus,
// lcdtouch reads the touch panel sharing those lines and touchdraw connects
// both to give visual feedback of what is traced. adc0832 is a serial ADC
// for the panel voltages when the host has no analog inputs.
//
// termscreen previews a display in the terminal and panelview streams it
// over HTTP.
package tftlcd
