// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdtouchtest

import (
	"math"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/GermanBionicSystems/tftlcd/lcdtouch"
)

// openCircuit is what a 12 bit ADC reads on an open divider.
const openCircuit = 4095

// Resistive simulates a resistive panel and the edge interrupt of its sense
// line.
//
// The sense line only produces edges in RoleSense. Changing roles while the
// panel is pressed makes the line swing, which latches a pending edge when
// the IRQ is masked, like the real hardware does.
type Resistive struct {
	mu      sync.Mutex
	cal     lcdtouch.Calibration
	role    lcdtouch.Role
	pressed bool
	x, y    int
	enabled bool
	pending bool
	handler lcdtouch.EdgeHandler
}

// NewResistive returns a released panel answering ADC reads with cal.
func NewResistive(cal lcdtouch.Calibration) *Resistive {
	return &Resistive{cal: cal, role: lcdtouch.RoleDraw}
}

// Watch sets the handler receiving the edges.
func (r *Resistive) Watch(h lcdtouch.EdgeHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handler = h
}

// Press puts a finger on the panel at screen pixel (x, y), or moves it there
// if the panel is already pressed.
func (r *Resistive) Press(x, y int) {
	r.mu.Lock()
	r.x, r.y = x, y
	if r.pressed {
		r.mu.Unlock()
		return
	}
	r.pressed = true
	h := r.edgeLocked()
	r.mu.Unlock()
	if h != nil {
		h.OnDown()
	}
}

// Release lifts the finger.
func (r *Resistive) Release() {
	r.mu.Lock()
	if !r.pressed {
		r.mu.Unlock()
		return
	}
	r.pressed = false
	h := r.edgeLocked()
	r.mu.Unlock()
	if h != nil {
		h.OnUp()
	}
}

// Pressed reports whether a finger is on the panel.
func (r *Resistive) Pressed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pressed
}

// Role returns the current role of the lines.
func (r *Resistive) Role() lcdtouch.Role {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.role
}

// SetRole implements lcdtouch.Panel.
func (r *Resistive) SetRole(role lcdtouch.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	before := r.lineLocked()
	r.role = role
	if role == lcdtouch.RoleSense && r.lineLocked() != before {
		// The swing can't be delivered synchronously from here; it behaves
		// as if it happened while masked.
		r.pending = true
	}
	return nil
}

// EnableIRQ implements lcdtouch.Panel.
func (r *Resistive) EnableIRQ() {
	r.mu.Lock()
	r.enabled = true
	fire := r.pending
	r.pending = false
	h := r.handler
	pressed := r.pressed
	r.mu.Unlock()
	if fire && h != nil {
		if pressed {
			h.OnDown()
		} else {
			h.OnUp()
		}
	}
}

// DisableIRQ implements lcdtouch.Panel.
func (r *Resistive) DisableIRQ() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = false
}

// ClearPendingIRQ implements lcdtouch.Panel.
func (r *Resistive) ClearPendingIRQ() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = false
}

// Sense implements lcdtouch.Panel.
func (r *Resistive) Sense() gpio.Level {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lineLocked()
}

// ADCX returns the channel connected to Y+, valid during RoleMeasureX.
func (r *Resistive) ADCX() lcdtouch.AnalogSampler {
	return channel{r: r, role: lcdtouch.RoleMeasureX}
}

// ADCY returns the channel connected to X-, valid during RoleMeasureY.
func (r *Resistive) ADCY() lcdtouch.AnalogSampler {
	return channel{r: r, role: lcdtouch.RoleMeasureY}
}

// edgeLocked returns the handler to call for a line change, or nil if the
// edge is masked or the line isn't an edge input.
func (r *Resistive) edgeLocked() lcdtouch.EdgeHandler {
	if r.role != lcdtouch.RoleSense {
		return nil
	}
	if !r.enabled {
		r.pending = true
		return nil
	}
	return r.handler
}

// lineLocked returns the level of Y+.
func (r *Resistive) lineLocked() gpio.Level {
	switch r.role {
	case lcdtouch.RoleSense, lcdtouch.RoleMeasureX:
		return gpio.Level(!r.pressed)
	default:
		return gpio.High
	}
}

// raw is the inverse of Calibration.Map on one axis.
func raw(px, size int, lo, hi uint32) uint32 {
	f := 1 - float64(px)/float64(size)
	return uint32(math.Round(float64(lo) + f*(float64(hi)-float64(lo))))
}

type channel struct {
	r    *Resistive
	role lcdtouch.Role
}

func (c channel) Sample(timeout time.Duration) (uint32, error) {
	c.r.mu.Lock()
	defer c.r.mu.Unlock()
	if !c.r.pressed || c.r.role != c.role {
		return openCircuit, nil
	}
	cal := &c.r.cal
	if c.role == lcdtouch.RoleMeasureX {
		return raw(c.r.x, cal.Width, cal.XMin, cal.XMax), nil
	}
	return raw(c.r.y, cal.Height, cal.YMin, cal.YMax), nil
}

var _ lcdtouch.Panel = &Resistive{}
