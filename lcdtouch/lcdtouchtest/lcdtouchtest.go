// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcdtouchtest is meant to be used to test drivers using a touch
// panel without the hardware.
package lcdtouchtest

import (
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/GermanBionicSystems/tftlcd/lcdtouch"
)

// Recorder collects the operations done on Panel and ADC fakes in the order
// they happened.
type Recorder struct {
	mu  sync.Mutex
	ops []string
}

// Record appends op.
func (r *Recorder) Record(op string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
}

// Ops returns a copy of the operations recorded so far.
func (r *Recorder) Ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ops...)
}

// Reset forgets the recorded operations.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = nil
}

// Panel is a fake lcdtouch.Panel recording every call.
//
// Recorded operations are "role:<Role>", "irq:enable", "irq:disable",
// "irq:clear" and "sense".
type Panel struct {
	sync.Mutex
	Rec *Recorder
	// Level is returned by Sense. The zero value means touched.
	Level gpio.Level
	// Errs is returned by SetRole for the matching role.
	Errs map[lcdtouch.Role]error
	// Role is the last role set.
	Role    lcdtouch.Role
	Enabled bool
}

// SetRole implements lcdtouch.Panel.
func (p *Panel) SetRole(r lcdtouch.Role) error {
	p.Rec.Record("role:" + r.String())
	p.Lock()
	defer p.Unlock()
	p.Role = r
	return p.Errs[r]
}

// EnableIRQ implements lcdtouch.Panel.
func (p *Panel) EnableIRQ() {
	p.Rec.Record("irq:enable")
	p.Lock()
	defer p.Unlock()
	p.Enabled = true
}

// DisableIRQ implements lcdtouch.Panel.
func (p *Panel) DisableIRQ() {
	p.Rec.Record("irq:disable")
	p.Lock()
	defer p.Unlock()
	p.Enabled = false
}

// ClearPendingIRQ implements lcdtouch.Panel.
func (p *Panel) ClearPendingIRQ() {
	p.Rec.Record("irq:clear")
}

// Sense implements lcdtouch.Panel.
func (p *Panel) Sense() gpio.Level {
	p.Rec.Record("sense")
	p.Lock()
	defer p.Unlock()
	return p.Level
}

// ADC is a fake lcdtouch.AnalogSampler.
//
// It returns Values in order and repeats the last one once exhausted. The
// recorded operation is "adc:<Name>".
type ADC struct {
	sync.Mutex
	Name   string
	Rec    *Recorder
	Values []uint32
	// Err, when set, is returned instead of a value.
	Err error
	// OnSample, when set, is called during each conversion.
	OnSample func()
	// Calls is the number of conversions requested.
	Calls int
}

// Sample implements lcdtouch.AnalogSampler.
func (a *ADC) Sample(timeout time.Duration) (uint32, error) {
	a.Rec.Record("adc:" + a.Name)
	a.Lock()
	i := a.Calls
	a.Calls++
	f := a.OnSample
	a.Unlock()
	if f != nil {
		f()
	}
	a.Lock()
	defer a.Unlock()
	if a.Err != nil {
		return 0, a.Err
	}
	if len(a.Values) == 0 {
		return 0, fmt.Errorf("lcdtouchtest: %s: no value to return", a.Name)
	}
	if i >= len(a.Values) {
		i = len(a.Values) - 1
	}
	return a.Values[i], nil
}

var _ lcdtouch.Panel = &Panel{}
var _ lcdtouch.AnalogSampler = &ADC{}
