// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdtouch

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
)

// Pins are the four panel lines.
type Pins struct {
	XP, XM gpio.PinIO
	// YP is the sense line. It needs edge detection support.
	YP, YM gpio.PinIO
}

// GPIOPanel implements Panel on top of periph GPIO pins.
//
// Edges are detected by a goroutine started with Watch. It stands in for the
// edge interrupt handler of a microcontroller: it reads the line level after
// each edge and calls OnDown or OnUp.
type GPIOPanel struct {
	pins Pins
	// poll bounds each WaitForEdge call so Halt is noticed.
	poll time.Duration

	enabled atomic.Bool
	pending atomic.Bool
	// armed is set while Y+ has edge detection. WaitForEdge returns at once
	// otherwise, so the watcher parks on wake instead.
	armed atomic.Bool
	wake  chan struct{}

	mu      sync.Mutex
	handler EdgeHandler
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewGPIOPanel returns a Panel driving pins. Nothing is configured until the
// first SetRole.
func NewGPIOPanel(pins *Pins) (*GPIOPanel, error) {
	if pins == nil || pins.XP == nil || pins.XM == nil || pins.YP == nil || pins.YM == nil {
		return nil, errors.New("lcdtouch: all four panel pins are required")
	}
	return &GPIOPanel{pins: *pins, poll: 100 * time.Millisecond, wake: make(chan struct{}, 1)}, nil
}

// SetRole implements Panel.
func (p *GPIOPanel) SetRole(r Role) error {
	p.armed.Store(false)
	eh := pinErrorHandler{}
	switch r {
	case RoleDraw:
		eh.out(p.pins.XP, gpio.High)
		eh.out(p.pins.XM, gpio.High)
		eh.out(p.pins.YP, gpio.High)
		eh.out(p.pins.YM, gpio.High)
	case RoleSense:
		eh.out(p.pins.XM, gpio.Low)
		eh.out(p.pins.XP, gpio.Low)
		eh.in(p.pins.YM, gpio.Float, gpio.NoEdge)
		eh.in(p.pins.YP, gpio.PullUp, gpio.BothEdges)
	case RoleMeasureX:
		eh.out(p.pins.XM, gpio.Low)
		eh.out(p.pins.XP, gpio.High)
		eh.in(p.pins.YM, gpio.PullUp, gpio.NoEdge)
		eh.in(p.pins.YP, gpio.Float, gpio.NoEdge)
	case RoleMeasureY:
		eh.out(p.pins.YM, gpio.Low)
		eh.out(p.pins.YP, gpio.High)
		eh.in(p.pins.XP, gpio.PullUp, gpio.NoEdge)
		eh.in(p.pins.XM, gpio.Float, gpio.NoEdge)
	default:
		return fmt.Errorf("lcdtouch: unknown role %s", r)
	}
	if r == RoleSense && eh.err == nil {
		p.armed.Store(true)
		select {
		case p.wake <- struct{}{}:
		default:
		}
	}
	return eh.err
}

// EnableIRQ implements Panel.
func (p *GPIOPanel) EnableIRQ() {
	p.enabled.Store(true)
	if p.pending.Swap(false) {
		p.dispatch()
	}
}

// DisableIRQ implements Panel.
func (p *GPIOPanel) DisableIRQ() {
	p.enabled.Store(false)
}

// ClearPendingIRQ implements Panel.
func (p *GPIOPanel) ClearPendingIRQ() {
	p.pending.Store(false)
}

// Sense implements Panel.
func (p *GPIOPanel) Sense() gpio.Level {
	return p.pins.YP.Read()
}

// Watch starts delivering edges of the sense line to h. It returns an error
// if the panel is already watched.
func (p *GPIOPanel) Watch(h EdgeHandler) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done != nil {
		return errors.New("lcdtouch: panel already watched")
	}
	p.handler = h
	p.done = make(chan struct{})
	p.wg.Add(1)
	go p.run(p.done)
	return nil
}

// Halt stops the edge watcher and masks the sense line.
func (p *GPIOPanel) Halt() error {
	p.DisableIRQ()
	p.mu.Lock()
	done := p.done
	p.done = nil
	p.mu.Unlock()
	if done != nil {
		close(done)
		p.wg.Wait()
	}
	return nil
}

func (p *GPIOPanel) String() string {
	return fmt.Sprintf("GPIOPanel{X+:%s X-:%s Y+:%s Y-:%s}", p.pins.XP, p.pins.XM, p.pins.YP, p.pins.YM)
}

func (p *GPIOPanel) run(done <-chan struct{}) {
	defer p.wg.Done()
	for {
		select {
		case <-done:
			return
		default:
		}
		if !p.armed.Load() {
			select {
			case <-done:
				return
			case <-p.wake:
			}
			continue
		}
		if !p.pins.YP.WaitForEdge(p.poll) {
			continue
		}
		if p.enabled.Load() {
			p.dispatch()
		} else {
			p.pending.Store(true)
		}
	}
}

func (p *GPIOPanel) dispatch() {
	p.mu.Lock()
	h := p.handler
	p.mu.Unlock()
	if h == nil {
		return
	}
	if p.pins.YP.Read() == gpio.Low {
		h.OnDown()
	} else {
		h.OnUp()
	}
}

// pinErrorHandler keeps the first pin error and skips the following calls.
type pinErrorHandler struct {
	err error
}

func (eh *pinErrorHandler) out(p gpio.PinOut, l gpio.Level) {
	if eh.err != nil {
		return
	}
	if err := p.Out(l); err != nil {
		eh.err = fmt.Errorf("%s: %w", p, err)
	}
}

func (eh *pinErrorHandler) in(p gpio.PinIn, pull gpio.Pull, edge gpio.Edge) {
	if eh.err != nil {
		return
	}
	if err := p.In(pull, edge); err != nil {
		eh.err = fmt.Errorf("%s: %w", p, err)
	}
}

var _ Panel = &GPIOPanel{}
var _ conn.Resource = &GPIOPanel{}
