// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ili93xx

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// DataBus drives the 8 data lines D0..D7. The least significant bit of the
// value is D0.
//
// gpio.Group implements it.
type DataBus interface {
	Out(value, mask gpio.GPIOValue) error
}

// PinBus is a DataBus made of 8 discrete pins, D0 first.
type PinBus [8]gpio.PinOut

// Out implements DataBus.
func (p *PinBus) Out(value, mask gpio.GPIOValue) error {
	for i, pin := range p {
		bit := gpio.GPIOValue(1) << uint(i)
		if mask&bit == 0 {
			continue
		}
		if err := pin.Out(gpio.Level(value&bit != 0)); err != nil {
			return fmt.Errorf("ili93xx: D%d: %w", i, err)
		}
	}
	return nil
}

func (p *PinBus) String() string {
	return fmt.Sprintf("PinBus%v", [8]gpio.PinOut(*p))
}

// ControlPins are the control lines of the 8080 bus. All are active low.
type ControlPins struct {
	// CS selects the chip.
	CS gpio.PinOut
	// CD selects command (low) or data (high). Also named RS or DC.
	CD gpio.PinOut
	// WR latches the data lines on its rising edge.
	WR gpio.PinOut
	// RD is optional and held high since the driver never reads.
	RD gpio.PinOut
	// RST is optional.
	RST gpio.PinOut
}

// bus bit-bangs the 8080 protocol. It keeps the first error and skips all
// the following operations until end is called.
type bus struct {
	lines DataBus
	pins  ControlPins
	err   error
}

func (b *bus) out(p gpio.PinOut, l gpio.Level) {
	if b.err != nil || p == nil {
		return
	}
	if err := p.Out(l); err != nil {
		b.err = fmt.Errorf("ili93xx: %s: %w", p, err)
	}
}

func (b *bus) strobe() {
	b.out(b.pins.WR, gpio.Low)
	b.out(b.pins.WR, gpio.High)
}

func (b *bus) write8(v byte) {
	if b.err != nil {
		return
	}
	if err := b.lines.Out(gpio.GPIOValue(v), 0xff); err != nil {
		b.err = err
		return
	}
	b.strobe()
}

// reset pulses RST and synchronizes the interface with four null bytes.
func (b *bus) reset() error {
	b.out(b.pins.CS, gpio.High)
	b.out(b.pins.CD, gpio.High)
	b.out(b.pins.WR, gpio.High)
	b.out(b.pins.RD, gpio.High)
	if b.pins.RST != nil {
		b.out(b.pins.RST, gpio.Low)
		b.sleep(2 * time.Millisecond)
		b.out(b.pins.RST, gpio.High)
		b.sleep(120 * time.Millisecond)
	}
	b.begin()
	b.out(b.pins.CD, gpio.Low)
	b.write8(0)
	for i := 0; i < 3; i++ {
		b.strobe()
	}
	return b.end()
}

func (b *bus) begin() {
	b.out(b.pins.CS, gpio.Low)
}

// end releases CS even after an error.
func (b *bus) end() error {
	err := b.err
	b.err = nil
	b.out(b.pins.CS, gpio.High)
	if err == nil {
		err = b.err
		b.err = nil
	}
	return err
}

func (b *bus) command(cmd ...byte) {
	b.out(b.pins.CD, gpio.Low)
	for _, c := range cmd {
		b.write8(c)
	}
}

func (b *bus) data(d ...byte) {
	b.out(b.pins.CD, gpio.High)
	for _, v := range d {
		b.write8(v)
	}
}

// fill writes the pixel px n times. When all its bytes are equal the data
// lines are left alone and only WR is toggled.
func (b *bus) fill(px []byte, n int) {
	if n <= 0 || len(px) == 0 {
		return
	}
	b.out(b.pins.CD, gpio.High)
	same := true
	for _, v := range px[1:] {
		same = same && v == px[0]
	}
	if !same {
		for i := 0; i < n; i++ {
			for _, v := range px {
				b.write8(v)
			}
		}
		return
	}
	b.write8(px[0])
	for i := 1; i < n*len(px); i++ {
		b.strobe()
	}
}

func (b *bus) sleep(d time.Duration) {
	if b.err == nil {
		time.Sleep(d)
	}
}

var _ DataBus = &PinBus{}
var _ controller = &bus{}
