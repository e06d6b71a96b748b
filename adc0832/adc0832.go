// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package adc0832 drives a TI ADC0832 dual channel 8 bit serial A/D converter
// over four GPIO lines and exposes each channel as an analog.PinADC.
//
// DI and DO may be tied together and connected to a single GPIO.
//
// # Datasheet
//
// https://www.ti.com/lit/ds/symlink/adc0832-n.pdf
package adc0832

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
)

// Channels is the number of single ended inputs.
const Channels = 2

const maxRaw = 0xff

// Pins are the serial interface lines.
type Pins struct {
	CLK gpio.PinOut
	// CS is active low.
	CS gpio.PinOut
	// DI is driven for the mux address and released before the conversion
	// so it can be the same line as DO.
	DI gpio.PinIO
	DO gpio.PinIn
}

// Opts holds the timing and the reference of the converter.
type Opts struct {
	// HalfClock is the time between two clock edges. The ADC0832 accepts up
	// to 400kHz.
	HalfClock time.Duration
	// Settle is waited after the mux address for the input to settle.
	Settle time.Duration
	// Vref is the tension read as full scale.
	Vref physic.ElectricPotential
}

// DefaultOpts is a 100kHz clock and a 3.3V reference.
var DefaultOpts = Opts{
	HalfClock: 5 * time.Microsecond,
	Settle:    5 * time.Microsecond,
	Vref:      3300 * physic.MilliVolt,
}

// Dev is a handle to an ADC0832.
type Dev struct {
	mu    sync.Mutex
	pins  Pins
	opts  Opts
	sleep func(time.Duration)
}

// New returns a Dev on pins. CS is released and CLK is held low until the
// first conversion.
func New(pins *Pins, opts *Opts) (*Dev, error) {
	if pins == nil || pins.CLK == nil || pins.CS == nil || pins.DI == nil || pins.DO == nil {
		return nil, errors.New("adc0832: CLK, CS, DI and DO are required")
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.HalfClock < 0 || opts.Settle < 0 {
		return nil, errors.New("adc0832: negative timing")
	}
	if opts.Vref <= 0 {
		return nil, errors.New("adc0832: Vref must be positive")
	}
	d := &Dev{pins: *pins, opts: *opts, sleep: time.Sleep}
	eh := errHandler{}
	eh.out(d.pins.CS, gpio.High)
	eh.out(d.pins.CLK, gpio.Low)
	if eh.err != nil {
		return nil, eh.err
	}
	return d, nil
}

// Read converts channel ch and returns the 8 bit result.
func (d *Dev) Read(ch int) (uint8, error) {
	if ch < 0 || ch >= Channels {
		return 0, fmt.Errorf("adc0832: invalid channel %d", ch)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	eh := errHandler{}
	eh.out(d.pins.CS, gpio.High)
	eh.out(d.pins.CLK, gpio.Low)
	eh.out(d.pins.DI, gpio.High)
	d.sleep(d.opts.HalfClock)
	eh.out(d.pins.CS, gpio.Low)

	// Start bit, single ended mode, then the channel in the ODD/SIGN bit.
	d.clockOut(&eh, gpio.High)
	d.clockOut(&eh, gpio.High)
	d.clockOut(&eh, gpio.Level(ch == 1))
	eh.in(d.pins.DI)
	d.sleep(d.opts.Settle)
	eh.out(d.pins.CLK, gpio.High)

	// MSB first. The LSB first copy that follows is not read.
	var v uint8
	for i := 0; i < 8; i++ {
		v <<= 1
		if d.clockIn(&eh) {
			v |= 1
		}
	}
	eh.out(d.pins.CS, gpio.High)
	eh.out(d.pins.CLK, gpio.Low)
	if eh.err != nil {
		return 0, eh.err
	}
	return v, nil
}

// PinForChannel returns channel ch as an analog input.
func (d *Dev) PinForChannel(ch int) (analog.PinADC, error) {
	if ch < 0 || ch >= Channels {
		return nil, fmt.Errorf("adc0832: invalid channel %d", ch)
	}
	return &Pin{d: d, ch: ch}, nil
}

// Halt releases CS.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pins.CS.Out(gpio.High)
}

func (d *Dev) String() string {
	return fmt.Sprintf("adc0832{CLK:%s CS:%s DI:%s DO:%s}", d.pins.CLK, d.pins.CS, d.pins.DI, d.pins.DO)
}

// clockOut presents l on DI. The ADC latches it on the rising edge. CLK
// starts and ends low.
func (d *Dev) clockOut(eh *errHandler, l gpio.Level) {
	eh.out(d.pins.DI, l)
	d.sleep(d.opts.HalfClock)
	eh.out(d.pins.CLK, gpio.High)
	d.sleep(d.opts.HalfClock)
	eh.out(d.pins.CLK, gpio.Low)
}

// clockIn reads one bit shifted out on the falling edge. CLK starts and
// ends high.
func (d *Dev) clockIn(eh *errHandler) bool {
	d.sleep(d.opts.HalfClock)
	eh.out(d.pins.CLK, gpio.Low)
	d.sleep(d.opts.HalfClock)
	l := eh.err == nil && d.pins.DO.Read() == gpio.High
	eh.out(d.pins.CLK, gpio.High)
	return l
}

// Pin is one channel of a Dev.
type Pin struct {
	d  *Dev
	ch int
}

// Name implements pin.Pin.
func (p *Pin) Name() string {
	return fmt.Sprintf("ADC0832_CH%d", p.ch)
}

// Number implements pin.Pin.
func (p *Pin) Number() int {
	return p.ch
}

// Function implements pin.Pin.
func (p *Pin) Function() string {
	return "ADC"
}

func (p *Pin) String() string {
	return p.Name()
}

// Halt implements conn.Resource.
func (p *Pin) Halt() error {
	return nil
}

// Range implements analog.PinADC.
func (p *Pin) Range() (analog.Sample, analog.Sample) {
	return analog.Sample{}, analog.Sample{V: p.d.opts.Vref, Raw: maxRaw}
}

// Read implements analog.PinADC.
func (p *Pin) Read() (analog.Sample, error) {
	v, err := p.d.Read(p.ch)
	if err != nil {
		return analog.Sample{}, err
	}
	return analog.Sample{V: p.d.opts.Vref * physic.ElectricPotential(v) / maxRaw, Raw: int32(v)}, nil
}

// errHandler keeps the first pin error and skips the following calls.
type errHandler struct {
	err error
}

func (eh *errHandler) out(p gpio.PinOut, l gpio.Level) {
	if eh.err != nil {
		return
	}
	if err := p.Out(l); err != nil {
		eh.err = fmt.Errorf("adc0832: %s: %w", p, err)
	}
}

func (eh *errHandler) in(p gpio.PinIn) {
	if eh.err != nil {
		return
	}
	if err := p.In(gpio.Float, gpio.NoEdge); err != nil {
		eh.err = fmt.Errorf("adc0832: %s: %w", p, err)
	}
}

var _ conn.Resource = &Dev{}
var _ analog.PinADC = &Pin{}
var _ pin.Pin = &Pin{}
