// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdtouch

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/analog"
)

// AnalogSampler performs one blocking conversion on an ADC channel.
type AnalogSampler interface {
	// Sample returns the raw reading, or ErrADCTimeout if the conversion
	// didn't complete within timeout.
	Sample(timeout time.Duration) (uint32, error)
}

// FromPinADC returns an AnalogSampler reading p.
//
// Readings are scaled to the 12 bit range Calibration is expressed in,
// according to the maximum reported by p.Range.
//
// periph's analog.PinADC has no notion of timeout; the conversion runs on
// its own goroutine and is abandoned when it takes longer than the timeout.
// An abandoned conversion still owns the pin: the next Sample waits for it,
// within its own timeout, before starting another one.
func FromPinADC(p analog.PinADC) AnalogSampler {
	_, hi := p.Range()
	return &adcPin{p: p, max: hi.Raw, busy: make(chan struct{}, 1)}
}

// fullScale is the maximum 12 bit reading.
const fullScale = 4095

type adcPin struct {
	p    analog.PinADC
	max  int32
	busy chan struct{}
}

type adcResult struct {
	s   analog.Sample
	err error
}

func (a *adcPin) Sample(timeout time.Duration) (uint32, error) {
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case a.busy <- struct{}{}:
	case <-t.C:
		return 0, fmt.Errorf("%w on %s, previous conversion still running", ErrADCTimeout, a.p)
	}
	ch := make(chan adcResult, 1)
	go func() {
		s, err := a.p.Read()
		<-a.busy
		ch <- adcResult{s: s, err: err}
	}()
	select {
	case r := <-ch:
		if r.err != nil {
			return 0, fmt.Errorf("lcdtouch: %s: %w", a.p, r.err)
		}
		return a.scale(r.s.Raw), nil
	case <-t.C:
		return 0, fmt.Errorf("%w on %s", ErrADCTimeout, a.p)
	}
}

func (a *adcPin) scale(raw int32) uint32 {
	switch {
	case raw <= 0:
		return 0
	case a.max <= 0 || a.max == fullScale:
		return uint32(raw)
	case raw >= a.max:
		return fullScale
	default:
		return uint32(int64(raw) * fullScale / int64(a.max))
	}
}

func (a *adcPin) String() string {
	return a.p.String()
}
