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

var (
	// ErrInvalidMode is returned by SetMode for an unknown Mode.
	ErrInvalidMode = errors.New("lcdtouch: invalid mode")
	// ErrNotInitialized is returned by SetMode(ModeTouch) before the ADC
	// channels are registered.
	ErrNotInitialized = errors.New("lcdtouch: ADC channels not registered")
	// ErrADCTimeout is returned when a conversion doesn't complete in time.
	ErrADCTimeout = errors.New("lcdtouch: ADC conversion timed out")
)

// Opts holds the timing and calibration of the panel.
type Opts struct {
	Calibration Calibration
	// ADCTimeout bounds each conversion.
	ADCTimeout time.Duration
	// SettleDelay is waited after the Y measurement before the sense line
	// is re-armed, letting the panel capacitance discharge. Without it the
	// restored line fires a false edge right after a real touch.
	SettleDelay time.Duration
}

// DefaultOpts is the configuration of a 240x320 shield on a 12 bit ADC.
var DefaultOpts = Opts{
	Calibration: DefaultCalibration,
	ADCTimeout:  100 * time.Millisecond,
	SettleDelay: 10 * time.Millisecond,
}

// Touch is a resistive touch panel sharing its lines with a display bus.
//
// OnDown and OnUp may be called concurrently with everything else. Read and
// SetMode are serialized with each other.
type Touch struct {
	// state and strokes are written from the edge context.
	state   atomic.Int32
	strokes atomic.Uint32

	mu         sync.Mutex
	panel      Panel
	adcX, adcY AnalogSampler
	opts       Opts
	mode       Mode
	start      time.Time
}

// New returns a Touch reading panel through adcX and adcY.
//
// adcX samples Y+ during the X measurement and adcY samples X- during the Y
// measurement. Either may be nil, in which case Read reports
// ReadNotInitialized until SetADC is called.
//
// New doesn't touch the hardware. Call SetMode(ModeTouch) to arm the panel.
func New(panel Panel, adcX, adcY AnalogSampler, opts *Opts) (*Touch, error) {
	if panel == nil {
		return nil, errors.New("lcdtouch: nil panel")
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	if err := opts.Calibration.validate(); err != nil {
		return nil, err
	}
	if opts.ADCTimeout <= 0 {
		return nil, errors.New("lcdtouch: ADCTimeout must be positive")
	}
	if opts.SettleDelay < 0 {
		return nil, errors.New("lcdtouch: SettleDelay must not be negative")
	}
	return &Touch{
		panel: panel,
		adcX:  adcX,
		adcY:  adcY,
		opts:  *opts,
		mode:  ModeDraw,
		start: time.Now(),
	}, nil
}

// SetADC registers the ADC channels used for the X and Y measurements.
func (t *Touch) SetADC(adcX, adcY AnalogSampler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.adcX = adcX
	t.adcY = adcY
}

// Calibration returns the calibration in use.
func (t *Touch) Calibration() Calibration {
	return t.opts.Calibration
}

// State returns the current life-cycle state.
func (t *Touch) State() State {
	return State(t.state.Load())
}

// Strokes returns the number of releases seen so far.
//
// A drawing adapter compares it with the value it saw last to learn that
// the stroke it is drawing ended.
func (t *Touch) Strokes() uint32 {
	return t.strokes.Load()
}

// OnDown signals the start of a contact. Repeated calls are ignored until
// the touch returns to Idle.
func (t *Touch) OnDown() {
	t.state.CompareAndSwap(int32(Idle), int32(Down))
}

// OnUp signals the end of a contact. A stroke is counted once however many
// times its release is reported.
func (t *Touch) OnUp() {
	if State(t.state.Swap(int32(Up))) != Up {
		t.strokes.Add(1)
	}
}

// Mode returns the last mode set.
func (t *Touch) Mode() Mode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

// SetMode hands the shared lines to the display (ModeDraw) or arms the
// panel (ModeTouch).
func (t *Touch) SetMode(m Mode) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch m {
	case ModeDraw:
		t.panel.DisableIRQ()
		t.mode = ModeDraw
		if err := t.panel.SetRole(RoleDraw); err != nil {
			return fmt.Errorf("lcdtouch: draw mode: %w", err)
		}
		return nil
	case ModeTouch:
		if !t.initialized() {
			return ErrNotInitialized
		}
		t.mode = ModeTouch
		err := t.panel.SetRole(RoleSense)
		t.rearm()
		if err != nil {
			return fmt.Errorf("lcdtouch: touch mode: %w", err)
		}
		return nil
	default:
		return ErrInvalidMode
	}
}

// Read samples the panel if a contact is active.
//
// An Up state is consumed: the touch returns to Idle and ReadNoTouch is
// returned. In ModeTouch the sense line is then checked so a finger already
// back on the panel starts a new contact. A hardware failure returns an error and leaves the state
// untouched.
func (t *Touch) Read() (Point, Status, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.initialized() {
		return Point{}, ReadNotInitialized, nil
	}
	switch s := t.State(); s {
	case Down, Move:
	case Up:
		if t.state.CompareAndSwap(int32(Up), int32(Idle)) && t.mode == ModeTouch {
			// A new press while Up was pending was dropped by OnDown.
			t.resync()
		}
		return Point{}, ReadNoTouch, nil
	default:
		return Point{}, ReadNoTouch, nil
	}

	rawX, rawY, ok, err := t.sample()
	if err != nil {
		return Point{}, ReadNoTouch, err
	}
	if !ok {
		return Point{}, ReadOutside, nil
	}
	p := Point{Tick: t.tick()}
	p.X, p.Y = t.opts.Calibration.Map(rawX, rawY)
	// An OnUp racing with the sample wins: the point keeps the state it was
	// sampled in and Up is left for the next Read.
	s := t.State()
	if s == Up {
		return Point{}, ReadNoTouch, nil
	}
	p.State = s
	t.state.CompareAndSwap(int32(Down), int32(Move))
	return p, ReadSuccess, nil
}

// Halt masks the sense line and releases the panel.
func (t *Touch) Halt() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.panel.DisableIRQ()
	if r, ok := t.panel.(conn.Resource); ok {
		return r.Halt()
	}
	return nil
}

func (t *Touch) String() string {
	return fmt.Sprintf("lcdtouch{%dx%d}", t.opts.Calibration.Width, t.opts.Calibration.Height)
}

func (t *Touch) initialized() bool {
	return t.adcX != nil && t.adcY != nil
}

func (t *Touch) tick() uint32 {
	return uint32(time.Since(t.start) / time.Millisecond)
}

// rearm drops a stale edge, unmasks the sense line and catches up with a
// transition that happened while it was masked.
func (t *Touch) rearm() {
	t.panel.ClearPendingIRQ()
	t.panel.EnableIRQ()
	t.resync()
}

// resync aligns the state with the level of the armed sense line. It only
// moves the state by compare-and-swap so a transition delivered by the edge
// watcher at the same time is not applied twice.
func (t *Touch) resync() {
	released := t.panel.Sense() == gpio.High
	switch s := t.State(); {
	case released && (s == Down || s == Move):
		if t.state.CompareAndSwap(int32(s), int32(Up)) {
			t.strokes.Add(1)
		}
	case !released && s == Idle:
		t.OnDown()
	}
}

var _ conn.Resource = &Touch{}
var _ EdgeHandler = &Touch{}
