// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdtouch

import "strconv"

// State is the life-cycle state of a touch.
type State int32

const (
	// Idle means nothing touches the panel. It is the initial state.
	Idle State = iota
	// Down means a contact was detected and not yet sampled.
	Down
	// Move means the contact was sampled at least once.
	Move
	// Up means the contact was released. The next Read consumes it and
	// returns the touch to Idle.
	Up
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Down:
		return "Down"
	case Move:
		return "Move"
	case Up:
		return "Up"
	default:
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
}

// Mode is the electrical role of the lines shared with the display bus.
type Mode int

const (
	// ModeDraw hands the shared lines to the display bus.
	ModeDraw Mode = iota
	// ModeTouch arms the panel for touch detection.
	ModeTouch
)

func (m Mode) String() string {
	switch m {
	case ModeDraw:
		return "Draw"
	case ModeTouch:
		return "Touch"
	default:
		return "Mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// Status is the outcome of a Read that didn't fail.
type Status int

const (
	// ReadSuccess means the returned Point is valid.
	ReadSuccess Status = iota
	// ReadNotInitialized means no ADC channels were registered.
	ReadNotInitialized
	// ReadNoTouch means there is no active contact.
	ReadNoTouch
	// ReadOutside means the contact vanished before it could be measured,
	// the X divider was open.
	ReadOutside
)

func (s Status) String() string {
	switch s {
	case ReadSuccess:
		return "Success"
	case ReadNotInitialized:
		return "NotInitialized"
	case ReadNoTouch:
		return "NoTouch"
	case ReadOutside:
		return "Outside"
	default:
		return "Status(" + strconv.Itoa(int(s)) + ")"
	}
}

// Point is one sampled touch position in screen pixels.
type Point struct {
	X, Y int16
	// Tick is the number of milliseconds since the Touch was created.
	Tick uint32
	// State is the life-cycle state at the time of the sample. The first
	// sample of a contact is tagged Down, the following ones Move.
	State State
}
