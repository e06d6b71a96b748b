// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdtouch

import (
	"strconv"

	"periph.io/x/conn/v3/gpio"
)

// Role is an electrical configuration of the four panel lines.
type Role int

const (
	// RoleDraw makes all four lines push-pull outputs for the display bus.
	RoleDraw Role = iota
	// RoleSense drives X+ and X- low, leaves Y- floating and makes Y+ a
	// pulled-up input with both-edge detection. A contact pulls Y+ low.
	RoleSense
	// RoleMeasureX drives X- low and X+ high, Y- is a pulled-up input and Y+
	// is the analog input sampled by the X channel.
	RoleMeasureX
	// RoleMeasureY drives Y- low and Y+ high, X+ is an input and X- is the
	// analog input sampled by the Y channel. Y+ is an output in this role so
	// its edge detection must be masked.
	RoleMeasureY
)

func (r Role) String() string {
	switch r {
	case RoleDraw:
		return "Draw"
	case RoleSense:
		return "Sense"
	case RoleMeasureX:
		return "MeasureX"
	case RoleMeasureY:
		return "MeasureY"
	default:
		return "Role(" + strconv.Itoa(int(r)) + ")"
	}
}

// Panel is the electrical side of the touch panel.
//
// The IRQ methods model the interrupt controller of the sense line: edges
// seen while disabled are latched as pending and delivered by EnableIRQ
// unless ClearPendingIRQ dropped them first.
type Panel interface {
	// SetRole reconfigures the four lines.
	SetRole(r Role) error
	// EnableIRQ lets edges of the sense line reach the EdgeHandler.
	EnableIRQ()
	// DisableIRQ masks edges of the sense line.
	DisableIRQ()
	// ClearPendingIRQ drops an edge latched while masked.
	ClearPendingIRQ()
	// Sense returns the level of the sense line, Low while touched.
	Sense() gpio.Level
}

// EdgeHandler receives contact transitions of the sense line.
//
// Both methods are called from the edge watching context and must not
// block.
type EdgeHandler interface {
	OnDown()
	OnUp()
}
