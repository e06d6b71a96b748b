// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdtouch

import (
	"fmt"
	"time"
)

// sample measures the panel as two voltage dividers and returns the raw X
// and Y readings. ok is false when the X divider is open, meaning the
// contact is gone; the Y channel is not sampled in that case.
//
// The order is fixed: Y+ is the sense line and becomes an output during the
// Y measurement, so its edge detection is masked for the Y phase only and
// re-armed once the line is an input again and the panel had time to
// settle. Every return path leaves the panel in RoleSense with the edge
// detection enabled.
//
// t.mu must be held.
func (t *Touch) sample() (rawX, rawY uint32, ok bool, err error) {
	t.mode = ModeTouch
	if err = t.panel.SetRole(RoleMeasureX); err != nil {
		t.restore(false)
		return 0, 0, false, fmt.Errorf("lcdtouch: X phase: %w", err)
	}
	if rawX, err = t.adcX.Sample(t.opts.ADCTimeout); err != nil {
		t.restore(false)
		return 0, 0, false, err
	}
	if rawX > t.opts.Calibration.NoTouchX {
		t.restore(false)
		return 0, 0, false, nil
	}

	t.panel.DisableIRQ()
	if err = t.panel.SetRole(RoleMeasureY); err != nil {
		t.restore(true)
		return 0, 0, false, fmt.Errorf("lcdtouch: Y phase: %w", err)
	}
	rawY, err = t.adcY.Sample(t.opts.ADCTimeout)
	if rerr := t.restore(true); err == nil && rerr != nil {
		err = rerr
	}
	if err != nil {
		return 0, 0, false, err
	}
	return rawX, rawY, true, nil
}

// restore puts the panel back in RoleSense, re-arms the sense line and
// resyncs the state with its level.
//
// With settle the edge detection is already masked by the Y phase and
// SettleDelay is waited first; it is used once Y+ was driven as an output.
// Y+ has no edge detection in RoleMeasureX either, so a release during the
// X phase is only seen by the resync.
func (t *Touch) restore(settle bool) error {
	if !settle {
		t.panel.DisableIRQ()
	}
	err := t.panel.SetRole(RoleSense)
	if settle && t.opts.SettleDelay > 0 {
		time.Sleep(t.opts.SettleDelay)
	}
	t.rearm()
	if err != nil {
		return fmt.Errorf("lcdtouch: restore sense: %w", err)
	}
	return nil
}
