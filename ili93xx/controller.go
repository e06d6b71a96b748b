// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ili93xx

import (
	"time"
)

type controller interface {
	begin()
	end() error
	command(cmd ...byte)
	data(d ...byte)
	fill(px []byte, n int)
	sleep(d time.Duration)
}

// step is one entry of an ILI9341 init table.
type step struct {
	cmd   byte
	data  []byte
	delay time.Duration
}

// regStep is one entry of a register based init table.
type regStep struct {
	reg   uint16
	val   uint16
	delay time.Duration
}

func ili9341Init(madctl byte, invert bool) []step {
	inv := invertOff
	if invert {
		inv = invertOn
	}
	return []step{
		{cmd: softReset},
		{cmd: powerControlA, data: []byte{0x39, 0x2c, 0x00, 0x34, 0x02}},
		{cmd: powerControlB, data: []byte{0x00, 0xc1, 0x30}},
		{cmd: driverTimingCtlA, data: []byte{0x85, 0x00, 0x78}},
		{cmd: driverTimingCtlB, data: []byte{0x00, 0x00}},
		{cmd: powerOnSeqControl, data: []byte{0x64, 0x03, 0x12, 0x81}},
		{cmd: pumpRatioControl, data: []byte{0x20}},
		{cmd: powerControl1, data: []byte{0x23}},
		{cmd: powerControl2, data: []byte{0x10}},
		{cmd: vcomControl1, data: []byte{0x3e, 0x28}},
		{cmd: vcomControl2, data: []byte{0x86}},
		{cmd: memoryAccessCtl, data: []byte{madctl}},
		// RGB565 for both reads and writes.
		{cmd: pixelFormat, data: []byte{0x55}},
		{cmd: frameControl, data: []byte{0x00, 0x18}},
		{cmd: displayFunction, data: []byte{0x08, 0x82, 0x27}},
		{cmd: enable3G, data: []byte{0x00}},
		{cmd: gammaSet, data: []byte{0x01}},
		{cmd: positiveGamma, data: []byte{0x0f, 0x31, 0x2b, 0x0c, 0x0e, 0x08, 0x4e, 0xf1, 0x37, 0x07, 0x10, 0x03, 0x0e, 0x09, 0x00}},
		{cmd: negativeGamma, data: []byte{0x00, 0x0e, 0x14, 0x03, 0x11, 0x07, 0x31, 0xc1, 0x48, 0x08, 0x0f, 0x0c, 0x31, 0x36, 0x0f}},
		{cmd: inv},
		{cmd: sleepOut, delay: 150 * time.Millisecond},
		{cmd: displayOn},
	}
}

var ili932xInit = []regStep{
	{reg: regStartOsc, val: 0x0001, delay: 50 * time.Millisecond},
	{reg: regDriverOutCtl, val: 0x0100},
	{reg: regDriverWaveCtl, val: 0x0700},
	{reg: regEntryMode, val: 0x1030},
	{reg: regResizeCtl, val: 0x0000},
	{reg: regDispCtl2, val: 0x0202},
	{reg: regDispCtl3, val: 0x0000},
	{reg: regDispCtl4, val: 0x0000},
	{reg: regRGBIfCtl1, val: 0x0000},
	{reg: regFrameMarker, val: 0x0000},
	{reg: regRGBIfCtl2, val: 0x0000},
	{reg: regPowCtl1, val: 0x0000},
	{reg: regPowCtl2, val: 0x0007},
	{reg: regPowCtl3, val: 0x0000},
	{reg: regPowCtl4, val: 0x0000, delay: 200 * time.Millisecond},
	{reg: regPowCtl1, val: 0x1690},
	{reg: regPowCtl2, val: 0x0227, delay: 50 * time.Millisecond},
	{reg: regPowCtl3, val: 0x001a, delay: 50 * time.Millisecond},
	{reg: regPowCtl4, val: 0x1800},
	{reg: regPowCtl7, val: 0x002a, delay: 50 * time.Millisecond},
	{reg: regGammaCtl1, val: 0x0000},
	{reg: regGammaCtl2, val: 0x0000},
	{reg: regGammaCtl3, val: 0x0000},
	{reg: regGammaCtl4, val: 0x0206},
	{reg: regGammaCtl5, val: 0x0808},
	{reg: regGammaCtl6, val: 0x0007},
	{reg: regGammaCtl7, val: 0x0201},
	{reg: regGammaCtl8, val: 0x0000},
	{reg: regGammaCtl9, val: 0x0000},
	{reg: regGammaCtl10, val: 0x0000},
	{reg: regGRAMHorAddr, val: 0x0000},
	{reg: regGRAMVerAddr, val: 0x0000},
	{reg: regHorStartAddr, val: 0x0000},
	{reg: regHorEndAddr, val: 0x00ef},
	{reg: regVerStartAddr, val: 0x0000},
	{reg: regVerEndAddr, val: 0x013f},
	{reg: regGateScanCtl1, val: 0xa700},
	{reg: regGateScanCtl2, val: 0x0003},
	{reg: regGateScanCtl3, val: 0x0000},
	{reg: regPanelIfCtl1, val: 0x0010},
	{reg: regPanelIfCtl2, val: 0x0000},
	{reg: regPanelIfCtl3, val: 0x0003},
	{reg: regPanelIfCtl4, val: 0x1100},
	{reg: regPanelIfCtl5, val: 0x0000},
	{reg: regPanelIfCtl6, val: 0x0000},
	// Main screen on.
	{reg: regDispCtl1, val: 0x0133},
}

// hx8347Init returns the HX8347 init table. The D and G revisions only differ
// in the panel characteristic register.
func hx8347Init(panel uint16) []regStep {
	return []regStep{
		{reg: 0x2e, val: 0x89},
		{reg: 0x29, val: 0x8f},
		{reg: 0x2b, val: 0x02},
		{reg: 0xe2, val: 0x00},
		{reg: 0xe4, val: 0x01},
		{reg: 0xe5, val: 0x10},
		{reg: 0xe6, val: 0x01},
		{reg: 0xe7, val: 0x10},
		{reg: 0xe8, val: 0x70},
		{reg: 0xf2, val: 0x00},
		{reg: 0xea, val: 0x00},
		{reg: 0xeb, val: 0x20},
		{reg: 0xec, val: 0x3c},
		{reg: 0xed, val: 0xc8},
		{reg: 0xe9, val: 0x38},
		{reg: 0xf1, val: 0x01},
		{reg: 0x1b, val: 0x1a},
		{reg: 0x1a, val: 0x02},
		{reg: 0x24, val: 0x61},
		{reg: 0x25, val: 0x5c},
		{reg: 0x18, val: 0x36},
		{reg: 0x19, val: 0x01},
		// Power on sequence.
		{reg: 0x1f, val: 0x88, delay: 5 * time.Millisecond},
		{reg: 0x1f, val: 0x80, delay: 5 * time.Millisecond},
		{reg: 0x1f, val: 0x90, delay: 5 * time.Millisecond},
		{reg: 0x1f, val: 0xd4, delay: 5 * time.Millisecond},
		{reg: 0x17, val: 0x05},
		{reg: 0x36, val: panel},
		{reg: uint16(hxDispCtl), val: 0x38, delay: 40 * time.Millisecond},
		{reg: uint16(hxDispCtl), val: 0x3c},
	}
}

var ssd1297Init = []regStep{
	{reg: 0x00, val: 0x0001},
	{reg: 0x03, val: 0xa8a4},
	{reg: 0x0c, val: 0x0000},
	{reg: 0x0d, val: 0x000a},
	{reg: 0x0e, val: 0x2b00},
	{reg: 0x1e, val: 0x00b7},
	{reg: uint16(ssdDriverOutCtl), val: 0x2b3f},
	{reg: 0x02, val: 0x0600},
	{reg: 0x10, val: 0x0000},
	{reg: uint16(ssdEntryMode), val: 0x4c30},
	{reg: 0x05, val: 0x0000},
	{reg: 0x06, val: 0x0000},
	{reg: 0x16, val: 0xef1c},
	{reg: 0x17, val: 0x0003},
	{reg: uint16(ssdDispCtl), val: 0x0233},
	{reg: 0x0b, val: 0x0000},
	{reg: 0x0f, val: 0x0000},
	{reg: 0x30, val: 0x0707},
	{reg: 0x31, val: 0x0204},
	{reg: 0x32, val: 0x0204},
	{reg: 0x33, val: 0x0502},
	{reg: 0x34, val: 0x0507},
	{reg: 0x35, val: 0x0204},
	{reg: 0x36, val: 0x0204},
	{reg: 0x37, val: 0x0502},
	{reg: 0x3a, val: 0x0302},
	{reg: 0x3b, val: 0x0302},
	{reg: 0x23, val: 0x0000},
	{reg: 0x24, val: 0x0000},
	{reg: 0x25, val: 0x8000},
}

// initVariant runs the init table of v.
func initVariant(ctrl controller, v Variant) {
	switch v {
	case ILI9341, ILI9341Inv:
		madctl := madctlMX | madctlBGR
		if v == ILI9341Inv {
			madctl = madctlMX | madctlMY | madctlBGR
		}
		runSteps(ctrl, ili9341Init(madctl, v == ILI9341Inv))
	case ILI9325, ILI9328:
		runRegSteps(ctrl, ili932xInit, writeReg16)
	case HX8347D:
		runRegSteps(ctrl, hx8347Init(0x01), writeReg8)
	case HX8347G:
		runRegSteps(ctrl, hx8347Init(0x09), writeReg8)
	case SSD1297:
		runRegSteps(ctrl, ssd1297Init, writeReg8x16)
	}
}

func runSteps(ctrl controller, steps []step) {
	for _, s := range steps {
		ctrl.command(s.cmd)
		if len(s.data) != 0 {
			ctrl.data(s.data...)
		}
		if s.delay > 0 {
			ctrl.sleep(s.delay)
		}
	}
}

func runRegSteps(ctrl controller, steps []regStep, write func(controller, uint16, uint16)) {
	for _, s := range steps {
		write(ctrl, s.reg, s.val)
		if s.delay > 0 {
			ctrl.sleep(s.delay)
		}
	}
}

func writeReg16(ctrl controller, reg, val uint16) {
	ctrl.command(byte(reg>>8), byte(reg))
	ctrl.data(byte(val>>8), byte(val))
}

func writeReg32(ctrl controller, cmd byte, a, b uint16) {
	ctrl.command(cmd)
	ctrl.data(byte(a>>8), byte(a), byte(b>>8), byte(b))
}

// writeReg8 writes the low byte of val to the 8 bit register reg.
func writeReg8(ctrl controller, reg, val uint16) {
	ctrl.command(byte(reg))
	ctrl.data(byte(val))
}

func writeReg8x16(ctrl controller, reg, val uint16) {
	ctrl.command(byte(reg))
	ctrl.data(byte(val>>8), byte(val))
}

// writeRegPair writes val to the HX8347 register pair hi, lo.
func writeRegPair(ctrl controller, hi, lo byte, val uint16) {
	writeReg8(ctrl, uint16(hi), val>>8)
	writeReg8(ctrl, uint16(lo), val)
}

// setRotation programs the scan direction. The address window must be set
// again afterwards.
func setRotation(ctrl controller, v Variant, r Rotation) {
	r &= 3
	switch v {
	case ILI9325, ILI9328:
		writeReg16(ctrl, regEntryMode, [4]uint16{0x1030, 0x1028, 0x1000, 0x1018}[r])
	case HX8347D, HX8347G:
		writeReg8(ctrl, uint16(hxMemAccess), [4]uint16{0x00, 0x60, 0xc0, 0xa0}[r])
	case SSD1297:
		out := [4]uint16{
			ssdTB | ssdREV | ssdBGR,
			ssdTB | ssdRL | ssdREV | ssdBGR,
			ssdRL | ssdREV | ssdBGR,
			ssdREV | ssdBGR,
		}[r]
		entry := ssdID
		if r&1 != 0 {
			entry |= ssdAM
		}
		writeReg8x16(ctrl, uint16(ssdDriverOutCtl), out|0x013f)
		writeReg8x16(ctrl, uint16(ssdEntryMode), entry|0x4c00)
	default:
		var m [4]byte
		if v == ILI9341Inv {
			m = [4]byte{madctlMX | madctlMY, madctlMV | madctlMY, 0, madctlMX | madctlMV}
		} else {
			m = [4]byte{madctlMX, madctlMV, madctlMY, madctlMX | madctlMY | madctlMV}
		}
		ctrl.command(memoryAccessCtl)
		ctrl.data(m[r] | madctlBGR)
	}
}

// setAddrWindow limits the following memory writes to the inclusive
// rectangle (x1, y1)-(x2, y2) in rotated coordinates.
//
// The ILI932x ignores the rotation for addresses so they are converted to
// native coordinates, and the address counter is put on the corner the scan
// starts from. w and h are the native panel size. The SSD1297 only needs the
// axes swapped in landscape.
func setAddrWindow(ctrl controller, v Variant, r Rotation, w, h int, x1, y1, x2, y2 int) {
	switch v {
	case ILI9325, ILI9328:
	case HX8347D, HX8347G:
		writeRegPair(ctrl, hxColStartHi, hxColStartLo, uint16(x1))
		writeRegPair(ctrl, hxColEndHi, hxColEndLo, uint16(x2))
		writeRegPair(ctrl, hxRowStartHi, hxRowStartLo, uint16(y1))
		writeRegPair(ctrl, hxRowEndHi, hxRowEndLo, uint16(y2))
		return
	case SSD1297:
		if r&1 != 0 {
			x1, y1, x2, y2 = y1, x1, y2, x2
		}
		writeReg8x16(ctrl, uint16(ssdXCounter), uint16(x1))
		writeReg8x16(ctrl, uint16(ssdYCounter), uint16(y1))
		writeReg8x16(ctrl, uint16(ssdHorAddr), uint16(x2)<<8|uint16(x1))
		writeReg8x16(ctrl, uint16(ssdVerStartAddr), uint16(y1))
		writeReg8x16(ctrl, uint16(ssdVerEndAddr), uint16(y2))
		return
	default:
		writeReg32(ctrl, columnAddrSet, uint16(x1), uint16(x2))
		writeReg32(ctrl, pageAddrSet, uint16(y1), uint16(y2))
		return
	}
	var x, y int
	switch r & 3 {
	case Rotation0:
		x, y = x1, y1
	case Rotation90:
		x1, y1, x2, y2 = w-1-y2, x1, w-1-y1, x2
		x, y = x2, y1
	case Rotation180:
		x1, x2 = w-1-x2, w-1-x1
		y1, y2 = h-1-y2, h-1-y1
		x, y = x2, y2
	case Rotation270:
		x1, y1, x2, y2 = y1, h-1-x2, y2, h-1-x1
		x, y = x1, y2
	}
	writeReg16(ctrl, regHorStartAddr, uint16(x1))
	writeReg16(ctrl, regHorEndAddr, uint16(x2))
	writeReg16(ctrl, regVerStartAddr, uint16(y1))
	writeReg16(ctrl, regVerEndAddr, uint16(y2))
	writeReg16(ctrl, regGRAMHorAddr, uint16(x))
	writeReg16(ctrl, regGRAMVerAddr, uint16(y))
}

// startWrite sends the memory write command. Pixel data follows.
func startWrite(ctrl controller, v Variant) {
	switch v {
	case ILI9325, ILI9328:
		ctrl.command(byte(regGRAMWrite>>8), byte(regGRAMWrite))
	case HX8347D, HX8347G:
		ctrl.command(hxSRAMWrite)
	case SSD1297:
		ctrl.command(ssdRAMWrite)
	default:
		ctrl.command(memoryWrite)
	}
}

func setDisplay(ctrl controller, v Variant, on bool) {
	switch v {
	case ILI9325, ILI9328:
		val := uint16(0)
		if on {
			val = 0x0133
		}
		writeReg16(ctrl, regDispCtl1, val)
	case HX8347D, HX8347G:
		val := uint16(0x38)
		if on {
			val = 0x3c
		}
		writeReg8(ctrl, uint16(hxDispCtl), val)
	case SSD1297:
		val := uint16(0)
		if on {
			val = 0x0233
		}
		writeReg8x16(ctrl, uint16(ssdDispCtl), val)
	default:
		if on {
			ctrl.command(displayOn)
		} else {
			ctrl.command(displayOff)
		}
	}
}
