// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ili93xx

// ILI9341 commands, 8 bit.
const (
	softReset         byte = 0x01
	sleepOut          byte = 0x11
	invertOff         byte = 0x20
	invertOn          byte = 0x21
	gammaSet          byte = 0x26
	displayOff        byte = 0x28
	displayOn         byte = 0x29
	columnAddrSet     byte = 0x2a
	pageAddrSet       byte = 0x2b
	memoryWrite       byte = 0x2c
	memoryAccessCtl   byte = 0x36
	pixelFormat       byte = 0x3a
	frameControl      byte = 0xb1
	displayFunction   byte = 0xb6
	powerControl1     byte = 0xc0
	powerControl2     byte = 0xc1
	vcomControl1      byte = 0xc5
	vcomControl2      byte = 0xc7
	powerControlA     byte = 0xcb
	powerControlB     byte = 0xcf
	positiveGamma     byte = 0xe0
	negativeGamma     byte = 0xe1
	driverTimingCtlA  byte = 0xe8
	driverTimingCtlB  byte = 0xea
	powerOnSeqControl byte = 0xed
	enable3G          byte = 0xf2
	pumpRatioControl  byte = 0xf7
)

// Memory access control bits.
const (
	madctlMY  byte = 0x80
	madctlMX  byte = 0x40
	madctlMV  byte = 0x20
	madctlBGR byte = 0x08
)

// ILI932x registers, 16 bit.
const (
	regStartOsc       uint16 = 0x00
	regDriverOutCtl   uint16 = 0x01
	regDriverWaveCtl  uint16 = 0x02
	regEntryMode      uint16 = 0x03
	regResizeCtl      uint16 = 0x04
	regDispCtl1       uint16 = 0x07
	regDispCtl2       uint16 = 0x08
	regDispCtl3       uint16 = 0x09
	regDispCtl4       uint16 = 0x0a
	regRGBIfCtl1      uint16 = 0x0c
	regFrameMarker    uint16 = 0x0d
	regRGBIfCtl2      uint16 = 0x0f
	regPowCtl1        uint16 = 0x10
	regPowCtl2        uint16 = 0x11
	regPowCtl3        uint16 = 0x12
	regPowCtl4        uint16 = 0x13
	regGRAMHorAddr    uint16 = 0x20
	regGRAMVerAddr    uint16 = 0x21
	regGRAMWrite      uint16 = 0x22
	regPowCtl7        uint16 = 0x29
	regGammaCtl1      uint16 = 0x30
	regGammaCtl2      uint16 = 0x31
	regGammaCtl3      uint16 = 0x32
	regGammaCtl4      uint16 = 0x35
	regGammaCtl5      uint16 = 0x36
	regGammaCtl6      uint16 = 0x37
	regGammaCtl7      uint16 = 0x38
	regGammaCtl8      uint16 = 0x39
	regGammaCtl9      uint16 = 0x3c
	regGammaCtl10     uint16 = 0x3d
	regHorStartAddr   uint16 = 0x50
	regHorEndAddr     uint16 = 0x51
	regVerStartAddr   uint16 = 0x52
	regVerEndAddr     uint16 = 0x53
	regGateScanCtl1   uint16 = 0x60
	regGateScanCtl2   uint16 = 0x61
	regGateScanCtl3   uint16 = 0x6a
	regPanelIfCtl1    uint16 = 0x90
	regPanelIfCtl2    uint16 = 0x92
	regPanelIfCtl3    uint16 = 0x93
	regPanelIfCtl4    uint16 = 0x95
	regPanelIfCtl5    uint16 = 0x97
	regPanelIfCtl6    uint16 = 0x98
)

// HX8347 registers, 8 bit address and 8 bit value. 16 bit coordinates are
// split over a high and a low register.
const (
	hxColStartHi byte = 0x02
	hxColStartLo byte = 0x03
	hxColEndHi   byte = 0x04
	hxColEndLo   byte = 0x05
	hxRowStartHi byte = 0x06
	hxRowStartLo byte = 0x07
	hxRowEndHi   byte = 0x08
	hxRowEndLo   byte = 0x09
	hxMemAccess  byte = 0x16
	hxSRAMWrite  byte = 0x22
	hxDispCtl    byte = 0x28
)

// SSD1297 registers, 8 bit address and 16 bit value.
const (
	ssdDriverOutCtl byte = 0x01
	ssdDispCtl      byte = 0x07
	ssdEntryMode    byte = 0x11
	ssdRAMWrite     byte = 0x22
	ssdHorAddr      byte = 0x44
	ssdVerStartAddr byte = 0x45
	ssdVerEndAddr   byte = 0x46
	ssdXCounter     byte = 0x4e
	ssdYCounter     byte = 0x4f
)

// SSD1297 driver output control and entry mode bits.
const (
	ssdRL  uint16 = 0x4000
	ssdREV uint16 = 0x2000
	ssdBGR uint16 = 0x0800
	ssdTB  uint16 = 0x0200
	ssdAM  uint16 = 0x0008
	ssdID  uint16 = 0x0030
)
