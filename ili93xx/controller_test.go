// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ili93xx

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type record struct {
	cmd   []byte
	data  []byte
	fill  int
	delay time.Duration
}

type fakeController struct {
	records []record
	open    int
}

func (f *fakeController) begin() {
	f.open++
}

func (f *fakeController) end() error {
	f.open--
	return nil
}

func (f *fakeController) command(cmd ...byte) {
	f.records = append(f.records, record{cmd: append([]byte(nil), cmd...)})
}

func (f *fakeController) data(d ...byte) {
	cur := &f.records[len(f.records)-1]
	cur.data = append(cur.data, d...)
}

func (f *fakeController) fill(px []byte, n int) {
	cur := &f.records[len(f.records)-1]
	cur.data = append(cur.data, px...)
	cur.fill += n
}

func (f *fakeController) sleep(d time.Duration) {
	f.records = append(f.records, record{delay: d})
}

func (f *fakeController) reset() {
	f.records = nil
}

func diffRecords(t *testing.T, name string, got, want []record) {
	t.Helper()
	if diff := cmp.Diff(got, want, cmpopts.EquateEmpty(), cmp.AllowUnexported(record{})); diff != "" {
		t.Errorf("%s difference (-got +want):\n%s", name, diff)
	}
}

func reg16(reg, val uint16) record {
	return record{cmd: []byte{byte(reg >> 8), byte(reg)}, data: []byte{byte(val >> 8), byte(val)}}
}

func reg8(reg, val byte) record {
	return record{cmd: []byte{reg}, data: []byte{val}}
}

func reg8x16(reg byte, val uint16) record {
	return record{cmd: []byte{reg}, data: []byte{byte(val >> 8), byte(val)}}
}

func reg32(cmd byte, a, b uint16) record {
	return record{cmd: []byte{cmd}, data: []byte{byte(a >> 8), byte(a), byte(b >> 8), byte(b)}}
}

func TestInitILI9341(t *testing.T) {
	for _, tc := range []struct {
		variant Variant
		madctl  byte
		invert  byte
	}{
		{ILI9341, madctlMX | madctlBGR, invertOff},
		{ILI9341Inv, madctlMX | madctlMY | madctlBGR, invertOn},
	} {
		t.Run(tc.variant.String(), func(t *testing.T) {
			var f fakeController
			if _, err := newDev(&f, &Opts{Variant: tc.variant, Width: 240, Height: 320}); err != nil {
				t.Fatal(err)
			}
			if f.open != 0 {
				t.Fatal("unbalanced begin/end")
			}
			head := []record{
				{cmd: []byte{softReset}},
				{cmd: []byte{powerControlA}, data: []byte{0x39, 0x2c, 0x00, 0x34, 0x02}},
			}
			diffRecords(t, "head", f.records[:2], head)
			tail := []record{
				{cmd: []byte{tc.invert}},
				{cmd: []byte{sleepOut}},
				{delay: 150 * time.Millisecond},
				{cmd: []byte{displayOn}},
				{cmd: []byte{memoryAccessCtl}, data: []byte{tc.madctl}},
				reg32(columnAddrSet, 0, 239),
				reg32(pageAddrSet, 0, 319),
			}
			diffRecords(t, "tail", f.records[len(f.records)-len(tail):], tail)
			for _, r := range f.records {
				if len(r.cmd) == 1 && r.cmd[0] == memoryAccessCtl && r.data[0] != tc.madctl {
					t.Errorf("MADCTL = %#x, want %#x", r.data[0], tc.madctl)
				}
			}
		})
	}
}

func TestInitILI932x(t *testing.T) {
	var f fakeController
	if _, err := newDev(&f, &Opts{Variant: ILI9328, Width: 240, Height: 320}); err != nil {
		t.Fatal(err)
	}
	head := []record{
		reg16(regStartOsc, 0x0001),
		{delay: 50 * time.Millisecond},
		reg16(regDriverOutCtl, 0x0100),
	}
	diffRecords(t, "head", f.records[:3], head)
	tail := []record{
		reg16(regDispCtl1, 0x0133),
		reg16(regEntryMode, 0x1030),
		reg16(regHorStartAddr, 0),
		reg16(regHorEndAddr, 239),
		reg16(regVerStartAddr, 0),
		reg16(regVerEndAddr, 319),
		reg16(regGRAMHorAddr, 0),
		reg16(regGRAMVerAddr, 0),
	}
	diffRecords(t, "tail", f.records[len(f.records)-len(tail):], tail)

	delays := 0
	for _, s := range ili932xInit {
		if s.delay > 0 {
			delays++
		}
	}
	if want := len(ili932xInit) + delays + 7; len(f.records) != want {
		t.Fatalf("%d records, want %d", len(f.records), want)
	}
}

func TestInitHX8347(t *testing.T) {
	for _, tc := range []struct {
		variant Variant
		panel   byte
	}{
		{HX8347D, 0x01},
		{HX8347G, 0x09},
	} {
		t.Run(tc.variant.String(), func(t *testing.T) {
			var f fakeController
			if _, err := newDev(&f, &Opts{Variant: tc.variant, Width: 240, Height: 320}); err != nil {
				t.Fatal(err)
			}
			diffRecords(t, "head", f.records[:2], []record{reg8(0x2e, 0x89), reg8(0x29, 0x8f)})
			tail := []record{
				reg8(0x36, tc.panel),
				reg8(hxDispCtl, 0x38),
				{delay: 40 * time.Millisecond},
				reg8(hxDispCtl, 0x3c),
				reg8(hxMemAccess, 0),
				reg8(hxColStartHi, 0),
				reg8(hxColStartLo, 0),
				reg8(hxColEndHi, 0),
				reg8(hxColEndLo, 239),
				reg8(hxRowStartHi, 0),
				reg8(hxRowStartLo, 0),
				reg8(hxRowEndHi, 1),
				reg8(hxRowEndLo, 0x3f),
			}
			diffRecords(t, "tail", f.records[len(f.records)-len(tail):], tail)
			delays := 0
			for _, r := range f.records {
				if r.delay == 5*time.Millisecond {
					delays++
				}
			}
			if delays != 4 {
				t.Fatalf("%d power on pauses, want 4", delays)
			}
		})
	}
}

func TestInitSSD1297(t *testing.T) {
	var f fakeController
	if _, err := newDev(&f, &Opts{Variant: SSD1297, Width: 240, Height: 320}); err != nil {
		t.Fatal(err)
	}
	diffRecords(t, "head", f.records[:2], []record{reg8x16(0x00, 0x0001), reg8x16(0x03, 0xa8a4)})
	tail := []record{
		reg8x16(0x25, 0x8000),
		// Rotation0 programs the same scan as the init table.
		reg8x16(ssdDriverOutCtl, 0x2b3f),
		reg8x16(ssdEntryMode, 0x4c30),
		reg8x16(ssdXCounter, 0),
		reg8x16(ssdYCounter, 0),
		reg8x16(ssdHorAddr, 0xef00),
		reg8x16(ssdVerStartAddr, 0),
		reg8x16(ssdVerEndAddr, 319),
	}
	diffRecords(t, "tail", f.records[len(f.records)-len(tail):], tail)
	if want := len(ssd1297Init) + 7; len(f.records) != want {
		t.Fatalf("%d records, want %d", len(f.records), want)
	}
}

func TestSetRotation(t *testing.T) {
	for _, tc := range []struct {
		name    string
		variant Variant
		rot     Rotation
		want    []record
	}{
		{
			name:    "ILI9341/90",
			variant: ILI9341,
			rot:     Rotation90,
			want: []record{
				{cmd: []byte{memoryAccessCtl}, data: []byte{madctlMV | madctlBGR}},
				reg32(columnAddrSet, 0, 319),
				reg32(pageAddrSet, 0, 239),
			},
		},
		{
			name:    "ILI9341/180",
			variant: ILI9341,
			rot:     Rotation180,
			want: []record{
				{cmd: []byte{memoryAccessCtl}, data: []byte{madctlMY | madctlBGR}},
				reg32(columnAddrSet, 0, 239),
				reg32(pageAddrSet, 0, 319),
			},
		},
		{
			name:    "ILI9341/270",
			variant: ILI9341,
			rot:     Rotation270,
			want: []record{
				{cmd: []byte{memoryAccessCtl}, data: []byte{madctlMX | madctlMY | madctlMV | madctlBGR}},
				reg32(columnAddrSet, 0, 319),
				reg32(pageAddrSet, 0, 239),
			},
		},
		{
			name:    "ILI9341Inv/180",
			variant: ILI9341Inv,
			rot:     Rotation180,
			want: []record{
				{cmd: []byte{memoryAccessCtl}, data: []byte{madctlBGR}},
				reg32(columnAddrSet, 0, 239),
				reg32(pageAddrSet, 0, 319),
			},
		},
		{
			name:    "ILI9325/90",
			variant: ILI9325,
			rot:     Rotation90,
			want: []record{
				reg16(regEntryMode, 0x1028),
				reg16(regHorStartAddr, 0),
				reg16(regHorEndAddr, 239),
				reg16(regVerStartAddr, 0),
				reg16(regVerEndAddr, 319),
				reg16(regGRAMHorAddr, 239),
				reg16(regGRAMVerAddr, 0),
			},
		},
		{
			name:    "HX8347D/90",
			variant: HX8347D,
			rot:     Rotation90,
			want: []record{
				reg8(hxMemAccess, 0x60),
				reg8(hxColStartHi, 0),
				reg8(hxColStartLo, 0),
				reg8(hxColEndHi, 1),
				reg8(hxColEndLo, 0x3f),
				reg8(hxRowStartHi, 0),
				reg8(hxRowStartLo, 0),
				reg8(hxRowEndHi, 0),
				reg8(hxRowEndLo, 239),
			},
		},
		{
			name:    "SSD1297/90",
			variant: SSD1297,
			rot:     Rotation90,
			want: []record{
				reg8x16(ssdDriverOutCtl, ssdTB|ssdRL|ssdREV|ssdBGR|0x013f),
				reg8x16(ssdEntryMode, ssdAM|ssdID|0x4c00),
				reg8x16(ssdXCounter, 0),
				reg8x16(ssdYCounter, 0),
				reg8x16(ssdHorAddr, 0xef00),
				reg8x16(ssdVerStartAddr, 0),
				reg8x16(ssdVerEndAddr, 319),
			},
		},
		{
			name:    "SSD1297/180",
			variant: SSD1297,
			rot:     Rotation180,
			want: []record{
				reg8x16(ssdDriverOutCtl, 0x693f),
				reg8x16(ssdEntryMode, 0x4c30),
				reg8x16(ssdXCounter, 0),
				reg8x16(ssdYCounter, 0),
				reg8x16(ssdHorAddr, 0xef00),
				reg8x16(ssdVerStartAddr, 0),
				reg8x16(ssdVerEndAddr, 319),
			},
		},
		{
			name:    "ILI9325/180",
			variant: ILI9325,
			rot:     Rotation180,
			want: []record{
				reg16(regEntryMode, 0x1000),
				reg16(regHorStartAddr, 0),
				reg16(regHorEndAddr, 239),
				reg16(regVerStartAddr, 0),
				reg16(regVerEndAddr, 319),
				reg16(regGRAMHorAddr, 239),
				reg16(regGRAMVerAddr, 319),
			},
		},
		{
			name:    "ILI9325/270",
			variant: ILI9325,
			rot:     Rotation270,
			want: []record{
				reg16(regEntryMode, 0x1018),
				reg16(regHorStartAddr, 0),
				reg16(regHorEndAddr, 239),
				reg16(regVerStartAddr, 0),
				reg16(regVerEndAddr, 319),
				reg16(regGRAMHorAddr, 0),
				reg16(regGRAMVerAddr, 319),
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var f fakeController
			d, err := newDev(&f, &Opts{Variant: tc.variant, Width: 240, Height: 320})
			if err != nil {
				t.Fatal(err)
			}
			f.reset()
			if err := d.SetRotation(tc.rot); err != nil {
				t.Fatal(err)
			}
			diffRecords(t, "SetRotation()", f.records, tc.want)
			if d.Rotation() != tc.rot {
				t.Fatal("rotation not kept")
			}
			w, h := d.Size()
			if tc.rot&1 != 0 {
				w, h = h, w
			}
			if w != 240 || h != 320 {
				t.Fatalf("Size() = %d, %d", w, h)
			}
		})
	}
}

func TestAddrWindow932xRotated(t *testing.T) {
	for _, tc := range []struct {
		rot  Rotation
		want [6]uint16
	}{
		{Rotation0, [6]uint16{10, 19, 30, 34, 10, 30}},
		// A 10x5 window at (10, 30) in landscape.
		{Rotation90, [6]uint16{205, 209, 10, 19, 209, 10}},
		{Rotation180, [6]uint16{220, 229, 285, 289, 229, 289}},
		{Rotation270, [6]uint16{30, 34, 300, 309, 30, 309}},
	} {
		var f fakeController
		setAddrWindow(&f, ILI9325, tc.rot, 240, 320, 10, 30, 19, 34)
		want := []record{
			reg16(regHorStartAddr, tc.want[0]),
			reg16(regHorEndAddr, tc.want[1]),
			reg16(regVerStartAddr, tc.want[2]),
			reg16(regVerEndAddr, tc.want[3]),
			reg16(regGRAMHorAddr, tc.want[4]),
			reg16(regGRAMVerAddr, tc.want[5]),
		}
		diffRecords(t, "setAddrWindow()", f.records, want)
	}
}

func TestAddrWindowSSD1297(t *testing.T) {
	for _, tc := range []struct {
		rot  Rotation
		want [5]uint16
	}{
		{Rotation0, [5]uint16{10, 30, 0x130a, 30, 34}},
		{Rotation180, [5]uint16{10, 30, 0x130a, 30, 34}},
		// Landscape swaps the axes.
		{Rotation90, [5]uint16{30, 10, 0x221e, 10, 19}},
		{Rotation270, [5]uint16{30, 10, 0x221e, 10, 19}},
	} {
		var f fakeController
		setAddrWindow(&f, SSD1297, tc.rot, 240, 320, 10, 30, 19, 34)
		want := []record{
			reg8x16(ssdXCounter, tc.want[0]),
			reg8x16(ssdYCounter, tc.want[1]),
			reg8x16(ssdHorAddr, tc.want[2]),
			reg8x16(ssdVerStartAddr, tc.want[3]),
			reg8x16(ssdVerEndAddr, tc.want[4]),
		}
		diffRecords(t, "setAddrWindow()", f.records, want)
	}
}
