// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdtouch_test

import (
	"fmt"
	"log"
	"time"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/tftlcd/adc0832"
	"github.com/GermanBionicSystems/tftlcd/lcdtouch"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	pins := &lcdtouch.Pins{
		XP: gpioreg.ByName("GPIO7"),  // D7
		XM: gpioreg.ByName("GPIO18"), // WR
		YP: gpioreg.ByName("GPIO23"), // CD
		YM: gpioreg.ByName("GPIO6"),  // D6
	}
	panel, err := lcdtouch.NewGPIOPanel(pins)
	if err != nil {
		log.Fatal(err)
	}

	// Y+ is also wired to channel 0 of an ADC0832 and X- to channel 1.
	adc, err := adc0832.New(&adc0832.Pins{
		CLK: gpioreg.ByName("GPIO11"),
		CS:  gpioreg.ByName("GPIO8"),
		DI:  gpioreg.ByName("GPIO10"),
		DO:  gpioreg.ByName("GPIO9"),
	}, nil)
	if err != nil {
		log.Fatal(err)
	}
	adcX, err := adc.PinForChannel(0)
	if err != nil {
		log.Fatal(err)
	}
	adcY, err := adc.PinForChannel(1)
	if err != nil {
		log.Fatal(err)
	}

	t, err := lcdtouch.New(panel, lcdtouch.FromPinADC(adcX), lcdtouch.FromPinADC(adcY), &lcdtouch.DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}
	defer t.Halt()
	if err := panel.Watch(t); err != nil {
		log.Fatal(err)
	}
	if err := t.SetMode(lcdtouch.ModeTouch); err != nil {
		log.Fatal(err)
	}

	for {
		p, s, err := t.Read()
		if err != nil {
			log.Fatal(err)
		}
		if s == lcdtouch.ReadSuccess {
			fmt.Printf("%3d,%3d %s\n", p.X, p.Y, p.State)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func ExampleCalibration_Map() {
	c := lcdtouch.DefaultCalibration
	x, y := c.Map(c.XMin, c.YMin)
	fmt.Println(x, y)
	x, y = c.Map(c.XMax, c.YMax)
	fmt.Println(x, y)
	// Output:
	// 240 320
	// 0 0
}
