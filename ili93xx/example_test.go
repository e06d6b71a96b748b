// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ili93xx_test

import (
	"image"
	"image/color"
	"log"

	"github.com/GermanBionicSystems/tftlcd/ili93xx"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

func Example() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	pin := func(name string) gpio.PinOut {
		p := gpioreg.ByName(name)
		if p == nil {
			log.Fatalf("no pin %s", name)
		}
		return p
	}
	var data ili93xx.PinBus
	for i, name := range []string{"GPIO5", "GPIO6", "GPIO13", "GPIO19", "GPIO26", "GPIO16", "GPIO20", "GPIO21"} {
		data[i] = pin(name)
	}
	ctl := &ili93xx.ControlPins{
		CS:  pin("GPIO8"),
		CD:  pin("GPIO25"),
		WR:  pin("GPIO24"),
		RD:  pin("GPIO23"),
		RST: pin("GPIO18"),
	}
	opts := ili93xx.DefaultOpts
	opts.Rotation = ili93xx.Rotation90
	dev, err := ili93xx.New(&data, ctl, &opts)
	if err != nil {
		log.Fatal(err)
	}
	defer dev.Halt()
	if err := dev.FillScreen(color.Black); err != nil {
		log.Fatal(err)
	}
	r := image.Rect(10, 10, 110, 60)
	if err := dev.FillRect(r, color.RGBA{R: 0xff, A: 0xff}); err != nil {
		log.Fatal(err)
	}
}
