// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// touchpaint draws what is traced on a TFT shield with a resistive touch
// panel.
//
// The shield is wired to GPIOs: 8 data lines, CS, CD, WR and optionally RD
// and RST. The touch panel shares X+ with D7, Y- with D6, X- with WR and Y+
// with CD. Y+ and X- are also wired to channel 0 and 1 of an ADC0832 on four
// more GPIOs.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/tftlcd/adc0832"
	"github.com/GermanBionicSystems/tftlcd/ili93xx"
	"github.com/GermanBionicSystems/tftlcd/lcdtouch"
	"github.com/GermanBionicSystems/tftlcd/lcdtouch/touchdraw"
	"github.com/GermanBionicSystems/tftlcd/panelview"
)

var variants = map[string]ili93xx.Variant{
	"ili9341":    ili93xx.ILI9341,
	"ili9341inv": ili93xx.ILI9341Inv,
	"ili9325":    ili93xx.ILI9325,
	"ili9328":    ili93xx.ILI9328,
	"hx8347d":    ili93xx.HX8347D,
	"hx8347g":    ili93xx.HX8347G,
	"ssd1297":    ili93xx.SSD1297,
}

func pin(name string) (gpio.PinIO, error) {
	if name == "" {
		return nil, nil
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("no pin %q", name)
	}
	return p, nil
}

// touchADC returns the samplers of Y+ and X-, on channel 0 and 1 of an
// ADC0832.
func touchADC(clk, cs, di, do string) (adcX, adcY lcdtouch.AnalogSampler, err error) {
	var pins [4]gpio.PinIO
	for i, n := range []string{clk, cs, di, do} {
		if pins[i], err = pin(n); err != nil {
			return nil, nil, err
		}
		if pins[i] == nil {
			return nil, nil, errors.New("the four ADC0832 pins are required")
		}
	}
	a, err := adc0832.New(&adc0832.Pins{CLK: pins[0], CS: pins[1], DI: pins[2], DO: pins[3]}, nil)
	if err != nil {
		return nil, nil, err
	}
	ch0, err := a.PinForChannel(0)
	if err != nil {
		return nil, nil, err
	}
	ch1, err := a.PinForChannel(1)
	if err != nil {
		return nil, nil, err
	}
	return lcdtouch.FromPinADC(ch0), lcdtouch.FromPinADC(ch1), nil
}

func mainImpl() error {
	dataNames := flag.String("data", "GPIO5,GPIO6,GPIO13,GPIO19,GPIO26,GPIO16,GPIO20,GPIO21", "D0..D7 pins, comma separated")
	csName := flag.String("cs", "GPIO8", "CS pin")
	cdName := flag.String("cd", "GPIO25", "CD pin, also Y+")
	wrName := flag.String("wr", "GPIO24", "WR pin, also X-")
	rdName := flag.String("rd", "", "RD pin, optional")
	rstName := flag.String("rst", "GPIO18", "RST pin, optional")
	adcCLK := flag.String("adcclk", "GPIO11", "ADC0832 CLK pin")
	adcCS := flag.String("adccs", "GPIO7", "ADC0832 CS pin")
	adcDI := flag.String("adcdi", "GPIO10", "ADC0832 DI pin")
	adcDO := flag.String("adcdo", "GPIO9", "ADC0832 DO pin, may be the same as DI")
	variant := flag.String("variant", "ili9341", "controller: ili9341, ili9341inv, ili9325, ili9328, hx8347d, hx8347g or ssd1297")
	rotation := flag.Int("rotation", 0, "rotation in quarter turns")
	interval := flag.Duration("interval", 10*time.Millisecond, "touch polling interval")
	verbose := flag.Bool("v", false, "log each completed stroke")
	httpAddr := flag.String("http", "", "serve a live view of the panel on this address, e.g. :8080")
	flag.Parse()
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}
	v, ok := variants[strings.ToLower(*variant)]
	if !ok {
		return fmt.Errorf("unknown variant %q", *variant)
	}

	if _, err := host.Init(); err != nil {
		return err
	}

	names := strings.Split(*dataNames, ",")
	if len(names) != 8 {
		return fmt.Errorf("need 8 data pins, got %d", len(names))
	}
	var data ili93xx.PinBus
	var lines [8]gpio.PinIO
	for i, n := range names {
		p, err := pin(strings.TrimSpace(n))
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("D%d is required", i)
		}
		data[i] = p
		lines[i] = p
	}
	var ctl [5]gpio.PinIO
	for i, n := range []string{*csName, *cdName, *wrName, *rdName, *rstName} {
		p, err := pin(n)
		if err != nil {
			return err
		}
		ctl[i] = p
	}
	cs, cd, wr, rd, rst := ctl[0], ctl[1], ctl[2], ctl[3], ctl[4]
	if cs == nil || cd == nil || wr == nil {
		return errors.New("CS, CD and WR are required")
	}

	opts := ili93xx.DefaultOpts
	opts.Variant = v
	opts.Rotation = ili93xx.Rotation(*rotation)
	dev, err := ili93xx.New(&data, &ili93xx.ControlPins{CS: cs, CD: cd, WR: wr, RD: rd, RST: rst}, &opts)
	if err != nil {
		return err
	}
	var dst display.Drawer = dev
	if *httpAddr != "" {
		m, err := panelview.New(dev, nil)
		if err != nil {
			return err
		}
		dst = m
		go func() {
			log.Printf("http: %v", http.ListenAndServe(*httpAddr, m))
		}()
	}
	defer dst.Halt()
	log.Printf("display: %s", dst)

	panel, err := lcdtouch.NewGPIOPanel(&lcdtouch.Pins{XP: lines[7], XM: wr, YP: cd, YM: lines[6]})
	if err != nil {
		return err
	}
	adcX, adcY, err := touchADC(*adcCLK, *adcCS, *adcDI, *adcDO)
	if err != nil {
		return err
	}
	t, err := lcdtouch.New(panel, adcX, adcY, &lcdtouch.DefaultOpts)
	if err != nil {
		return err
	}
	defer t.Halt()
	if err := panel.Watch(t); err != nil {
		return err
	}

	c, err := touchdraw.New(dst, t, nil)
	if err != nil {
		return err
	}
	if err := c.Clear(); err != nil {
		return err
	}
	log.Printf("touch: %s", t)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	tick := time.NewTicker(*interval)
	defer tick.Stop()
	strokes := t.Strokes()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
		}
		if err := c.Poll(t); err != nil {
			return err
		}
		if n := t.Strokes(); *verbose && n != strokes {
			strokes = n
			log.Printf("stroke %d", n)
		}
	}
}

func main() {
	if err := mainImpl(); err != nil {
		log.Fatalf("touchpaint: %v", err)
	}
}
