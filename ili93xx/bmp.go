// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ili93xx

import (
	"fmt"
	"image"
	"io"
	"os"

	"golang.org/x/image/bmp"
)

// DrawBMP decodes a BMP picture from r and draws it with its top left corner
// at at. The part outside the screen is clipped.
func (d *Dev) DrawBMP(r io.Reader, at image.Point) error {
	img, err := bmp.Decode(r)
	if err != nil {
		return fmt.Errorf("ili93xx: %w", err)
	}
	b := img.Bounds()
	return d.Draw(image.Rectangle{Min: at, Max: at.Add(b.Size())}, img, b.Min)
}

// DrawBMPFile is DrawBMP on the file name.
func (d *Dev) DrawBMPFile(name string, at image.Point) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return d.DrawBMP(f, at)
}
