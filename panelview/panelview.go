// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package panelview mirrors a display to web browsers.
//
// A Mirror is a display.Drawer placed in front of the real panel. Every Draw
// is forwarded to the panel and copied, with the panel's color model applied,
// into a frame served over HTTP as a never-ending multipart stream of PNG
// images ("MJPEG" style). Browsers show it in a plain <img> tag.
package panelview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"sync"
	"time"

	"periph.io/x/conn/v3/display"
)

// Opts defines the mirror.
type Opts struct {
	// Width and Height are used when there is no panel to mirror.
	Width, Height int
	// Compression of the PNG frames.
	Compression png.CompressionLevel
	// MinInterval is the minimum delay between two frames sent to a client.
	// Changes in between are coalesced.
	MinInterval time.Duration
}

// DefaultOpts favors latency over bandwidth, a local network is assumed.
var DefaultOpts = Opts{
	Compression: png.BestSpeed,
	MinInterval: 40 * time.Millisecond,
}

// Mirror is a display.Drawer copying everything drawn on it.
type Mirror struct {
	panel display.Drawer
	opts  Opts
	enc   png.Encoder

	mu      sync.Mutex
	frame   *image.RGBA
	seq     uint64
	encoded []byte
	encSeq  uint64
	changed chan struct{}
	halted  bool
}

// New returns a Mirror of panel. panel may be nil, in which case the mirror
// is a display of its own, sized by opts.
func New(panel display.Drawer, opts *Opts) (*Mirror, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	r := image.Rect(0, 0, opts.Width, opts.Height)
	if panel != nil {
		r = panel.Bounds()
	}
	if r.Empty() {
		return nil, errors.New("panelview: empty frame")
	}
	m := &Mirror{
		panel:   panel,
		opts:    *opts,
		enc:     png.Encoder{CompressionLevel: opts.Compression},
		frame:   image.NewRGBA(r),
		seq:     1,
		changed: make(chan struct{}),
	}
	// Start opaque black like a panel that was just powered.
	draw.Draw(m.frame, r, image.Black, image.Point{}, draw.Src)
	return m, nil
}

func (m *Mirror) String() string {
	if m.panel == nil {
		return fmt.Sprintf("panelview{%dx%d}", m.frame.Rect.Dx(), m.frame.Rect.Dy())
	}
	return fmt.Sprintf("panelview{%s}", m.panel)
}

// Halt implements conn.Resource.
//
// It ends the streams in progress and halts the panel.
func (m *Mirror) Halt() error {
	m.mu.Lock()
	if !m.halted {
		m.halted = true
		close(m.changed)
	}
	m.mu.Unlock()
	if m.panel != nil {
		return m.panel.Halt()
	}
	return nil
}

// ColorModel implements display.Drawer.
func (m *Mirror) ColorModel() color.Model {
	if m.panel != nil {
		return m.panel.ColorModel()
	}
	return color.RGBAModel
}

// Bounds implements display.Drawer.
func (m *Mirror) Bounds() image.Rectangle {
	return m.frame.Rect
}

// Draw implements display.Drawer.
//
// The frame is updated even if the panel fails, the error is returned.
func (m *Mirror) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	var err error
	if m.panel != nil {
		err = m.panel.Draw(r, src, sp)
	}
	dst := r.Intersect(m.frame.Rect)
	if dst.Empty() {
		return err
	}
	sp = sp.Add(dst.Min.Sub(r.Min))
	model := m.ColorModel()

	m.mu.Lock()
	defer m.mu.Unlock()
	if model == color.RGBAModel {
		draw.Draw(m.frame, dst, src, sp, draw.Src)
	} else {
		for y := 0; y < dst.Dy(); y++ {
			for x := 0; x < dst.Dx(); x++ {
				m.frame.Set(dst.Min.X+x, dst.Min.Y+y, model.Convert(src.At(sp.X+x, sp.Y+y)))
			}
		}
	}
	m.seq++
	if !m.halted {
		close(m.changed)
		m.changed = make(chan struct{})
	}
	return err
}

// Snapshot returns the current frame as PNG and its sequence number.
//
// The encoding is cached until the next Draw. The returned slice must not be
// modified.
func (m *Mirror) Snapshot() ([]byte, uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.encSeq != m.seq {
		var buf bytesWriter
		if err := m.enc.Encode(&buf, m.frame); err != nil {
			return nil, 0, fmt.Errorf("panelview: %w", err)
		}
		m.encoded = buf
		m.encSeq = m.seq
	}
	return m.encoded, m.seq, nil
}

// wait returns a channel closed on the next change after seq, or nil if seq
// is already stale.
func (m *Mirror) wait(seq uint64) (<-chan struct{}, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if seq != m.seq {
		return nil, m.halted
	}
	return m.changed, m.halted
}

// bytesWriter is an io.Writer appending to a fresh slice, so the cached
// snapshot never aliases a buffer being written to.
type bytesWriter []byte

func (b *bytesWriter) Write(p []byte) (int, error) {
	*b = append(*b, p...)
	return len(p), nil
}

var _ display.Drawer = &Mirror{}
