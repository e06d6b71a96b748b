// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package panelview

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"
)

// newBoundary returns a random MIME multipart boundary (RFC 2046 5.1.1).
func newBoundary() string {
	var b [24]byte
	if _, err := io.ReadFull(rand.Reader, b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

// partWriter writes PNG parts of a multipart/x-mixed-replace body. Each part
// is followed by its closing boundary so the browser shows it immediately.
type partWriter struct {
	w        *bufio.Writer
	boundary string
}

func (p *partWriter) contentType() string {
	return mime.FormatMediaType("multipart/x-mixed-replace", map[string]string{"boundary": p.boundary})
}

func (p *partWriter) write(img []byte) error {
	fmt.Fprintf(p.w, "Content-Type: image/png\r\nContent-Length: %d\r\n\r\n", len(img))
	_, _ = p.w.Write(img)
	fmt.Fprintf(p.w, "\r\n--%s\r\n", p.boundary)
	return p.w.Flush()
}

// ServeHTTP implements http.Handler.
//
// A GET request receives the current frame and then a new one after each
// change, at most one per Opts.MinInterval, until the client goes away or
// the Mirror is halted.
func (m *Mirror) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "panelview: only GET is supported", http.StatusMethodNotAllowed)
		return
	}
	pw := &partWriter{w: bufio.NewWriter(w), boundary: newBoundary()}
	w.Header().Set("Content-Type", pw.contentType())
	w.Header().Set("Cache-Control", "no-store")
	fmt.Fprintf(pw.w, "--%s\r\n", pw.boundary)

	flusher, _ := w.(http.Flusher)
	for {
		img, seq, err := m.Snapshot()
		if err != nil {
			return
		}
		if err := pw.write(img); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
		changed, halted := m.wait(seq)
		if halted {
			return
		}
		if changed != nil {
			select {
			case <-changed:
			case <-r.Context().Done():
				return
			}
		}
		if m.opts.MinInterval > 0 {
			select {
			case <-time.After(m.opts.MinInterval):
			case <-r.Context().Done():
				return
			}
		}
	}
}

var _ http.Handler = &Mirror{}
