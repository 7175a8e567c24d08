// Package jpeg decodes a baseline (sequential DCT, Huffman-coded) JPEG
// into an interleaved 8-bit RGB raster.
//
// ISO/IEC 10918-1:1993 (ITU-T T.81) defines far more than this package
// implements: progressive and lossless frames, arithmetic coding,
// hierarchical frames with DHP/EXP, and restart markers. This package
// covers only the non-hierarchical, Huffman-coded, sequential DCT case
// (SOF0), which is what the overwhelming majority of JPEG files in the
// wild actually use.
//
//	SOI <tables> SOF0 <tables> SOS <entropy-coded data> EOI
//
// Tables (APPn, DQT, DHT) may appear between SOI and SOF0 or between
// SOF0 and SOS. Exactly one scan is supported; anything implying a
// second scan, a restart interval, or a hierarchical frame is reported
// as UnsupportedFeature rather than silently ignored.
package jpeg

import (
	"bufio"
	"fmt"
	"io"
)

// Decode is the convenience entry point combining Load, ParseHeaders and
// Decode into a single call: it parses data fully and returns an RGB8
// raster sized width*height*3.
func Decode(data []byte, control *Control) (pix []byte, width, height int, err error) {
	d := Load(data, control)
	w, h, n, err := d.ParseHeaders()
	if err != nil {
		return nil, 0, 0, err
	}
	pix = make([]byte, n)
	if err := d.Decode(pix); err != nil {
		return nil, 0, 0, err
	}
	return pix, w, h, nil
}

// WritePPM writes pix (an interleaved RGB8 raster of the given
// dimensions) as a plain-text PPM (P3) image, the CLI's external output
// format (SPEC_FULL.md §4.5): "P3\n{W} {H}\n255\n<decimal samples>".
func WritePPM(w io.Writer, pix []byte, width, height int) error {
	if len(pix) < width*height*3 {
		return newError(BufferTooSmall, "WritePPM", fmt.Errorf("raster shorter than %dx%dx3", width, height))
	}
	bw := bufio.NewWriter(w)
	cw := &cumulativeWriter{w: bw}
	fmt.Fprintf(cw, "P3\n%d %d\n255\n", width, height)
	for row := 0; row < height; row++ {
		base := row * width * 3
		for col := 0; col < width; col++ {
			i := base + col*3
			fmt.Fprintf(cw, "%d %d %d\n", pix[i], pix[i+1], pix[i+2])
		}
	}
	if cw.err != nil {
		return newError(LogicError, "WritePPM", cw.err)
	}
	return bw.Flush()
}
