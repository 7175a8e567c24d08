package jpeg

import (
	"fmt"
	"io"
)

var markerNames = map[int]string{
	_SOI: "SOI", _EOI: "EOI", _SOS: "SOS", _DQT: "DQT", _DHT: "DHT",
	_DNL: "DNL", _DRI: "DRI", _DHP: "DHP", _EXP: "EXP", _SOF0: "SOF0",
	_COM: "COM",
}

// markerName returns a short mnemonic for a marker, falling back to a
// generic "APPn"/"RESn" label or the raw hex value for anything this
// decoder doesn't act on but still reports while scanning headers.
func markerName(m int) string {
	if name, ok := markerNames[m]; ok {
		return name
	}
	if name, ok := unsupportedSOF[m]; ok {
		return fmt.Sprintf("SOF(%s)", name)
	}
	if m >= 0xffe0 && m <= 0xffef {
		return fmt.Sprintf("APP%d", m-0xffe0)
	}
	if m >= 0xfff0 && m <= 0xfffd {
		return fmt.Sprintf("RES%d", m-0xfff0)
	}
	return fmt.Sprintf("%#04x", m)
}

// DescribeMarkers writes one line per marker seen during ParseHeaders,
// in the order encountered (SPEC_FULL.md §4.1): diagnostics only, it
// does not drive the pixel pipeline.
func (d *Decoder) DescribeMarkers(w io.Writer) (int, error) {
	cw := &cumulativeWriter{w: w}
	for _, mi := range d.markers {
		fmt.Fprintf(cw, "%-8s offset=%-8d length=%d\n", markerName(mi.marker), mi.offset, mi.length)
	}
	return int(cw.total), cw.err
}
