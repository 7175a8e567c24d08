package jpeg

import (
	"encoding/binary"
	"fmt"

	"go.uber.org/zap"
)

// Marker byte values this decoder recognizes, the baseline-relevant
// subset of the teacher's full marker table (jpeg.go's _SOI.._COM
// block); markers for progressive/arithmetic/lossless/hierarchical
// frames are kept only so the driver can name them in an
// UnsupportedFeature error instead of failing with a bare "bad marker".
const (
	_SOI  = 0xffd8
	_EOI  = 0xffd9
	_SOS  = 0xffda
	_DQT  = 0xffdb
	_DNL  = 0xffdc
	_DRI  = 0xffdd
	_DHP  = 0xffde
	_EXP  = 0xffdf
	_DHT  = 0xffc4
	_SOF0 = 0xffc0 // baseline sequential DCT, Huffman coding: the only SOF this decoder accepts
	_COM  = 0xfffe
)

var unsupportedSOF = map[int]string{
	0xffc1: "extended sequential DCT",
	0xffc2: "progressive DCT",
	0xffc3: "lossless sequential",
	0xffc5: "differential sequential DCT",
	0xffc6: "differential progressive DCT",
	0xffc7: "differential lossless",
	0xffc9: "arithmetic extended sequential DCT",
	0xffca: "arithmetic progressive DCT",
	0xffcb: "arithmetic lossless",
	0xffcd: "arithmetic differential sequential DCT",
	0xffce: "arithmetic differential progressive DCT",
	0xffcf: "arithmetic differential lossless",
}

// Component is one SOF0 component descriptor: its id, H/V sampling
// factors, and the index of the quantization table it uses.
type Component struct {
	ID      byte
	HSamp   byte
	VSamp   byte
	QuantID byte
}

// FrameHeader is the parsed SOF0 segment: image dimensions and the
// per-component descriptors needed to build the scan's MCU geometry.
type FrameHeader struct {
	Precision  byte
	Width      int
	Height     int
	Components []Component
}

// markerInfo records one marker seen while scanning headers, the data
// DescribeMarkers reports back to a caller (SPEC_FULL.md §4.1).
type markerInfo struct {
	marker int
	offset int
	length int
}

// Decoder holds everything parse_headers collects from a JPEG byte
// slice and decode needs to produce the RGB raster: frame geometry,
// quantization and Huffman tables, and the byte offset the first scan's
// entropy-coded segment starts at.
type Decoder struct {
	data    []byte
	control *Control
	logger  *zap.Logger

	frame   *FrameHeader
	quant   map[int]*QuantizationTable
	dcTabs  map[int]*HuffmanTable
	acTabs  map[int]*HuffmanTable
	scanIDs []scanComponentRef // per-scan-component Td/Ta/Cs, in scan order
	ecsPos  int                // byte offset of the entropy-coded segment following SOS

	jfif          *JFIFInfo
	markers       []markerInfo
	headersParsed bool
}

type scanComponentRef struct {
	componentID byte
	dcTableID   byte
	acTableID   byte
}

// JFIFInfo is the read-only sliver of an APP0/JFIF segment this decoder
// surfaces (SPEC_FULL.md §4.2): it does not interpret or act on the
// data, only exposes fields that were going to be skipped "by length"
// anyway.
type JFIFInfo struct {
	Present           bool
	VersionMajor      byte
	VersionMinor      byte
	DensityUnit       byte
	DensityX, DensityY uint16
	ThumbW, ThumbH    byte
}

// Load wraps a JPEG byte slice for header parsing and decode. It
// performs no parsing itself; equivalent to the spec's load(bytes).
func Load(data []byte, control *Control) *Decoder {
	if control == nil {
		control = DefaultControl()
	}
	return &Decoder{
		data:    data,
		control: control,
		logger:  nopLogger(),
		quant:   make(map[int]*QuantizationTable),
		dcTabs:  make(map[int]*HuffmanTable),
		acTabs:  make(map[int]*HuffmanTable),
	}
}

// SetLogger attaches a structured logger; tracing detail is still gated
// by the Decoder's Control.
func (d *Decoder) SetLogger(l *zap.Logger) {
	if l == nil {
		l = nopLogger()
	}
	d.logger = l
}

// ParseHeaders scans markers up to and including SOS, populating the
// frame geometry, quantization and Huffman tables, and records the byte
// offset of the entropy-coded segment. It returns the image width,
// height, and the number of bytes decode's output buffer must provide.
func (d *Decoder) ParseHeaders() (width, height, bytesNeeded int, err error) {
	pos := 0
	if len(d.data) < 2 {
		return 0, 0, 0, newError(TruncatedInput, "ParseHeaders", fmt.Errorf("input shorter than SOI"))
	}
	if marker16(d.data, 0) != _SOI {
		return 0, 0, 0, newError(BadMarker, "ParseHeaders", fmt.Errorf("missing SOI"))
	}
	pos = 2
	d.markers = append(d.markers, markerInfo{_SOI, 0, 2})

markerLoop:
	for {
		if pos+2 > len(d.data) {
			return 0, 0, 0, newError(TruncatedInput, "ParseHeaders", fmt.Errorf("truncated before next marker"))
		}
		m := marker16(d.data, pos)
		if m>>8 != 0xff {
			return 0, 0, 0, newError(BadMarker, "ParseHeaders", fmt.Errorf("expected marker at offset %d, got %#04x", pos, m))
		}
		markerStart := pos
		pos += 2

		switch m {
		case _EOI:
			return 0, 0, 0, newError(BadMarker, "ParseHeaders", fmt.Errorf("EOI before SOS"))
		case _SOS:
			segLen, err := readSegLen(d.data, pos)
			if err != nil {
				return 0, 0, 0, err
			}
			if err := d.parseSOS(d.data[pos+2 : pos+segLen]); err != nil {
				return 0, 0, 0, err
			}
			d.ecsPos = pos + segLen
			if d.control.Markers {
				d.logger.Debug("marker", zap.String("name", markerName(m)), zap.Int("offset", markerStart), zap.Int("length", segLen+2))
			}
			d.markers = append(d.markers, markerInfo{m, markerStart, segLen + 2})
			break markerLoop
		case _DHP, _EXP:
			return 0, 0, 0, newError(UnsupportedFeature, "ParseHeaders", fmt.Errorf("hierarchical frame (DHP) not supported"))
		case _DRI:
			return 0, 0, 0, newError(UnsupportedFeature, "ParseHeaders", fmt.Errorf("restart intervals not supported"))
		case _SOF0:
			segLen, err := readSegLen(d.data, pos)
			if err != nil {
				return 0, 0, 0, err
			}
			if err := d.parseSOF(d.data[pos+2 : pos+segLen]); err != nil {
				return 0, 0, 0, err
			}
			if d.control.Markers {
				d.logger.Debug("marker", zap.String("name", markerName(m)), zap.Int("offset", markerStart), zap.Int("length", segLen+2))
			}
			d.markers = append(d.markers, markerInfo{m, markerStart, segLen + 2})
			pos += segLen
		default:
			if name, bad := unsupportedSOF[m]; bad {
				return 0, 0, 0, newError(UnsupportedFeature, "ParseHeaders", fmt.Errorf("%s (marker %#04x) not supported", name, m))
			}
			segLen, err := readSegLen(d.data, pos)
			if err != nil {
				return 0, 0, 0, err
			}
			payload := d.data[pos+2 : pos+segLen]
			switch m {
			case _DQT:
				tabs, err := parseDQT(payload)
				if err != nil {
					return 0, 0, 0, err
				}
				for id, t := range tabs {
					d.quant[id] = t
				}
			case _DHT:
				if err := d.parseDHT(payload); err != nil {
					return 0, 0, 0, err
				}
			case 0xffe0:
				d.jfif = parseJFIFAPP0(payload)
			}
			if d.control.Markers {
				d.logger.Debug("marker", zap.String("name", markerName(m)), zap.Int("offset", markerStart), zap.Int("length", segLen+2))
			}
			d.markers = append(d.markers, markerInfo{m, markerStart, segLen + 2})
			pos += segLen
		}
	}

	if d.frame == nil {
		return 0, 0, 0, newError(BadMarker, "ParseHeaders", fmt.Errorf("no SOF0 before SOS"))
	}
	if len(d.scanIDs) != len(d.frame.Components) {
		return 0, 0, 0, newError(UnsupportedFeature, "ParseHeaders", fmt.Errorf("scan covers %d of %d components; multi-scan images not supported", len(d.scanIDs), len(d.frame.Components)))
	}
	d.headersParsed = true
	width = d.frame.Width
	height = d.frame.Height
	bytesNeeded = width * height * 3
	return width, height, bytesNeeded, nil
}

func marker16(data []byte, pos int) int {
	return int(data[pos])<<8 | int(data[pos+1])
}

// readSegLen reads the two-byte big-endian length field (which includes
// itself) immediately following a marker at pos, validating that the
// full segment fits within data.
func readSegLen(data []byte, pos int) (int, error) {
	if pos+2 > len(data) {
		return 0, newError(TruncatedInput, "readSegLen", fmt.Errorf("truncated segment length at offset %d", pos))
	}
	segLen := int(binary.BigEndian.Uint16(data[pos:]))
	if pos+segLen > len(data) {
		return 0, newError(TruncatedInput, "readSegLen", fmt.Errorf("segment at %d exceeds input", pos))
	}
	return segLen, nil
}

func (d *Decoder) parseSOF(payload []byte) error {
	if len(payload) < 6 {
		return newError(TruncatedInput, "parseSOF", fmt.Errorf("SOF0 too short"))
	}
	precision := payload[0]
	if precision != 8 {
		return newError(UnsupportedFeature, "parseSOF", fmt.Errorf("sample precision %d not supported", precision))
	}
	height := int(binary.BigEndian.Uint16(payload[1:]))
	width := int(binary.BigEndian.Uint16(payload[3:]))
	nf := int(payload[5])
	if nf != 1 && nf != 3 {
		return newError(UnsupportedFeature, "parseSOF", fmt.Errorf("component count %d not supported", nf))
	}
	if len(payload) < 6+3*nf {
		return newError(TruncatedInput, "parseSOF", fmt.Errorf("SOF0 component list truncated"))
	}
	comps := make([]Component, nf)
	for i := 0; i < nf; i++ {
		base := 6 + 3*i
		comps[i] = Component{
			ID:      payload[base],
			HSamp:   payload[base+1] >> 4,
			VSamp:   payload[base+1] & 0x0f,
			QuantID: payload[base+2],
		}
	}
	d.frame = &FrameHeader{Precision: precision, Width: width, Height: height, Components: comps}
	return nil
}

func (d *Decoder) parseDHT(payload []byte) error {
	pos := 0
	for pos < len(payload) {
		tcth := payload[pos]
		tc := tcth >> 4
		th := int(tcth & 0x0f)
		pos++
		if pos+16 > len(payload) {
			return newError(TruncatedInput, "parseDHT", fmt.Errorf("DHT bit-length list truncated"))
		}
		var bitsCount [16]byte
		copy(bitsCount[:], payload[pos:pos+16])
		pos += 16
		total := 0
		for _, c := range bitsCount {
			total += int(c)
		}
		if pos+total > len(payload) {
			return newError(TruncatedInput, "parseDHT", fmt.Errorf("DHT symbol list truncated"))
		}
		values := make([]byte, total)
		copy(values, payload[pos:pos+total])
		pos += total

		table, err := NewHuffmanTable(bitsCount, values)
		if err != nil {
			return err
		}
		if tc == 0 {
			d.dcTabs[th] = table
		} else {
			d.acTabs[th] = table
		}
	}
	return nil
}

func (d *Decoder) parseSOS(payload []byte) error {
	if len(payload) < 1 {
		return newError(TruncatedInput, "parseSOS", fmt.Errorf("SOS too short"))
	}
	ns := int(payload[0])
	if len(payload) < 1+2*ns+3 {
		return newError(TruncatedInput, "parseSOS", fmt.Errorf("SOS component list truncated"))
	}
	refs := make([]scanComponentRef, ns)
	for i := 0; i < ns; i++ {
		base := 1 + 2*i
		refs[i] = scanComponentRef{
			componentID: payload[base],
			dcTableID:   payload[base+1] >> 4,
			acTableID:   payload[base+1] & 0x0f,
		}
	}
	ss := payload[1+2*ns]
	se := payload[1+2*ns+1]
	ahal := payload[1+2*ns+2]
	if ss != 0 || se != 63 || ahal != 0 {
		return newError(UnsupportedFeature, "parseSOS", fmt.Errorf("non-baseline scan parameters Ss=%d Se=%d AhAl=%#02x", ss, se, ahal))
	}
	d.scanIDs = refs
	return nil
}
