package jpeg

// support for reading (not interpreting) a JPEG APP0 (JFIF) segment

import "bytes"

func markerAPP0discriminator(h5 []byte) int {
	if bytes.Equal(h5, []byte("JFIF\x00")) {
		return 0
	}
	return -1
}

// parseJFIFAPP0 reads the fixed-position JFIF fields out of an APP0
// payload (SPEC_FULL.md §4.2): version, density unit, H/V density, and
// thumbnail pixel size. It does not decode an embedded thumbnail and
// does not act on any field — these are surfaced read-only, the way
// they would otherwise just be skipped as part of the segment's length.
// A payload that isn't a JFIF APP0 (e.g. a JFXX extension, or a vendor
// APP0) yields a JFIFInfo with Present == false.
func parseJFIFAPP0(payload []byte) *JFIFInfo {
	if len(payload) < 14 {
		return &JFIFInfo{}
	}
	if markerAPP0discriminator(payload[0:5]) != 0 {
		return &JFIFInfo{}
	}
	return &JFIFInfo{
		Present:      true,
		VersionMajor: payload[5],
		VersionMinor: payload[6],
		DensityUnit:  payload[7],
		DensityX:     uint16(payload[8])<<8 | uint16(payload[9]),
		DensityY:     uint16(payload[10])<<8 | uint16(payload[11]),
		ThumbW:       payload[12],
		ThumbH:       payload[13],
	}
}

// JFIFInfo returns the JFIF APP0 fields seen during ParseHeaders, or a
// zero-value JFIFInfo if no such segment was present.
func (d *Decoder) JFIFInfo() JFIFInfo {
	if d.jfif == nil {
		return JFIFInfo{}
	}
	return *d.jfif
}
