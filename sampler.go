package jpeg

import "fmt"

// SubsamplingFormat names one of the four supported chroma layouts plus
// grayscale, dispatched once per MCU via a tagged variant rather than a
// function pointer per spec.md's design notes.
type SubsamplingFormat int

const (
	Gray444 SubsamplingFormat = iota // single luma block only
	Sampling444
	Sampling422
	Sampling440
	Sampling420
)

// DetectSubsampling maps component count and per-component (H,V)
// sampling factors to one of the five supported kernels, failing for any
// combination outside that set.
func DetectSubsampling(nComp int, hMax, vMax int, compH, compV []int) (SubsamplingFormat, error) {
	if nComp == 1 {
		return Gray444, nil
	}
	if nComp != 3 {
		return 0, newError(UnsupportedFeature, "DetectSubsampling", fmt.Errorf("unsupported component count %d", nComp))
	}
	// Luma (component 0) carries the sampling factors; chroma components
	// must both be 1x1.
	if compH[1] != 1 || compV[1] != 1 || compH[2] != 1 || compV[2] != 1 {
		return 0, newError(UnsupportedFeature, "DetectSubsampling", fmt.Errorf("unsupported chroma sampling %v/%v", compH, compV))
	}
	switch {
	case compH[0] == 1 && compV[0] == 1:
		return Sampling444, nil
	case compH[0] == 2 && compV[0] == 1:
		return Sampling422, nil
	case compH[0] == 1 && compV[0] == 2:
		return Sampling440, nil
	case compH[0] == 2 && compV[0] == 2:
		return Sampling420, nil
	default:
		return 0, newError(UnsupportedFeature, "DetectSubsampling", fmt.Errorf("unsupported luma sampling %d/%d", compH[0], compV[0]))
	}
}

// writeMCU walks one decoded MCU according to fmtKind and writes its pixel
// rectangle into out at byte offset start, using rowStride bytes per
// output scanline (rowStride == W*3 for the full image).
func writeMCU(fmtKind SubsamplingFormat, mcu *MCU, out []byte, start, rowStride int) {
	switch fmtKind {
	case Gray444:
		writeGray(mcu, out, start, rowStride)
	case Sampling444:
		write444(mcu, out, start, rowStride)
	case Sampling422:
		write422(mcu, out, start, rowStride)
	case Sampling440:
		write440(mcu, out, start, rowStride)
	case Sampling420:
		write420(mcu, out, start, rowStride)
	}
}

func putPixel(out []byte, offset int, y, cb, cr int32) {
	r, g, b := YCbCrToRGB(y, cb, cr)
	out[offset] = r
	out[offset+1] = g
	out[offset+2] = b
}

func writeGray(mcu *MCU, out []byte, start, rowStride int) {
	yB := &mcu.blocks[0][0]
	for row := 0; row < 8; row++ {
		rowOff := start + row*rowStride
		for col := 0; col < 8; col++ {
			putPixel(out, rowOff+col*3, int32(yB.coeff[row*8+col]), 128, 128)
		}
	}
}

func write444(mcu *MCU, out []byte, start, rowStride int) {
	yB, cbB, crB := &mcu.blocks[0][0], &mcu.blocks[1][0], &mcu.blocks[2][0]
	for row := 0; row < 8; row++ {
		rowOff := start + row*rowStride
		for col := 0; col < 8; col++ {
			i := row*8 + col
			putPixel(out, rowOff+col*3, int32(yB.coeff[i]), int32(cbB.coeff[i]), int32(crB.coeff[i]))
		}
	}
}

// write422 covers a 16x8 MCU: Y0 (left half), Y1 (right half), Cb, Cr,
// each chroma sample shared by the two horizontally adjacent luma
// samples it was averaged from at encode time.
func write422(mcu *MCU, out []byte, start, rowStride int) {
	y0, y1, cbB, crB := &mcu.blocks[0][0], &mcu.blocks[0][1], &mcu.blocks[1][0], &mcu.blocks[2][0]
	for row := 0; row < 8; row++ {
		rowOff := start + row*rowStride
		for col := 0; col < 16; col++ {
			yB := y0
			if col >= 8 {
				yB = y1
			}
			c := row*8 + col/2
			putPixel(out, rowOff+col*3, int32(yB.coeff[row*8+col%8]), int32(cbB.coeff[c]), int32(crB.coeff[c]))
		}
	}
}

// write440 covers an 8x16 MCU: Y0 (top half), Y1 (bottom half), Cb, Cr,
// each chroma row shared by the two vertically adjacent luma rows it
// was averaged from at encode time.
func write440(mcu *MCU, out []byte, start, rowStride int) {
	y0, y1, cbB, crB := &mcu.blocks[0][0], &mcu.blocks[0][1], &mcu.blocks[1][0], &mcu.blocks[2][0]
	for row := 0; row < 16; row++ {
		rowOff := start + row*rowStride
		yB := y0
		if row >= 8 {
			yB = y1
		}
		for col := 0; col < 8; col++ {
			c := (row/2)*8 + col
			putPixel(out, rowOff+col*3, int32(yB.coeff[(row%8)*8+col]), int32(cbB.coeff[c]), int32(crB.coeff[c]))
		}
	}
}

// write420 covers a 16x16 MCU: Y0 top-left, Y1 top-right, Y2
// bottom-left, Y3 bottom-right, each chroma sample shared by the 2x2
// luma quad it was averaged from at encode time.
func write420(mcu *MCU, out []byte, start, rowStride int) {
	y0, y1, y2, y3 := &mcu.blocks[0][0], &mcu.blocks[0][1], &mcu.blocks[0][2], &mcu.blocks[0][3]
	cbB, crB := &mcu.blocks[1][0], &mcu.blocks[2][0]

	quad := [4]*SampleBlock{y0, y1, y2, y3}
	for by := 0; by < 2; by++ {
		for bx := 0; bx < 2; bx++ {
			yB := quad[by*2+bx]
			for row := 0; row < 8; row++ {
				outRow := start + (by*8+row)*rowStride
				for col := 0; col < 8; col++ {
					// Each chroma sample in its own 8x8 block covers a
					// 2x2 luma quad; by/bx select which quadrant of the
					// 16x16 luma rectangle this block occupies, so the
					// chroma lookup offsets by the quadrant's half-block.
					cbIdx := (by*4+row/2)*8 + (bx*4 + col/2)
					cb := int32(cbB.coeff[cbIdx])
					cr := int32(crB.coeff[cbIdx])
					putPixel(out, outRow+col*3, int32(yB.coeff[row*8+col]), cb, cr)
				}
			}
		}
	}
}
