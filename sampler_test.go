package jpeg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fillBlock(b *SampleBlock, v int16) {
	for i := range b.coeff {
		b.coeff[i] = v
	}
}

func TestWriteGrayKernel(t *testing.T) {
	mcu := &MCU{blocks: [][]SampleBlock{make([]SampleBlock, 1)}}
	fillBlock(&mcu.blocks[0][0], 128)

	out := make([]byte, 8*8*3)
	writeMCU(Gray444, mcu, out, 0, 8*3)
	for i := 0; i < len(out); i += 3 {
		require.EqualValues(t, 128, out[i])
		require.EqualValues(t, 128, out[i+1])
		require.EqualValues(t, 128, out[i+2])
	}
}

func TestWrite422Kernel(t *testing.T) {
	mcu := &MCU{blocks: [][]SampleBlock{make([]SampleBlock, 2), make([]SampleBlock, 1), make([]SampleBlock, 1)}}
	fillBlock(&mcu.blocks[0][0], 200) // Y0 (left)
	fillBlock(&mcu.blocks[0][1], 50)  // Y1 (right)
	fillBlock(&mcu.blocks[1][0], 128) // Cb
	fillBlock(&mcu.blocks[2][0], 128) // Cr

	rowStride := 16 * 3
	out := make([]byte, rowStride*8)
	writeMCU(Sampling422, mcu, out, 0, rowStride)

	for row := 0; row < 8; row++ {
		rowOff := row * rowStride
		for col := 0; col < 8; col++ {
			i := rowOff + col*3
			require.EqualValuesf(t, 200, out[i], "row=%d col=%d", row, col)
		}
		for col := 8; col < 16; col++ {
			i := rowOff + col*3
			require.EqualValuesf(t, 50, out[i], "row=%d col=%d", row, col)
		}
	}
}

func TestWrite420Kernel(t *testing.T) {
	mcu := &MCU{blocks: [][]SampleBlock{make([]SampleBlock, 4), make([]SampleBlock, 1), make([]SampleBlock, 1)}}
	fillBlock(&mcu.blocks[0][0], 10) // Y0 top-left
	fillBlock(&mcu.blocks[0][1], 20) // Y1 top-right
	fillBlock(&mcu.blocks[0][2], 30) // Y2 bottom-left
	fillBlock(&mcu.blocks[0][3], 40) // Y3 bottom-right
	fillBlock(&mcu.blocks[1][0], 128)
	fillBlock(&mcu.blocks[2][0], 128)

	rowStride := 16 * 3
	out := make([]byte, rowStride*16)
	writeMCU(Sampling420, mcu, out, 0, rowStride)

	check := func(row, col int, want byte) {
		i := row*rowStride + col*3
		require.EqualValuesf(t, want, out[i], "row=%d col=%d", row, col)
	}
	check(0, 0, 10)
	check(0, 15, 20)
	check(15, 0, 30)
	check(15, 15, 40)
}

func TestDetectSubsampling(t *testing.T) {
	f, err := DetectSubsampling(1, 1, 1, []int{1}, []int{1})
	require.NoError(t, err)
	require.Equal(t, Gray444, f)

	f, err = DetectSubsampling(3, 2, 2, []int{2, 1, 1}, []int{2, 1, 1})
	require.NoError(t, err)
	require.Equal(t, Sampling420, f)

	_, err = DetectSubsampling(3, 1, 1, []int{1, 2, 1}, []int{1, 1, 1})
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	require.Equal(t, UnsupportedFeature, de.Kind)
}
