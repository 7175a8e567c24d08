package jpeg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuantizationTableZigZagReorder(t *testing.T) {
	var zz [64]uint16
	for i := range zz {
		zz[i] = uint16(i)
	}
	q := NewQuantizationTable(zz)
	// The zig-zag-order value at position i must land at its natural
	// (row-major) index.
	for i, naturalIdx := range zigZagOrder {
		require.EqualValues(t, i, q.At(naturalIdx))
	}
}

func TestDequantizeIsElementwise(t *testing.T) {
	var zz [64]uint16
	for i := range zz {
		zz[i] = 2
	}
	q := NewQuantizationTable(zz)

	var b SampleBlock
	for i := range b.coeff {
		b.coeff[i] = int16(i)
	}
	pre := b.coeff
	b.Dequantize(q)
	for i := range b.coeff {
		require.EqualValues(t, int32(pre[i])*2, int32(b.coeff[i]))
	}
}
