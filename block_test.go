package jpeg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDCPredictorAccumulates(t *testing.T) {
	dc := buildSingleSymbolHuffman(t, 0, 4) // category 4 codeword "0"
	ac := buildSingleSymbolHuffman(t, 1, 0x00)
	var zz [64]uint16
	for i := range zz {
		zz[i] = 1
	}
	quant := NewQuantizationTable(zz)

	comp := componentPlan{hSamp: 1, vSamp: 1, quantTab: quant, dcTable: dc, acTable: ac}

	w := &bitWriter{}
	w.writeBits(0, 1)      // DC codeword
	w.writeBits(0b1000, 4) // +8
	w.writeBits(0, 1)      // EOB
	w.writeBits(0, 1)      // DC codeword
	w.writeBits(0b1000, 4) // +8 again (delta, not absolute)
	w.writeBits(0, 1)      // EOB
	data := w.flush()

	r := NewBitStreamReader(data, 0)
	var b1, b2 SampleBlock
	require.NoError(t, decodeBlock(r, &comp, &b1))
	require.EqualValues(t, 8, comp.lastDC)
	require.NoError(t, decodeBlock(r, &comp, &b2))
	require.EqualValues(t, 16, comp.lastDC)
}

func buildSingleSymbolHuffman(t *testing.T, tc, value byte) *HuffmanTable {
	t.Helper()
	var bits [16]byte
	bits[0] = 1
	h, err := NewHuffmanTable(bits, []byte{value})
	require.NoError(t, err)
	return h
}
