package jpeg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildGrayJPEG constructs a minimal single-block (8x8) grayscale JPEG
// with an identity quantization table, a DC Huffman table with one
// symbol (the amplitude category dcCategory) and an AC Huffman table
// with one symbol (EOB), and an entropy-coded segment carrying exactly
// one DC codeword (plus dcCategory magnitude bits for dcValue) followed
// by EOB.
func buildGrayJPEG(t *testing.T, dcCategory byte, dcValue uint32) []byte {
	t.Helper()
	var out []byte
	out = append(out, soi()...)
	out = append(out, buildIdentityDQT(0)...)
	out = append(out, buildSingleSymbolDHT(0, 0, dcCategory)...) // DC table 0
	out = append(out, buildSingleSymbolDHT(1, 0, 0x00)...)       // AC table 0: EOB only
	out = append(out, buildSOF0(8, 8, []Component{{ID: 1, HSamp: 1, VSamp: 1, QuantID: 0}})...)
	out = append(out, buildSOS([]scanComponentRef{{componentID: 1, dcTableID: 0, acTableID: 0}})...)

	bw := &bitWriter{}
	bw.writeBits(0, 1) // DC huffman codeword "0" -> symbol dcCategory
	if dcCategory > 0 {
		bw.writeBits(dcValue, int(dcCategory))
	}
	bw.writeBits(0, 1) // AC huffman codeword "0" -> EOB
	out = append(out, bw.flush()...)
	out = append(out, eoi()...)
	return out
}

func TestDecodeGrayAllZero(t *testing.T) {
	data := buildGrayJPEG(t, 0, 0)
	dec := Load(data, nil)
	w, h, n, err := dec.ParseHeaders()
	require.NoError(t, err)
	require.Equal(t, 8, w)
	require.Equal(t, 8, h)
	require.Equal(t, 8*8*3, n)

	pix := make([]byte, n)
	require.NoError(t, dec.Decode(pix))
	for i := 0; i < len(pix); i += 3 {
		require.EqualValues(t, 128, pix[i])
		require.EqualValues(t, 128, pix[i+1])
		require.EqualValues(t, 128, pix[i+2])
	}
}

func TestDecodeGrayDCEight(t *testing.T) {
	// category 4 covers [-15..-8, 8..15]; amplitude bits "1000" = 8 in
	// that category, which T.81's sign-extension resolves to value +8.
	data := buildGrayJPEG(t, 4, 0b1000)
	dec := Load(data, nil)
	_, _, n, err := dec.ParseHeaders()
	require.NoError(t, err)
	pix := make([]byte, n)
	require.NoError(t, dec.Decode(pix))
	for i := 0; i < len(pix); i += 3 {
		require.EqualValues(t, 129, pix[i])
		require.EqualValues(t, 129, pix[i+1])
		require.EqualValues(t, 129, pix[i+2])
	}
}

func TestDecodeBufferTooSmall(t *testing.T) {
	data := buildGrayJPEG(t, 0, 0)
	dec := Load(data, nil)
	_, _, _, err := dec.ParseHeaders()
	require.NoError(t, err)
	err = dec.Decode(make([]byte, 4))
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	require.Equal(t, BufferTooSmall, de.Kind)
}

func TestDecodeMissingSOI(t *testing.T) {
	dec := Load([]byte{0x00, 0x00}, nil)
	_, _, _, err := dec.ParseHeaders()
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	require.Equal(t, BadMarker, de.Kind)
}
