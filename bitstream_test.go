package jpeg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitStreamReaderDestuffing(t *testing.T) {
	// 0xFF followed by 0x00 must read as a single literal 0xFF data byte.
	stuffed := []byte{0xFF, 0x00, 0xAB}
	r := NewBitStreamReader(stuffed, 0)
	require.EqualValues(t, 0xFFAB, r.ReadBits(16))

	// Without the stuffed 0x00, 0xFF 0xAB is a marker: no data bits are
	// read and the reader yields zero padding.
	plain := []byte{0xFF, 0xAB}
	r2 := NewBitStreamReader(plain, 0)
	require.EqualValues(t, 0x00, r2.ReadBits(8))
}

func TestBitStreamReaderStopsAtMarker(t *testing.T) {
	// 0xFF followed by a non-zero byte is a real marker: the reader must
	// not consume past the 0xFF.
	data := []byte{0xAB, 0xFF, 0xD9}
	r := NewBitStreamReader(data, 0)
	require.EqualValues(t, 0xAB, r.ReadBits(8))
	require.True(t, r.AtMarker())
}

func TestBitStreamReaderPeekDoesNotConsume(t *testing.T) {
	data := []byte{0x12, 0x34}
	r := NewBitStreamReader(data, 0)
	first := r.Peek16()
	second := r.Peek16()
	require.Equal(t, first, second)
	require.EqualValues(t, 0x1234, first)
}
