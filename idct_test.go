package jpeg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInverseDCTAllZero(t *testing.T) {
	var b [64]int16
	InverseDCT8x8(&b)
	for _, v := range b {
		require.EqualValues(t, 128, v)
	}
}

func TestInverseDCTPureDC(t *testing.T) {
	var b [64]int16
	b[0] = 8
	InverseDCT8x8(&b)
	for _, v := range b {
		require.InDelta(t, 129, v, 1)
	}
}

func TestInverseDCTClampsToByteRange(t *testing.T) {
	var b [64]int16
	b[0] = 32767
	InverseDCT8x8(&b)
	for _, v := range b {
		require.GreaterOrEqual(t, v, int16(0))
		require.LessOrEqual(t, v, int16(255))
	}
}
