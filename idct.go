package jpeg

import "math"

// idctBasis is the cosine basis used by the separable row/column inverse
// DCT: C(u)*cos((2x+1)u*pi/16) as float64, precomputed once instead of
// re-evaluated per coefficient, in place of the AAN shortcut the
// teacher's inverseDCT8 took with its is0..is7/ia1..ia5 constant table,
// generalized here to a plain basis-matrix multiply for clarity since
// SPEC_FULL.md's accuracy bar is +/-1 per sample, not bit-exact AAN
// output.
var idctBasis [8][8]float64

func init() {
	for u := 0; u < 8; u++ {
		for x := 0; x < 8; x++ {
			cu := 1.0
			if u == 0 {
				cu = 1.0 / math.Sqrt2
			}
			idctBasis[x][u] = cu * math.Cos(float64(2*x+1)*float64(u)*math.Pi/16.0)
		}
	}
}

// InverseDCT8x8 performs the in-place inverse discrete cosine transform
// of a natural-order 8x8 coefficient block, centers the result around
// +128, and clamps every sample to [0,255]. block is read as
// dequantized frequency-domain coefficients and overwritten with
// spatial-domain samples.
func InverseDCT8x8(block *[64]int16) {
	var tmp [8][8]float64

	// 1-D IDCT over rows (frequency -> spatial along x, for each v).
	for v := 0; v < 8; v++ {
		for x := 0; x < 8; x++ {
			var sum float64
			for u := 0; u < 8; u++ {
				sum += idctBasis[x][u] * float64(block[v*8+u])
			}
			tmp[v][x] = sum / 2.0
		}
	}

	// 1-D IDCT over columns (frequency -> spatial along y).
	for x := 0; x < 8; x++ {
		var col [8]float64
		for v := 0; v < 8; v++ {
			col[v] = tmp[v][x]
		}
		for y := 0; y < 8; y++ {
			var sum float64
			for v := 0; v < 8; v++ {
				sum += idctBasis[y][v] * col[v]
			}
			sample := sum/2.0 + 128.0 + 0.5
			block[y*8+x] = int16(clampSample(sample))
		}
	}
}

func clampSample(v float64) int32 {
	iv := int32(math.Floor(v))
	if iv < 0 {
		return 0
	}
	if iv > 255 {
		return 255
	}
	return iv
}
