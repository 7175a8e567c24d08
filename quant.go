package jpeg

import "fmt"

// zigZagOrder[i] is the natural-order (row-major) index of the i-th
// coefficient in zig-zag scan order, the same permutation the teacher's
// zigZagRowCol table encodes, flattened to a single 64-entry lookup so a
// coefficient absorbed off the wire can be dropped straight into its
// natural-order slot with one array index instead of a row/col pair.
var zigZagOrder = [64]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

// QuantizationTable holds the 64 quantizer values in natural (row-major)
// order, reordered once at DQT parse time out of the zig-zag order they
// arrive in on the wire.
type QuantizationTable struct {
	values [64]uint16
}

// NewQuantizationTable reorders 64 zig-zag-ordered quantizer values
// (as they appear in a DQT segment) into natural order.
func NewQuantizationTable(zigZag [64]uint16) *QuantizationTable {
	q := &QuantizationTable{}
	for i, v := range zigZag {
		q.values[zigZagOrder[i]] = v
	}
	return q
}

// At returns the quantizer for natural-order index idx (0..63).
func (q *QuantizationTable) At(idx int) uint16 { return q.values[idx] }

func parseDQT(data []byte) (map[int]*QuantizationTable, error) {
	tables := make(map[int]*QuantizationTable)
	pos := 0
	for pos < len(data) {
		pq := data[pos] >> 4
		tq := int(data[pos] & 0x0f)
		pos++
		if pq != 0 {
			return nil, newError(UnsupportedFeature, "parseDQT", fmt.Errorf("16-bit quantization table (Pq=1) not supported"))
		}
		var zz [64]uint16
		if pq == 0 {
			if pos+64 > len(data) {
				return nil, newError(TruncatedInput, "parseDQT", fmt.Errorf("8-bit table truncated"))
			}
			for i := 0; i < 64; i++ {
				zz[i] = uint16(data[pos+i])
			}
			pos += 64
		} else {
			if pos+128 > len(data) {
				return nil, newError(TruncatedInput, "parseDQT", fmt.Errorf("16-bit table truncated"))
			}
			for i := 0; i < 64; i++ {
				zz[i] = uint16(data[pos+2*i])<<8 | uint16(data[pos+2*i+1])
			}
			pos += 128
		}
		tables[tq] = NewQuantizationTable(zz)
	}
	return tables, nil
}
