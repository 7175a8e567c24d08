package jpeg

// SampleBlock is one 8x8 block of coefficients, held in natural (row
// major) order. Coefficients arrive off the wire in zig-zag order, so
// absorbing a coefficient advances a zig-zag cursor and writes through
// zigZagOrder to place it at its natural-order slot.
type SampleBlock struct {
	coeff  [64]int16
	cursor int // next zig-zag position to absorb, 0..64
}

// Reset clears the block and rewinds the absorb cursor to the start of a
// fresh data unit.
func (b *SampleBlock) Reset() {
	for i := range b.coeff {
		b.coeff[i] = 0
	}
	b.cursor = 0
}

// AbsorbDC places the decoded DC coefficient (zig-zag index 0) and
// advances the cursor past it.
func (b *SampleBlock) AbsorbDC(v int32) {
	b.coeff[zigZagOrder[0]] = int16(v)
	b.cursor = 1
}

// AbsorbAC places the decoded AC coefficient at the current zig-zag
// cursor position after skipping runLen preceding implicit zeros (which
// are already zero from Reset, so skipping just advances the cursor),
// then advances past it. It reports whether the data unit is now full
// (cursor has reached 64).
func (b *SampleBlock) AbsorbAC(runLen int, v int32) (done bool) {
	b.cursor += runLen
	if b.cursor >= 64 {
		return true
	}
	b.coeff[zigZagOrder[b.cursor]] = int16(v)
	b.cursor++
	return b.cursor >= 64
}

// SkipZeros advances the cursor by n positions with no coefficient
// written (they are already zero from Reset), the shape a ZRL symbol
// needs since it carries a 16-zero run but no trailing magnitude. It
// reports whether the data unit is now full.
func (b *SampleBlock) SkipZeros(n int) (done bool) {
	b.cursor += n
	if b.cursor >= 64 {
		b.cursor = 64
		return true
	}
	return false
}

// MarkEOB advances the cursor straight to 64: the remaining AC
// coefficients are implicitly zero and already are, courtesy of Reset.
func (b *SampleBlock) MarkEOB() { b.cursor = 64 }

// Dequantize multiplies every natural-order coefficient by its
// corresponding quantizer value, in place.
func (b *SampleBlock) Dequantize(q *QuantizationTable) {
	for i := 0; i < 64; i++ {
		b.coeff[i] = int16(int32(b.coeff[i]) * int32(q.At(i)))
	}
}

// componentPlan describes one scan component's sampling geometry and its
// running DC predictor, the fields the teacher's scanComp/mcuDesc
// tracked across an entropy-coded segment.
type componentPlan struct {
	id       byte
	hSamp    int
	vSamp    int
	quantTab *QuantizationTable
	dcTable  *HuffmanTable
	acTable  *HuffmanTable
	lastDC   int32
}

// resetDC zeroes the running DC predictor, done once at scan start (no
// restart intervals means no mid-scan reset).
func (c *componentPlan) resetDC() { c.lastDC = 0 }

// MCU holds one minimum-coded-unit's worth of data units: for each scan
// component, hSamp*vSamp 8x8 blocks in raster order within the MCU.
type MCU struct {
	blocks [][]SampleBlock // blocks[componentIndex][blockIndex]
}

// NewMCU allocates per-component block storage sized to each
// component's sampling factors.
func NewMCU(comps []componentPlan) *MCU {
	m := &MCU{blocks: make([][]SampleBlock, len(comps))}
	for i, c := range comps {
		m.blocks[i] = make([]SampleBlock, c.hSamp*c.vSamp)
	}
	return m
}

func (m *MCU) reset() {
	for _, blocks := range m.blocks {
		for i := range blocks {
			blocks[i].Reset()
		}
	}
}

// decodeBlock decodes one data unit's DC and AC coefficients for the
// given component, applying the component's running DC predictor, and
// dequantizes the result in place.
func decodeBlock(r *BitStreamReader, c *componentPlan, b *SampleBlock) error {
	b.Reset()

	diff, err := c.dcTable.DecodeDC(r)
	if err != nil {
		return err
	}
	c.lastDC += diff
	b.AbsorbDC(c.lastDC)

	for b.cursor < 64 {
		sym, err := c.acTable.Decode(r)
		if err != nil {
			return err
		}
		rs := decodeACSymbol(sym)
		if rs.isEOB() {
			b.MarkEOB()
			break
		}
		if rs.isZRL() {
			if b.SkipZeros(16) {
				break
			}
			continue
		}
		v := receive(r, rs.size)
		if b.AbsorbAC(rs.run, v) {
			break
		}
	}

	b.Dequantize(c.quantTab)
	return nil
}
