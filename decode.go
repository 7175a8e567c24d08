package jpeg

import (
	"fmt"

	"go.uber.org/zap"
)

// Decode runs the entropy decode, dequantization, IDCT, chroma
// upsampling, and color conversion for every MCU of the single scan
// ParseHeaders recorded, writing an interleaved RGB raster into out.
// out must be at least Width*Height*3 bytes; ParseHeaders must have
// already succeeded.
func (d *Decoder) Decode(out []byte) error {
	if !d.headersParsed {
		return newError(LogicError, "Decode", fmt.Errorf("ParseHeaders must succeed before Decode"))
	}
	needed := d.frame.Width * d.frame.Height * 3
	if len(out) < needed {
		return newError(BufferTooSmall, "Decode", fmt.Errorf("need %d bytes, got %d", needed, len(out)))
	}

	comps, err := d.buildComponentPlans()
	if err != nil {
		return err
	}
	hMax, vMax := 0, 0
	for _, c := range comps {
		if c.hSamp > hMax {
			hMax = c.hSamp
		}
		if c.vSamp > vMax {
			vMax = c.vSamp
		}
	}

	hSampList := make([]int, len(comps))
	vSampList := make([]int, len(comps))
	for i, c := range comps {
		hSampList[i] = c.hSamp
		vSampList[i] = c.vSamp
	}
	subFmt, err := DetectSubsampling(len(comps), hMax, vMax, hSampList, vSampList)
	if err != nil {
		return err
	}

	mcuPixelsW := 8 * hMax
	mcuPixelsH := 8 * vMax
	numMcuX := (d.frame.Width + mcuPixelsW - 1) / mcuPixelsW
	numMcuY := (d.frame.Height + mcuPixelsH - 1) / mcuPixelsH
	rowStride := d.frame.Width * 3

	// When W or H is not a multiple of the MCU size, edge MCUs extend past
	// the image: decode into a padded raster, then copy out the W x H region.
	target, targetStride := out, rowStride
	padded := numMcuX*mcuPixelsW != d.frame.Width || numMcuY*mcuPixelsH != d.frame.Height
	if padded {
		targetStride = numMcuX * mcuPixelsW * 3
		target = make([]byte, targetStride*numMcuY*mcuPixelsH)
	}

	for i := range comps {
		comps[i].resetDC()
	}

	reader := NewBitStreamReader(d.data, d.ecsPos)
	mcu := NewMCU(comps)

	mcuIndex := 0
	for y := 0; y < numMcuY; y++ {
		for x := 0; x < numMcuX; x++ {
			mcu.reset()
			for ci := range comps {
				blocks := mcu.blocks[ci]
				for bi := range blocks {
					if err := decodeBlock(reader, &comps[ci], &blocks[bi]); err != nil {
						kind := BadHuffmanSymbol
						if de, ok := err.(*DecodeError); ok {
							kind = de.Kind
						}
						return newError(kind, fmt.Sprintf("Decode mcu=%d comp=%d block=%d", mcuIndex, ci, bi), err)
					}
					InverseDCT8x8(&blocks[bi].coeff)
					if d.control.Du {
						d.logger.Debug("du", zap.Int("mcu", mcuIndex), zap.Int("comp", ci), zap.Int("block", bi))
					}
				}
			}

			start := y*mcuPixelsH*targetStride + x*mcuPixelsW*3
			writeMCU(subFmt, mcu, target, start, targetStride)

			if d.control.Mcu {
				d.logger.Debug("mcu", zap.Int("index", mcuIndex), zap.Int("x", x), zap.Int("y", y))
			}
			mcuIndex++
		}
	}
	if padded {
		for row := 0; row < d.frame.Height; row++ {
			copy(out[row*rowStride:(row+1)*rowStride], target[row*targetStride:])
		}
	}
	return nil
}

// buildComponentPlans resolves each scan component's sampling factors
// and table references against the frame header and table maps
// collected during ParseHeaders.
func (d *Decoder) buildComponentPlans() ([]componentPlan, error) {
	comps := make([]componentPlan, len(d.scanIDs))
	for i, ref := range d.scanIDs {
		var fc *Component
		for j := range d.frame.Components {
			if d.frame.Components[j].ID == ref.componentID {
				fc = &d.frame.Components[j]
				break
			}
		}
		if fc == nil {
			return nil, newError(LogicError, "buildComponentPlans", fmt.Errorf("scan references unknown component id %d", ref.componentID))
		}
		qt, ok := d.quant[int(fc.QuantID)]
		if !ok {
			return nil, newError(LogicError, "buildComponentPlans", fmt.Errorf("component %d references undefined quant table %d", fc.ID, fc.QuantID))
		}
		dc, ok := d.dcTabs[int(ref.dcTableID)]
		if !ok {
			return nil, newError(LogicError, "buildComponentPlans", fmt.Errorf("component %d references undefined DC table %d", fc.ID, ref.dcTableID))
		}
		ac, ok := d.acTabs[int(ref.acTableID)]
		if !ok {
			return nil, newError(LogicError, "buildComponentPlans", fmt.Errorf("component %d references undefined AC table %d", fc.ID, ref.acTableID))
		}
		comps[i] = componentPlan{
			id:       fc.ID,
			hSamp:    int(fc.HSamp),
			vSamp:    int(fc.VSamp),
			quantTab: qt,
			dcTable:  dc,
			acTable:  ac,
		}
	}
	return comps, nil
}
