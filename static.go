package spritepack

// staticAnalysis is the result of the single forward analysis pass:
// the fixed reference raster, the per-pixel static mask, and the frames
// (timeline indices, in order) that actually composited.
type staticAnalysis struct {
	reference *Frame
	mask      []bool // true = static; len = Width*Height
	frames    []int
}

// analyzeStaticRegions composites each candidate at the resolved size in
// one forward pass. The first successful composite becomes the reference
// raster — fixed for the whole run, never recomputed or averaged — with
// an all-static mask. Every later frame is compared pixel-by-pixel
// against the reference, but only for pixels still marked static: once a
// pixel's difference exceeds threshold it flips to dynamic and is never
// examined (or reverted) again. Frames that fail to composite are
// dropped from all later stages.
//
// ok is false when nothing composites at all, or when the progress
// callback requested a stop.
func analyzeStaticRegions(comp Compositor, t *Timeline, candidates []int, size Size, threshold int, rep *progressReporter) (staticAnalysis, bool) {
	var a staticAnalysis
	a.frames = make([]int, 0, len(candidates))

	for n, idx := range candidates {
		f := comp.Composite(t, idx, &size)
		if f == nil || f.Width != size.Width || f.Height != size.Height {
			debugf("frame %d failed to composite during analysis, dropped", idx)
			continue
		}

		if a.reference == nil {
			a.reference = f
			a.mask = make([]bool, size.Width*size.Height)
			for i := range a.mask {
				a.mask[i] = true
			}
		} else {
			ref := a.reference.Pix
			pix := f.Pix
			for i, static := range a.mask {
				if !static {
					continue
				}
				if pixelDiff(pix, i*4, ref, i*4) > threshold {
					a.mask[i] = false
				}
			}
		}

		a.frames = append(a.frames, idx)
		if !rep.step(StageAnalyze, stageSizeEnd, stageAnalyzeEnd, n+1, len(candidates), "") {
			return staticAnalysis{}, false
		}
	}

	if a.reference == nil {
		return staticAnalysis{}, false
	}
	return a, true
}
