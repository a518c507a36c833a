package spritepack

import "math"

// resolveSize determines the export canvas size and the frames it covers.
//
// With an explicit size both dimensions are floored; a non-finite or
// sub-pixel dimension makes the size unresolvable. The candidate list
// passes through untouched (no rendering happens on this path).
//
// Without one, every candidate is composited at its natural bounds to
// probe the running maximum width and height, and the candidate list is
// permanently narrowed to the indices that rendered. The size is
// unresolvable when nothing renders or a probed maximum is zero.
//
// ok is false when the size cannot be resolved; the caller aborts the
// run without producing artifacts.
func resolveSize(comp Compositor, t *Timeline, candidates []int, explicit *FrameSize, rep *progressReporter) (size Size, frames []int, ok bool) {
	if explicit != nil {
		w := math.Floor(explicit.Width)
		h := math.Floor(explicit.Height)
		if math.IsNaN(w) || math.IsInf(w, 0) || math.IsNaN(h) || math.IsInf(h, 0) || w < 1 || h < 1 {
			debugf("explicit frame size %gx%g rejected", explicit.Width, explicit.Height)
			return Size{}, nil, false
		}
		if !rep.report(StageSize, stageSizeEnd, "") {
			return Size{}, nil, false
		}
		return Size{Width: int(w), Height: int(h)}, candidates, true
	}

	maxW, maxH := 0, 0
	frames = make([]int, 0, len(candidates))
	for n, idx := range candidates {
		f := comp.Composite(t, idx, nil)
		if f == nil {
			debugf("frame %d failed to composite during size probe, dropped", idx)
			continue
		}
		if f.Width > maxW {
			maxW = f.Width
		}
		if f.Height > maxH {
			maxH = f.Height
		}
		frames = append(frames, idx)
		if !rep.step(StageSize, stageSizeStart, stageSizeEnd, n+1, len(candidates), "") {
			return Size{}, nil, false
		}
	}
	if len(frames) == 0 || maxW == 0 || maxH == 0 {
		return Size{}, nil, false
	}
	return Size{Width: maxW, Height: maxH}, frames, true
}
