package spritepack

import "math"

// atlasGrid returns the delta atlas cell grid for patchCount patches:
// columns = ceil(sqrt(patchCount)) for a roughly square atlas, rows =
// ceil(patchCount / columns). patchCount must be positive.
func atlasGrid(patchCount int) (columns, rows int) {
	columns = int(math.Ceil(math.Sqrt(float64(patchCount))))
	rows = (patchCount + columns - 1) / columns
	return columns, rows
}

// atlasCell returns the pixel origin of a patch's cell within the atlas.
func atlasCell(atlasIndex, columns, tileSize int) (x, y int) {
	return (atlasIndex % columns) * tileSize, (atlasIndex / columns) * tileSize
}

// packAtlas re-composites every frame that emitted patches and copies each
// patch's pixels into its atlas cell. Each cell is written exactly once
// by exactly one patch, so write order cannot affect the result. Clipped
// edge tiles leave the remainder of their cell transparent. A frame that
// fails to re-composite here leaves its cells transparent — the same
// absorption rule as everywhere else.
func packAtlas(comp Compositor, t *Timeline, frames []int, size Size, patches []FramePatches, patchCount, tileSize int, rep *progressReporter) (*Frame, bool) {
	columns, rows := atlasGrid(patchCount)
	atlas := NewFrame(columns*tileSize, rows*tileSize)

	for pos, fp := range patches {
		if len(fp.Patches) == 0 {
			continue
		}
		f := comp.Composite(t, frames[pos], &size)
		if f == nil || f.Width != size.Width || f.Height != size.Height {
			debugf("frame %d failed to composite during packing, cells left transparent", frames[pos])
			continue
		}
		for _, p := range fp.Patches {
			cx, cy := atlasCell(p.AtlasIndex, columns, tileSize)
			copyRect(atlas, cx, cy, f, p.X, p.Y, p.W, p.H)
		}
		if !rep.step(StageAtlas, stageEncodeEnd, stageAtlasEnd, pos+1, len(patches), "") {
			return nil, false
		}
	}
	return atlas, true
}

// copyRect copies a w×h pixel block from src at (sx, sy) into dst at
// (dx, dy). Bounds are guaranteed by the callers.
func copyRect(dst *Frame, dx, dy int, src *Frame, sx, sy, w, h int) {
	for y := 0; y < h; y++ {
		so := src.offset(sx, sy+y)
		do := dst.offset(dx, dy+y)
		copy(dst.Pix[do:do+w*4], src.Pix[so:so+w*4])
	}
}
