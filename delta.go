package spritepack

// Patch is one changed tile instance for one frame. AtlasIndex is
// globally unique across the whole run and monotonically increasing in
// emission order; patches are never merged or reused across frames even
// when pixel-identical. X/Y/W/H are canvas coordinates; edge tiles are
// clipped to the canvas so W/H may be smaller than the tile size.
type Patch struct {
	AtlasIndex int
	X, Y, W, H int
}

// FramePatches lists the changed tiles of one frame. Frame is the
// 0-based position in the exported frame sequence, not the original
// timeline index.
type FramePatches struct {
	Frame   int
	Patches []Patch
}

// encodeDeltas re-composites each surviving frame and scans it tile by
// tile against the static baseline: the expected value of a pixel is the
// reference where the mask is static and transparent black where it is
// dynamic. A tile is changed as soon as a single pixel's difference
// exceeds threshold. A frame that fails to re-composite yields an empty
// patch list (non-fatal). Returns the per-frame patch lists, the total
// patch count, and false if the progress callback stopped the run.
func encodeDeltas(comp Compositor, t *Timeline, frames []int, size Size, ref *Frame, mask []bool, threshold, tileSize int, rep *progressReporter) ([]FramePatches, int, bool) {
	out := make([]FramePatches, 0, len(frames))
	next := 0

	for pos, idx := range frames {
		fp := FramePatches{Frame: pos, Patches: []Patch{}}
		f := comp.Composite(t, idx, &size)
		if f == nil || f.Width != size.Width || f.Height != size.Height {
			debugf("frame %d failed to composite during encoding, empty patch list", idx)
			out = append(out, fp)
			continue
		}

		for ty := 0; ty < size.Height; ty += tileSize {
			th := tileSize
			if ty+th > size.Height {
				th = size.Height - ty
			}
			for tx := 0; tx < size.Width; tx += tileSize {
				tw := tileSize
				if tx+tw > size.Width {
					tw = size.Width - tx
				}
				if tileChanged(f, ref, mask, tx, ty, tw, th, threshold) {
					fp.Patches = append(fp.Patches, Patch{
						AtlasIndex: next,
						X:          tx,
						Y:          ty,
						W:          tw,
						H:          th,
					})
					next++
				}
			}
		}

		out = append(out, fp)
		if !rep.step(StageEncode, stageBaseEnd, stageEncodeEnd, pos+1, len(frames), "") {
			return nil, 0, false
		}
	}
	return out, next, true
}

// tileChanged reports whether any pixel in the tile differs from its
// expected baseline value by more than threshold. Short-circuits on the
// first changed pixel.
func tileChanged(f, ref *Frame, mask []bool, tx, ty, tw, th, threshold int) bool {
	for y := ty; y < ty+th; y++ {
		row := y * f.Width
		for x := tx; x < tx+tw; x++ {
			i := row + x
			o := i * 4
			var d int
			if mask[i] {
				d = pixelDiff(f.Pix, o, ref.Pix, o)
			} else {
				d = diffFromTransparent(f.Pix, o)
			}
			if d > threshold {
				return true
			}
		}
	}
	return false
}
