package spritepack

import (
	"image"
	stddraw "image/draw"

	xdraw "golang.org/x/image/draw"
)

// Compositor renders one timeline index to an RGBA frame. A nil size
// requests the frame's natural bounds. A nil return means the frame is
// absent (empty or out of range) — this is the compositor's only failure
// mode and is never treated as fatal by the pipeline.
//
// The authoring application supplies its own Compositor; FlatCompositor
// is a self-contained implementation for tooling and tests.
type Compositor interface {
	Composite(t *Timeline, index int, size *Size) *Frame
}

// FlatCompositor composites the cell rasters stored on the timeline's
// tracks with source-over blending, bottom track first. Natural bounds
// are the maximum cell size contributing at the index; an explicit size
// rescales the natural render bilinearly.
type FlatCompositor struct{}

// Composite implements Compositor.
func (FlatCompositor) Composite(t *Timeline, index int, size *Size) *Frame {
	// Collect contributing cell images, bottom to top.
	var layers []*Frame
	w, h := 0, 0
	for ti := range t.Tracks {
		tr := &t.Tracks[ti]
		if !tr.Visible {
			continue
		}
		cell, ok := tr.cellAt(index)
		if !ok || cell.Disabled || cell.Image == nil {
			continue
		}
		layers = append(layers, cell.Image)
		if cell.Image.Width > w {
			w = cell.Image.Width
		}
		if cell.Image.Height > h {
			h = cell.Image.Height
		}
	}
	if len(layers) == 0 || w == 0 || h == 0 {
		return nil
	}

	natural := image.NewNRGBA(image.Rect(0, 0, w, h))
	for _, layer := range layers {
		src := layer.Image()
		stddraw.Draw(natural, src.Rect, src, image.Point{}, stddraw.Over)
	}

	if size == nil || (size.Width == w && size.Height == h) {
		return FrameFromImage(natural)
	}
	if size.Width <= 0 || size.Height <= 0 {
		return nil
	}
	scaled := image.NewNRGBA(image.Rect(0, 0, size.Width, size.Height))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Rect, natural, natural.Rect, xdraw.Src, nil)
	return FrameFromImage(scaled)
}
