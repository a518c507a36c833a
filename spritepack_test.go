package spritepack

// --- Shared test fixtures ---

// stubCompositor serves canned frames by timeline index. failFrom makes
// an index start failing once its composite call count reaches the given
// value, which lets tests fail a frame in a specific pipeline stage.
type stubCompositor struct {
	frames   map[int]*Frame
	failFrom map[int]int
	calls    map[int]int
}

func newStubCompositor() *stubCompositor {
	return &stubCompositor{
		frames:   make(map[int]*Frame),
		failFrom: make(map[int]int),
		calls:    make(map[int]int),
	}
}

func (s *stubCompositor) Composite(_ *Timeline, index int, size *Size) *Frame {
	n := s.calls[index]
	s.calls[index] = n + 1
	if ff, ok := s.failFrom[index]; ok && n >= ff {
		return nil
	}
	f, ok := s.frames[index]
	if !ok {
		return nil
	}
	if size == nil || (f.Width == size.Width && f.Height == size.Height) {
		return f.Clone()
	}
	// Pad or crop to the requested size, anchored top-left.
	out := NewFrame(size.Width, size.Height)
	w, h := f.Width, f.Height
	if w > size.Width {
		w = size.Width
	}
	if h > size.Height {
		h = size.Height
	}
	copyRect(out, 0, 0, f, 0, 0, w, h)
	return out
}

// stubTimeline builds a timeline with one visible track of n enabled
// cells, so every index 0..n-1 is a candidate.
func stubTimeline(n int) *Timeline {
	return &Timeline{FPS: 10, Tracks: []Track{{Visible: true, Cells: make([]Cell, n)}}}
}

// solidFrame fills a w×h frame with a single RGBA value.
func solidFrame(w, h int, r, g, b, a uint8) *Frame {
	f := NewFrame(w, h)
	for i := 0; i < len(f.Pix); i += 4 {
		f.Pix[i+0] = r
		f.Pix[i+1] = g
		f.Pix[i+2] = b
		f.Pix[i+3] = a
	}
	return f
}

// fillRect paints a solid rectangle into an existing frame.
func fillRect(f *Frame, x0, y0, w, h int, r, g, b, a uint8) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			o := f.offset(x, y)
			f.Pix[o+0] = r
			f.Pix[o+1] = g
			f.Pix[o+2] = b
			f.Pix[o+3] = a
		}
	}
}

// quietReporter is a progress reporter that swallows callbacks.
func quietReporter() *progressReporter {
	return &progressReporter{}
}
