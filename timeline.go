package spritepack

// Cell is one frame slot on a track. Image holds the cell's authored
// raster for compositors that read cell content directly (FlatCompositor
// does); a nil Image is an empty cell. Disabled cells never contribute
// to the export.
type Cell struct {
	Disabled bool
	Image    *Frame
}

// Track is one layer of the animation's frame axis.
type Track struct {
	Visible bool
	Loop    bool // repeat the cell list past its end
	Cells   []Cell
}

// Timeline is the animation source handed to the export pipeline.
// Track order is stacking order: later tracks composite on top.
type Timeline struct {
	FPS    float64
	Tracks []Track
}

// FrameCount returns the length of the longest track's cell list, which
// defines the timeline's frame axis.
func (t *Timeline) FrameCount() int {
	maxLen := 0
	for i := range t.Tracks {
		if n := len(t.Tracks[i].Cells); n > maxLen {
			maxLen = n
		}
	}
	return maxLen
}

// cellAt resolves the track's contribution at timeline index i: the cell
// at i directly, the looped cell at i mod len when the track loops past
// its end, or no contribution at all.
func (tr *Track) cellAt(i int) (Cell, bool) {
	n := len(tr.Cells)
	if n == 0 || i < 0 {
		return Cell{}, false
	}
	if i < n {
		return tr.Cells[i], true
	}
	if tr.Loop {
		return tr.Cells[i%n], true
	}
	return Cell{}, false
}
