package spritepack

// Candidates returns the timeline indices worth exporting: every index
// with at least one visible track contributing a non-disabled cell.
// An index whose contributing cells are all disabled or absent is skipped.
// With no visible tracks (or only empty ones) the result is empty and the
// whole pipeline becomes a no-op.
func Candidates(t *Timeline) []int {
	total := t.FrameCount()
	if total == 0 {
		return nil
	}

	out := make([]int, 0, total)
	for i := 0; i < total; i++ {
		for ti := range t.Tracks {
			tr := &t.Tracks[ti]
			if !tr.Visible || len(tr.Cells) == 0 {
				continue
			}
			cell, ok := tr.cellAt(i)
			if ok && !cell.Disabled {
				out = append(out, i)
				break
			}
		}
	}
	return out
}
