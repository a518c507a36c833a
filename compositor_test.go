package spritepack

import "testing"

func TestFlatCompositor_AbsentWhenNothingContributes(t *testing.T) {
	comp := FlatCompositor{}

	if f := comp.Composite(&Timeline{}, 0, nil); f != nil {
		t.Error("empty timeline should composite to absent")
	}

	// Cells without images never contribute pixels.
	if f := comp.Composite(stubTimeline(2), 0, nil); f != nil {
		t.Error("imageless cells should composite to absent")
	}

	tl := &Timeline{Tracks: []Track{
		{Visible: false, Cells: []Cell{{Image: solidFrame(2, 2, 1, 1, 1, 255)}}},
	}}
	if f := comp.Composite(tl, 0, nil); f != nil {
		t.Error("hidden tracks should composite to absent")
	}
}

func TestFlatCompositor_NaturalBoundsAreMaxCellSize(t *testing.T) {
	tl := &Timeline{Tracks: []Track{
		{Visible: true, Cells: []Cell{{Image: solidFrame(4, 10, 1, 1, 1, 255)}}},
		{Visible: true, Cells: []Cell{{Image: solidFrame(12, 3, 2, 2, 2, 255)}}},
	}}
	f := FlatCompositor{}.Composite(tl, 0, nil)
	if f == nil {
		t.Fatal("expected a frame")
	}
	if f.Width != 12 || f.Height != 10 {
		t.Errorf("natural bounds = %dx%d, want 12x10", f.Width, f.Height)
	}
}

func TestFlatCompositor_TrackOrderIsStackingOrder(t *testing.T) {
	bottom := solidFrame(2, 2, 255, 0, 0, 255)
	top := NewFrame(2, 2)
	fillRect(top, 0, 0, 1, 1, 0, 255, 0, 255) // opaque green over pixel (0,0) only

	tl := &Timeline{Tracks: []Track{
		{Visible: true, Cells: []Cell{{Image: bottom}}},
		{Visible: true, Cells: []Cell{{Image: top}}},
	}}
	f := FlatCompositor{}.Composite(tl, 0, nil)
	if f == nil {
		t.Fatal("expected a frame")
	}
	if f.Pix[1] != 255 || f.Pix[0] != 0 {
		t.Errorf("pixel (0,0) = %v, want the top track's green", f.Pix[0:4])
	}
	o := f.offset(1, 0)
	if f.Pix[o] != 255 || f.Pix[o+1] != 0 {
		t.Errorf("pixel (1,0) = %v, want the bottom track's red", f.Pix[o:o+4])
	}
}

func TestFlatCompositor_DisabledCellSkipped(t *testing.T) {
	tl := &Timeline{Tracks: []Track{
		{Visible: true, Cells: []Cell{{Disabled: true, Image: solidFrame(2, 2, 9, 9, 9, 255)}}},
	}}
	if f := (FlatCompositor{}).Composite(tl, 0, nil); f != nil {
		t.Error("a disabled cell must not contribute")
	}
}

func TestFlatCompositor_LoopedLookup(t *testing.T) {
	tl := &Timeline{Tracks: []Track{
		{Visible: true, Loop: true, Cells: []Cell{{Image: solidFrame(2, 2, 42, 0, 0, 255)}}},
	}}
	f := FlatCompositor{}.Composite(tl, 7, nil)
	if f == nil {
		t.Fatal("looping track should render past its end")
	}
	if f.Pix[0] != 42 {
		t.Errorf("pixel R = %d, want the looped cell's 42", f.Pix[0])
	}
}

func TestFlatCompositor_ExplicitSizeRescales(t *testing.T) {
	tl := &Timeline{Tracks: []Track{
		{Visible: true, Cells: []Cell{{Image: solidFrame(2, 2, 100, 100, 100, 255)}}},
	}}
	f := FlatCompositor{}.Composite(tl, 0, &Size{Width: 8, Height: 8})
	if f == nil {
		t.Fatal("expected a frame")
	}
	if f.Width != 8 || f.Height != 8 {
		t.Errorf("size = %dx%d, want requested 8x8", f.Width, f.Height)
	}
	// Uniform input survives any resampling untouched.
	if f.Pix[0] != 100 || f.Pix[3] != 255 {
		t.Errorf("pixel = %v, want solid gray", f.Pix[0:4])
	}
}
