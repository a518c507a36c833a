package spritepack

// buildBaseImage derives the static-only background raster: static pixels
// copy the reference RGBA, dynamic pixels become fully transparent. Pure
// function of the analysis result; it never mutates the reference.
func buildBaseImage(ref *Frame, mask []bool) *Frame {
	base := NewFrame(ref.Width, ref.Height)
	for i, static := range mask {
		if !static {
			continue
		}
		o := i * 4
		base.Pix[o+0] = ref.Pix[o+0]
		base.Pix[o+1] = ref.Pix[o+1]
		base.Pix[o+2] = ref.Pix[o+2]
		base.Pix[o+3] = ref.Pix[o+3]
	}
	return base
}
