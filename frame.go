package spritepack

import "image"

// Frame is one composited RGBA raster: straight (non-premultiplied) alpha,
// row-major, 4 bytes per pixel. Frames produced by the pipeline are treated
// as immutable values — in particular the reference raster captured during
// static analysis is never written to after capture.
type Frame struct {
	Width, Height int
	Pix           []uint8 // len = Width * Height * 4
}

// NewFrame allocates a fully transparent frame of the given size.
func NewFrame(w, h int) *Frame {
	return &Frame{Width: w, Height: h, Pix: make([]uint8, w*h*4)}
}

// FrameFromImage copies an image into a new Frame. Bounds are normalized
// so the frame's origin is always (0, 0).
func FrameFromImage(img image.Image) *Frame {
	b := img.Bounds()
	f := NewFrame(b.Dx(), b.Dy())
	if src, ok := img.(*image.NRGBA); ok && src.Stride == b.Dx()*4 && b.Min == (image.Point{}) {
		copy(f.Pix, src.Pix)
		return f
	}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if a > 0 {
				// Un-premultiply (RGBA() returns alpha-premultiplied values).
				f.Pix[i+0] = uint8((r * 0xffff / a) >> 8)
				f.Pix[i+1] = uint8((g * 0xffff / a) >> 8)
				f.Pix[i+2] = uint8((bl * 0xffff / a) >> 8)
				f.Pix[i+3] = uint8(a >> 8)
			}
			i += 4
		}
	}
	return f
}

// Image wraps the frame's pixels in an *image.NRGBA without copying.
// Callers must not mutate the returned image if the frame is shared.
func (f *Frame) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    f.Pix,
		Stride: f.Width * 4,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	c := &Frame{Width: f.Width, Height: f.Height, Pix: make([]uint8, len(f.Pix))}
	copy(c.Pix, f.Pix)
	return c
}

// offset returns the Pix offset of pixel (x, y).
func (f *Frame) offset(x, y int) int {
	return (y*f.Width + x) * 4
}

// pixelDiff is the change metric: the sum of absolute per-channel
// differences (R+G+B+A) between the 4-byte pixels at a[ai:] and b[bi:].
// A pixel counts as changed iff pixelDiff is strictly greater than the
// configured threshold.
func pixelDiff(a []uint8, ai int, b []uint8, bi int) int {
	d := 0
	for c := 0; c < 4; c++ {
		v := int(a[ai+c]) - int(b[bi+c])
		if v < 0 {
			v = -v
		}
		d += v
	}
	return d
}

// diffFromTransparent is pixelDiff against transparent black (0,0,0,0).
func diffFromTransparent(a []uint8, ai int) int {
	return int(a[ai]) + int(a[ai+1]) + int(a[ai+2]) + int(a[ai+3])
}
