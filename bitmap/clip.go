package bitmap

// Rectangle is a clip region in pixels. Rows count from the bottom row of the
// image, so Bottom is inclusive and Top is exclusive, as are Left and Right.
type Rectangle struct {
	Left, Right, Bottom, Top int
}

// ClampMode selects how Clip limits a rectangle that extends past the image.
type ClampMode int

const (
	// ClampTop limits Right to the image width and Top to the image height.
	ClampTop ClampMode = iota
	// ClampLegacy limits Right to the image width, but when Top is beyond
	// the image height it writes the height into Right and leaves Top
	// alone. Kept for compatibility with older bmp releases.
	ClampLegacy
)

func (r Rectangle) clamp(width, height int, mode ClampMode) Rectangle {
	if r.Right > width {
		r.Right = width
	}
	if r.Top > height {
		if mode == ClampLegacy {
			r.Right = height
		} else {
			r.Top = height
		}
	}
	return r
}

func (r Rectangle) valid(width, height int) bool {
	return r.Left >= 0 && r.Bottom >= 0 &&
		r.Right > r.Left && r.Top > r.Bottom &&
		r.Right <= width && r.Top <= height
}

// Clip shrinks a 24-bit bitmap in place to the region r and returns the new
// serialized size. Rows are repacked from the start of the pixel data. The
// bitmap is unchanged if an error is returned.
func (b *Bitmap) Clip(r Rectangle, mode ClampMode) (int, error) {
	h := b.Header()
	if h.BitCount != trueColor {
		return 0, ErrNotTrueColor
	}

	width, height := int(h.Width), int(h.Height)
	r = r.clamp(width, height, mode)
	if !r.valid(width, height) {
		return 0, ErrInvalidRectangle
	}

	newWidth := r.Right - r.Left
	newHeight := r.Top - r.Bottom
	inStride := stride(width * 3)
	outLen := newWidth * 3
	outStride := stride(outLen)
	imgSize := outStride * newHeight

	data := b.Pix()

	// Destination never overtakes the source row being read
	idx := 0
	for i := r.Bottom; i < r.Top; i++ {
		start := i*inStride + 3*r.Left
		copy(data[idx:idx+outLen], data[start:start+outLen])
		idx += outLen
		for ; idx%4 != 0; idx++ {
			data[idx] = 0
		}
	}

	h.Width = uint32(newWidth)
	h.Height = uint32(newHeight)
	h.SizeImage = uint32(imgSize)
	h.Size = h.OffBits + h.SizeImage
	b.setHeader(h)

	b.buf = b.buf[:h.Size]

	return len(b.buf), nil
}
