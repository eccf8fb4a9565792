package bitmap

import (
	"image"
	"image/color"
	"image/draw"
)

// Image returns a top-down copy of the pixels of a 24-bit bitmap.
func (b *Bitmap) Image() (*image.NRGBA, error) {
	h := b.Header()
	if h.BitCount != trueColor {
		return nil, ErrNotTrueColor
	}

	width, height := int(h.Width), int(h.Height)
	padRowLen := h.Stride()
	data := b.Pix()

	m := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := data[(height-1-y)*padRowLen:]
		for x := 0; x < width; x++ {
			m.SetNRGBA(x, y, color.NRGBA{row[3*x+2], row[3*x+1], row[3*x], 0xff})
		}
	}
	return m, nil
}

// New returns a black 24-bit bitmap of the given size.
func New(width, height int) (*Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidParameter
	}

	imgSize := stride(width*3) * height
	if uint64(imgSize)+HeaderSize > maxFileSize {
		return nil, ErrOutOfMemory
	}

	b := &Bitmap{buf: make([]byte, HeaderSize+imgSize)}
	b.setHeader(Header{
		Type:      [2]byte{'B', 'M'},
		Size:      uint32(HeaderSize + imgSize),
		OffBits:   HeaderSize,
		InfoSize:  infoHeaderSize,
		Width:     uint32(width),
		Height:    uint32(height),
		Planes:    1,
		BitCount:  trueColor,
		SizeImage: uint32(imgSize),
	})
	return b, nil
}

// FromImage returns a 24-bit bitmap holding the pixels of m. Alpha is
// discarded.
func FromImage(m image.Image) (*Bitmap, error) {
	r := m.Bounds()
	b, err := New(r.Dx(), r.Dy())
	if err != nil {
		return nil, err
	}

	// Flatten onto an opaque canvas at the origin
	src, ok := m.(*image.NRGBA)
	if !ok || r.Min != (image.Point{}) {
		src = image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
		draw.Draw(src, src.Bounds(), m, r.Min, draw.Src)
	}

	padRowLen := stride(r.Dx() * 3)
	data := b.Pix()
	for y := 0; y < r.Dy(); y++ {
		row := data[(r.Dy()-1-y)*padRowLen:]
		for x := 0; x < r.Dx(); x++ {
			c := src.NRGBAAt(x, y)
			row[3*x], row[3*x+1], row[3*x+2] = c.B, c.G, c.R
		}
	}
	return b, nil
}
