/*
Package indexed implements an encoder for palette based uncompressed BMP
images at 1, 4 or 8 bits per pixel.

Images with more colours than the chosen depth allows are reduced with a
median cut quantizer before encoding.
*/
package indexed

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/bodgit/bmp/bitmap"
	"github.com/ericpauley/go-quantize/quantize"
)

var (
	errDepth = errors.New("indexed: unsupported bits per pixel")
	errEmpty = errors.New("indexed: empty image")
)

type encoder struct {
	w   io.Writer
	bpp int
}

// padPalette returns a copy of p extended with black to n entries
func padPalette(p color.Palette, n int) color.Palette {
	out := make(color.Palette, n)
	copy(out, p)
	for i := len(p); i < n; i++ {
		out[i] = color.RGBA{0, 0, 0, 0xff}
	}
	return out
}

func (e *encoder) encode(m *image.Paletted) error {
	width, height := m.Rect.Dx(), m.Rect.Dy()
	colors := 1 << uint(e.bpp)
	perByte := 8 / e.bpp

	rowLen := (width + perByte - 1) / perByte
	padRowLen := 4 * ((rowLen + 3) / 4)
	off := bitmap.HeaderSize + colors*4
	imgSize := padRowLen * height

	b := make([]byte, off+imgSize)
	bitmap.Header{
		Type:            [2]byte{'B', 'M'},
		Size:            uint32(len(b)),
		OffBits:         uint32(off),
		InfoSize:        0x28,
		Width:           uint32(width),
		Height:          uint32(height),
		Planes:          1,
		BitCount:        uint16(e.bpp),
		SizeImage:       uint32(imgSize),
		ColorsUsed:      uint32(colors),
		ColorsImportant: uint32(colors),
	}.Encode(b)

	for i, c := range padPalette(m.Palette, colors) {
		r, g, bl, _ := c.RGBA()
		q := b[bitmap.HeaderSize+i*4:]
		q[0], q[1], q[2] = byte(bl>>8), byte(g>>8), byte(r>>8)
	}

	mask := byte(colors - 1)
	for y := 0; y < height; y++ {
		// Bottom row first
		row := b[off+(height-1-y)*padRowLen:]
		for x := 0; x < width; x++ {
			shift := uint((perByte - 1 - x%perByte) * e.bpp)
			row[x/perByte] |= (m.ColorIndexAt(m.Rect.Min.X+x, m.Rect.Min.Y+y) & mask) << shift
		}
	}

	_, err := e.w.Write(b)
	return err
}

// toPaletted returns m as a paletted image with at most colors entries. An
// image already in a small enough palette keeps its colour indices, anything
// else goes through the median cut quantizer.
func toPaletted(m image.Image, colors int) *image.Paletted {
	if pm, ok := m.(*image.Paletted); ok && len(pm.Palette) <= colors {
		return pm
	}

	p, ok := m.ColorModel().(color.Palette)
	if !ok || len(p) > colors {
		q := quantize.MedianCutQuantizer{}
		p = q.Quantize(make(color.Palette, 0, colors), m)
	}

	b := m.Bounds()
	pm := image.NewPaletted(b, p)
	draw.Draw(pm, b, m, b.Min, draw.Src)
	return pm
}

// Encode writes the Image m to w as an uncompressed BMP with bpp bits per
// pixel, which must be 1, 4 or 8.
func Encode(w io.Writer, m image.Image, bpp int) error {
	switch bpp {
	case 1, 4, 8:
	default:
		return errDepth
	}

	if m.Bounds().Empty() {
		return errEmpty
	}

	e := encoder{w: w, bpp: bpp}

	return e.encode(toPaletted(m, 1<<uint(bpp)))
}
