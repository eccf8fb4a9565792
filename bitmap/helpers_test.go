package bitmap

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// encodeIndexed serializes an indexed bitmap. rows holds the packed bytes of
// each row, bottom row first, without padding.
func encodeIndexed(bpp, width int, pal []Quad, rows [][]byte) []byte {
	rowLen := rowBytes(width, bpp)
	padRowLen := stride(rowLen)
	off := HeaderSize + len(pal)*quadSize
	imgSize := padRowLen * len(rows)

	buf := make([]byte, off+imgSize)
	Header{
		Type:            [2]byte{'B', 'M'},
		Size:            uint32(len(buf)),
		OffBits:         uint32(off),
		InfoSize:        infoHeaderSize,
		Width:           uint32(width),
		Height:          uint32(len(rows)),
		Planes:          1,
		BitCount:        uint16(bpp),
		SizeImage:       uint32(imgSize),
		XPelsPerMeter:   2835,
		YPelsPerMeter:   2835,
		ColorsUsed:      uint32(len(pal)),
		ColorsImportant: uint32(len(pal)),
	}.Encode(buf)

	for i, q := range pal {
		copy(buf[HeaderSize+i*quadSize:], []byte{q.Blue, q.Green, q.Red, q.Reserved})
	}
	for i, row := range rows {
		copy(buf[off+i*padRowLen:], row)
	}
	return buf
}

// patterned returns a 24-bit bitmap where every channel of every pixel is
// distinct modulo 256.
func patterned(t *testing.T, width, height int) *Bitmap {
	t.Helper()
	b, err := New(width, height)
	require.NoError(t, err)

	padRowLen := stride(width * 3)
	data := b.Pix()
	for y := 0; y < height; y++ {
		for x := 0; x < width*3; x++ {
			data[y*padRowLen+x] = byte(y*width*3 + x + 1)
		}
	}
	return b
}

// pixelAt returns the Blue, Green, Red bytes of pixel (x, y) counted from the
// bottom row.
func pixelAt(b *Bitmap, x, y int) [3]byte {
	h := b.Header()
	p := b.Pix()[y*h.Stride()+3*x:]
	return [3]byte{p[0], p[1], p[2]}
}

func setPixel(b *Bitmap, x, y int, bgr [3]byte) {
	h := b.Header()
	copy(b.Pix()[y*h.Stride()+3*x:], bgr[:])
}

func clone(t *testing.T, b *Bitmap) *Bitmap {
	t.Helper()
	n, err := Decode(bytes.NewReader(append([]byte(nil), b.Bytes()...)))
	require.NoError(t, err)
	return n
}
