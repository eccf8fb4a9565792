/*
Package bitmap implements reading, converting, transforming and clipping
uncompressed Windows BMP images.

A Bitmap holds the whole file in one contiguous byte slice: the 14 byte file
header, the 40 byte information header, the optional colour table and the
pixel data, exactly as they appear on disk. Every operation works on views
into that slice so the serialized form is always the slice itself.

Pixel rows are stored bottom-up and each row is padded with zero bytes to a
multiple of four bytes. Indexed images (1, 4 or 8 bits per pixel) pack pixels
most significant bits first; 24-bit images store each pixel as Blue, Green,
Red.
*/
package bitmap

import (
	"io"
)

const (
	fileHeaderSize = 0x0e
	infoHeaderSize = 0x28

	// HeaderSize is the size in bytes of the combined file and information
	// headers.
	HeaderSize = fileHeaderSize + infoHeaderSize

	quadSize  = 4
	trueColor = 24
	byteWidth = 8

	// Largest file the loader is prepared to allocate for
	maxFileSize = 1 << 30
)

// Bitmap is a BMP image held in its serialized form.
type Bitmap struct {
	buf []byte
}

// Header decodes the header region of the bitmap.
func (b *Bitmap) Header() Header {
	return DecodeHeader(b.buf)
}

func (b *Bitmap) setHeader(h Header) {
	h.Encode(b.buf)
}

// Palette returns a view of the colour table. It is nil for 24-bit images.
func (b *Bitmap) Palette() Palette {
	h := b.Header()
	if h.BitCount == trueColor {
		return nil
	}
	end := int(h.OffBits)
	if end > len(b.buf) {
		end = len(b.buf)
	}
	if end <= HeaderSize {
		return Palette{}
	}
	n := (end - HeaderSize) / quadSize
	return Palette(b.buf[HeaderSize : HeaderSize+n*quadSize])
}

// Pix returns a view of the pixel data.
func (b *Bitmap) Pix() []byte {
	return b.buf[b.Header().OffBits:]
}

// Bytes returns the serialized bitmap. The slice aliases the bitmap.
func (b *Bitmap) Bytes() []byte {
	return b.buf
}

// Len returns the serialized size in bytes.
func (b *Bitmap) Len() int {
	return len(b.buf)
}

// WriteTo writes the serialized bitmap to w.
func (b *Bitmap) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.buf)
	return int64(n), err
}

// stride returns the padded length of a row holding n bytes.
func stride(n int) int {
	return 4 * ((n + 3) / 4)
}

// rowBytes returns the unpadded length in bytes of a row of width pixels at
// the given depth.
func rowBytes(width, bitCount int) int {
	if bitCount == trueColor {
		return width * 3
	}
	perByte := byteWidth / bitCount
	n := width / perByte
	if width%perByte != 0 {
		n++
	}
	return n
}
