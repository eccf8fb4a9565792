package bitmap

import (
	"bytes"
	"errors"
	"io"
)

var (
	ErrOutOfMemory      = errors.New("bitmap: unable to allocate memory")
	ErrUnexpectedEOF    = errors.New("bitmap: unexpected end of file")
	ErrNotBitmap        = errors.New("bitmap: not a bitmap file")
	ErrPlanes           = errors.New("bitmap: unsupported number of planes")
	ErrBitDepth         = errors.New("bitmap: invalid bits per pixel")
	ErrCompression      = errors.New("bitmap: unsupported compressed format")
	ErrLayout           = errors.New("bitmap: pixel data does not fit in file")
	ErrTrueColor        = errors.New("bitmap: already in 24 bit format")
	ErrNotTrueColor     = errors.New("bitmap: not a 24 bit bitmap")
	ErrInvalidParameter = errors.New("bitmap: bad transform parameter")
	ErrInvalidRectangle = errors.New("bitmap: invalid clip rectangle")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r   io.Reader
	buf []byte
}

func (d *decoder) readHeader() error {
	d.buf = make([]byte, HeaderSize)
	return readFull(d.r, d.buf)
}

// readBody reads up to the declared file size. The buffer grows as data
// arrives so a truncated stream fails without allocating the full size.
func (d *decoder) readBody() error {
	size := DecodeHeader(d.buf).Size
	if size <= HeaderSize {
		return nil
	}
	if size > maxFileSize {
		return ErrOutOfMemory
	}

	buf := bytes.NewBuffer(d.buf)
	if _, err := io.CopyN(buf, d.r, int64(size-HeaderSize)); err != nil {
		if err == io.EOF {
			err = ErrUnexpectedEOF
		}
		return err
	}
	d.buf = buf.Bytes()

	return nil
}

func validBitCount(n uint16) bool {
	switch n {
	case 1, 4, 8, trueColor:
		return true
	}
	return false
}

func validate(h Header) error {
	switch {
	case h.Type != [2]byte{'B', 'M'}:
		return ErrNotBitmap
	case h.Planes != 1:
		return ErrPlanes
	case !validBitCount(h.BitCount):
		return ErrBitDepth
	case h.Compression != 0:
		return ErrCompression
	}
	return nil
}

func (d *decoder) check() error {
	h := DecodeHeader(d.buf)
	if err := validate(h); err != nil {
		return err
	}

	if h.Width == 0 || h.Height == 0 || h.OffBits < HeaderSize {
		return ErrLayout
	}
	if uint64(h.OffBits)+uint64(h.Stride())*uint64(h.Height) > uint64(len(d.buf)) {
		return ErrLayout
	}
	return nil
}

func (d *decoder) decode(r io.Reader) error {
	d.r = r

	if err := d.readHeader(); err != nil {
		return err
	}
	if err := d.readBody(); err != nil {
		return err
	}
	return d.check()
}

// Decode reads a whole bitmap file from r. Reading stops at the file size
// declared in the header.
func Decode(r io.Reader) (*Bitmap, error) {
	var d decoder
	if err := d.decode(r); err != nil {
		return nil, err
	}
	return &Bitmap{buf: d.buf}, nil
}

// DecodeHeaderFrom reads and validates only the headers from r.
func DecodeHeaderFrom(r io.Reader) (Header, error) {
	d := decoder{r: r}
	if err := d.readHeader(); err != nil {
		return Header{}, err
	}
	h := DecodeHeader(d.buf)
	if err := validate(h); err != nil {
		return Header{}, err
	}
	return h, nil
}

// DecodePaletteFrom reads the colour table that follows the headers h from
// r. Only the entries an image of h.BitCount bits can index are read. A
// 24-bit bitmap has no colour table.
func DecodePaletteFrom(r io.Reader, h Header) (Palette, error) {
	if h.BitCount == trueColor {
		return nil, nil
	}
	if h.OffBits < HeaderSize {
		return nil, ErrLayout
	}
	n := uint32(quadSize) << h.BitCount
	if space := h.OffBits - HeaderSize; space < n {
		n = space
	}
	p := make(Palette, n)
	if err := readFull(r, p); err != nil {
		return nil, err
	}
	return p, nil
}
