package bitmap

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Header is the native representation of the file and information headers.
// On disk every multi-byte field is little-endian; DecodeHeader and Encode
// are the only places that convert between the two.
type Header struct {
	// File header
	Type     [2]byte // Must be "BM"
	Size     uint32  // Size of the whole file in bytes
	Reserved [4]byte
	OffBits  uint32 // Offset from the start of the file to the pixel data

	// Information header
	InfoSize        uint32
	Width           uint32
	Height          uint32
	Planes          uint16
	BitCount        uint16
	Compression     uint32
	SizeImage       uint32
	XPelsPerMeter   uint32
	YPelsPerMeter   uint32
	ColorsUsed      uint32
	ColorsImportant uint32
}

// DecodeHeader converts the first HeaderSize bytes of b into a Header. It
// panics if b is shorter than HeaderSize.
func DecodeHeader(b []byte) Header {
	_ = b[HeaderSize-1]
	le := binary.LittleEndian

	var h Header
	copy(h.Type[:], b[0:2])
	h.Size = le.Uint32(b[2:6])
	copy(h.Reserved[:], b[6:10])
	h.OffBits = le.Uint32(b[10:14])

	h.InfoSize = le.Uint32(b[14:18])
	h.Width = le.Uint32(b[18:22])
	h.Height = le.Uint32(b[22:26])
	h.Planes = le.Uint16(b[26:28])
	h.BitCount = le.Uint16(b[28:30])
	h.Compression = le.Uint32(b[30:34])
	h.SizeImage = le.Uint32(b[34:38])
	h.XPelsPerMeter = le.Uint32(b[38:42])
	h.YPelsPerMeter = le.Uint32(b[42:46])
	h.ColorsUsed = le.Uint32(b[46:50])
	h.ColorsImportant = le.Uint32(b[50:54])
	return h
}

// Encode writes h into the first HeaderSize bytes of b in on-disk layout. It
// panics if b is shorter than HeaderSize.
func (h Header) Encode(b []byte) {
	_ = b[HeaderSize-1]
	le := binary.LittleEndian

	copy(b[0:2], h.Type[:])
	le.PutUint32(b[2:6], h.Size)
	copy(b[6:10], h.Reserved[:])
	le.PutUint32(b[10:14], h.OffBits)

	le.PutUint32(b[14:18], h.InfoSize)
	le.PutUint32(b[18:22], h.Width)
	le.PutUint32(b[22:26], h.Height)
	le.PutUint16(b[26:28], h.Planes)
	le.PutUint16(b[28:30], h.BitCount)
	le.PutUint32(b[30:34], h.Compression)
	le.PutUint32(b[34:38], h.SizeImage)
	le.PutUint32(b[38:42], h.XPelsPerMeter)
	le.PutUint32(b[42:46], h.YPelsPerMeter)
	le.PutUint32(b[46:50], h.ColorsUsed)
	le.PutUint32(b[50:54], h.ColorsImportant)
}

// Stride returns the padded length in bytes of one pixel row.
func (h Header) Stride() int {
	return stride(rowBytes(int(h.Width), int(h.BitCount)))
}

// Dump writes the header fields in a human readable table.
func (h Header) Dump(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Type               = %c%c\n"+
		"File Size          = 0x%08x\n"+
		"Offset             = 0x%08x\n\n"+
		"Size               = 0x%08x\n"+
		"Width              = 0x%08x\n"+
		"Height             = 0x%08x\n"+
		"Planes             = 0x%04x\n"+
		"Bits per Pixel     = 0x%04x\n"+
		"Compression        = 0x%08x\n"+
		"Image Size         = 0x%08x\n"+
		"X Pixels per Meter = 0x%08x\n"+
		"Y Pixels per Meter = 0x%08x\n"+
		"Colour Used        = 0x%08x\n"+
		"Colour Important   = 0x%08x\n",
		h.Type[0], h.Type[1], h.Size, h.OffBits,
		h.InfoSize, h.Width, h.Height, h.Planes, h.BitCount, h.Compression,
		h.SizeImage, h.XPelsPerMeter, h.YPelsPerMeter, h.ColorsUsed, h.ColorsImportant)
	return err
}
