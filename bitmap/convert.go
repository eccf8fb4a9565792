package bitmap

// To24 returns a new 24-bit bitmap built by expanding the palette indices of
// an indexed bitmap. The receiver is left untouched. It returns ErrTrueColor
// without allocating if the bitmap is already 24-bit.
func (b *Bitmap) To24() (*Bitmap, error) {
	h := b.Header()
	if h.BitCount >= trueColor {
		return nil, ErrTrueColor
	}

	bpp := int(h.BitCount)
	width, height := int(h.Width), int(h.Height)

	// Pixels in each whole byte; either 1, 2 or 8
	perByte := byteWidth / bpp
	// Pixels in the last byte of a row, zero if the last byte is full
	partial := width % perByte
	mask := byte(1<<uint(bpp) - 1)

	inLen := rowBytes(width, bpp)
	inStride := stride(inLen)
	outLen := width * 3
	outStride := stride(outLen)
	imgSize := outStride * height

	if uint64(imgSize)+HeaderSize > maxFileSize {
		return nil, ErrOutOfMemory
	}

	nh := h
	nh.BitCount = trueColor
	nh.Size = uint32(imgSize + HeaderSize)
	nh.OffBits = HeaderSize
	nh.SizeImage = uint32(imgSize)
	nh.ColorsUsed = 0
	nh.ColorsImportant = 0

	n := &Bitmap{buf: make([]byte, HeaderSize+imgSize)}
	n.setHeader(nh)

	pal := b.Palette()
	src := b.Pix()
	dst := n.buf[HeaderSize:]

	for i := 0; i < height; i++ {
		row := src[i*inStride : i*inStride+inLen]
		out := dst[i*outStride:]
		o := 0
		for j, v := range row {
			count := perByte
			if j == inLen-1 && partial != 0 {
				count = partial
			}
			for k := 0; k < count; k++ {
				q := pal.At(int(v >> uint((perByte-1-k)*bpp) & mask))
				out[o] = q.Blue
				out[o+1] = q.Green
				out[o+2] = q.Red
				o += 3
			}
		}
		// Padding bytes are already zero
	}

	return n, nil
}
