package bitmap

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClipContainment(t *testing.T) {
	rects := []Rectangle{
		{Left: 0, Right: 7, Bottom: 0, Top: 5},
		{Left: 1, Right: 3, Bottom: 2, Top: 4},
		{Left: 6, Right: 7, Bottom: 4, Top: 5},
		{Left: 2, Right: 7, Bottom: 0, Top: 1},
		{Left: 0, Right: 1, Bottom: 0, Top: 5},
	}

	for _, r := range rects {
		orig := patterned(t, 7, 5)
		b := clone(t, orig)

		n, err := b.Clip(r, ClampTop)
		require.NoError(t, err, "%+v", r)

		w, h := r.Right-r.Left, r.Top-r.Bottom
		hdr := b.Header()
		assert.Equal(t, uint32(w), hdr.Width)
		assert.Equal(t, uint32(h), hdr.Height)
		assert.Equal(t, uint32(stride(3*w)*h), hdr.SizeImage)
		assert.Equal(t, hdr.OffBits+hdr.SizeImage, hdr.Size)
		assert.Equal(t, int(hdr.Size), n)
		assert.Equal(t, n, b.Len())

		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				assert.Equal(t, pixelAt(orig, r.Left+x, r.Bottom+y), pixelAt(b, x, y), "%+v at %d,%d", r, x, y)
			}
			row := b.Pix()[y*hdr.Stride():]
			for _, v := range row[3*w:hdr.Stride()] {
				assert.Zero(t, v)
			}
		}

		// Result is still a loadable bitmap
		_, err = Decode(bytes.NewReader(b.Bytes()))
		assert.NoError(t, err)
	}
}

func TestClipClamp(t *testing.T) {
	tests := []struct {
		name  string
		rect  Rectangle
		mode  ClampMode
		width int
		high  int
		err   error
	}{
		{"right clamped", Rectangle{Left: 2, Right: 100, Bottom: 0, Top: 3}, ClampTop, 4, 3, nil},
		{"top clamped", Rectangle{Left: 0, Right: 3, Bottom: 1, Top: 100}, ClampTop, 3, 3, nil},
		{"legacy writes height into right", Rectangle{Left: 0, Right: 6, Bottom: 1, Top: 100}, ClampLegacy, 0, 0, ErrInvalidRectangle},
		{"legacy within bounds", Rectangle{Left: 1, Right: 6, Bottom: 1, Top: 4}, ClampLegacy, 5, 3, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := patterned(t, 6, 4)
			_, err := b.Clip(tt.rect, tt.mode)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint32(tt.width), b.Header().Width)
			assert.Equal(t, uint32(tt.high), b.Header().Height)
		})
	}
}

func TestClipLegacyTallImage(t *testing.T) {
	// Only Right is clamped, so Top stays outside the image
	b := patterned(t, 6, 2)
	_, err := b.Clip(Rectangle{Left: 0, Right: 5, Bottom: 0, Top: 3}, ClampLegacy)
	assert.ErrorIs(t, err, ErrInvalidRectangle)

	b = patterned(t, 6, 2)
	_, err = b.Clip(Rectangle{Left: 0, Right: 5, Bottom: 0, Top: 3}, ClampTop)
	require.NoError(t, err)
	assert.Equal(t, uint32(5), b.Header().Width)
	assert.Equal(t, uint32(2), b.Header().Height)
}

func TestClipRejects(t *testing.T) {
	rects := []Rectangle{
		{Left: 3, Right: 3, Bottom: 0, Top: 2},
		{Left: 4, Right: 2, Bottom: 0, Top: 2},
		{Left: 0, Right: 2, Bottom: 2, Top: 2},
		{Left: 0, Right: 2, Bottom: 3, Top: 1},
		{Left: 10, Right: 20, Bottom: 0, Top: 2},
		{Left: -1, Right: 2, Bottom: 0, Top: 2},
		{Left: 0, Right: 2, Bottom: -1, Top: 2},
	}

	for _, r := range rects {
		b := patterned(t, 5, 4)
		before := append([]byte(nil), b.Bytes()...)
		n, err := b.Clip(r, ClampTop)
		assert.ErrorIs(t, err, ErrInvalidRectangle, "%+v", r)
		assert.Zero(t, n)
		assert.Equal(t, before, b.Bytes(), "%+v", r)
	}
}

func TestClipNotTrueColor(t *testing.T) {
	b := &Bitmap{buf: encodeIndexed(4, 2, make([]Quad, 16), [][]byte{{0x12}})}
	_, err := b.Clip(Rectangle{Left: 0, Right: 1, Bottom: 0, Top: 1}, ClampTop)
	assert.ErrorIs(t, err, ErrNotTrueColor)
}

func TestImageRoundTrip(t *testing.T) {
	b := patterned(t, 3, 2)
	m, err := b.Image()
	require.NoError(t, err)

	// Top-down: row 0 of the image is the last stored row
	c := m.NRGBAAt(0, 0)
	assert.Equal(t, pixelAt(b, 0, 1), [3]byte{c.B, c.G, c.R})

	n, err := FromImage(m)
	require.NoError(t, err)
	assert.Equal(t, b.Bytes(), n.Bytes())

	_, err = (&Bitmap{buf: encodeIndexed(8, 1, []Quad{{}}, [][]byte{{0}})}).Image()
	assert.ErrorIs(t, err, ErrNotTrueColor)

	_, err = New(0, 1)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
