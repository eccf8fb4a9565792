package bitmap

import (
	"fmt"
	"image/color"
	"io"
	"math/bits"
)

// Quad is one colour table entry.
type Quad struct {
	Blue, Green, Red, Reserved uint8
}

// Palette is a view of a colour table made of 4 byte Blue, Green, Red,
// Reserved entries.
type Palette []byte

// Len returns the number of entries.
func (p Palette) Len() int {
	return len(p) / quadSize
}

// At returns entry i, or black if i is beyond the end of the table.
func (p Palette) At(i int) Quad {
	if i < 0 || i >= p.Len() {
		return Quad{}
	}
	e := p[i*quadSize:]
	return Quad{Blue: e[0], Green: e[1], Red: e[2], Reserved: e[3]}
}

// Colors converts the table to a color.Palette.
func (p Palette) Colors() color.Palette {
	c := make(color.Palette, p.Len())
	for i := range c {
		q := p.At(i)
		c[i] = color.NRGBA{q.Red, q.Green, q.Blue, 0xff}
	}
	return c
}

// Dump writes the first n entries of the table, one per line.
func (p Palette) Dump(w io.Writer, n int) error {
	for i := 0; i < n; i++ {
		q := p.At(i)
		if _, err := fmt.Fprintf(w, "%03d : Red = 0x%02x Green = 0x%02x Blue = 0x%02x\n", i, q.Red, q.Green, q.Blue); err != nil {
			return err
		}
	}
	return nil
}

// Channels is a set of colour channels used for monochrome extraction.
type Channels uint8

// Channel flags. The zero value disables monochrome extraction.
const (
	Red Channels = 1 << iota
	Green
	Blue

	Yellow      = Red | Green
	Cyan        = Blue | Green
	Magenta     = Red | Blue
	AllChannels = Red | Green | Blue
)

// ParseChannels maps a colour letter (R, G, B, Y, C or M, either case) to its
// channel set.
func ParseChannels(s string) (Channels, error) {
	if s == "" {
		return 0, fmt.Errorf("bitmap: empty monochrome colour")
	}
	switch s[0] {
	case 'R', 'r':
		return Red, nil
	case 'G', 'g':
		return Green, nil
	case 'B', 'b':
		return Blue, nil
	case 'Y', 'y':
		return Yellow, nil
	case 'C', 'c':
		return Cyan, nil
	case 'M', 'm':
		return Magenta, nil
	}
	return 0, fmt.Errorf("bitmap: bad monochrome colour %q", s)
}

// Has reports whether every channel in o is in c.
func (c Channels) Has(o Channels) bool {
	return c&o == o
}

// Count returns the number of channels in the set.
func (c Channels) Count() int {
	return bits.OnesCount8(uint8(c & AllChannels))
}
