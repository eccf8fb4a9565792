/*
Package bmp is a library for reading, transforming and writing Windows BMP
images.

A Processor runs the same sequence as the bmp command line tool: the bitmap
is loaded, indexed images are expanded to 24 bits per pixel, the transforms
are applied, the result is optionally clipped and finally written out, either
as a 24-bit bitmap or re-encoded with a palette.
*/
package bmp

import (
	"errors"
	"io"
	"log"

	"github.com/bodgit/bmp/bitmap"
	"github.com/bodgit/bmp/indexed"
)

// Debug levels
const (
	DebugHeader  = 1 // Dump the bitmap headers
	DebugPalette = 2 // Also dump the colour table
	DebugStages  = 3 // Also log each processing stage
)

// Options controls a Processor.
type Options struct {
	Transform bitmap.Config
	Rect      bitmap.Rectangle // Used when Transform.Clip is set
	Clamp     bitmap.ClampMode
	Depth     int // Output bits per pixel; 0 or 24 keeps 24, else 1, 4 or 8
	Debug     int
}

// Processor applies Options to bitmaps.
type Processor struct {
	opts   Options
	logger *log.Logger
}

var errDepth = errors.New("bmp: output depth must be 1, 4, 8 or 24")

// New returns a Processor. Debug output is written to logger, or discarded
// if logger is nil.
func New(opts Options, logger *log.Logger) (*Processor, error) {
	switch opts.Depth {
	case 0, 1, 4, 8, 24:
	default:
		return nil, errDepth
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Processor{
		opts:   opts,
		logger: logger,
	}, nil
}

func (p *Processor) dump(h bitmap.Header, pal bitmap.Palette) error {
	if p.opts.Debug < DebugHeader {
		return nil
	}
	if err := h.Dump(p.logger.Writer()); err != nil {
		return err
	}
	if p.opts.Debug < DebugPalette || h.BitCount == 24 {
		return nil
	}
	return pal.Dump(p.logger.Writer(), 1<<h.BitCount)
}

func (p *Processor) stage(format string, v ...interface{}) {
	if p.opts.Debug >= DebugStages {
		p.logger.Printf(format, v...)
	}
}

// Info reads a bitmap from r and writes its headers and colour table to w.
func Info(r io.Reader, w io.Writer) error {
	b, err := bitmap.Decode(r)
	if err != nil {
		return err
	}
	h := b.Header()
	if err := h.Dump(w); err != nil {
		return err
	}
	if h.BitCount == 24 {
		return nil
	}
	return b.Palette().Dump(w, 1<<h.BitCount)
}

// Inspect reads the headers of a bitmap from r, and the colour table when the
// debug level asks for it, writing them to the logger. The pixel data is not
// read.
func (p *Processor) Inspect(r io.Reader) error {
	h, err := bitmap.DecodeHeaderFrom(r)
	if err != nil {
		return err
	}
	var pal bitmap.Palette
	if p.opts.Debug >= DebugPalette {
		if pal, err = bitmap.DecodePaletteFrom(r, h); err != nil {
			return err
		}
	}
	return p.dump(h, pal)
}

// Process reads a bitmap from r, transforms it and writes the result to w.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	b, err := bitmap.Decode(r)
	if err != nil {
		return err
	}
	if err := p.dump(b.Header(), b.Palette()); err != nil {
		return err
	}

	if h := b.Header(); h.BitCount != 24 {
		p.stage("Converting %d bit bitmap to 24 bit\n", h.BitCount)
		if b, err = b.To24(); err != nil {
			return err
		}
	}

	p.stage("Transforming %+v\n", p.opts.Transform)
	if err := b.Transform(p.opts.Transform); err != nil {
		return err
	}

	if p.opts.Transform.Clip {
		p.stage("Clipping to %+v\n", p.opts.Rect)
		if _, err := b.Clip(p.opts.Rect, p.opts.Clamp); err != nil {
			return err
		}
	}

	switch p.opts.Depth {
	case 1, 4, 8:
		p.stage("Encoding with %d bits per pixel\n", p.opts.Depth)
		m, err := b.Image()
		if err != nil {
			return err
		}
		return indexed.Encode(w, m, p.opts.Depth)
	}

	p.stage("Writing %d bytes\n", b.Len())
	_, err = b.WriteTo(w)
	return err
}
