package bmp

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const (
	extGzip = ".gz"
	extZstd = ".zst"
)

type readCloser struct {
	io.Reader
	close func() error
}

func (rc *readCloser) Close() error {
	return rc.close()
}

type writeCloser struct {
	io.Writer
	close func() error
}

func (wc *writeCloser) Close() error {
	return wc.close()
}

// OpenFile opens file for reading. Files ending in .gz or .zst are
// decompressed transparently.
func OpenFile(file string) (io.ReadCloser, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(file)) {
	case extGzip:
		zr, err := gzip.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, err
		}
		return &readCloser{zr, func() error {
			zr.Close()
			return f.Close()
		}}, nil
	case extZstd:
		zr, err := zstd.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, err
		}
		return &readCloser{zr, func() error {
			zr.Close()
			return f.Close()
		}}, nil
	}

	return f, nil
}

// CreateFile creates file for writing. Files ending in .gz or .zst are
// compressed transparently. The returned writer must be closed to flush any
// compressed data.
func CreateFile(file string) (io.WriteCloser, error) {
	f, err := os.Create(file)
	if err != nil {
		return nil, err
	}

	var zw io.WriteCloser
	switch strings.ToLower(filepath.Ext(file)) {
	case extGzip:
		zw = gzip.NewWriter(f)
	case extZstd:
		if zw, err = zstd.NewWriter(f); err != nil {
			f.Close()
			return nil, err
		}
	default:
		return f, nil
	}

	return &writeCloser{zw, func() error {
		if err := zw.Close(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}}, nil
}

// ProcessFile processes the bitmap in file in and writes the result to out.
// The input is fully read and closed before out is created, so in and out
// may name the same file. Nothing is written if processing fails.
func (p *Processor) ProcessFile(in, out string) error {
	r, err := OpenFile(in)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	err = p.Process(r, &buf)
	r.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}

	w, err := CreateFile(out)
	if err != nil {
		return err
	}

	if _, err := buf.WriteTo(w); err != nil {
		w.Close()
		os.Remove(out)
		return fmt.Errorf("%s: %w", out, err)
	}

	return w.Close()
}
