package bitmap

// Config controls Transform. The zero value leaves the pixels unchanged.
type Config struct {
	Clip       bool     // Clip the bitmap after transforming; used by callers
	Reverse    bool     // Invert every colour
	Brightness int      // Percentage scale; 100 is normal and 0 disables
	Contrast   int      // Percentage contrast, 0 to 100; not implemented
	Grey       bool     // Set every channel to the channel average
	FlipV      bool     // Flip about the vertical axis
	FlipH      bool     // Flip about the horizontal axis
	Mono       Channels // Channels kept by monochrome extraction; 0 disables
}

func (c *Config) validate() error {
	if c.Brightness < 0 || c.Contrast < 0 || c.Contrast > 100 || c.Mono > AllChannels {
		return ErrInvalidParameter
	}
	return nil
}

// greyDivisor normalises the grey average by the number of channels that
// survive monochrome extraction.
func (c *Config) greyDivisor() int {
	switch c.Mono.Count() {
	case 1:
		return 1
	case 2:
		return 2
	}
	return 3
}

func clamp(v int) uint8 {
	if v > 0xff {
		return 0xff
	}
	return uint8(v)
}

func (c *Config) scale(v int) int {
	// Any non-zero channel saturates long before v*Brightness overflows
	if v != 0 && c.Brightness > 1<<23 {
		return 0xff
	}
	return int(clamp(v * c.Brightness / 100))
}

func (c *Config) pixel(p []byte) {
	blue, green, red := int(p[0]), int(p[1]), int(p[2])

	if c.Reverse {
		blue ^= 0xff
		green ^= 0xff
		red ^= 0xff
	}

	if c.Brightness != 0 {
		blue = c.scale(blue)
		green = c.scale(green)
		red = c.scale(red)
	}

	if c.Mono != 0 {
		if !c.Mono.Has(Blue) {
			blue = 0
		}
		if !c.Mono.Has(Green) {
			green = 0
		}
		if !c.Mono.Has(Red) {
			red = 0
		}

		// Two channels left, both become their average
		if c.Mono.Count() == 2 {
			avg := (blue + green + red) / 2
			if c.Mono.Has(Blue) {
				blue = avg
			}
			if c.Mono.Has(Green) {
				green = avg
			}
			if c.Mono.Has(Red) {
				red = avg
			}
		}
	}

	if c.Grey {
		v := (blue + green + red) / c.greyDivisor()
		blue, green, red = v, v, v
	}

	p[0], p[1], p[2] = uint8(blue), uint8(green), uint8(red)
}

// Transform applies c to the pixels of a 24-bit bitmap in place. The stages
// run per pixel in a fixed order: flip, reverse, brightness, monochrome, grey.
// Nothing is modified if an error is returned.
func (b *Bitmap) Transform(c Config) error {
	h := b.Header()
	if h.BitCount != trueColor {
		return ErrNotTrueColor
	}
	if err := c.validate(); err != nil {
		return err
	}

	height := int(h.Height)
	rowLen := int(h.Width) * 3
	padRowLen := stride(rowLen)
	data := b.Pix()

	for i := 0; i < height; i++ {
		row := data[i*padRowLen : (i+1)*padRowLen]

		if c.FlipH && i < height/2 {
			mirror := data[(height-1-i)*padRowLen : (height-i)*padRowLen]
			for j := range row {
				row[j], mirror[j] = mirror[j], row[j]
			}
		}

		for j := 0; j < rowLen; j += 3 {
			if c.FlipV && j < rowLen/2 {
				m := rowLen - 3 - j
				row[j], row[m] = row[m], row[j]
				row[j+1], row[m+1] = row[m+1], row[j+1]
				row[j+2], row[m+2] = row[m+2], row[j+2]
			}
			c.pixel(row[j : j+3])
		}
	}

	return nil
}
