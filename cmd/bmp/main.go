package main

import (
	"errors"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/bodgit/bmp"
	"github.com/bodgit/bmp/bitmap"
	"github.com/urfave/cli/v2"
)

const defaultInput = "test.bmp"

func init() {
	// -V flips the image, so the version flag only has a long form
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}
}

// parseRect parses "left right bottom top"
func parseRect(s string) (bitmap.Rectangle, error) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return bitmap.Rectangle{}, errors.New("bad clip rectangle, expected \"left right bottom top\"")
	}
	var v [4]int
	for i, f := range fields {
		n, err := strconv.ParseInt(f, 0, 0)
		if err != nil {
			return bitmap.Rectangle{}, fmt.Errorf("bad clip rectangle: %w", err)
		}
		v[i] = int(n)
	}
	return bitmap.Rectangle{Left: v[0], Right: v[1], Bottom: v[2], Top: v[3]}, nil
}

func options(c *cli.Context, debug int) (bmp.Options, error) {
	opts := bmp.Options{
		Transform: bitmap.Config{
			Reverse:  c.Bool("reverse"),
			Contrast: c.Int("contrast"),
			Grey:     c.Bool("grey"),
			FlipV:    c.Bool("flipv"),
			FlipH:    c.Bool("fliph"),
		},
		Rect:  bitmap.Rectangle{Left: 0, Right: 100, Bottom: 0, Top: 100},
		Depth: c.Int("depth"),
		Debug: debug,
	}

	if c.IsSet("brightness") {
		if c.Int("brightness") <= 0 {
			return opts, errors.New("bad 'brightness' specification (brightness > 0)")
		}
		opts.Transform.Brightness = c.Int("brightness")
	}

	if contrast := c.Int("contrast"); contrast < 0 || contrast > 100 {
		return opts, errors.New("bad 'contrast' specification")
	}

	if c.IsSet("mono") {
		mono, err := bitmap.ParseChannels(c.String("mono"))
		if err != nil {
			return opts, err
		}
		opts.Transform.Mono = mono
	}

	if c.IsSet("clip") {
		rect, err := parseRect(c.String("clip"))
		if err != nil {
			return opts, err
		}
		opts.Transform.Clip = true
		opts.Rect = rect
	}

	if c.Bool("legacy-clamp") {
		opts.Clamp = bitmap.ClampLegacy
	}

	return opts, nil
}

func newLogger(debug int) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if debug > 0 {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func newFlags(debug *int) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"d"},
			Count:   debug,
			Usage:   "increase debug output level",
		},
		&cli.IntFlag{
			Name:    "brightness",
			Aliases: []string{"b"},
			Usage:   "change image brightness by specified percent (100% = normal)",
		},
		&cli.IntFlag{
			Name:    "contrast",
			Aliases: []string{"c"},
			Usage:   "change image contrast by specified percent (accepted, no effect)",
		},
		&cli.BoolFlag{
			Name:    "grey",
			Aliases: []string{"g"},
			Usage:   "change image to grey scale",
		},
		&cli.BoolFlag{
			Name:    "reverse",
			Aliases: []string{"r"},
			Usage:   "reverse image colours",
		},
		&cli.BoolFlag{
			Name:    "flipv",
			Aliases: []string{"V"},
			Usage:   "flip image about vertical axis",
		},
		&cli.BoolFlag{
			Name:    "fliph",
			Aliases: []string{"H"},
			Usage:   "flip image about horizontal axis",
		},
		&cli.StringFlag{
			Name:    "mono",
			Aliases: []string{"m"},
			Usage:   "extract monochromatic colour image: R[ed], G[reen], B[lue], Y[ellow], C[yan] or M[agenta]",
		},
		&cli.StringFlag{
			Name:    "clip",
			Aliases: []string{"C"},
			Usage:   "clip image to rectangle \"left right bottom top\"",
		},
		&cli.BoolFlag{
			Name:  "legacy-clamp",
			Usage: "clamp an oversized clip rectangle the way older bmp releases did",
		},
		&cli.IntFlag{
			Name:  "depth",
			Value: 24,
			Usage: "output bits per pixel (1, 4, 8 or 24)",
		},
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			EnvVars: []string{"BMP_INPUT"},
			Value:   defaultInput,
			Usage:   "input filename",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			EnvVars: []string{"BMP_OUTPUT"},
			Usage:   "output filename (default no output)",
		},
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "bmp"
	app.Usage = "Windows bitmap conversion and transformation utility"
	app.Version = "1.0.0"
	app.UseShortOptionHandling = true

	var debug int

	app.Flags = newFlags(&debug)

	app.Action = func(c *cli.Context) error {
		opts, err := options(c, debug)
		if err != nil {
			return cli.Exit(err, 1)
		}

		p, err := bmp.New(opts, newLogger(debug))
		if err != nil {
			return cli.Exit(err, 1)
		}

		if c.String("output") == "" {
			r, err := bmp.OpenFile(c.String("input"))
			if err != nil {
				return cli.Exit(err, 1)
			}
			defer r.Close()

			if err := p.Inspect(r); err != nil {
				return cli.Exit(err, 1)
			}
			return nil
		}

		if err := p.ProcessFile(c.String("input"), c.String("output")); err != nil {
			return cli.Exit(err, 1)
		}

		return nil
	}

	app.Commands = []*cli.Command{
		{
			Name:        "info",
			Usage:       "Print bitmap headers and colour table",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				r, err := bmp.OpenFile(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer r.Close()

				if err := bmp.Info(r, os.Stdout); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "batch",
			Usage:       "Transform every bitmap in a directory tree",
			Description: "Global transform flags apply to every file found.",
			ArgsUsage:   "SOURCE DESTINATION",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "workers",
					Value: 4,
					Usage: "number of files processed concurrently",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				opts, err := options(c, debug)
				if err != nil {
					return cli.Exit(err, 1)
				}

				p, err := bmp.New(opts, newLogger(debug))
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := p.Batch(c.Args().Get(0), c.Args().Get(1), c.Int("workers")); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
