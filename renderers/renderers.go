package renderers

import (
	"bytes"
	"image"
	"image/gif"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lssviz/surface"
	"github.com/lssviz/surface/renderers/plot3d"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/svg"
	"golang.org/x/image/tiff"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Size sets the width and height of the output.
type Size struct {
	W, H vg.Length
}

// DPI sets the resolution of raster output.
type DPI int

// Minify minifies SVG output.
type Minify bool

// DefaultSize is the output size when no Size option is given.
var DefaultSize = Size{16 * vg.Centimeter, 12 * vg.Centimeter}

type Options struct {
	Size
	DPI
	Minify
	GIF  *gif.Options
	TIFF *tiff.Options
}

func parseOptions(opts []interface{}) (Options, error) {
	options := Options{
		Size: DefaultSize,
		DPI:  vgimg.DefaultDPI,
	}
	for _, opt := range opts {
		switch o := opt.(type) {
		case Size:
			options.Size = o
		case DPI:
			options.DPI = o
		case Minify:
			options.Minify = o
		case *gif.Options:
			options.GIF = o
		case *tiff.Options:
			options.TIFF = o
		default:
			return Options{}, errors.Errorf("unknown option: %T(%v)", opt, opt)
		}
	}
	if options.W <= 0.0 || options.H <= 0.0 {
		return Options{}, errors.Errorf("bad size: %vx%v", options.W, options.H)
	} else if options.DPI <= 0 {
		return Options{}, errors.Errorf("bad resolution: %v dpi", int(options.DPI))
	}
	return options, nil
}

// Format returns the output format for a filename by its extension.
func Format(filename string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".png", ".gif", ".svg", ".pdf", ".eps", ".tex":
		return ext[1:], nil
	case ".jpg", ".jpeg":
		return "jpg", nil
	case ".tif", ".tiff":
		return "tiff", nil
	default:
		return "", errors.Errorf("unknown file extension: %v", ext)
	}
}

// Write writes the plot to filename, the format follows the file extension. Accepted options are Size, DPI, Minify, *gif.Options and *tiff.Options.
func Write(filename string, p *plot.Plot, opts ...interface{}) error {
	format, err := Format(filename)
	if err != nil {
		return err
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := Encode(f, format, p, opts...); err != nil {
		f.Close()
		os.Remove(filename)
		return errors.WithMessage(err, filename)
	}
	return f.Close()
}

// Encode writes the plot to w in the given format: png, jpg, gif, tiff, svg, pdf, eps or tex.
func Encode(w io.Writer, format string, p *plot.Plot, opts ...interface{}) error {
	options, err := parseOptions(opts)
	if err != nil {
		return err
	}

	switch format {
	case "png", "jpg", "gif", "tiff":
		c := rasterize(p, options)
		switch format {
		case "png":
			_, err = vgimg.PngCanvas{Canvas: c}.WriteTo(w)
		case "jpg":
			_, err = vgimg.JpegCanvas{Canvas: c}.WriteTo(w)
		case "gif":
			err = gif.Encode(w, c.Image(), options.GIF)
		case "tiff":
			err = tiff.Encode(w, c.Image(), options.TIFF)
		}
		return err
	case "svg":
		wt, err := p.WriterTo(options.W, options.H, format)
		if err != nil {
			return err
		}
		if !options.Minify {
			_, err = wt.WriteTo(w)
			return err
		}

		var buf bytes.Buffer
		if _, err := wt.WriteTo(&buf); err != nil {
			return err
		}
		m := minify.New()
		m.AddFunc("image/svg+xml", svg.Minify)
		return m.Minify("image/svg+xml", w, &buf)
	case "pdf", "eps", "tex":
		wt, err := p.WriterTo(options.W, options.H, format)
		if err != nil {
			return err
		}
		_, err = wt.WriteTo(w)
		return err
	default:
		return errors.Errorf("unknown format: %v", format)
	}
}

// Image rasterizes the plot. Accepted options are Size and DPI.
func Image(p *plot.Plot, opts ...interface{}) (image.Image, error) {
	options, err := parseOptions(opts)
	if err != nil {
		return nil, err
	}
	return rasterize(p, options).Image(), nil
}

func rasterize(p *plot.Plot, options Options) *vgimg.Canvas {
	c := vgimg.NewWith(vgimg.UseWH(options.W, options.H), vgimg.UseDPI(int(options.DPI)))
	p.Draw(draw.New(c))
	return c
}

// NewPlot returns the plot of a surface, nil options use plot3d.DefaultOptions.
func NewPlot(s surface.Surface, cfg surface.RenderConfig, opts *plot3d.Options) (*plot.Plot, error) {
	if opts == nil {
		opts = &plot3d.DefaultOptions
	}
	return plot3d.New(s, cfg, *opts)
}

// File is a surface.Display that writes the projected surface to Path.
type File struct {
	Path    string
	Options *plot3d.Options
	Write   []interface{} // options passed to Write
}

// Display implements the surface.Display interface.
func (f File) Display(s surface.Surface, cfg surface.RenderConfig) error {
	p, err := NewPlot(s, cfg, f.Options)
	if err != nil {
		return err
	}
	if err := Write(f.Path, p, f.Write...); err != nil {
		return err
	}
	logrus.WithField("path", f.Path).Debug("surface written")
	return nil
}

// Multi is a surface.Display that passes the surface to each display in turn and stops at the first error.
type Multi []surface.Display

// Display implements the surface.Display interface.
func (m Multi) Display(s surface.Surface, cfg surface.RenderConfig) error {
	for _, d := range m {
		if err := d.Display(s, cfg); err != nil {
			return err
		}
	}
	return nil
}
