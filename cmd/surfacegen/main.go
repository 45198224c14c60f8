package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/lssviz/surface"
	"github.com/lssviz/surface/renderers"
	"github.com/lssviz/surface/renderers/browser"
	"github.com/lssviz/surface/renderers/plot3d"
	"github.com/lssviz/surface/renderers/slice"
	"github.com/lssviz/surface/renderers/window"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tdewolff/argp"
	"gonum.org/v1/plot/vg"
)

type Surfacegen struct {
	Title    string  `short:"t" desc:"Plot title"`
	XLabel   string  `desc:"X axis label, defaults to the name of the X abscissa"`
	YLabel   string  `desc:"Y axis label, defaults to the name of the Y abscissa"`
	ZLabel   string  `desc:"Z axis label"`
	Truncate int     `short:"k" desc:"Trailing rows to drop from staggered data"`
	Output   string  `short:"o" desc:"Output files, comma separated, format by extension"`
	Display  string  `short:"d" desc:"Display: window, browser or none (default window)"`
	View     string  `desc:"View azimuth and elevation in degrees (default -60,30)"`
	Width    float64 `desc:"Output width in cm (default 16)"`
	Height   float64 `desc:"Output height in cm (default 12)"`
	DPI      int     `desc:"Raster resolution (default 96)"`
	Minify   bool    `desc:"Minify SVG output"`
	Slice    string  `desc:"Cross-section at y:<index> or x:<index>"`
	SliceOut string  `desc:"Cross-section output file, PNG or SVG (default section.png)"`
	Config   string  `short:"c" desc:"TOML config file"`
	Log      string  `desc:"Log level, overrides SURFACEGEN_LOG"`
	Input    string  `index:"0" desc:"Input file, XML or print format"`
}

type Convert struct {
	Output string `short:"o" desc:"Output XML file, defaults to stdout"`
	Input  string `index:"0" desc:"Input file, XML or print format"`
}

func main() {
	root := argp.NewCmd(&Surfacegen{}, "3D surface plots of grid data")
	root.AddCmd(&Convert{}, "convert", "Convert print output to the XML surface format")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Surfacegen) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	cfg, err := LoadConfig(cmd.Config)
	if err != nil {
		return err
	}
	cfg.Merge(cmd, os.Getenv("SURFACEGEN_LOG"))
	if err := setupLogging(cfg.Log); err != nil {
		return err
	}

	src, err := surface.Open(cmd.Input)
	if err != nil {
		return err
	}
	display, err := cfg.Displays()
	if err != nil {
		return err
	}

	r := surface.NewSurfaceRenderer(src, display)
	r.SetTitle(cfg.Title)
	r.SetXLabel(cfg.XLabel)
	r.SetYLabel(cfg.YLabel)
	r.SetZLabel(cfg.ZLabel)
	if namer, ok := src.(surface.AxisNamer); ok {
		xName, yName := namer.AxisNames()
		if cfg.XLabel == "" {
			r.SetXLabel(xName)
		}
		if cfg.YLabel == "" {
			r.SetYLabel(yName)
		}
	}

	logrus.WithFields(logrus.Fields{
		"input":    cmd.Input,
		"layout":   src.Layout(),
		"truncate": cfg.Truncate,
	}).Info("rendering surface")
	return r.Render(cfg.Truncate)
}

func (cmd *Convert) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	src, err := surface.Open(cmd.Input)
	if err != nil {
		return err
	}
	if cmd.Output == "" {
		return surface.WriteXML(os.Stdout, src)
	}

	f, err := os.Create(cmd.Output)
	if err != nil {
		return err
	}
	if err := surface.WriteXML(f, src); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func setupLogging(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return nil
}

// parseView parses "azimuth,elevation" in degrees.
func parseView(s string) (plot3d.Options, error) {
	opts := plot3d.DefaultOptions
	az, el, ok := strings.Cut(s, ",")
	if !ok {
		return opts, errors.Errorf("bad view %q: expected azimuth,elevation", s)
	}

	var err error
	if opts.Azimuth, err = strconv.ParseFloat(strings.TrimSpace(az), 64); err != nil {
		return opts, errors.Wrapf(err, "bad view azimuth %q", az)
	}
	if opts.Elevation, err = strconv.ParseFloat(strings.TrimSpace(el), 64); err != nil {
		return opts, errors.Wrapf(err, "bad view elevation %q", el)
	}
	return opts, nil
}

// Displays returns the displays in the order files, cross-section, then the interactive display.
func (cfg Config) Displays() (renderers.Multi, error) {
	opts, err := parseView(cfg.View)
	if err != nil {
		return nil, err
	}
	size := renderers.Size{W: vg.Length(cfg.Width) * vg.Centimeter, H: vg.Length(cfg.Height) * vg.Centimeter}

	displays := renderers.Multi{}
	for _, output := range cfg.Output {
		displays = append(displays, renderers.File{
			Path:    output,
			Options: &opts,
			Write:   []interface{}{size, renderers.DPI(cfg.DPI), renderers.Minify(cfg.Minify)},
		})
	}

	if cfg.Slice != "" {
		sec, err := slice.ParseSection(cfg.Slice)
		if err != nil {
			return nil, err
		}
		displays = append(displays, slice.Chart{Path: cfg.SliceOut, Section: sec})
	}

	switch strings.ToLower(cfg.Display) {
	case "window":
		displays = append(displays, window.Window{Options: &opts})
	case "browser":
		displays = append(displays, browser.Browser{Options: &opts, Size: size, Minify: cfg.Minify})
	case "none", "":
	default:
		return nil, errors.Errorf("unknown display: %v", cfg.Display)
	}

	if len(displays) == 0 {
		return nil, errors.Errorf("nothing to display: set an output file or a display")
	}
	return displays, nil
}
