// Package browser shows a surface as SVG in the default web browser.
package browser

import (
	"os"

	"github.com/lssviz/surface"
	"github.com/lssviz/surface/renderers"
	"github.com/lssviz/surface/renderers/plot3d"
	"github.com/pkg/browser"
	"github.com/sirupsen/logrus"
)

var openFile = browser.OpenFile

// Browser is a surface.Display that writes the projected surface as SVG and opens it in the browser.
type Browser struct {
	Path    string // empty writes to a temporary file
	Options *plot3d.Options
	Size    renderers.Size // zero uses renderers.DefaultSize
	Minify  bool
}

// Display implements the surface.Display interface.
func (b Browser) Display(s surface.Surface, cfg surface.RenderConfig) error {
	p, err := renderers.NewPlot(s, cfg, b.Options)
	if err != nil {
		return err
	}

	var f *os.File
	if b.Path == "" {
		f, err = os.CreateTemp("", "surface-*.svg")
	} else {
		f, err = os.Create(b.Path)
	}
	if err != nil {
		return err
	}

	opts := []interface{}{renderers.Minify(b.Minify)}
	if b.Size != (renderers.Size{}) {
		opts = append(opts, b.Size)
	}
	if err := renderers.Encode(f, "svg", p, opts...); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	logrus.WithField("path", f.Name()).Debug("opening browser")
	return openFile(f.Name())
}
