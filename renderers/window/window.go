// Package window shows a surface in a native window using fyne.
package window

import (
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	fyneCanvas "fyne.io/fyne/v2/canvas"
	"github.com/lssviz/surface"
	"github.com/lssviz/surface/renderers"
	"github.com/lssviz/surface/renderers/plot3d"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot/vg"
)

// ErrWindowClosed is returned when a window is displayed after the application ran, fyne runs only once per process.
var ErrWindowClosed = errors.New("window: application already ran")

var ran int32

// Window is a surface.Display that shows the projected surface and blocks until the window is closed.
type Window struct {
	Width, Height float32 // in pixels, zero uses 800x600
	DPI           int     // raster resolution, zero uses 96
	Options       *plot3d.Options
}

func (w Window) size() (float32, float32) {
	width, height := w.Width, w.Height
	if width <= 0.0 {
		width = 800.0
	}
	if height <= 0.0 {
		height = 600.0
	}
	return width, height
}

// Content returns the rasterized surface as a fyne image that keeps its aspect ratio when resized.
func (w Window) Content(s surface.Surface, cfg surface.RenderConfig) (fyne.CanvasObject, error) {
	p, err := renderers.NewPlot(s, cfg, w.Options)
	if err != nil {
		return nil, err
	}

	dpi := w.DPI
	if dpi <= 0 {
		dpi = 96
	}
	width, height := w.size()
	size := renderers.Size{
		W: vg.Length(width) * vg.Inch / 96.0,
		H: vg.Length(height) * vg.Inch / 96.0,
	}
	img, err := renderers.Image(p, size, renderers.DPI(dpi))
	if err != nil {
		return nil, err
	}

	content := fyneCanvas.NewImageFromImage(img)
	content.FillMode = fyneCanvas.ImageFillContain
	content.SetMinSize(fyne.NewSize(width/2.0, height/2.0))
	return content, nil
}

// Display implements the surface.Display interface.
func (w Window) Display(s surface.Surface, cfg surface.RenderConfig) error {
	content, err := w.Content(s, cfg)
	if err != nil {
		return err
	}
	if !atomic.CompareAndSwapInt32(&ran, 0, 1) {
		return ErrWindowClosed
	}

	title := cfg.Title
	if title == "" {
		title = "Surface"
	}
	logrus.WithField("title", title).Debug("opening window")

	a := app.New()
	win := a.NewWindow(title)
	win.Resize(fyne.NewSize(w.size()))
	win.SetContent(content)
	win.ShowAndRun()
	return nil
}
