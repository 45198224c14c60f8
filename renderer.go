package surface

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// RenderConfig holds the title and axis labels of a rendered surface. Empty strings render blank.
type RenderConfig struct {
	Title  string
	XLabel string
	YLabel string
	ZLabel string
}

// Display shows a prepared surface. Interactive displays block until the user dismisses them.
type Display interface {
	Display(Surface, RenderConfig) error
}

// DisplayFunc adapts a function to the Display interface.
type DisplayFunc func(Surface, RenderConfig) error

func (f DisplayFunc) Display(s Surface, cfg RenderConfig) error {
	return f(s, cfg)
}

// Prepare builds the surface of a source. For GridAligned the grid is meshgrid(x, y) and trailingRows is ignored. For GridStaggered the last trailingRows rows of the ordinate and the last trailingRows y values are dropped, the grid is meshgrid(y, x) and the ordinate is transposed to match it. Other layouts return ErrUnsupportedLayout.
func Prepare(src DataSource, trailingRows int) (Surface, error) {
	s, _, err := prepare(src, trailingRows)
	return s, err
}

// prepare is Prepare that also returns the layout it read from src.
func prepare(src DataSource, trailingRows int) (Surface, Layout, error) {
	if trailingRows < 0 {
		return Surface{}, UnknownLayout, errors.Wrapf(ErrOutOfRange, "negative trailing rows %d", trailingRows)
	}

	x, y, err := src.Abscissa()
	if err != nil {
		return Surface{}, UnknownLayout, err
	}

	layout := src.Layout()
	switch layout {
	case GridAligned:
		z, err := src.Ordinate(0)
		if err != nil {
			return Surface{}, layout, err
		}
		X, Y := Meshgrid(x, y)
		s, err := NewSurface(X, Y, z)
		return s, layout, err
	case GridStaggered:
		if len(y) < trailingRows {
			return Surface{}, layout, errors.Wrapf(ErrOutOfRange, "cannot drop %d trailing rows of %d y values", trailingRows, len(y))
		}
		z, err := src.Ordinate(trailingRows)
		if err != nil {
			return Surface{}, layout, err
		}
		y = y[:len(y)-trailingRows]

		Y, X := Meshgrid(y, x)
		if shape, err := matrixShape("Z", z); err != nil {
			return Surface{}, layout, err
		} else if want := (Shape{len(y), len(x)}); shape != want {
			return Surface{}, layout, &ShapeError{Name: "Z", Want: want, Got: shape, Row: -1}
		}
		Z, err := Transpose(z)
		if err != nil {
			return Surface{}, layout, err
		}
		s, err := NewSurface(X, Y, Z)
		return s, layout, err
	default:
		return Surface{}, layout, errors.Wrapf(ErrUnsupportedLayout, "%v", layout)
	}
}

// SurfaceRenderer renders one DataSource to a Display.
type SurfaceRenderer struct {
	src     DataSource
	display Display
	cfg     RenderConfig
	log     logrus.FieldLogger
}

// NewSurfaceRenderer returns a renderer bound to src. The source is not read until Render.
func NewSurfaceRenderer(src DataSource, display Display) *SurfaceRenderer {
	return &SurfaceRenderer{
		src:     src,
		display: display,
		log:     logrus.StandardLogger(),
	}
}

// SetLogger sets the logger used for debug output.
func (r *SurfaceRenderer) SetLogger(log logrus.FieldLogger) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	r.log = log
}

func (r *SurfaceRenderer) SetXLabel(label string) {
	r.cfg.XLabel = label
}

func (r *SurfaceRenderer) SetYLabel(label string) {
	r.cfg.YLabel = label
}

func (r *SurfaceRenderer) SetZLabel(label string) {
	r.cfg.ZLabel = label
}

func (r *SurfaceRenderer) SetTitle(title string) {
	r.cfg.Title = title
}

// Config returns the current title and labels.
func (r *SurfaceRenderer) Config() RenderConfig {
	return r.cfg
}

// Render prepares the surface and passes it with the current config to the display, returning when the display does. Each call reads the source again.
func (r *SurfaceRenderer) Render(trailingRows int) error {
	return r.RenderWith(r.cfg, trailingRows)
}

// RenderWith is like Render but uses cfg instead of the config set on the renderer.
func (r *SurfaceRenderer) RenderWith(cfg RenderConfig, trailingRows int) error {
	s, layout, err := prepare(r.src, trailingRows)
	if err != nil {
		return err
	}
	r.log.WithFields(logrus.Fields{
		"layout": layout,
		"shape":  s.Shape(),
		"title":  cfg.Title,
	}).Debug("rendering surface")
	return r.display.Display(s, cfg)
}
