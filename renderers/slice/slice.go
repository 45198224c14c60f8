// Package slice draws a cross-section of a surface as a 2D line chart using go-chart.
package slice

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lssviz/surface"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Section selects the grid line holding the Index-th value of an axis fixed, Axis is 'x' or 'y'.
type Section struct {
	Axis  byte
	Index int
}

// ParseSection parses sections of the form "y:3" or "x:0".
func ParseSection(s string) (Section, error) {
	axis, index, ok := strings.Cut(strings.TrimSpace(s), ":")
	axis = strings.ToLower(axis)
	if !ok || axis != "x" && axis != "y" {
		return Section{}, errors.Errorf("bad section %q: expected x:<index> or y:<index>", s)
	}
	i, err := strconv.Atoi(index)
	if err != nil {
		return Section{}, errors.Wrapf(err, "bad section %q", s)
	}
	return Section{Axis: axis[0], Index: i}, nil
}

func (sec Section) String() string {
	return string(sec.Axis) + ":" + strconv.Itoa(sec.Index)
}

// Line is a cross-section of a surface, Z as a function of T while the other axis equals Fixed.
type Line struct {
	T, Z  []float64
	Fixed float64
}

// Cut returns the cross-section of s. The grid lines are rows or columns of s depending on which axis indexes the rows, so it works for both grid layouts.
func Cut(s surface.Surface, sec Section) (Line, error) {
	fixed, varying := s.X, s.Y
	if sec.Axis == 'y' {
		fixed, varying = s.Y, s.X
	} else if sec.Axis != 'x' {
		return Line{}, errors.Errorf("bad section axis %q", sec.Axis)
	}

	shape := s.Shape()
	if sec.Axis == rowAxis(s) {
		if sec.Index < 0 || shape.Rows <= sec.Index {
			return Line{}, errors.Wrapf(surface.ErrOutOfRange, "section %v of %d", sec, shape.Rows)
		}
		return Line{
			T:     append([]float64{}, varying[sec.Index]...),
			Z:     append([]float64{}, s.Z[sec.Index]...),
			Fixed: fixed[sec.Index][0],
		}, nil
	}

	if sec.Index < 0 || shape.Cols <= sec.Index {
		return Line{}, errors.Wrapf(surface.ErrOutOfRange, "section %v of %d", sec, shape.Cols)
	}
	line := Line{Fixed: fixed[0][sec.Index]}
	for i := range s.Z {
		line.T = append(line.T, varying[i][sec.Index])
		line.Z = append(line.Z, s.Z[i][sec.Index])
	}
	return line, nil
}

// rowAxis returns the axis whose values index the rows of s. Aligned grids have X varying along a row and Y down a column, staggered grids the opposite.
func rowAxis(s surface.Surface) byte {
	shape := s.Shape()
	if 1 < shape.Cols {
		if s.X[0][0] != s.X[0][1] {
			return 'y'
		}
		return 'x'
	} else if 1 < shape.Rows && s.X[0][0] != s.X[1][0] {
		return 'x'
	}
	return 'y'
}

// Finite returns the line without points where T or Z is NaN or infinite.
func (l Line) Finite() Line {
	f := Line{Fixed: l.Fixed}
	for i := range l.T {
		if isFinite(l.T[i]) && isFinite(l.Z[i]) {
			f.T = append(f.T, l.T[i])
			f.Z = append(f.Z, l.Z[i])
		}
	}
	return f
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Chart is a surface.Display that writes a cross-section to Path as PNG or SVG.
type Chart struct {
	Path          string
	Section       Section
	Width, Height int // in pixels, zero uses the go-chart defaults
}

// Render writes the cross-section chart to w.
func (c Chart) Render(w io.Writer, rp chart.RendererProvider, s surface.Surface, cfg surface.RenderConfig) error {
	line, err := Cut(s, c.Section)
	if err != nil {
		return err
	}
	line = line.Finite()
	if len(line.T) < 2 {
		return errors.Errorf("section %v has %d finite points, need at least 2", c.Section, len(line.T))
	}

	xName, fixedName := cfg.XLabel, cfg.YLabel
	if c.Section.Axis == 'x' {
		xName, fixedName = cfg.YLabel, cfg.XLabel
	}
	if fixedName == "" {
		fixedName = string(c.Section.Axis)
	}

	graph := chart.Chart{
		Title:  cfg.Title,
		Width:  c.Width,
		Height: c.Height,
		XAxis:  chart.XAxis{Name: xName},
		YAxis:  chart.YAxis{Name: cfg.ZLabel},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    fixedName + " = " + strconv.FormatFloat(line.Fixed, 'g', 6, 64),
				XValues: line.T,
				YValues: line.Z,
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("21918c"),
					StrokeWidth: 2.0,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(rp, w)
}

// Display implements the surface.Display interface.
func (c Chart) Display(s surface.Surface, cfg surface.RenderConfig) error {
	var rp chart.RendererProvider
	switch ext := strings.ToLower(filepath.Ext(c.Path)); ext {
	case ".png":
		rp = chart.PNG
	case ".svg":
		rp = chart.SVG
	default:
		return errors.Errorf("unknown file extension: %v", ext)
	}

	f, err := os.Create(c.Path)
	if err != nil {
		return err
	}
	if err := c.Render(f, rp, s, cfg); err != nil {
		f.Close()
		os.Remove(c.Path)
		return errors.WithMessage(err, c.Path)
	}
	logrus.WithFields(logrus.Fields{"path": c.Path, "section": c.Section.String()}).Debug("section written")
	return f.Close()
}
