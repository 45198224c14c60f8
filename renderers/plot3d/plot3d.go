// Package plot3d draws a surface.Surface as an orthographic 3D projection on a gonum plot.
package plot3d

import (
	"image/color"
	"math"
	"sort"
	"strconv"

	"github.com/lssviz/surface"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	paneColor   = color.Gray{0xF2}
	paneStyle   = draw.LineStyle{Color: color.Gray{0xB0}, Width: vg.Points(0.5)}
	gridStyle   = draw.LineStyle{Color: color.Gray{0xDD}, Width: vg.Points(0.5)}
	invalidFill = color.Gray{0x80}
)

// Options sets the view and appearance of the surface.
type Options struct {
	Azimuth   float64 // degrees, measured in the xy-plane from the x axis
	Elevation float64 // degrees above the xy-plane

	ColorMap  palette.ColorMap // nil uses Viridis
	EdgeColor color.Color
	EdgeWidth vg.Length // zero draws no quad edges
	HideBox   bool
}

// DefaultOptions looks at the surface from the front left and 30 degrees above.
var DefaultOptions = Options{
	Azimuth:   -60.0,
	Elevation: 30.0,
	EdgeColor: color.Black,
}

// New returns a plot with the projected surface, titled by cfg.Title. The 2D axes of the plot are hidden, the surface draws its own 3D axes labeled by cfg.
func New(s surface.Surface, cfg surface.RenderConfig, opts Options) (*plot.Plot, error) {
	sp, err := NewSurface(s, cfg, opts)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = cfg.Title
	p.HideAxes()
	p.Add(sp)
	return p, nil
}

// Surface is a plot.Plotter drawing a projected surface with its box and axes.
type Surface struct {
	Options
	Labels [3]string

	s      surface.Surface
	bounds surface.Bounds
}

// NewSurface returns the plotter for s. It returns surface.ErrShapeMismatch when X, Y and Z differ in shape.
func NewSurface(s surface.Surface, cfg surface.RenderConfig, opts Options) (*Surface, error) {
	s, err := surface.NewSurface(s.X, s.Y, s.Z)
	if err != nil {
		return nil, err
	}
	return &Surface{
		Options: opts,
		Labels:  [3]string{cfg.XLabel, cfg.YLabel, cfg.ZLabel},
		s:       s,
		bounds:  s.Bounds(),
	}, nil
}

// Plot implements the plot.Plotter interface.
func (sp *Surface) Plot(c draw.Canvas, plt *plot.Plot) {
	pr := newProjection(sp.bounds, sp.Azimuth, sp.Elevation)
	tr := fit(c, pr, labelMargin(c))

	var ticks [3][]plot.Tick
	for axis := range ticks {
		ticks[axis] = axisTicks(sp.bounds, axis)
	}

	if !sp.HideBox {
		drawPanes(c, pr, tr, ticks)
	}
	sp.drawQuads(c, pr, tr)
	sp.drawAxes(c, plt, pr, tr, ticks)
}

type quad struct {
	pts   [4]vec3
	depth float64
	value float64
}

// quads returns the cells of the grid ordered back to front. Cells with a non-finite corner are left out.
func (sp *Surface) quads(pr projection) []quad {
	shape := sp.s.Shape()
	qs := make([]quad, 0, shape.Rows*shape.Cols)
	for i := 0; i+1 < shape.Rows; i++ {
	Cells:
		for j := 0; j+1 < shape.Cols; j++ {
			q := quad{}
			for k, idx := range [4][2]int{{i, j}, {i, j + 1}, {i + 1, j + 1}, {i + 1, j}} {
				p := vec3{sp.s.X[idx[0]][idx[1]], sp.s.Y[idx[0]][idx[1]], sp.s.Z[idx[0]][idx[1]]}
				if !finite(p) {
					continue Cells
				}
				q.pts[k] = pr.normalize(p)
				_, _, depth := pr.project(q.pts[k])
				q.depth += depth / 4.0
				q.value += p[2] / 4.0
			}
			qs = append(qs, q)
		}
	}
	sort.SliceStable(qs, func(a, b int) bool {
		return qs[a].depth < qs[b].depth
	})
	return qs
}

func (sp *Surface) drawQuads(c draw.Canvas, pr projection, tr func(vec3) vg.Point) {
	cm := sp.ColorMap
	if cm == nil {
		cm = Viridis()
	} else {
		// the range is set from the data, give the caller's map back as it was
		cmMin, cmMax := cm.Min(), cm.Max()
		defer func() {
			cm.SetMax(cmMax)
			cm.SetMin(cmMin)
		}()
	}
	lo, hi := sp.bounds.Min[2], sp.bounds.Max[2]
	if hi <= lo {
		hi = lo + 1.0
	}
	cm.SetMax(hi)
	cm.SetMin(lo)

	edges := draw.LineStyle{Color: sp.EdgeColor, Width: sp.EdgeWidth}
	if edges.Color == nil {
		edges.Color = color.Black
	}
	for _, q := range sp.quads(pr) {
		pts := []vg.Point{tr(q.pts[0]), tr(q.pts[1]), tr(q.pts[2]), tr(q.pts[3])}
		col, err := cm.At(math.Max(lo, math.Min(hi, q.value)))
		if err != nil {
			col = invalidFill
		}
		c.FillPolygon(col, pts)
		if 0.0 < sp.EdgeWidth {
			c.StrokeLines(edges, append(pts, pts[0]))
		}
	}
}

// drawPanes draws the three faces of the box away from the viewer, with grid lines at the ticks.
func drawPanes(c draw.Canvas, pr projection, tr func(vec3) vg.Point, ticks [3][]plot.Tick) {
	for axis := 0; axis < 3; axis++ {
		a, b := (axis+1)%3, (axis+2)%3
		at := func(u, v float64) vg.Point {
			var p vec3
			p[axis], p[a], p[b] = pr.far(axis), u, v
			return tr(p)
		}

		pane := []vg.Point{at(-0.5, -0.5), at(0.5, -0.5), at(0.5, 0.5), at(-0.5, 0.5)}
		c.FillPolygon(paneColor, pane)
		for _, t := range ticks[a] {
			u := pr.coord(a, t.Value)
			c.StrokeLines(gridStyle, []vg.Point{at(u, -0.5), at(u, 0.5)})
		}
		for _, t := range ticks[b] {
			v := pr.coord(b, t.Value)
			c.StrokeLines(gridStyle, []vg.Point{at(-0.5, v), at(0.5, v)})
		}
		c.StrokeLines(paneStyle, append(pane, pane[0]))
	}
}

// axisEdge returns the box edge carrying an axis: x and y run along the bottom edges nearest to the viewer, z along the leftmost vertical edge.
func axisEdge(pr projection, axis int) (vec3, vec3) {
	switch axis {
	case 0:
		return vec3{-0.5, pr.near(1), pr.far(2)}, vec3{0.5, pr.near(1), pr.far(2)}
	case 1:
		return vec3{pr.near(0), -0.5, pr.far(2)}, vec3{pr.near(0), 0.5, pr.far(2)}
	}

	left, leftU := vec3{}, math.Inf(1)
	for _, x := range []float64{-0.5, 0.5} {
		for _, y := range []float64{-0.5, 0.5} {
			if u, _, _ := pr.project(vec3{x, y, 0.0}); u < leftU {
				left, leftU = vec3{x, y, 0.0}, u
			}
		}
	}
	return vec3{left[0], left[1], -0.5}, vec3{left[0], left[1], 0.5}
}

func (sp *Surface) drawAxes(c draw.Canvas, plt *plot.Plot, pr projection, tr func(vec3) vg.Point, ticks [3][]plot.Tick) {
	center := tr(vec3{})
	for axis := 0; axis < 3; axis++ {
		p0, p1 := axisEdge(pr, axis)
		c.StrokeLines(plt.X.LineStyle, []vg.Point{tr(p0), tr(p1)})

		mid := tr(vec3{(p0[0] + p1[0]) / 2.0, (p0[1] + p1[1]) / 2.0, (p0[2] + p1[2]) / 2.0})
		dir := outward(mid.Sub(center), axis)

		tickStyle := plt.X.Tick.Label
		tickStyle.XAlign, tickStyle.YAlign = text.XCenter, text.YCenter
		tickLen := plt.X.Tick.Length
		extent := vg.Length(0.0)
		for _, t := range ticks[axis] {
			if t.IsMinor() {
				continue
			}
			n := p0
			n[axis] = pr.coord(axis, t.Value)
			pt := tr(n)
			c.StrokeLines(plt.X.Tick.LineStyle, []vg.Point{pt, pt.Add(dir.Scale(tickLen))})

			size := textExtent(tickStyle, t.Label, dir)
			extent = vg.Length(math.Max(float64(extent), float64(2.0*size)))
			c.FillText(tickStyle, pt.Add(dir.Scale(tickLen+vg.Points(2.0)+size)), t.Label)
		}

		if label := sp.Labels[axis]; label != "" {
			labelStyle := plt.X.Label.TextStyle
			labelStyle.XAlign, labelStyle.YAlign = text.XCenter, text.YCenter
			offset := tickLen + extent + vg.Points(6.0) + textExtent(labelStyle, label, dir)
			c.FillText(labelStyle, mid.Add(dir.Scale(offset)), label)
		}
	}
}

// outward returns the unit screen direction pointing away from the box, falling back to down for x and y and to left for z when the edge projects onto the center.
func outward(d vg.Point, axis int) vg.Point {
	length := math.Hypot(float64(d.X), float64(d.Y))
	if length < 1e-6 {
		if axis == 2 {
			return vg.Point{X: -1.0, Y: 0.0}
		}
		return vg.Point{X: 0.0, Y: -1.0}
	}
	return vg.Point{X: d.X / vg.Length(length), Y: d.Y / vg.Length(length)}
}

// textExtent returns half the extent of a centered text along dir.
func textExtent(sty text.Style, txt string, dir vg.Point) vg.Length {
	w, h := float64(sty.Width(txt)), float64(sty.Height(txt))
	return vg.Length((w*math.Abs(float64(dir.X)) + h*math.Abs(float64(dir.Y))) / 2.0)
}

func labelMargin(c draw.Canvas) vg.Length {
	size := math.Min(float64(c.Max.X-c.Min.X), float64(c.Max.Y-c.Min.Y))
	return vg.Length(math.Min(float64(vg.Points(48.0)), 0.15*size))
}

// fit returns the transform from normalized points to the canvas that keeps the aspect ratio and fits the projected box inside the canvas less the margin.
func fit(c draw.Canvas, pr projection, margin vg.Length) func(vec3) vg.Point {
	umin, umax := math.Inf(1), math.Inf(-1)
	vmin, vmax := math.Inf(1), math.Inf(-1)
	for _, p := range corners() {
		u, v, _ := pr.project(p)
		umin, umax = math.Min(umin, u), math.Max(umax, u)
		vmin, vmax = math.Min(vmin, v), math.Max(vmax, v)
	}

	w := float64(c.Max.X - c.Min.X - 2.0*margin)
	h := float64(c.Max.Y - c.Min.Y - 2.0*margin)
	scale := math.Max(0.0, math.Min(w/(umax-umin), h/(vmax-vmin)))
	cx, cy := (c.Min.X+c.Max.X)/2.0, (c.Min.Y+c.Max.Y)/2.0
	uc, vc := (umin+umax)/2.0, (vmin+vmax)/2.0
	return func(n vec3) vg.Point {
		u, v, _ := pr.project(n)
		return vg.Point{X: cx + vg.Length((u-uc)*scale), Y: cy + vg.Length((v-vc)*scale)}
	}
}

// axisTicks returns the ticks inside the bounds of an axis. A flat axis gets a single tick.
func axisTicks(b surface.Bounds, axis int) []plot.Tick {
	lo, hi := b.Min[axis], b.Max[axis]
	if hi <= lo {
		return []plot.Tick{{Value: lo, Label: strconv.FormatFloat(lo, 'g', 4, 64)}}
	}

	ticks := []plot.Tick{}
	for _, t := range (plot.DefaultTicks{}).Ticks(lo, hi) {
		if lo <= t.Value && t.Value <= hi {
			ticks = append(ticks, t)
		}
	}
	return ticks
}

func finite(p vec3) bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
