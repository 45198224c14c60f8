package plot3d

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot/palette"
)

var viridisStops = []string{
	"#440154", "#482878", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}

// Gradient is a palette.ColorMap interpolating between evenly spaced stops in CIE L*a*b* space.
type Gradient struct {
	stops    []colorful.Color
	min, max float64
	alpha    float64
}

// NewGradient returns a gradient over the given hex colors, mapping [0,1] by default.
func NewGradient(hex ...string) (*Gradient, error) {
	g := &Gradient{max: 1.0, alpha: 1.0}
	for _, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, err
		}
		g.stops = append(g.stops, c)
	}
	return g, nil
}

// Viridis returns the perceptually uniform viridis colormap.
func Viridis() *Gradient {
	g, err := NewGradient(viridisStops...)
	if err != nil {
		panic(err)
	}
	return g
}

// At returns the color for v. Values outside [Min,Max] return palette.ErrUnderflow or palette.ErrOverflow.
func (g *Gradient) At(v float64) (color.Color, error) {
	if math.IsNaN(v) {
		return nil, palette.ErrNaN
	} else if v < g.min {
		return nil, palette.ErrUnderflow
	} else if g.max < v {
		return nil, palette.ErrOverflow
	} else if len(g.stops) == 0 {
		return color.Transparent, nil
	}

	t := 0.0
	if g.min < g.max {
		t = (v - g.min) / (g.max - g.min)
	}
	t *= float64(len(g.stops) - 1)
	i := int(t)
	if len(g.stops)-1 <= i {
		i = len(g.stops) - 2
	}
	c := g.stops[0]
	if 1 < len(g.stops) {
		switch f := t - float64(i); f {
		case 0.0:
			c = g.stops[i]
		case 1.0:
			c = g.stops[i+1]
		default:
			c = g.stops[i].BlendLab(g.stops[i+1], f).Clamped()
		}
	}
	r, gr, b := c.RGB255()
	return color.NRGBA{r, gr, b, uint8(g.alpha*255.0 + 0.5)}, nil
}

func (g *Gradient) Max() float64 { return g.max }
func (g *Gradient) SetMax(v float64) { g.max = v }
func (g *Gradient) Min() float64 { return g.min }
func (g *Gradient) SetMin(v float64) { g.min = v }
func (g *Gradient) Alpha() float64 { return g.alpha }
func (g *Gradient) SetAlpha(a float64) { g.alpha = math.Max(0.0, math.Min(1.0, a)) }

// Palette returns n colors sampled evenly between Min and Max.
func (g *Gradient) Palette(n int) palette.Palette {
	if n <= 0 {
		return colors{}
	}
	cs := make(colors, n)
	for i := range cs {
		v := g.min
		if 1 < n {
			v += (g.max - g.min) * float64(i) / float64(n-1)
		}
		cs[i], _ = g.At(v)
	}
	return cs
}

type colors []color.Color

func (cs colors) Colors() []color.Color {
	return cs
}
