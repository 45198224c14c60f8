package plot3d

import (
	"math"

	"github.com/lssviz/surface"
)

type vec3 [3]float64

func (a vec3) Dot(b vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// projection is an orthographic view of the data normalized into the cube [-0.5,0.5]^3.
type projection struct {
	bounds surface.Bounds
	right  vec3 // screen x
	up     vec3 // screen y
	view   vec3 // towards the viewer
}

// newProjection looks at the cube from the given azimuth, measured in the xy-plane from the x axis, and elevation above that plane, both in degrees.
func newProjection(bounds surface.Bounds, azimuth, elevation float64) projection {
	a, e := azimuth*math.Pi/180.0, elevation*math.Pi/180.0
	sa, ca := math.Sincos(a)
	se, ce := math.Sincos(e)
	return projection{
		bounds: bounds,
		right:  vec3{-sa, ca, 0.0},
		up:     vec3{-se * ca, -se * sa, ce},
		view:   vec3{ce * ca, ce * sa, se},
	}
}

// normalize maps a data point into the unit cube. Flat axes map to 0.
func (pr projection) normalize(p vec3) vec3 {
	for i := range p {
		if span := pr.bounds.Span(i); span != 0.0 {
			p[i] = (p[i]-pr.bounds.Min[i])/span - 0.5
		} else {
			p[i] = 0.0
		}
	}
	return p
}

// coord normalizes a single value along an axis.
func (pr projection) coord(axis int, v float64) float64 {
	if span := pr.bounds.Span(axis); span != 0.0 {
		return (v-pr.bounds.Min[axis])/span - 0.5
	}
	return 0.0
}

// project returns the screen coordinates of a normalized point and its depth, larger is nearer to the viewer.
func (pr projection) project(n vec3) (float64, float64, float64) {
	return n.Dot(pr.right), n.Dot(pr.up), n.Dot(pr.view)
}

// far returns the cube face coordinate along axis that lies away from the viewer.
func (pr projection) far(axis int) float64 {
	if pr.view[axis] < 0.0 {
		return 0.5
	}
	return -0.5
}

func (pr projection) near(axis int) float64 {
	return -pr.far(axis)
}

// corners returns the eight corners of the unit cube.
func corners() []vec3 {
	cs := make([]vec3, 0, 8)
	for _, x := range []float64{-0.5, 0.5} {
		for _, y := range []float64{-0.5, 0.5} {
			for _, z := range []float64{-0.5, 0.5} {
				cs = append(cs, vec3{x, y, z})
			}
		}
	}
	return cs
}
