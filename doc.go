/*
Package surface renders the value grids produced by PDE solvers as 3D surface plots.

A DataSource exposes the two abscissa vectors of a grid, its ordinate matrix and a Layout tag. The XML files written by the solvers are read by XMLSource, the plain-text print format by PrintSource, and MemorySource holds a grid built in code. A SurfaceRenderer pairs a DataSource with a Display, turns the vectors into a meshgrid on every Render call and hands the resulting Surface to the Display together with the title and axis labels of its RenderConfig.

	src, err := surface.OpenXML("Black_Scholes.xml")
	if err != nil {
		panic(err)
	}

	r := surface.NewSurfaceRenderer(src, &renderers.File{Path: "out.png"})
	r.SetXLabel("Spot")
	r.SetYLabel("Time to mat")
	r.SetZLabel("Call Option Price")
	r.SetTitle("BS PDE (Euler explicit scheme)")
	if err := r.Render(0); err != nil {
		panic(err)
	}

Displays live in the renderers package and its subpackages: a gonum/plot based 3D projection (renderers/plot3d), file output, a fyne window and a browser preview.
*/
package surface
