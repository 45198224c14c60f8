package surface

import "strings"

// Layout is the convention relating the ordinate matrix to the two abscissa vectors.
type Layout int

// see Layout
const (
	UnknownLayout Layout = iota
	GridAligned          // space-time grid, rows follow y, meshgrid(x, y)
	GridStaggered        // space-space grid, meshgrid(y, x), supports dropping trailing rows
)

// ParseLayout returns the Layout for a type tag as found in the surface files. Unrecognized tags return UnknownLayout.
func ParseLayout(tag string) Layout {
	switch strings.ToUpper(strings.TrimSpace(tag)) {
	case "SURFACE_ST", "GRID_ALIGNED":
		return GridAligned
	case "SURFACE_SS", "GRID_STAGGERED":
		return GridStaggered
	}
	return UnknownLayout
}

// String returns the type tag of the layout as written in the surface files.
func (l Layout) String() string {
	switch l {
	case GridAligned:
		return "SURFACE_ST"
	case GridStaggered:
		return "SURFACE_SS"
	}
	return "UNKNOWN"
}
