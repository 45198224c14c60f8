package surface

import "math"

// Meshgrid returns coordinate matrices of shape (len(b), len(a)), where A repeats a along every row and B repeats b along every column.
func Meshgrid(a, b []float64) ([][]float64, [][]float64) {
	A := make([][]float64, len(b))
	B := make([][]float64, len(b))
	for i := range b {
		A[i] = make([]float64, len(a))
		B[i] = make([]float64, len(a))
		copy(A[i], a)
		for j := range a {
			B[i][j] = b[i]
		}
	}
	return A, B
}

// Transpose returns the transpose of a rectangular matrix. A ragged matrix returns a ShapeError.
func Transpose(m [][]float64) ([][]float64, error) {
	shape, err := matrixShape("Z", m)
	if err != nil {
		return nil, err
	}
	t := make([][]float64, shape.Cols)
	for j := range t {
		t[j] = make([]float64, shape.Rows)
		for i := range m {
			t[j][i] = m[i][j]
		}
	}
	return t, nil
}

func matrixShape(name string, m [][]float64) (Shape, error) {
	if len(m) == 0 {
		return Shape{}, nil
	}
	shape := Shape{len(m), len(m[0])}
	for i, row := range m {
		if len(row) != shape.Cols {
			return shape, &ShapeError{Name: name, Want: shape, Got: Shape{shape.Rows, len(row)}, Row: i}
		}
	}
	return shape, nil
}

// Surface is the coordinate grid with its values, all three matrices of equal shape.
type Surface struct {
	X, Y, Z [][]float64
}

// NewSurface returns a Surface when X, Y and Z are rectangular and of the same shape.
func NewSurface(X, Y, Z [][]float64) (Surface, error) {
	shape, err := matrixShape("X", X)
	if err != nil {
		return Surface{}, err
	}
	for _, m := range []struct {
		name string
		m    [][]float64
	}{{"Y", Y}, {"Z", Z}} {
		got, err := matrixShape(m.name, m.m)
		if err != nil {
			return Surface{}, err
		} else if got != shape {
			return Surface{}, &ShapeError{Name: m.name, Want: shape, Got: got, Row: -1}
		}
	}
	return Surface{X, Y, Z}, nil
}

// Shape returns the shape shared by X, Y and Z.
func (s Surface) Shape() Shape {
	if len(s.Z) == 0 {
		return Shape{}
	}
	return Shape{len(s.Z), len(s.Z[0])}
}

// Bounds is the axis-aligned box around a surface, indexed by axis (0 is x, 1 is y, 2 is z).
type Bounds struct {
	Min, Max [3]float64
}

// Span returns the extent along an axis.
func (b Bounds) Span(axis int) float64 {
	return b.Max[axis] - b.Min[axis]
}

// Bounds returns the minimum and maximum of each matrix, skipping NaN and infinite values. A surface without finite values has zero bounds.
func (s Surface) Bounds() Bounds {
	var b Bounds
	for axis, m := range [3][][]float64{s.X, s.Y, s.Z} {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, row := range m {
			for _, v := range row {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					continue
				}
				lo = math.Min(lo, v)
				hi = math.Max(hi, v)
			}
		}
		if lo <= hi {
			b.Min[axis], b.Max[axis] = lo, hi
		}
	}
	return b
}
