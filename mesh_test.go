package surface

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/tdewolff/test"
)

func TestMeshgrid(t *testing.T) {
	A, B := Meshgrid([]float64{1, 2, 3}, []float64{10, 20})
	test.T(t, A, [][]float64{{1, 2, 3}, {1, 2, 3}})
	test.T(t, B, [][]float64{{10, 10, 10}, {20, 20, 20}})

	A, B = Meshgrid([]float64{1, 2, 3}, nil)
	test.T(t, len(A), 0)
	test.T(t, len(B), 0)
}

func TestMeshgridRowsAreIndependent(t *testing.T) {
	a := []float64{1, 2}
	A, _ := Meshgrid(a, []float64{0, 1})
	A[0][0] = 5
	test.Float(t, A[1][0], 1)
	test.Float(t, a[0], 1)
}

func TestTranspose(t *testing.T) {
	m, err := Transpose([][]float64{{1, 2, 3}, {4, 5, 6}})
	test.Error(t, err)
	test.T(t, m, [][]float64{{1, 4}, {2, 5}, {3, 6}})

	_, err = Transpose([][]float64{{1, 2}, {3}})
	test.That(t, errors.Is(err, ErrShapeMismatch), err)
}

func TestNewSurface(t *testing.T) {
	X, Y := Meshgrid([]float64{1, 2, 3}, []float64{10, 20})
	s, err := NewSurface(X, Y, [][]float64{{1, 2, 3}, {4, 5, 6}})
	test.Error(t, err)
	test.T(t, s.Shape(), Shape{2, 3})

	_, err = NewSurface(X, Y, [][]float64{{1, 2}, {4, 5}})
	test.That(t, errors.Is(err, ErrShapeMismatch), err)
	test.String(t, err.Error(), "shape mismatch: Z has shape (2,2), expected (2,3)")

	_, err = NewSurface(X, Y, [][]float64{{1, 2, 3}, {4, 5}})
	test.String(t, err.Error(), "shape mismatch: Z row 1 has 2 columns, expected 3")
}

func TestSurfaceBounds(t *testing.T) {
	X, Y := Meshgrid([]float64{1, 2, 3}, []float64{10, 20})
	s, err := NewSurface(X, Y, [][]float64{{1, math.NaN(), 3}, {-4, math.Inf(1), 6}})
	test.Error(t, err)

	b := s.Bounds()
	test.T(t, b.Min, [3]float64{1, 10, -4})
	test.T(t, b.Max, [3]float64{3, 20, 6})
	test.Float(t, b.Span(2), 10)

	test.T(t, Surface{}.Bounds(), Bounds{})
}
