package slice

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lssviz/surface"
	"github.com/pkg/errors"
	"github.com/tdewolff/test"
	"github.com/wcharczuk/go-chart/v2"
)

func alignedSurface(t *testing.T) surface.Surface {
	s, err := surface.Prepare(&surface.MemorySource{
		Kind: surface.GridAligned,
		X:    []float64{1, 2, 3},
		Y:    []float64{10, 20},
		Z:    [][]float64{{1, 2, 3}, {4, 5, 6}},
	}, 0)
	test.Error(t, err)
	return s
}

func staggeredSurface(t *testing.T) surface.Surface {
	s, err := surface.Prepare(&surface.MemorySource{
		Kind: surface.GridStaggered,
		X:    []float64{0, 1},
		Y:    []float64{5, 6, 7},
		Z:    [][]float64{{1, 2}, {3, 4}, {5, 6}},
	}, 0)
	test.Error(t, err)
	return s
}

func TestParseSection(t *testing.T) {
	sec, err := ParseSection("Y:3")
	test.Error(t, err)
	test.T(t, sec, Section{'y', 3})
	test.String(t, sec.String(), "y:3")

	for _, s := range []string{"z:1", "y", "x:a", ""} {
		_, err := ParseSection(s)
		test.That(t, err != nil, s)
	}
}

func TestCut(t *testing.T) {
	var tts = []struct {
		name  string
		s     func(*testing.T) surface.Surface
		sec   Section
		t, z  []float64
		fixed float64
	}{
		{"aligned y", alignedSurface, Section{'y', 1}, []float64{1, 2, 3}, []float64{4, 5, 6}, 20},
		{"aligned x", alignedSurface, Section{'x', 0}, []float64{10, 20}, []float64{1, 4}, 1},
		{"staggered y", staggeredSurface, Section{'y', 2}, []float64{0, 1}, []float64{5, 6}, 7},
		{"staggered x", staggeredSurface, Section{'x', 1}, []float64{5, 6, 7}, []float64{2, 4, 6}, 1},
	}
	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			line, err := Cut(tt.s(t), tt.sec)
			test.Error(t, err)
			test.T(t, line.T, tt.t)
			test.T(t, line.Z, tt.z)
			test.Float(t, line.Fixed, tt.fixed)
		})
	}
}

func TestCutOutOfRange(t *testing.T) {
	for _, sec := range []Section{{'y', 2}, {'x', 3}, {'x', -1}} {
		_, err := Cut(alignedSurface(t), sec)
		test.That(t, errors.Is(err, surface.ErrOutOfRange), sec, err)
	}
	_, err := Cut(alignedSurface(t), Section{'z', 0})
	test.That(t, err != nil)
}

func TestCutSingleValueAxis(t *testing.T) {
	prepare := func(t *testing.T, kind surface.Layout, x, y []float64, z [][]float64) surface.Surface {
		s, err := surface.Prepare(&surface.MemorySource{Kind: kind, X: x, Y: y, Z: z}, 0)
		test.Error(t, err)
		return s
	}
	column := prepare(t, surface.GridAligned, []float64{7}, []float64{10, 20, 30}, [][]float64{{1}, {2}, {3}})
	row := prepare(t, surface.GridAligned, []float64{1, 2, 3}, []float64{5}, [][]float64{{1, 2, 3}})
	staggeredColumn := prepare(t, surface.GridStaggered, []float64{0, 1, 2}, []float64{5}, [][]float64{{1, 2, 3}})

	var tts = []struct {
		name  string
		s     surface.Surface
		sec   Section
		t, z  []float64
		fixed float64
	}{
		{"column x", column, Section{'x', 0}, []float64{10, 20, 30}, []float64{1, 2, 3}, 7},
		{"column y", column, Section{'y', 1}, []float64{7}, []float64{2}, 20},
		{"row y", row, Section{'y', 0}, []float64{1, 2, 3}, []float64{1, 2, 3}, 5},
		{"row x", row, Section{'x', 1}, []float64{5}, []float64{2}, 2},
		{"staggered column y", staggeredColumn, Section{'y', 0}, []float64{0, 1, 2}, []float64{1, 2, 3}, 5},
		{"staggered column x", staggeredColumn, Section{'x', 2}, []float64{5}, []float64{3}, 2},
	}
	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			line, err := Cut(tt.s, tt.sec)
			test.Error(t, err)
			test.T(t, line.T, tt.t)
			test.T(t, line.Z, tt.z)
			test.Float(t, line.Fixed, tt.fixed)
		})
	}

	for _, sec := range []Section{{'x', 1}, {'x', 2}, {'y', 3}} {
		_, err := Cut(column, sec)
		test.That(t, errors.Is(err, surface.ErrOutOfRange), sec, err)
	}
	for _, sec := range []Section{{'y', 1}, {'x', 3}} {
		_, err := Cut(row, sec)
		test.That(t, errors.Is(err, surface.ErrOutOfRange), sec, err)
	}
}

func TestFinite(t *testing.T) {
	line := Line{T: []float64{1, 2, math.Inf(1), 4}, Z: []float64{1, math.NaN(), 3, 4}}.Finite()
	test.T(t, line.T, []float64{1, 4})
	test.T(t, line.Z, []float64{1, 4})
}

func TestRender(t *testing.T) {
	cfg := surface.RenderConfig{Title: "Prices", XLabel: "Spot", YLabel: "Time", ZLabel: "Value"}

	var buf bytes.Buffer
	test.Error(t, Chart{Section: Section{'y', 0}}.Render(&buf, chart.SVG, alignedSurface(t), cfg))
	test.That(t, strings.Contains(buf.String(), "Time = 10"), buf.String())

	buf.Reset()
	z := alignedSurface(t)
	z.Z[1][0], z.Z[1][1] = math.NaN(), math.NaN()
	err := Chart{Section: Section{'y', 1}}.Render(&buf, chart.SVG, z, cfg)
	test.That(t, err != nil && strings.Contains(err.Error(), "1 finite points"), err)
}

func TestDisplay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "section.png")
	test.Error(t, Chart{Path: path, Section: Section{'x', 1}}.Display(alignedSurface(t), surface.RenderConfig{}))

	b, err := os.ReadFile(path)
	test.Error(t, err)
	test.That(t, bytes.HasPrefix(b, []byte("\x89PNG")))

	bad := filepath.Join(dir, "missing.png")
	err = Chart{Path: bad, Section: Section{'y', 9}}.Display(alignedSurface(t), surface.RenderConfig{})
	test.That(t, errors.Is(err, surface.ErrOutOfRange), err)
	_, err = os.Stat(bad)
	test.That(t, os.IsNotExist(err), "file left behind after a failed render")

	err = Chart{Path: filepath.Join(dir, "section.pdf")}.Display(alignedSurface(t), surface.RenderConfig{})
	test.That(t, err != nil)
}
