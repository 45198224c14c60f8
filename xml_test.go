package surface

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/tdewolff/test"
)

func TestOpenXML(t *testing.T) {
	src, err := OpenXML("testdata/black_scholes.xml")
	test.Error(t, err)
	test.T(t, src.Layout(), GridAligned)

	x, y, err := src.Abscissa()
	test.Error(t, err)
	test.T(t, x, []float64{0, 10, 20, 30, 40})
	test.T(t, y, []float64{0, 0.5, 1})

	xName, yName := src.AxisNames()
	test.String(t, xName, "Spot")
	test.String(t, yName, "Time to mat")

	z, err := src.Ordinate(0)
	test.Error(t, err)
	test.T(t, len(z), 3)
	for j, v := range []float64{0, 0.12, 2.4, 11.3, 20.9} {
		test.Float(t, z[1][j], v)
	}

	s, err := Prepare(src, 0)
	test.Error(t, err)
	test.T(t, s.Shape(), Shape{3, 5})
}

func TestOpenXMLStaggered(t *testing.T) {
	src, err := OpenXML("testdata/heat_2d.xml")
	test.Error(t, err)
	test.T(t, src.Layout(), GridStaggered)

	z, err := src.Ordinate(1)
	test.Error(t, err)
	test.T(t, len(z), 3)

	all, err := src.Ordinate(0)
	test.Error(t, err)
	test.That(t, math.IsNaN(all[3][0]))

	s, err := Prepare(src, 1)
	test.Error(t, err)
	test.T(t, s.Shape(), Shape{3, 3})
	test.T(t, s.Y[0], []float64{0, 0.25, 0.5})
	for j, v := range []float64{0, 0.5, 0.7} {
		test.Float(t, s.Z[1][j], v)
	}
}

func TestOpenXMLMissing(t *testing.T) {
	_, err := OpenXML("testdata/missing.xml")
	test.That(t, errors.Is(err, ErrSourceRead), err)
}

func TestParseXML(t *testing.T) {
	var tts = []struct {
		xml    string
		layout Layout
		x, y   []float64
		z      [][]float64
	}{
		{"<SURFACE><TYPE>SURFACE_ST</TYPE><ABSCISSA><X>1,2</X><Y>3</Y></ABSCISSA><ORDINATE><ROW>4,5</ROW></ORDINATE></SURFACE>",
			GridAligned, []float64{1, 2}, []float64{3}, [][]float64{{4, 5}}},
		{"<surface type='surface_ss'><abscissa><x>5e-1 -2.5</x><y>+3</y></abscissa><ordinate><row>1;2</row><row/></ordinate></surface>",
			GridStaggered, []float64{0.5, -2.5}, []float64{3}, [][]float64{{1, 2}, {}}},
		{"<SURFACE><ABSCISSA><X></X><Y>7,8</Y></ABSCISSA><ORDINATE/></SURFACE>",
			UnknownLayout, []float64{}, []float64{7, 8}, [][]float64{}},
		{"<SURFACE><TYPE>CURVE</TYPE><ABSCISSA><X>1</X><Y>2</Y></ABSCISSA><ORDINATE><ROW>inf,-inf</ROW></ORDINATE></SURFACE>",
			UnknownLayout, []float64{1}, []float64{2}, [][]float64{{math.Inf(1), math.Inf(-1)}}},
		{"<SURFACE><TYPE>SURFACE_ST</TYPE><ABSCISSA><X>1,2<!-- c -->3</X><Y>4<![CDATA[5]]></Y></ABSCISSA><ORDINATE><ROW>1,2,3</ROW><ROW>4<!---->5,6</ROW></ORDINATE></SURFACE>",
			GridAligned, []float64{1, 2, 3}, []float64{4, 5}, [][]float64{{1, 2, 3}, {4, 5, 6}}},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			src, err := ParseXML(strings.NewReader(tt.xml))
			test.Error(t, err)
			test.T(t, src.Layout(), tt.layout)

			x, y, _ := src.Abscissa()
			test.T(t, x, tt.x)
			test.T(t, y, tt.y)

			z, err := src.Ordinate(0)
			test.Error(t, err)
			test.T(t, z, tt.z)
		})
	}
}

func TestParseXMLErrors(t *testing.T) {
	var tts = []struct {
		xml string
		err string
	}{
		{"<SURFACE><ABSCISSA><X>1,a</X><Y>1</Y></ABSCISSA><ORDINATE/></SURFACE>", "bad abscissa X"},
		{"<SURFACE><ABSCISSA><X>1</X><Y>1</Y></ABSCISSA><ORDINATE><ROW>1,,x2</ROW></ORDINATE></SURFACE>", "bad ordinate row 0"},
		{"<SURFACE><ABSCISSA><X>1</X></ABSCISSA><ORDINATE/></SURFACE>", "missing abscissa"},
		{"<SURFACE><ABSCISSA><X>1</X><Y>1</Y></ABSCISSA></SURFACE>", "missing ordinate"},
		{"<SURFACE><ABSCISSA><X>1</X><Y>1</Y></ABSCISSA><ORDINATE/>", "unclosed tag <SURFACE>"},
		{"<SURFACE><ABSCISSA></ORDINATE></SURFACE>", "unexpected closing tag </ORDINATE>"},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			_, err := ParseXML(strings.NewReader(tt.xml))
			test.That(t, errors.Is(err, ErrSourceRead), err)
			test.That(t, strings.Contains(err.Error(), tt.err), err)
		})
	}
}

func TestWriteXML(t *testing.T) {
	src := &MemorySource{
		Kind: GridStaggered,
		X:    []float64{0, 0.5},
		Y:    []float64{1, 2, 3},
		Z:    [][]float64{{1, 2}, {3, math.NaN()}, {5, 6.25}},
	}

	var buf bytes.Buffer
	test.Error(t, WriteXML(&buf, src))
	test.That(t, strings.Contains(buf.String(), `<X NAME="X">0,0.5</X>`), buf.String())
	test.That(t, strings.Contains(buf.String(), `<ROW>3,NaN</ROW>`), buf.String())

	parsed, err := ParseXML(&buf)
	test.Error(t, err)
	test.T(t, parsed.Layout(), GridStaggered)
	z, _ := parsed.Ordinate(0)
	test.Float(t, z[2][1], 6.25)
	test.That(t, math.IsNaN(z[1][1]))
}

func TestWriteXMLNames(t *testing.T) {
	src, err := OpenXML("testdata/black_scholes.xml")
	test.Error(t, err)

	var buf bytes.Buffer
	test.Error(t, WriteXML(&buf, src))
	parsed, err := ParseXML(&buf)
	test.Error(t, err)

	xName, yName := parsed.AxisNames()
	test.String(t, xName, "Spot")
	test.String(t, yName, "Time to mat")
}
