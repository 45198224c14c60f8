package renderers

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lssviz/surface"
	"github.com/tdewolff/test"
	"gonum.org/v1/plot/vg"
)

func testSurface(t *testing.T) surface.Surface {
	src := &surface.MemorySource{
		Kind: surface.GridAligned,
		X:    []float64{1, 2, 3},
		Y:    []float64{10, 20},
		Z:    [][]float64{{1, 2, 3}, {4, 5, 6}},
	}
	s, err := surface.Prepare(src, 0)
	test.Error(t, err)
	return s
}

func TestFormat(t *testing.T) {
	var tts = []struct {
		filename string
		format   string
	}{
		{"out.png", "png"},
		{"out.JPEG", "jpg"},
		{"dir/out.tif", "tiff"},
		{"out.svg", "svg"},
		{"out.pdf", "pdf"},
	}
	for _, tt := range tts {
		t.Run(tt.filename, func(t *testing.T) {
			format, err := Format(tt.filename)
			test.Error(t, err)
			test.String(t, format, tt.format)
		})
	}

	_, err := Format("out.bmp")
	test.That(t, err != nil && strings.Contains(err.Error(), "unknown file extension: .bmp"), err)
}

func TestFileDisplay(t *testing.T) {
	dir := t.TempDir()
	s := testSurface(t)
	cfg := surface.RenderConfig{Title: "Title", XLabel: "x", YLabel: "y", ZLabel: "z"}

	pngFile := filepath.Join(dir, "surface.png")
	svgFile := filepath.Join(dir, "surface.svg")
	d := Multi{
		File{Path: pngFile, Write: []interface{}{Size{4 * vg.Inch, 3 * vg.Inch}, DPI(50)}},
		File{Path: svgFile, Write: []interface{}{Minify(true)}},
	}
	test.Error(t, d.Display(s, cfg))

	f, err := os.Open(pngFile)
	test.Error(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	test.Error(t, err)
	test.T(t, img.Bounds().Dx(), 200)
	test.T(t, img.Bounds().Dy(), 150)

	b, err := os.ReadFile(svgFile)
	test.Error(t, err)
	test.That(t, bytes.Contains(b, []byte("<svg")))
	test.That(t, bytes.Contains(b, []byte("Title")))
}

func TestFileDisplayError(t *testing.T) {
	s := testSurface(t)
	err := File{Path: filepath.Join(t.TempDir(), "surface.bmp")}.Display(s, surface.RenderConfig{})
	test.That(t, err != nil)

	path := filepath.Join(t.TempDir(), "surface.png")
	err = File{Path: path, Write: []interface{}{"x"}}.Display(s, surface.RenderConfig{})
	test.That(t, err != nil && strings.Contains(err.Error(), "unknown option"), err)
	_, err = os.Stat(path)
	test.That(t, os.IsNotExist(err), "file left behind after a failed encode")

	bad := surface.Surface{X: [][]float64{{1}}, Y: [][]float64{{1}}, Z: [][]float64{{1, 2}}}
	err = File{Path: filepath.Join(t.TempDir(), "surface.png")}.Display(bad, surface.RenderConfig{})
	test.That(t, err != nil)
}

func TestImage(t *testing.T) {
	p, err := NewPlot(testSurface(t), surface.RenderConfig{}, nil)
	test.Error(t, err)

	img, err := Image(p, Size{2 * vg.Inch, 1 * vg.Inch}, DPI(100))
	test.Error(t, err)
	test.T(t, img.Bounds().Dx(), 200)
	test.T(t, img.Bounds().Dy(), 100)

	_, err = Image(p, DPI(0))
	test.That(t, err != nil)
}

func TestEncode(t *testing.T) {
	p, err := NewPlot(testSurface(t), surface.RenderConfig{Title: "T"}, nil)
	test.Error(t, err)

	for _, format := range []string{"png", "jpg", "gif", "tiff", "svg", "pdf", "eps"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			test.Error(t, Encode(&buf, format, p, DPI(30)))
			test.That(t, 0 < buf.Len())
		})
	}

	var buf bytes.Buffer
	test.That(t, Encode(&buf, "bmp", p) != nil)
}
