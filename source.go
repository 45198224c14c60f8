package surface

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// DataSource gives access to a parsed surface: the layout tag, the abscissa vectors and the ordinate matrix.
type DataSource interface {
	Layout() Layout

	// Abscissa returns the x and y vectors.
	Abscissa() ([]float64, []float64, error)

	// Ordinate returns the stored matrix with one row per y value, without its last trailingRows rows. It returns ErrOutOfRange for a negative count or one larger than the number of rows.
	Ordinate(trailingRows int) ([][]float64, error)
}

// MemorySource is a DataSource over values held in memory.
type MemorySource struct {
	Kind Layout
	X, Y []float64
	Z    [][]float64
}

func (src *MemorySource) Layout() Layout {
	return src.Kind
}

func (src *MemorySource) Abscissa() ([]float64, []float64, error) {
	return cloneVector(src.X), cloneVector(src.Y), nil
}

func (src *MemorySource) Ordinate(trailingRows int) ([][]float64, error) {
	return dropTrailingRows(src.Z, trailingRows)
}

func cloneVector(v []float64) []float64 {
	if v == nil {
		return nil
	}
	return append([]float64{}, v...)
}

func dropTrailingRows(m [][]float64, n int) ([][]float64, error) {
	if n < 0 || len(m) < n {
		return nil, errors.Wrapf(ErrOutOfRange, "cannot drop %d trailing rows of %d", n, len(m))
	}
	rows := make([][]float64, len(m)-n)
	for i := range rows {
		rows[i] = cloneVector(m[i])
	}
	return rows, nil
}

// Open reads a surface file, choosing between the XML and the print format by extension. Files without a .xml or .txt extension are sniffed: a leading '<' means XML.
func Open(filename string) (DataSource, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xml":
		return OpenXML(filename)
	case ".txt", ".csv":
		return OpenPrint(filename)
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, sourceError(err, "open %s", filename)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for {
		b, err := r.Peek(1)
		if err != nil {
			return nil, sourceError(err, "sniff %s", filename)
		} else if !isSpace(b[0]) {
			if b[0] == '<' {
				return ParseXML(r)
			}
			return ParsePrint(r)
		}
		r.Discard(1)
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func trimSpace(b []byte) []byte {
	return bytes.TrimFunc(b, func(r rune) bool { return r < 0x80 && isSpace(byte(r)) })
}
