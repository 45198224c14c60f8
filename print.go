package surface

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// PrintSource is a DataSource read from the plain-text print format of the solvers. A space-time grid is printed as
//
//	SPACE_POINTS
//	0,0.5,1
//	TIME_POINTS
//	0,0.1
//	VALUES
//	1,2,3
//	4,5,6
//
// with one row per time point, and read as GridAligned with x the space points and y the time points. A space-space grid uses the headers SPACE_POINTS_X and SPACE_POINTS_Y and prints one row per x point. It is read as GridStaggered and its values are transposed so that rows follow y like in every other source.
type PrintSource struct {
	layout Layout
	x, y   []float64
	z      [][]float64
}

// OpenPrint reads a print format surface file.
func OpenPrint(filename string) (*PrintSource, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, sourceError(err, "open %s", filename)
	}
	defer f.Close()

	src, err := ParsePrint(f)
	if err != nil {
		return nil, errors.WithMessage(err, filename)
	}
	return src, nil
}

// ParsePrint parses the print format. A one-dimensional curve (SPACE_POINTS and VALUES only) returns ErrUnsupportedLayout.
func ParsePrint(r io.Reader) (*PrintSource, error) {
	sections := map[string][][]float64{}
	section := ""

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := trimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		} else if header := strings.ToUpper(string(line)); isPrintHeader(header) {
			if _, ok := sections[header]; ok {
				return nil, sourceError(nil, "print: line %d: duplicate %s", lineno, header)
			}
			section = header
			sections[section] = [][]float64{}
			continue
		} else if section == "" {
			return nil, sourceError(nil, "print: line %d: data before header", lineno)
		}

		vals, err := parseNumbers(line)
		if err != nil {
			return nil, sourceError(err, "print: line %d", lineno)
		}
		sections[section] = append(sections[section], vals)
	}
	if err := scanner.Err(); err != nil {
		return nil, sourceError(err, "print")
	}

	values, ok := sections["VALUES"]
	if !ok {
		return nil, sourceError(nil, "print: missing VALUES")
	}

	src := &PrintSource{}
	if space, ok := sections["SPACE_POINTS"]; ok {
		time, ok := sections["TIME_POINTS"]
		if !ok {
			return nil, errors.Wrap(ErrUnsupportedLayout, "print: curve without TIME_POINTS")
		}
		src.layout = GridAligned
		src.x, src.y = flatten(space), flatten(time)
		src.z = values
	} else {
		xs, okX := sections["SPACE_POINTS_X"]
		ys, okY := sections["SPACE_POINTS_Y"]
		if !okX || !okY {
			return nil, sourceError(nil, "print: missing SPACE_POINTS_X or SPACE_POINTS_Y")
		}
		z, err := Transpose(values)
		if err != nil {
			return nil, sourceError(err, "print: VALUES")
		}
		src.layout = GridStaggered
		src.x, src.y = flatten(xs), flatten(ys)
		src.z = z
	}
	return src, nil
}

func isPrintHeader(s string) bool {
	switch s {
	case "SPACE_POINTS", "TIME_POINTS", "SPACE_POINTS_X", "SPACE_POINTS_Y", "VALUES":
		return true
	}
	return false
}

func flatten(rows [][]float64) []float64 {
	vals := []float64{}
	for _, row := range rows {
		vals = append(vals, row...)
	}
	return vals
}

func (src *PrintSource) Layout() Layout {
	return src.layout
}

func (src *PrintSource) Abscissa() ([]float64, []float64, error) {
	return cloneVector(src.x), cloneVector(src.y), nil
}

func (src *PrintSource) Ordinate(trailingRows int) ([][]float64, error) {
	return dropTrailingRows(src.z, trailingRows)
}
