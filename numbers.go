package surface

import (
	"bytes"
	"math"

	"github.com/pkg/errors"
	"github.com/tdewolff/parse/v2/strconv"
)

var errBadNumber = errors.New("bad number")

// parseNumbers parses a list of floats separated by commas, semicolons or whitespace.
func parseNumbers(b []byte) ([]float64, error) {
	fields := bytes.FieldsFunc(b, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	vals := make([]float64, 0, len(fields))
	for _, field := range fields {
		val, err := parseNumber(field)
		if err != nil {
			return nil, err
		}
		vals = append(vals, val)
	}
	return vals, nil
}

func parseNumber(b []byte) (float64, error) {
	switch {
	case bytes.EqualFold(b, []byte("nan")), bytes.EqualFold(b, []byte("-nan")), bytes.EqualFold(b, []byte("-nan(ind)")):
		return math.NaN(), nil
	case bytes.EqualFold(b, []byte("inf")), bytes.EqualFold(b, []byte("+inf")):
		return math.Inf(1), nil
	case bytes.EqualFold(b, []byte("-inf")):
		return math.Inf(-1), nil
	}

	if 1 < len(b) && b[0] == '+' {
		b = b[1:]
	}
	val, n := strconv.ParseFloat(b)
	if n == 0 || n != len(b) {
		return 0.0, errors.Wrapf(errBadNumber, "%q", b)
	}
	return val, nil
}
