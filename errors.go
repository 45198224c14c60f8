package surface

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrSourceRead is returned when a surface file is missing or malformed.
	ErrSourceRead = errors.New("source read error")
	// ErrShapeMismatch is returned when the grid and ordinate matrix disagree in shape.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrUnsupportedLayout is returned when a source reports a layout that cannot be rendered.
	ErrUnsupportedLayout = errors.New("unsupported layout")
	// ErrOutOfRange is returned for a truncation or index outside the available rows.
	ErrOutOfRange = errors.New("out of range")
)

// Shape is the number of rows and columns of a matrix.
type Shape struct {
	Rows, Cols int
}

func (s Shape) String() string {
	return fmt.Sprintf("(%d,%d)", s.Rows, s.Cols)
}

// ShapeError describes which matrix disagrees with the expected shape.
type ShapeError struct {
	Name string
	Want Shape
	Got  Shape
	Row  int // first ragged row, or -1
}

func (e *ShapeError) Error() string {
	if 0 <= e.Row {
		return fmt.Sprintf("%v: %s row %d has %d columns, expected %d", ErrShapeMismatch, e.Name, e.Row, e.Got.Cols, e.Want.Cols)
	}
	return fmt.Sprintf("%v: %s has shape %v, expected %v", ErrShapeMismatch, e.Name, e.Got, e.Want)
}

// Unwrap returns ErrShapeMismatch so that errors.Is matches it.
func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

func sourceError(err error, format string, args ...interface{}) error {
	if err == nil {
		return errors.Wrapf(ErrSourceRead, format, args...)
	}
	return errors.Wrapf(ErrSourceRead, "%s: %v", fmt.Sprintf(format, args...), err)
}
