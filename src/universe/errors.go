package universe

import "github.com/pkg/errors"

var (
	//ErrOutOfBounds is returned when a coordinate lies outside the current grid
	ErrOutOfBounds = errors.New("index out of bounds")
	//ErrInvalidDimension is returned when a width or height of zero is requested
	ErrInvalidDimension = errors.New("invalid dimension")
)

func outOfBounds(row uint32, col uint32, width uint32, height uint32) error {
	return errors.Wrapf(ErrOutOfBounds, "cell [%v, %v] outside %v x %v grid", row, col, width, height)
}
