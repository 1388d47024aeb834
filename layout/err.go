package layout

import (
	"errors"

	"github.com/ezrec/regio/translate"
)

var f = translate.From

var (
	ErrWidth     = errors.New(f("register width must be 8, 16 or 32"))
	ErrRange     = errors.New(f("field bit beyond register width"))
	ErrValue     = errors.New(f("named value does not fit field"))
	ErrDuplicate = errors.New(f("duplicate name"))
	ErrOverlap   = errors.New(f("overlapping bits"))
	ErrNotFound  = errors.New(f("not found"))
	ErrName      = errors.New(f("empty name"))
)

// ErrLayout locates an error within a layout.
type ErrLayout struct {
	Path string // Dotted path of the offending element.
	Err  error
}

func (err *ErrLayout) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err *ErrLayout) Unwrap() error {
	return err.Err
}
