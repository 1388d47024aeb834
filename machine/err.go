package machine

import (
	"github.com/ezrec/regio/translate"
)

var f = translate.From

// ErrHandler reports a panic raised by an interrupt handler.
type ErrHandler struct {
	Vector Vector
	Err    any
}

func (err *ErrHandler) Error() string {
	return f("vector %v: %v", err.Vector, err.Err)
}
