package script

import (
	"errors"

	"github.com/ezrec/regio/translate"
)

var f = translate.From

var (
	ErrNotRegister = errors.New(f("not a register"))
	ErrNotField    = errors.New(f("not a field"))
	ErrValue       = errors.New(f("value out of range"))
	ErrSymbol      = errors.New(f("unknown value name"))
	ErrBit         = errors.New(f("bit beyond register width"))
	ErrWidth       = errors.New(f("registers of a transaction must share the lock width"))
	ErrKey         = errors.New(f("transaction field names must be strings"))
)
