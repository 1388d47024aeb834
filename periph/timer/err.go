package timer

import (
	"errors"

	"github.com/ezrec/regio/translate"
)

var f = translate.From

var (
	ErrChannel = errors.New(f("capture/compare channel out of range"))
)
