package snapshot

import (
	"errors"

	"github.com/ezrec/regio/translate"
)

var f = translate.From

var (
	ErrNotFound  = errors.New(f("snapshot not found"))
	ErrAmbiguous = errors.New(f("snapshot name matches more than one snapshot"))
	ErrName      = errors.New(f("snapshot name is empty"))
)
