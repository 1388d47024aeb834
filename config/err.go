package config

import (
	"github.com/ezrec/regio/translate"
)

var f = translate.From

// ErrConfigExists is returned by Save when it would overwrite a file.
type ErrConfigExists struct {
	Path string
}

func (err *ErrConfigExists) Error() string {
	return f("config file %v exists", err.Path)
}
