package sim

import (
	"github.com/ezrec/regio/translate"
)

var f = translate.From

// Violation records a store the simulated hardware refused.
type Violation struct {
	Addr   uintptr // Target address.
	Value  uint32  // Rejected value.
	Reason string  // Human readable cause.
}

func (v Violation) Error() string {
	return f("store 0x%x to 0x%04x rejected: %v", v.Value, v.Addr, v.Reason)
}
