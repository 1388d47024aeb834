//go:build tinygo

package bus

import (
	"runtime/volatile"
	"unsafe"
)

// Volatile is the Bus of the real target: loads and stores go straight to
// the memory-mapped address.
type Volatile struct{}

var _ Bus = Volatile{}

func (Volatile) Load8(addr uintptr) uint8 {
	return volatile.LoadUint8((*uint8)(unsafe.Pointer(addr)))
}

func (Volatile) Load16(addr uintptr) uint16 {
	return volatile.LoadUint16((*uint16)(unsafe.Pointer(addr)))
}

func (Volatile) Load32(addr uintptr) uint32 {
	return volatile.LoadUint32((*uint32)(unsafe.Pointer(addr)))
}

func (Volatile) Store8(addr uintptr, value uint8) {
	volatile.StoreUint8((*uint8)(unsafe.Pointer(addr)), value)
}

func (Volatile) Store16(addr uintptr, value uint16) {
	volatile.StoreUint16((*uint16)(unsafe.Pointer(addr)), value)
}

func (Volatile) Store32(addr uintptr, value uint32) {
	volatile.StoreUint32((*uint32)(unsafe.Pointer(addr)), value)
}
