// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package bus defines the volatile load/store primitive that every register
// access goes through.
package bus

// Bus performs single, unelided loads and stores of fixed width.
//
// Each call is exactly one hardware access. Implementations must never merge,
// reorder or drop calls.
type Bus interface {
	Load8(addr uintptr) uint8
	Load16(addr uintptr) uint16
	Load32(addr uintptr) uint32
	Store8(addr uintptr, value uint8)
	Store16(addr uintptr, value uint16)
	Store32(addr uintptr, value uint32)
}
