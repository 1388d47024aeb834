package reg

import (
	"unsafe"

	"github.com/ezrec/regio/bus"
)

// Word is the set of register value types.
type Word interface {
	~uint8 | ~uint16 | ~uint32
}

// Register is the width-erased view of a Cell, for tools that walk a
// register map by name.
type Register interface {
	Addr() uintptr
	Width() uint8
	Load() uint32
	Store(value uint32)
}

var (
	_ Register = Cell[uint8]{}
	_ Register = Cell[uint16]{}
	_ Register = Cell[uint32]{}
)

// Cell is a register of type T at a fixed address.
type Cell[T Word] struct {
	bus  bus.Bus
	addr uintptr
}

// NewCell binds a register of type T to addr on b.
func NewCell[T Word](b bus.Bus, addr uintptr) Cell[T] {
	return Cell[T]{bus: b, addr: addr}
}

func widthOf[T Word]() uint8 {
	var zero T
	return uint8(unsafe.Sizeof(zero)) * 8
}

// Addr returns the bound address.
func (c Cell[T]) Addr() uintptr {
	return c.addr
}

// Width returns the register width in bits.
func (c Cell[T]) Width() uint8 {
	return widthOf[T]()
}

// Read performs one load.
func (c Cell[T]) Read() (value T) {
	switch c.Width() {
	case 8:
		value = T(c.bus.Load8(c.addr))
	case 16:
		value = T(c.bus.Load16(c.addr))
	default:
		value = T(c.bus.Load32(c.addr))
	}
	return
}

// Write performs one store.
func (c Cell[T]) Write(value T) {
	switch c.Width() {
	case 8:
		c.bus.Store8(c.addr, uint8(value))
	case 16:
		c.bus.Store16(c.addr, uint16(value))
	default:
		c.bus.Store32(c.addr, uint32(value))
	}
}

// Load is Read widened to uint32.
func (c Cell[T]) Load() uint32 {
	return uint32(c.Read())
}

// Store is Write of value truncated to the register width.
func (c Cell[T]) Store(value uint32) {
	c.Write(T(value))
}

// ReadModifyWrite writes (Read() & and) | or: one load and one store.
func (c Cell[T]) ReadModifyWrite(and, or T) {
	c.Write(c.Read()&and | or)
}

// Or sets every bit of mask.
func (c Cell[T]) Or(mask T) {
	c.Write(c.Read() | mask)
}

// And clears every bit not in mask.
func (c Cell[T]) And(mask T) {
	c.Write(c.Read() & mask)
}

// Xor flips every bit of mask.
func (c Cell[T]) Xor(mask T) {
	c.Write(c.Read() ^ mask)
}

// AllSet reports whether every bit of mask is set.
func (c Cell[T]) AllSet(mask T) bool {
	return c.Read()&mask == mask
}

// AnySet reports whether at least one bit of mask is set.
func (c Cell[T]) AnySet(mask T) bool {
	return c.Read()&mask != 0
}

// SetBit sets bit n. Positions are not checked: n at or beyond the width is
// a read and write back of the unchanged value.
func (c Cell[T]) SetBit(n uint8) {
	c.Or(T(1) << n)
}

// ClearBit clears bit n, unchecked.
func (c Cell[T]) ClearBit(n uint8) {
	c.And(^(T(1) << n))
}

// ToggleBit flips bit n, unchecked.
func (c Cell[T]) ToggleBit(n uint8) {
	c.Xor(T(1) << n)
}
