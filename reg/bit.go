package reg

// Bit is a view of one bit of a Cell.
type Bit[T Word] struct {
	cell Cell[T]
	mask T
}

// Bit8 views bit B of an 8-bit cell.
func Bit8[B Pos8](c Cell[uint8]) Bit[uint8] {
	var b B
	return Bit[uint8]{cell: c, mask: 1 << b.Pos()}
}

// Bit16 views bit B of a 16-bit cell.
func Bit16[B Pos16](c Cell[uint16]) Bit[uint16] {
	var b B
	return Bit[uint16]{cell: c, mask: 1 << b.Pos()}
}

// Bit32 views bit B of a 32-bit cell.
func Bit32[B Pos32](c Cell[uint32]) Bit[uint32] {
	var b B
	return Bit[uint32]{cell: c, mask: 1 << b.Pos()}
}

// Mask returns the single-bit mask.
func (b Bit[T]) Mask() T {
	return b.mask
}

// Get returns 1 if the bit is set, 0 otherwise.
func (b Bit[T]) Get() T {
	if b.IsSet() {
		return 1
	}
	return 0
}

// IsSet reports whether the bit is set.
func (b Bit[T]) IsSet() bool {
	return b.cell.AnySet(b.mask)
}

// Set sets the bit with one read and one write.
func (b Bit[T]) Set() {
	b.cell.Or(b.mask)
}

// Clear clears the bit.
func (b Bit[T]) Clear() {
	b.cell.And(^b.mask)
}

// Toggle flips the bit.
func (b Bit[T]) Toggle() {
	b.cell.Xor(b.mask)
}

// Assign sets the bit if value is non-zero and clears it otherwise.
func (b Bit[T]) Assign(value T) {
	if value != 0 {
		b.Set()
	} else {
		b.Clear()
	}
}

// AssignBool sets the bit if on is true and clears it otherwise.
func (b Bit[T]) AssignBool(on bool) {
	if on {
		b.Set()
	} else {
		b.Clear()
	}
}
