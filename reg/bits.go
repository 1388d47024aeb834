package reg

// Bits is a view of a contiguous bit range of a Cell.
type Bits[T Word] struct {
	cell  Cell[T]
	field Field[T]
}

// Bits8 views bits Lo..Hi of an 8-bit cell.
func Bits8[Lo, Hi Pos8](c Cell[uint8]) Bits[uint8] {
	return Bits[uint8]{cell: c, field: Field8[Lo, Hi]()}
}

// Bits16 views bits Lo..Hi of a 16-bit cell.
func Bits16[Lo, Hi Pos16](c Cell[uint16]) Bits[uint16] {
	return Bits[uint16]{cell: c, field: Field16[Lo, Hi]()}
}

// Bits32 views bits Lo..Hi of a 32-bit cell.
func Bits32[Lo, Hi Pos32](c Cell[uint32]) Bits[uint32] {
	return Bits[uint32]{cell: c, field: Field32[Lo, Hi]()}
}

// Field returns the described range.
func (b Bits[T]) Field() Field[T] {
	return b.field
}

// Get returns the range right-aligned.
func (b Bits[T]) Get() T {
	return b.field.Extract(b.cell.Read())
}

// Set replaces the range with value in two read-modify-write cycles: the
// range is cleared, then value is or-ed in. Between the two the register holds
// the range as zero, which an interrupt handler or the hardware can observe.
// Use SetAtomic where that matters.
func (b Bits[T]) Set(value T) {
	b.cell.And(^b.field.Mask())
	b.cell.Or((value & b.field.Max()) << b.field.Low())
}

// SetAtomic replaces the range with one read and one write. It is still not
// safe against an interrupt handler writing the same register between the two.
func (b Bits[T]) SetAtomic(value T) {
	b.cell.Write(b.field.Insert(b.cell.Read(), value))
}

// Fill sets every bit of the range.
func (b Bits[T]) Fill() {
	b.cell.Or(b.field.Mask())
}

// Clear clears every bit of the range.
func (b Bits[T]) Clear() {
	b.cell.And(^b.field.Mask())
}
