package reg

// Field describes a contiguous bit range of a T-wide register, independent of
// any address.
type Field[T Word] struct {
	low   uint8
	width uint8
}

func newField[T Word](a, b uint8) (f Field[T]) {
	if a > b {
		a, b = b, a
	}
	f.low = a
	f.width = b - a + 1
	return
}

// Field8 describes bits Lo..Hi of an 8-bit register. The bounds may be given
// in either order.
func Field8[Lo, Hi Pos8]() Field[uint8] {
	var lo Lo
	var hi Hi
	return newField[uint8](lo.Pos(), hi.Pos())
}

// Field16 describes bits Lo..Hi of a 16-bit register.
func Field16[Lo, Hi Pos16]() Field[uint16] {
	var lo Lo
	var hi Hi
	return newField[uint16](lo.Pos(), hi.Pos())
}

// Field32 describes bits Lo..Hi of a 32-bit register.
func Field32[Lo, Hi Pos32]() Field[uint32] {
	var lo Lo
	var hi Hi
	return newField[uint32](lo.Pos(), hi.Pos())
}

// MakeField describes bits a..b for positions only known at run time, such
// as those of a parsed layout. ok is false if either bound is beyond the
// width of T.
func MakeField[T Word](a, b uint8) (f Field[T], ok bool) {
	width := widthOf[T]()
	if a >= width || b >= width {
		return
	}
	return newField[T](a, b), true
}

// Low returns the lowest bit position.
func (f Field[T]) Low() uint8 {
	return f.low
}

// High returns the highest bit position.
func (f Field[T]) High() uint8 {
	return f.low + f.width - 1
}

// Width returns the number of bits.
func (f Field[T]) Width() uint8 {
	return f.width
}

// Max returns the largest value the field holds, 2^Width - 1.
func (f Field[T]) Max() T {
	return ^T(0) >> (widthOf[T]() - f.width)
}

// Mask returns the field bits in register position.
func (f Field[T]) Mask() T {
	return f.Max() << f.low
}

// Extract returns the field of word, right-aligned.
func (f Field[T]) Extract(word T) T {
	return word >> f.low & f.Max()
}

// Insert returns word with the field replaced by value. Bits of value beyond
// the field width are discarded.
func (f Field[T]) Insert(word, value T) T {
	return word&^f.Mask() | (value&f.Max())<<f.low
}
