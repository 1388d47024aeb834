package reg

// Bit position types. A view built from them has its position fixed at
// instantiation, where the compiler checks it against the cell width.
type (
	B0  struct{}
	B1  struct{}
	B2  struct{}
	B3  struct{}
	B4  struct{}
	B5  struct{}
	B6  struct{}
	B7  struct{}
	B8  struct{}
	B9  struct{}
	B10 struct{}
	B11 struct{}
	B12 struct{}
	B13 struct{}
	B14 struct{}
	B15 struct{}
	B16 struct{}
	B17 struct{}
	B18 struct{}
	B19 struct{}
	B20 struct{}
	B21 struct{}
	B22 struct{}
	B23 struct{}
	B24 struct{}
	B25 struct{}
	B26 struct{}
	B27 struct{}
	B28 struct{}
	B29 struct{}
	B30 struct{}
	B31 struct{}
)

func (B0) Pos() uint8  { return 0 }
func (B1) Pos() uint8  { return 1 }
func (B2) Pos() uint8  { return 2 }
func (B3) Pos() uint8  { return 3 }
func (B4) Pos() uint8  { return 4 }
func (B5) Pos() uint8  { return 5 }
func (B6) Pos() uint8  { return 6 }
func (B7) Pos() uint8  { return 7 }
func (B8) Pos() uint8  { return 8 }
func (B9) Pos() uint8  { return 9 }
func (B10) Pos() uint8 { return 10 }
func (B11) Pos() uint8 { return 11 }
func (B12) Pos() uint8 { return 12 }
func (B13) Pos() uint8 { return 13 }
func (B14) Pos() uint8 { return 14 }
func (B15) Pos() uint8 { return 15 }
func (B16) Pos() uint8 { return 16 }
func (B17) Pos() uint8 { return 17 }
func (B18) Pos() uint8 { return 18 }
func (B19) Pos() uint8 { return 19 }
func (B20) Pos() uint8 { return 20 }
func (B21) Pos() uint8 { return 21 }
func (B22) Pos() uint8 { return 22 }
func (B23) Pos() uint8 { return 23 }
func (B24) Pos() uint8 { return 24 }
func (B25) Pos() uint8 { return 25 }
func (B26) Pos() uint8 { return 26 }
func (B27) Pos() uint8 { return 27 }
func (B28) Pos() uint8 { return 28 }
func (B29) Pos() uint8 { return 29 }
func (B30) Pos() uint8 { return 30 }
func (B31) Pos() uint8 { return 31 }

// Pos8 admits the bit positions of an 8-bit cell.
type Pos8 interface {
	B0 | B1 | B2 | B3 | B4 | B5 | B6 | B7
	Pos() uint8
}

// Pos16 admits the bit positions of a 16-bit cell.
type Pos16 interface {
	B0 | B1 | B2 | B3 | B4 | B5 | B6 | B7 | B8 | B9 | B10 | B11 | B12 | B13 | B14 | B15
	Pos() uint8
}

// Pos32 admits the bit positions of a 32-bit cell.
type Pos32 interface {
	B0 | B1 | B2 | B3 | B4 | B5 | B6 | B7 | B8 | B9 | B10 | B11 | B12 | B13 | B14 | B15 | B16 | B17 | B18 | B19 | B20 | B21 | B22 | B23 | B24 | B25 | B26 | B27 | B28 | B29 | B30 | B31
	Pos() uint8
}
