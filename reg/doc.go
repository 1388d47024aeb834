// Package reg implements typed access to memory-mapped peripheral registers.
//
// A Cell is bound to one address and one width. Every read and write of a Cell
// is exactly one bus access, never merged or elided. Bit and Bits are views
// onto a single bit or a contiguous range of a Cell. Their positions are type
// parameters, so a position outside the width of the Cell does not compile:
//
//	out := reg.NewCell[uint8](b, 0x202)
//	reg.Bit8[reg.B3](out).Set()        // ok
//	reg.Bit8[reg.B9](out).Set()        // B9 does not satisfy Pos8
//	reg.Bits16[reg.B4, reg.B6](ctl)    // 3-bit field at bits 4..6
//
// A Tx stages field edits for several Cells behind an unlock key and writes
// the key first, then each modified Cell once.
package reg
