package timer

import (
	"github.com/ezrec/regio/bus"
	"github.com/ezrec/regio/reg"
)

// Ch2 admits the channels of a two-channel timer.
type Ch2 interface {
	reg.B0 | reg.B1
	Pos() uint8
}

// Ch3 admits the channels of a three-channel timer.
type Ch3 interface {
	reg.B0 | reg.B1 | reg.B2
	Pos() uint8
}

// Ch7 admits the channels of a seven-channel timer.
type Ch7 interface {
	reg.B0 | reg.B1 | reg.B2 | reg.B3 | reg.B4 | reg.B5 | reg.B6
	Pos() uint8
}

// TA2 is a Timer_A with two channels.
type TA2 struct {
	Timer
}

// NewTA2 binds a two-channel Timer_A at base.
func NewTA2(b bus.Bus, base uintptr) *TA2 {
	return &TA2{Timer: newTimer(b, base, 2)}
}

// TA3 is a Timer_A with three channels.
type TA3 struct {
	Timer
}

// NewTA3 binds a three-channel Timer_A at base.
func NewTA3(b bus.Bus, base uintptr) *TA3 {
	return &TA3{Timer: newTimer(b, base, 3)}
}

// TB7 is a Timer_B with seven channels.
type TB7 struct {
	Timer
}

// NewTB7 binds a seven-channel Timer_B at base.
func NewTB7(b bus.Bus, base uintptr) *TB7 {
	return &TB7{Timer: newTimer(b, base, 7)}
}

// SetLength sets the counter length.
func (t *TB7) SetLength(length Length) {
	reg.Bits16[reg.B11, reg.B12](t.CTL).SetAtomic(uint16(length))
}

// SetGroup sets the compare latch grouping, 0 to 3.
func (t *TB7) SetGroup(group uint8) {
	reg.Bits16[reg.B13, reg.B14](t.CTL).SetAtomic(uint16(group))
}

// CC2 returns channel N of a two-channel timer.
func CC2[N Ch2](t *TA2) CaptureCompare {
	var n N
	return t.channel(n.Pos())
}

// CC3 returns channel N of a three-channel timer.
func CC3[N Ch3](t *TA3) CaptureCompare {
	var n N
	return t.channel(n.Pos())
}

// CC7 returns channel N of a seven-channel timer.
func CC7[N Ch7](t *TB7) CaptureCompare {
	var n N
	return t.channel(n.Pos())
}
