// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package timer drives Timer_A and Timer_B blocks and their capture/compare
// channels.
//
// Channel numbers are type parameters checked against the channel count of
// the block: CC3[reg.B2](ta0) compiles, CC2[reg.B2](ta2) does not.
package timer

import (
	"fmt"
	"iter"

	"github.com/ezrec/regio/bus"
	"github.com/ezrec/regio/reg"
)

//go:generate go tool stringer -type=Mode -linecomment

// Source selects the timer clock.
type Source uint16

const (
	SRC_TACLK = Source(0) // External TxCLK pin.
	SRC_ACLK  = Source(1)
	SRC_SMCLK = Source(2)
	SRC_INCLK = Source(3) // Inverted TxCLK or device specific.
)

// Divider is the input divider.
type Divider uint16

const (
	DIV_1 = Divider(0)
	DIV_2 = Divider(1)
	DIV_4 = Divider(2)
	DIV_8 = Divider(3)
)

// Mode is the counting mode.
type Mode uint16

const (
	MODE_STOP       = Mode(0) // stop
	MODE_UP         = Mode(1) // up
	MODE_CONTINUOUS = Mode(2) // continuous
	MODE_UP_DOWN    = Mode(3) // up/down
)

// OutMode is a capture/compare output mode.
type OutMode uint16

const (
	OUTMOD_OUT = OutMode(iota)
	OUTMOD_SET
	OUTMOD_TOGGLE_RESET
	OUTMOD_SET_RESET
	OUTMOD_TOGGLE
	OUTMOD_RESET
	OUTMOD_TOGGLE_SET
	OUTMOD_RESET_SET
)

// CaptureMode selects the capture edge.
type CaptureMode uint16

const (
	CAPTURE_NONE    = CaptureMode(0)
	CAPTURE_RISING  = CaptureMode(1)
	CAPTURE_FALLING = CaptureMode(2)
	CAPTURE_BOTH    = CaptureMode(3)
)

// Input selects the capture input.
type Input uint16

const (
	INPUT_CCIA = Input(0)
	INPUT_CCIB = Input(1)
	INPUT_GND  = Input(2)
	INPUT_VCC  = Input(3)
)

// Length is the Timer_B counter length.
type Length uint16

const (
	LENGTH_16 = Length(0)
	LENGTH_12 = Length(1)
	LENGTH_10 = Length(2)
	LENGTH_8  = Length(3)
)

// Control register bits.
const (
	TAIFG = 1 << 0
	TAIE  = 1 << 1
	TACLR = 1 << 2
)

// Capture/compare control register bits.
const (
	CCIFG = 1 << 0
	COV   = 1 << 1
	OUT   = 1 << 2
	CCI   = 1 << 3
	CCIE  = 1 << 4
	CAP   = 1 << 8
	SCS   = 1 << 11
)

var (
	fieldSSEL = reg.Field16[reg.B8, reg.B9]()
	fieldID   = reg.Field16[reg.B6, reg.B7]()
	fieldMC   = reg.Field16[reg.B4, reg.B5]()
	fieldIE   = reg.Field16[reg.B1, reg.B1]()
	fieldCLR  = reg.Field16[reg.B2, reg.B2]()
	fieldIDEX = reg.Field16[reg.B0, reg.B2]()
	fieldCM   = reg.Field16[reg.B14, reg.B15]()
	fieldCCIS = reg.Field16[reg.B12, reg.B13]()
	fieldSCS  = reg.Field16[reg.B11, reg.B11]()
	fieldCAP  = reg.Field16[reg.B8, reg.B8]()
)

// Timer is the register block common to Timer_A and Timer_B.
type Timer struct {
	CTL reg.Cell[uint16]
	R   reg.Cell[uint16]
	EX0 reg.Cell[uint16]
	IV  reg.Cell[uint16]

	bus      bus.Bus
	base     uintptr
	channels uint8
}

func newTimer(b bus.Bus, base uintptr, channels uint8) Timer {
	return Timer{
		CTL:      reg.NewCell[uint16](b, base+0x00),
		R:        reg.NewCell[uint16](b, base+0x10),
		EX0:      reg.NewCell[uint16](b, base+0x20),
		IV:       reg.NewCell[uint16](b, base+0x2E),
		bus:      b,
		base:     base,
		channels: channels,
	}
}

// Channels returns the number of capture/compare channels.
func (t *Timer) Channels() uint8 {
	return t.channels
}

func (t *Timer) channel(n uint8) CaptureCompare {
	offset := 2 * uintptr(n)
	return CaptureCompare{
		CTL: reg.NewCell[uint16](t.bus, t.base+0x02+offset),
		CCR: reg.NewCell[uint16](t.bus, t.base+0x12+offset),
	}
}

// Channel returns channel n, checked at run time.
func (t *Timer) Channel(n int) (cc CaptureCompare, err error) {
	if n < 0 || n >= int(t.channels) {
		err = fmt.Errorf("%w: %d of %d", ErrChannel, n, t.channels)
		return
	}
	cc = t.channel(uint8(n))
	return
}

// Registers iterates the block by register name, channels included.
func (t *Timer) Registers() iter.Seq2[string, reg.Register] {
	return func(yield func(string, reg.Register) bool) {
		if !(yield("CTL", t.CTL) && yield("R", t.R) && yield("EX0", t.EX0) && yield("IV", t.IV)) {
			return
		}
		for n := range t.channels {
			cc := t.channel(n)
			if !yield(fmt.Sprintf("CCTL%d", n), cc.CTL) || !yield(fmt.Sprintf("CCR%d", n), cc.CCR) {
				return
			}
		}
	}
}

// Configure replaces the control register and clears the counter. irq
// enables the overflow interrupt.
func (t *Timer) Configure(src Source, div Divider, mode Mode, irq bool) {
	var word uint16
	word = fieldSSEL.Insert(word, uint16(src))
	word = fieldID.Insert(word, uint16(div))
	word = fieldMC.Insert(word, uint16(mode))
	if irq {
		word = fieldIE.Insert(word, 1)
	}
	word = fieldCLR.Insert(word, 1)
	t.CTL.Write(word)
}

// SetMode changes the counting mode only.
func (t *Timer) SetMode(mode Mode) {
	reg.Bits16[reg.B4, reg.B5](t.CTL).SetAtomic(uint16(mode))
}

// Mode returns the counting mode.
func (t *Timer) Mode() Mode {
	return Mode(reg.Bits16[reg.B4, reg.B5](t.CTL).Get())
}

// Stop halts counting.
func (t *Timer) Stop() {
	t.SetMode(MODE_STOP)
}

// Clear resets the counter and divider logic.
func (t *Timer) Clear() {
	reg.Bit16[reg.B2](t.CTL).Set()
}

// Count returns the counter.
func (t *Timer) Count() uint16 {
	return t.R.Read()
}

// SetExpansion sets the second input divider, 1 to 8.
func (t *Timer) SetExpansion(div uint8) {
	t.EX0.Write(fieldIDEX.Insert(0, uint16(div-1)))
}

// Pending reports the overflow flag.
func (t *Timer) Pending() bool {
	return reg.Bit16[reg.B0](t.CTL).IsSet()
}

// Acknowledge clears the overflow flag.
func (t *Timer) Acknowledge() {
	reg.Bit16[reg.B0](t.CTL).Clear()
}

// Vector reads the interrupt vector, which acknowledges the reported source.
func (t *Timer) Vector() uint16 {
	return t.IV.Read()
}

// CaptureCompare is one capture/compare channel.
type CaptureCompare struct {
	CTL reg.Cell[uint16]
	CCR reg.Cell[uint16]
}

// SetCompare sets the compare value.
func (cc CaptureCompare) SetCompare(value uint16) {
	cc.CCR.Write(value)
}

// Compare returns the compare or captured value.
func (cc CaptureCompare) Compare() uint16 {
	return cc.CCR.Read()
}

// EnableInterrupt sets CCIE.
func (cc CaptureCompare) EnableInterrupt() {
	reg.Bit16[reg.B4](cc.CTL).Set()
}

// DisableInterrupt clears CCIE.
func (cc CaptureCompare) DisableInterrupt() {
	reg.Bit16[reg.B4](cc.CTL).Clear()
}

// Pending reports CCIFG.
func (cc CaptureCompare) Pending() bool {
	return reg.Bit16[reg.B0](cc.CTL).IsSet()
}

// Acknowledge clears CCIFG.
func (cc CaptureCompare) Acknowledge() {
	reg.Bit16[reg.B0](cc.CTL).Clear()
}

// Overflow reports a capture overflow.
func (cc CaptureCompare) Overflow() bool {
	return reg.Bit16[reg.B1](cc.CTL).IsSet()
}

// SetOutputMode sets OUTMOD.
func (cc CaptureCompare) SetOutputMode(mode OutMode) {
	reg.Bits16[reg.B5, reg.B7](cc.CTL).SetAtomic(uint16(mode))
}

// SetOutput drives OUT, used by OUTMOD_OUT.
func (cc CaptureCompare) SetOutput(high bool) {
	out := reg.Bit16[reg.B2](cc.CTL)
	if high {
		out.Set()
	} else {
		out.Clear()
	}
}

// SetCapture switches the channel to capture mode in one write.
func (cc CaptureCompare) SetCapture(mode CaptureMode, input Input, sync bool) {
	word := cc.CTL.Read()
	word = fieldCM.Insert(word, uint16(mode))
	word = fieldCCIS.Insert(word, uint16(input))
	if sync {
		word = fieldSCS.Insert(word, 1)
	} else {
		word = fieldSCS.Insert(word, 0)
	}
	word = fieldCAP.Insert(word, 1)
	cc.CTL.Write(word)
}

// SetCompareMode switches the channel back to compare mode.
func (cc CaptureCompare) SetCompareMode() {
	reg.Bit16[reg.B8](cc.CTL).Clear()
}
