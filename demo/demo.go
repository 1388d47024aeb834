// Package demo holds small register programs for the MSP430FR5994.
package demo

import (
	"github.com/ezrec/regio/board/fr5994"
	"github.com/ezrec/regio/machine"
	"github.com/ezrec/regio/periph/clock"
	"github.com/ezrec/regio/periph/gpio"
	"github.com/ezrec/regio/periph/pmm"
	"github.com/ezrec/regio/periph/timer"
	"github.com/ezrec/regio/reg"
)

const (
	BLINK_TICKS = 16384 // Half a second of ACLK at 32768 Hz.
)

// Blinker configures the board to toggle P1.0 every BLINK_TICKS from a TA0
// interrupt, with P1.1 held on, then sleeps in LPM3 which keeps ACLK running.
func Blinker(m *machine.Machine) {
	b := m.Board

	b.WDT.Stop()

	b.CS.Configure(false, func(tx *clock.Tx) {
		tx.ACLK(clock.AUX_LFXTCLK).SMCLK(clock.SRC_LFXTCLK).MCLK(clock.SRC_LFXTCLK)
		tx.ACLKDivider(clock.DIV_1).SMCLKDivider(clock.DIV_1).MCLKDivider(clock.DIV_1)
	})

	b.PMM.UnlockPM5()

	b.P1.SetMode(gpio.MODE_OUT, gpio.PIN_0|gpio.PIN_1)
	reg.Bit8[reg.B1](b.P1.OUT).Set()

	m.Handle(machine.VECTOR_TA0_0, func(m *machine.Machine) {
		reg.Bit8[reg.B0](m.Board.P1.OUT).Toggle()
	})

	cc0 := timer.CC3[reg.B0](b.TA0)
	cc0.SetCompare(BLINK_TICKS - 1)
	cc0.EnableInterrupt()
	b.TA0.Configure(timer.SRC_ACLK, timer.DIV_1, timer.MODE_UP, false)

	m.Sleep(pmm.LPM3)
}

// Alternate drives P1.0 and P1.1 in opposite phase for cycles toggles.
func Alternate(b *fr5994.Board, cycles int) {
	b.P1.DIR.Write(0b11)
	b.P1.OUT.Write(0b01)
	for range cycles {
		b.P1.OUT.Xor(0b11)
	}
}

// FullRegister assigns and combines whole registers.
func FullRegister(b *fr5994.Board) {
	b.P1.OUT.Write(0xAE)
	b.P2.OUT.Or(0x02)
	b.P3.OUT.And(0xFE)
	b.P4.OUT.Xor(0x81)
}

// SingleBit sets, clears and toggles single bits, unchecked and checked.
func SingleBit(b *fr5994.Board) {
	b.P1.OUT.SetBit(3)
	b.P2.OUT.ClearBit(4)
	b.P3.OUT.ToggleBit(5)

	if reg.Bit8[reg.B5](b.P4.IN).IsSet() {
		reg.Bit8[reg.B6](b.P5.OUT).Set()
	}
}

// BitRange writes P1.4-7 and returns P2.2-6.
func BitRange(b *fr5994.Board) uint8 {
	reg.Bits8[reg.B4, reg.B7](b.P1.OUT).Set(5)
	return reg.Bits8[reg.B2, reg.B6](b.P2.IN).Get()
}
