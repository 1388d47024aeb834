// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package fr5994 binds the peripherals of the MSP430FR5994 to their
// addresses.
package fr5994

import (
	"iter"

	"github.com/ezrec/regio/bus"
	"github.com/ezrec/regio/internal"
	"github.com/ezrec/regio/periph/clock"
	"github.com/ezrec/regio/periph/gpio"
	"github.com/ezrec/regio/periph/pmm"
	"github.com/ezrec/regio/periph/timer"
	"github.com/ezrec/regio/periph/wdt"
	"github.com/ezrec/regio/reg"
)

const (
	CHIP = "MSP430FR5994"

	PMM_BASE   = 0x0120
	WDT_A_ADDR = 0x015C
	CS_BASE    = 0x0160

	P1_BASE = 0x0200
	P2_BASE = 0x0201
	P3_BASE = 0x0220
	P4_BASE = 0x0221
	P5_BASE = 0x0240
	P6_BASE = 0x0241
	P7_BASE = 0x0260
	P8_BASE = 0x0261
	PJ_BASE = 0x0320

	TA0_BASE = 0x0340
	TA1_BASE = 0x0380
	TB0_BASE = 0x03C0
	TA2_BASE = 0x0400
	TA3_BASE = 0x0440
	TA4_BASE = 0x07C0
)

// ivAddr returns the vector word of the port at base. Ports come in pairs
// sharing a 32 byte window: the even port vector sits at +0x0E, the odd at +0x1E.
func ivAddr(base uintptr) uintptr {
	return base&^1 + 0x0E + 0x10*(base&1)
}

// Board holds one driver per peripheral.
type Board struct {
	PMM *pmm.PMM
	WDT *wdt.WDT
	CS  *clock.CS

	P1, P2, P3, P4, P5, P6, P7, P8 *gpio.IntPort
	PJ                             *gpio.Port

	TA0, TA1      *timer.TA3
	TA2, TA3, TA4 *timer.TA2
	TB0           *timer.TB7
}

// New binds every peripheral to b.
func New(b bus.Bus) (board *Board) {
	port := func(base uintptr) *gpio.IntPort {
		return gpio.NewIntPort(b, base, ivAddr(base))
	}

	board = &Board{
		PMM: pmm.New(b, PMM_BASE),
		WDT: wdt.New(b, WDT_A_ADDR),
		CS:  clock.New(b, CS_BASE),

		P1: port(P1_BASE),
		P2: port(P2_BASE),
		P3: port(P3_BASE),
		P4: port(P4_BASE),
		P5: port(P5_BASE),
		P6: port(P6_BASE),
		P7: port(P7_BASE),
		P8: port(P8_BASE),
		PJ: gpio.NewPort(b, PJ_BASE),

		TA0: timer.NewTA3(b, TA0_BASE),
		TA1: timer.NewTA3(b, TA1_BASE),
		TA2: timer.NewTA2(b, TA2_BASE),
		TA3: timer.NewTA2(b, TA3_BASE),
		TA4: timer.NewTA2(b, TA4_BASE),
		TB0: timer.NewTB7(b, TB0_BASE),
	}

	return
}

// Ports returns the interrupt capable ports in order.
func (board *Board) Ports() []*gpio.IntPort {
	return []*gpio.IntPort{board.P1, board.P2, board.P3, board.P4, board.P5, board.P6, board.P7, board.P8}
}

// Registers iterates every register as PERIPHERAL.REGISTER.
func (board *Board) Registers() iter.Seq2[string, reg.Register] {
	p := func(name string, seq iter.Seq2[string, reg.Register]) iter.Seq2[string, reg.Register] {
		return internal.Prefix(name, ".", seq)
	}

	return internal.Concat2(
		p("PMM", board.PMM.Registers()),
		p("WDT", board.WDT.Registers()),
		p("CS", board.CS.Registers()),
		p("P1", board.P1.Registers()),
		p("P2", board.P2.Registers()),
		p("P3", board.P3.Registers()),
		p("P4", board.P4.Registers()),
		p("P5", board.P5.Registers()),
		p("P6", board.P6.Registers()),
		p("P7", board.P7.Registers()),
		p("P8", board.P8.Registers()),
		p("PJ", board.PJ.Registers()),
		p("TA0", board.TA0.Registers()),
		p("TA1", board.TA1.Registers()),
		p("TB0", board.TB0.Registers()),
		p("TA2", board.TA2.Registers()),
		p("TA3", board.TA3.Registers()),
		p("TA4", board.TA4.Registers()),
	)
}
