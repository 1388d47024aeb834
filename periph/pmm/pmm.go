// Package pmm drives the power management module and defines the low-power
// mode status register bits.
package pmm

import (
	"iter"

	"github.com/ezrec/regio/bus"
	"github.com/ezrec/regio/reg"
)

const (
	PMMPW = 0xA500 // Password, required in the high byte of CTL0 writes.

	PMMSWBOR = 1 << 2
	PMMSWPOR = 1 << 3
	LOCKLPM5 = 1 << 0
)

// Status register bits.
const (
	GIE    = 1 << 3
	CPUOFF = 1 << 4
	OSCOFF = 1 << 5
	SCG0   = 1 << 6
	SCG1   = 1 << 7
)

// LowPowerMode is an operating mode of the CPU and clocks.
type LowPowerMode int

const (
	ACTIVE = LowPowerMode(-1)
	LPM0   = LowPowerMode(0)
	LPM1   = LowPowerMode(1)
	LPM2   = LowPowerMode(2)
	LPM3   = LowPowerMode(3)
	LPM4   = LowPowerMode(4)
)

// StatusBits returns the status register bits that enter the mode, with
// interrupts enabled.
func (m LowPowerMode) StatusBits() (sr uint16) {
	switch m {
	case LPM0:
		sr = CPUOFF
	case LPM1:
		sr = CPUOFF | SCG0
	case LPM2:
		sr = CPUOFF | SCG1
	case LPM3:
		sr = CPUOFF | SCG0 | SCG1
	case LPM4:
		sr = CPUOFF | OSCOFF | SCG0 | SCG1
	default:
		return 0
	}
	sr |= GIE
	return
}

// PMM is the power management register block.
type PMM struct {
	CTL0    reg.Cell[uint16]
	CTL1    reg.Cell[uint16]
	IFG     reg.Cell[uint16]
	PM5CTL0 reg.Cell[uint16]
}

// New binds the block at base.
func New(b bus.Bus, base uintptr) *PMM {
	return &PMM{
		CTL0:    reg.NewCell[uint16](b, base+0x00),
		CTL1:    reg.NewCell[uint16](b, base+0x02),
		IFG:     reg.NewCell[uint16](b, base+0x0A),
		PM5CTL0: reg.NewCell[uint16](b, base+0x10),
	}
}

// Registers iterates the block by register name.
func (p *PMM) Registers() iter.Seq2[string, reg.Register] {
	return func(yield func(string, reg.Register) bool) {
		_ = yield("CTL0", p.CTL0) &&
			yield("CTL1", p.CTL1) &&
			yield("IFG", p.IFG) &&
			yield("PM5CTL0", p.PM5CTL0)
	}
}

// UnlockPM5 releases the I/O pins held since power-up.
func (p *PMM) UnlockPM5() {
	reg.Bit16[reg.B0](p.PM5CTL0).Clear()
}

// Locked reports whether the I/O pins are held.
func (p *PMM) Locked() bool {
	return reg.Bit16[reg.B0](p.PM5CTL0).IsSet()
}

// SoftwareReset requests a brownout reset, or a power-on reset if por is set.
func (p *PMM) SoftwareReset(por bool) {
	var bit uint16 = PMMSWBOR
	if por {
		bit = PMMSWPOR
	}
	p.CTL0.Write(PMMPW | bit)
}
