// Package gpio drives digital I/O ports.
package gpio

import (
	"iter"

	"github.com/ezrec/regio/bus"
	"github.com/ezrec/regio/reg"
)

// Pins is a mask of port pins.
type Pins uint8

const (
	PIN_0 = Pins(1 << iota)
	PIN_1
	PIN_2
	PIN_3
	PIN_4
	PIN_5
	PIN_6
	PIN_7

	PIN_NONE = Pins(0)
	PIN_ALL  = Pins(0xff)
)

// Mode is a pin direction and resistor setting.
type Mode int

const (
	MODE_OUT         = Mode(iota) // Output.
	MODE_IN                       // Input, floating.
	MODE_IN_PULLUP                // Input with pull-up.
	MODE_IN_PULLDOWN              // Input with pull-down.
)

// Function is a pin multiplexer selection.
type Function int

const (
	FUNC_GPIO      = Function(iota) // SEL1=0 SEL0=0
	FUNC_PRIMARY                    // SEL1=0 SEL0=1
	FUNC_SECONDARY                  // SEL1=1 SEL0=0
	FUNC_TERTIARY                   // SEL1=1 SEL0=1
)

// Edge is the interrupt trigger edge.
type Edge int

const (
	EDGE_RISING  = Edge(0)
	EDGE_FALLING = Edge(1)
)

// Port is a port without interrupt capability, such as PJ.
type Port struct {
	IN   reg.Cell[uint8]
	OUT  reg.Cell[uint8]
	DIR  reg.Cell[uint8]
	REN  reg.Cell[uint8]
	SEL0 reg.Cell[uint8]
	SEL1 reg.Cell[uint8]
	SELC reg.Cell[uint8]
}

// NewPort binds a port at base.
func NewPort(b bus.Bus, base uintptr) (p *Port) {
	p = &Port{}
	p.bind(b, base)
	return
}

func (p *Port) bind(b bus.Bus, base uintptr) {
	p.IN = reg.NewCell[uint8](b, base+0x00)
	p.OUT = reg.NewCell[uint8](b, base+0x02)
	p.DIR = reg.NewCell[uint8](b, base+0x04)
	p.REN = reg.NewCell[uint8](b, base+0x06)
	p.SEL0 = reg.NewCell[uint8](b, base+0x0A)
	p.SEL1 = reg.NewCell[uint8](b, base+0x0C)
	p.SELC = reg.NewCell[uint8](b, base+0x16)
}

// Registers iterates the port by register name.
func (p *Port) Registers() iter.Seq2[string, reg.Register] {
	return func(yield func(string, reg.Register) bool) {
		_ = yield("IN", p.IN) &&
			yield("OUT", p.OUT) &&
			yield("DIR", p.DIR) &&
			yield("REN", p.REN) &&
			yield("SEL0", p.SEL0) &&
			yield("SEL1", p.SEL1) &&
			yield("SELC", p.SELC)
	}
}

// SetMode sets direction and pull resistors of pins. Other pins keep their
// setting.
func (p *Port) SetMode(mode Mode, pins Pins) {
	mask := uint8(pins)
	switch mode {
	case MODE_OUT:
		p.DIR.Or(mask)
		p.REN.And(^mask)
	case MODE_IN:
		p.DIR.And(^mask)
		p.REN.And(^mask)
	case MODE_IN_PULLUP:
		p.DIR.And(^mask)
		p.REN.Or(mask)
		p.OUT.Or(mask)
	case MODE_IN_PULLDOWN:
		p.DIR.And(^mask)
		p.REN.Or(mask)
		p.OUT.And(^mask)
	}
}

// SetFunction routes pins to a peripheral function. Other pins keep their
// routing.
func (p *Port) SetFunction(fn Function, pins Pins) {
	mask := uint8(pins)
	if fn&1 != 0 {
		p.SEL0.Or(mask)
	} else {
		p.SEL0.And(^mask)
	}
	if fn&2 != 0 {
		p.SEL1.Or(mask)
	} else {
		p.SEL1.And(^mask)
	}
}

// High drives pins high.
func (p *Port) High(pins Pins) {
	p.OUT.Or(uint8(pins))
}

// Low drives pins low.
func (p *Port) Low(pins Pins) {
	p.OUT.And(^uint8(pins))
}

// Toggle flips the output of pins.
func (p *Port) Toggle(pins Pins) {
	p.OUT.Xor(uint8(pins))
}

// Read returns the input level of pins.
func (p *Port) Read(pins Pins) Pins {
	return Pins(p.IN.Read()) & pins
}

// IntPort is a port with edge interrupts.
type IntPort struct {
	Port
	IV  reg.Cell[uint16] // Interrupt vector, clears the reported flag on read.
	IES reg.Cell[uint8]
	IE  reg.Cell[uint8]
	IFG reg.Cell[uint8]
}

// NewIntPort binds an interrupt capable port at base, with its vector word
// at iv.
func NewIntPort(b bus.Bus, base uintptr, iv uintptr) (p *IntPort) {
	p = &IntPort{}
	p.bind(b, base)
	p.IV = reg.NewCell[uint16](b, iv)
	p.IES = reg.NewCell[uint8](b, base+0x18)
	p.IE = reg.NewCell[uint8](b, base+0x1A)
	p.IFG = reg.NewCell[uint8](b, base+0x1C)
	return
}

// Registers iterates the port by register name.
func (p *IntPort) Registers() iter.Seq2[string, reg.Register] {
	return func(yield func(string, reg.Register) bool) {
		for name, r := range p.Port.Registers() {
			if !yield(name, r) {
				return
			}
		}
		_ = yield("IV", p.IV) &&
			yield("IES", p.IES) &&
			yield("IE", p.IE) &&
			yield("IFG", p.IFG)
	}
}

// EnableInterrupt arms pins for edge. Pending flags of pins are cleared first,
// since changing the edge can set them.
func (p *IntPort) EnableInterrupt(edge Edge, pins Pins) {
	mask := uint8(pins)
	p.IE.And(^mask)
	if edge == EDGE_FALLING {
		p.IES.Or(mask)
	} else {
		p.IES.And(^mask)
	}
	p.IFG.And(^mask)
	p.IE.Or(mask)
}

// DisableInterrupt disarms pins.
func (p *IntPort) DisableInterrupt(pins Pins) {
	p.IE.And(^uint8(pins))
}

// Pending returns the pins with a pending flag.
func (p *IntPort) Pending(pins Pins) Pins {
	return Pins(p.IFG.Read()) & pins
}

// Acknowledge clears the pending flag of pins.
func (p *IntPort) Acknowledge(pins Pins) {
	p.IFG.And(^uint8(pins))
}
