// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package machine simulates an MSP430FR5994 closely enough to run register
// level driver code: reset values, password and lock protection, the status
// register, timers, the watchdog and interrupt dispatch.
package machine

import (
	"iter"
	"log"

	"github.com/ezrec/regio/board/fr5994"
	"github.com/ezrec/regio/bus"
	"github.com/ezrec/regio/periph/gpio"
	"github.com/ezrec/regio/periph/pmm"
	"github.com/ezrec/regio/periph/wdt"
	"github.com/ezrec/regio/reg"
	"github.com/ezrec/regio/sim"
)

const (
	LPM_BITS = pmm.CPUOFF | pmm.OSCOFF | pmm.SCG0 | pmm.SCG1 // Status bits of every low-power mode.
)

// Handler is an interrupt service routine.
type Handler func(m *Machine)

// Machine state. Memory + board drivers + CPU status register.
type Machine struct {
	Verbose     bool          // If set, enables verbose logging.
	*sim.Memory               // Simulated peripheral space.
	Bus         *bus.Counter  // Bus the Board drivers use.
	Board       *fr5994.Board // Drivers bound to Bus.

	SR     uint16 // CPU status register.
	Ticks  uint64 // Clock ticks since power on.
	Resets int    // Number of resets since creation.

	handlers  map[Vector]Handler
	timers    []*timerModel
	wdtCount  uint64
	inHandler bool
	exitClear uint16
}

// New creates a powered-on machine.
func New() (m *Machine) {
	mem := sim.NewMemory()
	m = &Machine{
		Memory:   mem,
		Bus:      bus.NewCounter(mem),
		handlers: map[Vector]Handler{},
	}
	m.Board = fr5994.New(m.Bus)

	b := m.Board
	m.timers = []*timerModel{
		newTimerModel(&b.TA0.Timer, VECTOR_TA0_0, VECTOR_TA0_N),
		newTimerModel(&b.TA1.Timer, VECTOR_TA1_0, VECTOR_TA1_N),
		newTimerModel(&b.TB0.Timer, VECTOR_TB0_0, VECTOR_TB0_N),
		newTimerModel(&b.TA2.Timer, VECTOR_TA2_0, VECTOR_TA2_N),
		newTimerModel(&b.TA3.Timer, VECTOR_TA3_0, VECTOR_TA3_N),
		newTimerModel(&b.TA4.Timer, VECTOR_TA4_0, VECTOR_TA4_N),
	}

	m.install()
	m.PowerOn()

	return
}

// Registers iterates every board register by name.
func (m *Machine) Registers() iter.Seq2[string, reg.Register] {
	return m.Board.Registers()
}

// PowerOn loads reset values, clears the status register and tick count.
// Handlers are kept.
func (m *Machine) PowerOn() {
	m.Memory.Restore(nil)

	for addr, value := range _reset_values {
		m.Poke(addr, 2, value)
	}

	m.SR = 0
	m.Ticks = 0
	m.wdtCount = 0
	m.inHandler = false
	m.exitClear = 0
	for _, t := range m.timers {
		t.down = false
	}
}

// puc performs a power-up clear.
func (m *Machine) puc(reason string) {
	m.Resets++
	if m.Verbose {
		log.Printf("machine: reset: %v", reason)
	}
	m.PowerOn()
}

// Handle installs h for vector v. A nil h removes it.
func (m *Machine) Handle(v Vector, h Handler) {
	if h == nil {
		delete(m.handlers, v)
		return
	}
	m.handlers[v] = h
}

// EnableInterrupts sets GIE.
func (m *Machine) EnableInterrupts() {
	m.SR |= pmm.GIE
}

// DisableInterrupts clears GIE.
func (m *Machine) DisableInterrupts() {
	m.SR &^= pmm.GIE
}

// Critical runs fn with interrupts disabled, restoring GIE afterwards.
func (m *Machine) Critical(fn func()) {
	gie := m.SR & pmm.GIE
	m.DisableInterrupts()
	defer func() {
		m.SR |= gie
	}()
	fn()
}

// Sleep enters mode with interrupts enabled.
func (m *Machine) Sleep(mode pmm.LowPowerMode) {
	m.SR |= mode.StatusBits()
}

// Wake leaves low-power mode. From a handler it takes effect when the
// handler returns.
func (m *Machine) Wake() {
	if m.inHandler {
		m.exitClear |= LPM_BITS
		return
	}
	m.SR &^= LPM_BITS
}

// Awake reports whether the CPU is running.
func (m *Machine) Awake() bool {
	return m.SR&pmm.CPUOFF == 0
}

// SetInput drives the input pins of p, latching edge flags of interrupt
// capable ports.
func (m *Machine) SetInput(p *gpio.Port, value gpio.Pins) {
	addr := p.IN.Addr()
	old := uint8(m.Peek(addr, 1))
	m.Poke(addr, 1, uint32(value))

	for _, port := range m.Board.Ports() {
		if &port.Port != p {
			continue
		}
		ies := uint8(m.Peek(port.IES.Addr(), 1))
		rising := ^old & uint8(value)
		falling := old &^ uint8(value)
		flagged := rising&^ies | falling&ies
		ifg := port.IFG.Addr()
		m.Poke(ifg, 1, m.Peek(ifg, 1)|uint32(flagged))
	}
}

// dispatch runs the handler for v if interrupts are enabled. It reports
// whether a handler ran.
func (m *Machine) dispatch(v Vector) (ran bool) {
	h, ok := m.handlers[v]
	if !ok || m.SR&pmm.GIE == 0 || m.inHandler {
		return
	}

	saved := m.SR
	m.SR &^= pmm.GIE | LPM_BITS
	m.inHandler = true
	m.exitClear = 0

	if m.Verbose {
		log.Printf("machine: interrupt %v", v)
	}

	defer func() {
		m.inHandler = false
		m.SR = saved &^ m.exitClear
		m.exitClear = 0
		if r := recover(); r != nil {
			panic(&ErrHandler{Vector: v, Err: r})
		}
	}()

	h(m)
	ran = true

	return
}

// Advance runs the timers and the watchdog for ticks clock cycles,
// dispatching interrupts as they occur. Every timer is assumed to run from
// the same clock. A reset ends the advance early, leaving Ticks at zero.
func (m *Machine) Advance(ticks uint64) {
	resets := m.Resets
	for _, t := range m.timers {
		t.advance(m, ticks)
		if m.Resets != resets {
			return
		}
	}

	m.advanceWDT(ticks)
	if m.Resets != resets {
		return
	}

	m.Ticks += ticks
}

// advanceWDT counts the watchdog. WDTCTL is re-read after every interval so
// a handler may hold or reconfigure it.
func (m *Machine) advanceWDT(ticks uint64) {
	for {
		ctl := uint16(m.Peek(fr5994.WDT_A_ADDR, 2))
		if ctl&wdt.WDTHOLD != 0 {
			return
		}

		var left uint64
		period := wdt.Interval(ctl & 7).Cycles()
		if m.wdtCount < period {
			left = period - m.wdtCount
		}
		if ticks < left {
			m.wdtCount += ticks
			return
		}
		ticks -= left
		m.wdtCount = 0

		if ctl&wdt.WDTTMSEL == 0 {
			m.puc("watchdog expired")
			return
		}
		m.dispatch(VECTOR_WDT)
	}
}
