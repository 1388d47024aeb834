// Package wdt drives the watchdog timer.
package wdt

import (
	"iter"

	"github.com/ezrec/regio/bus"
	"github.com/ezrec/regio/reg"
)

const (
	WDTPW    = 0x5A00 // Password, required in the high byte of every write.
	WDTPW_RD = 0x6900 // High byte as read back.

	WDTHOLD  = 1 << 7
	WDTTMSEL = 1 << 4
	WDTCNTCL = 1 << 3
)

// Clock selects the watchdog clock.
type Clock uint16

const (
	CLK_SMCLK = Clock(0 << 5)
	CLK_ACLK  = Clock(1 << 5)
	CLK_VLO   = Clock(2 << 5)
	CLK_X     = Clock(3 << 5)
)

// Mode selects watchdog or interval timer operation.
type Mode uint16

const (
	MODE_WATCHDOG = Mode(0)        // Reset on expiry.
	MODE_INTERVAL = Mode(WDTTMSEL) // Interrupt on expiry.
)

// Interval is the expiry period in clock cycles.
type Interval uint16

const (
	INTERVAL_2G    = Interval(0) // 2^31
	INTERVAL_128M  = Interval(1) // 2^27
	INTERVAL_8192K = Interval(2) // 2^23
	INTERVAL_512K  = Interval(3) // 2^19
	INTERVAL_32K   = Interval(4) // 2^15, one second at 32768 Hz
	INTERVAL_8192  = Interval(5) // 2^13
	INTERVAL_512   = Interval(6) // 2^9
	INTERVAL_64    = Interval(7) // 2^6
)

var _interval_log2 = [...]uint8{31, 27, 23, 19, 15, 13, 9, 6}

// Cycles returns the interval length in clock cycles.
func (i Interval) Cycles() uint64 {
	return 1 << _interval_log2[i&7]
}

var fieldIS = reg.Field16[reg.B0, reg.B2]()

// WDT is the watchdog control register.
type WDT struct {
	CTL reg.Cell[uint16]
}

// New binds the watchdog at addr.
func New(b bus.Bus, addr uintptr) *WDT {
	return &WDT{CTL: reg.NewCell[uint16](b, addr)}
}

// Registers iterates the block by register name.
func (w *WDT) Registers() iter.Seq2[string, reg.Register] {
	return func(yield func(string, reg.Register) bool) {
		yield("CTL", w.CTL)
	}
}

// Write stores the low byte of value with the password.
func (w *WDT) Write(value uint16) {
	w.CTL.Write(WDTPW | value&0xff)
}

// Stop holds the watchdog.
func (w *WDT) Stop() {
	w.Write(WDTHOLD)
}

// Held reports whether the watchdog is held.
func (w *WDT) Held() bool {
	return w.CTL.AllSet(WDTHOLD)
}

// Restart releases the watchdog with a new configuration and clears the
// counter.
func (w *WDT) Restart(clk Clock, interval Interval, mode Mode) {
	w.Write(uint16(clk) | uint16(mode) | fieldIS.Insert(0, uint16(interval)) | WDTCNTCL)
}

// Kick clears the counter, keeping the configuration.
func (w *WDT) Kick() {
	w.Write(w.CTL.Read() | WDTCNTCL)
}

// Interval returns the configured interval.
func (w *WDT) Interval() Interval {
	return Interval(fieldIS.Extract(w.CTL.Read()))
}
