package machine

import (
	"github.com/ezrec/regio/board/fr5994"
	"github.com/ezrec/regio/periph/clock"
	"github.com/ezrec/regio/periph/pmm"
	"github.com/ezrec/regio/periph/timer"
	"github.com/ezrec/regio/periph/wdt"
	"github.com/ezrec/regio/sim"
)

// Reset values of 16-bit registers that are not zero after power on.
var _reset_values = map[uintptr]uint32{
	fr5994.WDT_A_ADDR:      0x0004,
	fr5994.PMM_BASE + 0x00: 0x0040,
	fr5994.PMM_BASE + 0x10: pmm.LOCKLPM5,
	fr5994.CS_BASE + 0x00:  0x9600,
	fr5994.CS_BASE + 0x02:  0x000C,
	fr5994.CS_BASE + 0x04:  0x0033,
	fr5994.CS_BASE + 0x06:  0x0033,
	fr5994.CS_BASE + 0x08:  0xCDC9,
	fr5994.CS_BASE + 0x0C:  0x0007,
}

// install attaches every register side effect.
func (m *Machine) install() {
	b := m.Board

	m.Hook(b.WDT.CTL.Addr(), &wdtHook{
		m:        m,
		Password: sim.Password{Key: wdt.WDTPW, Mask: 0xff00, ReadAs: wdt.WDTPW_RD},
	})

	m.Hook(b.PMM.CTL0.Addr(), &pmmHook{
		m:        m,
		Password: sim.Password{Key: pmm.PMMPW, Mask: 0xff00, ReadAs: 0x9600},
	})

	lock := &sim.Locked{Control: b.CS.CTL0.Addr(), Size: 2, Key: clock.CSKEY, Mask: 0xff00}
	for _, cell := range []interface{ Addr() uintptr }{b.CS.CTL1, b.CS.CTL2, b.CS.CTL3, b.CS.CTL4, b.CS.CTL5, b.CS.CTL6} {
		m.Hook(cell.Addr(), lock)
	}

	for _, port := range b.Ports() {
		m.Hook(port.IN.Addr(), sim.ReadOnly{})
	}
	m.Hook(b.PJ.IN.Addr(), sim.ReadOnly{})

	for _, t := range m.timers {
		m.Hook(t.CTL.Addr(), &timerCtlHook{r: t.R.Addr()})
		m.Hook(t.IV.Addr(), &timerIVHook{t: t.Timer})
	}
}

// wdtHook resets on a bad password and restarts the count on WDTCNTCL.
type wdtHook struct {
	sim.Password
	m *Machine
}

func (h *wdtHook) OnStore(mem *sim.Memory, addr uintptr, value uint32) (stored uint32, accept bool) {
	stored, accept = h.Password.OnStore(mem, addr, value)
	if !accept {
		h.m.puc("watchdog password violation")
		return
	}
	if stored&wdt.WDTCNTCL != 0 {
		h.m.wdtCount = 0
		stored &^= wdt.WDTCNTCL
	}
	return
}

// pmmHook performs software resets.
type pmmHook struct {
	sim.Password
	m *Machine
}

func (h *pmmHook) OnStore(mem *sim.Memory, addr uintptr, value uint32) (stored uint32, accept bool) {
	stored, accept = h.Password.OnStore(mem, addr, value)
	if accept && stored&(pmm.PMMSWBOR|pmm.PMMSWPOR) != 0 {
		h.m.puc("software reset")
		accept = false
	}
	return
}

// timerCtlHook clears the counter on TACLR. TACLR reads as zero.
type timerCtlHook struct {
	r uintptr
}

func (h *timerCtlHook) OnLoad(mem *sim.Memory, addr uintptr, stored uint32) uint32 {
	return stored
}

func (h *timerCtlHook) OnStore(mem *sim.Memory, addr uintptr, value uint32) (stored uint32, accept bool) {
	if value&timer.TACLR != 0 {
		mem.Poke(h.r, 2, 0)
	}
	return value &^ timer.TACLR, true
}

// timerIVHook reports the highest priority pending CCR1+ or overflow
// interrupt and acknowledges it.
type timerIVHook struct {
	t *timer.Timer
}

const _iv_overflow = 0x0E

func (h *timerIVHook) OnLoad(mem *sim.Memory, addr uintptr, stored uint32) uint32 {
	for n := 1; n < int(h.t.Channels()); n++ {
		cc, _ := h.t.Channel(n)
		ctl := mem.Peek(cc.CTL.Addr(), 2)
		if ctl&timer.CCIE != 0 && ctl&timer.CCIFG != 0 {
			mem.Poke(cc.CTL.Addr(), 2, ctl&^timer.CCIFG)
			return uint32(2 * n)
		}
	}

	ctl := mem.Peek(h.t.CTL.Addr(), 2)
	if ctl&timer.TAIE != 0 && ctl&timer.TAIFG != 0 {
		mem.Poke(h.t.CTL.Addr(), 2, ctl&^timer.TAIFG)
		return _iv_overflow
	}

	return 0
}

func (h *timerIVHook) OnStore(mem *sim.Memory, addr uintptr, value uint32) (stored uint32, accept bool) {
	return
}
