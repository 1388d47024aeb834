package machine

import (
	"github.com/ezrec/regio/periph/timer"
)

// timerModel counts one timer block.
type timerModel struct {
	*timer.Timer
	vector0 Vector // CCR0.
	vectorN Vector // CCR1 and up, overflow.
	down    bool   // Counting down in up/down mode.
}

func newTimerModel(t *timer.Timer, vector0, vectorN Vector) *timerModel {
	return &timerModel{Timer: t, vector0: vector0, vectorN: vectorN}
}

// period returns the number of counts before the counter is back at zero,
// or 0 if stopped.
func period(mode timer.Mode, ccr0 uint64) uint64 {
	switch mode {
	case timer.MODE_UP:
		if ccr0 == 0 {
			return 0
		}
		return ccr0 + 1
	case timer.MODE_CONTINUOUS:
		return 1 << 16
	case timer.MODE_UP_DOWN:
		return 2 * ccr0
	}
	return 0
}

// position returns how far into its period a counter reading r is. In up/down
// mode the second half of the period counts down from CCR0.
func (tm *timerModel) position(mode timer.Mode, r, ccr0 uint64) uint64 {
	if mode == timer.MODE_UP_DOWN && tm.down && r <= ccr0 {
		return 2*ccr0 - r
	}
	return r
}

// setCount stores the counter for position p and records the direction.
func (tm *timerModel) setCount(m *Machine, mode timer.Mode, p, ccr0 uint64) {
	tm.down = false
	r := p
	if mode == timer.MODE_UP_DOWN && p > ccr0 {
		tm.down = true
		r = 2*ccr0 - p
	}
	m.Poke(tm.R.Addr(), 2, uint32(r))
}

// compare sets CCIFG of every compare channel the counter reaches at a
// position in (from, to]. In up/down mode a channel below CCR0 is reached on
// the way up and again on the way down.
func (tm *timerModel) compare(m *Machine, mode timer.Mode, ccr0, from, to uint64) {
	for n := range int(tm.Channels()) {
		cc, _ := tm.Channel(n)
		ctl := m.Peek(cc.CTL.Addr(), 2)
		if ctl&timer.CAP != 0 {
			continue
		}
		ccr := uint64(m.Peek(cc.CCR.Addr(), 2))
		hit := ccr > from && ccr <= to
		if mode == timer.MODE_UP_DOWN && ccr < ccr0 {
			back := 2*ccr0 - ccr
			hit = hit || (back > from && back <= to)
		}
		if hit {
			m.Poke(cc.CTL.Addr(), 2, ctl|timer.CCIFG)
		}
	}
}

// service dispatches pending enabled interrupts of the block.
func (tm *timerModel) service(m *Machine) {
	cc0, _ := tm.Channel(0)
	ctl := m.Peek(cc0.CTL.Addr(), 2)
	if ctl&timer.CCIE != 0 && ctl&timer.CCIFG != 0 {
		if m.dispatch(tm.vector0) {
			// CCR0 is acknowledged on entry.
			ctl = m.Peek(cc0.CTL.Addr(), 2)
			m.Poke(cc0.CTL.Addr(), 2, ctl&^timer.CCIFG)
		}
	}

	pending := false
	for n := 1; n < int(tm.Channels()); n++ {
		cc, _ := tm.Channel(n)
		ctl := m.Peek(cc.CTL.Addr(), 2)
		pending = pending || (ctl&timer.CCIE != 0 && ctl&timer.CCIFG != 0)
	}
	ctl = m.Peek(tm.CTL.Addr(), 2)
	pending = pending || (ctl&timer.TAIE != 0 && ctl&timer.TAIFG != 0)
	if pending {
		m.dispatch(tm.vectorN)
	}
}

// advance counts ticks, raising flags and interrupts at each compare and
// wrap. The registers are re-read after every event so handlers may
// reprogram the timer.
func (tm *timerModel) advance(m *Machine, ticks uint64) {
	cc0, _ := tm.Channel(0)
	for ticks > 0 {
		ctl := m.Peek(tm.CTL.Addr(), 2)
		mode := timer.Mode(ctl >> 4 & 3)
		ccr0 := uint64(m.Peek(cc0.CCR.Addr(), 2))
		span := period(mode, ccr0)
		if span == 0 {
			return
		}

		p := tm.position(mode, uint64(m.Peek(tm.R.Addr(), 2)), ccr0) % span
		left := span - p
		if ticks < left {
			tm.compare(m, mode, ccr0, p, p+ticks)
			tm.setCount(m, mode, p+ticks, ccr0)
			tm.service(m)
			return
		}

		ticks -= left
		tm.compare(m, mode, ccr0, p, span-1)
		tm.setCount(m, mode, 0, ccr0)
		ctl = m.Peek(tm.CTL.Addr(), 2)
		m.Poke(tm.CTL.Addr(), 2, ctl|timer.TAIFG)
		tm.service(m)
	}
}
