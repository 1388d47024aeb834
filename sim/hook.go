package sim

// Hook models register side effects beyond plain storage.
type Hook interface {
	// OnLoad returns the value the CPU observes, given the stored value.
	OnLoad(m *Memory, addr uintptr, stored uint32) uint32
	// OnStore returns the value to keep, or accept=false to drop the store.
	OnStore(m *Memory, addr uintptr, value uint32) (stored uint32, accept bool)
}

// Password models a register whose upper bits must carry a key on every
// write. The key is not stored, and the register reads back ReadAs in its place.
type Password struct {
	Key    uint32 // Required value of the masked bits.
	Mask   uint32 // Bits holding the key.
	ReadAs uint32 // Value of the masked bits on read.
}

var _ Hook = &Password{}

func (p *Password) OnLoad(m *Memory, addr uintptr, stored uint32) uint32 {
	return stored&^p.Mask | p.ReadAs&p.Mask
}

func (p *Password) OnStore(m *Memory, addr uintptr, value uint32) (stored uint32, accept bool) {
	if value&p.Mask != p.Key {
		m.Reject(addr, value, f("bad password 0x%x", value&p.Mask))
		return
	}
	stored = value &^ p.Mask
	accept = true
	return
}

// SelfClear models bits that act on write and always read back as zero.
type SelfClear struct {
	Mask uint32 // Self-clearing bits.
}

var _ Hook = &SelfClear{}

func (s *SelfClear) OnLoad(m *Memory, addr uintptr, stored uint32) uint32 {
	return stored
}

func (s *SelfClear) OnStore(m *Memory, addr uintptr, value uint32) (stored uint32, accept bool) {
	return value &^ s.Mask, true
}

// ReadOnly drops every store.
type ReadOnly struct{}

var _ Hook = ReadOnly{}

func (ReadOnly) OnLoad(m *Memory, addr uintptr, stored uint32) uint32 {
	return stored
}

func (ReadOnly) OnStore(m *Memory, addr uintptr, value uint32) (stored uint32, accept bool) {
	return
}

// Locked accepts stores only while a control register holds an unlock key.
type Locked struct {
	Control uintptr // Address of the lock register.
	Size    int     // Width of the lock register in bytes.
	Key     uint32  // Unlock value of the masked control bits.
	Mask    uint32  // Control bits compared against Key.
}

var _ Hook = &Locked{}

func (l *Locked) OnLoad(m *Memory, addr uintptr, stored uint32) uint32 {
	return stored
}

func (l *Locked) OnStore(m *Memory, addr uintptr, value uint32) (stored uint32, accept bool) {
	if m.Peek(l.Control, l.Size)&l.Mask != l.Key {
		m.Reject(addr, value, f("locked by 0x%04x", l.Control))
		return
	}
	return value, true
}

// Chain applies hooks in order. Loads pass through every hook. A store stops
// at the first hook that rejects it.
type Chain []Hook

var _ Hook = Chain{}

func (c Chain) OnLoad(m *Memory, addr uintptr, stored uint32) uint32 {
	for _, h := range c {
		stored = h.OnLoad(m, addr, stored)
	}
	return stored
}

func (c Chain) OnStore(m *Memory, addr uintptr, value uint32) (stored uint32, accept bool) {
	stored = value
	for _, h := range c {
		stored, accept = h.OnStore(m, addr, stored)
		if !accept {
			return
		}
	}
	accept = true
	return
}
