package reg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/regio/bus"
	"github.com/ezrec/regio/sim"
)

func TestBits(t *testing.T) {
	assert := assert.New(t)

	mem := sim.NewMemory()
	ctl := NewCell[uint16](mem, 0x164)
	sels := Bits16[B4, B6](ctl)

	ctl.Write(0xffff)
	sels.Set(3)
	assert.Equal(uint16(0xffbf), ctl.Read())
	assert.Equal(uint16(3), sels.Get())

	sels.SetAtomic(5)
	assert.Equal(uint16(0xffdf), ctl.Read())
	assert.Equal(uint16(5), sels.Get())

	sels.Clear()
	assert.Equal(uint16(0xff8f), ctl.Read())

	sels.Fill()
	assert.Equal(uint16(0xffff), ctl.Read())

	// Value bits beyond the range are discarded.
	ctl.Write(0)
	sels.Set(0xf)
	assert.Equal(uint16(0x0070), ctl.Read())
	sels.SetAtomic(0x9)
	assert.Equal(uint16(0x0010), ctl.Read())

	assert.Equal(Field16[B4, B6](), sels.Field())
}

func TestBits_Reversed(t *testing.T) {
	assert := assert.New(t)

	mem := sim.NewMemory()
	out := NewCell[uint8](mem, 0x202)
	Bits8[B7, B4](out).Set(5)
	assert.Equal(uint8(0x50), out.Read())
	assert.Equal(uint8(5), Bits8[B4, B7](out).Get())

	wide := NewCell[uint32](mem, 0x1000)
	Bits32[B16, B31](wide).SetAtomic(0xbeef)
	assert.Equal(uint32(0xbeef0000), wide.Read())
}

func TestBits_AccessCounts(t *testing.T) {
	assert := assert.New(t)

	cnt := bus.NewCounter(sim.NewMemory())
	cnt.Record = true
	f := Bits8[B2, B4](NewCell[uint8](cnt, 0x202))

	f.Set(7)
	assert.Equal(2, cnt.Loads)
	assert.Equal(2, cnt.Stores)
	assert.Equal([]bus.Access{
		{Write: true, Width: 8, Addr: 0x202, Value: 0x00},
		{Write: true, Width: 8, Addr: 0x202, Value: 0x1c},
	}, cnt.Writes())

	cnt.Reset()
	f.SetAtomic(2)
	assert.Equal(1, cnt.Loads)
	assert.Equal(1, cnt.Stores)

	cnt.Reset()
	f.Get()
	assert.Equal(1, cnt.Loads)
	assert.Equal(0, cnt.Stores)
}

// interrupting stands in for an interrupt handler: after the first store to
// addr it runs isr once.
type interrupting struct {
	*sim.Memory
	addr  uintptr
	isr   func()
	fired bool
}

func (b *interrupting) Store8(addr uintptr, value uint8) {
	b.Memory.Store8(addr, value)
	if addr == b.addr && !b.fired {
		b.fired = true
		b.isr()
	}
}

func TestBits_SetIsNotAtomic(t *testing.T) {
	assert := assert.New(t)

	var seen []uint8
	b := &interrupting{Memory: sim.NewMemory(), addr: 0x202}
	out := NewCell[uint8](b, 0x202)
	b.isr = func() { seen = append(seen, out.Read()) }

	out.Write(0x1c)
	b.fired = false
	seen = nil

	// The handler observes the cleared range between the two cycles.
	Bits8[B2, B4](out).Set(0x5)
	assert.Equal([]uint8{0x00}, seen)
	assert.Equal(uint8(0x14), out.Read())

	// A single write leaves no intermediate state.
	seen = nil
	b.fired = false
	Bits8[B2, B4](out).SetAtomic(0x7)
	assert.Equal([]uint8{0x1c}, seen)
}

func FuzzBits(f *testing.F) {
	for lo := range uint8(32) {
		f.Add(lo, 31-lo, uint32(0xa5a5a5a5), uint32(0xffffffff))
		f.Add(lo, lo, uint32(0), uint32(1))
		f.Add(lo, uint8(31), uint32(0xffffffff), uint32(0))
	}

	f.Fuzz(func(t *testing.T, a, b uint8, init, value uint32) {
		assert := assert.New(t)

		field, ok := MakeField[uint32](a, b)
		if !ok {
			t.Skip()
		}

		mem := sim.NewMemory()
		twoStep := NewCell[uint32](mem, 0x1000)
		atomic := NewCell[uint32](mem, 0x1004)
		twoStep.Write(init)
		atomic.Write(init)

		bits := Bits[uint32]{cell: twoStep, field: field}
		bits.Set(value)
		Bits[uint32]{cell: atomic, field: field}.SetAtomic(value)

		assert.Equal(twoStep.Read(), atomic.Read())
		assert.Equal(value&field.Max(), bits.Get())
		assert.Equal(init&^field.Mask(), twoStep.Read()&^field.Mask())

		bits.Clear()
		assert.Equal(uint32(0), bits.Get())
		assert.Equal(init&^field.Mask(), twoStep.Read())

		bits.Fill()
		assert.Equal(field.Max(), bits.Get())
		assert.Equal(init|field.Mask(), twoStep.Read())
	})
}

func TestBits_EveryRange(t *testing.T) {
	assert := assert.New(t)

	mem := sim.NewMemory()
	cell := NewCell[uint32](mem, 0x1000)

	for lo := range uint8(32) {
		for hi := lo; hi < 32; hi++ {
			field, ok := MakeField[uint32](lo, hi)
			assert.True(ok)
			assert.Equal(hi-lo+1, field.Width())

			bits := Bits[uint32]{cell: cell, field: field}
			for _, init := range []uint32{0, 0xffffffff, 0x5a5a5a5a} {
				cell.Write(init)
				bits.Set(0xdeadbeef)
				assert.Equal(uint32(0xdeadbeef)&field.Max(), bits.Get(), "%d..%d", lo, hi)
				assert.Equal(init&^field.Mask(), cell.Read()&^field.Mask(), "%d..%d", lo, hi)
			}
		}
	}
}
