package reg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/regio/sim"
)

func TestBit(t *testing.T) {
	assert := assert.New(t)

	mem := sim.NewMemory()
	out := NewCell[uint8](mem, 0x202)
	b3 := Bit8[B3](out)

	assert.Equal(uint8(0x08), b3.Mask())
	assert.False(b3.IsSet())
	assert.Equal(uint8(0), b3.Get())

	out.Write(0xf0)
	b3.Set()
	assert.Equal(uint8(0xf8), out.Read())
	assert.True(b3.IsSet())
	assert.Equal(uint8(1), b3.Get())

	b3.Clear()
	assert.Equal(uint8(0xf0), out.Read())

	b3.Toggle()
	assert.Equal(uint8(0xf8), out.Read())
	b3.Toggle()
	assert.Equal(uint8(0xf0), out.Read())

	b3.Assign(2)
	assert.Equal(uint8(0xf8), out.Read())
	b3.Assign(0)
	assert.Equal(uint8(0xf0), out.Read())

	b3.AssignBool(true)
	assert.Equal(uint8(0xf8), out.Read())
	b3.AssignBool(false)
	assert.Equal(uint8(0xf0), out.Read())
}

func TestBit_Widths(t *testing.T) {
	assert := assert.New(t)

	mem := sim.NewMemory()
	c16 := NewCell[uint16](mem, 0x15c)
	c32 := NewCell[uint32](mem, 0x1000)

	Bit16[B15](c16).Set()
	assert.Equal(uint16(0x8000), c16.Read())

	Bit32[B31](c32).Set()
	Bit32[B0](c32).Set()
	assert.Equal(uint32(0x80000001), c32.Read())
	assert.True(Bit32[B31](c32).IsSet())
	assert.False(Bit32[B30](c32).IsSet())
}

func TestBit_Accesses(t *testing.T) {
	mb := &mockBus{}
	mb.On("Load8", uintptr(0x202)).Return(uint8(0x01)).Once()
	mb.On("Store8", uintptr(0x202), uint8(0x03)).Once()

	Bit8[B1](NewCell[uint8](mb, 0x202)).Set()

	mb.AssertExpectations(t)
}

func TestBit_EveryPosition(t *testing.T) {
	assert := assert.New(t)

	mem := sim.NewMemory()
	cell := NewCell[uint32](mem, 0x1000)

	for n := range uint8(32) {
		bit := Bit[uint32]{cell: cell, mask: 1 << n}
		for _, init := range []uint32{0, 0xffffffff, 0xa5a5a5a5} {
			cell.Write(init)

			bit.Set()
			assert.True(bit.IsSet(), "bit %d", n)
			assert.Equal(uint32(1), bit.Get(), "bit %d", n)
			assert.Equal(init|1<<n, cell.Read(), "bit %d", n)

			bit.Toggle()
			assert.Equal(uint32(0), bit.Get(), "bit %d", n)
			assert.Equal(init&^(1<<n), cell.Read(), "bit %d", n)

			bit.Assign(7)
			assert.Equal(init|1<<n, cell.Read(), "bit %d", n)

			bit.Clear()
			assert.Equal(init&^(1<<n), cell.Read(), "bit %d", n)
		}
	}
}

func TestBit_Typed8(t *testing.T) {
	assert := assert.New(t)

	mem := sim.NewMemory()
	out := NewCell[uint8](mem, 0x202)

	bits := []Bit[uint8]{
		Bit8[B0](out), Bit8[B1](out), Bit8[B2](out), Bit8[B3](out),
		Bit8[B4](out), Bit8[B5](out), Bit8[B6](out), Bit8[B7](out),
	}

	for n, bit := range bits {
		assert.Equal(uint8(1)<<n, bit.Mask())

		out.Write(0x5a)
		bit.Toggle()
		assert.Equal(uint8(0x5a)^uint8(1)<<n, out.Read())
	}
}
