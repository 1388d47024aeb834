package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_LoadStore(t *testing.T) {
	assert := assert.New(t)

	m := NewMemory()

	assert.Equal(uint16(0), m.Load16(0x160))

	m.Store16(0x160, 0xa5a5)
	assert.Equal(uint16(0xa5a5), m.Load16(0x160))
	assert.Equal(uint8(0xa5), m.Load8(0x160))
	assert.Equal(uint8(0xa5), m.Load8(0x161))

	m.Store8(0x161, 0x12)
	assert.Equal(uint16(0x12a5), m.Load16(0x160))

	m.Store32(0x1000, 0xdeadbeef)
	assert.Equal(uint32(0xdeadbeef), m.Load32(0x1000))
	assert.Equal(uint16(0xbeef), m.Load16(0x1000))

	assert.Equal(3, m.Stores)
	assert.Equal(7, m.Loads)
}

func TestMemory_BitsFlipped(t *testing.T) {
	assert := assert.New(t)

	m := NewMemory()
	m.Store8(0x200, 0x0f)
	assert.Equal(4, m.BitsFlipped)
	m.Store8(0x200, 0x0f)
	assert.Equal(4, m.BitsFlipped)
	m.Store8(0x200, 0xf0)
	assert.Equal(12, m.BitsFlipped)
}

func TestMemory_ImageRestore(t *testing.T) {
	assert := assert.New(t)

	m := NewMemory()
	m.Store16(0x160, 0x1234)
	img := m.Image()
	assert.Equal(map[uintptr]uint8{0x160: 0x34, 0x161: 0x12}, img)

	m.Store16(0x160, 0)
	img[0x162] = 0x77 // The image is a copy.
	assert.Equal(uint16(0), m.Load16(0x160))

	m.Restore(img)
	assert.Equal(uint16(0x1234), m.Load16(0x160))
	assert.Equal(uint8(0x77), m.Load8(0x162))

	m.Restore(nil)
	assert.Equal(uint16(0), m.Load16(0x160))
	m.Store8(0x10, 1)
	assert.Equal(uint8(1), m.Load8(0x10))

	m.Reset()
	assert.Empty(m.Image())
	assert.Equal(0, m.Loads)
	assert.Equal(0, m.Stores)
	assert.Equal(0, m.BitsFlipped)
}

func TestMemory_PeekPoke(t *testing.T) {
	assert := assert.New(t)

	m := NewMemory()
	m.Hook(0x15c, ReadOnly{})
	m.Poke(0x15c, 2, 0x6904)
	assert.Equal(uint32(0x6904), m.Peek(0x15c, 2))
	assert.Equal(0, m.Loads)
	assert.Equal(0, m.Stores)
}

func TestHook_Password(t *testing.T) {
	assert := assert.New(t)

	m := NewMemory()
	m.Hook(0x15c, &Password{Key: 0x5a00, Mask: 0xff00, ReadAs: 0x6900})

	m.Store16(0x15c, 0x5a80)
	assert.Equal(uint32(0x0080), m.Peek(0x15c, 2))
	assert.Equal(uint16(0x6980), m.Load16(0x15c))
	assert.Empty(m.Violations)

	m.Store16(0x15c, 0x0004)
	assert.Equal(uint16(0x6980), m.Load16(0x15c))
	assert.Len(m.Violations, 1)
	assert.Equal(uintptr(0x15c), m.Violations[0].Addr)
	assert.Equal(uint32(0x0004), m.Violations[0].Value)
	assert.Contains(m.Violations[0].Error(), "0x015c")
}

func TestHook_SelfClear(t *testing.T) {
	assert := assert.New(t)

	m := NewMemory()
	m.Hook(0x340, &SelfClear{Mask: 0x0004})
	m.Store16(0x340, 0x0116)
	assert.Equal(uint16(0x0112), m.Load16(0x340))
}

func TestHook_ReadOnly(t *testing.T) {
	assert := assert.New(t)

	m := NewMemory()
	m.Poke(0x200, 1, 0x5a)
	m.Hook(0x200, ReadOnly{})
	m.Store8(0x200, 0xff)
	assert.Equal(uint8(0x5a), m.Load8(0x200))
	assert.Empty(m.Violations)

	m.Hook(0x200, nil)
	m.Store8(0x200, 0xff)
	assert.Equal(uint8(0xff), m.Load8(0x200))
}

func TestHook_Locked(t *testing.T) {
	assert := assert.New(t)

	m := NewMemory()
	m.Hook(0x164, &Locked{Control: 0x160, Size: 2, Key: 0xa500, Mask: 0xff00})

	m.Store16(0x164, 0x0033)
	assert.Equal(uint16(0), m.Load16(0x164))
	assert.Len(m.Violations, 1)

	m.Store16(0x160, 0xa500)
	m.Store16(0x164, 0x0033)
	assert.Equal(uint16(0x0033), m.Load16(0x164))
	assert.Len(m.Violations, 1)
}

func TestHook_Chain(t *testing.T) {
	assert := assert.New(t)

	m := NewMemory()
	m.Hook(0x340, Chain{
		&Locked{Control: 0x10, Size: 1, Key: 1, Mask: 1},
		&SelfClear{Mask: 0x4},
	})

	m.Store16(0x340, 0x0014)
	assert.Equal(uint16(0), m.Load16(0x340))
	assert.Len(m.Violations, 1)

	m.Poke(0x10, 1, 1)
	m.Store16(0x340, 0x0014)
	assert.Equal(uint16(0x0010), m.Load16(0x340))
}
