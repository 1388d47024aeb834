package reg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/regio/bus"
	"github.com/ezrec/regio/sim"
)

const (
	lockAddr = 0x160
	aAddr    = 0x162
	bAddr    = 0x164
)

func txCells(b bus.Bus) (lock, a, c Cell[uint16]) {
	return NewCell[uint16](b, lockAddr), NewCell[uint16](b, aAddr), NewCell[uint16](b, bAddr)
}

func TestTx_EndToEnd(t *testing.T) {
	assert := assert.New(t)

	mem := sim.NewMemory()
	cnt := bus.NewCounter(mem)
	cnt.Record = true
	lock, a, b := txCells(cnt)
	a.Write(0xa5a5)
	cnt.Reset()

	tx := Begin(lock, 0xa500, true, a, b)
	tx.Stage(0, Field16[B0, B3](), 0xf)
	tx.Commit()

	assert.Equal(uint16(0xa500), lock.Read())
	assert.Equal(uint16(0xa5af), a.Read())
	assert.Equal(uint16(0x0000), b.Read())
	assert.Equal([]bus.Access{
		{Write: true, Width: 16, Addr: lockAddr, Value: 0xa500},
		{Write: true, Width: 16, Addr: aAddr, Value: 0xa5af},
	}, cnt.Writes())
}

func TestTx_Order(t *testing.T) {
	assert := assert.New(t)

	cnt := bus.NewCounter(sim.NewMemory())
	cnt.Record = true
	lock, a, b := txCells(cnt)

	tx := Begin(lock, 0xa500, false, a, b)
	tx.Stage(1, Field16[B8, B10](), 2)
	tx.Stage(0, Field16[B0, B2](), 3)
	tx.Stage(1, Field16[B0, B2](), 1)
	tx.Commit()

	assert.Equal([]bus.Access{
		{Write: true, Width: 16, Addr: lockAddr, Value: 0xa500},
		{Write: true, Width: 16, Addr: aAddr, Value: 0x0003},
		{Write: true, Width: 16, Addr: bAddr, Value: 0x0201},
	}, cnt.Writes())
}

func TestTx_NoUpdate(t *testing.T) {
	assert := assert.New(t)

	mem := sim.NewMemory()
	cnt := bus.NewCounter(mem)
	lock, a, b := txCells(cnt)
	a.Write(0xffff)
	b.Write(0xffff)
	cnt.Reset()

	tx := Begin(lock, 0xa500, false, a, b)
	assert.Equal(0, cnt.Loads)
	assert.Equal(uint16(0), tx.Shadow(0))

	tx.Stage(0, Field16[B4, B6](), 5)
	tx.Commit()

	assert.Equal(uint16(0x0050), a.Read())
	assert.Equal(uint16(0xffff), b.Read())
}

func TestTx_Update(t *testing.T) {
	assert := assert.New(t)

	mem := sim.NewMemory()
	cnt := bus.NewCounter(mem)
	lock, a, b := txCells(cnt)
	a.Write(0x1234)
	b.Write(0x5678)
	cnt.Reset()

	tx := Begin(lock, 0xa500, true, a, b)
	assert.Equal(2, cnt.Loads)
	assert.Equal(uint16(0x1234), tx.Shadow(0))
	assert.Equal(uint16(0x5678), tx.Shadow(1))
	assert.False(tx.Dirty(0))
	assert.False(tx.Dirty(1))

	tx.Stage(1, Field16[B12, B15](), 0x9)
	assert.True(tx.Dirty(1))
	assert.Equal(uint16(0x9678), tx.Shadow(1))
}

func TestTx_EmptyCommit(t *testing.T) {
	assert := assert.New(t)

	cnt := bus.NewCounter(sim.NewMemory())
	cnt.Record = true
	lock, a, b := txCells(cnt)

	Begin(lock, 0xa500, false, a, b).Commit()
	assert.Equal([]bus.Access{
		{Write: true, Width: 16, Addr: lockAddr, Value: 0xa500},
	}, cnt.Writes())
}

func TestTx_CommitOnce(t *testing.T) {
	assert := assert.New(t)

	cnt := bus.NewCounter(sim.NewMemory())
	lock, a, b := txCells(cnt)

	tx := Begin(lock, 0xa500, false, a, b)
	tx.Stage(0, Field16[B0, B0](), 1)
	assert.False(tx.Committed())
	tx.Commit()
	assert.True(tx.Committed())
	assert.Equal(2, cnt.Stores)

	tx.Commit()
	assert.Equal(2, cnt.Stores)

	// Staging after commit is ignored.
	tx.Stage(1, Field16[B0, B0](), 1)
	assert.False(tx.Dirty(1))
	tx.Commit()
	assert.Equal(2, cnt.Stores)
	assert.Equal(uint16(0), b.Read())
}

func TestTx_WrongKey(t *testing.T) {
	assert := assert.New(t)

	mem := sim.NewMemory()
	mem.Hook(aAddr, &sim.Locked{Control: lockAddr, Size: 2, Key: 0xa500, Mask: 0xff00})
	lock, a, b := txCells(mem)

	tx := Begin(lock, 0x5a00, false, a, b)
	tx.Stage(0, Field16[B0, B3](), 0xf)
	tx.Commit()
	assert.Equal(uint16(0), a.Read())
	assert.Len(mem.Violations, 1)

	tx = Begin(lock, 0xa500, false, a, b)
	tx.Stage(0, Field16[B0, B3](), 0xf)
	tx.Commit()
	assert.Equal(uint16(0xf), a.Read())
}

func TestApply(t *testing.T) {
	assert := assert.New(t)

	mem := sim.NewMemory()
	lock, a, b := txCells(mem)

	tx := Begin(lock, 0xa500, false, a, b)
	Apply(tx, func(tx *Tx[uint16]) {
		tx.Stage(1, Field16[B0, B7](), 0x42)
	})
	assert.True(tx.Committed())
	assert.Equal(uint16(0x42), b.Read())
}

func TestApply_Panic(t *testing.T) {
	assert := assert.New(t)

	mem := sim.NewMemory()
	lock, a, b := txCells(mem)

	tx := Begin(lock, 0xa500, false, a, b)
	assert.Panics(func() {
		Apply(tx, func(tx *Tx[uint16]) {
			tx.Stage(0, Field16[B0, B7](), 0x33)
			panic("abort")
		})
	})
	assert.True(tx.Committed())
	assert.Equal(uint16(0xa500), lock.Read())
	assert.Equal(uint16(0x33), a.Read())
}

func TestTx_Restage(t *testing.T) {
	assert := assert.New(t)

	cnt := bus.NewCounter(sim.NewMemory())
	cnt.Record = true
	lock, a, b := txCells(cnt)
	a.Write(0xff00)
	b.Write(0x1234)
	cnt.Reset()

	tx := Begin(lock, 0xa500, true, a, b)
	tx.Stage(0, Field16[B0, B3](), 0x1)
	tx.Stage(1, Field16[B4, B7](), 0x9)
	tx.Stage(0, Field16[B8, B11](), 0x2)
	tx.Stage(0, Field16[B0, B3](), 0xc)
	tx.Stage(1, Field16[B4, B7](), 0x6)
	tx.Commit()

	assert.Equal([]bus.Access{
		{Write: true, Width: 16, Addr: lockAddr, Value: 0xa500},
		{Write: true, Width: 16, Addr: aAddr, Value: 0xf20c},
		{Write: true, Width: 16, Addr: bAddr, Value: 0x1264},
	}, cnt.Writes())
}
