package reg

import (
	"github.com/stretchr/testify/mock"

	"github.com/ezrec/regio/bus"
)

// mockBus expects each access explicitly.
type mockBus struct {
	mock.Mock
}

var _ bus.Bus = &mockBus{}

func (m *mockBus) Load8(addr uintptr) uint8 {
	args := m.Called(addr)
	return args.Get(0).(uint8)
}

func (m *mockBus) Load16(addr uintptr) uint16 {
	args := m.Called(addr)
	return args.Get(0).(uint16)
}

func (m *mockBus) Load32(addr uintptr) uint32 {
	args := m.Called(addr)
	return args.Get(0).(uint32)
}

func (m *mockBus) Store8(addr uintptr, value uint8) {
	m.Called(addr, value)
}

func (m *mockBus) Store16(addr uintptr, value uint16) {
	m.Called(addr, value)
}

func (m *mockBus) Store32(addr uintptr, value uint32) {
	m.Called(addr, value)
}
