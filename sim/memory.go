// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package sim provides a byte-addressed simulated peripheral space that
// implements bus.Bus, for running register code off target.
package sim

import (
	"log"
	"maps"
	"math/bits"

	"github.com/ezrec/regio/bus"
)

// Memory is a sparse little-endian byte store with per-register hooks.
//
// Unwritten bytes read as zero.
type Memory struct {
	Verbose     bool        // If set, log every access.
	Loads       int         // Number of loads performed.
	Stores      int         // Number of stores performed, including rejected ones.
	BitsFlipped int         // Number of stored bits that changed value.
	Violations  []Violation // Rejected stores, oldest first.

	data  map[uintptr]uint8
	hooks map[uintptr]Hook
}

var _ bus.Bus = &Memory{}

// NewMemory creates an empty simulated address space.
func NewMemory() (m *Memory) {
	m = &Memory{
		data:  map[uintptr]uint8{},
		hooks: map[uintptr]Hook{},
	}
	return
}

// Hook attaches behaviour to the register at addr. A nil hook removes it.
func (m *Memory) Hook(addr uintptr, hook Hook) {
	if hook == nil {
		delete(m.hooks, addr)
		return
	}
	m.hooks[addr] = hook
}

// Peek reads size bytes at addr without hooks or accounting.
func (m *Memory) Peek(addr uintptr, size int) (value uint32) {
	for n := range size {
		value |= uint32(m.data[addr+uintptr(n)]) << (8 * n)
	}
	return
}

// Poke writes size bytes at addr without hooks or accounting.
func (m *Memory) Poke(addr uintptr, size int, value uint32) {
	for n := range size {
		m.data[addr+uintptr(n)] = uint8(value >> (8 * n))
	}
}

// Image returns a copy of every byte ever written.
func (m *Memory) Image() map[uintptr]uint8 {
	return maps.Clone(m.data)
}

// Restore replaces the contents with img. Hooks and counters are kept.
func (m *Memory) Restore(img map[uintptr]uint8) {
	m.data = maps.Clone(img)
	if m.data == nil {
		m.data = map[uintptr]uint8{}
	}
}

// Reset clears contents, counters and violations. Hooks are kept.
func (m *Memory) Reset() {
	m.data = map[uintptr]uint8{}
	m.Loads = 0
	m.Stores = 0
	m.BitsFlipped = 0
	m.Violations = nil
}

// Reject records a refused store. Hooks call it.
func (m *Memory) Reject(addr uintptr, value uint32, reason string) {
	v := Violation{Addr: addr, Value: value, Reason: reason}
	m.Violations = append(m.Violations, v)
	if m.Verbose {
		log.Printf("sim: %v", v)
	}
}

func (m *Memory) load(addr uintptr, size int) (value uint32) {
	m.Loads++
	value = m.Peek(addr, size)
	if hook, ok := m.hooks[addr]; ok {
		value = hook.OnLoad(m, addr, value)
	}
	if m.Verbose {
		log.Printf("sim: R%d 0x%04x -> 0x%x", size*8, addr, value)
	}
	return
}

func (m *Memory) store(addr uintptr, size int, value uint32) {
	m.Stores++
	if m.Verbose {
		log.Printf("sim: W%d 0x%04x <- 0x%x", size*8, addr, value)
	}
	if hook, ok := m.hooks[addr]; ok {
		var accept bool
		value, accept = hook.OnStore(m, addr, value)
		if !accept {
			return
		}
	}
	m.BitsFlipped += bits.OnesCount32(m.Peek(addr, size) ^ value)
	m.Poke(addr, size, value)
}

func (m *Memory) Load8(addr uintptr) uint8 {
	return uint8(m.load(addr, 1))
}

func (m *Memory) Load16(addr uintptr) uint16 {
	return uint16(m.load(addr, 2))
}

func (m *Memory) Load32(addr uintptr) uint32 {
	return m.load(addr, 4)
}

func (m *Memory) Store8(addr uintptr, value uint8) {
	m.store(addr, 1, uint32(value))
}

func (m *Memory) Store16(addr uintptr, value uint16) {
	m.store(addr, 2, uint32(value))
}

func (m *Memory) Store32(addr uintptr, value uint32) {
	m.store(addr, 4, value)
}
