package bus

import (
	"fmt"
	"log"
)

// Access is one recorded bus cycle.
type Access struct {
	Write bool    // Set for a store.
	Width uint8   // 8, 16 or 32.
	Addr  uintptr // Target address.
	Value uint32  // Value loaded or stored.
}

func (a Access) String() string {
	if a.Write {
		return fmt.Sprintf("W%d 0x%04x <- 0x%0*x", a.Width, a.Addr, int(a.Width/4), a.Value)
	}
	return fmt.Sprintf("R%d 0x%04x -> 0x%0*x", a.Width, a.Addr, int(a.Width/4), a.Value)
}

// Counter wraps a Bus, counting every access and optionally tracing it.
type Counter struct {
	Bus              // Underlying bus.
	Verbose bool     // If set, log every access.
	Record  bool     // If set, append every access to Trace.
	Loads   int      // Number of loads performed.
	Stores  int      // Number of stores performed.
	Trace   []Access // Recorded accesses, oldest first.
}

var _ Bus = &Counter{}

// NewCounter wraps b.
func NewCounter(b Bus) *Counter {
	return &Counter{Bus: b}
}

// Reset clears the counts and the trace.
func (c *Counter) Reset() {
	c.Loads = 0
	c.Stores = 0
	c.Trace = nil
}

// Writes returns the recorded stores.
func (c *Counter) Writes() (writes []Access) {
	for _, a := range c.Trace {
		if a.Write {
			writes = append(writes, a)
		}
	}
	return
}

func (c *Counter) note(a Access) {
	if a.Write {
		c.Stores++
	} else {
		c.Loads++
	}
	if c.Record {
		c.Trace = append(c.Trace, a)
	}
	if c.Verbose {
		log.Printf("bus: %v", a)
	}
}

func (c *Counter) Load8(addr uintptr) (value uint8) {
	value = c.Bus.Load8(addr)
	c.note(Access{Width: 8, Addr: addr, Value: uint32(value)})
	return
}

func (c *Counter) Load16(addr uintptr) (value uint16) {
	value = c.Bus.Load16(addr)
	c.note(Access{Width: 16, Addr: addr, Value: uint32(value)})
	return
}

func (c *Counter) Load32(addr uintptr) (value uint32) {
	value = c.Bus.Load32(addr)
	c.note(Access{Width: 32, Addr: addr, Value: value})
	return
}

func (c *Counter) Store8(addr uintptr, value uint8) {
	c.Bus.Store8(addr, value)
	c.note(Access{Write: true, Width: 8, Addr: addr, Value: uint32(value)})
}

func (c *Counter) Store16(addr uintptr, value uint16) {
	c.Bus.Store16(addr, value)
	c.note(Access{Write: true, Width: 16, Addr: addr, Value: uint32(value)})
}

func (c *Counter) Store32(addr uintptr, value uint32) {
	c.Bus.Store32(addr, value)
	c.note(Access{Write: true, Width: 32, Addr: addr, Value: value})
}
