// Package layout describes a chip's peripheral register map as data, loaded
// from YAML, for tools that address registers and fields by name.
package layout

import (
	_ "embed"
	"fmt"
	"iter"
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ezrec/regio/reg"
)

//go:embed fr5994.yaml
var _fr5994 []byte

// Field is a named bit range of a register.
type Field struct {
	Name   string            `yaml:"name"`
	Bit    *uint8            `yaml:"bit,omitempty"` // Shorthand for lo = hi = bit.
	Lo     uint8             `yaml:"lo"`
	Hi     uint8             `yaml:"hi"`
	Values map[string]uint32 `yaml:"values,omitempty"` // Named values.
}

// Register is a register at an offset from its peripheral base.
type Register struct {
	Name   string   `yaml:"name"`
	Offset uint32   `yaml:"offset"`
	Width  uint8    `yaml:"width"`
	Fields []*Field `yaml:"fields,omitempty"`
}

// Peripheral is a named block of registers.
type Peripheral struct {
	Name      string      `yaml:"name"`
	Base      uint32      `yaml:"base"`
	Registers []*Register `yaml:"registers"`
}

// Chip is a complete register map.
type Chip struct {
	Name        string        `yaml:"chip"`
	Peripherals []*Peripheral `yaml:"peripherals"`
}

// Parse decodes and validates a YAML layout.
func Parse(data []byte) (chip *Chip, err error) {
	chip = &Chip{}
	err = yaml.Unmarshal(data, chip)
	if err != nil {
		chip = nil
		return
	}

	err = chip.Validate()
	if err != nil {
		chip = nil
		return
	}

	return
}

// Load parses the layout file at path.
func Load(path string) (chip *Chip, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	return Parse(data)
}

// Default returns the built-in MSP430FR5994 layout.
func Default() (chip *Chip, err error) {
	return Parse(_fr5994)
}

// Field returns the bit range as a 32-bit field description.
func (fd *Field) Field() reg.Field[uint32] {
	field, _ := reg.MakeField[uint32](fd.Lo, fd.Hi)
	return field
}

// Symbol returns the name of value, if it has one.
func (fd *Field) Symbol(value uint32) (symbol string, ok bool) {
	for _, name := range slices.Sorted(maps.Keys(fd.Values)) {
		if fd.Values[name] == value {
			return name, true
		}
	}
	return
}

// Value resolves a named value.
func (fd *Field) Value(symbol string) (value uint32, ok bool) {
	value, ok = fd.Values[symbol]
	return
}

// Field finds a field by name.
func (r *Register) Field(name string) (fd *Field, ok bool) {
	for _, fd = range r.Fields {
		if fd.Name == name {
			return fd, true
		}
	}
	return nil, false
}

// Decoded is one field of a decoded register value.
type Decoded struct {
	Name   string
	Value  uint32
	Symbol string // Empty if the value is unnamed.
}

func (d Decoded) String() string {
	if d.Symbol != "" {
		return fmt.Sprintf("%v=%v", d.Name, d.Symbol)
	}
	return fmt.Sprintf("%v=%d", d.Name, d.Value)
}

// Decode splits value into its fields, most significant first.
func (r *Register) Decode(value uint32) (decoded []Decoded) {
	fields := slices.Clone(r.Fields)
	slices.SortStableFunc(fields, func(a, b *Field) int {
		return int(b.Lo) - int(a.Lo)
	})
	for _, fd := range fields {
		d := Decoded{Name: fd.Name, Value: fd.Field().Extract(value)}
		d.Symbol, _ = fd.Symbol(d.Value)
		decoded = append(decoded, d)
	}
	return
}

// Ref is a resolved register, and optionally one of its fields.
type Ref struct {
	Path       string
	Peripheral *Peripheral
	Register   *Register
	Field      *Field // Nil when the path names a register.
}

// Addr returns the register address.
func (ref Ref) Addr() uintptr {
	return uintptr(ref.Peripheral.Base + ref.Register.Offset)
}

// Lookup resolves PERIPHERAL.REGISTER or PERIPHERAL.REGISTER.FIELD.
func (chip *Chip) Lookup(path string) (ref Ref, err error) {
	parts := strings.Split(path, ".")
	if len(parts) < 2 || len(parts) > 3 {
		err = &ErrLayout{Path: path, Err: ErrNotFound}
		return
	}

	ref.Path = path
	for _, p := range chip.Peripherals {
		if p.Name == parts[0] {
			ref.Peripheral = p
			break
		}
	}
	if ref.Peripheral == nil {
		err = &ErrLayout{Path: path, Err: ErrNotFound}
		return
	}

	for _, r := range ref.Peripheral.Registers {
		if r.Name == parts[1] {
			ref.Register = r
			break
		}
	}
	if ref.Register == nil {
		err = &ErrLayout{Path: path, Err: ErrNotFound}
		return
	}

	if len(parts) == 3 {
		var ok bool
		ref.Field, ok = ref.Register.Field(parts[2])
		if !ok {
			err = &ErrLayout{Path: path, Err: ErrNotFound}
			return
		}
	}

	return
}

// Registers iterates every register by PERIPHERAL.REGISTER path, in layout
// order.
func (chip *Chip) Registers() iter.Seq2[string, Ref] {
	return func(yield func(string, Ref) bool) {
		for _, p := range chip.Peripherals {
			for _, r := range p.Registers {
				path := p.Name + "." + r.Name
				if !yield(path, Ref{Path: path, Peripheral: p, Register: r}) {
					return
				}
			}
		}
	}
}

// Defines iterates named constants: PERIPHERAL_REGISTER for each register
// address, and PERIPHERAL_REGISTER_FIELD_VALUE for each named field value.
func (chip *Chip) Defines() iter.Seq2[string, uint32] {
	return func(yield func(string, uint32) bool) {
		for _, ref := range chip.Registers() {
			prefix := ref.Peripheral.Name + "_" + ref.Register.Name
			if !yield(prefix, uint32(ref.Addr())) {
				return
			}
			for _, fd := range ref.Register.Fields {
				for _, name := range slices.Sorted(maps.Keys(fd.Values)) {
					if !yield(prefix+"_"+fd.Name+"_"+name, fd.Values[name]) {
						return
					}
				}
			}
		}
	}
}
