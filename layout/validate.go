package layout

import (
	"fmt"
)

// Validate checks the layout and normalizes every field so that Lo <= Hi.
//
// Register widths must be 8, 16 or 32. Fields must lie within their register
// and must not overlap, named values must fit their field, names must be
// unique at each level, and no two registers may share a byte.
func (chip *Chip) Validate() (err error) {
	peripherals := map[string]bool{}
	owner := map[uint32]string{}

	for _, p := range chip.Peripherals {
		if p.Name == "" {
			return &ErrLayout{Path: chip.Name, Err: ErrName}
		}
		if peripherals[p.Name] {
			return &ErrLayout{Path: p.Name, Err: ErrDuplicate}
		}
		peripherals[p.Name] = true

		registers := map[string]bool{}
		for _, r := range p.Registers {
			path := p.Name + "." + r.Name
			if r.Name == "" {
				return &ErrLayout{Path: path, Err: ErrName}
			}
			if registers[r.Name] {
				return &ErrLayout{Path: path, Err: ErrDuplicate}
			}
			registers[r.Name] = true

			switch r.Width {
			case 8, 16, 32:
			default:
				return &ErrLayout{Path: path, Err: fmt.Errorf("%w: %d", ErrWidth, r.Width)}
			}

			addr := p.Base + r.Offset
			for n := range uint32(r.Width / 8) {
				if other, ok := owner[addr+n]; ok {
					return &ErrLayout{Path: path, Err: fmt.Errorf("%w: %v", ErrOverlap, other)}
				}
				owner[addr+n] = path
			}

			err = validateFields(path, r)
			if err != nil {
				return
			}
		}
	}

	return
}

func validateFields(path string, r *Register) (err error) {
	names := map[string]bool{}
	var used uint32

	for _, fd := range r.Fields {
		fpath := path + "." + fd.Name
		if fd.Name == "" {
			return &ErrLayout{Path: fpath, Err: ErrName}
		}
		if names[fd.Name] {
			return &ErrLayout{Path: fpath, Err: ErrDuplicate}
		}
		names[fd.Name] = true

		if fd.Bit != nil {
			fd.Lo = *fd.Bit
			fd.Hi = *fd.Bit
		}
		if fd.Lo > fd.Hi {
			fd.Lo, fd.Hi = fd.Hi, fd.Lo
		}
		if fd.Hi >= r.Width {
			return &ErrLayout{Path: fpath, Err: fmt.Errorf("%w: %d >= %d", ErrRange, fd.Hi, r.Width)}
		}

		field := fd.Field()
		if used&field.Mask() != 0 {
			return &ErrLayout{Path: fpath, Err: ErrOverlap}
		}
		used |= field.Mask()

		for name, value := range fd.Values {
			if value > field.Max() {
				return &ErrLayout{Path: fpath + "." + name, Err: fmt.Errorf("%w: %d > %d", ErrValue, value, field.Max())}
			}
		}
	}

	return
}
