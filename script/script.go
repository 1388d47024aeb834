// Package script runs Starlark programs against a register map, addressing
// registers and fields by their layout names.
package script

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/regio/bus"
	"github.com/ezrec/regio/layout"
	"github.com/ezrec/regio/reg"
)

// Runtime is a Starlark environment bound to a bus and a layout. Globals
// defined by one Exec are visible to the next.
type Runtime struct {
	Verbose bool      // If set, log every register access.
	Output  io.Writer // Destination of print(), os.Stdout if nil.

	bus     bus.Bus
	chip    *layout.Chip
	globals starlark.StringDict
}

// New creates a runtime on b using chip for names.
func New(b bus.Bus, chip *layout.Chip) (rt *Runtime) {
	rt = &Runtime{
		bus:     b,
		chip:    chip,
		globals: starlark.StringDict{},
	}
	return
}

func (rt *Runtime) output() io.Writer {
	if rt.Output == nil {
		return os.Stdout
	}
	return rt.Output
}

func (rt *Runtime) thread(name string) *starlark.Thread {
	return &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(rt.output(), msg)
		},
	}
}

// predeclared returns the builtins, the layout defines and earlier globals.
func (rt *Runtime) predeclared() (pred starlark.StringDict) {
	pred = starlark.StringDict{
		"CHIP":        starlark.String(rt.chip.Name),
		"read":        starlark.NewBuiltin("read", rt.read),
		"write":       starlark.NewBuiltin("write", rt.write),
		"get":         starlark.NewBuiltin("get", rt.get),
		"set":         starlark.NewBuiltin("set", rt.set),
		"set_bit":     starlark.NewBuiltin("set_bit", rt.bitOp),
		"clear_bit":   starlark.NewBuiltin("clear_bit", rt.bitOp),
		"toggle_bit":  starlark.NewBuiltin("toggle_bit", rt.bitOp),
		"decode":      starlark.NewBuiltin("decode", rt.decode),
		"hex":         starlark.NewBuiltin("hex", hex),
		"transaction": starlark.NewBuiltin("transaction", rt.transaction),
	}

	for name, value := range rt.chip.Defines() {
		pred[name] = starlark.MakeUint64(uint64(value))
	}

	for name, value := range rt.globals {
		pred[name] = value
	}

	return
}

// Exec runs a Starlark file. src is a string, []byte or io.Reader.
func (rt *Runtime) Exec(name string, src any) (err error) {
	opts := syntax.FileOptions{}
	globals, err := starlark.ExecFileOptions(&opts, rt.thread(name), name, src, rt.predeclared())
	for key, value := range globals {
		rt.globals[key] = value
	}
	return
}

// Eval evaluates a single expression.
func (rt *Runtime) Eval(expr string) (value starlark.Value, err error) {
	opts := syntax.FileOptions{}
	value, err = starlark.EvalOptions(&opts, rt.thread("expr"), "expr", expr, rt.predeclared())
	return
}

// Line evaluates line as an expression if it is one, and executes it as a
// statement otherwise. value is nil for statements.
func (rt *Runtime) Line(line string) (value starlark.Value, err error) {
	value, err = rt.Eval(line)
	var serr syntax.Error
	if errors.As(err, &serr) {
		value = nil
		err = rt.Exec("<stdin>", line+"\n")
	}
	return
}

// Globals returns the sorted names of globals defined so far.
func (rt *Runtime) Globals() []string {
	names := make([]string, 0, len(rt.globals))
	for name := range rt.globals {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// register resolves a register path to an accessor.
func (rt *Runtime) register(path string) (ref layout.Ref, r reg.Register, err error) {
	ref, err = rt.chip.Lookup(path)
	if err != nil {
		return
	}
	if ref.Field != nil {
		err = fmt.Errorf("%w: %v", ErrNotRegister, path)
		return
	}
	r = rt.cell(ref)
	return
}

// field resolves a field path to its register accessor.
func (rt *Runtime) field(path string) (ref layout.Ref, r reg.Register, err error) {
	ref, err = rt.chip.Lookup(path)
	if err != nil {
		return
	}
	if ref.Field == nil {
		err = fmt.Errorf("%w: %v", ErrNotField, path)
		return
	}
	r = rt.cell(ref)
	return
}

func (rt *Runtime) cell(ref layout.Ref) (r reg.Register) {
	switch ref.Register.Width {
	case 8:
		r = reg.NewCell[uint8](rt.bus, ref.Addr())
	case 16:
		r = reg.NewCell[uint16](rt.bus, ref.Addr())
	default:
		r = reg.NewCell[uint32](rt.bus, ref.Addr())
	}
	return
}

// value converts an int, or a string naming a value of fd, to a number.
func value(fd *layout.Field, width uint8, v starlark.Value) (n uint32, err error) {
	var limit uint64 = 1<<width - 1
	if fd != nil {
		limit = uint64(fd.Field().Max())
	}

	switch v := v.(type) {
	case starlark.Int:
		u, ok := v.Uint64()
		if !ok || u > limit {
			err = fmt.Errorf("%w: %v > %d", ErrValue, v, limit)
			return
		}
		n = uint32(u)
	case starlark.String:
		var ok bool
		if fd != nil {
			n, ok = fd.Value(string(v))
		}
		if !ok {
			err = fmt.Errorf("%w: %v", ErrSymbol, v)
			return
		}
	default:
		err = fmt.Errorf("%w: %v", ErrValue, v.Type())
	}

	return
}

func (rt *Runtime) trace(format string, args ...any) {
	if rt.Verbose {
		log.Printf("script: "+format, args...)
	}
}

// hex formats an integer as 0x-prefixed hexadecimal.
func hex(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var n starlark.Int
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &n); err != nil {
		return nil, err
	}

	b := n.BigInt()
	if b.Sign() < 0 {
		return starlark.String("-0x" + b.Neg(b).Text(16)), nil
	}
	return starlark.String("0x" + b.Text(16)), nil
}

func (rt *Runtime) read(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var path string
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "reg", &path); err != nil {
		return nil, err
	}

	_, r, err := rt.register(path)
	if err != nil {
		return nil, err
	}

	v := r.Load()
	rt.trace("read %v -> 0x%x", path, v)
	return starlark.MakeUint64(uint64(v)), nil
}

func (rt *Runtime) write(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var path string
	var v starlark.Value
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "reg", &path, "value", &v); err != nil {
		return nil, err
	}

	ref, r, err := rt.register(path)
	if err != nil {
		return nil, err
	}

	n, err := value(nil, ref.Register.Width, v)
	if err != nil {
		return nil, err
	}

	rt.trace("write %v <- 0x%x", path, n)
	r.Store(n)
	return starlark.None, nil
}

func (rt *Runtime) get(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var path string
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "field", &path); err != nil {
		return nil, err
	}

	ref, r, err := rt.field(path)
	if err != nil {
		return nil, err
	}

	return starlark.MakeUint64(uint64(ref.Field.Field().Extract(r.Load()))), nil
}

func (rt *Runtime) set(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var path string
	var v starlark.Value
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "field", &path, "value", &v); err != nil {
		return nil, err
	}

	ref, r, err := rt.field(path)
	if err != nil {
		return nil, err
	}

	n, err := value(ref.Field, ref.Register.Width, v)
	if err != nil {
		return nil, err
	}

	word := ref.Field.Field().Insert(r.Load(), n)
	rt.trace("set %v <- %d", path, n)
	r.Store(word)
	return starlark.None, nil
}

func (rt *Runtime) bitOp(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var path string
	var bit int
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "reg", &path, "bit", &bit); err != nil {
		return nil, err
	}

	ref, r, err := rt.register(path)
	if err != nil {
		return nil, err
	}
	if bit < 0 || bit >= int(ref.Register.Width) {
		return nil, fmt.Errorf("%w: %v bit %d", ErrBit, path, bit)
	}

	mask := uint32(1) << bit
	word := r.Load()
	switch fn.Name() {
	case "set_bit":
		word |= mask
	case "clear_bit":
		word &^= mask
	case "toggle_bit":
		word ^= mask
	}
	rt.trace("%v %v.%d", fn.Name(), path, bit)
	r.Store(word)
	return starlark.None, nil
}

func (rt *Runtime) decode(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var path string
	var v starlark.Value = starlark.None
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "reg", &path, "value?", &v); err != nil {
		return nil, err
	}

	ref, r, err := rt.register(path)
	if err != nil {
		return nil, err
	}

	var n uint32
	if v == starlark.None {
		n = r.Load()
	} else {
		n, err = value(nil, ref.Register.Width, v)
		if err != nil {
			return nil, err
		}
	}

	var parts []string
	for _, d := range ref.Register.Decode(n) {
		parts = append(parts, d.String())
	}
	return starlark.String(strings.Join(parts, " ")), nil
}

// staged is one field edit of a scripted transaction.
type staged struct {
	slot  int
	field *layout.Field
	value uint32
}

func (rt *Runtime) transaction(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var lockPath string
	var key starlark.Value
	var fields *starlark.Dict
	update := true
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "lock", &lockPath, "key", &key, "fields", &fields, "update?", &update); err != nil {
		return nil, err
	}

	lock, _, err := rt.register(lockPath)
	if err != nil {
		return nil, err
	}
	width := lock.Register.Width

	keyValue, err := value(nil, width, key)
	if err != nil {
		return nil, err
	}

	type edit struct {
		ref   layout.Ref
		value uint32
	}
	var edits []edit
	for _, item := range fields.Items() {
		path, ok := starlark.AsString(item[0])
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrKey, item[0])
		}
		ref, _, err := rt.field(path)
		if err != nil {
			return nil, err
		}
		if ref.Register.Width != width {
			return nil, fmt.Errorf("%w: %v", ErrWidth, path)
		}
		n, err := value(ref.Field, width, item[1])
		if err != nil {
			return nil, err
		}
		edits = append(edits, edit{ref: ref, value: n})
	}

	// One slot per register, in address order.
	var regs []layout.Ref
	for _, e := range edits {
		if !slices.ContainsFunc(regs, func(r layout.Ref) bool { return r.Addr() == e.ref.Addr() }) {
			regs = append(regs, e.ref)
		}
	}
	slices.SortFunc(regs, func(a, b layout.Ref) int {
		return int(a.Addr()) - int(b.Addr())
	})

	var stages []staged
	for _, e := range edits {
		slot := slices.IndexFunc(regs, func(r layout.Ref) bool { return r.Addr() == e.ref.Addr() })
		stages = append(stages, staged{slot: slot, field: e.ref.Field, value: e.value})
	}

	rt.trace("transaction %v key 0x%x, %d fields over %d registers", lockPath, keyValue, len(stages), len(regs))

	switch width {
	case 8:
		transact[uint8](rt.bus, lock, keyValue, update, regs, stages)
	case 16:
		transact[uint16](rt.bus, lock, keyValue, update, regs, stages)
	default:
		transact[uint32](rt.bus, lock, keyValue, update, regs, stages)
	}

	return starlark.None, nil
}

func transact[T reg.Word](b bus.Bus, lock layout.Ref, key uint32, update bool, regs []layout.Ref, stages []staged) {
	cells := make([]reg.Cell[T], len(regs))
	for n, ref := range regs {
		cells[n] = reg.NewCell[T](b, ref.Addr())
	}

	tx := reg.Begin(reg.NewCell[T](b, lock.Addr()), T(key), update, cells...)
	reg.Apply(tx, func(tx *reg.Tx[T]) {
		for _, s := range stages {
			field, _ := reg.MakeField[T](s.field.Lo, s.field.Hi)
			tx.Stage(s.slot, field, T(s.value))
		}
	})
}
