package layout

import (
	"errors"
	"maps"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/regio/board/fr5994"
	"github.com/ezrec/regio/sim"
)

func TestDefault(t *testing.T) {
	assert := assert.New(t)

	chip, err := Default()
	assert.NoError(err)
	assert.Equal("MSP430FR5994", chip.Name)

	count := 0
	for range chip.Registers() {
		count++
	}
	assert.Equal(169, count)
}

func TestDefault_MatchesBoard(t *testing.T) {
	assert := assert.New(t)

	chip, err := Default()
	assert.NoError(err)

	board := fr5994.New(sim.NewMemory())
	names := map[string]bool{}
	for name, r := range board.Registers() {
		names[name] = true
		ref, err := chip.Lookup(name)
		if !assert.NoError(err, name) {
			continue
		}
		assert.Equal(r.Addr(), ref.Addr(), name)
		assert.Equal(r.Width(), ref.Register.Width, name)
	}

	for path := range chip.Registers() {
		assert.True(names[path], path)
	}
}

func TestLookup(t *testing.T) {
	assert := assert.New(t)

	chip, err := Default()
	assert.NoError(err)

	ref, err := chip.Lookup("CS.CTL2.SELM")
	assert.NoError(err)
	assert.Equal(uintptr(0x164), ref.Addr())
	assert.Equal("SELM", ref.Field.Name)
	assert.Equal(uint32(0x0007), ref.Field.Field().Mask())

	ref, err = chip.Lookup("TB0.CCTL6")
	assert.NoError(err)
	assert.Nil(ref.Field)
	assert.Equal(uintptr(0x3ce), ref.Addr())

	ref, err = chip.Lookup("CS.CTL1.DCORSEL")
	assert.NoError(err)
	assert.Equal(uint8(6), ref.Field.Lo)
	assert.Equal(uint8(6), ref.Field.Hi)

	table := [...]string{
		"CS",
		"CS.CTL9",
		"XX.CTL0",
		"CS.CTL2.NOPE",
		"CS.CTL2.SELM.EXTRA",
	}
	for _, path := range table {
		_, err = chip.Lookup(path)
		assert.True(errors.Is(err, ErrNotFound), path)
		var lerr *ErrLayout
		assert.True(errors.As(err, &lerr), path)
		assert.Equal(path, lerr.Path)
	}
}

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	chip, err := Default()
	assert.NoError(err)

	ref, err := chip.Lookup("CS.CTL2")
	assert.NoError(err)

	decoded := ref.Register.Decode(0x0133)
	assert.Equal([]Decoded{
		{Name: "SELA", Value: 1, Symbol: "VLOCLK"},
		{Name: "SELS", Value: 3, Symbol: "DCOCLK"},
		{Name: "SELM", Value: 3, Symbol: "DCOCLK"},
	}, decoded)
	assert.Equal("SELA=VLOCLK", decoded[0].String())

	ref, err = chip.Lookup("CS.CTL4")
	assert.NoError(err)
	decoded = ref.Register.Decode(0xc000)
	assert.Equal("HFXTDRIVE=3", decoded[0].String())

	_, err = chip.Lookup("SELS")
	assert.Error(err)
}

func TestField_Values(t *testing.T) {
	assert := assert.New(t)

	chip, err := Default()
	assert.NoError(err)

	ref, err := chip.Lookup("TA0.CTL.MC")
	assert.NoError(err)

	value, ok := ref.Field.Value("UP")
	assert.True(ok)
	assert.Equal(uint32(1), value)

	_, ok = ref.Field.Value("SIDEWAYS")
	assert.False(ok)

	symbol, ok := ref.Field.Symbol(3)
	assert.True(ok)
	assert.Equal("UPDOWN", symbol)

	// Aliased value tables are decoded independently.
	ta1, err := chip.Lookup("TA1.CTL.MC")
	assert.NoError(err)
	assert.NotSame(ref.Field, ta1.Field)
	assert.Equal(ref.Field.Values, ta1.Field.Values)
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	chip, err := Default()
	assert.NoError(err)

	defines := maps.Collect(chip.Defines())
	assert.Equal(uint32(0x0164), defines["CS_CTL2"])
	assert.Equal(uint32(3), defines["CS_CTL2_SELM_DCOCLK"])
	assert.Equal(uint32(0x0202), defines["P1_OUT"])
	assert.Equal(uint32(7), defines["TA0_CCTL1_OUTMOD_RESET_SET"])
	assert.NotContains(defines, "P1_OUT_X")

	// Early stop.
	n := 0
	for range chip.Defines() {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(3, n)
}

func TestValidate(t *testing.T) {
	assert := assert.New(t)

	table := [...]struct {
		name   string
		yaml   string
		expect error
	}{
		{"width", `
peripherals:
  - name: A
    registers:
      - {name: R, offset: 0, width: 12}
`, ErrWidth},
		{"range", `
peripherals:
  - name: A
    registers:
      - name: R
        width: 8
        fields:
          - {name: F, lo: 4, hi: 8}
`, ErrRange},
		{"value", `
peripherals:
  - name: A
    registers:
      - name: R
        width: 8
        fields:
          - {name: F, lo: 0, hi: 1, values: {BIG: 4}}
`, ErrValue},
		{"duplicate register", `
peripherals:
  - name: A
    registers:
      - {name: R, offset: 0, width: 8}
      - {name: R, offset: 1, width: 8}
`, ErrDuplicate},
		{"duplicate peripheral", `
peripherals:
  - {name: A}
  - {name: A}
`, ErrDuplicate},
		{"duplicate field", `
peripherals:
  - name: A
    registers:
      - name: R
        width: 8
        fields:
          - {name: F, bit: 0}
          - {name: F, bit: 1}
`, ErrDuplicate},
		{"field overlap", `
peripherals:
  - name: A
    registers:
      - name: R
        width: 8
        fields:
          - {name: F, lo: 0, hi: 3}
          - {name: G, bit: 3}
`, ErrOverlap},
		{"register overlap", `
peripherals:
  - name: A
    base: 0x100
    registers:
      - {name: R, offset: 0, width: 16}
  - name: B
    base: 0x101
    registers:
      - {name: R, offset: 0, width: 8}
`, ErrOverlap},
		{"empty name", `
peripherals:
  - name: A
    registers:
      - {offset: 0, width: 8}
`, ErrName},
	}

	for _, entry := range table {
		chip, err := Parse([]byte(entry.yaml))
		assert.Nil(chip, entry.name)
		assert.True(errors.Is(err, entry.expect), "%v: %v", entry.name, err)
	}
}

func TestParse_Normalizes(t *testing.T) {
	assert := assert.New(t)

	chip, err := Parse([]byte(`
chip: test
peripherals:
  - name: A
    base: 0x10
    registers:
      - name: R
        offset: 2
        width: 16
        fields:
          - {name: F, lo: 7, hi: 4}
          - {name: G, bit: 15}
`))
	assert.NoError(err)

	ref, err := chip.Lookup("A.R.F")
	assert.NoError(err)
	assert.Equal(uint8(4), ref.Field.Lo)
	assert.Equal(uint8(7), ref.Field.Hi)
	assert.Equal(uintptr(0x12), ref.Addr())

	ref, err = chip.Lookup("A.R.G")
	assert.NoError(err)
	assert.Equal(uint32(0x8000), ref.Field.Field().Mask())
}

func TestParse_Syntax(t *testing.T) {
	assert := assert.New(t)

	chip, err := Parse([]byte("peripherals: [unterminated"))
	assert.Nil(chip)
	assert.Error(err)
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "chip.yaml")
	assert.NoError(os.WriteFile(path, _fr5994, 0o644))

	chip, err := Load(path)
	assert.NoError(err)
	assert.Equal("MSP430FR5994", chip.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(errors.Is(err, os.ErrNotExist))
}
