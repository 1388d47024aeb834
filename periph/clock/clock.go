// Package clock drives the CS clock system: DCO selection, clock sources and
// dividers behind the CSKEY lock.
package clock

import (
	"iter"
	"log"

	"github.com/ezrec/regio/bus"
	"github.com/ezrec/regio/reg"
)

//go:generate go tool stringer -type=Source,Divider -linecomment

const (
	CSKEY = 0xA500 // Unlock key, written to CTL0.

	LFXT_HZ   = 32768   // Nominal LFXT crystal.
	VLO_HZ    = 9400    // Typical VLO.
	MODCLK_HZ = 5000000 // Typical MODOSC.
	LFMOD_HZ  = MODCLK_HZ / 128
)

// DCO is a DCO frequency setting, encoded as its CTL1 image.
type DCO uint16

const (
	DCO_1MHZ    = DCO(0 << 1)
	DCO_2_67MHZ = DCO(1 << 1)
	DCO_3_5MHZ  = DCO(2 << 1)
	DCO_4MHZ    = DCO(3 << 1)
	DCO_5_33MHZ = DCO(4 << 1)
	DCO_7MHZ    = DCO(5 << 1)
	DCO_8MHZ    = DCO(6 << 1)
	DCO_16MHZ   = DCO(1<<6 | 4<<1)
	DCO_21MHZ   = DCO(1<<6 | 5<<1)
	DCO_24MHZ   = DCO(1<<6 | 6<<1)
)

var _dco_hz = [2][8]uint32{
	{1000000, 2670000, 3500000, 4000000, 5330000, 7000000, 8000000, 8000000},
	{1000000, 5330000, 7000000, 8000000, 16000000, 21000000, 24000000, 24000000},
}

// Hz returns the nominal frequency.
func (d DCO) Hz() uint32 {
	return _dco_hz[fieldDCORSEL.Extract(uint16(d))][fieldDCOFSEL.Extract(uint16(d))]
}

// AuxSource selects the ACLK input.
type AuxSource uint16

const (
	AUX_LFXTCLK  = AuxSource(0)
	AUX_VLOCLK   = AuxSource(1)
	AUX_LFMODCLK = AuxSource(2)
)

// Source selects the MCLK or SMCLK input.
type Source uint16

const (
	SRC_LFXTCLK  = Source(0) // LFXTCLK
	SRC_VLOCLK   = Source(1) // VLOCLK
	SRC_LFMODCLK = Source(2) // LFMODCLK
	SRC_DCOCLK   = Source(3) // DCOCLK
	SRC_MODCLK   = Source(4) // MODCLK
	SRC_HFXTCLK  = Source(5) // HFXTCLK
)

// Divider is a clock divider, 1 to 32.
type Divider uint16

const (
	DIV_1  = Divider(0) // /1
	DIV_2  = Divider(1) // /2
	DIV_4  = Divider(2) // /4
	DIV_8  = Divider(3) // /8
	DIV_16 = Divider(4) // /16
	DIV_32 = Divider(5) // /32
)

// Drive is a crystal drive strength.
type Drive uint16

const (
	DRIVE_0 = Drive(0) // Lowest current.
	DRIVE_1 = Drive(1)
	DRIVE_2 = Drive(2)
	DRIVE_3 = Drive(3) // Highest current.
)

// HFFreq is the HFXT frequency range.
type HFFreq uint16

const (
	HF_4MHZ  = HFFreq(0) // 0 to 4 MHz
	HF_8MHZ  = HFFreq(1) // 4 to 8 MHz
	HF_16MHZ = HFFreq(2) // 8 to 16 MHz
	HF_24MHZ = HFFreq(3) // 16 to 24 MHz
)

var (
	fieldDCOFSEL = reg.Field16[reg.B1, reg.B3]()
	fieldDCORSEL = reg.Field16[reg.B6, reg.B6]()

	fieldSELA = reg.Field16[reg.B8, reg.B10]()
	fieldSELS = reg.Field16[reg.B4, reg.B6]()
	fieldSELM = reg.Field16[reg.B0, reg.B2]()

	fieldDIVA = reg.Field16[reg.B8, reg.B10]()
	fieldDIVS = reg.Field16[reg.B4, reg.B6]()
	fieldDIVM = reg.Field16[reg.B0, reg.B2]()

	fieldHFXTDRIVE  = reg.Field16[reg.B14, reg.B15]()
	fieldHFXTBYPASS = reg.Field16[reg.B12, reg.B12]()
	fieldHFFREQ     = reg.Field16[reg.B10, reg.B11]()
	fieldHFXTOFF    = reg.Field16[reg.B8, reg.B8]()
	fieldLFXTDRIVE  = reg.Field16[reg.B6, reg.B7]()
	fieldLFXTBYPASS = reg.Field16[reg.B4, reg.B4]()
	fieldVLOOFF     = reg.Field16[reg.B3, reg.B3]()
	fieldSMCLKOFF   = reg.Field16[reg.B1, reg.B1]()
	fieldLFXTOFF    = reg.Field16[reg.B0, reg.B0]()

	fieldHFXTOFFG = reg.Field16[reg.B1, reg.B1]()
	fieldLFXTOFFG = reg.Field16[reg.B0, reg.B0]()

	fieldMODCLKREQEN = reg.Field16[reg.B3, reg.B3]()
	fieldSMCLKREQEN  = reg.Field16[reg.B2, reg.B2]()
	fieldMCLKREQEN   = reg.Field16[reg.B1, reg.B1]()
	fieldACLKREQEN   = reg.Field16[reg.B0, reg.B0]()
)

// Transaction slots, in commit order.
const (
	slotCTL1 = iota
	slotCTL2
	slotCTL3
	slotCTL4
	slotCTL5
	slotCTL6
)

// CS is the clock system register block.
type CS struct {
	Verbose bool // If set, log configuration changes.

	CTL0 reg.Cell[uint16] // Key.
	CTL1 reg.Cell[uint16] // DCO.
	CTL2 reg.Cell[uint16] // Sources.
	CTL3 reg.Cell[uint16] // Dividers.
	CTL4 reg.Cell[uint16] // Oscillators.
	CTL5 reg.Cell[uint16] // Faults.
	CTL6 reg.Cell[uint16] // Conditional requests.
}

// New binds a CS block at base.
func New(b bus.Bus, base uintptr) (cs *CS) {
	cs = &CS{
		CTL0: reg.NewCell[uint16](b, base+0x0),
		CTL1: reg.NewCell[uint16](b, base+0x2),
		CTL2: reg.NewCell[uint16](b, base+0x4),
		CTL3: reg.NewCell[uint16](b, base+0x6),
		CTL4: reg.NewCell[uint16](b, base+0x8),
		CTL5: reg.NewCell[uint16](b, base+0xA),
		CTL6: reg.NewCell[uint16](b, base+0xC),
	}
	return
}

// Registers iterates the block by register name.
func (cs *CS) Registers() iter.Seq2[string, reg.Register] {
	return func(yield func(string, reg.Register) bool) {
		_ = yield("CTL0", cs.CTL0) &&
			yield("CTL1", cs.CTL1) &&
			yield("CTL2", cs.CTL2) &&
			yield("CTL3", cs.CTL3) &&
			yield("CTL4", cs.CTL4) &&
			yield("CTL5", cs.CTL5) &&
			yield("CTL6", cs.CTL6)
	}
}

// Unlock writes the key.
func (cs *CS) Unlock() {
	cs.CTL0.Write(CSKEY)
}

// Lock writes an invalid key.
func (cs *CS) Lock() {
	cs.CTL0.Write(0)
}

// SetDCO replaces CTL1. The block must be unlocked.
func (cs *CS) SetDCO(d DCO) {
	cs.CTL1.Write(uint16(d))
}

// SetSources replaces CTL2. The block must be unlocked.
func (cs *CS) SetSources(aclk AuxSource, smclk, mclk Source) {
	var word uint16
	word = fieldSELA.Insert(word, uint16(aclk))
	word = fieldSELS.Insert(word, uint16(smclk))
	word = fieldSELM.Insert(word, uint16(mclk))
	cs.CTL2.Write(word)
}

// SetDividers replaces CTL3. The block must be unlocked.
func (cs *CS) SetDividers(aclk, smclk, mclk Divider) {
	var word uint16
	word = fieldDIVA.Insert(word, uint16(aclk))
	word = fieldDIVS.Insert(word, uint16(smclk))
	word = fieldDIVM.Insert(word, uint16(mclk))
	cs.CTL3.Write(word)
}

// Faults reports the oscillator fault flags.
func (cs *CS) Faults() (lfxt, hfxt bool) {
	word := cs.CTL5.Read()
	lfxt = fieldLFXTOFFG.Extract(word) != 0
	hfxt = fieldHFXTOFFG.Extract(word) != 0
	return
}

// Begin starts a transaction over CTL1 to CTL6. With update set, unstaged
// fields keep their current values. Otherwise they are written as zero.
func (cs *CS) Begin(update bool) *Tx {
	return &Tx{
		verbose: cs.Verbose,
		tx: reg.Begin(cs.CTL0, CSKEY, update,
			cs.CTL1, cs.CTL2, cs.CTL3, cs.CTL4, cs.CTL5, cs.CTL6),
	}
}

// Configure runs fn on a new transaction and commits it when fn returns or
// panics.
func (cs *CS) Configure(update bool, fn func(tx *Tx)) {
	tx := cs.Begin(update)
	defer tx.Commit()
	fn(tx)
}

// Rates are the resulting clock frequencies in Hz.
type Rates struct {
	ACLK  uint32
	SMCLK uint32
	MCLK  uint32
}

// Rates computes the clock tree from the current registers, assuming
// nominal oscillators and an HFXT crystal of hfxt Hz.
func (cs *CS) Rates(hfxt uint32) (rates Rates) {
	dco := DCO(cs.CTL1.Read())
	sel := cs.CTL2.Read()
	div := cs.CTL3.Read()

	source := func(s Source) uint32 {
		switch s {
		case SRC_LFXTCLK:
			return LFXT_HZ
		case SRC_VLOCLK:
			return VLO_HZ
		case SRC_LFMODCLK:
			return LFMOD_HZ
		case SRC_DCOCLK:
			return dco.Hz()
		case SRC_MODCLK:
			return MODCLK_HZ
		case SRC_HFXTCLK:
			return hfxt
		}
		return 0
	}

	rates.ACLK = source(Source(fieldSELA.Extract(sel))) >> fieldDIVA.Extract(div)
	rates.SMCLK = source(Source(fieldSELS.Extract(sel))) >> fieldDIVS.Extract(div)
	rates.MCLK = source(Source(fieldSELM.Extract(sel))) >> fieldDIVM.Extract(div)

	return
}

func boolBit(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}

// Tx stages CS changes. Every setter returns the Tx so calls chain.
type Tx struct {
	verbose bool
	tx      *reg.Tx[uint16]
}

// DCO stages the DCO range and frequency select.
func (t *Tx) DCO(d DCO) *Tx {
	t.tx.Stage(slotCTL1, fieldDCOFSEL, fieldDCOFSEL.Extract(uint16(d)))
	t.tx.Stage(slotCTL1, fieldDCORSEL, fieldDCORSEL.Extract(uint16(d)))
	return t
}

// ACLK stages the ACLK source.
func (t *Tx) ACLK(s AuxSource) *Tx {
	t.tx.Stage(slotCTL2, fieldSELA, uint16(s))
	return t
}

// SMCLK stages the SMCLK source.
func (t *Tx) SMCLK(s Source) *Tx {
	t.tx.Stage(slotCTL2, fieldSELS, uint16(s))
	return t
}

// MCLK stages the MCLK source.
func (t *Tx) MCLK(s Source) *Tx {
	t.tx.Stage(slotCTL2, fieldSELM, uint16(s))
	return t
}

// ACLKDivider stages the ACLK divider.
func (t *Tx) ACLKDivider(d Divider) *Tx {
	t.tx.Stage(slotCTL3, fieldDIVA, uint16(d))
	return t
}

// SMCLKDivider stages the SMCLK divider.
func (t *Tx) SMCLKDivider(d Divider) *Tx {
	t.tx.Stage(slotCTL3, fieldDIVS, uint16(d))
	return t
}

// MCLKDivider stages the MCLK divider.
func (t *Tx) MCLKDivider(d Divider) *Tx {
	t.tx.Stage(slotCTL3, fieldDIVM, uint16(d))
	return t
}

// LFXT stages the low frequency crystal oscillator.
func (t *Tx) LFXT(on bool, drive Drive, bypass bool) *Tx {
	t.tx.Stage(slotCTL4, fieldLFXTOFF, boolBit(!on))
	t.tx.Stage(slotCTL4, fieldLFXTDRIVE, uint16(drive))
	t.tx.Stage(slotCTL4, fieldLFXTBYPASS, boolBit(bypass))
	return t
}

// HFXT stages the high frequency crystal oscillator.
func (t *Tx) HFXT(on bool, freq HFFreq, drive Drive, bypass bool) *Tx {
	t.tx.Stage(slotCTL4, fieldHFXTOFF, boolBit(!on))
	t.tx.Stage(slotCTL4, fieldHFFREQ, uint16(freq))
	t.tx.Stage(slotCTL4, fieldHFXTDRIVE, uint16(drive))
	t.tx.Stage(slotCTL4, fieldHFXTBYPASS, boolBit(bypass))
	return t
}

// VLO stages the VLO enable.
func (t *Tx) VLO(on bool) *Tx {
	t.tx.Stage(slotCTL4, fieldVLOOFF, boolBit(!on))
	return t
}

// SMCLKOff stages the SMCLK gate.
func (t *Tx) SMCLKOff(off bool) *Tx {
	t.tx.Stage(slotCTL4, fieldSMCLKOFF, boolBit(off))
	return t
}

// ClearFaults stages clearing of both oscillator fault flags.
func (t *Tx) ClearFaults() *Tx {
	t.tx.Stage(slotCTL5, fieldLFXTOFFG, 0)
	t.tx.Stage(slotCTL5, fieldHFXTOFFG, 0)
	return t
}

// Requests stages the conditional clock request enables.
func (t *Tx) Requests(aclk, mclk, smclk, modclk bool) *Tx {
	t.tx.Stage(slotCTL6, fieldACLKREQEN, boolBit(aclk))
	t.tx.Stage(slotCTL6, fieldMCLKREQEN, boolBit(mclk))
	t.tx.Stage(slotCTL6, fieldSMCLKREQEN, boolBit(smclk))
	t.tx.Stage(slotCTL6, fieldMODCLKREQEN, boolBit(modclk))
	return t
}

// Commit unlocks CS and writes every staged register. Later calls do nothing.
func (t *Tx) Commit() {
	if t.verbose && !t.tx.Committed() {
		for n := range slotCTL6 + 1 {
			if t.tx.Dirty(n) {
				log.Printf("clock: CTL%d <- 0x%04x", n+1, t.tx.Shadow(n))
			}
		}
	}
	t.tx.Commit()
}
