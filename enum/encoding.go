package enum

// EncodingClass identifies the physical prefix family an instruction was
// decoded from (spec section 3.2).
type EncodingClass int

const (
	EncodingLegacy EncodingClass = iota
	Encoding3DNow
	EncodingXOP
	EncodingVEX
	EncodingEVEX
	EncodingMVEX
)

func (e EncodingClass) String() string {
	switch e {
	case EncodingLegacy:
		return "legacy"
	case Encoding3DNow:
		return "3dnow"
	case EncodingXOP:
		return "xop"
	case EncodingVEX:
		return "vex"
	case EncodingEVEX:
		return "evex"
	case EncodingMVEX:
		return "mvex"
	default:
		return "unknown-encoding"
	}
}

// HasOwnREXBits reports whether the encoding supplies its own R/X/B/W (and
// for EVEX/MVEX, R'/V') bits, meaning a REX prefix is illegal alongside it
// (spec section 3.2 invariants: "A VEX/EVEX/MVEX/XOP instruction never
// carries a REX byte").
func (e EncodingClass) HasOwnREXBits() bool {
	return e != EncodingLegacy && e != Encoding3DNow
}

// OpcodeMap identifies which opcode table an instruction's primary opcode
// byte was read from (spec section 3.2, 4.2).
type OpcodeMap int

const (
	OpcodeMapDefault OpcodeMap = iota
	OpcodeMap0F
	OpcodeMap0F38
	OpcodeMap0F3A
	OpcodeMap0F0F // 3DNow! suffix map
	OpcodeMapXOP8
	OpcodeMapXOP9
	OpcodeMapXOPA
)

func (m OpcodeMap) String() string {
	switch m {
	case OpcodeMapDefault:
		return "default"
	case OpcodeMap0F:
		return "0f"
	case OpcodeMap0F38:
		return "0f38"
	case OpcodeMap0F3A:
		return "0f3a"
	case OpcodeMap0F0F:
		return "0f0f"
	case OpcodeMapXOP8:
		return "xop8"
	case OpcodeMapXOP9:
		return "xop9"
	case OpcodeMapXOPA:
		return "xopa"
	default:
		return "unknown-map"
	}
}

// TableRootID is the integer tag generated tables use to identify an
// opcode-table root (spec section 4.2, "Opcode-table ids").
type TableRootID int

const (
	RootPrimary TableRootID = 0x00
	Root0F      TableRootID = 0x01
	Root0F38    TableRootID = 0x02
	Root0F3A    TableRootID = 0x03
	RootVEX     TableRootID = 0x04
	RootEVEX    TableRootID = 0x14
	RootMVEX    TableRootID = 0x34
	RootXOP     TableRootID = 0x44
	Root3DNow   TableRootID = 0x47
)

// MandatoryPrefix is the "none/66/F2/F3" selector consumed as part of an
// opcode rather than as a standalone legacy prefix (spec section 4.1 step 5).
type MandatoryPrefix int

const (
	MandatoryNone MandatoryPrefix = iota
	Mandatory66
	MandatoryF2
	MandatoryF3
)
