// Package tables holds the statically initialized, read-only data model the
// decoder and encoder walk: operand definitions, instruction definitions,
// physical encoding info, accessed-flags entries, and the decoder's compact
// opcode-table tree (spec section 3.4, 3.5, 4.2). Nothing here is mutated
// after init(); callers only ever read through the exported accessors.
package tables

import (
	"github.com/relsig/x86isa/enum"
	"github.com/relsig/x86isa/register"
)

// OperandDefinition is one slot of an instruction's static operand shape
// (spec section 3.4). Width16/Width32/Width64 hold the operand's logical size
// in bits under the 16/32/64-bit operand-size contexts respectively; a
// decoder picks the one matching the instruction's effective operand size.
type OperandDefinition struct {
	Semantic   enum.SemanticOperandType
	Visibility enum.OperandVisibility
	Action     enum.OperandAction
	Element    enum.ElementType
	Width16    int
	Width32    int
	Width64    int
	Encoding   enum.OperandEncoding

	// MemType only applies when Semantic is one of the MEM* variants, or
	// when AllowMemory is set and ModRM.mod selects the memory form.
	MemType enum.MemType

	// AllowMemory marks a ModRM.rm-encoded register operand (Semantic one
	// of GPR8/16/32/64, XMM, YMM, ZMM, MMX...) as also acceptable in its
	// memory form when ModRM.mod != 3 — the common "r/m" operand shape.
	// Real per-mnemonic tables give such a slot its own MemType (usually
	// MemTypeMem); this one does too.
	AllowMemory bool

	// Implicit describes a static or size-dependent implicit register/
	// memory operand; nil when Encoding != EncodingSlotStatic.
	Implicit *ImplicitDescriptor
}

// ImplicitDescriptor covers both "implicit register" forms spec.md 3.4
// names: a single static register (e.g. AL for string-op mnemonics), or a
// family whose width tracks the instruction's operand/address/stack size
// (e.g. "the accumulator sized to the effective operand width").
type ImplicitDescriptor struct {
	StaticReg register.Register // valid when Family == FamilyNone

	Family ImplicitFamily

	// FamilyID is the GPR encoding id selected when Family is OSZ/ASZ/SSZ
	// sized (e.g. 0 for the accumulator); unused for IP/Flags families.
	FamilyID byte

	// Segment and BaseAction only apply to implicit memory operands.
	Segment    register.Register
	BaseAction enum.OperandAction
}

// ImplicitFamily selects how an implicit register's width is derived.
type ImplicitFamily int

const (
	FamilyNone  ImplicitFamily = iota // StaticReg is authoritative
	FamilyOSZ                         // sized to effective operand size
	FamilyASZ                         // sized to effective address size
	FamilySSZ                         // sized to effective stack width
	FamilyIP                          // IP/EIP/RIP, sized to address width
	FamilyFlags                       // FLAGS/EFLAGS/RFLAGS, sized to operand size
)

// EncodingInfo declares an instruction's physical optional parts (spec
// section 3.4, "InstructionEncodingInfo").
type EncodingInfo struct {
	HasModRM bool

	// DispSize16/32/64 give the displacement size in bytes for each
	// address-size class; 0 means "no displacement" for that class.
	DispSize16, DispSize32, DispSize64 int

	Imm0 ImmediateInfo
	Imm1 ImmediateInfo

	// ForceRegForm mirrors the EncodingInfo "force modrm.mod=3" flag: a
	// mod != 11 byte is a DecodingError for this instruction.
	ForceRegForm bool
}

// ImmediateInfo describes one of an instruction's up to two immediates.
type ImmediateInfo struct {
	Present    bool
	Size16     int // bytes
	Size32     int
	Size64     int
	IsSigned   bool
	IsAddress  bool
	IsRelative bool
}

// LegacyExtension carries the DEFAULT-encoding-class "accepts_X" prefix
// tolerance bits spec section 3.4 describes.
type LegacyExtension struct {
	AcceptsLock           bool
	AcceptsRep            bool
	AcceptsRepe           bool
	AcceptsRepne          bool
	AcceptsBound          bool
	AcceptsXacquire       bool
	AcceptsXrelease       bool
	AcceptsHLEWithoutLock bool
	AcceptsBranchHints    bool
	AcceptsSegment        bool
}

// EVEXExtension carries the EVEX-specific definition fields (spec section
// 3.4).
type EVEXExtension struct {
	VectorLengthClass enum.VectorLength
	TupleType         enum.TupleType
	ElementSizeClass  enum.ElementType
	BMeaning          EVEXBMeaning
	MaskPolicy        enum.MaskPolicy
}

// EVEXBMeaning is what the EVEX.b bit selects for a given definition:
// compressed broadcast, static rounding control, or pure SAE.
type EVEXBMeaning int

const (
	EVEXBNone EVEXBMeaning = iota
	EVEXBBroadcast
	EVEXBRoundingControl
	EVEXBSAE
)

// MVEXExtension carries the MVEX-specific definition fields.
type MVEXExtension struct {
	Functionality enum.MVEXFunctionality
	MaskPolicy    enum.MaskPolicy
}

// InstructionDefinition is the per-encoding-class static description a
// decoder-tree Definition leaf points to (spec section 3.4).
type InstructionDefinition struct {
	Mnemonic     enum.Mnemonic
	OperandCount int
	Operands     []int // indices into the OperandDefinition pool
	EncodingInfo int   // index into the EncodingInfo pool

	// Opcode is the definition's base opcode byte: the literal byte for a
	// fixed-opcode instruction, or the low end of a +r range (e.g. 0xB8 for
	// the 0xB8..0xBF "MOV r64, imm" family). The decoder never reads this -
	// its opcode table is already keyed by byte value - but the encoder
	// does, since building an opcode byte from a mnemonic is the inverse
	// direction the decode tree doesn't index.
	Opcode byte

	Encoding enum.EncodingClass
	Category enum.Category
	ISASet   enum.ISASet
	ISAExt   enum.ISAExt
	Branch   enum.BranchType
	Except   enum.ExceptionClass
	Flags    enum.AccessedFlags

	Legacy *LegacyExtension
	EVEX   *EVEXExtension
	MVEX   *MVEXExtension
}
