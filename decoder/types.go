// Package decoder implements the byte-stream classification pipeline:
// prefix absorption, encoding dispatch, opcode-table tree walk, ModRM/SIB/
// displacement/immediate harvesting, operand materialization, and the
// semantic post-pass (spec section 4.1). It is the only package that reads
// raw instruction bytes.
package decoder

import (
	"github.com/relsig/x86isa/enum"
	"github.com/relsig/x86isa/register"
)

// DecodedInstruction is the fully populated structural description a
// successful DecodeBuffer call writes (spec section 3.2). The zero value is
// never a valid result — callers must not read a DecodedInstruction after a
// failed decode (spec section 4.1, "Failure semantics").
type DecodedInstruction struct {
	Mnemonic  enum.Mnemonic
	Length    int
	Encoding  enum.EncodingClass
	OpcodeMap enum.OpcodeMap
	Opcode    byte

	OperandSize  int
	AddressWidth int
	StackWidth   enum.StackWidth

	OperandCount int
	Operands     [10]DecodedOperand

	Attributes enum.Attribute
	AVX        AVXBlock
	Raw        RawBlock
	Meta       MetaBlock

	RuntimeAddress uint64
}

// DecodedOperand is one decoded operand slot (spec section 3.3). Slots at
// or beyond OperandCount are left at their zero value, whose Type is
// OperandUnused (spec testable property 4).
type DecodedOperand struct {
	ID         int
	Type       enum.OperandType
	Visibility enum.OperandVisibility
	Action     enum.OperandAction
	Encoding   enum.OperandEncoding

	SizeBits     int
	Element      enum.ElementType
	ElementSize  int
	ElementCount int

	Reg register.Register
	Mem MemOperand
	Ptr PtrOperand
	Imm ImmOperand
}

// MemOperand is the Memory-variant payload of a DecodedOperand.
type MemOperand struct {
	MemType enum.MemType
	Segment register.Register
	Base    register.Register
	Index   register.Register
	Scale   int
	HasDisp bool
	Disp    int64
}

// PtrOperand is the Pointer-variant payload (far seg:offset operands).
type PtrOperand struct {
	Segment uint16
	Offset  uint32
}

// ImmOperand is the Immediate-variant payload; Value holds the bit pattern,
// interpreted as signed or unsigned per IsSigned.
type ImmOperand struct {
	IsSigned   bool
	IsRelative bool
	Value      uint64
}

// SignedValue reinterprets Value as a sign-extended int64 when IsSigned.
func (i ImmOperand) SignedValue() int64 {
	if !i.IsSigned {
		return int64(i.Value)
	}
	return int64(i.Value)
}

// AVXBlock is the AVX/AVX-512/KNC decorator block (spec section 3.2).
type AVXBlock struct {
	VectorLength      enum.VectorLength
	TupleType         enum.TupleType
	ElementSize       enum.ElementType
	CompressedDisp8   int
	MaskMode          enum.MaskMode
	MaskRegister      register.Register
	BroadcastStatic   bool
	Broadcast         enum.BroadcastMode
	Rounding          enum.RoundingMode
	HasSAE            bool
	HasEvictionHint   bool
	Swizzle           enum.SwizzleMode
	Conversion        enum.ConversionMode
}

// RawBlock mirrors the bit-fields of every prefix family plus ModRM/SIB/
// displacement/immediates (spec section 3.2 "Raw block").
type RawBlock struct {
	REX  RawREX
	VEX  RawVEX
	XOP  RawXOP
	EVEX RawEVEX
	MVEX RawMVEX

	ModRM RawModRM
	SIB   RawSIB
	Disp  RawDisp
	Imm   [2]RawImm
}

type RawREX struct {
	Present          bool
	W, R, X, B       bool
}

type RawVEX struct {
	Present   bool
	TwoByte   bool
	R, X, B   bool
	W         bool
	L         bool
	Map       enum.OpcodeMap
	PP        enum.MandatoryPrefix
	VVVV      byte
}

type RawXOP struct {
	Present bool
	R, X, B bool
	W       bool
	L       bool
	Map     enum.OpcodeMap
	PP      enum.MandatoryPrefix
	VVVV    byte
}

type RawEVEX struct {
	Present  bool
	R, X, B  bool
	Rp       bool // R'
	Map      enum.OpcodeMap
	W        bool
	VVVV     byte
	PP       enum.MandatoryPrefix
	Z        bool
	LL       byte
	Vp       bool // V'
	BBit     bool // EVEX.b
	AAA      byte
}

type RawMVEX struct {
	Present bool
	R, X, B bool
	Rp      bool
	Map     enum.OpcodeMap
	W       bool
	VVVV    byte
	PP      enum.MandatoryPrefix
	E       bool
	SSS     byte
	Vp      bool
	KKK     byte
}

type RawModRM struct {
	Present    bool
	Mod, Reg, Rm byte
}

type RawSIB struct {
	Present              bool
	Scale, Index, Base byte
}

type RawDisp struct {
	Present bool
	Value   int64
	Offset  int
	Size    int
}

type RawImm struct {
	Present    bool
	Value      uint64
	IsSigned   bool
	IsRelative bool
	Offset     int
	Size       int
}

// MetaBlock is the category/ISA/branch/exception/accessed-flags summary
// (spec section 3.2 "Meta block").
type MetaBlock struct {
	Category   enum.Category
	ISASet     enum.ISASet
	ISAExt     enum.ISAExt
	BranchType enum.BranchType
	Exception  enum.ExceptionClass
	Flags      enum.AccessedFlags
}
