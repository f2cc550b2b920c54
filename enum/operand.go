package enum

// OperandType is the coarse kind of a decoded or defined operand (spec
// section 3.3/3.4).
type OperandType int

const (
	OperandUnused OperandType = iota
	OperandRegister
	OperandMemory
	OperandPointer
	OperandImmediate
)

func (t OperandType) String() string {
	switch t {
	case OperandUnused:
		return "unused"
	case OperandRegister:
		return "register"
	case OperandMemory:
		return "memory"
	case OperandPointer:
		return "pointer"
	case OperandImmediate:
		return "immediate"
	default:
		return "unknown-operand-type"
	}
}

// OperandVisibility records whether an operand is written in the assembly
// text, implied by the mnemonic, or entirely invisible bookkeeping (spec
// section 3.3).
type OperandVisibility int

const (
	VisibilityExplicit OperandVisibility = iota
	VisibilityImplicit
	VisibilityHidden
)

// OperandAction records how an instruction uses an operand (spec section
// 3.3).
type OperandAction int

const (
	ActionRead OperandAction = iota
	ActionWrite
	ActionReadWrite
	ActionCondRead
	ActionCondWrite
	ActionReadCondWrite
	ActionCondReadWrite
)

// IsRead reports whether the action implies the operand's value is
// (possibly conditionally) consumed.
func (a OperandAction) IsRead() bool {
	switch a {
	case ActionRead, ActionReadWrite, ActionCondRead, ActionReadCondWrite, ActionCondReadWrite:
		return true
	default:
		return false
	}
}

// IsWrite reports whether the action implies the operand's value is
// (possibly conditionally) produced.
func (a OperandAction) IsWrite() bool {
	switch a {
	case ActionWrite, ActionReadWrite, ActionCondWrite, ActionReadCondWrite, ActionCondReadWrite:
		return true
	default:
		return false
	}
}

// OperandEncoding identifies which bit-field of the instruction supplies an
// operand's register/memory/immediate value (spec section 3.3, "encoding
// slot").
type OperandEncoding int

const (
	EncodingSlotNone OperandEncoding = iota
	EncodingSlotModRMReg
	EncodingSlotModRMRm
	EncodingSlotOpcode
	EncodingSlotNDSNDD
	EncodingSlotIS4
	EncodingSlotMask
	EncodingSlotImm8
	EncodingSlotImm16
	EncodingSlotImm32
	EncodingSlotImm64
	EncodingSlotDisp8
	EncodingSlotDisp16
	EncodingSlotDisp32
	EncodingSlotDisp64
	EncodingSlotStatic // implicit register/memory with no moving field
)

// SemanticOperandType is the operand-definition-level semantic type (spec
// section 3.4: "ImplicitReg, ImplicitMem, GPR8... MEM_VSIBx...").
type SemanticOperandType int

const (
	SemanticImplicitReg SemanticOperandType = iota
	SemanticImplicitMem
	SemanticGPR8
	SemanticGPR16
	SemanticGPR32
	SemanticGPR64
	SemanticGPR16_32_64 // width-promoting GPR (16/32 in legacy, 64 with REX.W)
	SemanticFPR
	SemanticMMX
	SemanticXMM
	SemanticYMM
	SemanticZMM
	SemanticBND
	SemanticSREG
	SemanticCR
	SemanticDR
	SemanticMASK
	SemanticMEM
	SemanticMEMVSIBx
	SemanticMEMVSIBy
	SemanticMEMVSIBz
	SemanticIMM
	SemanticREL
	SemanticPTR
	SemanticAGEN
	SemanticMOFFS
)

// MemType distinguishes the addressing-mode flavor of a memory operand
// (spec section 3.3).
type MemType int

const (
	MemTypeMem MemType = iota
	MemTypeAGen
	MemTypeMIB
	MemTypeVSIBx
	MemTypeVSIBy
	MemTypeVSIBz
)

func (t MemType) String() string {
	switch t {
	case MemTypeMem:
		return "mem"
	case MemTypeAGen:
		return "agen"
	case MemTypeMIB:
		return "mib"
	case MemTypeVSIBx:
		return "vsibx"
	case MemTypeVSIBy:
		return "vsiby"
	case MemTypeVSIBz:
		return "vsibz"
	default:
		return "unknown-mem-type"
	}
}

// IsVSIB reports whether t requires a vector-register index (spec section
// 3.3 invariant, testable property 5).
func (t MemType) IsVSIB() bool {
	return t == MemTypeVSIBx || t == MemTypeVSIBy || t == MemTypeVSIBz
}
