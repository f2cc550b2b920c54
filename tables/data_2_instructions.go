package tables

import (
	"github.com/relsig/x86isa/enum"
)

// encodingInfoPool and definitionPool are the parallel arrays a decoder
// Definition leaf's (encodingInfoID, definitionID) pair indexes into (spec
// section 4.2 "Shape"). Index 0 of each is reserved.
var encodingInfoPool []EncodingInfo
var definitionPool []InstructionDefinition

func addEncodingInfo(e EncodingInfo) int {
	encodingInfoPool = append(encodingInfoPool, e)
	return len(encodingInfoPool) - 1
}

func addDefinition(d InstructionDefinition) int {
	definitionPool = append(definitionPool, d)
	return len(definitionPool) - 1
}

// Definition ids for the representative corpus (spec SIZE NOTE). Grouped by
// the scenario or encoding class each exercises.
var (
	DefMOVRmGPR    int // S1: MOV r/m64, r64
	DefMOVGPRImm64 int // S5: MOV r64, imm (encoder preference)
	DefRETNear     int // S5: RET
	DefPUSHImm8    int // S6: PUSH imm8
	DefJMPRel32    int // S4: JMP rel32

	DefVCMPPDVex   int // S2: VEX VCMPPD xmm,xmm,xmm,imm8
	DefVCMPPSEvex  int // S3: EVEX VCMPPS zmm{k}{z},zmm,mem{bcst},imm8
	DefVADDPSMvex  int // MVEX representative
	Def3DNowPFADD  int // 3DNow representative
	DefXOPVPROTB   int // XOP representative
)

func init() {
	encodingInfoPool = make([]EncodingInfo, 1, 16)
	definitionPool = make([]InstructionDefinition, 1, 16)

	// --- S1: MOV r/m64, r64 (opcode 0x89) ---
	eiMOVRmGPR := addEncodingInfo(EncodingInfo{HasModRM: true})
	DefMOVRmGPR = addDefinition(InstructionDefinition{
		Mnemonic: enum.MnemonicMOV, OperandCount: 2,
		Operands:     []int{opModRMRmGPR, opModRMRegGPR},
		EncodingInfo: eiMOVRmGPR, Opcode: 0x89, Encoding: enum.EncodingLegacy,
		Category: enum.CategoryDataTransfer, ISASet: enum.ISASetI86,
		Legacy: &LegacyExtension{AcceptsSegment: true},
	})

	// --- S5: MOV r64, imm64 (opcode 0xB8+r with REX.W, full 8-byte imm) ---
	eiMOVGPRImm64 := addEncodingInfo(EncodingInfo{
		Imm0: ImmediateInfo{Present: true, Size16: 2, Size32: 4, Size64: 8},
	})
	DefMOVGPRImm64 = addDefinition(InstructionDefinition{
		Mnemonic: enum.MnemonicMOV, OperandCount: 2,
		Operands:     []int{opOpcodeRegGPR, opImm64},
		EncodingInfo: eiMOVGPRImm64, Opcode: 0xB8, Encoding: enum.EncodingLegacy,
		Category: enum.CategoryDataTransfer, ISASet: enum.ISASetAMD64,
		Legacy: &LegacyExtension{},
	})

	// --- S5: RET near (opcode 0xC3, no operands) ---
	eiRET := addEncodingInfo(EncodingInfo{})
	DefRETNear = addDefinition(InstructionDefinition{
		Mnemonic: enum.MnemonicRET, OperandCount: 0,
		EncodingInfo: eiRET, Opcode: 0xC3, Encoding: enum.EncodingLegacy,
		Category: enum.CategoryControlFlow, ISASet: enum.ISASetI86,
		Branch: enum.BranchTypeNear64,
		Legacy: &LegacyExtension{},
	})

	// --- S6: PUSH imm8 (opcode 0x6A), sign-extended to operand size ---
	eiPUSHImm8 := addEncodingInfo(EncodingInfo{
		Imm0: ImmediateInfo{Present: true, Size16: 1, Size32: 1, Size64: 1, IsSigned: true},
	})
	DefPUSHImm8 = addDefinition(InstructionDefinition{
		Mnemonic: enum.MnemonicPUSH, OperandCount: 2,
		Operands:     []int{opImplicitRSPPushPop, opImm8},
		EncodingInfo: eiPUSHImm8, Opcode: 0x6A, Encoding: enum.EncodingLegacy,
		Category: enum.CategoryDataTransfer, ISASet: enum.ISASetI386,
		Legacy: &LegacyExtension{},
	})

	// --- S4: JMP rel32 (opcode 0xE9) ---
	eiJMPRel32 := addEncodingInfo(EncodingInfo{
		Imm0: ImmediateInfo{Present: true, Size16: 2, Size32: 4, Size64: 4, IsSigned: true, IsRelative: true},
	})
	DefJMPRel32 = addDefinition(InstructionDefinition{
		Mnemonic: enum.MnemonicJMP, OperandCount: 1,
		Operands:     []int{opRel32},
		EncodingInfo: eiJMPRel32, Opcode: 0xE9, Encoding: enum.EncodingLegacy,
		Category: enum.CategoryControlFlow, ISASet: enum.ISASetI86,
		Branch: enum.BranchTypeNear32,
		Legacy: &LegacyExtension{AcceptsBranchHints: true},
	})

	// --- S2: VEX VCMPPD xmm1, xmm2, xmm3/m128, imm8 ---
	eiVCMPPD := addEncodingInfo(EncodingInfo{
		HasModRM: true,
		Imm0:     ImmediateInfo{Present: true, Size16: 1, Size32: 1, Size64: 1},
	})
	DefVCMPPDVex = addDefinition(InstructionDefinition{
		Mnemonic: enum.MnemonicVCMPPD, OperandCount: 4,
		Operands:     []int{opXMMModRMReg, opXMMNDS, opXMMModRMRm, opImm8},
		EncodingInfo: eiVCMPPD, Opcode: 0xC2, Encoding: enum.EncodingVEX,
		Category: enum.CategoryAVX, ISASet: enum.ISASetAVX,
		Except: enum.ExceptionClass4,
	})

	// --- S3: EVEX VCMPPS k1{k2}, zmm2, zmm3/m512/m32bcst, imm8 ---
	eiVCMPPSEvex := addEncodingInfo(EncodingInfo{
		HasModRM: true,
		Imm0:     ImmediateInfo{Present: true, Size16: 1, Size32: 1, Size64: 1},
	})
	DefVCMPPSEvex = addDefinition(InstructionDefinition{
		Mnemonic: enum.MnemonicVCMPPS512, OperandCount: 4,
		Operands:     []int{opMaskK, opZMMNDS, opZMMModRMRm, opImm8},
		EncodingInfo: eiVCMPPSEvex, Opcode: 0xC2, Encoding: enum.EncodingEVEX,
		Category: enum.CategoryAVX512, ISASet: enum.ISASetAVX512F,
		Except: enum.ExceptionClass4,
		EVEX: &EVEXExtension{
			VectorLengthClass: enum.VectorLength512,
			TupleType:         enum.TupleFV,
			ElementSizeClass:  enum.ElementFloat32,
			BMeaning:          EVEXBBroadcast,
			MaskPolicy:        enum.MaskPolicyAllowed,
		},
	})

	// --- MVEX representative: VADDPS zmm{k1}, zmm, zmm/m512/m32bcst {swizzle/conv/eh} ---
	eiVADDPSMvex := addEncodingInfo(EncodingInfo{HasModRM: true})
	DefVADDPSMvex = addDefinition(InstructionDefinition{
		Mnemonic: enum.MnemonicVADDPSMVEX, OperandCount: 3,
		Operands:     []int{opZMMModRMReg, opZMMNDS, opZMMModRMRm},
		EncodingInfo: eiVADDPSMvex, Opcode: 0x58, Encoding: enum.EncodingMVEX,
		Category: enum.CategoryAVX512, ISASet: enum.ISASetKNC,
		MVEX: &MVEXExtension{
			Functionality: enum.MVEXFuncSwizzleConversion,
			MaskPolicy:    enum.MaskPolicyAllowed,
		},
	})

	// --- 3DNow representative: PFADD mm1, mm2/m64 (0F 0F /r 0x9E) ---
	ei3DNowPFADD := addEncodingInfo(EncodingInfo{HasModRM: true})
	Def3DNowPFADD = addDefinition(InstructionDefinition{
		Mnemonic: enum.Mnemonic3DNowPFADD, OperandCount: 2,
		Operands:     []int{opModRMRegGPR, opModRMRmGPR}, // mm-class reuse: same slot shape
		EncodingInfo: ei3DNowPFADD, Opcode: 0x9E, Encoding: enum.Encoding3DNow,
		Category: enum.Category3DNow, ISASet: enum.ISASetAMD3DNow,
	})

	// --- XOP representative: VPROTB xmm1, xmm2/m128, xmm3/m128 (XOP.M8 opcode 0x90) ---
	eiXOPVPROTB := addEncodingInfo(EncodingInfo{HasModRM: true})
	DefXOPVPROTB = addDefinition(InstructionDefinition{
		Mnemonic: enum.MnemonicVPROTB, OperandCount: 3,
		Operands:     []int{opXMMModRMReg, opXMMModRMRm, opXMMNDS},
		EncodingInfo: eiXOPVPROTB, Opcode: 0x90, Encoding: enum.EncodingXOP,
		Category: enum.CategoryXOP, ISASet: enum.ISASetAMDXOP,
	})
}

// EncodingInfoAt looks up a pooled EncodingInfo by index.
func EncodingInfoAt(id int) EncodingInfo {
	return encodingInfoPool[id]
}

// DefinitionAt looks up a pooled InstructionDefinition by index.
func DefinitionAt(id int) InstructionDefinition {
	return definitionPool[id]
}

// DefinitionCount returns the number of pooled definitions, including the
// reserved index 0 slot. An encoder searching for a mnemonic match walks
// 1..DefinitionCount()-1 with DefinitionAt.
func DefinitionCount() int {
	return len(definitionPool)
}
