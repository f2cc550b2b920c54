package tables

import (
	"github.com/relsig/x86isa/enum"
)

// operandPool is the flat array InstructionDefinition.Operands indexes
// into (spec section 3.4: "index into the operand-definition pool"). Index
// 0 is reserved unused so a zero index reads as a bug rather than a silent
// alias to a real operand.
var operandPool []OperandDefinition

func addOperand(d OperandDefinition) int {
	operandPool = append(operandPool, d)
	return len(operandPool) - 1
}

// Operand pool indices for the representative instruction corpus. Named by
// role rather than by mnemonic since several mnemonics share a shape.
var (
	opModRMRegGPR   int // ModRM.reg, width-promoting GPR, read/write per def
	opModRMRmGPR    int // ModRM.rm, GPR or memory r/m
	opOpcodeRegGPR  int // register id embedded in the opcode's low 3 bits (+rd/+rq forms)
	opImm8          int
	opImm32         int
	opImm64         int
	opRel32         int
	opRel8          int

	opXMMModRMReg int
	opXMMModRMRm  int // xmm or memory
	opXMMNDS      int // VEX/EVEX.vvvv NDS source

	opZMMModRMReg int
	opZMMModRMRm  int
	opZMMNDS      int
	opMaskK       int // EVEX.aaa mask register destination/selector

	opImplicitAccumulator64 int // RAX-family, sized to operand size
	opImplicitRSPPushPop    int // implicit stack-pointer memory write/read

	opVSIBzIndexMem int // gather-style VSIBz memory operand
)

func init() {
	operandPool = make([]OperandDefinition, 1, 32)

	opModRMRegGPR = addOperand(OperandDefinition{
		Semantic: enum.SemanticGPR16_32_64, Visibility: enum.VisibilityExplicit,
		Action: enum.ActionReadWrite, Element: enum.ElementStruct,
		Width16: 16, Width32: 32, Width64: 64, Encoding: enum.EncodingSlotModRMReg,
	})
	opModRMRmGPR = addOperand(OperandDefinition{
		Semantic: enum.SemanticGPR16_32_64, Visibility: enum.VisibilityExplicit,
		Action: enum.ActionReadWrite, Element: enum.ElementStruct,
		Width16: 16, Width32: 32, Width64: 64, Encoding: enum.EncodingSlotModRMRm,
		AllowMemory: true, MemType: enum.MemTypeMem,
	})
	opOpcodeRegGPR = addOperand(OperandDefinition{
		Semantic: enum.SemanticGPR16_32_64, Visibility: enum.VisibilityExplicit,
		Action: enum.ActionWrite, Element: enum.ElementStruct,
		Width16: 16, Width32: 32, Width64: 64, Encoding: enum.EncodingSlotOpcode,
	})
	opImm8 = addOperand(OperandDefinition{
		Semantic: enum.SemanticIMM, Visibility: enum.VisibilityExplicit,
		Action: enum.ActionRead, Element: enum.ElementInt8,
		Width16: 8, Width32: 8, Width64: 8, Encoding: enum.EncodingSlotImm8,
	})
	opImm32 = addOperand(OperandDefinition{
		Semantic: enum.SemanticIMM, Visibility: enum.VisibilityExplicit,
		Action: enum.ActionRead, Element: enum.ElementInt32,
		Width16: 16, Width32: 32, Width64: 32, Encoding: enum.EncodingSlotImm32,
	})
	opImm64 = addOperand(OperandDefinition{
		Semantic: enum.SemanticIMM, Visibility: enum.VisibilityExplicit,
		Action: enum.ActionRead, Element: enum.ElementInt64,
		Width16: 16, Width32: 32, Width64: 64, Encoding: enum.EncodingSlotImm64,
	})
	opRel32 = addOperand(OperandDefinition{
		Semantic: enum.SemanticREL, Visibility: enum.VisibilityExplicit,
		Action: enum.ActionRead, Element: enum.ElementInt32,
		Width16: 32, Width32: 32, Width64: 32, Encoding: enum.EncodingSlotImm32,
	})
	opRel8 = addOperand(OperandDefinition{
		Semantic: enum.SemanticREL, Visibility: enum.VisibilityExplicit,
		Action: enum.ActionRead, Element: enum.ElementInt8,
		Width16: 8, Width32: 8, Width64: 8, Encoding: enum.EncodingSlotImm8,
	})

	opXMMModRMReg = addOperand(OperandDefinition{
		Semantic: enum.SemanticXMM, Visibility: enum.VisibilityExplicit,
		Action: enum.ActionWrite, Element: enum.ElementFloat64,
		Width16: 128, Width32: 128, Width64: 128, Encoding: enum.EncodingSlotModRMReg,
	})
	opXMMModRMRm = addOperand(OperandDefinition{
		Semantic: enum.SemanticXMM, Visibility: enum.VisibilityExplicit,
		Action: enum.ActionRead, Element: enum.ElementFloat64,
		Width16: 128, Width32: 128, Width64: 128, Encoding: enum.EncodingSlotModRMRm,
		AllowMemory: true, MemType: enum.MemTypeMem,
	})
	opXMMNDS = addOperand(OperandDefinition{
		Semantic: enum.SemanticXMM, Visibility: enum.VisibilityExplicit,
		Action: enum.ActionRead, Element: enum.ElementFloat64,
		Width16: 128, Width32: 128, Width64: 128, Encoding: enum.EncodingSlotNDSNDD,
	})

	opZMMModRMReg = addOperand(OperandDefinition{
		Semantic: enum.SemanticZMM, Visibility: enum.VisibilityExplicit,
		Action: enum.ActionWrite, Element: enum.ElementFloat32,
		Width16: 512, Width32: 512, Width64: 512, Encoding: enum.EncodingSlotModRMReg,
	})
	opZMMModRMRm = addOperand(OperandDefinition{
		Semantic: enum.SemanticZMM, Visibility: enum.VisibilityExplicit,
		Action: enum.ActionRead, Element: enum.ElementFloat32,
		Width16: 512, Width32: 512, Width64: 512, Encoding: enum.EncodingSlotModRMRm,
		AllowMemory: true, MemType: enum.MemTypeMem,
	})
	opZMMNDS = addOperand(OperandDefinition{
		Semantic: enum.SemanticZMM, Visibility: enum.VisibilityExplicit,
		Action: enum.ActionRead, Element: enum.ElementFloat32,
		Width16: 512, Width32: 512, Width64: 512, Encoding: enum.EncodingSlotNDSNDD,
	})
	opMaskK = addOperand(OperandDefinition{
		Semantic: enum.SemanticMASK, Visibility: enum.VisibilityExplicit,
		Action: enum.ActionWrite, Element: enum.ElementStruct,
		Width16: 64, Width32: 64, Width64: 64, Encoding: enum.EncodingSlotModRMReg,
	})

	opImplicitAccumulator64 = addOperand(OperandDefinition{
		Semantic: enum.SemanticImplicitReg, Visibility: enum.VisibilityImplicit,
		Action: enum.ActionWrite, Element: enum.ElementStruct,
		Width16: 16, Width32: 32, Width64: 64, Encoding: enum.EncodingSlotStatic,
		Implicit: &ImplicitDescriptor{Family: FamilyOSZ, FamilyID: 0},
	})
	opImplicitRSPPushPop = addOperand(OperandDefinition{
		Semantic: enum.SemanticImplicitMem, Visibility: enum.VisibilityImplicit,
		Action: enum.ActionReadWrite, Element: enum.ElementStruct,
		Width16: 16, Width32: 32, Width64: 64, Encoding: enum.EncodingSlotStatic,
		Implicit: &ImplicitDescriptor{Family: FamilySSZ, BaseAction: enum.ActionReadWrite},
	})

	opVSIBzIndexMem = addOperand(OperandDefinition{
		Semantic: enum.SemanticMEMVSIBz, Visibility: enum.VisibilityExplicit,
		Action: enum.ActionRead, Element: enum.ElementFloat32,
		Width16: 32, Width32: 32, Width64: 32, Encoding: enum.EncodingSlotModRMRm,
		MemType: enum.MemTypeVSIBz,
	})
}

// Operand looks up a pooled OperandDefinition by index.
func Operand(id int) OperandDefinition {
	return operandPool[id]
}
