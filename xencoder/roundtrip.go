package xencoder

import (
	"github.com/relsig/x86isa/decoder"
	"github.com/relsig/x86isa/enum"
)

// DecodedToRequest implements encoder_decoded_to_request(instr) -> request
// (spec section 4.6/6.3): it preserves mnemonic, encoding, explicit operand
// composition, AVX decorators, and the branch type, dropping the implicit
// operands and decode-only introspection fields an EncoderRequest has no
// slot for.
func DecodedToRequest(instr *decoder.DecodedInstruction) (*EncoderRequest, error) {
	if instr == nil {
		return nil, enum.NewError(enum.CodeInvalidParameter, "nil instruction")
	}

	req := &EncoderRequest{
		MachineMode: machineModeForStackWidth(instr.StackWidth),
		Mnemonic:    instr.Mnemonic,
		Attributes:  instr.Attributes,
		Encoding:    instr.Encoding,
		BranchType:  instr.Meta.BranchType,
		AVX: EncoderAVX{
			VectorLength: instr.AVX.VectorLength,
			MaskMode:     instr.AVX.MaskMode,
			MaskRegister: instr.AVX.MaskRegister,
		},
	}

	for i := 0; i < instr.OperandCount; i++ {
		op := instr.Operands[i]
		if op.Visibility != enum.VisibilityExplicit {
			continue
		}
		if req.OperandCount >= len(req.Operands) {
			return nil, enum.NewError(enum.CodeInvalidOperation, "instruction has more explicit operands than a request can carry")
		}
		req.Operands[req.OperandCount] = EncoderOperand{
			Type: op.Type,
			Reg:  op.Reg,
			Mem:  op.Mem,
			Ptr:  op.Ptr,
			Imm:  op.Imm,
		}
		req.OperandCount++
	}

	return req, nil
}

// machineModeForStackWidth picks a representative MachineMode for a decoded
// instruction's stack width. StackWidth32/16 are shared by more than one
// MachineMode (long-compatibility vs legacy); this module has no way to
// recover which one a given decode ran under, so it picks the plain legacy
// mode in each case - good enough for re-encoding byte-identical output,
// since Legacy-class encoding doesn't depend on that distinction.
func machineModeForStackWidth(width enum.StackWidth) enum.MachineMode {
	switch width {
	case enum.StackWidth64:
		return enum.ModeLong64
	case enum.StackWidth32:
		return enum.ModeLegacy32
	default:
		return enum.ModeLegacy16
	}
}
