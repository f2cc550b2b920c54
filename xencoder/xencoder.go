// Package xencoder implements the assemble direction of this module: given
// an EncoderRequest describing a mnemonic and its operands, it selects a
// matching instruction definition from the tables package and emits the
// byte sequence a decoder would read back to an equivalent
// decoder.DecodedInstruction (spec section 4.6/6.3).
//
// Encoding support is scoped to the Legacy encoding class. VEX/EVEX/MVEX/
// XOP/3DNow byte synthesis is not implemented - see DESIGN.md for why. The
// request and operand shapes deliberately reuse decoder's operand payload
// types rather than duplicating them, since the source contract describes
// EncoderOperand as "the same shape as decoded operands minus
// introspection".
package xencoder

import (
	"github.com/relsig/x86isa/decoder"
	"github.com/relsig/x86isa/enum"
	"github.com/relsig/x86isa/register"
	"github.com/relsig/x86isa/tables"
)

// EncoderOperand is one operand of an EncoderRequest: the same payload
// union decoder.DecodedOperand carries (Reg/Mem/Ptr/Imm), minus the
// introspection fields (ID, Visibility, Action, Encoding, sizing) a caller
// building a request has no reason to fill in.
type EncoderOperand struct {
	Type enum.OperandType
	Reg  register.Register
	Mem  decoder.MemOperand
	Ptr  decoder.PtrOperand
	Imm  decoder.ImmOperand
}

// EncoderAVX carries the subset of the AVX decorator block a request can
// specify (spec section 4.6: "AVX block (vector length, mask mode+reg)").
type EncoderAVX struct {
	VectorLength enum.VectorLength
	MaskMode     enum.MaskMode
	MaskRegister register.Register
}

// EncoderRequest describes the instruction encoder_encode_instruction
// builds (spec section 4.6/6.3). OperandCount/Operands list only the
// operands a caller supplies explicitly; an implicit operand a matched
// definition requires (e.g. PUSH's implicit stack write) is synthesized by
// the encoder and does not need a slot here.
type EncoderRequest struct {
	MachineMode enum.MachineMode
	Mnemonic    enum.Mnemonic
	Attributes  enum.Attribute
	Encoding    enum.EncodingClass
	BranchType  enum.BranchType

	OperandCount int
	Operands     [5]EncoderOperand

	AVX EncoderAVX
}

// EncodeInstruction implements encoder_encode_instruction(request) ->
// bytes (spec section 4.6/6.3). It walks the definition pool for the first
// Legacy-encoded definition whose mnemonic, branch type (when the request
// names one), and explicit operand shapes all match, then emits that
// definition's byte sequence.
func EncodeInstruction(req *EncoderRequest) ([]byte, error) {
	if req == nil {
		return nil, enum.NewError(enum.CodeInvalidParameter, "nil request")
	}
	if req.Encoding != enum.EncodingLegacy {
		return nil, enum.NewError(enum.CodeImpossibleInstruction,
			"xencoder only synthesizes bytes for the Legacy encoding class")
	}

	for id := 1; id < tables.DefinitionCount(); id++ {
		def := tables.DefinitionAt(id)
		if def.Encoding != enum.EncodingLegacy || def.Mnemonic != req.Mnemonic {
			continue
		}
		if req.BranchType != enum.BranchTypeNone && def.Branch != req.BranchType {
			continue
		}
		if !operandsMatch(def, req) {
			continue
		}
		return buildLegacy(def, req)
	}
	return nil, enum.NewError(enum.CodeImpossibleInstruction,
		"no Legacy-encoded definition matches this request")
}

// explicitOperandIDs returns def's operand-pool indices that are not
// implicit - the slots a caller's EncoderRequest is expected to fill.
func explicitOperandIDs(def tables.InstructionDefinition) []int {
	ids := make([]int, 0, len(def.Operands))
	for _, opID := range def.Operands {
		if tables.Operand(opID).Visibility == enum.VisibilityImplicit {
			continue
		}
		ids = append(ids, opID)
	}
	return ids
}

func operandsMatch(def tables.InstructionDefinition, req *EncoderRequest) bool {
	explicit := explicitOperandIDs(def)
	if len(explicit) != req.OperandCount {
		return false
	}
	for i, opID := range explicit {
		if !operandMatches(tables.Operand(opID), req.Operands[i]) {
			return false
		}
	}
	return true
}

func operandMatches(def tables.OperandDefinition, got EncoderOperand) bool {
	switch def.Semantic {
	case enum.SemanticGPR8, enum.SemanticGPR16, enum.SemanticGPR32,
		enum.SemanticGPR64, enum.SemanticGPR16_32_64:
		if got.Type == enum.OperandRegister {
			return isGPRClass(got.Reg.Class())
		}
		return def.AllowMemory && got.Type == enum.OperandMemory
	case enum.SemanticXMM, enum.SemanticYMM, enum.SemanticZMM, enum.SemanticMASK:
		if got.Type == enum.OperandRegister {
			return true
		}
		return def.AllowMemory && got.Type == enum.OperandMemory
	case enum.SemanticIMM, enum.SemanticREL:
		return got.Type == enum.OperandImmediate
	case enum.SemanticMEM, enum.SemanticMEMVSIBx, enum.SemanticMEMVSIBy, enum.SemanticMEMVSIBz:
		return got.Type == enum.OperandMemory
	default:
		return false
	}
}

func isGPRClass(c register.Class) bool {
	switch c {
	case register.ClassGPR8, register.ClassGPR16, register.ClassGPR32, register.ClassGPR64:
		return true
	default:
		return false
	}
}

// buildLegacy emits a Legacy-class instruction's bytes: an optional REX
// prefix, the opcode byte (plain, +r, or followed by a ModRM byte), and any
// immediate (spec section 3.2/4.2 describe the same physical layout in
// reverse, for decoding).
func buildLegacy(def tables.InstructionDefinition, req *EncoderRequest) ([]byte, error) {
	explicit := explicitOperandIDs(def)

	var w, r, x, bBit bool
	var opcodeReg, modrmReg, modrmRm *EncoderOperand
	regWidth := 0 // widest GPR operand's width, drives immediate sizing

	for i, opID := range explicit {
		opDef := tables.Operand(opID)
		op := req.Operands[i]
		switch opDef.Encoding {
		case enum.EncodingSlotOpcode:
			// The opcode-embedded-register leaves this module's decode tree
			// wires (e.g. 0xB8..0xBF) are fixed-width per definition rather
			// than REX.W-conditional - see the comment at their tree entry
			// - so REX.W is never derived from this slot's register, only
			// REX.B for an extended register id. Its width still drives
			// immediate sizing, since that's fixed by the definition itself.
			opcodeReg = &req.Operands[i]
			if op.Reg.ID() >= 8 {
				bBit = true
			}
			regWidth = op.Reg.Width(req.MachineMode)
		case enum.EncodingSlotModRMReg:
			modrmReg = &req.Operands[i]
			if op.Type == enum.OperandRegister {
				regWidth = op.Reg.Width(req.MachineMode)
				if regWidth == 64 {
					w = true
				}
				if op.Reg.ID() >= 8 {
					r = true
				}
			}
		case enum.EncodingSlotModRMRm:
			if op.Type == enum.OperandMemory {
				return nil, enum.NewError(enum.CodeImpossibleInstruction,
					"xencoder does not synthesize memory-operand addressing; only register-direct r/m forms")
			}
			modrmRm = &req.Operands[i]
			regWidth = op.Reg.Width(req.MachineMode)
			if regWidth == 64 {
				w = true
			}
			if op.Reg.ID() >= 8 {
				bBit = true
			}
		}
	}

	info := tables.EncodingInfoAt(def.EncodingInfo)

	var out []byte
	if w || r || bBit {
		out = append(out, computeREX(w, r, x, bBit))
	}

	opcode := def.Opcode
	if opcodeReg != nil {
		opcode += opcodeReg.Reg.ID() & 0x7
	}
	out = append(out, opcode)

	if info.HasModRM {
		var regField, rmField byte
		if modrmReg != nil {
			regField = modrmReg.Reg.ID() & 0x7
		}
		if modrmRm != nil {
			rmField = modrmRm.Reg.ID() & 0x7
		}
		out = append(out, 0xC0|(regField<<3)|rmField) // mod=3: register-direct
	}

	effWidth := regWidth
	if effWidth == 0 {
		effWidth = req.MachineMode.DefaultOperandWidth()
	}

	if info.Imm0.Present {
		imm, err := immediateOperand(explicit, def, 0, req)
		if err != nil {
			return nil, err
		}
		out = appendImm(out, imm, immSize(info.Imm0, effWidth))
	}
	if info.Imm1.Present {
		imm, err := immediateOperand(explicit, def, 1, req)
		if err != nil {
			return nil, err
		}
		out = appendImm(out, imm, immSize(info.Imm1, effWidth))
	}

	return out, nil
}

// immediateOperand locates the which-th immediate-encoded explicit operand
// (EncodingSlotImm8/16/32/64) and returns its request value.
func immediateOperand(explicit []int, def tables.InstructionDefinition, which int, req *EncoderRequest) (decoder.ImmOperand, error) {
	seen := 0
	for i, opID := range explicit {
		switch tables.Operand(opID).Encoding {
		case enum.EncodingSlotImm8, enum.EncodingSlotImm16, enum.EncodingSlotImm32, enum.EncodingSlotImm64:
			if seen == which {
				return req.Operands[i].Imm, nil
			}
			seen++
		}
	}
	return decoder.ImmOperand{}, enum.NewError(enum.CodeImpossibleInstruction, "missing immediate operand for definition")
}

func immSize(info tables.ImmediateInfo, effWidth int) int {
	switch effWidth {
	case 64:
		return info.Size64
	case 16:
		return info.Size16
	default:
		return info.Size32
	}
}

func appendImm(out []byte, imm decoder.ImmOperand, size int) []byte {
	v := imm.Value
	for i := 0; i < size; i++ {
		out = append(out, byte(v))
		v >>= 8
	}
	return out
}

func computeREX(w, r, x, b bool) byte {
	rex := byte(0x40)
	if w {
		rex |= 1 << 3
	}
	if r {
		rex |= 1 << 2
	}
	if x {
		rex |= 1 << 1
	}
	if b {
		rex |= 1 << 0
	}
	return rex
}
