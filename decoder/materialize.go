package decoder

import (
	"github.com/relsig/x86isa/enum"
	"github.com/relsig/x86isa/register"
	"github.com/relsig/x86isa/tables"
)

// materializeOperands fills instr.Operands[0:def.OperandCount] from the
// instruction's static OperandDefinition pool entries plus the bytes
// harvested so far (ModRM, resolved addressing, immediates) (spec section
// 4.1 step 9, "Operand materialization").
func materializeOperands(d *Decoder, instr *DecodedInstruction, def tables.InstructionDefinition, ei tables.EncodingInfo, modrm RawModRM, addr decodedAddress, ctx encodingContext, opcodeByte byte) error {
	immIndex := 0
	for i, opID := range def.Operands {
		opDef := tables.Operand(opID)
		out := &instr.Operands[i]
		out.ID = i
		out.Visibility = opDef.Visibility
		out.Action = opDef.Action
		out.Encoding = opDef.Encoding
		out.Element = opDef.Element
		out.SizeBits = widthFor(opDef, instr.OperandSize)

		switch opDef.Encoding {
		case enum.EncodingSlotModRMReg:
			reg, err := regFromReg(opDef, out.SizeBits, modrm, ctx)
			if err != nil {
				return err
			}
			out.Type = enum.OperandRegister
			out.Reg = reg

		case enum.EncodingSlotModRMRm:
			if addr.isRegister {
				reg, err := regFromRm(opDef, out.SizeBits, modrm, ctx)
				if err != nil {
					return err
				}
				out.Type = enum.OperandRegister
				out.Reg = reg
			} else {
				out.Type = enum.OperandMemory
				out.Mem = memOperandFrom(opDef, addr, ctx)
			}

		case enum.EncodingSlotOpcode:
			reg, err := regFromOpcode(opDef, out.SizeBits, opcodeByte, ctx)
			if err != nil {
				return err
			}
			out.Type = enum.OperandRegister
			out.Reg = reg

		case enum.EncodingSlotNDSNDD:
			reg, err := regFromVVVV(instr, opDef, ctx)
			if err != nil {
				return err
			}
			out.Type = enum.OperandRegister
			out.Reg = reg

		case enum.EncodingSlotImm8, enum.EncodingSlotImm16, enum.EncodingSlotImm32, enum.EncodingSlotImm64:
			raw := instr.Raw.Imm[immIndex]
			immIndex++
			out.Type = enum.OperandImmediate
			out.Imm = ImmOperand{IsSigned: raw.IsSigned, IsRelative: raw.IsRelative, Value: raw.Value}

		case enum.EncodingSlotStatic:
			if opDef.Implicit == nil {
				return enum.NewError(enum.CodeImpossibleInstruction, "static operand slot with no implicit descriptor")
			}
			if opDef.Semantic == enum.SemanticImplicitMem {
				out.Type = enum.OperandMemory
				out.Mem = implicitMemOperand(d, instr, opDef.Implicit)
			} else {
				out.Type = enum.OperandRegister
				out.Reg = implicitRegister(instr, opDef.Implicit)
			}

		default:
			return enum.NewError(enum.CodeImpossibleInstruction, "operand slot has no supported encoding")
		}
	}
	return nil
}

// widthFor picks the operand's logical width for the instruction's
// effective operand size (spec section 3.4, "Width0/Width1/Width2").
func widthFor(opDef tables.OperandDefinition, opSize int) int {
	switch opSize {
	case 16:
		return opDef.Width16
	case 64:
		return opDef.Width64
	default:
		return opDef.Width32
	}
}

func classFor(opDef tables.OperandDefinition, sizeBits int) register.Class {
	switch opDef.Semantic {
	case enum.SemanticXMM:
		return register.ClassXMM
	case enum.SemanticYMM:
		return register.ClassYMM
	case enum.SemanticZMM:
		return register.ClassZMM
	case enum.SemanticMASK:
		return register.ClassMask
	case enum.SemanticMMX:
		return register.ClassMMX
	default:
		switch sizeBits {
		case 8:
			return register.ClassGPR8
		case 16:
			return register.ClassGPR16
		case 64:
			return register.ClassGPR64
		default:
			return register.ClassGPR32
		}
	}
}

// regFromReg resolves a ModRM.reg-encoded register, extended by REX.R/
// VEX.R/XOP.R/EVEX.R plus EVEX.R' for the AVX-512 5-bit register space
// (spec section 4.1 step 9; section 3.2 invariant on ZMM16-31 addressing).
func regFromReg(opDef tables.OperandDefinition, sizeBits int, modrm RawModRM, ctx encodingContext) (register.Register, error) {
	class := classFor(opDef, sizeBits)
	if opDef.Semantic == enum.SemanticMASK {
		r, ok := register.Encode(register.ClassMask, modrm.Reg&0x7)
		if !ok {
			return register.RegNone, enum.NewError(enum.CodeBadRegister, "unknown mask register")
		}
		return r, nil
	}
	rBit, rpBit := rExtensionBits(ctx)
	id := (boolBit(rpBit) << 4) | (boolBit(rBit) << 3) | modrm.Reg
	if class == register.ClassGPR8 {
		rex := ctx.raw.REX.Present || ctx.encoding.HasOwnREXBits()
		r, ok := register.EncodeGPR8(id, rex)
		if !ok {
			return register.RegNone, enum.NewError(enum.CodeBadRegister, "unknown 8-bit GPR")
		}
		return r, nil
	}
	r, ok := register.Encode(class, id)
	if !ok {
		return register.RegNone, enum.NewError(enum.CodeBadRegister, "unknown register for ModRM.reg")
	}
	return r, nil
}

// regFromRm resolves a register-direct ModRM.rm (spec section 4.1 step 9).
// Only the REX.B/VEX.B/XOP.B/EVEX.B extension bit is applied; the EVEX.X'
// 5th-bit trick for register-direct rm forms above id 15 is not modeled.
func regFromRm(opDef tables.OperandDefinition, sizeBits int, modrm RawModRM, ctx encodingContext) (register.Register, error) {
	class := classFor(opDef, sizeBits)
	_, bBit := bExtensionBit(ctx)
	id := (boolBit(bBit) << 3) | modrm.Rm
	if class == register.ClassGPR8 {
		rex := ctx.raw.REX.Present || ctx.encoding.HasOwnREXBits()
		r, ok := register.EncodeGPR8(id, rex)
		if !ok {
			return register.RegNone, enum.NewError(enum.CodeBadRegister, "unknown 8-bit GPR")
		}
		return r, nil
	}
	r, ok := register.Encode(class, id)
	if !ok {
		return register.RegNone, enum.NewError(enum.CodeBadRegister, "unknown register for ModRM.rm")
	}
	return r, nil
}

// regFromOpcode resolves a register id embedded in the opcode's low 3 bits
// (the +rb/+rw/+rd/+rq forms, e.g. 0xB8+r MOV r64, imm64), extended by
// REX.B.
func regFromOpcode(opDef tables.OperandDefinition, sizeBits int, opcodeByte byte, ctx encodingContext) (register.Register, error) {
	class := classFor(opDef, sizeBits)
	_, bBit := bExtensionBit(ctx)
	id := (boolBit(bBit) << 3) | (opcodeByte & 0x7)
	if class == register.ClassGPR8 {
		rex := ctx.raw.REX.Present || ctx.encoding.HasOwnREXBits()
		r, ok := register.EncodeGPR8(id, rex)
		if !ok {
			return register.RegNone, enum.NewError(enum.CodeBadRegister, "unknown 8-bit GPR")
		}
		return r, nil
	}
	r, ok := register.Encode(class, id)
	if !ok {
		return register.RegNone, enum.NewError(enum.CodeBadRegister, "unknown register for opcode-embedded id")
	}
	return r, nil
}

// regFromVVVV resolves the VEX/XOP/EVEX/MVEX.vvvv NDS/NDD operand,
// extended by EVEX.V' for the AVX-512 5-bit register space.
func regFromVVVV(instr *DecodedInstruction, opDef tables.OperandDefinition, ctx encodingContext) (register.Register, error) {
	class := classFor(opDef, 0)
	var vvvv byte
	var vp bool
	switch ctx.encoding {
	case enum.EncodingVEX:
		vvvv = ctx.raw.VEX.VVVV
	case enum.EncodingXOP:
		vvvv = ctx.raw.XOP.VVVV
	case enum.EncodingEVEX:
		vvvv = ctx.raw.EVEX.VVVV
		vp = ctx.raw.EVEX.Vp
	case enum.EncodingMVEX:
		vvvv = ctx.raw.MVEX.VVVV
		vp = ctx.raw.MVEX.Vp
	}
	id := (boolBit(vp) << 4) | vvvv
	r, ok := register.Encode(class, id)
	if !ok {
		return register.RegNone, enum.NewError(enum.CodeBadRegister, "unknown register for vvvv")
	}
	return r, nil
}

func rExtensionBits(ctx encodingContext) (r, rp bool) {
	switch ctx.encoding {
	case enum.EncodingVEX:
		return ctx.raw.VEX.R, false
	case enum.EncodingXOP:
		return ctx.raw.XOP.R, false
	case enum.EncodingEVEX:
		return ctx.raw.EVEX.R, ctx.raw.EVEX.Rp
	case enum.EncodingMVEX:
		return ctx.raw.MVEX.R, ctx.raw.MVEX.Rp
	default:
		return ctx.raw.REX.R, false
	}
}

func bExtensionBit(ctx encodingContext) (x, b bool) {
	switch ctx.encoding {
	case enum.EncodingVEX:
		return ctx.raw.VEX.X, ctx.raw.VEX.B
	case enum.EncodingXOP:
		return ctx.raw.XOP.X, ctx.raw.XOP.B
	case enum.EncodingEVEX:
		return ctx.raw.EVEX.X, ctx.raw.EVEX.B
	case enum.EncodingMVEX:
		return ctx.raw.MVEX.X, ctx.raw.MVEX.B
	default:
		return ctx.raw.REX.X, ctx.raw.REX.B
	}
}

func memOperandFrom(opDef tables.OperandDefinition, addr decodedAddress, ctx encodingContext) MemOperand {
	seg := defaultSegmentFor(addr.base)
	return MemOperand{
		MemType: opDef.MemType,
		Segment: seg,
		Base:    addr.base,
		Index:   addr.index,
		Scale:   addr.scale,
		HasDisp: addr.hasDisp,
		Disp:    addr.disp,
	}
}

func implicitRegister(instr *DecodedInstruction, imp *tables.ImplicitDescriptor) register.Register {
	switch imp.Family {
	case tables.FamilyOSZ:
		r, _ := register.GPRForWidth(imp.FamilyID, instr.OperandSize)
		return r
	case tables.FamilyASZ:
		r, _ := register.GPRForWidth(imp.FamilyID, instr.AddressWidth)
		return r
	case tables.FamilySSZ:
		r, _ := register.GPRForWidth(imp.FamilyID, int(instr.StackWidth))
		return r
	case tables.FamilyIP:
		return register.IPForWidth(instr.AddressWidth)
	case tables.FamilyFlags:
		return register.FlagsForWidth(instr.OperandSize)
	default:
		return imp.StaticReg
	}
}

func implicitMemOperand(d *Decoder, instr *DecodedInstruction, imp *tables.ImplicitDescriptor) MemOperand {
	width := int(instr.StackWidth)
	sp, _ := register.GPRForWidth(4, width)
	return MemOperand{
		MemType: enum.MemTypeMem,
		Segment: register.SS,
		Base:    sp,
		Index:   register.RegNone,
		Scale:   1,
	}
}
