package decoder

import (
	"github.com/relsig/x86isa/enum"
	"github.com/relsig/x86isa/register"
	"github.com/relsig/x86isa/tables"
)

// semanticPostPass fills the meta block from the matched definition and
// derives the AVX decorator block from the EVEX/MVEX fields harvested
// earlier, validating the mask and VSIB invariants along the way (spec
// section 4.1 step 9, "Semantic post-pass").
func semanticPostPass(d *Decoder, instr *DecodedInstruction, def tables.InstructionDefinition) error {
	instr.Meta = MetaBlock{
		Category:   def.Category,
		ISASet:     def.ISASet,
		ISAExt:     def.ISAExt,
		BranchType: def.Branch,
		Exception:  def.Except,
		Flags:      def.Flags,
	}
	if def.Legacy != nil {
		if def.Legacy.AcceptsLock {
			instr.Attributes = instr.Attributes.Set(enum.AttrAcceptsLock)
		}
		if def.Legacy.AcceptsRep {
			instr.Attributes = instr.Attributes.Set(enum.AttrAcceptsRep)
		}
		if def.Legacy.AcceptsBranchHints {
			instr.Attributes = instr.Attributes.Set(enum.AttrAcceptsBranchHints)
		}
		if def.Legacy.AcceptsSegment {
			instr.Attributes = instr.Attributes.Set(enum.AttrAcceptsSegment)
		}
	}

	switch instr.Encoding {
	case enum.EncodingEVEX:
		if err := fillEVEXBlock(instr, def); err != nil {
			return err
		}
	case enum.EncodingMVEX:
		if err := fillMVEXBlock(instr, def); err != nil {
			return err
		}
	}

	for i := 0; i < instr.OperandCount; i++ {
		op := &instr.Operands[i]
		if op.Type != enum.OperandMemory {
			continue
		}
		if op.Mem.MemType.IsVSIB() && op.Mem.Index == register.RegNone {
			return enum.NewError(enum.CodeInvalidVsib, "vsib operand has no index register")
		}
	}

	return nil
}

// fillEVEXBlock derives the AVXBlock for an EVEX-encoded instruction: vector
// length from LL, mask mode/register from z/aaa validated against the
// definition's MaskPolicy, and the EVEX.b bit's meaning (broadcast, static
// rounding, or pure SAE) per the definition's EVEXExtension (spec section
// 3.2/4.1 step 9, "AVX/EVEX semantic derivation").
func fillEVEXBlock(instr *DecodedInstruction, def tables.InstructionDefinition) error {
	ext := def.EVEX
	if ext == nil {
		return enum.NewError(enum.CodeImpossibleInstruction, "EVEX-encoded definition missing EVEXExtension")
	}
	raw := instr.Raw.EVEX

	vl := vectorLengthFromLL(raw.LL)
	instr.AVX.VectorLength = vl
	instr.AVX.TupleType = ext.TupleType
	instr.AVX.ElementSize = ext.ElementSizeClass

	if err := applyMaskFields(instr, ext.MaskPolicy, raw.AAA, raw.Z); err != nil {
		return err
	}

	switch ext.BMeaning {
	case tables.EVEXBBroadcast:
		if raw.BBit {
			instr.AVX.BroadcastStatic = true
			elemBytes := ext.ElementSizeClass.SizeBytes()
			scale := ext.TupleType.CompressedDisp8Scale(elemBytes, vl, true)
			instr.AVX.CompressedDisp8 = scale
			instr.AVX.Broadcast = broadcastModeFor(vl, elemBytes)
			for i := 0; i < instr.OperandCount; i++ {
				op := &instr.Operands[i]
				if op.Type == enum.OperandMemory {
					op.Mem.Disp *= int64(scale)
				}
			}
		} else {
			elemBytes := ext.ElementSizeClass.SizeBytes()
			instr.AVX.CompressedDisp8 = ext.TupleType.CompressedDisp8Scale(elemBytes, vl, false)
			for i := 0; i < instr.OperandCount; i++ {
				op := &instr.Operands[i]
				if op.Type == enum.OperandMemory {
					op.Mem.Disp *= int64(instr.AVX.CompressedDisp8)
				}
			}
		}
	case tables.EVEXBRoundingControl:
		if raw.BBit {
			instr.AVX.Rounding = roundingFromLL(raw.LL)
			instr.AVX.HasSAE = true
		}
	case tables.EVEXBSAE:
		if raw.BBit {
			instr.AVX.HasSAE = true
		}
	}

	return nil
}

func fillMVEXBlock(instr *DecodedInstruction, def tables.InstructionDefinition) error {
	ext := def.MVEX
	if ext == nil {
		return enum.NewError(enum.CodeImpossibleInstruction, "MVEX-encoded definition missing MVEXExtension")
	}
	raw := instr.Raw.MVEX
	instr.AVX.VectorLength = enum.VectorLength512

	if err := applyMaskFields(instr, ext.MaskPolicy, raw.KKK, false); err != nil {
		return err
	}

	switch ext.Functionality {
	case enum.MVEXFuncSwizzleConversion:
		if raw.E {
			instr.AVX.Conversion = conversionFromSSS(raw.SSS)
		} else {
			instr.AVX.Swizzle = swizzleFromSSS(raw.SSS)
		}
	case enum.MVEXFuncRounding:
		if raw.E {
			instr.AVX.Rounding = roundingFromSSS(raw.SSS)
		}
	case enum.MVEXFuncSAE:
		instr.AVX.HasSAE = raw.E
	case enum.MVEXFuncEvictionHint:
		instr.AVX.HasEvictionHint = raw.E
	}

	return nil
}

// applyMaskFields validates an aaa/kkk mask-register field against the
// definition's MaskPolicy and records the resulting MaskMode/MaskRegister
// (spec section 3.4 "mask_policy", section 7 CodeInvalidMask).
func applyMaskFields(instr *DecodedInstruction, policy enum.MaskPolicy, aaa byte, zeroing bool) error {
	switch policy {
	case enum.MaskPolicyForbidden:
		if aaa != 0 {
			return enum.NewError(enum.CodeInvalidMask, "mask register encoded on an instruction that forbids masking")
		}
	case enum.MaskPolicyRequired:
		if aaa == 0 {
			return enum.NewError(enum.CodeInvalidMask, "mask register required but k0 encoded")
		}
	}
	if aaa == 0 {
		instr.AVX.MaskMode = enum.MaskModeNone
		return nil
	}
	reg, ok := register.Encode(register.ClassMask, aaa)
	if !ok {
		return enum.NewError(enum.CodeBadRegister, "unknown mask register")
	}
	instr.AVX.MaskRegister = reg
	if zeroing {
		instr.AVX.MaskMode = enum.MaskModeZero
	} else {
		instr.AVX.MaskMode = enum.MaskModeMerge
	}
	return nil
}

func vectorLengthFromLL(ll byte) enum.VectorLength {
	switch ll {
	case 0:
		return enum.VectorLength128
	case 1:
		return enum.VectorLength256
	default:
		return enum.VectorLength512
	}
}

func roundingFromLL(ll byte) enum.RoundingMode {
	switch ll {
	case 0:
		return enum.RoundingRN
	case 1:
		return enum.RoundingRD
	case 2:
		return enum.RoundingRU
	default:
		return enum.RoundingRZ
	}
}

func roundingFromSSS(sss byte) enum.RoundingMode {
	switch sss & 0x3 {
	case 0:
		return enum.RoundingRN
	case 1:
		return enum.RoundingRD
	case 2:
		return enum.RoundingRU
	default:
		return enum.RoundingRZ
	}
}

func swizzleFromSSS(sss byte) enum.SwizzleMode {
	switch sss {
	case 0:
		return enum.SwizzleDCBA
	case 1:
		return enum.SwizzleCDAB
	case 2:
		return enum.SwizzleBADC
	case 3:
		return enum.SwizzleDACB
	case 4:
		return enum.SwizzleAAAA
	case 5:
		return enum.SwizzleBBBB
	case 6:
		return enum.SwizzleCCCC
	default:
		return enum.SwizzleDDDD
	}
}

func conversionFromSSS(sss byte) enum.ConversionMode {
	switch sss {
	case 1:
		return enum.ConversionFloat16
	case 2:
		return enum.ConversionSint8
	case 3:
		return enum.ConversionUint8
	case 4:
		return enum.ConversionSint16
	case 5:
		return enum.ConversionUint16
	default:
		return enum.ConversionNone
	}
}

// broadcastModeFor derives the "1toN" descriptor from the vector length and
// element size (spec section 3.2 invariant relating broadcast mode to
// vector length and element size).
func broadcastModeFor(vl enum.VectorLength, elemBytes int) enum.BroadcastMode {
	if elemBytes == 0 {
		return enum.BroadcastNone
	}
	lanes := int(vl) / 8 / elemBytes
	switch lanes {
	case 2:
		return enum.Broadcast1To2
	case 4:
		return enum.Broadcast1To4
	case 8:
		return enum.Broadcast1To8
	case 16:
		return enum.Broadcast1To16
	default:
		return enum.BroadcastNone
	}
}
