package decoder

import (
	"github.com/relsig/x86isa/enum"
	"github.com/relsig/x86isa/tables"
)

// DecodeBuffer implements decode_buffer(decoder, bytes, runtime_ip) ->
// DecodedInstruction (spec section 4.1/6.1). It reads at most 15 bytes and
// either returns a fully populated instruction or an error; on error the
// returned pointer is nil and callers must not treat the call as having
// produced partial state (spec section 4.1, "Failure semantics").
func (d *Decoder) DecodeBuffer(buf []byte, runtimeIP uint64) (*DecodedInstruction, error) {
	if len(buf) == 0 {
		return nil, enum.NewError(enum.CodeNoMoreData, "empty input buffer")
	}
	window := buf
	if len(window) > 15 {
		window = window[:15]
	}
	c := newCursor(window)

	legacy, err := absorbLegacyPrefixes(c)
	if err != nil {
		return nil, err
	}

	ctx, err := dispatchEncoding(c, d, legacy)
	if err != nil {
		return nil, err
	}

	instr := &DecodedInstruction{
		Encoding:       ctx.encoding,
		Raw:            ctx.raw,
		RuntimeAddress: runtimeIP,
		StackWidth:     d.stackWidth,
	}

	instr.AddressWidth = d.mode.DefaultAddressWidth()
	if legacy.addressSize67 {
		instr.AddressWidth = toggleWidth(instr.AddressWidth, 32, 16)
	}

	opSize := d.mode.DefaultOperandWidth()
	if legacy.operandSize66 {
		opSize = toggleWidth(opSize, 32, 16)
	}
	rexW := ctx.raw.REX.Present && ctx.raw.REX.W
	vexW := (ctx.raw.VEX.Present && ctx.raw.VEX.W) || (ctx.raw.XOP.Present && ctx.raw.XOP.W) ||
		(ctx.raw.EVEX.Present && ctx.raw.EVEX.W) || (ctx.raw.MVEX.Present && ctx.raw.MVEX.W)
	if (rexW || vexW) && d.mode.Is64() {
		opSize = 64
	}
	instr.OperandSize = opSize

	defRef, opcodeByte, pre, err := walkToDefinition(c, d, ctx, legacy)
	if err != nil {
		return nil, err
	}
	eiID, defID := tables.Global.DefinitionAt(defRef)
	def := tables.DefinitionAt(defID)
	ei := tables.EncodingInfoAt(eiID)

	if err := validatePrefixAcceptance(legacy, def); err != nil {
		return nil, enum.NewErrorAt(err.(*enum.Error).Code, c.pos, err.Error())
	}

	instr.Mnemonic = def.Mnemonic
	instr.Opcode = opcodeByte
	instr.OpcodeMap = opcodeMapFor(ctx)
	instr.OperandCount = def.OperandCount
	instr.Attributes = baseAttributes(ctx, legacy)

	var modrm RawModRM
	var addr decodedAddress
	var sib RawSIB
	haveModRM := false
	if pre != nil {
		modrm, sib, instr.Raw.Disp, addr = pre.modrm, pre.sib, pre.disp, pre.addr
		haveModRM = true
	} else if ei.HasModRM {
		modrm, err = harvestModRM(c)
		if err != nil {
			return nil, err
		}
		if ei.ForceRegForm && modrm.Mod != 3 {
			return nil, enum.NewErrorAt(enum.CodeDecodingError, c.pos, "instruction requires register-direct ModRM.mod=11")
		}
		addr, sib, instr.Raw.Disp, err = resolveAddressing(c, modrm, ctx.raw.REX, vexXBBit(ctx, "B"), vexXBBit(ctx, "X"))
		if err != nil {
			return nil, err
		}
		haveModRM = true
	}
	if haveModRM {
		instr.Raw.ModRM = modrm
		instr.Raw.SIB = sib
		instr.Attributes = instr.Attributes.Set(enum.AttrHasModRM)
		if sib.Present {
			instr.Attributes = instr.Attributes.Set(enum.AttrHasSIB)
		}
	}

	if imm, consumed, rerr := harvestImmediate(c, ei.Imm0, opSize); rerr != nil {
		return nil, rerr
	} else if consumed {
		instr.Raw.Imm[0] = imm
	}
	if imm, consumed, rerr := harvestImmediate(c, ei.Imm1, opSize); rerr != nil {
		return nil, rerr
	} else if consumed {
		instr.Raw.Imm[1] = imm
	}

	if err := materializeOperands(d, instr, def, ei, modrm, addr, ctx, opcodeByte); err != nil {
		return nil, err
	}

	if err := semanticPostPass(d, instr, def); err != nil {
		return nil, err
	}

	instr.Length = c.pos
	return instr, nil
}

func toggleWidth(current, a, b int) int {
	if current == a {
		return b
	}
	return a
}

func vexXBBit(ctx encodingContext, which string) bool {
	switch {
	case ctx.raw.VEX.Present:
		if which == "X" {
			return ctx.raw.VEX.X
		}
		return ctx.raw.VEX.B
	case ctx.raw.XOP.Present:
		if which == "X" {
			return ctx.raw.XOP.X
		}
		return ctx.raw.XOP.B
	case ctx.raw.EVEX.Present:
		if which == "X" {
			return ctx.raw.EVEX.X
		}
		return ctx.raw.EVEX.B
	case ctx.raw.MVEX.Present:
		if which == "X" {
			return ctx.raw.MVEX.X
		}
		return ctx.raw.MVEX.B
	default:
		return false
	}
}

func opcodeMapFor(ctx encodingContext) enum.OpcodeMap {
	switch {
	case ctx.encoding == enum.Encoding3DNow:
		return enum.OpcodeMap0F0F
	case ctx.raw.VEX.Present:
		return ctx.raw.VEX.Map
	case ctx.raw.XOP.Present:
		return ctx.raw.XOP.Map
	case ctx.raw.EVEX.Present:
		return ctx.raw.EVEX.Map
	case ctx.raw.MVEX.Present:
		return ctx.raw.MVEX.Map
	default:
		return enum.OpcodeMapDefault
	}
}

func baseAttributes(ctx encodingContext, legacy legacyPrefixState) enum.Attribute {
	var a enum.Attribute
	if ctx.raw.REX.Present {
		a = a.Set(enum.AttrHasREX)
	}
	if ctx.raw.VEX.Present {
		a = a.Set(enum.AttrHasVEX)
	}
	if ctx.raw.XOP.Present {
		a = a.Set(enum.AttrHasXOP)
	}
	if ctx.raw.EVEX.Present {
		a = a.Set(enum.AttrHasEVEX)
	}
	if ctx.raw.MVEX.Present {
		a = a.Set(enum.AttrHasMVEX)
	}
	if legacy.hasLock {
		a = a.Set(enum.AttrHasLock)
	}
	if legacy.hasF3 {
		a = a.Set(enum.AttrHasRep | enum.AttrHasRepe)
	}
	if legacy.hasF2 {
		a = a.Set(enum.AttrHasRepne)
	}
	if legacy.operandSize66 {
		a = a.Set(enum.AttrHasOperandSize)
	}
	if legacy.addressSize67 {
		a = a.Set(enum.AttrHasAddressSize)
	}
	if legacy.segOverride != 0xFF {
		a = a.Set(enum.SegmentAttributeFor(legacy.segOverride))
	}
	return a
}

func validatePrefixAcceptance(legacy legacyPrefixState, def tables.InstructionDefinition) error {
	if legacy.hasLock && (def.Legacy == nil || !def.Legacy.AcceptsLock) {
		return enum.NewError(enum.CodeIllegalLock, "lock prefix on instruction that does not accept it")
	}
	return nil
}

func harvestImmediate(c *cursor, info tables.ImmediateInfo, opSize int) (RawImm, bool, error) {
	if !info.Present {
		return RawImm{}, false, nil
	}
	size := info.Size32
	switch opSize {
	case 16:
		size = info.Size16
	case 64:
		size = info.Size64
	}
	if size == 0 {
		return RawImm{}, false, nil
	}
	offset := c.pos
	var v uint64
	for i := 0; i < size; i++ {
		b, ok := c.next()
		if !ok {
			return RawImm{}, false, enum.NewErrorAt(enum.CodeNoMoreData, c.pos, "truncated immediate")
		}
		v |= uint64(b) << (8 * i)
	}
	if info.IsSigned {
		sv := signExtend(int64(v), size)
		v = uint64(sv)
	}
	return RawImm{
		Present: true, Value: v, IsSigned: info.IsSigned, IsRelative: info.IsRelative,
		Offset: offset, Size: size,
	}, true, nil
}
