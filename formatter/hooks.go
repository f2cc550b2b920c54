package formatter

import (
	"strconv"

	"github.com/relsig/x86isa/enum"
	"github.com/relsig/x86isa/register"
)

// Hooks is the trait a Formatter dispatches every rendering step through
// (spec section 4.5 pipeline; section 9 design note replacing the source
// library's function-pointer hook table). IntelHooks is the default
// implementation; callers override one step by embedding IntelHooks in
// their own struct and redefining just that method, then assigning the
// result to Formatter.Hooks - composition stands in for the source
// library's per-hook function-pointer replacement.
type Hooks interface {
	PreInstruction(f *Formatter, b *Buffer, ctx *Context) error
	PostInstruction(f *Formatter, b *Buffer, ctx *Context) error
	PrintPrefixes(f *Formatter, b *Buffer, ctx *Context) error
	PrintMnemonic(f *Formatter, b *Buffer, ctx *Context) error

	PreOperand(f *Formatter, b *Buffer, ctx *Context) error
	PostOperand(f *Formatter, b *Buffer, ctx *Context) error
	FormatOperandREG(f *Formatter, b *Buffer, ctx *Context) error
	FormatOperandMEM(f *Formatter, b *Buffer, ctx *Context) error
	FormatOperandPTR(f *Formatter, b *Buffer, ctx *Context) error
	FormatOperandIMM(f *Formatter, b *Buffer, ctx *Context) error

	PrintRegister(f *Formatter, b *Buffer, ctx *Context, r register.Register) error
	PrintAddressAbs(f *Formatter, b *Buffer, ctx *Context) error
	PrintAddressRel(f *Formatter, b *Buffer, ctx *Context) error
	PrintDisp(f *Formatter, b *Buffer, ctx *Context) error
	PrintImm(f *Formatter, b *Buffer, ctx *Context) error
	PrintMemSize(f *Formatter, b *Buffer, ctx *Context) error
	PrintSegment(f *Formatter, b *Buffer, ctx *Context) error
	PrintDecorator(f *Formatter, b *Buffer, ctx *Context) error
}

// IntelHooks is the default, Intel-syntax implementation of Hooks (spec
// section 4.5/4.6, grounded on the Intel-dialect behavior in FormatterIntel
// of the source library this module's data model is modeled on).
type IntelHooks struct{}

func (IntelHooks) PreInstruction(f *Formatter, b *Buffer, ctx *Context) error  { return nil }
func (IntelHooks) PostInstruction(f *Formatter, b *Buffer, ctx *Context) error { return nil }

func (IntelHooks) PrintPrefixes(f *Formatter, b *Buffer, ctx *Context) error {
	a := ctx.Instruction.Attributes
	switch {
	case a.Has(enum.AttrHasLock):
		b.Append(enum.TokenPrefix, "lock ")
	case a.Has(enum.AttrHasRepne):
		b.Append(enum.TokenPrefix, "repne ")
	case a.Has(enum.AttrHasRepe):
		b.Append(enum.TokenPrefix, "repe ")
	}
	return nil
}

func (IntelHooks) PrintMnemonic(f *Formatter, b *Buffer, ctx *Context) error {
	name := applyCase(ctx.Instruction.Mnemonic.String(), f.Uppercase)
	b.Append(enum.TokenMnemonic, name)
	return nil
}

func (IntelHooks) PreOperand(f *Formatter, b *Buffer, ctx *Context) error {
	if ctx.OperandIndex > 0 {
		b.Append(enum.TokenDelimiter, ", ")
	} else {
		b.Append(enum.TokenWhitespace, " ")
	}
	return nil
}

func (IntelHooks) PostOperand(f *Formatter, b *Buffer, ctx *Context) error { return nil }

func (h IntelHooks) FormatOperandREG(f *Formatter, b *Buffer, ctx *Context) error {
	return f.Hooks.PrintRegister(f, b, ctx, ctx.Operand.Reg)
}

// FormatOperandMEM renders a bracketed memory operand. A RIP/EIP-relative
// operand is rendered through print_address_abs instead of base+index+disp
// once a runtime address is known - matching the source library's
// "absolute" branch in FormatOperandMEM (spec section 4.5, "Address
// printing"); without a runtime address it falls through to the regular
// branch and prints "rip"/"eip" as an ordinary base register. The decorator
// suffix is applied by the caller, not here, so it runs uniformly for every
// operand kind.
func (h IntelHooks) FormatOperandMEM(f *Formatter, b *Buffer, ctx *Context) error {
	mem := ctx.Operand.Mem

	if err := f.Hooks.PrintMemSize(f, b, ctx); err != nil {
		return err
	}
	if err := f.Hooks.PrintSegment(f, b, ctx); err != nil {
		return err
	}

	b.Append(enum.TokenParenOpen, "[")

	// Base-less absolute-displacement addressing (no base, no index) is left
	// to the regular branch below: xutil.CalcAbsoluteAddress only resolves
	// the RIP/EIP-relative case, not a bare disp32 with no base register.
	isAddressForm := mem.Index == register.RegNone &&
		(mem.Base == register.RIP || mem.Base == register.EIP)

	if isAddressForm && mem.HasDisp && ctx.HasRuntimeAddr {
		if err := f.Hooks.PrintAddressAbs(f, b, ctx); err != nil {
			return err
		}
	} else {
		wroteBase := false
		if mem.Base != register.RegNone {
			if err := f.Hooks.PrintRegister(f, b, ctx, mem.Base); err != nil {
				return err
			}
			wroteBase = true
		}
		if mem.Index != register.RegNone {
			if wroteBase {
				b.Append(enum.TokenDelimiter, "+")
			}
			if err := f.Hooks.PrintRegister(f, b, ctx, mem.Index); err != nil {
				return err
			}
			if mem.Scale != 0 {
				b.Append(enum.TokenDelimiter, "*")
				b.Append(enum.TokenImmediate, strconv.Itoa(mem.Scale))
			}
		}
		if mem.HasDisp && mem.Disp != 0 {
			if err := f.Hooks.PrintDisp(f, b, ctx); err != nil {
				return err
			}
		}
	}
	b.Append(enum.TokenParenClose, "]")

	return nil
}

func (h IntelHooks) FormatOperandPTR(f *Formatter, b *Buffer, ctx *Context) error {
	ptr := ctx.Operand.Ptr
	b.Append(enum.TokenImmediate, f.formatHex(uint64(ptr.Segment), f.HexPaddingImm))
	b.Append(enum.TokenDelimiter, ":")
	b.Append(enum.TokenImmediate, f.formatHex(uint64(ptr.Offset), f.HexPaddingImm))
	return nil
}

func (h IntelHooks) FormatOperandIMM(f *Formatter, b *Buffer, ctx *Context) error {
	imm := ctx.Operand.Imm
	if imm.IsRelative {
		if ctx.HasRuntimeAddr {
			return f.Hooks.PrintAddressAbs(f, b, ctx)
		}
		return f.Hooks.PrintAddressRel(f, b, ctx)
	}
	return f.Hooks.PrintImm(f, b, ctx)
}

func (IntelHooks) PrintRegister(f *Formatter, b *Buffer, ctx *Context, r register.Register) error {
	b.Append(enum.TokenRegister, applyCase(r.Name(), f.Uppercase))
	return nil
}

func (IntelHooks) PrintAddressAbs(f *Formatter, b *Buffer, ctx *Context) error {
	addr, err := f.absoluteAddress(ctx)
	if err != nil {
		return err
	}
	padding := f.addrPadding(ctx)
	b.Append(enum.TokenAddressAbs, f.formatHex(addr, padding))
	return nil
}

func (IntelHooks) PrintAddressRel(f *Formatter, b *Buffer, ctx *Context) error {
	addr, err := f.relativeAddress(ctx)
	if err != nil {
		return err
	}
	switch f.AddrFormat {
	case enum.AddrFormatRelativeUnsigned:
		b.Append(enum.TokenAddressRel, "+"+f.formatHex(addr, f.addrPadding(ctx)))
	default:
		b.Append(enum.TokenAddressRel, f.formatSigned(int64(addr), f.addrPadding(ctx)))
	}
	return nil
}

func (IntelHooks) PrintDisp(f *Formatter, b *Buffer, ctx *Context) error {
	disp := ctx.Operand.Mem.Disp
	if f.DispFormat == enum.NumberFormatHexUnsigned {
		b.Append(enum.TokenDisplacement, f.formatHex(uint64(disp), f.HexPaddingDisp))
		return nil
	}
	b.Append(enum.TokenDisplacement, f.formatSigned(disp, f.HexPaddingDisp))
	return nil
}

func (IntelHooks) PrintImm(f *Formatter, b *Buffer, ctx *Context) error {
	imm := ctx.Operand.Imm
	switch f.ImmFormat {
	case enum.NumberFormatHexSigned, enum.NumberFormatHexAuto:
		if imm.IsSigned {
			b.Append(enum.TokenImmediate, f.formatSigned(imm.SignedValue(), f.HexPaddingImm))
			return nil
		}
	}
	value := imm.Value
	if width := ctx.Operand.SizeBits; width > 0 && width < 64 {
		value &= (uint64(1) << width) - 1
	}
	b.Append(enum.TokenImmediate, f.formatHex(value, f.HexPaddingImm))
	return nil
}

func (IntelHooks) PrintMemSize(f *Formatter, b *Buffer, ctx *Context) error {
	size := f.explicitMemSize(ctx)
	name, ok := sizeCast[size]
	if !ok {
		return nil
	}
	b.Append(enum.TokenTypecast, applyCase(name, f.Uppercase)+" ")
	return nil
}

func (IntelHooks) PrintSegment(f *Formatter, b *Buffer, ctx *Context) error {
	seg := ctx.Operand.Mem.Segment
	attrs := ctx.Instruction.Attributes
	show := false
	switch seg {
	case register.ES, register.CS, register.FS, register.GS:
		show = true
	case register.SS:
		show = f.ForceMemSeg || attrs.Has(enum.AttrHasSegmentSS)
	case register.DS:
		show = f.ForceMemSeg || attrs.Has(enum.AttrHasSegmentDS)
	}
	if !show {
		return nil
	}
	if err := f.Hooks.PrintRegister(f, b, ctx, seg); err != nil {
		return err
	}
	b.Append(enum.TokenDelimiter, ":")
	return nil
}

func (IntelHooks) PrintDecorator(f *Formatter, b *Buffer, ctx *Context) error {
	return printDecorators(f, b, ctx)
}

var sizeCast = map[int]string{
	8: "byte ptr", 16: "word ptr", 32: "dword ptr", 48: "fword ptr",
	64: "qword ptr", 80: "tbyte ptr", 128: "xmmword ptr", 256: "ymmword ptr",
	512: "zmmword ptr",
}
