// Package formatter renders a decoder.DecodedInstruction as assembly text
// or a token stream (spec section 4.5/3.6). It never reads instruction
// bytes itself - it only consumes the structural record the decoder package
// already produced.
package formatter

import (
	"github.com/relsig/x86isa/decoder"
	"github.com/relsig/x86isa/enum"
	"github.com/relsig/x86isa/xutil"
)

// Formatter is a bag of presentation properties plus a Hooks
// implementation (spec section 3.6). The zero value is not valid; use
// NewFormatter.
type Formatter struct {
	Style Style

	Uppercase    bool
	ForceMemSeg  bool
	ForceMemSize bool

	AddrFormat enum.AddrFormat
	DispFormat enum.NumberFormat
	ImmFormat  enum.NumberFormat

	HexUppercase bool
	HexPrefix    string
	HexSuffix    string

	HexPaddingAddr uint8
	HexPaddingDisp uint8
	HexPaddingImm  uint8

	Hooks Hooks
}

// Style is a type alias kept local so call sites read formatter.Style
// without a redundant enum. qualifier; it is the same underlying type as
// enum.Style.
type Style = enum.Style

// NewFormatter implements formatter_init(style) -> Formatter (spec section
// 6.2). StyleATT is a recognized enum value this module does not
// implement; constructing with it fails rather than silently rendering
// Intel syntax under an AT&T label.
func NewFormatter(style Style) (*Formatter, error) {
	if style == enum.StyleATT {
		return nil, enum.NewError(enum.CodeInvalidParameter, "AT&T style is not implemented by this formatter")
	}
	if style != enum.StyleIntel && style != enum.StyleIntelMasm {
		return nil, enum.NewError(enum.CodeInvalidParameter, "unknown formatter style")
	}
	return &Formatter{
		Style:          style,
		ImmFormat:      enum.NumberFormatHexUnsigned,
		DispFormat:     enum.NumberFormatHexSigned,
		HexUppercase:   true,
		HexPrefix:      "0x",
		HexPaddingAddr: 2,
		HexPaddingDisp: 2,
		HexPaddingImm:  2,
		Hooks:          IntelHooks{},
	}, nil
}

func (f *Formatter) isMASM() bool {
	return f.Style == enum.StyleIntelMasm
}

// Property identifies one of the settable rendering knobs for
// SetProperty (spec section 6.2, "Property ids").
type Property int

const (
	PropertyUppercase Property = iota
	PropertyForceMemSeg
	PropertyForceMemSize
	PropertyAddrFormat
	PropertyDispFormat
	PropertyImmFormat
	PropertyHexUppercase
	PropertyHexPrefix
	PropertyHexSuffix
	PropertyHexPaddingAddr
	PropertyHexPaddingDisp
	PropertyHexPaddingImm
)

// SetProperty implements formatter_set_property(formatter, property_id,
// value) (spec section 6.2). value's dynamic type must match the property;
// a mismatch or unknown property id returns InvalidParameter.
func (f *Formatter) SetProperty(p Property, value any) error {
	switch p {
	case PropertyUppercase:
		v, ok := value.(bool)
		if !ok {
			return badPropertyValue()
		}
		f.Uppercase = v
	case PropertyForceMemSeg:
		v, ok := value.(bool)
		if !ok {
			return badPropertyValue()
		}
		f.ForceMemSeg = v
	case PropertyForceMemSize:
		v, ok := value.(bool)
		if !ok {
			return badPropertyValue()
		}
		f.ForceMemSize = v
	case PropertyAddrFormat:
		v, ok := value.(enum.AddrFormat)
		if !ok {
			return badPropertyValue()
		}
		f.AddrFormat = v
	case PropertyDispFormat:
		v, ok := value.(enum.NumberFormat)
		if !ok {
			return badPropertyValue()
		}
		f.DispFormat = v
	case PropertyImmFormat:
		v, ok := value.(enum.NumberFormat)
		if !ok {
			return badPropertyValue()
		}
		f.ImmFormat = v
	case PropertyHexUppercase:
		v, ok := value.(bool)
		if !ok {
			return badPropertyValue()
		}
		f.HexUppercase = v
	case PropertyHexPrefix:
		v, ok := value.(string)
		if !ok {
			return badPropertyValue()
		}
		f.HexPrefix = v
	case PropertyHexSuffix:
		v, ok := value.(string)
		if !ok {
			return badPropertyValue()
		}
		f.HexSuffix = v
	case PropertyHexPaddingAddr:
		v, ok := value.(uint8)
		if !ok {
			return badPropertyValue()
		}
		f.HexPaddingAddr = v
	case PropertyHexPaddingDisp:
		v, ok := value.(uint8)
		if !ok {
			return badPropertyValue()
		}
		f.HexPaddingDisp = v
	case PropertyHexPaddingImm:
		v, ok := value.(uint8)
		if !ok {
			return badPropertyValue()
		}
		f.HexPaddingImm = v
	default:
		return enum.NewError(enum.CodeInvalidParameter, "unknown formatter property id")
	}
	return nil
}

func badPropertyValue() error {
	return enum.NewError(enum.CodeInvalidParameter, "value type does not match property")
}

// FormatInstruction implements format_instruction(formatter, instr, buf,
// len, runtime_ip) -> string (spec section 4.5/6.2). Pass hasRuntimeIP
// false to format without a known execution address, matching the source
// library's ZYDIS_RUNTIME_ADDRESS_NONE sentinel.
func (f *Formatter) FormatInstruction(instr *decoder.DecodedInstruction, runtimeIP uint64, hasRuntimeIP bool) (string, error) {
	b := newBuffer(false)
	if err := f.render(instr, runtimeIP, hasRuntimeIP, b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// TokenizeInstruction implements tokenize_instruction(...) -> first_token
// (spec section 6.2), returning the full token list a caller walks with
// token_next/token_get_value.
func (f *Formatter) TokenizeInstruction(instr *decoder.DecodedInstruction, runtimeIP uint64, hasRuntimeIP bool) ([]Token, error) {
	b := newBuffer(true)
	if err := f.render(instr, runtimeIP, hasRuntimeIP, b); err != nil {
		return nil, err
	}
	return b.Tokens(), nil
}

// FormatOperand implements format_operand(formatter, instr, op_index, buf,
// len, runtime_ip) -> string (spec section 6.2): renders a single operand
// in isolation, without the mnemonic or siblings.
func (f *Formatter) FormatOperand(instr *decoder.DecodedInstruction, opIndex int, runtimeIP uint64, hasRuntimeIP bool) (string, error) {
	if instr == nil {
		return "", enum.NewError(enum.CodeInvalidParameter, "nil instruction")
	}
	if opIndex < 0 || opIndex >= instr.OperandCount {
		return "", enum.NewError(enum.CodeInvalidParameter, "operand index out of range")
	}
	if f.isMASM() {
		hasRuntimeIP = false
	}
	b := newBuffer(false)
	ctx := &Context{
		Instruction: instr, Operand: &instr.Operands[opIndex], OperandIndex: opIndex,
		RuntimeAddress: runtimeIP, HasRuntimeAddr: hasRuntimeIP,
	}
	if err := f.formatOperandBody(b, ctx); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (f *Formatter) render(instr *decoder.DecodedInstruction, runtimeIP uint64, hasRuntimeIP bool, b *Buffer) error {
	if instr == nil {
		return enum.NewError(enum.CodeInvalidParameter, "nil instruction")
	}
	if f.isMASM() {
		hasRuntimeIP = false
	}
	ctx := &Context{Instruction: instr, RuntimeAddress: runtimeIP, HasRuntimeAddr: hasRuntimeIP}

	if err := runHook(b, func() error { return f.Hooks.PreInstruction(f, b, ctx) }); err != nil {
		return err
	}
	if err := runHook(b, func() error { return f.Hooks.PrintPrefixes(f, b, ctx) }); err != nil {
		return err
	}
	if err := runHook(b, func() error { return f.Hooks.PrintMnemonic(f, b, ctx) }); err != nil {
		return err
	}

	for i := 0; i < instr.OperandCount; i++ {
		op := &instr.Operands[i]
		if op.Visibility == enum.VisibilityHidden {
			continue
		}
		opCtx := &Context{
			Instruction: instr, Operand: op, OperandIndex: i,
			RuntimeAddress: runtimeIP, HasRuntimeAddr: ctx.HasRuntimeAddr,
		}
		if err := runHook(b, func() error { return f.Hooks.PreOperand(f, b, opCtx) }); err != nil {
			return err
		}
		if err := f.formatOperandBody(b, opCtx); err != nil {
			return err
		}
		if err := runHook(b, func() error { return f.Hooks.PostOperand(f, b, opCtx) }); err != nil {
			return err
		}
	}

	return runHook(b, func() error { return f.Hooks.PostInstruction(f, b, ctx) })
}

// formatOperandBody dispatches to the operand-kind-specific hook and then
// always runs the decorator hook (spec section 4.5, "Decorator printing"
// runs after every operand, not only memory operands - e.g. an EVEX mask
// register decorator attaches to operand 0 even when it is a plain
// register).
func (f *Formatter) formatOperandBody(b *Buffer, ctx *Context) error {
	return runHook(b, func() error {
		var err error
		switch ctx.Operand.Type {
		case enum.OperandRegister:
			err = f.Hooks.FormatOperandREG(f, b, ctx)
		case enum.OperandMemory:
			err = f.Hooks.FormatOperandMEM(f, b, ctx)
		case enum.OperandPointer:
			err = f.Hooks.FormatOperandPTR(f, b, ctx)
		case enum.OperandImmediate:
			err = f.Hooks.FormatOperandIMM(f, b, ctx)
		default:
			return enum.NewError(enum.CodeInvalidOperation, "cannot format an unused operand")
		}
		if err != nil {
			return err
		}
		return f.Hooks.PrintDecorator(f, b, ctx)
	})
}

// explicitMemSize implements the "explicit-size inference" rule (spec
// section 4.5): a memory operand's typecast is only emitted when its size
// cannot be inferred from an adjacent sibling operand, or when
// ForceMemSize is set.
func (f *Formatter) explicitMemSize(ctx *Context) int {
	if f.ForceMemSize {
		return ctx.Operand.SizeBits
	}
	instr := ctx.Instruction
	id := ctx.OperandIndex
	switch id {
	case 0:
		if instr.OperandCount < 2 {
			return ctx.Operand.SizeBits
		}
		sibling := instr.Operands[1]
		if sibling.Type == enum.OperandUnused || sibling.Type == enum.OperandImmediate {
			return ctx.Operand.SizeBits
		}
		if sibling.SizeBits != ctx.Operand.SizeBits {
			return ctx.Operand.SizeBits
		}
	case 1, 2:
		sibling := instr.Operands[id-1]
		if sibling.SizeBits != ctx.Operand.SizeBits {
			return ctx.Operand.SizeBits
		}
	}
	return 0
}

func (f *Formatter) absoluteAddress(ctx *Context) (uint64, error) {
	return xutil.CalcAbsoluteAddress(ctx.Instruction, ctx.OperandIndex, ctx.RuntimeAddress, 0)
}

// relativeAddress resolves a RIP-relative or branch-target operand as if
// the instruction executed at address 0 - the same "fold the instruction's
// own length into the base" computation as absoluteAddress, just anchored
// at zero instead of a caller-supplied runtime address. This is how the
// source library's non-absolute address hook renders a target when no
// runtime address is known: not as a bare signed displacement, but as that
// zero-anchored resolved value (spec section 4.5, "Address printing").
func (f *Formatter) relativeAddress(ctx *Context) (uint64, error) {
	return xutil.CalcAbsoluteAddress(ctx.Instruction, ctx.OperandIndex, 0, 0)
}

func (f *Formatter) addrPadding(ctx *Context) uint8 {
	if f.HexPaddingAddr != 0 {
		return f.HexPaddingAddr
	}
	switch ctx.Instruction.StackWidth {
	case enum.StackWidth16:
		return 4
	case enum.StackWidth32:
		return 8
	default:
		return 16
	}
}
