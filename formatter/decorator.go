package formatter

import (
	"github.com/relsig/x86isa/decoder"
	"github.com/relsig/x86isa/enum"
	"github.com/relsig/x86isa/register"
)

// printDecorators appends the EVEX/MVEX braces for the operand just
// written - mask after the first operand, broadcast/conversion/eviction
// after a memory operand, rounding/SAE/swizzle after the last non-immediate
// operand (spec section 4.5, "Decorator printing").
func printDecorators(f *Formatter, b *Buffer, ctx *Context) error {
	avx := ctx.Instruction.AVX
	id := ctx.OperandIndex

	if id == 0 && avx.MaskRegister != register.RegNone && avx.MaskRegister != register.K0 {
		b.Append(enum.TokenDecorator, " {"+avx.MaskRegister.Name()+"}")
		if avx.MaskMode == enum.MaskModeZero {
			b.Append(enum.TokenDecorator, " {z}")
		}
	}

	if ctx.Operand.Type == enum.OperandMemory {
		if name := avx.Broadcast.String(); name != "" {
			b.Append(enum.TokenDecorator, " {"+name+"}")
		}
		if name := avx.Conversion.String(); name != "" {
			b.Append(enum.TokenDecorator, " {"+name+"}")
		}
		if avx.HasEvictionHint {
			b.Append(enum.TokenDecorator, " {eh}")
		}
	}

	if isLastNonImmediate(ctx.Instruction, id) {
		if name := avx.Rounding.String(); name != "" {
			b.Append(enum.TokenDecorator, " {"+name+"}")
		} else if avx.HasSAE {
			b.Append(enum.TokenDecorator, " {sae}")
		}
		if name := avx.Swizzle.String(); name != "" {
			b.Append(enum.TokenDecorator, " {"+name+"}")
		}
	}

	return nil
}

func isLastNonImmediate(instr *decoder.DecodedInstruction, id int) bool {
	for i := id + 1; i < instr.OperandCount; i++ {
		if instr.Operands[i].Type != enum.OperandImmediate {
			return false
		}
	}
	return true
}
