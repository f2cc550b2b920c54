package formatter

import "github.com/relsig/x86isa/decoder"

// Context is the read-only view a hook gets of the instruction (and, for
// per-operand hooks, the one operand) it was invoked for (spec section 4.5
// pipeline). RuntimeAddress is the instruction's own runtime_ip unless the
// MASM dialect has zeroed it to force relative-style RIP printing (spec
// section 4.5, "Address printing").
type Context struct {
	Instruction    *decoder.DecodedInstruction
	Operand        *decoder.DecodedOperand
	OperandIndex   int
	RuntimeAddress uint64
	HasRuntimeAddr bool
}
