// Package xutil collects the small cross-cutting queries that don't belong
// to decode, encode, or format specifically: absolute-address arithmetic,
// accessed-flag filtering, mnemonic/register name lookup, and library
// version/feature reporting (spec section 4.7).
package xutil

import (
	"github.com/relsig/x86isa/decoder"
	"github.com/relsig/x86isa/enum"
	"github.com/relsig/x86isa/register"
)

// CalcAbsoluteAddress implements calc_absolute_address(instr, operand_index,
// runtime_ip, stack_width_override) -> u64 (spec section 4.7, "Absolute
// address"; testable property 6). Both IP-relative cases the source format
// defines - a relative immediate operand and a memory operand based on
// RIP/EIP - are measured from the address of the byte following the
// instruction, not its first byte, so the instruction's own Length is
// folded in before the displacement or immediate.
//
// stackWidthOverride selects the width the result is masked to; pass 0 to
// use the instruction's own StackWidth.
func CalcAbsoluteAddress(instr *decoder.DecodedInstruction, operandIndex int, runtimeIP uint64, stackWidthOverride enum.StackWidth) (uint64, error) {
	if instr == nil {
		return 0, enum.NewError(enum.CodeInvalidParameter, "nil instruction")
	}
	if operandIndex < 0 || operandIndex >= instr.OperandCount {
		return 0, enum.NewError(enum.CodeInvalidParameter, "operand index out of range")
	}
	op := instr.Operands[operandIndex]

	width := stackWidthOverride
	if width == 0 {
		width = instr.StackWidth
	}

	nextIP := runtimeIP + uint64(instr.Length)

	var disp int64
	switch op.Type {
	case enum.OperandImmediate:
		if !op.Imm.IsRelative {
			return 0, enum.NewError(enum.CodeInvalidOperation, "operand is not a relative immediate")
		}
		disp = op.Imm.SignedValue()
	case enum.OperandMemory:
		if op.Mem.Base != register.RIP && op.Mem.Base != register.EIP {
			return 0, enum.NewError(enum.CodeInvalidOperation, "memory operand is not RIP/EIP-relative")
		}
		if !op.Mem.HasDisp {
			return 0, enum.NewError(enum.CodeInvalidOperation, "memory operand has no displacement")
		}
		disp = op.Mem.Disp
	default:
		return 0, enum.NewError(enum.CodeInvalidOperation, "operand kind has no absolute address")
	}

	addr := uint64(int64(nextIP) + disp)
	return maskToWidth(addr, width), nil
}

func maskToWidth(addr uint64, width enum.StackWidth) uint64 {
	switch width {
	case enum.StackWidth16:
		return addr & 0xFFFF
	case enum.StackWidth32:
		return addr & 0xFFFFFFFF
	default:
		return addr
	}
}

// AccessedFlagsByAction implements accessed_flags_by_action(instr, action)
// -> CPUFlag (spec section 4.7), a thin filter over the Meta block's full
// flag-effect summary.
func AccessedFlagsByAction(instr *decoder.DecodedInstruction, action enum.FlagAction) enum.CPUFlag {
	if instr == nil {
		return 0
	}
	return instr.Meta.Flags.ByAction(action)
}

// MnemonicGetString implements mnemonic_get_string(mnemonic) -> string
// (spec section 4.7/6.5).
func MnemonicGetString(m enum.Mnemonic) string {
	return m.String()
}

// RegisterGetString implements register_get_string(reg) -> string.
func RegisterGetString(r register.Register) string {
	return r.Name()
}

// RegisterGetClass implements register_get_class(reg) -> RegisterClass.
func RegisterGetClass(r register.Register) register.Class {
	return r.Class()
}

// RegisterGetID implements register_get_id(reg) -> byte, the register's
// encoding value within its class.
func RegisterGetID(r register.Register) byte {
	return r.ID()
}

// RegisterGetWidth implements register_get_width(reg, mode) -> int, the
// register's width in bits under the given machine mode.
func RegisterGetWidth(r register.Register, mode enum.MachineMode) int {
	return r.Width(mode)
}

// RegisterGetLargestEnclosing implements
// register_get_largest_enclosing(reg, mode) -> Register, e.g. AL -> RAX in
// 64-bit mode or AL -> EAX outside it.
func RegisterGetLargestEnclosing(r register.Register, mode enum.MachineMode) register.Register {
	return register.LargestEnclosing(mode.Is64(), r)
}

// version is the packed major/minor/patch/build word get_version reports
// (spec section 4.7, SPEC_FULL "packed version word"): one uint64 with each
// component in its own 16-bit lane so callers can compare versions with a
// single integer comparison instead of parsing a string.
const (
	versionMajor = 1
	versionMinor = 0
	versionPatch = 0
	versionBuild = 0
)

// GetVersion implements get_version() -> u64 (spec section 6.5).
func GetVersion() uint64 {
	return uint64(versionMajor)<<48 | uint64(versionMinor)<<32 | uint64(versionPatch)<<16 | uint64(versionBuild)
}

// Feature names the compiled-in optional decode/encode capabilities a build
// can be queried for (spec section 6.5, "is_feature_enabled").
type Feature int

const (
	FeatureEVEX Feature = iota
	FeatureMVEX
	Feature3DNow
	FeatureXOP
)

// IsFeatureEnabled implements is_feature_enabled(feature) -> bool. Every
// feature this build knows about is always compiled in; the function exists
// so callers can write capability checks that degrade gracefully against a
// future build with a feature flagged off.
func IsFeatureEnabled(f Feature) bool {
	switch f {
	case FeatureEVEX, FeatureMVEX, Feature3DNow, FeatureXOP:
		return true
	default:
		return false
	}
}
