package enum

// MachineMode selects the addressing/operand-size defaults the decoder and
// encoder operate under (spec section 3.1).
type MachineMode int

const (
	ModeLong64 MachineMode = iota
	ModeLongCompat32
	ModeLongCompat16
	ModeLegacy32
	ModeLegacy16
	ModeReal16
)

func (m MachineMode) String() string {
	switch m {
	case ModeLong64:
		return "long64"
	case ModeLongCompat32:
		return "long-compat32"
	case ModeLongCompat16:
		return "long-compat16"
	case ModeLegacy32:
		return "legacy32"
	case ModeLegacy16:
		return "legacy16"
	case ModeReal16:
		return "real16"
	default:
		return "unknown-mode"
	}
}

// Is64 reports whether the mode runs in 64-bit long mode, which gates a
// large number of decoder choices (REX legality, VEX/EVEX 2-byte vs ModRM
// disambiguation, default address width of 64).
func (m MachineMode) Is64() bool {
	return m == ModeLong64
}

// DefaultAddressWidth returns the address width a fresh instruction starts
// with before any 0x67 override is applied.
func (m MachineMode) DefaultAddressWidth() int {
	switch m {
	case ModeLong64:
		return 64
	case ModeLongCompat32, ModeLegacy32:
		return 32
	case ModeLongCompat16, ModeLegacy16, ModeReal16:
		return 16
	default:
		return 32
	}
}

// DefaultOperandWidth returns the operand width a fresh instruction starts
// with before any 0x66 override or REX.W promotion is applied.
func (m MachineMode) DefaultOperandWidth() int {
	switch m {
	case ModeLong64, ModeLongCompat32, ModeLegacy32:
		return 32
	case ModeLongCompat16, ModeLegacy16, ModeReal16:
		return 16
	default:
		return 32
	}
}

// StackWidth is the width of the stack pointer and of implicit
// push/pop/call/ret operand sizing; derived from MachineMode by default,
// and settable to 16 or 32 independently in every mode except Long64,
// which only accepts 64 (see ValidStackWidth).
type StackWidth int

const (
	StackWidth16 StackWidth = 16
	StackWidth32 StackWidth = 32
	StackWidth64 StackWidth = 64
)

// DefaultStackWidth returns the stack width implied by mode alone, used when
// the caller does not override it explicitly in decoder_init.
func (m MachineMode) DefaultStackWidth() StackWidth {
	switch m {
	case ModeLong64:
		return StackWidth64
	case ModeLongCompat32, ModeLegacy32:
		return StackWidth32
	default:
		return StackWidth16
	}
}

// ValidStackWidth reports whether width is a legal stack width for mode, per
// decoder_init's "rejects invalid mode/width combinations" contract.
func (m MachineMode) ValidStackWidth(width StackWidth) bool {
	switch m {
	case ModeLong64:
		return width == StackWidth64
	case ModeLongCompat32, ModeLongCompat16:
		return width == StackWidth16 || width == StackWidth32
	case ModeLegacy32, ModeLegacy16, ModeReal16:
		return width == StackWidth16 || width == StackWidth32
	default:
		return false
	}
}

// DecoderModeFlag toggles an optional compatibility behavior in the decoder
// (spec section 4.1, decoder_enable_mode).
type DecoderModeFlag int

const (
	ModeFlagAMDBranches DecoderModeFlag = iota
	ModeFlagKNC
	ModeFlagMPX
	ModeFlagCET
	ModeFlagLZCNT
	ModeFlagTZCNT
	ModeFlagWBNOINVD
	ModeFlagCLDEMOTE
	ModeFlagIPREFETCH
	ModeFlagUD0Compat
	ModeFlagReal16Override
	modeFlagCount
)

// DefaultEnabled reports the flag's default state at decoder_init time:
// MPX, CET, LZCNT, and TZCNT default on; everything else defaults off.
func (f DecoderModeFlag) DefaultEnabled() bool {
	switch f {
	case ModeFlagMPX, ModeFlagCET, ModeFlagLZCNT, ModeFlagTZCNT:
		return true
	default:
		return false
	}
}

// Valid reports whether f is a recognized flag, used by decoder_enable_mode
// to return InvalidParameter on an out-of-range value.
func (f DecoderModeFlag) Valid() bool {
	return f >= 0 && f < modeFlagCount
}
