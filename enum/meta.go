package enum

// Category is a coarse grouping of instruction semantics (spec section
// 3.2, "meta block").
type Category int

const (
	CategoryGeneral Category = iota
	CategoryDataTransfer
	CategoryArithmetic
	CategoryLogical
	CategoryShiftRotate
	CategoryControlFlow
	CategorySystem
	CategoryAVX
	CategoryAVX512
	Category3DNow
	CategoryXOP
)

// ISASet is the specific extension/generation an instruction belongs to
// (spec section 3.2).
type ISASet int

const (
	ISASetI86 ISASet = iota
	ISASetI386
	ISASetAMD64
	ISASetAMD3DNow
	ISASetAMDXOP
	ISASetAVX
	ISASetAVX2
	ISASetAVX512F
	ISASetAVX512BW
	ISASetKNC
	ISASetBMI1
)

// ISAExt is a finer-grained feature flag within an ISASet, used by
// compatibility toggles such as LZCNT/TZCNT (spec section 3.2/4.1).
type ISAExt int

const (
	ISAExtNone ISAExt = iota
	ISAExtLZCNT
	ISAExtTZCNT
	ISAExtBMI1
	ISAExtBMI2
	ISAExtMPX
	ISAExtCET
)

// BranchType classifies control-flow instructions for the accessed-flags
// and segment-reflection metadata (spec section 3.2).
type BranchType int

const (
	BranchTypeNone BranchType = iota
	BranchTypeShort
	BranchTypeNear64
	BranchTypeNear32
	BranchTypeFar
)

// ExceptionClass groups instructions by the SIMD floating-point exception
// behavior they can raise (spec section 3.2); unused by legacy GPR
// instructions.
type ExceptionClass int

const (
	ExceptionClassNone ExceptionClass = iota
	ExceptionClass1
	ExceptionClass2
	ExceptionClass3
	ExceptionClass4
)

// CPUFlag is a single bit of EFLAGS/RFLAGS tracked by the accessed-flags
// table (spec section 3.2/4.7).
type CPUFlag uint32

const (
	FlagCF CPUFlag = 1 << iota
	FlagPF
	FlagAF
	FlagZF
	FlagSF
	FlagTF
	FlagIF
	FlagDF
	FlagOF
)

// FlagAction is the per-flag effect an instruction has, used by
// accessed_flags_by_action (spec section 4.7).
type FlagAction int

const (
	FlagActionTested FlagAction = iota
	FlagActionModified0
	FlagActionModified1
	FlagActionModified
	FlagActionUndefined
)

// AccessedFlags is one instruction's full effect on the flags register: for
// every flag bit, which of the five FlagAction buckets it falls into. Held
// as five bitmasks rather than a map for allocation-free table storage and
// allocation-free filtering (spec section 4.7).
type AccessedFlags struct {
	Tested    CPUFlag
	Modified0 CPUFlag
	Modified1 CPUFlag
	Modified  CPUFlag
	Undefined CPUFlag
}

// ByAction returns the subset of flags matching action, implementing
// accessed_flags_by_action (spec section 4.7).
func (a AccessedFlags) ByAction(action FlagAction) CPUFlag {
	switch action {
	case FlagActionTested:
		return a.Tested
	case FlagActionModified0:
		return a.Modified0
	case FlagActionModified1:
		return a.Modified1
	case FlagActionModified:
		return a.Modified
	case FlagActionUndefined:
		return a.Undefined
	default:
		return 0
	}
}
