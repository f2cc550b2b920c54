package register

// Segment, control, debug, mask, bound, flags, and instruction-pointer
// registers (spec section 4.3).

var (
	ES, CS, SS, DS, FS, GS Register

	CR0, CR1, CR2, CR3, CR4, CR5, CR6, CR7, CR8 Register

	DR0, DR1, DR2, DR3, DR4, DR5, DR6, DR7 Register

	K0, K1, K2, K3, K4, K5, K6, K7 Register

	BND0, BND1, BND2, BND3, BNDCFG, BNDSTATUS Register

	FLAGS, EFLAGS, RFLAGS Register
	IP, EIP, RIP          Register

	ST0, ST1, ST2, ST3, ST4, ST5, ST6, ST7 Register
)

// SegmentEncoding values, matching the ModRM/prefix segment-override field
// layout the decoder harvests (spec section 4.1): ES=0 CS=1 SS=2 DS=3 FS=4
// GS=5.
const (
	SegEncodingES byte = 0
	SegEncodingCS byte = 1
	SegEncodingSS byte = 2
	SegEncodingDS byte = 3
	SegEncodingFS byte = 4
	SegEncodingGS byte = 5
)

func buildSegmentControlDebug() {
	ES = register("es", ClassSegment, SegEncodingES, 16)
	CS = register("cs", ClassSegment, SegEncodingCS, 16)
	SS = register("ss", ClassSegment, SegEncodingSS, 16)
	DS = register("ds", ClassSegment, SegEncodingDS, 16)
	FS = register("fs", ClassSegment, SegEncodingFS, 16)
	GS = register("gs", ClassSegment, SegEncodingGS, 16)

	CR0 = register("cr0", ClassControl, 0, 64)
	CR1 = register("cr1", ClassControl, 1, 64)
	CR2 = register("cr2", ClassControl, 2, 64)
	CR3 = register("cr3", ClassControl, 3, 64)
	CR4 = register("cr4", ClassControl, 4, 64)
	CR5 = register("cr5", ClassControl, 5, 64)
	CR6 = register("cr6", ClassControl, 6, 64)
	CR7 = register("cr7", ClassControl, 7, 64)
	CR8 = register("cr8", ClassControl, 8, 64)

	DR0 = register("dr0", ClassDebug, 0, 64)
	DR1 = register("dr1", ClassDebug, 1, 64)
	DR2 = register("dr2", ClassDebug, 2, 64)
	DR3 = register("dr3", ClassDebug, 3, 64)
	DR4 = register("dr4", ClassDebug, 4, 64)
	DR5 = register("dr5", ClassDebug, 5, 64)
	DR6 = register("dr6", ClassDebug, 6, 64)
	DR7 = register("dr7", ClassDebug, 7, 64)
}

func buildSpecial() {
	K0 = register("k0", ClassMask, 0, 64)
	K1 = register("k1", ClassMask, 1, 64)
	K2 = register("k2", ClassMask, 2, 64)
	K3 = register("k3", ClassMask, 3, 64)
	K4 = register("k4", ClassMask, 4, 64)
	K5 = register("k5", ClassMask, 5, 64)
	K6 = register("k6", ClassMask, 6, 64)
	K7 = register("k7", ClassMask, 7, 64)

	BND0 = register("bnd0", ClassBound, 0, 128)
	BND1 = register("bnd1", ClassBound, 1, 128)
	BND2 = register("bnd2", ClassBound, 2, 128)
	BND3 = register("bnd3", ClassBound, 3, 128)
	BNDCFG = register("bndcfg", ClassBound, 4, 64)
	BNDSTATUS = register("bndstatus", ClassBound, 5, 64)

	FLAGS = registerModeDependent("flags", ClassFlags, 0, 16, 16)
	EFLAGS = register("eflags", ClassFlags, 1, 32)
	RFLAGS = register("rflags", ClassFlags, 2, 64)

	IP = registerModeDependent("ip", ClassIP, 0, 16, 16)
	EIP = register("eip", ClassIP, 1, 32)
	RIP = register("rip", ClassIP, 2, 64)

	st := []*Register{&ST0, &ST1, &ST2, &ST3, &ST4, &ST5, &ST6, &ST7}
	for i, p := range st {
		*p = register("st"+digits(i), ClassX87, byte(i), 80)
	}
}

// IPForWidth returns the instruction-pointer register matching an address
// width, used by the decoder to fill the implicit-register family "IP/EIP/
// RIP" operand kind (spec section 3.4: "implicit memory: segment + base
// register family").
func IPForWidth(width int) Register {
	switch width {
	case 64:
		return RIP
	case 32:
		return EIP
	default:
		return IP
	}
}

// FlagsForWidth returns the flags register matching an operand width, used
// for the implicit "flags" register family.
func FlagsForWidth(width int) Register {
	switch width {
	case 64:
		return RFLAGS
	case 32:
		return EFLAGS
	default:
		return FLAGS
	}
}

// GPRForWidth returns the general-purpose register sharing id with a
// reference register but sized to width, used for OSZ/ASZ/SSZ-sized
// implicit-register families (spec section 4.1 step 8).
func GPRForWidth(id byte, width int) (Register, bool) {
	switch width {
	case 8:
		return EncodeGPR8(id, true)
	case 16:
		return Encode(ClassGPR16, id)
	case 32:
		return Encode(ClassGPR32, id)
	case 64:
		return Encode(ClassGPR64, id)
	default:
		return RegNone, false
	}
}
