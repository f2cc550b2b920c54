package register

// General-purpose registers across all four operand widths, plus the
// legacy high-byte registers AH/CH/DH/BH which alias the same ModRM.rm /
// reg encoding (4..7) as SPL/BPL/SIL/DIL but are selectable only when no
// REX prefix is present (spec section 3.3/4.1 — REX presence disambiguates
// them, so they cannot share one Encode(class, id) slot).

var (
	RAX, RCX, RDX, RBX, RSP, RBP, RSI, RDI                         Register
	R8, R9, R10, R11, R12, R13, R14, R15                           Register
	EAX, ECX, EDX, EBX, ESP, EBP, ESI, EDI                         Register
	R8D, R9D, R10D, R11D, R12D, R13D, R14D, R15D                   Register
	AX, CX, DX, BX, SP, BP, SI, DI                                 Register
	R8W, R9W, R10W, R11W, R12W, R13W, R14W, R15W                   Register
	AL, CL, DL, BL, SPL, BPL, SIL, DIL                             Register
	R8B, R9B, R10B, R11B, R12B, R13B, R14B, R15B                   Register
	AH, CH, DH, BH                                                 Register
)

// highByteAlias records which GPR8 encoding ids (4..7) are the legacy
// AH/CH/DH/BH high-byte forms rather than SPL/BPL/SIL/DIL, keyed by id.
var highByteAlias [8]Register

func buildGPR() {
	RAX = register("rax", ClassGPR64, 0, 64)
	RCX = register("rcx", ClassGPR64, 1, 64)
	RDX = register("rdx", ClassGPR64, 2, 64)
	RBX = register("rbx", ClassGPR64, 3, 64)
	RSP = register("rsp", ClassGPR64, 4, 64)
	RBP = register("rbp", ClassGPR64, 5, 64)
	RSI = register("rsi", ClassGPR64, 6, 64)
	RDI = register("rdi", ClassGPR64, 7, 64)
	R8 = register("r8", ClassGPR64, 8, 64)
	R9 = register("r9", ClassGPR64, 9, 64)
	R10 = register("r10", ClassGPR64, 10, 64)
	R11 = register("r11", ClassGPR64, 11, 64)
	R12 = register("r12", ClassGPR64, 12, 64)
	R13 = register("r13", ClassGPR64, 13, 64)
	R14 = register("r14", ClassGPR64, 14, 64)
	R15 = register("r15", ClassGPR64, 15, 64)

	EAX = register("eax", ClassGPR32, 0, 32)
	ECX = register("ecx", ClassGPR32, 1, 32)
	EDX = register("edx", ClassGPR32, 2, 32)
	EBX = register("ebx", ClassGPR32, 3, 32)
	ESP = register("esp", ClassGPR32, 4, 32)
	EBP = register("ebp", ClassGPR32, 5, 32)
	ESI = register("esi", ClassGPR32, 6, 32)
	EDI = register("edi", ClassGPR32, 7, 32)
	R8D = register("r8d", ClassGPR32, 8, 32)
	R9D = register("r9d", ClassGPR32, 9, 32)
	R10D = register("r10d", ClassGPR32, 10, 32)
	R11D = register("r11d", ClassGPR32, 11, 32)
	R12D = register("r12d", ClassGPR32, 12, 32)
	R13D = register("r13d", ClassGPR32, 13, 32)
	R14D = register("r14d", ClassGPR32, 14, 32)
	R15D = register("r15d", ClassGPR32, 15, 32)

	AX = register("ax", ClassGPR16, 0, 16)
	CX = register("cx", ClassGPR16, 1, 16)
	DX = register("dx", ClassGPR16, 2, 16)
	BX = register("bx", ClassGPR16, 3, 16)
	SP = register("sp", ClassGPR16, 4, 16)
	BP = register("bp", ClassGPR16, 5, 16)
	SI = register("si", ClassGPR16, 6, 16)
	DI = register("di", ClassGPR16, 7, 16)
	R8W = register("r8w", ClassGPR16, 8, 16)
	R9W = register("r9w", ClassGPR16, 9, 16)
	R10W = register("r10w", ClassGPR16, 10, 16)
	R11W = register("r11w", ClassGPR16, 11, 16)
	R12W = register("r12w", ClassGPR16, 12, 16)
	R13W = register("r13w", ClassGPR16, 13, 16)
	R14W = register("r14w", ClassGPR16, 14, 16)
	R15W = register("r15w", ClassGPR16, 15, 16)

	AL = register("al", ClassGPR8, 0, 8)
	CL = register("cl", ClassGPR8, 1, 8)
	DL = register("dl", ClassGPR8, 2, 8)
	BL = register("bl", ClassGPR8, 3, 8)
	// SPL..DIL only exist with a REX prefix; they share ids 4..7 with
	// AH..BH. AH..BH are kept out of byClassID, so Encode(ClassGPR8, 4..7)
	// maps to the REX form SPL..DIL; the decoder calls EncodeGPR8 directly
	// when it needs REX-aware disambiguation.
	AH = registerHighByte("ah", 4)
	CH = registerHighByte("ch", 5)
	DH = registerHighByte("dh", 6)
	BH = registerHighByte("bh", 7)
	SPL = register("spl", ClassGPR8, 4, 8)
	BPL = register("bpl", ClassGPR8, 5, 8)
	SIL = register("sil", ClassGPR8, 6, 8)
	DIL = register("dil", ClassGPR8, 7, 8)
	R8B = register("r8b", ClassGPR8, 8, 8)
	R9B = register("r9b", ClassGPR8, 9, 8)
	R10B = register("r10b", ClassGPR8, 10, 8)
	R11B = register("r11b", ClassGPR8, 11, 8)
	R12B = register("r12b", ClassGPR8, 12, 8)
	R13B = register("r13b", ClassGPR8, 13, 8)
	R14B = register("r14b", ClassGPR8, 14, 8)
	R15B = register("r15b", ClassGPR8, 15, 8)
}

func registerHighByte(name string, id byte) Register {
	r := Register(len(table))
	table = append(table, entry{name: name, class: ClassGPR8, id: id, width64: 8, widthOther: 8})
	byName[name] = r
	highByteAlias[id] = r
	// Deliberately not inserted into byClassID: generic Encode(ClassGPR8,
	// id) must keep resolving to the REX-addressable SPL/BPL/SIL/DIL form
	// registered afterward; EncodeGPR8 below is the only way to reach the
	// high-byte alias.
	return r
}

// EncodeGPR8 resolves an 8-bit GPR encoding id to either the legacy
// high-byte register (AH/CH/DH/BH, ids 4..7, no REX) or the low-byte
// register (AL..DIL), per spec section 4.1's REX-presence disambiguation.
func EncodeGPR8(id byte, hasREX bool) (Register, bool) {
	if !hasREX && id >= 4 && id <= 7 {
		return highByteAlias[id], true
	}
	return Encode(ClassGPR8, id)
}

// LargestEnclosing returns the widest register that shares id with r under
// the given mode (e.g. EAX -> RAX in 64-bit mode, AH -> RAX with the
// caveat that AH occupies RAX's high byte) (spec section 4.3).
func LargestEnclosing(is64 bool, r Register) Register {
	if int(r) <= 0 || int(r) >= len(table) {
		return RegNone
	}
	e := table[r]
	switch e.class {
	case ClassGPR8, ClassGPR16, ClassGPR32, ClassGPR64:
		id := e.id
		if e.class == ClassGPR8 && id >= 4 && id <= 7 && highByteAlias[id] == r {
			id -= 4 // AH..BH sit in RAX..RBX, not in RSP..RDI
		}
		if !is64 {
			if wide, ok := Encode(ClassGPR32, id); ok {
				return wide
			}
			return r
		}
		if wide, ok := Encode(ClassGPR64, id); ok {
			return wide
		}
		return r
	default:
		return r
	}
}
