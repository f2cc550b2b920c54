package enum

// Mnemonic identifies an instruction's assembly name. The full ISA has on
// the order of three thousand distinct mnemonics generated from an external
// ISA database (see SPEC_FULL.md "SIZE NOTE"); this enumeration carries a
// representative cross-section that exercises every opcode map and encoding
// class named in spec section 3.2.
type Mnemonic int

const (
	MnemonicInvalid Mnemonic = iota

	// Data movement (Legacy, primary map)
	MnemonicMOV
	MnemonicMOVZX
	MnemonicMOVSX
	MnemonicMOVSXD
	MnemonicLEA
	MnemonicPUSH
	MnemonicPOP
	MnemonicXCHG
	MnemonicCMOVCC

	// Arithmetic / logic (Legacy, primary map)
	MnemonicADD
	MnemonicADC
	MnemonicSUB
	MnemonicSBB
	MnemonicAND
	MnemonicOR
	MnemonicXOR
	MnemonicCMP
	MnemonicTEST
	MnemonicINC
	MnemonicDEC
	MnemonicNEG
	MnemonicNOT
	MnemonicIMUL
	MnemonicMUL
	MnemonicIDIV
	MnemonicDIV
	MnemonicSHL
	MnemonicSHR
	MnemonicSAR
	MnemonicROL
	MnemonicROR

	// Control flow (Legacy, primary + 0F map)
	MnemonicJMP
	MnemonicJCC
	MnemonicCALL
	MnemonicRET
	MnemonicLOOP
	MnemonicNOP
	MnemonicHLT
	MnemonicINT3
	MnemonicINT
	MnemonicIRET
	MnemonicSYSCALL
	MnemonicSYSRET
	MnemonicCPUID
	MnemonicRDTSC
	MnemonicLZCNT
	MnemonicTZCNT

	// AMD 3DNow! (0F 0F map, imm8 opcode suffix)
	Mnemonic3DNowPFADD
	Mnemonic3DNowPFMUL
	Mnemonic3DNowPFSUB
	Mnemonic3DNowPI2FD

	// AMD XOP (8F map)
	MnemonicVPROTB
	MnemonicVPCMOV
	MnemonicVFRCZPS

	// VEX (AVX / AVX2)
	MnemonicVMOVAPS
	MnemonicVMOVUPS
	MnemonicVADDPS
	MnemonicVSUBPS
	MnemonicVMULPS
	MnemonicVCMPPD
	MnemonicVCMPPS
	MnemonicVXORPS
	MnemonicVZEROUPPER
	MnemonicVPSHUFD
	MnemonicVPBROADCASTD
	MnemonicVFMADD213PS

	// EVEX (AVX-512)
	MnemonicVMOVAPS512
	MnemonicVCMPPS512
	MnemonicVADDPS512
	MnemonicVPGATHERDD
	MnemonicKMOVW
	MnemonicKANDW

	// MVEX (Xeon Phi / KNC)
	MnemonicVADDPSMVEX
	MnemonicVGATHERDPSMVEX

	mnemonicCount
)

var mnemonicNames = [...]string{
	MnemonicInvalid: "invalid",

	MnemonicMOV:    "mov",
	MnemonicMOVZX:  "movzx",
	MnemonicMOVSX:  "movsx",
	MnemonicMOVSXD: "movsxd",
	MnemonicLEA:    "lea",
	MnemonicPUSH:   "push",
	MnemonicPOP:    "pop",
	MnemonicXCHG:   "xchg",
	MnemonicCMOVCC: "cmovcc",

	MnemonicADD:  "add",
	MnemonicADC:  "adc",
	MnemonicSUB:  "sub",
	MnemonicSBB:  "sbb",
	MnemonicAND:  "and",
	MnemonicOR:   "or",
	MnemonicXOR:  "xor",
	MnemonicCMP:  "cmp",
	MnemonicTEST: "test",
	MnemonicINC:  "inc",
	MnemonicDEC:  "dec",
	MnemonicNEG:  "neg",
	MnemonicNOT:  "not",
	MnemonicIMUL: "imul",
	MnemonicMUL:  "mul",
	MnemonicIDIV: "idiv",
	MnemonicDIV:  "div",
	MnemonicSHL:  "shl",
	MnemonicSHR:  "shr",
	MnemonicSAR:  "sar",
	MnemonicROL:  "rol",
	MnemonicROR:  "ror",

	MnemonicJMP:     "jmp",
	MnemonicJCC:     "jcc",
	MnemonicCALL:    "call",
	MnemonicRET:     "ret",
	MnemonicLOOP:    "loop",
	MnemonicNOP:     "nop",
	MnemonicHLT:     "hlt",
	MnemonicINT3:    "int3",
	MnemonicINT:     "int",
	MnemonicIRET:    "iret",
	MnemonicSYSCALL: "syscall",
	MnemonicSYSRET:  "sysret",
	MnemonicCPUID:   "cpuid",
	MnemonicRDTSC:   "rdtsc",
	MnemonicLZCNT:   "lzcnt",
	MnemonicTZCNT:   "tzcnt",

	Mnemonic3DNowPFADD: "pfadd",
	Mnemonic3DNowPFMUL: "pfmul",
	Mnemonic3DNowPFSUB: "pfsub",
	Mnemonic3DNowPI2FD: "pi2fd",

	MnemonicVPROTB:  "vprotb",
	MnemonicVPCMOV:  "vpcmov",
	MnemonicVFRCZPS: "vfrczps",

	MnemonicVMOVAPS:      "vmovaps",
	MnemonicVMOVUPS:      "vmovups",
	MnemonicVADDPS:       "vaddps",
	MnemonicVSUBPS:       "vsubps",
	MnemonicVMULPS:       "vmulps",
	MnemonicVCMPPD:       "vcmppd",
	MnemonicVCMPPS:       "vcmpps",
	MnemonicVXORPS:       "vxorps",
	MnemonicVZEROUPPER:   "vzeroupper",
	MnemonicVPSHUFD:      "vpshufd",
	MnemonicVPBROADCASTD: "vpbroadcastd",
	MnemonicVFMADD213PS:  "vfmadd213ps",

	MnemonicVMOVAPS512: "vmovaps",
	MnemonicVCMPPS512:  "vcmpps",
	MnemonicVADDPS512:  "vaddps",
	MnemonicVPGATHERDD: "vpgatherdd",
	MnemonicKMOVW:      "kmovw",
	MnemonicKANDW:      "kandw",

	MnemonicVADDPSMVEX:     "vaddps",
	MnemonicVGATHERDPSMVEX: "vgatherdps",
}

// String returns the lower-case assembly mnemonic text. Backed by a static
// array rather than a map so lookup never allocates, matching spec section
// 5's "no operation allocates... on the hot path" constraint extended to
// text rendering.
func (m Mnemonic) String() string {
	if m >= 0 && int(m) < len(mnemonicNames) && mnemonicNames[m] != "" {
		return mnemonicNames[m]
	}
	return "unknown"
}

// Valid reports whether m is a populated entry in the table.
func (m Mnemonic) Valid() bool {
	return m > MnemonicInvalid && int(m) < int(mnemonicCount)
}
