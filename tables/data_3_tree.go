package tables

import "github.com/relsig/x86isa/enum"

// Global is the single statically built Arena the decoder walks, populated
// once at package init with the opcode-table roots spec section 4.2 names
// plus a representative corpus of leaves (spec SIZE NOTE): enough of
// Legacy/0F/3DNow/XOP/VEX/EVEX/MVEX to decode/encode/format every scenario
// in spec section 8 and exercise every opcode map and encoding class named
// in section 3.2.
var Global *Arena

func init() {
	Global = NewArena(2048)
	b := newBuilder(Global)

	primary := b.opcodeTable()
	b.registerRoot(int(enum.RootPrimary), primary)

	zeroF := b.opcodeTable()
	b.registerRoot(int(enum.Root0F), zeroF)

	root3DNow := b.opcodeTable()
	b.registerRoot(int(enum.Root3DNow), root3DNow)

	rootVEX := b.opcodeTable()
	b.registerRoot(int(enum.RootVEX), rootVEX)

	rootEVEX := b.opcodeTable()
	b.registerRoot(int(enum.RootEVEX), rootEVEX)

	rootMVEX := b.opcodeTable()
	b.registerRoot(int(enum.RootMVEX), rootMVEX)

	rootXOP := b.opcodeTable()
	b.registerRoot(int(enum.RootXOP), rootXOP)

	def := func(id int) NodeRef { return b.definition(DefinitionAt(id).EncodingInfo, id) }

	// --- Primary map ---
	b.setChild(primary, 0x89, def(DefMOVRmGPR))
	// 0xB8..0xBF: MOV r64, imm — register id comes from (opcode & 7), not
	// from a tree selector, since the opcode table is already keyed by the
	// full byte value.
	movImmLeaf := def(DefMOVGPRImm64)
	for op := 0xB8; op <= 0xBF; op++ {
		b.setChild(primary, op, movImmLeaf)
	}
	b.setChild(primary, 0xC3, def(DefRETNear))
	b.setChild(primary, 0x6A, def(DefPUSHImm8))
	b.setChild(primary, 0xE9, def(DefJMPRel32))
	b.setChild(primary, 0x0F, b.switchTable(int(enum.Root0F)))

	// --- 0F map: only the 3DNow escape is populated in this corpus ---
	b.setChild(zeroF, 0x0F, b.switchTable(int(enum.Root3DNow)))

	// --- 3DNow map: keyed by the trailing opcode-suffix byte the decoder
	// reads after ModRM/SIB/disp (spec section 4.1's opcode map 0F0F is
	// unusual in that its "opcode" trails the addressing bytes; the
	// decoder package special-cases this rather than the generic walk). ---
	b.setChild(root3DNow, 0x9E, def(Def3DNowPFADD))

	// --- VEX map: opcode 0xC2 goes through a VEX.pp mandatory-prefix
	// selector; only the 0x66 slot (VCMPPD, scenario S2) is populated, the
	// no-prefix slot stays empty. ---
	vexC2 := b.selector(NodeSelectorMandatoryPrefix)
	b.setChild(vexC2, int(enum.Mandatory66), def(DefVCMPPDVex))
	b.setChild(rootVEX, 0xC2, vexC2)
	b.setChild(rootXOP, 0x90, def(DefXOPVPROTB))

	// --- EVEX map: opcode 0xC2, no mandatory prefix (EVEX.pp=0) selects
	// VCMPPS (zmm), matching scenario S3. ---
	evexC2 := b.selector(NodeSelectorMandatoryPrefix)
	b.setChild(evexC2, int(enum.MandatoryNone), def(DefVCMPPSEvex))
	b.setChild(rootEVEX, 0xC2, evexC2)

	b.setChild(rootMVEX, 0x58, def(DefVADDPSMvex))
}
