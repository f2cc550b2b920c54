// Package segment breaks a decoded instruction's raw byte span back down
// into labeled, offset-addressed pieces — prefixes, the prefix-family
// bytes (REX/VEX/XOP/EVEX/MVEX), opcode, ModRM, SIB, displacement, and
// immediates — for tools that want to print or highlight the physical
// encoding rather than just the decoded semantics (spec section 4.4).
package segment

import (
	"github.com/relsig/x86isa/decoder"
	"github.com/relsig/x86isa/enum"
)

// Kind tags which part of the instruction's byte span a Segment covers.
type Kind int

const (
	KindPrefixes Kind = iota
	KindREX
	KindVEX
	KindXOP
	KindEVEX
	KindMVEX
	KindOpcode
	KindModRM
	KindSIB
	KindDisplacement
	KindImmediate
)

func (k Kind) String() string {
	switch k {
	case KindPrefixes:
		return "prefixes"
	case KindREX:
		return "rex"
	case KindVEX:
		return "vex"
	case KindXOP:
		return "xop"
	case KindEVEX:
		return "evex"
	case KindMVEX:
		return "mvex"
	case KindOpcode:
		return "opcode"
	case KindModRM:
		return "modrm"
	case KindSIB:
		return "sib"
	case KindDisplacement:
		return "displacement"
	case KindImmediate:
		return "immediate"
	default:
		return "unknown-segment"
	}
}

// SegmentKindToString implements segment_kind_to_string(kind) (spec section
// 6.4).
func SegmentKindToString(k Kind) string { return k.String() }

// Field describes one bit-field of a segment's encoded byte(s): its name,
// its width in bits, and its bit offset counted from the low bit of the
// segment's last byte upward (matching the mask/shift conventions the
// prefix parser itself uses). Generic code can use this to print or
// highlight individual bits without hardcoding per-kind layouts.
type Field struct {
	Name      string
	BitWidth  int
	BitOffset int
}

// Segment is one labeled, contiguous span of an instruction's raw bytes
// plus its already-decoded payload (the same Raw* struct the decoder
// itself populated) for callers that want the scalar field values without
// re-deriving them from the bit layout.
type Segment struct {
	Kind    Kind
	Offset  int
	Size    int
	Bytes   []byte
	Decoded any
}

// GetInstructionSegments implements get_instruction_segments(instr, bytes,
// len) -> SegmentList (spec section 4.4/6.4): an ordered-by-offset list of
// up to 9 segments covering an instruction's full byte span.
//
// Every optional part's exact size is already recorded on the decoded
// instruction (attribute bits for ModRM/SIB, Raw.Disp/Raw.Imm offset+size
// for displacement/immediates); the one size this function must still
// derive is the legacy-prefix run's length, which falls out of the total
// instruction length minus every other part's known size.
func GetInstructionSegments(instr *decoder.DecodedInstruction, raw []byte) ([]Segment, error) {
	if instr == nil {
		return nil, enum.NewError(enum.CodeInvalidParameter, "nil instruction")
	}
	if len(raw) < instr.Length {
		return nil, enum.NewError(enum.CodeInvalidParameter, "byte slice shorter than decoded instruction length")
	}
	raw = raw[:instr.Length]

	familySize, familyKind := prefixFamilySize(instr)
	modrmSize := 0
	if instr.Attributes.Has(enum.AttrHasModRM) {
		modrmSize = 1
	}
	sibSize := 0
	if instr.Attributes.Has(enum.AttrHasSIB) {
		sibSize = 1
	}
	dispSize := 0
	if instr.Raw.Disp.Present {
		dispSize = instr.Raw.Disp.Size
	}
	immSize := 0
	for _, imm := range instr.Raw.Imm {
		if imm.Present {
			immSize += imm.Size
		}
	}

	leadOpcodeSize, trailOpcodeSize := opcodeSizes(instr)

	prefixLen := instr.Length - familySize - leadOpcodeSize - trailOpcodeSize - modrmSize - sibSize - dispSize - immSize
	if prefixLen < 0 {
		return nil, enum.NewError(enum.CodeDecodingError, "segment sizes exceed instruction length")
	}

	var segs []Segment
	offset := 0

	if prefixLen > 0 {
		segs = append(segs, Segment{Kind: KindPrefixes, Offset: offset, Size: prefixLen, Bytes: raw[offset : offset+prefixLen]})
		offset += prefixLen
	}

	if familySize > 0 {
		segs = append(segs, Segment{
			Kind: familyKind, Offset: offset, Size: familySize,
			Bytes: raw[offset : offset+familySize], Decoded: familyPayload(instr, familyKind),
		})
		offset += familySize
	}

	if leadOpcodeSize > 0 {
		segs = append(segs, Segment{Kind: KindOpcode, Offset: offset, Size: leadOpcodeSize, Bytes: raw[offset : offset+leadOpcodeSize]})
		offset += leadOpcodeSize
	}

	if modrmSize > 0 {
		segs = append(segs, Segment{
			Kind: KindModRM, Offset: offset, Size: modrmSize,
			Bytes: raw[offset : offset+modrmSize], Decoded: instr.Raw.ModRM,
		})
		offset += modrmSize
	}

	if sibSize > 0 {
		segs = append(segs, Segment{
			Kind: KindSIB, Offset: offset, Size: sibSize,
			Bytes: raw[offset : offset+sibSize], Decoded: instr.Raw.SIB,
		})
		offset += sibSize
	}

	if dispSize > 0 {
		d := instr.Raw.Disp
		segs = append(segs, Segment{Kind: KindDisplacement, Offset: d.Offset, Size: d.Size, Bytes: raw[d.Offset : d.Offset+d.Size], Decoded: d})
		offset = d.Offset + d.Size
	}

	// The 3DNow escape's trailing suffix byte functions as the opcode but
	// physically follows ModRM/SIB/displacement (spec section 4.1, opcode
	// map 0F0F special case), so it lands here rather than with the
	// leading 0F 0F bytes.
	if trailOpcodeSize > 0 {
		segs = append(segs, Segment{Kind: KindOpcode, Offset: offset, Size: trailOpcodeSize, Bytes: raw[offset : offset+trailOpcodeSize]})
		offset += trailOpcodeSize
	}

	for _, imm := range instr.Raw.Imm {
		if imm.Present {
			segs = append(segs, Segment{Kind: KindImmediate, Offset: imm.Offset, Size: imm.Size, Bytes: raw[imm.Offset : imm.Offset+imm.Size], Decoded: imm})
		}
	}

	return segs, nil
}

func prefixFamilySize(instr *decoder.DecodedInstruction) (int, Kind) {
	switch {
	case instr.Raw.REX.Present:
		return 1, KindREX
	case instr.Raw.VEX.Present:
		if instr.Raw.VEX.TwoByte {
			return 2, KindVEX
		}
		return 3, KindVEX
	case instr.Raw.XOP.Present:
		return 3, KindXOP
	case instr.Raw.EVEX.Present:
		return 4, KindEVEX
	case instr.Raw.MVEX.Present:
		return 4, KindMVEX
	default:
		return 0, KindPrefixes
	}
}

func familyPayload(instr *decoder.DecodedInstruction, kind Kind) any {
	switch kind {
	case KindREX:
		return instr.Raw.REX
	case KindVEX:
		return instr.Raw.VEX
	case KindXOP:
		return instr.Raw.XOP
	case KindEVEX:
		return instr.Raw.EVEX
	case KindMVEX:
		return instr.Raw.MVEX
	default:
		return nil
	}
}

// opcodeSizes returns the byte count of the leading opcode span and, for
// the 3DNow special case only, the trailing suffix-opcode span.
func opcodeSizes(instr *decoder.DecodedInstruction) (lead, trail int) {
	if instr.Encoding == enum.Encoding3DNow {
		return 2, 1
	}
	switch instr.Encoding {
	case enum.EncodingVEX, enum.EncodingXOP, enum.EncodingEVEX, enum.EncodingMVEX:
		return 1, 0
	}
	switch instr.OpcodeMap {
	case enum.OpcodeMap0F:
		return 2, 0
	case enum.OpcodeMap0F38, enum.OpcodeMap0F3A:
		return 3, 0
	default:
		return 1, 0
	}
}

// SegmentReflectionInfo implements segment_reflection_info(kind, length) ->
// field_list (spec section 6.4): the bit-width/bit-offset layout of a
// segment kind's encoded bytes, for generic field-by-field printing.
// length disambiguates the two VEX encodings (2-byte vs 3-byte).
func SegmentReflectionInfo(k Kind, length int) []Field {
	switch k {
	case KindREX:
		return []Field{
			{"W", 1, 3}, {"R", 1, 2}, {"X", 1, 1}, {"B", 1, 0},
		}
	case KindModRM:
		return []Field{
			{"mod", 2, 6}, {"reg", 3, 3}, {"rm", 3, 0},
		}
	case KindSIB:
		return []Field{
			{"scale", 2, 6}, {"index", 3, 3}, {"base", 3, 0},
		}
	case KindVEX:
		if length == 2 {
			return []Field{
				{"R", 1, 7}, {"vvvv", 4, 3}, {"L", 1, 2}, {"pp", 2, 0},
			}
		}
		return []Field{
			{"R", 1, 15}, {"X", 1, 14}, {"B", 1, 13}, {"mmmmm", 5, 8},
			{"W", 1, 7}, {"vvvv", 4, 3}, {"L", 1, 2}, {"pp", 2, 0},
		}
	case KindXOP:
		return []Field{
			{"R", 1, 15}, {"X", 1, 14}, {"B", 1, 13}, {"mmmmm", 5, 8},
			{"W", 1, 7}, {"vvvv", 4, 3}, {"L", 1, 2}, {"pp", 2, 0},
		}
	case KindEVEX:
		return []Field{
			{"R", 1, 23}, {"X", 1, 22}, {"B", 1, 21}, {"Rp", 1, 20}, {"mm", 2, 16},
			{"W", 1, 15}, {"vvvv", 4, 11}, {"pp", 2, 8},
			{"z", 1, 7}, {"LL", 2, 5}, {"b", 1, 4}, {"Vp", 1, 3}, {"aaa", 3, 0},
		}
	case KindMVEX:
		return []Field{
			{"R", 1, 23}, {"X", 1, 22}, {"B", 1, 21}, {"Rp", 1, 20}, {"mm", 2, 16},
			{"W", 1, 15}, {"vvvv", 4, 11}, {"pp", 2, 8},
			{"SSS", 3, 5}, {"E", 1, 4}, {"Vp", 1, 3}, {"kkk", 3, 0},
		}
	default:
		return nil
	}
}
