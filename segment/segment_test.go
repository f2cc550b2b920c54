package segment_test

import (
	"testing"

	"github.com/relsig/x86isa/decoder"
	"github.com/relsig/x86isa/enum"
	"github.com/relsig/x86isa/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetInstructionSegments_LegacyRexModRMSIB covers S1: a REX+ModRM+SIB+
// disp8 instruction with no legacy prefix run, splitting into REX, opcode,
// ModRM, SIB, and displacement segments in byte order.
func TestGetInstructionSegments_LegacyRexModRMSIB(t *testing.T) {
	raw := []byte{0x48, 0x89, 0x5C, 0x24, 0x10}
	d, err := decoder.NewDecoder(enum.ModeLong64, enum.StackWidth64)
	require.NoError(t, err)
	instr, err := d.DecodeBuffer(raw, 0x1000)
	require.NoError(t, err)

	segs, err := segment.GetInstructionSegments(instr, raw)
	require.NoError(t, err)
	require.Len(t, segs, 5)

	assert.Equal(t, segment.KindREX, segs[0].Kind)
	assert.Equal(t, 0, segs[0].Offset)
	assert.Equal(t, 1, segs[0].Size)

	assert.Equal(t, segment.KindOpcode, segs[1].Kind)
	assert.Equal(t, 1, segs[1].Offset)
	assert.Equal(t, 1, segs[1].Size)

	assert.Equal(t, segment.KindModRM, segs[2].Kind)
	assert.Equal(t, 2, segs[2].Offset)

	assert.Equal(t, segment.KindSIB, segs[3].Kind)
	assert.Equal(t, 3, segs[3].Offset)

	assert.Equal(t, segment.KindDisplacement, segs[4].Kind)
	assert.Equal(t, 4, segs[4].Offset)
	assert.Equal(t, 1, segs[4].Size)
}

// TestGetInstructionSegments_EvexMaskedBroadcast covers S3, where a 4-byte
// EVEX prefix, ModRM, SIB, compressed-disp8, and trailing immediate must
// all line up against the instruction's 9-byte span.
func TestGetInstructionSegments_EvexMaskedBroadcast(t *testing.T) {
	raw := []byte{0x62, 0xF1, 0x6C, 0x5F, 0xC2, 0x54, 0x98, 0x40, 0x0F}
	d, err := decoder.NewDecoder(enum.ModeLong64, enum.StackWidth64)
	require.NoError(t, err)
	instr, err := d.DecodeBuffer(raw, 0x1000)
	require.NoError(t, err)

	segs, err := segment.GetInstructionSegments(instr, raw)
	require.NoError(t, err)

	var kinds []segment.Kind
	for _, s := range segs {
		kinds = append(kinds, s.Kind)
	}
	assert.Contains(t, kinds, segment.KindEVEX)
	assert.Contains(t, kinds, segment.KindModRM)
	assert.Contains(t, kinds, segment.KindSIB)
	assert.Contains(t, kinds, segment.KindDisplacement)
	assert.Contains(t, kinds, segment.KindImmediate)

	last := segs[len(segs)-1]
	assert.Equal(t, segment.KindImmediate, last.Kind)
	assert.Equal(t, 8, last.Offset)
	assert.Equal(t, 1, last.Size)

	total := 0
	for _, s := range segs {
		total += s.Size
	}
	assert.Equal(t, instr.Length, total)
}

func TestGetInstructionSegments_NilInstruction(t *testing.T) {
	_, err := segment.GetInstructionSegments(nil, []byte{0x90})
	require.Error(t, err)
	var derr *enum.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, enum.CodeInvalidParameter, derr.Code)
}

func TestSegmentReflectionInfo_REXFields(t *testing.T) {
	fields := segment.SegmentReflectionInfo(segment.KindREX, 1)
	require.Len(t, fields, 4)
	assert.Equal(t, "W", fields[0].Name)
}

func TestSegmentReflectionInfo_VEXDisambiguatesByLength(t *testing.T) {
	two := segment.SegmentReflectionInfo(segment.KindVEX, 2)
	three := segment.SegmentReflectionInfo(segment.KindVEX, 3)
	assert.Len(t, two, 4)
	assert.Len(t, three, 8)
}

func TestSegmentKindToString(t *testing.T) {
	assert.Equal(t, "evex", segment.SegmentKindToString(segment.KindEVEX))
}
