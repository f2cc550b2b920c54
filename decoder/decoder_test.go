package decoder_test

import (
	"testing"

	"github.com/relsig/x86isa/decoder"
	"github.com/relsig/x86isa/enum"
	"github.com/relsig/x86isa/register"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDecodeBuffer_LegacyRexModRMSIB covers "MOV r/m64, r64" with REX.W,
// a SIB byte with no index, and an SS-segmented disp8 memory destination.
func TestDecodeBuffer_LegacyRexModRMSIB(t *testing.T) {
	d, err := decoder.NewDecoder(enum.ModeLong64, enum.StackWidth64)
	require.NoError(t, err)

	instr, err := d.DecodeBuffer([]byte{0x48, 0x89, 0x5C, 0x24, 0x10}, 0x1000)
	require.NoError(t, err)

	assert.Equal(t, enum.MnemonicMOV, instr.Mnemonic)
	assert.Equal(t, 5, instr.Length)
	assert.Equal(t, enum.EncodingLegacy, instr.Encoding)
	assert.Equal(t, byte(0x89), instr.Opcode)
	assert.Equal(t, 2, instr.OperandCount)
	assert.Equal(t, 64, instr.OperandSize)

	assert.True(t, instr.Attributes.Has(enum.AttrHasModRM))
	assert.True(t, instr.Attributes.Has(enum.AttrHasSIB))
	assert.True(t, instr.Attributes.Has(enum.AttrHasREX))

	mem := instr.Operands[0]
	assert.Equal(t, enum.OperandMemory, mem.Type)
	assert.Equal(t, register.SS, mem.Mem.Segment)
	assert.Equal(t, register.RSP, mem.Mem.Base)
	assert.Equal(t, register.RegNone, mem.Mem.Index)
	assert.Equal(t, 1, mem.Mem.Scale)
	assert.True(t, mem.Mem.HasDisp)
	assert.EqualValues(t, 0x10, mem.Mem.Disp)
	assert.Equal(t, 64, mem.SizeBits)

	reg := instr.Operands[1]
	assert.Equal(t, enum.OperandRegister, reg.Type)
	assert.Equal(t, register.RBX, reg.Reg)
}

// TestDecodeBuffer_VexVCMPPD covers the 2-byte VEX form of VCMPPD, whose
// mandatory prefix (0x66) and NDS source come from the VEX byte itself.
func TestDecodeBuffer_VexVCMPPD(t *testing.T) {
	d, err := decoder.NewDecoder(enum.ModeLong64, enum.StackWidth64)
	require.NoError(t, err)

	instr, err := d.DecodeBuffer([]byte{0xC5, 0xE9, 0xC2, 0xCB, 0x17}, 0x1000)
	require.NoError(t, err)

	assert.Equal(t, enum.MnemonicVCMPPD, instr.Mnemonic)
	assert.Equal(t, 5, instr.Length)
	assert.Equal(t, enum.EncodingVEX, instr.Encoding)
	assert.Equal(t, 4, instr.OperandCount)

	assert.False(t, instr.Raw.VEX.L)
	assert.Equal(t, byte(2), instr.Raw.VEX.VVVV)

	assert.Equal(t, register.XMM1, instr.Operands[0].Reg)
	assert.Equal(t, register.XMM2, instr.Operands[1].Reg)
	assert.Equal(t, register.XMM3, instr.Operands[2].Reg)

	imm := instr.Operands[3]
	assert.Equal(t, enum.OperandImmediate, imm.Type)
	assert.EqualValues(t, 0x17, imm.Imm.Value)
}

// TestDecodeBuffer_EvexMaskedBroadcast covers the EVEX-encoded VCMPPS with
// a merging K7 mask, a 1to16 broadcast memory source, and compressed disp8
// scaling against the tuple type's element size (spec "Compressed disp8").
func TestDecodeBuffer_EvexMaskedBroadcast(t *testing.T) {
	d, err := decoder.NewDecoder(enum.ModeLong64, enum.StackWidth64)
	require.NoError(t, err)

	instr, err := d.DecodeBuffer([]byte{0x62, 0xF1, 0x6C, 0x5F, 0xC2, 0x54, 0x98, 0x40, 0x0F}, 0x1000)
	require.NoError(t, err)

	assert.Equal(t, enum.MnemonicVCMPPS512, instr.Mnemonic)
	assert.Equal(t, 9, instr.Length)
	assert.Equal(t, enum.EncodingEVEX, instr.Encoding)
	assert.Equal(t, 4, instr.OperandCount)

	assert.Equal(t, enum.VectorLength512, instr.AVX.VectorLength)
	assert.Equal(t, enum.MaskModeMerge, instr.AVX.MaskMode)
	assert.Equal(t, register.K7, instr.AVX.MaskRegister)
	assert.Equal(t, enum.Broadcast1To16, instr.AVX.Broadcast)
	assert.Equal(t, 4, instr.AVX.CompressedDisp8)

	dst := instr.Operands[0]
	assert.Equal(t, enum.OperandRegister, dst.Type)
	assert.Equal(t, register.K2, dst.Reg)

	nds := instr.Operands[1]
	assert.Equal(t, register.ZMM2, nds.Reg)

	mem := instr.Operands[2]
	assert.Equal(t, enum.OperandMemory, mem.Type)
	assert.Equal(t, register.RAX, mem.Mem.Base)
	assert.Equal(t, register.RBX, mem.Mem.Index)
	assert.Equal(t, 4, mem.Mem.Scale)
	assert.EqualValues(t, 0x100, mem.Mem.Disp)

	imm := instr.Operands[3]
	assert.EqualValues(t, 0x0F, imm.Imm.Value)
}

// TestDecodeBuffer_RelativeJMP covers a near rel32 JMP and verifies the raw
// relative immediate the encoder/xutil layer later folds into an absolute
// address (spec "Absolute address").
func TestDecodeBuffer_RelativeJMP(t *testing.T) {
	d, err := decoder.NewDecoder(enum.ModeLong64, enum.StackWidth64)
	require.NoError(t, err)

	instr, err := d.DecodeBuffer([]byte{0xE9, 0x00, 0x10, 0x00, 0x00}, 0x1000)
	require.NoError(t, err)

	assert.Equal(t, enum.MnemonicJMP, instr.Mnemonic)
	assert.Equal(t, 5, instr.Length)
	assert.Equal(t, 1, instr.OperandCount)

	imm := instr.Operands[0]
	assert.Equal(t, enum.OperandImmediate, imm.Type)
	assert.True(t, imm.Imm.IsSigned)
	assert.True(t, imm.Imm.IsRelative)
	assert.EqualValues(t, 0x1000, imm.Imm.Value)
}

// TestDecodeBuffer_PushImm8SignExtends16Bit covers PUSH imm8 decoded in
// 16-bit real mode: the immediate sign-extends to the effective operand
// size rather than the stack width.
func TestDecodeBuffer_PushImm8SignExtends16Bit(t *testing.T) {
	d, err := decoder.NewDecoder(enum.ModeLegacy16, enum.StackWidth16)
	require.NoError(t, err)

	instr, err := d.DecodeBuffer([]byte{0x6A, 0xFE}, 0x100)
	require.NoError(t, err)

	assert.Equal(t, enum.MnemonicPUSH, instr.Mnemonic)
	assert.Equal(t, 2, instr.Length)
	assert.Equal(t, 16, instr.OperandSize)

	imm := instr.Operands[1]
	assert.Equal(t, enum.OperandImmediate, imm.Type)
	assert.False(t, imm.Imm.IsRelative)
	assert.True(t, imm.Imm.IsSigned)
	assert.EqualValues(t, -2, imm.Imm.SignedValue())
}

// TestDecodeBuffer_EmptyBuffer confirms the documented failure semantics:
// a zero-length input never produces a partial instruction.
func TestDecodeBuffer_EmptyBuffer(t *testing.T) {
	d, err := decoder.NewDecoder(enum.ModeLong64, enum.StackWidth64)
	require.NoError(t, err)

	instr, err := d.DecodeBuffer(nil, 0)
	require.Error(t, err)
	assert.Nil(t, instr)
	var derr *enum.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, enum.CodeNoMoreData, derr.Code)
}
