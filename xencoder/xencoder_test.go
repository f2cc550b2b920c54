package xencoder_test

import (
	"testing"

	"github.com/relsig/x86isa/decoder"
	"github.com/relsig/x86isa/enum"
	"github.com/relsig/x86isa/register"
	"github.com/relsig/x86isa/xencoder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEncodeInstruction_MovImm64ThenRet covers the S5 scenario: MOV RAX,
// 0x1337 followed by RET assembles to the minimal-encoding alternative the
// originating scenario sanctions, B8 37 13 00 00 00 00 00 00 C3, rather
// than the REX.W+C7 alternative (this module only defines the 0xB8+r
// immediate-MOV form, not the C7 /0 ModRM form).
func TestEncodeInstruction_MovImm64ThenRet(t *testing.T) {
	mov := &xencoder.EncoderRequest{
		MachineMode:  enum.ModeLong64,
		Mnemonic:     enum.MnemonicMOV,
		OperandCount: 2,
		Operands: [5]xencoder.EncoderOperand{
			{Type: enum.OperandRegister, Reg: register.RAX},
			{Type: enum.OperandImmediate, Imm: decoder.ImmOperand{Value: 0x1337}},
		},
	}
	ret := &xencoder.EncoderRequest{
		MachineMode: enum.ModeLong64,
		Mnemonic:    enum.MnemonicRET,
		BranchType:  enum.BranchTypeNear64,
	}

	movBytes, err := xencoder.EncodeInstruction(mov)
	require.NoError(t, err)
	retBytes, err := xencoder.EncodeInstruction(ret)
	require.NoError(t, err)

	got := append(movBytes, retBytes...)
	assert.Equal(t, []byte{0xB8, 0x37, 0x13, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xC3}, got)
}

// TestEncodeInstruction_MovRmGPRRegisterDirect covers the ModRM-based form
// (DefMOVRmGPR): REX.W is derived from the 64-bit register operands, not
// hard-coded, unlike the opcode-embedded MOV r64,imm form above.
func TestEncodeInstruction_MovRmGPRRegisterDirect(t *testing.T) {
	req := &xencoder.EncoderRequest{
		MachineMode:  enum.ModeLong64,
		Mnemonic:     enum.MnemonicMOV,
		OperandCount: 2,
		Operands: [5]xencoder.EncoderOperand{
			{Type: enum.OperandRegister, Reg: register.RBX},
			{Type: enum.OperandRegister, Reg: register.RAX},
		},
	}

	got, err := xencoder.EncodeInstruction(req)
	require.NoError(t, err)
	// REX.W (0x48), opcode 0x89, ModRM mod=11 reg=RAX(0) rm=RBX(3) -> 0xC3
	assert.Equal(t, []byte{0x48, 0x89, 0xC3}, got)
}

func TestEncodeInstruction_JmpRel32(t *testing.T) {
	req := &xencoder.EncoderRequest{
		MachineMode:  enum.ModeLong64,
		Mnemonic:     enum.MnemonicJMP,
		OperandCount: 1,
		Operands: [5]xencoder.EncoderOperand{
			{Type: enum.OperandImmediate, Imm: decoder.ImmOperand{Value: 0x1000, IsSigned: true, IsRelative: true}},
		},
	}

	got, err := xencoder.EncodeInstruction(req)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xE9, 0x00, 0x10, 0x00, 0x00}, got)
}

// TestEncodeInstruction_PushImm8SkipsImplicitOperand confirms the implicit
// stack-write operand PUSH carries doesn't need a caller-supplied slot: the
// request only names the explicit imm8.
func TestEncodeInstruction_PushImm8SkipsImplicitOperand(t *testing.T) {
	req := &xencoder.EncoderRequest{
		MachineMode:  enum.ModeLong64,
		Mnemonic:     enum.MnemonicPUSH,
		OperandCount: 1,
		Operands: [5]xencoder.EncoderOperand{
			{Type: enum.OperandImmediate, Imm: decoder.ImmOperand{Value: 0xFFFFFFFFFFFFFFFE, IsSigned: true}},
		},
	}

	got, err := xencoder.EncodeInstruction(req)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x6A, 0xFE}, got)
}

func TestEncodeInstruction_UnknownMnemonicIsImpossible(t *testing.T) {
	req := &xencoder.EncoderRequest{
		MachineMode: enum.ModeLong64,
		Mnemonic:    enum.MnemonicVADDPSMVEX, // only defined under MVEX, not Legacy
	}

	_, err := xencoder.EncodeInstruction(req)
	require.Error(t, err)
	var derr *enum.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, enum.CodeImpossibleInstruction, derr.Code)
}

func TestEncodeInstruction_WrongOperandShapeIsImpossible(t *testing.T) {
	req := &xencoder.EncoderRequest{
		MachineMode:  enum.ModeLong64,
		Mnemonic:     enum.MnemonicRET, // takes no operands
		OperandCount: 1,
		Operands: [5]xencoder.EncoderOperand{
			{Type: enum.OperandImmediate, Imm: decoder.ImmOperand{Value: 1}},
		},
	}

	_, err := xencoder.EncodeInstruction(req)
	require.Error(t, err)
}

func TestEncodeInstruction_NonLegacyEncodingRejected(t *testing.T) {
	req := &xencoder.EncoderRequest{
		MachineMode: enum.ModeLong64,
		Mnemonic:    enum.MnemonicVCMPPD,
		Encoding:    enum.EncodingVEX,
	}

	_, err := xencoder.EncodeInstruction(req)
	require.Error(t, err)
}

func TestEncodeInstruction_NilRequest(t *testing.T) {
	_, err := xencoder.EncodeInstruction(nil)
	require.Error(t, err)
}

// TestDecodedToRequest_RoundTripsMovRmGPR decodes S1's bytes, converts the
// result back into a request, and re-encodes it; the encoder only supports
// register-direct r/m forms, so this exercises a register-register MOV
// rather than S1's actual memory-operand form.
func TestDecodedToRequest_RoundTripsMovRmGPR(t *testing.T) {
	d, err := decoder.NewDecoder(enum.ModeLong64, enum.StackWidth64)
	require.NoError(t, err)

	instr, err := d.DecodeBuffer([]byte{0x48, 0x89, 0xC3}, 0x1000) // mov rbx, rax
	require.NoError(t, err)

	req, err := xencoder.DecodedToRequest(instr)
	require.NoError(t, err)
	assert.Equal(t, enum.MnemonicMOV, req.Mnemonic)
	assert.Equal(t, 2, req.OperandCount)

	got, err := xencoder.EncodeInstruction(req)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x48, 0x89, 0xC3}, got)
}

func TestDecodedToRequest_NilInstruction(t *testing.T) {
	_, err := xencoder.DecodedToRequest(nil)
	require.Error(t, err)
}
