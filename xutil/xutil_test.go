package xutil_test

import (
	"testing"

	"github.com/relsig/x86isa/decoder"
	"github.com/relsig/x86isa/enum"
	"github.com/relsig/x86isa/register"
	"github.com/relsig/x86isa/xutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCalcAbsoluteAddress_RelativeJMP covers S4: JMP rel32 decoded at
// runtime IP 0x1000 resolves to 0x1000 + length(5) + 0x1000.
func TestCalcAbsoluteAddress_RelativeJMP(t *testing.T) {
	d, err := decoder.NewDecoder(enum.ModeLong64, enum.StackWidth64)
	require.NoError(t, err)

	instr, err := d.DecodeBuffer([]byte{0xE9, 0x00, 0x10, 0x00, 0x00}, 0x1000)
	require.NoError(t, err)

	addr, err := xutil.CalcAbsoluteAddress(instr, 0, instr.RuntimeAddress, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 0x2005, addr)
}

// TestCalcAbsoluteAddress_NonRelativeOperand rejects an absolute-address
// query against an operand that carries no relative displacement.
func TestCalcAbsoluteAddress_NonRelativeOperand(t *testing.T) {
	d, err := decoder.NewDecoder(enum.ModeLong64, enum.StackWidth64)
	require.NoError(t, err)

	instr, err := d.DecodeBuffer([]byte{0x48, 0x89, 0x5C, 0x24, 0x10}, 0x1000)
	require.NoError(t, err)

	_, err = xutil.CalcAbsoluteAddress(instr, 1, instr.RuntimeAddress, 0)
	require.Error(t, err)
	var derr *enum.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, enum.CodeInvalidOperation, derr.Code)
}

// TestCalcAbsoluteAddress_StackWidthOverrideTruncates masks the result to a
// 16-bit address space when an override narrower than the decode mode is
// supplied.
func TestCalcAbsoluteAddress_StackWidthOverrideTruncates(t *testing.T) {
	d, err := decoder.NewDecoder(enum.ModeLong64, enum.StackWidth64)
	require.NoError(t, err)

	instr, err := d.DecodeBuffer([]byte{0xE9, 0x00, 0x10, 0x00, 0x00}, 0x1000)
	require.NoError(t, err)

	addr, err := xutil.CalcAbsoluteAddress(instr, 0, instr.RuntimeAddress, enum.StackWidth16)
	require.NoError(t, err)
	assert.EqualValues(t, 0x2005&0xFFFF, addr)
}

func TestAccessedFlagsByAction_NilInstruction(t *testing.T) {
	assert.Zero(t, xutil.AccessedFlagsByAction(nil, enum.FlagActionTested))
}

func TestMnemonicGetString(t *testing.T) {
	assert.Equal(t, enum.MnemonicMOV.String(), xutil.MnemonicGetString(enum.MnemonicMOV))
}

func TestRegisterGetters(t *testing.T) {
	assert.Equal(t, "rax", xutil.RegisterGetString(register.RAX))
	assert.Equal(t, register.ClassGPR64, xutil.RegisterGetClass(register.RAX))
	assert.Equal(t, byte(0), xutil.RegisterGetID(register.RAX))
	assert.Equal(t, 64, xutil.RegisterGetWidth(register.RAX, enum.ModeLong64))
}

func TestGetVersion_PacksComponents(t *testing.T) {
	v := xutil.GetVersion()
	major := v >> 48
	assert.Equal(t, uint64(1), major)
}

func TestIsFeatureEnabled(t *testing.T) {
	assert.True(t, xutil.IsFeatureEnabled(xutil.FeatureEVEX))
	assert.True(t, xutil.IsFeatureEnabled(xutil.FeatureMVEX))
	assert.False(t, xutil.IsFeatureEnabled(xutil.Feature(999)))
}
