package register_test

import (
	"testing"

	"github.com/relsig/x86isa/enum"
	"github.com/relsig/x86isa/register"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	r, ok := register.ByName("rax")
	require.True(t, ok)
	assert.Equal(t, register.ClassGPR64, r.Class())
	assert.Equal(t, byte(0), r.ID())
	assert.Equal(t, "rax", r.String())

	_, ok = register.ByName("notareg")
	assert.False(t, ok)
}

func TestEncode(t *testing.T) {
	r, ok := register.Encode(register.ClassXMM, 5)
	require.True(t, ok)
	assert.Equal(t, "xmm5", r.Name())

	_, ok = register.Encode(register.ClassXMM, 40)
	assert.False(t, ok)
}

func TestEncodeGPR8_HighByteWithoutREX(t *testing.T) {
	r, ok := register.EncodeGPR8(4, false)
	require.True(t, ok)
	assert.Equal(t, "ah", r.Name())

	r, ok = register.EncodeGPR8(7, false)
	require.True(t, ok)
	assert.Equal(t, "bh", r.Name())
}

func TestEncodeGPR8_LowByteWithREX(t *testing.T) {
	r, ok := register.EncodeGPR8(4, true)
	require.True(t, ok)
	assert.Equal(t, "spl", r.Name())

	r, ok = register.EncodeGPR8(7, true)
	require.True(t, ok)
	assert.Equal(t, "dil", r.Name())
}

func TestEncodeGPR8_BelowFourIgnoresREX(t *testing.T) {
	withoutREX, ok := register.EncodeGPR8(0, false)
	require.True(t, ok)
	withREX, ok := register.EncodeGPR8(0, true)
	require.True(t, ok)
	assert.Equal(t, withoutREX, withREX)
	assert.Equal(t, "al", withoutREX.Name())
}

func TestEncode_DoesNotResolveHighByteAlias(t *testing.T) {
	// Generic Encode must always land on the REX-addressable low-byte form,
	// never the AH/CH/DH/BH alias, since that disambiguation is REX-gated.
	r, ok := register.Encode(register.ClassGPR8, 4)
	require.True(t, ok)
	assert.Equal(t, "spl", r.Name())
}

func TestWidth_ModeDependent(t *testing.T) {
	assert.Equal(t, 16, register.IP.Width(enum.ModeReal16))
	assert.Equal(t, 16, register.IP.Width(enum.ModeLegacy32))
	assert.Equal(t, 64, register.IP.Width(enum.ModeLong64))

	assert.Equal(t, 64, register.RAX.Width(enum.ModeLong64))
	assert.Equal(t, 64, register.RAX.Width(enum.ModeReal16))
}

func TestLargestEnclosing(t *testing.T) {
	assert.Equal(t, register.RAX, register.LargestEnclosing(true, register.EAX))
	assert.Equal(t, register.RAX, register.LargestEnclosing(true, register.AL))
	assert.Equal(t, register.EAX, register.LargestEnclosing(false, register.AX))
	assert.Equal(t, register.R15, register.LargestEnclosing(true, register.R15D))

	// Non-GPR classes pass through unchanged.
	assert.Equal(t, register.XMM3, register.LargestEnclosing(true, register.XMM3))
}

func TestIsVector(t *testing.T) {
	assert.True(t, register.ClassXMM.IsVector())
	assert.True(t, register.ClassYMM.IsVector())
	assert.True(t, register.ClassZMM.IsVector())
	assert.False(t, register.ClassGPR32.IsVector())
}

func TestRegNoneIsZeroValue(t *testing.T) {
	var r register.Register
	assert.Equal(t, register.RegNone, r)
	assert.Equal(t, "none", r.String())
	assert.Equal(t, register.ClassNone, r.Class())
}

func TestIPForWidth(t *testing.T) {
	assert.Equal(t, register.RIP, register.IPForWidth(64))
	assert.Equal(t, register.EIP, register.IPForWidth(32))
	assert.Equal(t, register.IP, register.IPForWidth(16))
}

func TestFlagsForWidth(t *testing.T) {
	assert.Equal(t, register.RFLAGS, register.FlagsForWidth(64))
	assert.Equal(t, register.EFLAGS, register.FlagsForWidth(32))
	assert.Equal(t, register.FLAGS, register.FlagsForWidth(16))
}

func TestGPRForWidth(t *testing.T) {
	r, ok := register.GPRForWidth(0, 64)
	require.True(t, ok)
	assert.Equal(t, register.RAX, r)

	r, ok = register.GPRForWidth(4, 8)
	require.True(t, ok)
	assert.Equal(t, "spl", r.Name())

	_, ok = register.GPRForWidth(0, 7)
	assert.False(t, ok)
}
