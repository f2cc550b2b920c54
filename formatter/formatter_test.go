package formatter_test

import (
	"testing"

	"github.com/relsig/x86isa/decoder"
	"github.com/relsig/x86isa/enum"
	"github.com/relsig/x86isa/formatter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeAt(t *testing.T, bytes []byte, ip uint64) *decoder.DecodedInstruction {
	t.Helper()
	d, err := decoder.NewDecoder(enum.ModeLong64, enum.StackWidth64)
	require.NoError(t, err)
	instr, err := d.DecodeBuffer(bytes, ip)
	require.NoError(t, err)
	return instr
}

// TestFormatInstruction_LegacyMemRegSuppressesRedundantCasts covers the S1
// scenario (MOV [rsp+0x10], rbx). The real formatter this package is
// grounded on omits both the "qword ptr" typecast (operand 1's register
// size already disambiguates operand 0's memory size) and the "ss:" segment
// prefix (SS here is only the implicit RSP-relative default, not an actual
// 0x36 override byte) - so the rendered string differs from the
// illustrative text quoted in this module's originating specification,
// which shows both. That illustrative text does not match the behavior of
// the real formatting library the spec describes; this test asserts the
// real library's behavior.
func TestFormatInstruction_LegacyMemRegSuppressesRedundantCasts(t *testing.T) {
	instr := decodeAt(t, []byte{0x48, 0x89, 0x5C, 0x24, 0x10}, 0x1000)

	f, err := formatter.NewFormatter(enum.StyleIntel)
	require.NoError(t, err)

	out, err := f.FormatInstruction(instr, 0x1000, false)
	require.NoError(t, err)
	assert.Equal(t, "mov [rsp+0x10], rbx", out)
}

func TestFormatInstruction_ForceMemSizeAndSegmentRestoreTheCasts(t *testing.T) {
	instr := decodeAt(t, []byte{0x48, 0x89, 0x5C, 0x24, 0x10}, 0x1000)

	f, err := formatter.NewFormatter(enum.StyleIntel)
	require.NoError(t, err)
	require.NoError(t, f.SetProperty(formatter.PropertyForceMemSize, true))
	require.NoError(t, f.SetProperty(formatter.PropertyForceMemSeg, true))

	out, err := f.FormatInstruction(instr, 0x1000, false)
	require.NoError(t, err)
	assert.Equal(t, "mov qword ptr ss:[rsp+0x10], rbx", out)
}

// TestFormatInstruction_VexImmHex covers the S2 scenario.
func TestFormatInstruction_VexImmHex(t *testing.T) {
	instr := decodeAt(t, []byte{0xC5, 0xE9, 0xC2, 0xCB, 0x17}, 0x1000)

	f, err := formatter.NewFormatter(enum.StyleIntel)
	require.NoError(t, err)

	out, err := f.FormatInstruction(instr, 0x1000, false)
	require.NoError(t, err)
	assert.Equal(t, "vcmppd xmm1, xmm2, xmm3, 0x17", out)
}

// TestFormatInstruction_EvexMaskedBroadcast covers the S3 scenario: a
// merging K7 mask decorator after the destination operand and a {1to16}
// broadcast decorator after the memory operand. The memory typecast is
// suppressed here too, for the same sibling-size-matches reason as S1 (the
// broadcasted memory operand and its NDS sibling both report the full
// 512-bit vector width).
func TestFormatInstruction_EvexMaskedBroadcast(t *testing.T) {
	instr := decodeAt(t, []byte{0x62, 0xF1, 0x6C, 0x5F, 0xC2, 0x54, 0x98, 0x40, 0x0F}, 0x1000)

	f, err := formatter.NewFormatter(enum.StyleIntel)
	require.NoError(t, err)

	out, err := f.FormatInstruction(instr, 0x1000, false)
	require.NoError(t, err)
	assert.Equal(t, "vcmpps k2 {k7}, zmm2, [rax+rbx*4+0x100] {1to16}, 0x0f", out)
}

// TestFormatInstruction_RelativeJMPPrintsAbsoluteAddress covers the S4
// scenario: calc_absolute_address folds in the instruction's own length, so
// a JMP rel32 decoded at 0x1000 with a 5-byte length and a 0x1000
// displacement resolves to 0x2005, not 0x2000.
func TestFormatInstruction_RelativeJMPPrintsAbsoluteAddress(t *testing.T) {
	instr := decodeAt(t, []byte{0xE9, 0x00, 0x10, 0x00, 0x00}, 0x1000)

	f, err := formatter.NewFormatter(enum.StyleIntel)
	require.NoError(t, err)

	out, err := f.FormatInstruction(instr, 0x1000, true)
	require.NoError(t, err)
	assert.Equal(t, "jmp 0x2005", out)
}

// TestFormatInstruction_MasmStyleForcesRelativeDisplacement confirms the
// MASM dialect always renders a branch target relative to the instruction
// itself, even when a runtime address is supplied, by forcing hasRuntimeIP
// to false regardless of the caller's request. With no runtime address the
// target is resolved as if the instruction executed at address 0 - the
// same length-inclusive formula as the absolute case, just anchored at
// zero - so a 5-byte JMP with a 0x1000 displacement resolves to 0x1005.
func TestFormatInstruction_MasmStyleForcesRelativeDisplacement(t *testing.T) {
	instr := decodeAt(t, []byte{0xE9, 0x00, 0x10, 0x00, 0x00}, 0x1000)

	f, err := formatter.NewFormatter(enum.StyleIntelMasm)
	require.NoError(t, err)

	out, err := f.FormatInstruction(instr, 0x1000, true)
	require.NoError(t, err)
	assert.Equal(t, "jmp +0x1005", out)
}

func TestFormatInstruction_Uppercase(t *testing.T) {
	instr := decodeAt(t, []byte{0xC5, 0xE9, 0xC2, 0xCB, 0x17}, 0x1000)

	f, err := formatter.NewFormatter(enum.StyleIntel)
	require.NoError(t, err)
	require.NoError(t, f.SetProperty(formatter.PropertyUppercase, true))

	out, err := f.FormatInstruction(instr, 0x1000, false)
	require.NoError(t, err)
	// Uppercase affects mnemonics, registers, and typecasts; hex digit case
	// is a separate property (HexUppercase) and the "0x" prefix is never
	// cased, so the immediate stays "0x17" even here.
	assert.Equal(t, "VCMPPD XMM1, XMM2, XMM3, 0x17", out)
}

func TestFormatInstruction_RelativeUnsignedAddrFormat(t *testing.T) {
	instr := decodeAt(t, []byte{0xE9, 0x00, 0x10, 0x00, 0x00}, 0x1000)

	f, err := formatter.NewFormatter(enum.StyleIntelMasm)
	require.NoError(t, err)
	require.NoError(t, f.SetProperty(formatter.PropertyAddrFormat, enum.AddrFormatRelativeUnsigned))

	out, err := f.FormatInstruction(instr, 0, false)
	require.NoError(t, err)
	assert.Equal(t, "jmp +0x1005", out)
}

func TestSetProperty_RejectsWrongValueType(t *testing.T) {
	f, err := formatter.NewFormatter(enum.StyleIntel)
	require.NoError(t, err)

	err = f.SetProperty(formatter.PropertyUppercase, "true")
	require.Error(t, err)
	var derr *enum.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, enum.CodeInvalidParameter, derr.Code)
}

func TestNewFormatter_RejectsATTStyle(t *testing.T) {
	_, err := formatter.NewFormatter(enum.StyleATT)
	require.Error(t, err)
}

// TestTokenizeInstruction_ConcatenationEqualsString is testable property 8:
// joining every token's Value reproduces the plain-string rendering
// exactly.
func TestTokenizeInstruction_ConcatenationEqualsString(t *testing.T) {
	instr := decodeAt(t, []byte{0x62, 0xF1, 0x6C, 0x5F, 0xC2, 0x54, 0x98, 0x40, 0x0F}, 0x1000)

	f, err := formatter.NewFormatter(enum.StyleIntel)
	require.NoError(t, err)

	want, err := f.FormatInstruction(instr, 0x1000, false)
	require.NoError(t, err)

	tokens, err := f.TokenizeInstruction(instr, 0x1000, false)
	require.NoError(t, err)
	require.NotEmpty(t, tokens)

	var joined string
	for _, tok := range tokens {
		joined += tok.Value
	}
	assert.Equal(t, want, joined)
}

func TestFormatOperand_SingleOperandInIsolation(t *testing.T) {
	instr := decodeAt(t, []byte{0x48, 0x89, 0x5C, 0x24, 0x10}, 0x1000)

	f, err := formatter.NewFormatter(enum.StyleIntel)
	require.NoError(t, err)

	out, err := f.FormatOperand(instr, 1, 0x1000, false)
	require.NoError(t, err)
	assert.Equal(t, "rbx", out)
}

func TestFormatOperand_RejectsOutOfRangeIndex(t *testing.T) {
	instr := decodeAt(t, []byte{0x48, 0x89, 0x5C, 0x24, 0x10}, 0x1000)

	f, err := formatter.NewFormatter(enum.StyleIntel)
	require.NoError(t, err)

	_, err = f.FormatOperand(instr, 5, 0x1000, false)
	require.Error(t, err)
}

// skipMnemonicHooks overrides PrintMnemonic to request a skip, exercising
// the hook-abort path: the buffer must roll back to exactly what it held
// before the hook ran, and rendering must continue past it rather than
// fail the whole instruction.
type skipMnemonicHooks struct {
	formatter.IntelHooks
}

func (skipMnemonicHooks) PrintMnemonic(f *formatter.Formatter, b *formatter.Buffer, ctx *formatter.Context) error {
	return enum.NewError(enum.CodeSkipToken, "mnemonic suppressed")
}

func TestFormatInstruction_SkipTokenRestoresBufferAndContinues(t *testing.T) {
	instr := decodeAt(t, []byte{0xC5, 0xE9, 0xC2, 0xCB, 0x17}, 0x1000)

	f, err := formatter.NewFormatter(enum.StyleIntel)
	require.NoError(t, err)
	f.Hooks = skipMnemonicHooks{}

	out, err := f.FormatInstruction(instr, 0x1000, false)
	require.NoError(t, err)
	assert.Equal(t, " xmm1, xmm2, xmm3, 0x17", out)
}

func TestFormatInstruction_NilInstruction(t *testing.T) {
	f, err := formatter.NewFormatter(enum.StyleIntel)
	require.NoError(t, err)

	_, err = f.FormatInstruction(nil, 0, false)
	require.Error(t, err)
}
