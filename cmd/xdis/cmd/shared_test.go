package cmd

import (
	"testing"

	"github.com/relsig/x86isa/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexBytes_AcceptsSeparatorsAndPrefixes(t *testing.T) {
	got, err := parseHexBytes("0x48, 0x89,0xC3")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x48, 0x89, 0xC3}, got)

	got, err = parseHexBytes("4889c3")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x48, 0x89, 0xC3}, got)
}

func TestParseHexBytes_RejectsEmptyOrOddLength(t *testing.T) {
	_, err := parseHexBytes("")
	require.Error(t, err)

	_, err = parseHexBytes("48 8")
	require.Error(t, err)
}

func TestMachineModeFromString(t *testing.T) {
	assert.Equal(t, enum.ModeLong64, machineModeFromString("long64"))
	assert.Equal(t, enum.ModeLegacy32, machineModeFromString("legacy32"))
	assert.Equal(t, enum.ModeLong64, machineModeFromString("bogus"))
}

func TestStackWidthFromInt(t *testing.T) {
	assert.Equal(t, enum.StackWidth16, stackWidthFromInt(16))
	assert.Equal(t, enum.StackWidth32, stackWidthFromInt(32))
	assert.Equal(t, enum.StackWidth64, stackWidthFromInt(64))
}
