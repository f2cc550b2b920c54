package tables_test

import (
	"testing"

	"github.com/relsig/x86isa/enum"
	"github.com/relsig/x86isa/tables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimaryMapMOV(t *testing.T) {
	root, ok := tables.Global.Root(int(enum.RootPrimary))
	require.True(t, ok)

	child := tables.Global.Child(root, 0x89)
	require.NotEqual(t, tables.NodeRefInvalid, child)

	typ, _ := tables.Global.Header(child)
	require.Equal(t, tables.NodeDefinition, typ)

	eiID, defID := tables.Global.DefinitionAt(child)
	assert.Equal(t, tables.DefMOVRmGPR, defID)
	def := tables.DefinitionAt(defID)
	assert.Equal(t, enum.MnemonicMOV, def.Mnemonic)
	assert.Equal(t, 2, def.OperandCount)
	ei := tables.EncodingInfoAt(eiID)
	assert.True(t, ei.HasModRM)
}

func TestPrimaryMapSwitchesTo0F(t *testing.T) {
	root, _ := tables.Global.Root(int(enum.RootPrimary))
	child := tables.Global.Child(root, 0x0F)
	typ, _ := tables.Global.Header(child)
	require.Equal(t, tables.NodeSwitchTable, typ)
	assert.Equal(t, int(enum.Root0F), tables.Global.SwitchTarget(child))
}

func TestVEXMandatoryPrefixSelector(t *testing.T) {
	root, ok := tables.Global.Root(int(enum.RootVEX))
	require.True(t, ok)

	opcodeNode := tables.Global.Child(root, 0xC2)
	require.NotEqual(t, tables.NodeRefInvalid, opcodeNode)
	typ, _ := tables.Global.Header(opcodeNode)
	require.Equal(t, tables.NodeSelectorMandatoryPrefix, typ)

	pdChild := tables.Global.Child(opcodeNode, int(enum.Mandatory66))
	require.NotEqual(t, tables.NodeRefInvalid, pdChild)
	_, defID := tables.Global.DefinitionAt(pdChild)
	assert.Equal(t, tables.DefVCMPPDVex, defID)

	noneChild := tables.Global.Child(opcodeNode, int(enum.MandatoryNone))
	assert.Equal(t, tables.NodeRefInvalid, noneChild)
}

func TestEVEXVCMPPSDefinitionCarriesBroadcastAndMask(t *testing.T) {
	root, _ := tables.Global.Root(int(enum.RootEVEX))
	opcodeNode := tables.Global.Child(root, 0xC2)
	noneChild := tables.Global.Child(opcodeNode, int(enum.MandatoryNone))
	require.NotEqual(t, tables.NodeRefInvalid, noneChild)

	_, defID := tables.Global.DefinitionAt(noneChild)
	def := tables.DefinitionAt(defID)
	require.NotNil(t, def.EVEX)
	assert.Equal(t, enum.VectorLength512, def.EVEX.VectorLengthClass)
	assert.Equal(t, enum.TupleFV, def.EVEX.TupleType)
	assert.Equal(t, tables.EVEXBBroadcast, def.EVEX.BMeaning)
}

func TestOperandPoolRoundTrip(t *testing.T) {
	op := tables.Operand(tables.DefinitionAt(tables.DefMOVRmGPR).Operands[1])
	assert.Equal(t, enum.SemanticGPR16_32_64, op.Semantic)
	assert.Equal(t, enum.EncodingSlotModRMReg, op.Encoding)
}

func TestThreeDNowMapKeyedBySuffixByte(t *testing.T) {
	root, ok := tables.Global.Root(int(enum.Root3DNow))
	require.True(t, ok)
	child := tables.Global.Child(root, 0x9E)
	require.NotEqual(t, tables.NodeRefInvalid, child)
	_, defID := tables.Global.DefinitionAt(child)
	assert.Equal(t, tables.Def3DNowPFADD, defID)
}
