package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSegments_RexModRM(t *testing.T) {
	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&out)

	err := runSegments(c, "48 89 c3")
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "rex")
	assert.Contains(t, text, "opcode")
	assert.Contains(t, text, "modrm")
}

func TestRunSegments_InvalidHexIsError(t *testing.T) {
	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&out)

	err := runSegments(c, "zz")
	require.Error(t, err)
}
