package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDecode_MovRmGPRThenRet(t *testing.T) {
	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&out)

	err := runDecode(c, "48 89 c3 c3")
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "mov rbx, rax")
	assert.Contains(t, text, "ret")
}

func TestRunDecode_InvalidHexIsError(t *testing.T) {
	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&out)

	err := runDecode(c, "not hex")
	require.Error(t, err)
}

func TestRunDecode_EmptyBufferIsError(t *testing.T) {
	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&out)

	err := runDecode(c, "")
	require.Error(t, err)
}
