package cmd

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/relsig/x86isa/config"
	"github.com/relsig/x86isa/decoder"
	"github.com/relsig/x86isa/enum"
	"github.com/relsig/x86isa/formatter"
)

// machineModeFromString maps a config/flag dialect name to its MachineMode,
// defaulting to ModeLong64 on an unrecognized name.
func machineModeFromString(name string) enum.MachineMode {
	switch name {
	case "long_compat32":
		return enum.ModeLongCompat32
	case "long_compat16":
		return enum.ModeLongCompat16
	case "legacy32":
		return enum.ModeLegacy32
	case "legacy16":
		return enum.ModeLegacy16
	default:
		return enum.ModeLong64
	}
}

func stackWidthFromInt(bits int) enum.StackWidth {
	switch bits {
	case 16:
		return enum.StackWidth16
	case 32:
		return enum.StackWidth32
	default:
		return enum.StackWidth64
	}
}

func styleFromString(name string) enum.Style {
	if name == "intel_masm" {
		return enum.StyleIntelMasm
	}
	return enum.StyleIntel
}

// newDecoderFromConfig builds a Decoder using the active config's decode
// settings, falling back to DefaultConfig when none was loaded (e.g. in a
// test binary that never ran rootCmd.PersistentPreRunE).
func newDecoderFromConfig() (*decoder.Decoder, error) {
	c := cfg
	if c == nil {
		c = config.DefaultConfig()
	}
	mode := machineModeFromString(c.Decode.MachineMode)
	width := stackWidthFromInt(c.Decode.StackWidth)
	return decoder.NewDecoder(mode, width)
}

// newFormatterFromConfig builds a Formatter whose properties mirror the
// active config's display settings.
func newFormatterFromConfig() (*formatter.Formatter, error) {
	c := cfg
	if c == nil {
		c = config.DefaultConfig()
	}
	f, err := formatter.NewFormatter(styleFromString(c.Display.Style))
	if err != nil {
		return nil, err
	}
	f.Uppercase = c.Display.Uppercase
	f.ForceMemSeg = c.Display.ForceMemSeg
	f.ForceMemSize = c.Display.ForceMemSize
	f.HexUppercase = c.Display.HexUppercase
	f.HexPrefix = c.Display.HexPrefix
	f.HexPaddingAddr = uint8(c.Display.HexPaddingAddr)
	return f, nil
}

// parseHexBytes accepts a hex string with optional "0x" prefixes and
// whitespace/comma separators between byte pairs, e.g. "48 89 c3" or
// "0x48,0x89,0xc3" or the bare "4889c3".
func parseHexBytes(s string) ([]byte, error) {
	cleaned := strings.NewReplacer(" ", "", ",", "", "0x", "", "0X", "", "\t", "", "\n", "").Replace(s)
	if cleaned == "" {
		return nil, fmt.Errorf("no bytes given")
	}
	raw, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("invalid hex byte string: %w", err)
	}
	return raw, nil
}
