package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var decodeRuntimeIP uint64

var decodeCmd = &cobra.Command{
	Use:     "decode <hex-bytes>",
	GroupID: "inspect",
	Short:   "Decode a hex byte string into Intel-syntax instructions",
	Long: `decode reads a hex byte string (spaces, commas, and "0x" prefixes are
ignored) and decodes it one instruction at a time, advancing the runtime
instruction pointer by each decoded instruction's length, until the buffer
is exhausted or a byte sequence fails to decode.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDecode(cmd, args[0])
	},
}

func init() {
	decodeCmd.Flags().Uint64Var(&decodeRuntimeIP, "ip", 0x1000, "runtime instruction pointer of the first byte")
}

func runDecode(cmd *cobra.Command, hexBytes string) error {
	raw, err := parseHexBytes(hexBytes)
	if err != nil {
		return err
	}

	d, err := newDecoderFromConfig()
	if err != nil {
		return fmt.Errorf("building decoder: %w", err)
	}
	f, err := newFormatterFromConfig()
	if err != nil {
		return fmt.Errorf("building formatter: %w", err)
	}

	ip := decodeRuntimeIP
	offset := 0
	for offset < len(raw) {
		instr, err := d.DecodeBuffer(raw[offset:], ip)
		if err != nil {
			return fmt.Errorf("decoding at offset %d (ip=0x%x): %w", offset, ip, err)
		}

		text, err := f.FormatInstruction(instr, ip, true)
		if err != nil {
			return fmt.Errorf("formatting instruction at offset %d: %w", offset, err)
		}

		cmd.Printf("%08x  % x\t%s\n", ip, raw[offset:offset+instr.Length], text)

		offset += instr.Length
		ip += uint64(instr.Length)
	}

	return nil
}
