package cmd

import (
	"fmt"

	"github.com/relsig/x86isa/segment"
	"github.com/spf13/cobra"
)

var segmentsRuntimeIP uint64

var segmentsCmd = &cobra.Command{
	Use:     "segments <hex-bytes>",
	GroupID: "inspect",
	Short:   "Break a single instruction's bytes down into labeled segments",
	Long: `segments decodes a single instruction from a hex byte string and prints
the byte-range breakdown GetInstructionSegments produces: prefixes, the
REX/VEX/XOP/EVEX/MVEX family bytes, opcode, ModRM, SIB, displacement, and
immediates, each with its offset and size.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSegments(cmd, args[0])
	},
}

func init() {
	segmentsCmd.Flags().Uint64Var(&segmentsRuntimeIP, "ip", 0x1000, "runtime instruction pointer")
}

func runSegments(cmd *cobra.Command, hexBytes string) error {
	raw, err := parseHexBytes(hexBytes)
	if err != nil {
		return err
	}

	d, err := newDecoderFromConfig()
	if err != nil {
		return fmt.Errorf("building decoder: %w", err)
	}

	instr, err := d.DecodeBuffer(raw, segmentsRuntimeIP)
	if err != nil {
		return fmt.Errorf("decoding instruction: %w", err)
	}

	segs, err := segment.GetInstructionSegments(instr, raw)
	if err != nil {
		return fmt.Errorf("computing segments: %w", err)
	}

	showRaw := true
	if cfg != nil {
		showRaw = cfg.Segments.ShowRawBytes
	}

	for _, s := range segs {
		if showRaw {
			cmd.Printf("%-12s offset=%-3d size=%-2d bytes=% x\n", s.Kind.String(), s.Offset, s.Size, s.Bytes)
		} else {
			cmd.Printf("%-12s offset=%-3d size=%-2d\n", s.Kind.String(), s.Offset, s.Size)
		}
	}

	return nil
}
