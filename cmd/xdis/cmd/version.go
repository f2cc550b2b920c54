package cmd

import (
	"github.com/relsig/x86isa/xutil"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the library version and compiled-in feature set",
	Run: func(cmd *cobra.Command, args []string) {
		v := xutil.GetVersion()
		major := v >> 48 & 0xFFFF
		minor := v >> 32 & 0xFFFF
		patch := v >> 16 & 0xFFFF
		build := v & 0xFFFF

		cmd.Printf("x86isa %d.%d.%d build %d\n", major, minor, patch, build)

		features := []struct {
			name string
			f    xutil.Feature
		}{
			{"evex", xutil.FeatureEVEX},
			{"mvex", xutil.FeatureMVEX},
			{"3dnow", xutil.Feature3DNow},
			{"xop", xutil.FeatureXOP},
		}
		for _, ft := range features {
			cmd.Printf("  %-6s %v\n", ft.name, xutil.IsFeatureEnabled(ft.f))
		}
	},
}
