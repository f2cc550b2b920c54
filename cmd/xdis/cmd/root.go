package cmd

import (
	"fmt"
	"os"

	"github.com/relsig/x86isa/config"
	"github.com/spf13/cobra"
)

var configPath string

// cfg is loaded once in rootCmd's PersistentPreRunE and read by every
// subcommand; GetConfigPath() falls back to the default file when
// --config is not set.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "xdis",
	Short: "x86isa disassembler CLI",
	Long:  `xdis decodes x86/x86-64 machine code and renders it as Intel-syntax assembly.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.GetConfigPath()
		}
		loaded, err := config.LoadFrom(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
		return nil
	},
}

// Execute runs the root command, exiting the process with status 1 on
// failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddGroup(&cobra.Group{
		ID:    "inspect",
		Title: "Inspection commands",
	})

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to xdis config.toml (default: platform config dir)")

	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(segmentsCmd)
	rootCmd.AddCommand(versionCmd)
}
