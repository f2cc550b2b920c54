// Package config holds the on-disk configuration for the xdis command line
// tool: which machine mode and stack width to decode under, how the
// formatter should render output, and what the segments subcommand's field
// dump shows.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config is the xdis configuration file shape.
type Config struct {
	// Decode settings select the decoder's machine mode and stack width.
	Decode struct {
		MachineMode string `toml:"machine_mode"` // long64, long_compat32, long_compat16, legacy32, legacy16
		StackWidth  int    `toml:"stack_width"`  // 16, 32, or 64
		MaxLength   int    `toml:"max_length"`   // loaded and defaulted (15) but not read by any xdis subcommand
	} `toml:"decode"`

	// Display settings drive the formatter's presentation properties.
	Display struct {
		Style          string `toml:"style"` // intel, intel_masm
		Uppercase      bool   `toml:"uppercase"`
		ForceMemSeg    bool   `toml:"force_mem_seg"`
		ForceMemSize   bool   `toml:"force_mem_size"`
		HexUppercase   bool   `toml:"hex_uppercase"`
		HexPrefix      string `toml:"hex_prefix"`
		HexPaddingAddr int    `toml:"hex_padding_addr"`
		BytesPerLine   int    `toml:"bytes_per_line"`
		ColorOutput    bool   `toml:"color_output"`
	} `toml:"display"`

	// Segments settings control the segments subcommand's field dump.
	Segments struct {
		ShowRawBytes bool `toml:"show_raw_bytes"`
	} `toml:"segments"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Decode.MachineMode = "long64"
	cfg.Decode.StackWidth = 64
	cfg.Decode.MaxLength = 15

	cfg.Display.Style = "intel"
	cfg.Display.Uppercase = false
	cfg.Display.ForceMemSeg = false
	cfg.Display.ForceMemSize = false
	cfg.Display.HexUppercase = true
	cfg.Display.HexPrefix = "0x"
	cfg.Display.HexPaddingAddr = 2
	cfg.Display.BytesPerLine = 16
	cfg.Display.ColorOutput = true

	cfg.Segments.ShowRawBytes = true

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		// Windows: %APPDATA%\x86isa\config.toml
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "x86isa")

	case "darwin", "linux":
		// macOS/Linux: ~/.config/x86isa/config.toml
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to current directory
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "x86isa")

	default:
		// Unknown platform: use current directory
		return "config.toml"
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0750); err != nil {
		// If we can't create the directory, fall back to current directory
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// GetLogPath returns the platform-specific log directory path.
func GetLogPath() string {
	var logDir string

	switch runtime.GOOS {
	case "windows":
		logDir = os.Getenv("APPDATA")
		if logDir == "" {
			logDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		logDir = filepath.Join(logDir, "x86isa", "logs")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "logs"
		}
		logDir = filepath.Join(homeDir, ".local", "share", "x86isa", "logs")

	default:
		return "logs"
	}

	// Ensure directory exists
	if err := os.MkdirAll(logDir, 0750); err != nil {
		return "logs"
	}

	return logDir
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file. A missing file is
// not an error; it yields the default configuration.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	// If file doesn't exist, return default config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read and parse config file
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create file
	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", closeErr)
		}
	}()

	// Encode to TOML
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
