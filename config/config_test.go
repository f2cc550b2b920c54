package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Decode.MachineMode != "long64" {
		t.Errorf("Expected MachineMode=long64, got %s", cfg.Decode.MachineMode)
	}
	if cfg.Decode.StackWidth != 64 {
		t.Errorf("Expected StackWidth=64, got %d", cfg.Decode.StackWidth)
	}
	if cfg.Decode.MaxLength != 15 {
		t.Errorf("Expected MaxLength=15, got %d", cfg.Decode.MaxLength)
	}

	if cfg.Display.Style != "intel" {
		t.Errorf("Expected Style=intel, got %s", cfg.Display.Style)
	}
	if cfg.Display.BytesPerLine != 16 {
		t.Errorf("Expected BytesPerLine=16, got %d", cfg.Display.BytesPerLine)
	}
	if !cfg.Display.HexUppercase {
		t.Error("Expected HexUppercase=true")
	}

	if !cfg.Segments.ShowRawBytes {
		t.Error("Expected Segments.ShowRawBytes=true")
	}
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()

	if path == "" {
		t.Error("GetConfigPath returned empty string")
	}

	if filepath.Base(path) != "config.toml" {
		t.Errorf("Expected path to end with config.toml, got %s", path)
	}

	switch runtime.GOOS {
	case "windows":
		if !filepath.IsAbs(path) && path != "config.toml" {
			t.Errorf("Expected absolute path on Windows, got %s", path)
		}

	case "darwin", "linux":
		dir := filepath.Dir(path)
		if filepath.Base(dir) != "x86isa" && path != "config.toml" {
			t.Errorf("Expected path in x86isa directory or fallback, got %s", path)
		}
	}
}

func TestGetLogPath(t *testing.T) {
	path := GetLogPath()

	if path == "" {
		t.Error("GetLogPath returned empty string")
	}

	switch runtime.GOOS {
	case "windows":
		if !filepath.IsAbs(path) && path != "logs" {
			t.Errorf("Expected absolute path on Windows, got %s", path)
		}

	case "darwin", "linux":
		if filepath.Base(path) != "logs" {
			t.Errorf("Expected path to end with logs, got %s", path)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.toml")

	cfg := DefaultConfig()
	cfg.Decode.MachineMode = "legacy32"
	cfg.Decode.StackWidth = 32
	cfg.Display.Style = "intel_masm"
	cfg.Display.ColorOutput = false
	cfg.Segments.ShowRawBytes = false

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loaded.Decode.MachineMode != "legacy32" {
		t.Errorf("Expected MachineMode=legacy32, got %s", loaded.Decode.MachineMode)
	}
	if loaded.Decode.StackWidth != 32 {
		t.Errorf("Expected StackWidth=32, got %d", loaded.Decode.StackWidth)
	}
	if loaded.Display.Style != "intel_masm" {
		t.Errorf("Expected Style=intel_masm, got %s", loaded.Display.Style)
	}
	if loaded.Display.ColorOutput {
		t.Error("Expected ColorOutput=false")
	}
	if loaded.Segments.ShowRawBytes {
		t.Error("Expected Segments.ShowRawBytes=false")
	}
}

func TestLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom should not error on non-existent file: %v", err)
	}

	if cfg.Decode.MachineMode != "long64" {
		t.Error("Expected default config when file doesn't exist")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.toml")

	invalidTOML := `
[decode]
stack_width = "not a number"  # Invalid: should be an int
`
	if err := os.WriteFile(configPath, []byte(invalidTOML), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	_, err := LoadFrom(configPath)
	if err == nil {
		t.Error("Expected error when loading invalid TOML")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()

	configPath := filepath.Join(tempDir, "subdir1", "subdir2", "config.toml")

	cfg := DefaultConfig()
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}

	dir := filepath.Dir(configPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Error("Parent directories were not created")
	}
}
