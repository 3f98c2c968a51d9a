// Package config provides JSON-backed configuration for an emulator run:
// memory size, where the program image and initial PC land, the text
// ingest radix, and the driver loop's termination policy.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// RunConfig holds the settings needed to boot and run an emulator,
// overridable via a JSON file and, on top of that, command-line flags.
type RunConfig struct {
	// MemorySize is the flat memory size in bytes. Must be a power of
	// two. Default: 65536.
	MemorySize uint32 `json:"memory_size"`

	// BaseAddress is where the program image is placed in memory.
	// Default: 0.
	BaseAddress uint32 `json:"base_address"`

	// EntryAddress is the initial program counter. Default: 0.
	EntryAddress uint32 `json:"entry_address"`

	// Radix is the number base used to parse -text mode program images.
	// 0 requests Go's prefix-based auto-detection. Default: 16.
	Radix int `json:"radix"`

	// ExitOnNOP selects the run-until-nop termination policy when true,
	// run-until-fault when false. Default: true.
	ExitOnNOP bool `json:"exit_on_nop"`
}

// DefaultRunConfig returns a RunConfig with the emulator's baseline
// defaults: a 64KiB memory, base and entry address both 0, hex text
// ingest, and run-until-nop termination.
func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		MemorySize:   1 << 16,
		BaseAddress:  0,
		EntryAddress: 0,
		Radix:        16,
		ExitOnNOP:    true,
	}
}

// LoadConfig reads a RunConfig from a JSON file, starting from the
// defaults so an incomplete file only overrides the fields it mentions.
func LoadConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	cfg := DefaultRunConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to path as indented JSON.
func (c *RunConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: failed to serialize: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration describes a constructible
// memory and a sane radix.
func (c *RunConfig) Validate() error {
	if c.MemorySize == 0 || c.MemorySize&(c.MemorySize-1) != 0 {
		return fmt.Errorf("memory_size must be a power of two, got %d", c.MemorySize)
	}
	switch c.Radix {
	case 0, 2, 8, 10, 16:
	default:
		return fmt.Errorf("radix must be 0, 2, 8, 10, or 16, got %d", c.Radix)
	}
	return nil
}

// Clone returns a copy of c.
func (c *RunConfig) Clone() *RunConfig {
	clone := *c
	return &clone
}
