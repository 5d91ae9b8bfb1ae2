// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"

	"hyprforge/internal/gpu"
)

type (
	// Config is the tool's own configuration, as loaded from config.cue
	// merged over defaults.
	Config struct {
		// TargetUser is the account the machine is provisioned for.
		TargetUser string `mapstructure:"target_user"`
		// SourceDir is the configuration source tree root ("" means the
		// current working directory).
		SourceDir string `mapstructure:"source_dir"`
		// Wallpaper seeds the initial palette generation ("" means the
		// first deployed wallpaper).
		Wallpaper string `mapstructure:"wallpaper"`
		// GPU overrides profile detection ("auto" detects).
		GPU string `mapstructure:"gpu"`
		// AURHelper is the helper binary name.
		AURHelper string `mapstructure:"aur_helper"`
		// UI holds presentation settings.
		UI UIConfig `mapstructure:"ui"`
	}

	// UIConfig holds presentation settings.
	UIConfig struct {
		Verbose bool `mapstructure:"verbose"`
	}
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		GPU:       "auto",
		AURHelper: "yay",
	}
}

// GPUOverride resolves the configured GPU value. auto reports
// override=false; anything else pins the profile for the run.
func (c *Config) GPUOverride() (profile gpu.Profile, override bool, err error) {
	if c.GPU == "" || c.GPU == "auto" {
		return gpu.Generic, false, nil
	}
	p, ok := gpu.ParseProfile(c.GPU)
	if !ok {
		return gpu.Generic, false, fmt.Errorf("invalid gpu value %q", c.GPU)
	}
	return p, true, nil
}
